package resumes

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"resume-analysis/internal/analyses"
	"resume-analysis/internal/extract"
	"resume-analysis/internal/fields"
)

type fakeExtractor struct {
	text  string
	err   error
	calls int
}

func (f *fakeExtractor) Extract(ctx context.Context, data []byte, format extract.Format) (string, error) {
	f.calls++
	return f.text, f.err
}

type fakeAnalyzer struct {
	result analyses.Result
	err    error
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, record fields.ResumeRecord) (analyses.Result, error) {
	return f.result, f.err
}

func (f *fakeAnalyzer) ImprovementQuestions(ctx context.Context, record fields.ResumeRecord, weaknesses []string) ([]analyses.Question, error) {
	return []analyses.Question{}, f.err
}

func (f *fakeAnalyzer) ImprovedContent(ctx context.Context, record fields.ResumeRecord, weaknesses []string, answers []analyses.Answer) ([]analyses.Improvement, error) {
	return []analyses.Improvement{}, f.err
}

type fakeRepo struct {
	saved []Entry
	key   string
	err   error
}

func (f *fakeRepo) Save(ctx context.Context, entry Entry) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.saved = append(f.saved, entry)
	return f.key, nil
}

func (f *fakeRepo) LoadAll(ctx context.Context) ([]Entry, error) {
	return f.saved, f.err
}

func newTestService(ex *fakeExtractor, an *fakeAnalyzer, repo *fakeRepo) *Service {
	svc := NewService(ex, an, repo, nil)
	svc.now = func() time.Time { return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC) }
	return svc
}

func TestProcessRejectsUnsupportedFormatBeforeExtraction(t *testing.T) {
	ex := &fakeExtractor{}
	svc := newTestService(ex, &fakeAnalyzer{}, &fakeRepo{key: "k"})

	_, err := svc.Process(context.Background(), "resume.txt", []byte("x"))

	var unsupported *extract.UnsupportedFormatError
	if !errors.As(err, &unsupported) {
		t.Fatalf("err = %v, want *UnsupportedFormatError", err)
	}
	if ex.calls != 0 {
		t.Fatalf("extractor called %d times for unsupported format, want 0", ex.calls)
	}
}

func TestProcessExtractionFailureIsFatal(t *testing.T) {
	ex := &fakeExtractor{err: &extract.ExtractionError{Format: extract.FormatPDF, Err: errors.New("bad xref")}}
	repo := &fakeRepo{key: "k"}
	svc := newTestService(ex, &fakeAnalyzer{}, repo)

	_, err := svc.Process(context.Background(), "resume.pdf", []byte("x"))

	var extraction *extract.ExtractionError
	if !errors.As(err, &extraction) {
		t.Fatalf("err = %v, want *ExtractionError", err)
	}
	if len(repo.saved) != 0 {
		t.Fatal("nothing should be persisted when extraction fails")
	}
}

func TestProcessHappyPath(t *testing.T) {
	ex := &fakeExtractor{text: "Jane Doe\njane@example.com\nSkills: python\n"}
	an := &fakeAnalyzer{result: analyses.Result{Score: 80, Summary: "Strong."}}
	repo := &fakeRepo{key: "resume_20260314_093000_abcd1234.json"}
	svc := newTestService(ex, an, repo)

	result, err := svc.Process(context.Background(), "resume.pdf", []byte("%PDF"))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if result.StorageKey != repo.key {
		t.Fatalf("storage key = %q, want %q", result.StorageKey, repo.key)
	}
	if !result.Entry.AnalysisAvailable {
		t.Fatal("analysis should be marked available")
	}
	if result.Entry.AIAnalysis.Score != 80 {
		t.Fatalf("score = %d, want 80", result.Entry.AIAnalysis.Score)
	}
	if result.Entry.ResumeData.Email == nil || *result.Entry.ResumeData.Email != "jane@example.com" {
		t.Fatalf("parsed email = %v", result.Entry.ResumeData.Email)
	}
	if result.Entry.ResumeData.ExtractedAt != "2026-03-14T09:30:00Z" {
		t.Fatalf("extracted_at = %q", result.Entry.ResumeData.ExtractedAt)
	}
	if len(repo.saved) != 1 {
		t.Fatalf("saved %d entries, want 1", len(repo.saved))
	}
}

func TestProcessAnalysisUnavailableDowngrades(t *testing.T) {
	ex := &fakeExtractor{text: "Jane Doe\n"}
	an := &fakeAnalyzer{err: fmt.Errorf("%w: dial tcp: timeout", analyses.ErrUnavailable)}
	repo := &fakeRepo{key: "k"}
	svc := newTestService(ex, an, repo)

	result, err := svc.Process(context.Background(), "resume.pdf", []byte("%PDF"))
	if err != nil {
		t.Fatalf("unavailable analysis must not fail the request, got %v", err)
	}
	if result.Entry.AnalysisAvailable {
		t.Fatal("analysis should be marked unavailable")
	}
	if result.Entry.AIAnalysis.Score != 0 {
		t.Fatalf("fallback score = %d, want 0", result.Entry.AIAnalysis.Score)
	}
	if len(repo.saved) != 1 {
		t.Fatal("fallback entry must still be persisted")
	}
	if repo.saved[0].AnalysisAvailable {
		t.Fatal("persisted entry should record the downgrade")
	}
}

func TestProcessOtherAnalysisErrorIsFatal(t *testing.T) {
	ex := &fakeExtractor{text: "Jane Doe\n"}
	an := &fakeAnalyzer{err: errors.New("programming error")}
	repo := &fakeRepo{key: "k"}
	svc := newTestService(ex, an, repo)

	if _, err := svc.Process(context.Background(), "resume.pdf", []byte("%PDF")); err == nil {
		t.Fatal("unexpected analyzer errors must propagate")
	}
	if len(repo.saved) != 0 {
		t.Fatal("nothing should be persisted on unexpected analyzer failure")
	}
}

func TestProcessStorageFailureIsFatal(t *testing.T) {
	ex := &fakeExtractor{text: "Jane Doe\n"}
	repo := &fakeRepo{err: &StorageError{Op: "write", Err: errors.New("disk full")}}
	svc := newTestService(ex, &fakeAnalyzer{result: analyses.Result{Score: 1, Summary: "s"}}, repo)

	_, err := svc.Process(context.Background(), "resume.pdf", []byte("%PDF"))

	var storage *StorageError
	if !errors.As(err, &storage) {
		t.Fatalf("err = %v, want *StorageError", err)
	}
}
