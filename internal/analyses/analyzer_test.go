package analyses

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"resume-analysis/internal/fields"
)

type fakeClient struct {
	replies []string
	errs    []error
	calls   int

	lastPrompt string
}

func (f *fakeClient) Generate(ctx context.Context, prompt string) (string, error) {
	i := f.calls
	f.calls++
	f.lastPrompt = prompt
	var reply string
	var err error
	if i < len(f.replies) {
		reply = f.replies[i]
	}
	if i < len(f.errs) {
		err = f.errs[i]
	}
	return reply, err
}

func testRecord() fields.ResumeRecord {
	name := "Jane Doe"
	email := "jane@example.com"
	return fields.ResumeRecord{
		Name:       &name,
		Email:      &email,
		Skills:     []string{"python", "sql"},
		Experience: []string{"Acme Corp, 2019-2024"},
		Education:  []string{"B.Sc. Computer Science"},
		RawText:    "Jane Doe\njane@example.com\nSkills: python, sql\n",
	}
}

const goodReply = `{"score": 75, "summary": "Solid backend profile.",
"strengths": ["clear impact"], "weaknesses": ["no metrics"],
"improvement_tips": ["quantify results"]}`

func TestAnalyzeParsesReply(t *testing.T) {
	client := &fakeClient{replies: []string{goodReply}}
	a := NewAnalyzer(client, time.Second)

	result, err := a.Analyze(context.Background(), testRecord())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.Score != 75 {
		t.Fatalf("score = %d, want 75", result.Score)
	}
	if result.Summary != "Solid backend profile." {
		t.Fatalf("summary = %q", result.Summary)
	}
	if len(result.Strengths) != 1 || len(result.Weaknesses) != 1 || len(result.ImprovementTips) != 1 {
		t.Fatalf("lists not carried through: %+v", result)
	}
	if client.calls != 1 {
		t.Fatalf("calls = %d, want 1", client.calls)
	}
}

func TestAnalyzePromptCarriesRecord(t *testing.T) {
	client := &fakeClient{replies: []string{goodReply}}
	a := NewAnalyzer(client, time.Second)

	if _, err := a.Analyze(context.Background(), testRecord()); err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	for _, want := range []string{"Jane Doe", "jane@example.com", "python"} {
		if !strings.Contains(client.lastPrompt, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
}

func TestAnalyzeFencedReply(t *testing.T) {
	client := &fakeClient{replies: []string{"```json\n" + goodReply + "\n```"}}
	a := NewAnalyzer(client, time.Second)

	result, err := a.Analyze(context.Background(), testRecord())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.Score != 75 {
		t.Fatalf("score = %d, want 75", result.Score)
	}
}

func TestAnalyzeProseAroundJSON(t *testing.T) {
	client := &fakeClient{replies: []string{"Here is my assessment:\n" + goodReply + "\nHope this helps!"}}
	a := NewAnalyzer(client, time.Second)

	result, err := a.Analyze(context.Background(), testRecord())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.Score != 75 {
		t.Fatalf("score = %d, want 75", result.Score)
	}
}

func TestAnalyzeUnparseableReplyFallsBack(t *testing.T) {
	client := &fakeClient{replies: []string{"I cannot produce JSON today, sorry."}}
	a := NewAnalyzer(client, time.Second)

	result, err := a.Analyze(context.Background(), testRecord())
	if err != nil {
		t.Fatalf("unparseable reply must not error, got %v", err)
	}
	if result.Score != 0 {
		t.Fatalf("fallback score = %d, want 0", result.Score)
	}
	if !strings.Contains(result.Summary, "I cannot produce JSON today") {
		t.Fatalf("fallback summary should carry the reply head, got %q", result.Summary)
	}
	if result.Strengths == nil || result.Weaknesses == nil || result.ImprovementTips == nil {
		t.Fatalf("fallback lists must be empty, not nil: %+v", result)
	}
}

func TestAnalyzeScoreClamped(t *testing.T) {
	client := &fakeClient{replies: []string{`{"score": 150, "summary": "overshoot"}`}}
	a := NewAnalyzer(client, time.Second)

	result, err := a.Analyze(context.Background(), testRecord())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.Score != 100 {
		t.Fatalf("score = %d, want clamp to 100", result.Score)
	}
}

func TestAnalyzeRetriesOnceThenSucceeds(t *testing.T) {
	client := &fakeClient{
		replies: []string{"", goodReply},
		errs:    []error{errors.New("connection reset"), nil},
	}
	a := NewAnalyzer(client, time.Second)

	result, err := a.Analyze(context.Background(), testRecord())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.Score != 75 {
		t.Fatalf("score = %d, want 75", result.Score)
	}
	if client.calls != 2 {
		t.Fatalf("calls = %d, want 2", client.calls)
	}
}

func TestAnalyzeUnavailableAfterRetry(t *testing.T) {
	client := &fakeClient{errs: []error{errors.New("dial tcp: timeout"), errors.New("dial tcp: timeout")}}
	a := NewAnalyzer(client, time.Second)

	_, err := a.Analyze(context.Background(), testRecord())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
	if client.calls != 2 {
		t.Fatalf("calls = %d, want exactly one retry", client.calls)
	}
}

func TestAnalyzeNoRetryAfterContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := &fakeClient{errs: []error{context.Canceled, context.Canceled}}
	a := NewAnalyzer(client, time.Second)

	_, err := a.Analyze(ctx, testRecord())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
	if client.calls != 1 {
		t.Fatalf("calls = %d, want no retry once the request is canceled", client.calls)
	}
}

func TestAnalyzeNilClientUnavailable(t *testing.T) {
	a := NewAnalyzer(nil, time.Second)
	_, err := a.Analyze(context.Background(), testRecord())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
}

func TestImprovementQuestions(t *testing.T) {
	reply := `[{"question_id": "q1", "question": "Which metrics did the pipeline move?",
"category": "experience", "context": "no metrics"}]`
	client := &fakeClient{replies: []string{reply}}
	a := NewAnalyzer(client, time.Second)

	questions, err := a.ImprovementQuestions(context.Background(), testRecord(), []string{"no metrics"})
	if err != nil {
		t.Fatalf("ImprovementQuestions: %v", err)
	}
	if len(questions) != 1 || questions[0].QuestionID != "q1" || questions[0].Category != "experience" {
		t.Fatalf("questions = %+v", questions)
	}
}

func TestImprovementQuestionsUnparseableReply(t *testing.T) {
	client := &fakeClient{replies: []string{"no list here"}}
	a := NewAnalyzer(client, time.Second)

	questions, err := a.ImprovementQuestions(context.Background(), testRecord(), nil)
	if err != nil {
		t.Fatalf("unparseable reply must not error, got %v", err)
	}
	if questions == nil || len(questions) != 0 {
		t.Fatalf("questions = %#v, want empty slice", questions)
	}
}

func TestImprovedContent(t *testing.T) {
	reply := `[{"category": "experience", "original_content": "Built pipelines",
"improved_content": "Built pipelines processing 2M records/day", "explanation": "adds scale"}]`
	client := &fakeClient{replies: []string{reply}}
	a := NewAnalyzer(client, time.Second)

	improvements, err := a.ImprovedContent(context.Background(), testRecord(),
		[]string{"no metrics"}, []Answer{{Question: "scale?", Answer: "2M records/day"}})
	if err != nil {
		t.Fatalf("ImprovedContent: %v", err)
	}
	if len(improvements) != 1 || improvements[0].ImprovedContent == "" {
		t.Fatalf("improvements = %+v", improvements)
	}
}
