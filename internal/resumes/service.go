package resumes

import (
	"context"
	"errors"
	"time"

	"resume-analysis/internal/analyses"
	"resume-analysis/internal/extract"
	"resume-analysis/internal/fields"
	"resume-analysis/internal/shared/metrics"
	"resume-analysis/internal/shared/telemetry"
)

// TextExtractor converts file bytes into plain text for a declared format.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte, format extract.Format) (string, error)
}

// Analyzer produces the AI assessment for a parsed record.
type Analyzer interface {
	Analyze(ctx context.Context, record fields.ResumeRecord) (analyses.Result, error)
	ImprovementQuestions(ctx context.Context, record fields.ResumeRecord, weaknesses []string) ([]analyses.Question, error)
	ImprovedContent(ctx context.Context, record fields.ResumeRecord, weaknesses []string, answers []analyses.Answer) ([]analyses.Improvement, error)
}

// Service sequences extract -> parse -> analyze -> persist for one upload.
type Service struct {
	Extractor  TextExtractor
	Analyzer   Analyzer
	Repo       Repo
	Vocabulary []string

	now func() time.Time
}

// NewService wires the pipeline. vocabulary may be nil to use the default list.
func NewService(extractor TextExtractor, analyzer Analyzer, repo Repo, vocabulary []string) *Service {
	if vocabulary == nil {
		vocabulary = fields.DefaultVocabulary
	}
	return &Service{
		Extractor:  extractor,
		Analyzer:   analyzer,
		Repo:       repo,
		Vocabulary: vocabulary,
		now:        time.Now,
	}
}

// Process runs the full pipeline for one uploaded file. Extraction and
// storage failures are fatal; analysis failure downgrades to the fallback
// result with AnalysisAvailable=false.
func (s *Service) Process(ctx context.Context, fileName string, content []byte) (Analysis, error) {
	metrics.IncUploadsReceived()
	started := s.now()

	format, ok := extract.FormatFromFileName(fileName)
	if !ok {
		// Reject before touching the extractor: no wasted work on bad input.
		return Analysis{}, &extract.UnsupportedFormatError{Format: string(format)}
	}

	text, err := s.Extractor.Extract(ctx, content, format)
	if err != nil {
		metrics.IncExtractionFailed()
		return Analysis{}, err
	}

	record := fields.ParseWithVocabulary(text, s.Vocabulary)
	record.ExtractedAt = s.now().UTC().Format(time.RFC3339)

	result, err := s.Analyzer.Analyze(ctx, record)
	available := true
	if err != nil {
		if !errors.Is(err, analyses.ErrUnavailable) {
			return Analysis{}, err
		}
		telemetry.Warn("analysis.unavailable", map[string]any{
			"file_name": fileName,
			"error":     err.Error(),
		})
		result = analyses.FallbackResult("AI analysis unavailable: " + err.Error())
		available = false
		metrics.IncAnalysisFallback()
	}

	entry := Entry{
		FileName:          fileName,
		ProcessedAt:       s.now().UTC(),
		ResumeData:        record,
		AIAnalysis:        result,
		AnalysisAvailable: available,
	}

	key, err := s.Repo.Save(ctx, entry)
	if err != nil {
		return Analysis{}, err
	}
	metrics.IncEntriesPersisted()
	metrics.ObservePipelineDurationMs(float64(s.now().Sub(started).Milliseconds()))

	return Analysis{Entry: entry, StorageKey: key}, nil
}

// List returns all persisted entries in chronological order.
func (s *Service) List(ctx context.Context) ([]Entry, error) {
	return s.Repo.LoadAll(ctx)
}

// Questions generates improvement questions for previously identified weaknesses.
func (s *Service) Questions(ctx context.Context, record fields.ResumeRecord, weaknesses []string) ([]analyses.Question, error) {
	return s.Analyzer.ImprovementQuestions(ctx, record, weaknesses)
}

// Improvements generates rewritten content from weaknesses and user answers.
func (s *Service) Improvements(ctx context.Context, record fields.ResumeRecord, weaknesses []string, answers []analyses.Answer) ([]analyses.Improvement, error) {
	return s.Analyzer.ImprovedContent(ctx, record, weaknesses, answers)
}
