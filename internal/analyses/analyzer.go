// Package analyses turns a parsed resume into an AI-generated assessment.
// The language model is unreliable by contract: unparseable replies collapse
// into a fallback Result, and only transport failures surface as errors.
package analyses

import (
	"context"
	"fmt"
	"time"

	"resume-analysis/internal/fields"
	"resume-analysis/internal/llm"
	"resume-analysis/internal/shared/telemetry"
)

const defaultTimeout = 60 * time.Second

// Analyzer sends resume content to the language model and shapes the reply.
type Analyzer struct {
	Client  llm.Client
	Timeout time.Duration
}

// NewAnalyzer constructs an Analyzer. A nil client is allowed; Analyze then
// reports ErrUnavailable, mirroring a missing API key.
func NewAnalyzer(client llm.Client, timeout time.Duration) *Analyzer {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Analyzer{Client: client, Timeout: timeout}
}

// Analyze requests a scored assessment for the record. Transport failures
// return ErrUnavailable; shape mismatches in the reply return a fallback
// Result and no error.
func (a *Analyzer) Analyze(ctx context.Context, record fields.ResumeRecord) (Result, error) {
	reply, err := a.generate(ctx, buildAnalysisPrompt(record))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	result, ok := parseResult(reply)
	if !ok {
		telemetry.Warn("analysis.unparseable_reply", map[string]any{
			"reply_head": head(reply, 200),
		})
		return FallbackResult("AI reply did not match the expected shape; raw reply: " + head(reply, 500)), nil
	}
	return result, nil
}

// ImprovementQuestions asks the model for targeted questions addressing the
// identified weaknesses.
func (a *Analyzer) ImprovementQuestions(ctx context.Context, record fields.ResumeRecord, weaknesses []string) ([]Question, error) {
	reply, err := a.generate(ctx, buildQuestionsPrompt(record, weaknesses))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	questions, ok := parseQuestions(reply)
	if !ok {
		telemetry.Warn("analysis.unparseable_questions", map[string]any{
			"reply_head": head(reply, 200),
		})
		return []Question{}, nil
	}
	return questions, nil
}

// ImprovedContent asks the model to rewrite weak sections using the user's answers.
func (a *Analyzer) ImprovedContent(ctx context.Context, record fields.ResumeRecord, weaknesses []string, answers []Answer) ([]Improvement, error) {
	reply, err := a.generate(ctx, buildImprovementsPrompt(record, weaknesses, answers))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	improvements, ok := parseImprovements(reply)
	if !ok {
		telemetry.Warn("analysis.unparseable_improvements", map[string]any{
			"reply_head": head(reply, 200),
		})
		return []Improvement{}, nil
	}
	return improvements, nil
}

// generate performs one bounded-timeout model call with at most one retry, to
// absorb transient network errors without materially increasing latency.
func (a *Analyzer) generate(ctx context.Context, prompt string) (string, error) {
	if a == nil || a.Client == nil {
		return "", fmt.Errorf("no AI client configured")
	}

	timeout := a.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	call := func() (string, error) {
		cctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return a.Client.Generate(cctx, prompt)
	}

	reply, err := call()
	if err != nil && ctx.Err() == nil {
		telemetry.Warn("analysis.retrying", map[string]any{"error": err.Error()})
		reply, err = call()
	}
	if err != nil {
		return "", err
	}
	return reply, nil
}

func head(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
