package analyses

import "errors"

// ErrUnavailable marks transport or credential failures talking to the AI
// service. Callers downgrade to FallbackResult instead of failing the request.
var ErrUnavailable = errors.New("analysis unavailable")

// Result is the AI-produced assessment of one resume.
type Result struct {
	Score           int      `json:"score"`
	Summary         string   `json:"summary"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	ImprovementTips []string `json:"improvement_tips"`
}

// Question is one targeted follow-up generated from identified weaknesses.
type Question struct {
	QuestionID string `json:"question_id"`
	Question   string `json:"question"`
	Category   string `json:"category"`
	Context    string `json:"context"`
}

// Answer pairs a generated question with the user's reply.
type Answer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Improvement is one rewritten resume section.
type Improvement struct {
	Category        string `json:"category"`
	OriginalContent string `json:"original_content"`
	ImprovedContent string `json:"improved_content"`
	Explanation     string `json:"explanation"`
}

// FallbackResult is the well-defined placeholder returned when the AI reply is
// unusable, so downstream logic never sees an error in the analysis slot.
func FallbackResult(note string) Result {
	return Result{
		Score:           0,
		Summary:         note,
		Strengths:       []string{},
		Weaknesses:      []string{},
		ImprovementTips: []string{},
	}
}
