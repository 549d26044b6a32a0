package analyses

import (
	"encoding/json"
	"strings"
)

// parseResult extracts a Result from the model's free-form reply. The reply
// may wrap the JSON in code fences or prose; everything outside the outermost
// object is discarded.
func parseResult(reply string) (Result, bool) {
	payload, ok := extractJSON(reply, '{', '}')
	if !ok {
		return Result{}, false
	}

	var raw struct {
		Score           json.Number `json:"score"`
		Summary         string      `json:"summary"`
		Strengths       []string    `json:"strengths"`
		Weaknesses      []string    `json:"weaknesses"`
		ImprovementTips []string    `json:"improvement_tips"`
	}
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return Result{}, false
	}
	if strings.TrimSpace(raw.Summary) == "" {
		return Result{}, false
	}

	score := 0
	if f, err := raw.Score.Float64(); err == nil {
		score = clampScore(int(f + 0.5))
	}

	return Result{
		Score:           score,
		Summary:         strings.TrimSpace(raw.Summary),
		Strengths:       orEmpty(raw.Strengths),
		Weaknesses:      orEmpty(raw.Weaknesses),
		ImprovementTips: orEmpty(raw.ImprovementTips),
	}, true
}

func parseQuestions(reply string) ([]Question, bool) {
	payload, ok := extractJSON(reply, '[', ']')
	if !ok {
		return nil, false
	}
	var questions []Question
	if err := json.Unmarshal([]byte(payload), &questions); err != nil {
		return nil, false
	}
	return questions, true
}

func parseImprovements(reply string) ([]Improvement, bool) {
	payload, ok := extractJSON(reply, '[', ']')
	if !ok {
		return nil, false
	}
	var improvements []Improvement
	if err := json.Unmarshal([]byte(payload), &improvements); err != nil {
		return nil, false
	}
	return improvements, true
}

// extractJSON strips markdown code fences and returns the slice between the
// first open delimiter and the last close delimiter.
func extractJSON(reply string, opening, closing byte) (string, bool) {
	clean := strings.TrimSpace(reply)
	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimSuffix(strings.TrimSpace(clean), "```")

	start := strings.IndexByte(clean, opening)
	end := strings.LastIndexByte(clean, closing)
	if start == -1 || end == -1 || end <= start {
		return "", false
	}
	return clean[start : end+1], true
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
