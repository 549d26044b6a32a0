package resumes

import (
	"time"

	"resume-analysis/internal/analyses"
	"resume-analysis/internal/fields"
)

// Entry is the persisted unit: one analyzed resume. Entries are immutable
// after write; the store is append-only.
type Entry struct {
	FileName          string              `json:"file_name"`
	ProcessedAt       time.Time           `json:"processed_at"`
	ResumeData        fields.ResumeRecord `json:"resume_data"`
	AIAnalysis        analyses.Result     `json:"ai_analysis"`
	AnalysisAvailable bool                `json:"analysis_available"`
}

// Analysis is the aggregate returned for one upload.
type Analysis struct {
	Entry      Entry
	StorageKey string
}
