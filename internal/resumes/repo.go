package resumes

import "context"

// Repo persists analysis entries. Save returns the storage key under which
// the entry was written; LoadAll returns all entries sorted by ProcessedAt
// ascending.
type Repo interface {
	Save(ctx context.Context, entry Entry) (string, error)
	LoadAll(ctx context.Context) ([]Entry, error)
}
