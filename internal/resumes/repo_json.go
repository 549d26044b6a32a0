package resumes

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"resume-analysis/internal/shared/telemetry"
)

// JSONRepo stores one JSON file per entry in a flat directory. Keys are
// timestamp-derived with a short uuid suffix, so two uploads landing in the
// same second never overwrite each other.
type JSONRepo struct {
	dir string
}

// NewJSONRepo creates the repo rooted at dir, creating the directory if needed.
func NewJSONRepo(dir string) (*JSONRepo, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &StorageError{Op: "mkdir", Err: err}
	}
	return &JSONRepo{dir: dir}, nil
}

// Save writes the entry and returns its storage key.
func (r *JSONRepo) Save(ctx context.Context, entry Entry) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	stamp := entry.ProcessedAt.UTC().Format("20060102_150405")
	key := fmt.Sprintf("resume_%s_%s.json", stamp, uuid.NewString()[:8])

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return "", &StorageError{Op: "marshal", Err: err}
	}
	if err := os.WriteFile(filepath.Join(r.dir, key), data, 0o644); err != nil {
		return "", &StorageError{Op: "write", Err: err}
	}
	return key, nil
}

// LoadAll reads every stored entry, skipping unreadable files with a logged
// warning, and returns them sorted by ProcessedAt ascending.
func (r *JSONRepo) LoadAll(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	names, err := os.ReadDir(r.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Entry{}, nil
		}
		return nil, &StorageError{Op: "list", Err: err}
	}

	type keyed struct {
		entry Entry
		key   string
	}
	var loaded []keyed
	for _, de := range names {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(r.dir, de.Name()))
		if err != nil {
			telemetry.Warn("store.unreadable_entry", map[string]any{
				"key":   de.Name(),
				"error": err.Error(),
			})
			continue
		}
		var entry Entry
		if err := json.Unmarshal(data, &entry); err != nil {
			telemetry.Warn("store.corrupt_entry", map[string]any{
				"key":   de.Name(),
				"error": err.Error(),
			})
			continue
		}
		loaded = append(loaded, keyed{entry: entry, key: de.Name()})
	}

	sort.Slice(loaded, func(i, j int) bool {
		if !loaded[i].entry.ProcessedAt.Equal(loaded[j].entry.ProcessedAt) {
			return loaded[i].entry.ProcessedAt.Before(loaded[j].entry.ProcessedAt)
		}
		return loaded[i].key < loaded[j].key
	})

	entries := make([]Entry, 0, len(loaded))
	for _, k := range loaded {
		entries = append(entries, k.entry)
	}
	return entries, nil
}

var _ Repo = (*JSONRepo)(nil)
