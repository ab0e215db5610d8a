// Package storage persists the last-run snapshot. The snapshot is a record
// of what the previous run produced, not a cross-run deduplication ledger;
// every run overwrites it.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chris87zhang9999/news-collector-deploy/internal/news"
)

// Snapshot is the serialized result of one pipeline run.
type Snapshot struct {
	Timestamp time.Time   `json:"timestamp"`
	NewsCount int         `json:"news_count"`
	News      []news.Item `json:"news"`
}

// SnapshotStore reads and writes the snapshot file.
type SnapshotStore struct {
	filePath string
}

func NewSnapshotStore(filePath string) *SnapshotStore {
	return &SnapshotStore{filePath: filePath}
}

// Save overwrites the snapshot with the given items.
func (s *SnapshotStore) Save(items []news.Item, now time.Time) error {
	snap := Snapshot{
		Timestamp: now,
		NewsCount: len(items),
		News:      items,
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.filePath), 0755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}
	if err := os.WriteFile(s.filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// Load reads the previous run's snapshot. A missing file is not an error;
// it returns nil.
func (s *SnapshotStore) Load() (*Snapshot, error) {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &snap, nil
}
