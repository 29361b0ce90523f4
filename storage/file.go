package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/crisuscata/nutriscan-ai/models"
)

// FileStore keeps the entry list in one JSON file. A corrupt or missing file
// reads as an empty log rather than an error, so a bad write never bricks
// the app on startup.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() ([]models.DailyLogEntry, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return []models.DailyLogEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read entry log: %w", err)
	}
	var entries []models.DailyLogEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return []models.DailyLogEntry{}, nil
	}
	if entries == nil {
		entries = []models.DailyLogEntry{}
	}
	return entries, nil
}

func (s *FileStore) Save(entries []models.DailyLogEntry) error {
	if entries == nil {
		entries = []models.DailyLogEntry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode entry log: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	// Write-then-rename so a crash mid-write leaves the previous list intact.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write entry log: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace entry log: %w", err)
	}
	return nil
}
