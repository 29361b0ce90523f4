package storage

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/crisuscata/nutriscan-ai/models"
)

// entryRecord is the table shape for one log entry. Position preserves the
// newest-first list order the app maintains in memory.
type entryRecord struct {
	Position  int    `gorm:"primaryKey;autoIncrement:false"`
	EntryID   string `gorm:"uniqueIndex;size:64"`
	Name      string
	Timestamp int64
	Calories  float64
	Protein   float64
	Carbs     float64
	Fat       float64
	Source    string
	ImageURL  string
}

// GormStore persists the entry list in a SQLite database via GORM. Save
// still replaces the whole list in one transaction, keeping the same
// overwrite-wholesale contract as the file backend.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(path string) (*GormStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.AutoMigrate(&entryRecord{}); err != nil {
		return nil, fmt.Errorf("migrate entry table: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) Load() ([]models.DailyLogEntry, error) {
	var records []entryRecord
	if err := s.db.Order("position").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}
	entries := make([]models.DailyLogEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, models.DailyLogEntry{
			ID:        r.EntryID,
			Name:      r.Name,
			Timestamp: r.Timestamp,
			Calories:  r.Calories,
			Protein:   r.Protein,
			Carbs:     r.Carbs,
			Fat:       r.Fat,
			Source:    models.EntrySource(r.Source),
			ImageURL:  r.ImageURL,
		})
	}
	return entries, nil
}

func (s *GormStore) Save(entries []models.DailyLogEntry) error {
	records := make([]entryRecord, 0, len(entries))
	for i, e := range entries {
		// 1-based so the primary key never carries Go's zero value, which
		// GORM treats as unset on insert.
		records = append(records, entryRecord{
			Position:  i + 1,
			EntryID:   e.ID,
			Name:      e.Name,
			Timestamp: e.Timestamp,
			Calories:  e.Calories,
			Protein:   e.Protein,
			Carbs:     e.Carbs,
			Fat:       e.Fat,
			Source:    string(e.Source),
			ImageURL:  e.ImageURL,
		})
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&entryRecord{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.Create(&records).Error
	})
	if err != nil {
		return fmt.Errorf("save entries: %w", err)
	}
	return nil
}
