package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/crisuscata/nutriscan-ai/models"
	"github.com/crisuscata/nutriscan-ai/storage"
)

// LogService owns the entry list and its persistence. The persisted list is
// the single source of truth for the dashboard; every mutation flushes the
// full list to the store before the call returns. LogService itself is not
// safe for concurrent use; AppState serializes access to it.
type LogService struct {
	store   storage.Store
	entries []models.DailyLogEntry
	now     func() int64 // millisecond clock, swappable in tests
}

// ManualEntryInput are the fields of the manual entry form. The form layer
// enforces required fields; here only the name gets a fallback.
type ManualEntryInput struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	ImageURL string  `json:"imageUrl"`
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}

func NewLogService(store storage.Store) (*LogService, error) {
	entries, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load entry log: %w", err)
	}
	return &LogService{
		store:   store,
		entries: entries,
		now:     nowMillis,
	}, nil
}

// Entries returns a copy of the log, newest first.
func (s *LogService) Entries() []models.DailyLogEntry {
	out := make([]models.DailyLogEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// AddFromAnalysis folds an accepted scan result into the log.
func (s *LogService) AddFromAnalysis(a *models.NutritionalAnalysis) (models.DailyLogEntry, error) {
	name := strings.TrimSpace(a.EstimatedDishName)
	if name == "" {
		name = "Scanned meal"
	}
	entry := models.DailyLogEntry{
		ID:        uuid.NewString(),
		Name:      name,
		Timestamp: s.now(),
		Calories:  a.Totals.TotalCalories.Float64(),
		Protein:   a.Totals.ProteinGrams.Float64(),
		Carbs:     a.Totals.CarbohydrateGrams.Float64(),
		Fat:       a.Totals.FatGrams.Float64(),
		Source:    models.SourceScan,
	}
	return s.prepend(entry)
}

// AddManual records a manually entered food.
func (s *LogService) AddManual(in ManualEntryInput) (models.DailyLogEntry, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = "Manual entry"
	}
	entry := models.DailyLogEntry{
		ID:        uuid.NewString(),
		Name:      name,
		Timestamp: s.now(),
		Calories:  in.Calories,
		Protein:   in.Protein,
		Carbs:     in.Carbs,
		Fat:       in.Fat,
		Source:    models.SourceManual,
		ImageURL:  in.ImageURL,
	}
	return s.prepend(entry)
}

// Delete removes exactly the entry with the given id; absent ids are a
// no-op and do not trigger a store write.
func (s *LogService) Delete(id string) error {
	idx := -1
	for i, e := range s.entries {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	prev := s.entries
	next := make([]models.DailyLogEntry, 0, len(prev)-1)
	next = append(next, prev[:idx]...)
	next = append(next, prev[idx+1:]...)
	s.entries = next
	if err := s.store.Save(s.entries); err != nil {
		s.entries = prev
		return fmt.Errorf("persist entry log: %w", err)
	}
	return nil
}

func (s *LogService) prepend(entry models.DailyLogEntry) (models.DailyLogEntry, error) {
	prev := s.entries
	s.entries = append([]models.DailyLogEntry{entry}, prev...)
	if err := s.store.Save(s.entries); err != nil {
		s.entries = prev
		return models.DailyLogEntry{}, fmt.Errorf("persist entry log: %w", err)
	}
	return entry, nil
}
