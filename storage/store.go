// Package storage persists the daily log as a single atomic value: the full
// entry list, rewritten wholesale on every mutation. Backends are swappable
// behind the Store interface; the list order written is the list order read.
package storage

import "github.com/crisuscata/nutriscan-ai/models"

type Store interface {
	// Load returns the persisted entry list, or an empty list if nothing
	// usable has been persisted yet.
	Load() ([]models.DailyLogEntry, error)
	// Save replaces the persisted list with entries.
	Save(entries []models.DailyLogEntry) error
}
