package models

import "time"

// EntrySource records how a diary entry was created.
type EntrySource string

const (
	SourceScan   EntrySource = "scan"
	SourceManual EntrySource = "manual"
)

// DailyLogEntry is one persisted diary record. Entries are never mutated
// after creation; they are only prepended to the log (newest first) and
// deleted by id.
type DailyLogEntry struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Timestamp int64       `json:"timestamp"` // milliseconds since epoch
	Calories  float64     `json:"calories"`
	Protein   float64     `json:"protein"`
	Carbs     float64     `json:"carbs"`
	Fat       float64     `json:"fat"`
	Source    EntrySource `json:"source"`
	ImageURL  string      `json:"imageUrl,omitempty"`
}

// Time converts the stored millisecond timestamp to a local time.Time.
func (e DailyLogEntry) Time() time.Time {
	return time.UnixMilli(e.Timestamp)
}
