package services

import (
	"time"

	"github.com/crisuscata/nutriscan-ai/models"
)

// NutrientGoals are the fixed daily targets. They are configuration, not
// user data, and only feed the dashboard progress display.
type NutrientGoals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

var DefaultGoals = NutrientGoals{
	Calories: 2000,
	Protein:  150,
	Carbs:    250,
	Fat:      70,
}

// Totals are the summed nutrients of one calendar day. Derived on demand,
// never persisted.
type Totals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// NutrientProgress pairs a consumed amount with its goal and the clamped
// percent between them.
type NutrientProgress struct {
	Consumed float64 `json:"consumed"`
	Goal     float64 `json:"goal"`
	Percent  float64 `json:"percent"`
}

// Dashboard is the aggregated view of the current day.
type Dashboard struct {
	Date     string                      `json:"date"` // YYYY-MM-DD, local
	Goals    NutrientGoals               `json:"goals"`
	Totals   Totals                      `json:"totals"`
	Progress map[string]NutrientProgress `json:"progress"`
	Entries  []models.DailyLogEntry      `json:"entries"` // today's, newest first
}

func sameLocalDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// ComputeDailyTotals sums the entries whose timestamp falls on the same
// local calendar day as asOf. An empty day yields all zeros.
func ComputeDailyTotals(entries []models.DailyLogEntry, asOf time.Time) Totals {
	var t Totals
	for _, e := range entries {
		if !sameLocalDay(e.Time(), asOf) {
			continue
		}
		t.Calories += e.Calories
		t.Protein += e.Protein
		t.Carbs += e.Carbs
		t.Fat += e.Fat
	}
	return t
}

// ProgressRatio returns current/goal as a percentage clamped to [0, 100].
// Goals are fixed positive constants in this system, but a zero or negative
// goal still reads as "no progress representable" rather than dividing.
func ProgressRatio(current, goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	p := current / goal * 100
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// BuildDashboard assembles the daily summary: totals, per-nutrient progress
// against goals, and today's entries in log order (newest first).
func BuildDashboard(entries []models.DailyLogEntry, asOf time.Time, goals NutrientGoals) Dashboard {
	totals := ComputeDailyTotals(entries, asOf)

	today := make([]models.DailyLogEntry, 0)
	for _, e := range entries {
		if sameLocalDay(e.Time(), asOf) {
			today = append(today, e)
		}
	}

	return Dashboard{
		Date:   asOf.Format("2006-01-02"),
		Goals:  goals,
		Totals: totals,
		Progress: map[string]NutrientProgress{
			"calories": {Consumed: totals.Calories, Goal: goals.Calories, Percent: ProgressRatio(totals.Calories, goals.Calories)},
			"protein":  {Consumed: totals.Protein, Goal: goals.Protein, Percent: ProgressRatio(totals.Protein, goals.Protein)},
			"carbs":    {Consumed: totals.Carbs, Goal: goals.Carbs, Percent: ProgressRatio(totals.Carbs, goals.Carbs)},
			"fat":      {Consumed: totals.Fat, Goal: goals.Fat, Percent: ProgressRatio(totals.Fat, goals.Fat)},
		},
		Entries: today,
	}
}
