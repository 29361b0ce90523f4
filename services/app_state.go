package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/crisuscata/nutriscan-ai/models"
)

// View is one screen of the app.
type View string

const (
	ViewDashboard View = "dashboard"
	ViewScan      View = "scan"
	ViewManual    View = "manual"
	ViewResult    View = "result"
)

// analysisFailedMessage is what the user sees for any failed analysis,
// regardless of which of the three error kinds occurred.
const analysisFailedMessage = "We couldn't analyze the image. Please try a clearer photo or check your connection."

// navigable lists the view changes a plain navigation command may make.
// The result view is deliberately absent: it is entered only through a
// successful analysis and left only through accept or discard.
var navigable = map[View][]View{
	ViewDashboard: {ViewScan, ViewManual},
	ViewScan:      {ViewDashboard},
	ViewManual:    {ViewDashboard},
}

// Analyzer is the image-analysis boundary AppState depends on.
type Analyzer interface {
	AnalyzeFoodImage(ctx context.Context, image, userContext string) (*models.NutritionalAnalysis, error)
}

// AppState is the application state controller: current view, in-flight
// analysis result, loading and error flags, and the persisted entry list
// (via LogService). Gin serves handlers concurrently, so a mutex guards
// what the browser app kept on a single thread.
type AppState struct {
	mu       sync.Mutex
	view     View
	result   *models.NutritionalAnalysis
	loading  bool
	errorMsg string

	analyzer Analyzer
	logSvc   *LogService
	goals    NutrientGoals
}

// Snapshot is what the presentation layer reads.
type Snapshot struct {
	View    View                        `json:"view"`
	Result  *models.NutritionalAnalysis `json:"result"`
	Loading bool                        `json:"loading"`
	Error   string                      `json:"error,omitempty"`
	Entries []models.DailyLogEntry      `json:"entries"`
}

func NewAppState(analyzer Analyzer, logSvc *LogService) *AppState {
	return &AppState{
		view:     ViewDashboard,
		analyzer: analyzer,
		logSvc:   logSvc,
		goals:    DefaultGoals,
	}
}

func (a *AppState) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshotLocked()
}

func (a *AppState) snapshotLocked() Snapshot {
	return Snapshot{
		View:    a.view,
		Result:  a.result,
		Loading: a.loading,
		Error:   a.errorMsg,
		Entries: a.logSvc.Entries(),
	}
}

// Navigate changes the current view, rejecting transitions the state
// machine does not define.
func (a *AppState) Navigate(target View) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, v := range navigable[a.view] {
		if v == target {
			a.view = target
			a.errorMsg = ""
			return nil
		}
	}
	return fmt.Errorf("invalid transition from %s to %s", a.view, target)
}

// RequestAnalysis runs one image analysis from the scan view. On success
// the pending result is stored and the view moves to result; on failure
// the view stays on scan with the loading flag cleared and a user-facing
// message set. Overlapping requests are not queued or deduplicated; the
// presentation layer disables the trigger while loading.
func (a *AppState) RequestAnalysis(ctx context.Context, image, userContext string) error {
	a.mu.Lock()
	if a.view != ViewScan {
		a.mu.Unlock()
		return fmt.Errorf("analysis can only be requested from the scan view (current: %s)", a.view)
	}
	a.loading = true
	a.errorMsg = ""
	a.mu.Unlock()

	result, err := a.analyzer.AnalyzeFoodImage(ctx, image, userContext)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.loading = false
	if err != nil {
		log.Printf("food image analysis failed: %v", err)
		a.errorMsg = analysisFailedMessage
		return err
	}
	a.result = result
	a.view = ViewResult
	return nil
}

// AcceptResult converts the pending analysis into a scan entry, persists
// it, clears the result and returns to the dashboard.
func (a *AppState) AcceptResult() (models.DailyLogEntry, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.view != ViewResult || a.result == nil {
		return models.DailyLogEntry{}, fmt.Errorf("no pending analysis result to accept")
	}
	entry, err := a.logSvc.AddFromAnalysis(a.result)
	if err != nil {
		return models.DailyLogEntry{}, err
	}
	a.result = nil
	a.view = ViewDashboard
	return entry, nil
}

// DiscardResult throws the pending analysis away and returns to scan for
// a retry. No entry is created.
func (a *AppState) DiscardResult() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.view != ViewResult {
		return fmt.Errorf("no pending analysis result to discard")
	}
	a.result = nil
	a.view = ViewScan
	return nil
}

// SubmitManualEntry records a manual entry and returns to the dashboard.
func (a *AppState) SubmitManualEntry(in ManualEntryInput) (models.DailyLogEntry, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.view != ViewManual {
		return models.DailyLogEntry{}, fmt.Errorf("manual entries are submitted from the manual view (current: %s)", a.view)
	}
	entry, err := a.logSvc.AddManual(in)
	if err != nil {
		return models.DailyLogEntry{}, err
	}
	a.view = ViewDashboard
	return entry, nil
}

// DeleteEntry removes an entry by id from any view.
func (a *AppState) DeleteEntry(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.logSvc.Delete(id)
}

// Entries returns the full log, newest first.
func (a *AppState) Entries() []models.DailyLogEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.logSvc.Entries()
}

// Dashboard builds today's aggregated view.
func (a *AppState) Dashboard() Dashboard {
	a.mu.Lock()
	defer a.mu.Unlock()
	return BuildDashboard(a.logSvc.Entries(), time.Now(), a.goals)
}
