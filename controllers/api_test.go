package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/crisuscata/nutriscan-ai/models"
	"github.com/crisuscata/nutriscan-ai/routes"
	"github.com/crisuscata/nutriscan-ai/services"
	"github.com/crisuscata/nutriscan-ai/storage"
)

type stubAnalyzer struct {
	result *models.NutritionalAnalysis
	err    error
}

func (s *stubAnalyzer) AnalyzeFoodImage(ctx context.Context, image, userContext string) (*models.NutritionalAnalysis, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func newTestRouter(t *testing.T, analyzer services.Analyzer) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	logSvc, err := services.NewLogService(storage.NewFileStore(filepath.Join(dir, "entries.json")))
	if err != nil {
		t.Fatalf("new log service: %v", err)
	}
	app := services.NewAppState(analyzer, logSvc)
	return routes.SetupRouter(app, analyzer, filepath.Join(dir, "thumbs"))
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestScanFlowEndToEnd(t *testing.T) {
	r := newTestRouter(t, &stubAnalyzer{result: &models.NutritionalAnalysis{
		EstimatedDishName: "Omelette",
		Totals:            &models.AnalysisTotals{TotalCalories: 320, ProteinGrams: 22, CarbohydrateGrams: 3, FatGrams: 24},
		Components:        []models.FoodComponent{},
		AccuracyNotice:    "Estimate.",
	}})

	if w := doJSON(t, r, http.MethodPost, "/api/navigate", gin.H{"view": "scan"}); w.Code != http.StatusOK {
		t.Fatalf("navigate to scan: status %d, body %s", w.Code, w.Body)
	}
	if w := doJSON(t, r, http.MethodPost, "/api/analysis", gin.H{"image": "data:image/jpeg;base64,QUJD"}); w.Code != http.StatusOK {
		t.Fatalf("analysis: status %d, body %s", w.Code, w.Body)
	}
	w := doJSON(t, r, http.MethodPost, "/api/analysis/accept", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("accept: status %d, body %s", w.Code, w.Body)
	}

	var accepted struct {
		Entry models.DailyLogEntry `json:"entry"`
		State services.Snapshot    `json:"state"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &accepted); err != nil {
		t.Fatalf("decode accept response: %v", err)
	}
	if accepted.Entry.Source != models.SourceScan || accepted.Entry.Calories != 320 {
		t.Fatalf("unexpected accepted entry: %+v", accepted.Entry)
	}
	if accepted.State.View != services.ViewDashboard || len(accepted.State.Entries) != 1 {
		t.Fatalf("unexpected state after accept: %+v", accepted.State)
	}
}

func TestAnalysisFailureSurfacesAsBadGateway(t *testing.T) {
	r := newTestRouter(t, &stubAnalyzer{err: services.ErrAnalysisService})

	if w := doJSON(t, r, http.MethodPost, "/api/navigate", gin.H{"view": "scan"}); w.Code != http.StatusOK {
		t.Fatalf("navigate: status %d", w.Code)
	}
	w := doJSON(t, r, http.MethodPost, "/api/analysis", gin.H{"image": "QUJD"})
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d: %s", w.Code, w.Body)
	}

	var state services.Snapshot
	sw := doJSON(t, r, http.MethodGet, "/api/state", nil)
	if err := json.Unmarshal(sw.Body.Bytes(), &state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if state.View != services.ViewScan || state.Error == "" || state.Loading {
		t.Fatalf("failed analysis must leave scan view with an error message, got %+v", state)
	}
}

func TestManualEntryAndDeleteOverHTTP(t *testing.T) {
	r := newTestRouter(t, &stubAnalyzer{})

	if w := doJSON(t, r, http.MethodPost, "/api/navigate", gin.H{"view": "manual"}); w.Code != http.StatusOK {
		t.Fatalf("navigate: status %d", w.Code)
	}
	w := doJSON(t, r, http.MethodPost, "/api/entries", gin.H{
		"name": "Apple", "calories": 95, "protein": 0, "carbs": 25, "fat": 0,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create entry: status %d, body %s", w.Code, w.Body)
	}
	var entry models.DailyLogEntry
	if err := json.Unmarshal(w.Body.Bytes(), &entry); err != nil {
		t.Fatalf("decode entry: %v", err)
	}
	if entry.Source != models.SourceManual || entry.Name != "Apple" {
		t.Fatalf("unexpected entry: %+v", entry)
	}

	if w := doJSON(t, r, http.MethodDelete, "/api/entries/"+entry.ID, nil); w.Code != http.StatusNoContent {
		t.Fatalf("delete entry: status %d", w.Code)
	}
	w = doJSON(t, r, http.MethodGet, "/api/entries", nil)
	var entries []models.DailyLogEntry
	if err := json.Unmarshal(w.Body.Bytes(), &entries); err != nil {
		t.Fatalf("decode entries: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty log after delete, got %+v", entries)
	}
}

func TestNavigateRejectsUndefinedTransition(t *testing.T) {
	r := newTestRouter(t, &stubAnalyzer{})
	w := doJSON(t, r, http.MethodPost, "/api/navigate", gin.H{"view": "result"})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for undefined transition, got %d", w.Code)
	}
}

func TestDashboardEndpoint(t *testing.T) {
	r := newTestRouter(t, &stubAnalyzer{})

	if w := doJSON(t, r, http.MethodPost, "/api/navigate", gin.H{"view": "manual"}); w.Code != http.StatusOK {
		t.Fatalf("navigate: status %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodPost, "/api/entries", gin.H{"name": "Rice bowl", "calories": 600}); w.Code != http.StatusCreated {
		t.Fatalf("create entry: status %d", w.Code)
	}

	w := doJSON(t, r, http.MethodGet, "/api/dashboard", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("dashboard: status %d", w.Code)
	}
	var d services.Dashboard
	if err := json.Unmarshal(w.Body.Bytes(), &d); err != nil {
		t.Fatalf("decode dashboard: %v", err)
	}
	if d.Totals.Calories != 600 {
		t.Fatalf("expected 600 kcal today, got %v", d.Totals.Calories)
	}
	if d.Progress["calories"].Goal != 2000 {
		t.Fatalf("expected default calorie goal 2000, got %v", d.Progress["calories"].Goal)
	}
	if len(d.Entries) != 1 {
		t.Fatalf("expected one entry on dashboard, got %d", len(d.Entries))
	}
}
