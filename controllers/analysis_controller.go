package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/crisuscata/nutriscan-ai/services"
	"github.com/crisuscata/nutriscan-ai/utils"
)

// autofillContext is the fixed instruction the manual-entry autofill sends
// along with the photo instead of user-provided context.
const autofillContext = "Identify this food (or its nutrition label) and extract its exact macros. Be concise."

// AnalysisController drives the scan flow and the manual-entry autofill.
type AnalysisController struct {
	app       *services.AppState
	analyzer  services.Analyzer
	thumbsDir string
}

func NewAnalysisController(app *services.AppState, analyzer services.Analyzer, thumbsDir string) *AnalysisController {
	return &AnalysisController{app: app, analyzer: analyzer, thumbsDir: thumbsDir}
}

type analyzeRequest struct {
	Image   string `json:"image" binding:"required"`
	Context string `json:"context"`
}

func isAnalysisError(err error) bool {
	return errors.Is(err, services.ErrAnalysisService) ||
		errors.Is(err, services.ErrEmptyResponse) ||
		errors.Is(err, services.ErrMalformedResponse)
}

// Analyze runs the scan-view analysis command. Analysis failures come back
// as 502 with the state already updated (scan view, error message set);
// calling from the wrong view is a 409.
func (c *AnalysisController) Analyze(ctx *gin.Context) {
	var req analyzeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := c.app.RequestAnalysis(ctx.Request.Context(), req.Image, req.Context); err != nil {
		if isAnalysisError(err) {
			ctx.JSON(http.StatusBadGateway, gin.H{"error": "analysis failed", "state": c.app.Snapshot()})
			return
		}
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, c.app.Snapshot())
}

func (c *AnalysisController) Accept(ctx *gin.Context) {
	entry, err := c.app.AcceptResult()
	if err != nil {
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"entry": entry, "state": c.app.Snapshot()})
}

func (c *AnalysisController) Discard(ctx *gin.Context) {
	if err := c.app.DiscardResult(); err != nil {
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, c.app.Snapshot())
}

// Autofill analyzes a photo for the manual entry form and suggests field
// values without creating an entry or touching the view state. The
// thumbnail is best effort; a failed write only costs the preview.
func (c *AnalysisController) Autofill(ctx *gin.Context) {
	var req struct {
		Image string `json:"image" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var imageURL string
	if strings.HasPrefix(req.Image, "data:") {
		url, err := utils.SaveBase64Image(req.Image, c.thumbsDir, "manual")
		if err != nil {
			log.Printf("thumbnail save failed: %v", err)
		} else {
			imageURL = url
		}
	}

	analysis, err := c.analyzer.AnalyzeFoodImage(ctx.Request.Context(), req.Image, autofillContext)
	if err != nil {
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "analysis failed"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"name":     analysis.EstimatedDishName,
		"calories": analysis.Totals.TotalCalories,
		"protein":  analysis.Totals.ProteinGrams,
		"carbs":    analysis.Totals.CarbohydrateGrams,
		"fat":      analysis.Totals.FatGrams,
		"imageUrl": imageURL,
	})
}
