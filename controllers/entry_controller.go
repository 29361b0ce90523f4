package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/crisuscata/nutriscan-ai/services"
)

// EntryController manages the diary: listing, manual submission, deletion.
type EntryController struct {
	app *services.AppState
}

func NewEntryController(app *services.AppState) *EntryController {
	return &EntryController{app: app}
}

func (c *EntryController) List(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.app.Entries())
}

func (c *EntryController) Create(ctx *gin.Context) {
	var req struct {
		Name     string  `json:"name" binding:"required"`
		Calories float64 `json:"calories"`
		Protein  float64 `json:"protein"`
		Carbs    float64 `json:"carbs"`
		Fat      float64 `json:"fat"`
		ImageURL string  `json:"imageUrl"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	entry, err := c.app.SubmitManualEntry(services.ManualEntryInput{
		Name:     req.Name,
		Calories: req.Calories,
		Protein:  req.Protein,
		Carbs:    req.Carbs,
		Fat:      req.Fat,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, entry)
}

func (c *EntryController) Delete(ctx *gin.Context) {
	if err := c.app.DeleteEntry(ctx.Param("id")); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.Status(http.StatusNoContent)
}
