package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/crisuscata/nutriscan-ai/services"
)

// StateController exposes the presentation boundary: the current snapshot
// and plain view navigation.
type StateController struct {
	app *services.AppState
}

func NewStateController(app *services.AppState) *StateController {
	return &StateController{app: app}
}

func (c *StateController) GetState(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.app.Snapshot())
}

func (c *StateController) Navigate(ctx *gin.Context) {
	var req struct {
		View string `json:"view" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := c.app.Navigate(services.View(req.View)); err != nil {
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, c.app.Snapshot())
}
