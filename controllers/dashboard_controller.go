package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/crisuscata/nutriscan-ai/services"
)

// DashboardController serves the aggregated daily view.
type DashboardController struct {
	app *services.AppState
}

func NewDashboardController(app *services.AppState) *DashboardController {
	return &DashboardController{app: app}
}

func (c *DashboardController) Get(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.app.Dashboard())
}
