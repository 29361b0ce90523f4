package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/crisuscata/nutriscan-ai/controllers"
	"github.com/crisuscata/nutriscan-ai/middlewares"
	"github.com/crisuscata/nutriscan-ai/services"
)

// SetupRouter wires the API surface the presentation layer consumes.
// thumbsDir is where autofill thumbnails live; it is served statically.
func SetupRouter(app *services.AppState, analyzer services.Analyzer, thumbsDir string) *gin.Engine {
	r := gin.Default()
	r.Use(middlewares.CORS())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.Static("/thumbs", thumbsDir)

	state := controllers.NewStateController(app)
	analysis := controllers.NewAnalysisController(app, analyzer, thumbsDir)
	entries := controllers.NewEntryController(app)
	dashboard := controllers.NewDashboardController(app)

	api := r.Group("/api")
	{
		api.GET("/state", state.GetState)
		api.POST("/navigate", state.Navigate)

		api.POST("/analysis", analysis.Analyze)
		api.POST("/analysis/accept", analysis.Accept)
		api.POST("/analysis/discard", analysis.Discard)

		api.GET("/entries", entries.List)
		api.POST("/entries", entries.Create)
		api.POST("/entries/autofill", analysis.Autofill)
		api.DELETE("/entries/:id", entries.Delete)

		api.GET("/dashboard", dashboard.Get)
	}

	return r
}
