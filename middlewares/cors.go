package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS lets the browser front-end, served from its own origin, talk to the
// API. The app is single-user and unauthenticated, so a wildcard is fine.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
