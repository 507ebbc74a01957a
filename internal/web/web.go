package web

import (
	"embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed static
var staticFS embed.FS

// Register serves the embedded single-page UI.
func Register(router *gin.Engine) {
	router.GET("/", func(c *gin.Context) {
		page, err := staticFS.ReadFile("static/index.html")
		if err != nil {
			c.String(http.StatusInternalServerError, "UI not available")
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", page)
	})
}
