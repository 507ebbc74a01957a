package handlers

import (
	"github.com/foodlens-ai/foodlens/internal/web"
	"github.com/gin-gonic/gin"
)

// Register wires the handler's routes and the embedded UI onto router.
func Register(router *gin.Engine, h *Handler) {
	web.Register(router)

	router.GET("/health", h.Health)

	v1 := router.Group("/api/v1")
	v1.GET("/status", h.Status)
	v1.GET("/ui/state", h.UIState)
	v1.POST("/camera/open", h.CameraOpen)
	v1.POST("/predict", h.Predict)
}
