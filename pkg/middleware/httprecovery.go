package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/foodlens-ai/foodlens/internal/apperr"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// HTTPRecovery handles context errors/panics and sets response code accordingly
func HTTPRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if len(c.Errors) > 0 {
				info := apperr.From(c.Errors.Last().Err)
				c.JSON(info.HttpStatus, gin.H{"code": info.Code, "error": info.Message})
				c.Abort()
			}
			if err := recover(); err != nil {
				log.Error().Msgf("Panic occurred: %v\n%s", err, debug.Stack())
				errorMsg := fmt.Sprintf("%v", err)
				c.JSON(500, gin.H{"code": apperr.CodeUnexpected, "error": errorMsg})
				c.Abort()
			}
		}()
		c.Next()
	}
}
