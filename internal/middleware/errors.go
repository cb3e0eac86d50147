package middleware

import (
	"net/http"
	"runtime/debug"

	"blogapi/internal/apperr"
	"blogapi/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ErrorHandler is the single place failures turn into responses. Handlers
// and middleware attach errors with c.Error; after the chain unwinds this
// classifies the last one and renders the fail/error envelope. Register it
// before anything that can abort with an error.
func ErrorHandler(cfg *config.Config, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		appErr := apperr.Classify(err)

		if appErr.StatusCode >= http.StatusInternalServerError {
			log.WithFields(logrus.Fields{
				"method": c.Request.Method,
				"path":   c.Request.URL.Path,
			}).Error(err)
		}

		body := gin.H{
			"status":  appErr.Status,
			"message": appErr.Message,
		}

		if cfg.IsProduction() {
			if !appErr.Operational {
				// Never leak internals to callers.
				body["message"] = "Unknown error"
			}
			c.JSON(appErr.StatusCode, body)
			return
		}

		// Development and test get the raw error and a stack for debugging.
		body["err"] = err.Error()
		body["stack"] = string(debug.Stack())
		c.JSON(appErr.StatusCode, body)
	}
}
