package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marketbriefs/marketbriefs/internal/domain/dto"
	"github.com/marketbriefs/marketbriefs/internal/logger"
)

// ErrorHandler drains errors that handlers attached to the context via
// c.Error and turns the last one into a standardized JSON response.
//
// Behavior:
//   - Runs the rest of the chain first.
//   - Logs every collected error with the request path.
//   - If the response was not written yet, answers 500 with the last
//     error wrapped in dto.ErrorResponse.
//
// Usage:
//
//	router := gin.New()
//	router.Use(middleware.ErrorHandler)
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 {
		return
	}

	for _, ginErr := range c.Errors {
		logger.L().Error().
			Err(ginErr.Err).
			Str("path", c.Request.URL.Path).
			Msg("request error")
	}

	if c.Writer.Written() {
		return
	}
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error", c.Errors.Last().Err))
}

// AbortWithError stops the handler chain, records err on the context
// and renders a standardized error body with the given status.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
