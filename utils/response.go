package utils

import (
	"errors"

	"tender-tracker/internal/tendererrors"

	"github.com/gin-gonic/gin"
)

// JSONResponse sends a structured JSON response
func JSONResponse(c *gin.Context, status int, data any, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

// JSONError sends a structured error response. When the error chain carries a
// known kind, it is surfaced as a machine-readable field so clients can
// branch without parsing messages.
func JSONError(c *gin.Context, status int, err error, message string) {
	body := gin.H{
		"status":  status,
		"message": message,
		"error":   err.Error(),
	}
	if kind := errorKind(err); kind != "" {
		body["kind"] = kind
	}
	c.JSON(status, body)
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, tendererrors.ErrValidation):
		return "validation"
	case errors.Is(err, tendererrors.ErrNotFound):
		return "not_found"
	case errors.Is(err, tendererrors.ErrForbidden):
		return "forbidden"
	case errors.Is(err, tendererrors.ErrConflict):
		return "conflict"
	case errors.Is(err, tendererrors.ErrDependency):
		return "dependency"
	default:
		return ""
	}
}
