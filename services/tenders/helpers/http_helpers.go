package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	model "tender-tracker/internal/models"
	"tender-tracker/internal/tendererrors"
	"tender-tracker/utils"

	"github.com/gin-gonic/gin"
)

// ActorKey is the gin context key the identity middleware stores the
// authenticated actor under.
const ActorKey = "actor"

// CurrentActor returns the actor the identity middleware attached to the
// request. Handlers behind the middleware can rely on it being present.
func CurrentActor(c *gin.Context) model.Actor {
	v, ok := c.Get(ActorKey)
	if !ok {
		return model.Actor{}
	}
	actor, _ := v.(model.Actor)
	return actor
}

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, tendererrors.ErrValidation):
		return http.StatusBadRequest, "invalid input"
	case errors.Is(err, tendererrors.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, tendererrors.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, tendererrors.ErrConflict):
		return http.StatusConflict, "conflict"
	case errors.Is(err, tendererrors.ErrDependency):
		return http.StatusBadGateway, "upstream dependency failed"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}

// ParseTenderFilter reads the listing query parameters. Page and limit fall
// back to their defaults on garbage input rather than erroring.
func ParseTenderFilter(c *gin.Context) model.TenderFilter {
	f := model.TenderFilter{
		Status:   model.TenderStatus(c.Query("status")),
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		f.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		f.Limit = limit
	}
	return f
}
