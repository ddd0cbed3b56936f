package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/robert-malhotra/go-stac-bridge/catalog"
	"github.com/robert-malhotra/go-stac-bridge/translate"
)

// errorBody is the JSON error envelope returned by every failing route.
type errorBody struct {
	Errors []string `json:"errors"`
}

// statusFor maps engine errors onto HTTP statuses. Client mistakes stay
// in the 4xx range; upstream Catalog Service faults surface as 502 so
// callers can tell them apart from bridge bugs.
func statusFor(err error) int {
	var translation *translate.TranslationError
	var invalidSort *translate.InvalidSortPropertyError
	var upstream *catalog.APIError

	switch {
	case errors.As(err, &invalidSort):
		return http.StatusUnprocessableEntity
	case errors.As(err, &translation):
		return http.StatusBadRequest
	case errors.Is(err, translate.ErrConflictingCollections):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrResolverExhausted):
		return http.StatusBadGateway
	case errors.As(err, &upstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.log.Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Error(err),
		)
	}
	c.AbortWithStatusJSON(status, errorBody{Errors: []string{err.Error()}})
}
