package api

import (
	"errors"
	"net/http"

	"github.com/pageza/nutrichat/backend/internal/nutrition"
	"github.com/pageza/nutrichat/backend/internal/service"
)

// errBadRequest marks malformed input caught by a handler before any service call
var errBadRequest = errors.New("bad request")

// ClassifyError maps service errors to HTTP statuses. Unknown errors become
// a generic 500 so internals never reach the client.
func ClassifyError(err error) (int, string) {
	switch {
	case errors.Is(err, errBadRequest), errors.Is(err, nutrition.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, service.ErrChatNotFound), errors.Is(err, service.ErrMealNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, service.ErrUserExists), errors.Is(err, service.ErrPlanNotReady):
		return http.StatusConflict, err.Error()
	case errors.Is(err, service.ErrExportDisabled):
		return http.StatusServiceUnavailable, err.Error()
	default:
		return http.StatusInternalServerError, "Internal Server Error"
	}
}
