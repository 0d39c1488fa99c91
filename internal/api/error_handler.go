package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sirpyerre/jobly/internal/core/domain"
	"github.com/sirpyerre/jobly/pkg/logger"
)

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error string `json:"error"`
}

// errorRule maps a domain sentinel to a status. An empty message means the
// error text itself is safe to return.
type errorRule struct {
	target  error
	status  int
	message string
}

// Order matters: the first rule whose target matches wins.
var errorRules = []errorRule{
	{domain.ErrInvalidRequest, http.StatusBadRequest, ""},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
	{domain.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
	{domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
	{domain.ErrNotFound, http.StatusNotFound, ""},
	{domain.ErrUserExists, http.StatusConflict, "user already exists"},
	{domain.ErrCompanyExists, http.StatusConflict, "company already exists"},
}

// NewHTTPErrorHandler renders handler errors as {"error": "..."}. Anything
// no rule recognises is logged and reported as a 500 with a generic message.
// The request-scoped logger is preferred over log when one is present.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, msg, known := classify(err)
		l := logger.FromContextOr(c.Request().Context(), log)
		var rejected *domain.RejectedError
		switch {
		case !known:
			l.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("route", c.Path()).
				Msg("request failed")
		case errors.As(err, &rejected):
			l.Warn().
				Err(rejected.Cause).
				Str("route", c.Path()).
				Msg("request rejected")
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, errorResponse{Error: msg})
	}
}

// classify reports the status and client message for err, and whether err
// was expected.
func classify(err error) (int, string, bool) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprint(he.Message), true
	}

	for _, r := range errorRules {
		if !errors.Is(err, r.target) {
			continue
		}
		if r.message == "" {
			return r.status, err.Error(), true
		}
		return r.status, r.message, true
	}
	return http.StatusInternalServerError, "internal server error", false
}
