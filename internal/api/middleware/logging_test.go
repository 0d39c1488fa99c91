package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/sirpyerre/jobly/pkg/logger"
)

func TestRequestLogger_UsesHandledStatus(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	e.Use(RequestLogger(zerolog.New(&buf)))
	e.GET("/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot, "short and stout")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected 418, got %d", rec.Code)
	}
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if entry["status"] != float64(http.StatusTeapot) || entry["level"] != "warn" || entry["uri"] != "/boom" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestScopedLogger_TagsRequestID(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: func() string { return "req-42" },
	}))
	e.Use(ScopedLogger(zerolog.New(&buf)))
	e.GET("/ping", func(c echo.Context) error {
		l := logger.FromContext(c.Request().Context())
		l.Info().Msg("inside")
		return c.NoContent(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if entry["request_id"] != "req-42" || entry["message"] != "inside" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}
