package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/sirpyerre/jobly/docs"
	"github.com/sirpyerre/jobly/internal/api/handler"
	"github.com/sirpyerre/jobly/internal/api/middleware"
	"github.com/sirpyerre/jobly/internal/core/ports"
)

// Dependencies are the services and probes the router exposes.
type Dependencies struct {
	Logger    zerolog.Logger
	Gate      *middleware.Gate
	Auth      ports.AuthService
	Users     ports.UserService
	Companies ports.CompanyService
	Jobs      ports.JobService
	Readiness *handler.HealthDependenciesHandler

	// Metrics receives the HTTP collectors and backs /metrics. Nil means the
	// default Prometheus registry, which also holds the custom collectors.
	Metrics *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(middleware.ScopedLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "jobly",
		Registerer: registerer(deps.Metrics),
	}))

	authenticated := deps.Gate.Authenticated()
	admin := deps.Gate.Admin()

	// --- Auth ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	e.POST("/auth/login", authHandler.Login)

	// --- Users ---
	// Ownership is checked by the service, the gate only needs a valid token.
	userHandler := handler.NewUserHandler(deps.Users)
	users := e.Group("/users")
	users.POST("", userHandler.Register, deps.Gate.Optional())
	users.GET("", userHandler.List, authenticated)
	users.GET("/:username", userHandler.Get, authenticated)
	users.PATCH("/:username", userHandler.Update, authenticated)
	users.DELETE("/:username", userHandler.Delete, authenticated)

	// --- Companies ---
	companyHandler := handler.NewCompanyHandler(deps.Companies)
	companies := e.Group("/companies")
	companies.GET("", companyHandler.List, authenticated)
	companies.GET("/:handle", companyHandler.Get, authenticated)
	companies.POST("", companyHandler.Create, admin)
	companies.PATCH("/:handle", companyHandler.Update, admin)
	companies.DELETE("/:handle", companyHandler.Delete, admin)

	// --- Jobs ---
	jobHandler := handler.NewJobHandler(deps.Jobs)
	jobs := e.Group("/jobs")
	jobs.GET("", jobHandler.List, authenticated)
	jobs.GET("/:id", jobHandler.Get, authenticated)
	jobs.POST("", jobHandler.Create, admin)
	jobs.PATCH("/:id", jobHandler.Update, admin)
	jobs.DELETE("/:id", jobHandler.Delete, admin)

	// --- Health probes, metrics and docs (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness) // liveness: is the process alive?
	if deps.Readiness != nil {
		e.GET("/health/ready", deps.Readiness.Readiness) // readiness: are dependencies up?
	}
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: gatherer(deps.Metrics),
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func registerer(reg *prometheus.Registry) prometheus.Registerer {
	if reg == nil {
		return prometheus.DefaultRegisterer
	}
	return reg
}

func gatherer(reg *prometheus.Registry) prometheus.Gatherer {
	if reg == nil {
		return prometheus.DefaultGatherer
	}
	return reg
}
