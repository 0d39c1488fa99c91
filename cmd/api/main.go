// Command api serves the Jobly HTTP API.
//
//	@title						Jobly API
//	@version					1.0
//	@description				Job board API: companies, jobs and user accounts.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the token.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/sirpyerre/jobly/internal/api"
	"github.com/sirpyerre/jobly/internal/api/handler"
	"github.com/sirpyerre/jobly/internal/api/middleware"
	"github.com/sirpyerre/jobly/internal/core/ports"
	"github.com/sirpyerre/jobly/internal/core/service"
	"github.com/sirpyerre/jobly/internal/infrastructure/db/mongo"
	"github.com/sirpyerre/jobly/internal/infrastructure/db/postgres"
	"github.com/sirpyerre/jobly/internal/infrastructure/db/redis"
	"github.com/sirpyerre/jobly/internal/infrastructure/queue"
	"github.com/sirpyerre/jobly/internal/infrastructure/security"
	"github.com/sirpyerre/jobly/internal/pkg/config"
	"github.com/sirpyerre/jobly/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "jobly-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("api stopped with error")
	}
	log.Info().Msg("api stopped")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Postgres ---
	db, err := postgres.Connect(ctx, postgres.Config{
		URL:          cfg.Postgres.URL,
		MaxOpenConns: cfg.Postgres.MaxOpenConns,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.Postgres.Migrate {
		if err := postgres.Migrate(db, log); err != nil {
			return err
		}
	}

	// --- MongoDB (audit trail) ---
	audit, err := mongo.Connect(ctx, mongo.Config{
		URI:         cfg.Mongo.URI,
		Database:    cfg.Mongo.Database,
		MaxPoolSize: cfg.Mongo.MaxPoolSize,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := audit.Close(); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	auditRepo := mongo.NewAuditRepository(audit.DB)
	if err := auditRepo.EnsureIndexes(ctx); err != nil {
		return err
	}

	readiness := handler.NewHealthDependenciesHandler().
		With("postgres", db.PingContext).
		With("mongodb", audit.Ping)

	// --- Redis (token revocation list) ---
	var revocations ports.RevocationList
	if cfg.Redis.RevocationEnabled {
		rdb, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
			Attempts: cfg.Redis.ConnectAttempts,
		}, log)
		if err != nil {
			return err
		}
		defer rdb.Close()
		revocations = redis.NewRevocationList(rdb)
		readiness.With("redis", func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
	} else {
		log.Warn().Msg("token revocation disabled, deleted users keep valid tokens")
	}

	// --- Security ---
	hasher, err := security.NewBcryptHasher(cfg.Auth.BcryptCost)
	if err != nil {
		return err
	}
	tokens, err := security.NewJWTIssuer([]byte(cfg.Auth.JWTSecret))
	if err != nil {
		return err
	}

	// --- Audit dispatcher ---
	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, service.NewAuditService(auditRepo, log), log)
	dispatcher.Start(ctx)
	defer dispatcher.Stop()

	// --- Services ---
	users := postgres.NewUserRepository(db)
	companies := postgres.NewCompanyRepository(db)
	jobs := postgres.NewJobRepository(db)

	e := api.NewRouter(api.Dependencies{
		Logger:    log,
		Gate:      middleware.NewGate(tokens, revocations, log),
		Auth:      service.NewAuthService(users, hasher, tokens, log),
		Users:     service.NewUserService(users, hasher, tokens, revocations, dispatcher, log),
		Companies: service.NewCompanyService(companies, jobs, dispatcher, log),
		Jobs:      service.NewJobService(jobs, dispatcher, log),
		Readiness: readiness,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("api listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
