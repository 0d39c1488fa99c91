package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth     AuthConfig
	Postgres PostgresConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Audit    AuditConfig

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`
}

type AuthConfig struct {
	JWTSecret string `env:"JWT_SECRET, required"`
	// BcryptCost is the work factor used for new password digests.
	BcryptCost int `env:"BCRYPT_WORK_FACTOR, default=12"`
}

type PostgresConfig struct {
	URL          string `env:"DATABASE_URL,      default=postgres://localhost:5432/jobly?sslmode=disable"`
	MaxOpenConns int    `env:"DB_MAX_OPEN_CONNS, default=10"`
	Migrate      bool   `env:"DB_MIGRATE,        default=true"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=jobly"`
	// MaxPoolSize caps connections held by the audit writer.
	MaxPoolSize uint64 `env:"MONGO_MAX_POOL_SIZE, default=20"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
	PoolSize int    `env:"REDIS_POOL_SIZE, default=10"`
	// ConnectAttempts bounds the pings made at startup before giving up.
	ConnectAttempts int `env:"REDIS_CONNECT_ATTEMPTS, default=3"`
	// RevocationEnabled turns the token revocation list on. When off, the
	// access gate is purely stateless and Redis is not contacted.
	RevocationEnabled bool `env:"REVOCATION_ENABLED, default=true"`
}

type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=4"`
}

// IsDevelopment reports whether human-friendly output should be used.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Validate rejects settings the process cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET must not be empty"))
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("BCRYPT_WORK_FACTOR must be within [%d, %d], got %d", bcrypt.MinCost, bcrypt.MaxCost, c.Auth.BcryptCost))
	}
	if c.Postgres.MaxOpenConns < 1 {
		errs = append(errs, fmt.Errorf("DB_MAX_OPEN_CONNS must be positive, got %d", c.Postgres.MaxOpenConns))
	}
	if c.Audit.Workers < 1 {
		errs = append(errs, fmt.Errorf("AUDIT_WORKERS must be positive, got %d", c.Audit.Workers))
	}
	return errors.Join(errs...)
}

// LoadFrom reads configuration through lookuper and validates it.
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}
