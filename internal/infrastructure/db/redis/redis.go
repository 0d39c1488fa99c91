package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	pingTimeout = 2 * time.Second
	firstRetry  = 250 * time.Millisecond
)

// Config describes the connection backing the revocation list.
type Config struct {
	Addr     string
	Password string
	DB       int
	PoolSize int
	// Attempts is how many pings Connect makes before failing. Values
	// below one mean a single ping.
	Attempts int
}

// Connect opens a client and waits for the server to answer, retrying with
// a doubling delay so the API can start alongside a Redis container that is
// still booting.
func Connect(ctx context.Context, cfg Config, log zerolog.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		ClientName:   "jobly-revocations",
		DialTimeout:  pingTimeout,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})

	attempts := max(cfg.Attempts, 1)
	wait := firstRetry
	var err error
	for i := 1; ; i++ {
		if err = ping(ctx, client); err == nil {
			log.Info().Str("addr", cfg.Addr).Int("db", cfg.DB).Msg("redis connected")
			return client, nil
		}
		if i == attempts {
			break
		}
		log.Warn().Err(err).Int("attempt", i).Dur("retry_in", wait).Msg("redis not ready")
		select {
		case <-ctx.Done():
			_ = client.Close()
			return nil, ctx.Err()
		case <-time.After(wait):
		}
		wait *= 2
	}

	_ = client.Close()
	return nil, fmt.Errorf("redis %s unreachable after %d attempts: %w", cfg.Addr, attempts, err)
}

func ping(ctx context.Context, client *redis.Client) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return client.Ping(ctx).Err()
}
