package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

const (
	connectTimeout    = 10 * time.Second
	disconnectTimeout = 5 * time.Second
)

// Config describes the audit store.
type Config struct {
	URI         string
	Database    string
	MaxPoolSize uint64
}

// Conn is a live client bound to the audit database.
type Conn struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// Connect dials the audit store and checks it answers a ping. Audit writes
// are acknowledged by the primary only; they are best effort and must not
// hold requests up waiting for replication.
func Connect(ctx context.Context, cfg Config) (*Conn, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName("jobly-audit").
		SetServerSelectionTimeout(connectTimeout).
		SetRetryWrites(true)
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	conn := &Conn{
		Client: client,
		DB:     client.Database(cfg.Database, options.Database().SetWriteConcern(writeconcern.W1())),
	}
	if err := conn.Ping(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping %s: %w", cfg.Database, err)
	}
	return conn, nil
}

// Ping runs the ping command against the audit database.
func (c *Conn) Ping(ctx context.Context) error {
	return c.DB.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}

// Close disconnects, giving in-flight operations a bounded grace period.
func (c *Conn) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
	defer cancel()
	return c.Client.Disconnect(ctx)
}
