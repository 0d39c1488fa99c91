package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sirpyerre/jobly/internal/core/domain"
	"github.com/sirpyerre/jobly/internal/core/ports"
)

const collectionAudit = "audit_log"

// AuditRepository implements ports.AuditRepository using MongoDB. The
// collection is append-only.
type AuditRepository struct {
	col *mongo.Collection
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(collectionAudit)}
}

var _ ports.AuditRepository = (*AuditRepository)(nil)

type auditDocument struct {
	ID         string    `bson:"_id"`
	Actor      string    `bson:"actor,omitempty"`
	Action     string    `bson:"action"`
	Entity     string    `bson:"entity"`
	Key        string    `bson:"key"`
	Fields     []string  `bson:"fields,omitempty"`
	At         time.Time `bson:"at"`
	RecordedAt time.Time `bson:"recorded_at"`
}

func toAuditDocument(e *domain.AuditEntry) auditDocument {
	return auditDocument{
		ID:         e.ID,
		Actor:      e.Actor,
		Action:     string(e.Action),
		Entity:     e.Entity,
		Key:        e.Key,
		Fields:     e.Fields,
		At:         e.At.UTC(),
		RecordedAt: time.Now().UTC(),
	}
}

// Insert persists one entry. Re-inserting an id already present is treated
// as success.
func (r *AuditRepository) Insert(ctx context.Context, e *domain.AuditEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, toAuditDocument(e))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// EnsureIndexes creates the lookup indexes of the audit collection.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "entity", Value: 1}, {Key: "key", Value: 1}, {Key: "at", Value: 1}}},
		{Keys: bson.D{{Key: "actor", Value: 1}}, Options: options.Index().SetSparse(true)},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
