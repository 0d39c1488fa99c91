package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sirpyerre/jobly/internal/core/domain"
	"github.com/sirpyerre/jobly/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService writing to repo.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Record fills in a missing id or timestamp and persists the entry.
func (s *auditService) Record(ctx context.Context, entry domain.AuditEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.At.IsZero() {
		entry.At = time.Now().UTC()
	}

	if err := s.repo.Insert(ctx, &entry); err != nil {
		return fmt.Errorf("record audit entry: %w", err)
	}

	s.log.Debug().
		Str("entity", entry.Entity).
		Str("key", entry.Key).
		Str("action", string(entry.Action)).
		Str("actor", entry.Actor).
		Msg("audit entry recorded")
	return nil
}

// auditor is embedded by the entity services. A nil sink disables auditing.
type auditor struct {
	sink ports.AuditSink
}

func (a auditor) audit(actor domain.Identity, action domain.AuditAction, entity, key string, fields []string) {
	if a.sink == nil {
		return
	}
	a.sink.Enqueue(domain.AuditEntry{
		ID:     uuid.NewString(),
		Actor:  actor.Username,
		Action: action,
		Entity: entity,
		Key:    key,
		Fields: fields,
		At:     time.Now().UTC(),
	})
}
