package ports

import (
	"context"

	"github.com/sirpyerre/jobly/internal/core/domain"
)

// AuditService persists a single audit entry.
type AuditService interface {
	Record(ctx context.Context, entry domain.AuditEntry) error
}

// AuditSink accepts audit entries for asynchronous recording. Enqueue never
// blocks the caller.
type AuditSink interface {
	Enqueue(entry domain.AuditEntry)
}
