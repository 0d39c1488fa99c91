package domain

import "time"

// AuditAction names a write operation recorded in the audit trail.
type AuditAction string

const (
	AuditCreate AuditAction = "create"
	AuditUpdate AuditAction = "update"
	AuditDelete AuditAction = "delete"
)

// AuditEntry records one successful write.
type AuditEntry struct {
	ID     string
	Actor  string // username from the verified token; empty for public signup
	Action AuditAction
	Entity string // "company", "job" or "user"
	Key    string
	Fields []string // assigned columns for updates
	At     time.Time
}
