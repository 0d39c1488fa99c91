package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirpyerre/jobly/internal/core/domain"
)

type stubAuditRepo struct {
	entries []domain.AuditEntry
	err     error
}

func (r *stubAuditRepo) Insert(_ context.Context, e *domain.AuditEntry) error {
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, *e)
	return nil
}

func TestAuditService_Record_FillsDefaults(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, discardLogger)

	if err := svc.Record(context.Background(), domain.AuditEntry{Entity: "company", Key: "acme", Action: domain.AuditDelete}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if len(repo.entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(repo.entries))
	}
	e := repo.entries[0]
	if e.ID == "" || e.At.IsZero() {
		t.Fatalf("expected id and timestamp, got %+v", e)
	}
}

func TestAuditService_Record_KeepsProvidedValues(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, discardLogger)
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	if err := svc.Record(context.Background(), domain.AuditEntry{ID: "fixed", At: at}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if e := repo.entries[0]; e.ID != "fixed" || !e.At.Equal(at) {
		t.Fatalf("provided values overwritten: %+v", e)
	}
}

func TestAuditService_Record_WrapsError(t *testing.T) {
	boom := errors.New("mongo down")
	svc := NewAuditService(&stubAuditRepo{err: boom}, discardLogger)

	if err := svc.Record(context.Background(), domain.AuditEntry{}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}
