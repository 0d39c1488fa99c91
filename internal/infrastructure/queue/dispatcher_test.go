package queue

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/sirpyerre/jobly/internal/api/metrics"
	"github.com/sirpyerre/jobly/internal/core/domain"
)

type recordingService struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
	err     error
	block   chan struct{}
}

func (s *recordingService) Record(_ context.Context, e domain.AuditEntry) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
	return s.err
}

func TestDispatcher_PreservesPerRecordOrder(t *testing.T) {
	svc := &recordingService{}
	d := NewDispatcher(4, svc, zerolog.Nop())
	d.Start(context.Background())

	actions := []domain.AuditAction{domain.AuditCreate, domain.AuditUpdate, domain.AuditUpdate, domain.AuditDelete}
	for _, a := range actions {
		d.Enqueue(domain.AuditEntry{Entity: "company", Key: "acme", Action: a})
		d.Enqueue(domain.AuditEntry{Entity: "job", Key: "7", Action: a})
	}
	d.Stop()

	var acme []domain.AuditAction
	for _, e := range svc.entries {
		if e.Key == "acme" {
			acme = append(acme, e.Action)
		}
	}
	if len(svc.entries) != 2*len(actions) {
		t.Fatalf("expected %d entries, got %d", 2*len(actions), len(svc.entries))
	}
	for i := range actions {
		if acme[i] != actions[i] {
			t.Fatalf("order not preserved: %v", acme)
		}
	}
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(8, &recordingService{}, zerolog.Nop())

	first := d.shardIndex("company:acme")
	for range 10 {
		if got := d.shardIndex("company:acme"); got != first {
			t.Fatalf("shard changed from %d to %d", first, got)
		}
	}
	if first < 0 || first >= 8 {
		t.Fatalf("shard %d out of range", first)
	}
}

func TestDispatcher_DefaultWorkers(t *testing.T) {
	d := NewDispatcher(0, &recordingService{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}

func TestDispatcher_FullShardDropsWithoutBlocking(t *testing.T) {
	svc := &recordingService{block: make(chan struct{})}
	d := NewDispatcher(1, svc, zerolog.Nop())
	d.Start(context.Background())

	// One entry is held by the blocked worker, channelBuffer more fill the
	// buffer, and the rest must be dropped.
	total := channelBuffer + 10
	for range total {
		d.Enqueue(domain.AuditEntry{Entity: "user", Key: "alice"})
	}

	close(svc.block)
	d.Stop()

	if n := len(svc.entries); n >= total || n < channelBuffer {
		t.Fatalf("expected between %d and %d recorded entries, got %d", channelBuffer, total-1, n)
	}
}

func TestDispatcher_FailuresDoNotStopWorker(t *testing.T) {
	svc := &recordingService{err: errors.New("mongo down")}
	d := NewDispatcher(1, svc, zerolog.Nop())
	d.Start(context.Background())

	d.Enqueue(domain.AuditEntry{Entity: "user", Key: "a"})
	d.Enqueue(domain.AuditEntry{Entity: "user", Key: "b"})
	d.Stop()

	if len(svc.entries) != 2 {
		t.Fatalf("expected both entries attempted, got %d", len(svc.entries))
	}
}

func TestDispatcher_EnqueueAfterStop(t *testing.T) {
	svc := &recordingService{}
	d := NewDispatcher(2, svc, zerolog.Nop())
	d.Start(context.Background())
	d.Stop()
	d.Stop()

	d.Enqueue(domain.AuditEntry{Entity: "user", Key: "late"})
	if len(svc.entries) != 0 {
		t.Fatalf("entry after stop must be dropped")
	}
}

func TestDispatcher_QueueDepthNeverNegative(t *testing.T) {
	gauge := metrics.AuditQueueDepth.WithLabelValues("0")
	base := testutil.ToFloat64(gauge)

	svc := &recordingService{block: make(chan struct{})}
	d := NewDispatcher(1, svc, zerolog.Nop())
	d.Start(context.Background())

	for range channelBuffer + 10 {
		d.Enqueue(domain.AuditEntry{Entity: "job", Key: "7"})
	}
	queued := testutil.ToFloat64(gauge) - base
	if queued < 0 || queued > channelBuffer {
		t.Fatalf("expected depth within [0, %d], got %v", channelBuffer, queued)
	}

	close(svc.block)
	d.Stop()

	if got := testutil.ToFloat64(gauge) - base; got != 0 {
		t.Fatalf("expected depth back to baseline, got %v", got)
	}
}
