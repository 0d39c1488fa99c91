package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/sirpyerre/jobly/internal/api/metrics"
	"github.com/sirpyerre/jobly/internal/core/domain"
	"github.com/sirpyerre/jobly/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	recordTimeout  = 5 * time.Second
)

// Dispatcher routes audit entries to a fixed set of workers using consistent
// hashing on entity and key, so entries for one record are written in the
// order they were produced.
type Dispatcher struct {
	workers []chan domain.AuditEntry
	service ports.AuditService
	log     zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.AuditService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.AuditEntry, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEntry, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Each write is bounded by
// recordTimeout and derives from ctx.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Stop refuses further entries, lets the workers drain what is queued and
// waits for them to finish.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	for _, ch := range d.workers {
		close(ch)
	}
	d.mu.Unlock()
	d.wg.Wait()
}

// Enqueue hands the entry to the worker responsible for its record. It never
// blocks: when that worker's buffer is full the entry is dropped and counted.
func (d *Dispatcher) Enqueue(entry domain.AuditEntry) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		metrics.AuditEntriesTotal.WithLabelValues("dropped").Inc()
		return
	}

	idx := d.shardIndex(entry.Entity + ":" + entry.Key)
	// Counted before the send so the worker's Dec never runs first.
	depth := metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx))
	depth.Inc()
	select {
	case d.workers[idx] <- entry:
	default:
		depth.Dec()
		metrics.AuditEntriesTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().
			Str("entity", entry.Entity).
			Str("key", entry.Key).
			Int("worker_id", idx).
			Msg("audit queue full, entry dropped")
	}
}

// shardIndex maps a record key deterministically to a worker index.
func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEntry) {
	defer d.wg.Done()
	depth := metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(id))

	for entry := range ch {
		depth.Dec()

		recordCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
		start := time.Now()
		err := d.service.Record(recordCtx, entry)
		cancel()
		metrics.AuditRecordDuration.Observe(time.Since(start).Seconds())

		if err != nil {
			metrics.AuditEntriesTotal.WithLabelValues("failed").Inc()
			d.log.Error().Err(err).
				Str("entity", entry.Entity).
				Str("key", entry.Key).
				Int("worker_id", id).
				Msg("audit entry not recorded")
			continue
		}
		metrics.AuditEntriesTotal.WithLabelValues("recorded").Inc()
	}
}
