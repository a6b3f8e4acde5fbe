package queue

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/majiflow/billing-gateway/internal/api/metrics"
	"github.com/majiflow/billing-gateway/internal/core/ports"
)

const (
	defaultWorkers = 2
	channelBuffer  = 256
	writeTimeout   = 5 * time.Second
)

// AuditDispatcher moves audit events off the request path onto a small pool
// of writer goroutines. Recording is best effort: when the buffer is full the
// event is dropped and counted rather than blocking a request.
type AuditDispatcher struct {
	events chan ports.AuditEvent
	repo   ports.AuditRepository
	log    zerolog.Logger
}

// NewAuditDispatcher creates a dispatcher writing through repo. If
// numWorkers <= 0, defaultWorkers is used.
func NewAuditDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *AuditDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &AuditDispatcher{
		events: make(chan ports.AuditEvent, channelBuffer),
		repo:   repo,
		log:    log,
	}
	d.start(numWorkers)
	return d
}

// Record enqueues an event without blocking. Implements ports.AuditRecorder.
func (d *AuditDispatcher) Record(event ports.AuditEvent) {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}
	select {
	case d.events <- event:
	default:
		metrics.AuditEventsDroppedTotal.Inc()
		d.log.Warn().Str("type", event.Type).Msg("audit queue full, event dropped")
	}
}

// Close stops accepting events and lets workers drain what is buffered.
func (d *AuditDispatcher) Close() {
	close(d.events)
}

func (d *AuditDispatcher) start(numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go d.runWorker(i)
	}
}

func (d *AuditDispatcher) runWorker(id int) {
	for event := range d.events {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		if err := d.repo.Insert(ctx, event); err != nil {
			d.log.Error().Err(err).
				Str("type", event.Type).
				Int("worker_id", id).
				Msg("audit write failed")
		}
		cancel()
	}
}
