package persist

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/candyledger/internal/dependencies/clock"
	"github.com/mcoot/candyledger/internal/metrics"
	"github.com/mcoot/candyledger/internal/storage"
)

const flushTimeout = 30 * time.Second

// Source provides the state to persist
type Source interface {
	Snapshot() *storage.Snapshot
}

// Scheduler batches mutations into delayed flushes. The first mutation after
// a flush arms a timer; when it fires, the current state is snapshotted and
// saved. Mutations during a flush arm the next timer, so none is dropped.
type Scheduler struct {
	source  Source
	backend storage.Backend
	clock   clock.Clock
	delay   time.Duration
	metrics *metrics.Metrics
	logger  *slog.Logger

	mu     sync.Mutex
	timer  clock.Timer
	armed  bool
	closed bool

	// serializes flushes so saves land in snapshot order
	flushMu sync.Mutex
}

// New creates a Scheduler
func New(source Source, backend storage.Backend, clk clock.Clock, delay time.Duration, m *metrics.Metrics, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		source:  source,
		backend: backend,
		clock:   clk,
		delay:   delay,
		metrics: m,
		logger:  logger.With(slog.String("component", "persist")),
	}
}

// RequestFlush schedules a flush unless one is already armed
func (s *Scheduler) RequestFlush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.armed || s.closed {
		return
	}
	s.armed = true
	s.timer = s.clock.AfterFunc(s.delay, s.onTimer)
}

// Armed reports whether a flush is scheduled
func (s *Scheduler) Armed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.armed
}

func (s *Scheduler) onTimer() {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	if err := s.flush(ctx); err != nil {
		// Retry with the next scheduled flush
		s.RequestFlush()
	}
}

// Flush saves the current state now, cancelling any armed timer
func (s *Scheduler) Flush(ctx context.Context) error {
	return s.flush(ctx)
}

// Close stops scheduling and performs a final flush
func (s *Scheduler) Close(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return s.flush(ctx)
}

func (s *Scheduler) flush(ctx context.Context) error {
	s.flushMu.Lock()
	defer s.flushMu.Unlock()

	// Disarm before snapshotting: any mutation from here on re-arms.
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.armed = false
	s.mu.Unlock()

	snap := s.source.Snapshot()
	start := time.Now()
	err := s.backend.Save(ctx, snap)
	s.metrics.FlushDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		s.metrics.Flushes.WithLabelValues(metrics.FlushFailed).Inc()
		s.logger.Error("flush failed",
			slog.String("error", err.Error()),
			slog.Int("players", len(snap.Players)))
		return err
	}
	s.metrics.Flushes.WithLabelValues(metrics.FlushOK).Inc()
	s.logger.Debug("state flushed",
		slog.Int("players", len(snap.Players)),
		slog.Int("clans", len(snap.Clans)),
		slog.Int("promos", len(snap.Promos)),
		slog.Duration("duration", time.Since(start)))
	return nil
}
