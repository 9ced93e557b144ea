package collector

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Scheduler drives the collector on a fixed period. Cycles never overlap:
// each invocation returns before the next wait begins. A failed cycle is
// already counted by the collector and is simply logged here; the fixed
// period is the retry mechanism.
type Scheduler struct {
	cfg       Config
	collector *Collector
	logger    *slog.Logger
	onCycle   func(Outcome)

	firstDone chan struct{}
	firstOnce sync.Once
}

// NewScheduler creates a Scheduler. Config defaults are applied
// automatically.
func NewScheduler(cfg Config, c *Collector, logger *slog.Logger) *Scheduler {
	cfg.ApplyDefaults()
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		cfg:       cfg,
		collector: c,
		logger:    logger.With("component", "scheduler"),
		firstDone: make(chan struct{}),
	}
}

// FirstCycleDone returns a channel that is closed once the initial cycle
// has completed, successfully or not. Callers use it to delay serving the
// store until it has been populated at least once.
func (s *Scheduler) FirstCycleDone() <-chan struct{} {
	return s.firstDone
}

// SetOnCycle sets a hook invoked after every cycle with its outcome.
// Must be called before Run; it is not safe for concurrent use.
func (s *Scheduler) SetOnCycle(fn func(Outcome)) {
	s.onCycle = fn
}

// Run executes one cycle immediately, so the store is populated before the
// exposition endpoint is first scraped, then continues at the configured
// interval until ctx is cancelled. Run always returns nil.
func (s *Scheduler) Run(ctx context.Context) error {
	s.cycle(ctx)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.cycle(ctx)
		}
	}
}

func (s *Scheduler) cycle(ctx context.Context) {
	outcome, err := s.collector.RunCycle(ctx)
	if err != nil {
		s.logger.Warn("collection cycle failed", "error", err)
	}
	if s.onCycle != nil {
		s.onCycle(outcome)
	}
	s.firstOnce.Do(func() { close(s.firstDone) })
}
