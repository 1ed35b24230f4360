package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"netmonitor/internal/domain"
	"netmonitor/internal/monitor"
	"netmonitor/internal/notify"
	"netmonitor/internal/repo"
)

// State is the scheduler's lifecycle position. It lives on the Scheduler
// object, not in process globals, so tests can run several instances.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateShuttingDown
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateShuttingDown:
		return "shutting_down"
	case StateStopped:
		return "stopped"
	}
	return "unknown"
}

type Config struct {
	Interval      time.Duration // between monitoring cycles
	CleanupAt     string        // wall-clock "15:04" for the daily retention job
	RetentionDays int
	Backoff       time.Duration // pause after a loop fault
}

// Scheduler drives the monitoring service: immediate first cycle, fixed
// interval after that, an independent daily retention job, cooperative
// shutdown. Loop faults are logged and followed by a short backoff; the
// loop itself never crash-exits.
type Scheduler struct {
	Logger   *zap.Logger
	Monitor  *monitor.Service
	Results  repo.ResultStore
	Notifier notify.Notifier
	Cfg      Config

	mu        sync.Mutex
	state     State
	lastState map[string]bool // site name -> last overall success
}

func New(logger *zap.Logger, mon *monitor.Service, results repo.ResultStore, notifier notify.Notifier, cfg Config) *Scheduler {
	if cfg.Interval <= 0 {
		cfg.Interval = 60 * time.Second
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = 5 * time.Second
	}
	if cfg.RetentionDays == 0 {
		cfg.RetentionDays = 30
	}
	if cfg.CleanupAt == "" {
		cfg.CleanupAt = "02:00"
	}
	return &Scheduler{
		Logger:    logger,
		Monitor:   mon,
		Results:   results,
		Notifier:  notifier,
		Cfg:       cfg,
		lastState: make(map[string]bool),
	}
}

// State returns the current lifecycle state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Scheduler) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// Run blocks until ctx is cancelled. An in-flight cycle finishes before
// the scheduler stops; no new cycle starts after cancellation.
func (s *Scheduler) Run(ctx context.Context) error {
	if count, err := s.siteCount(ctx); err == nil {
		s.Logger.Info("scheduler_started",
			zap.Int("sites", count),
			zap.Duration("interval", s.Cfg.Interval),
		)
	} else {
		s.Logger.Warn("scheduler_started_count_unavailable", zap.Error(err))
	}

	ticker := time.NewTicker(s.Cfg.Interval)
	defer ticker.Stop()
	cleanup := time.NewTimer(time.Until(nextDaily(time.Now(), s.Cfg.CleanupAt)))
	defer cleanup.Stop()

	// No false-healthy window on launch.
	s.cycle(ctx)

	for {
		select {
		case <-ctx.Done():
			s.setState(StateShuttingDown)
			s.Logger.Info("scheduler_stopping")
			s.setState(StateStopped)
			return nil
		case <-ticker.C:
			s.cycle(ctx)
		case <-cleanup.C:
			if err := s.Cleanup(ctx); err != nil {
				s.Logger.Error("cleanup_error", zap.Error(err))
			}
			cleanup.Reset(time.Until(nextDaily(time.Now(), s.Cfg.CleanupAt)))
		}
	}
}

// RunOnce performs exactly one cycle through the normal code path.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	s.Logger.Info("running_single_cycle")
	_, err := s.Monitor.RunCycle(ctx)
	return err
}

// Cleanup deletes results older than the retention window.
func (s *Scheduler) Cleanup(ctx context.Context) error {
	if !repo.ValidRetentionDays(s.Cfg.RetentionDays) {
		return fmt.Errorf("cleanup: %w", repo.ErrBadRetention)
	}
	removed, err := s.Results.DeleteOlderThan(ctx, s.Cfg.RetentionDays)
	if err != nil {
		return fmt.Errorf("cleanup: %w", err)
	}
	s.Logger.Info("cleanup_completed",
		zap.Int("retention_days", s.Cfg.RetentionDays),
		zap.Int64("removed", removed),
	)
	return nil
}

// cycle runs one monitoring pass and absorbs loop-level faults with a
// fixed backoff, checked against ctx so shutdown is not delayed.
func (s *Scheduler) cycle(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	s.setState(StateRunning)
	defer s.setState(StateIdle)

	// Cancellation is checked at cycle boundaries only: once a cycle is
	// producing results it runs to completion, bounded by the probe
	// timeouts, so a shutdown can't leave half-written batches behind.
	results, err := s.Monitor.RunCycle(context.WithoutCancel(ctx))
	if err != nil {
		s.Logger.Error("cycle_error", zap.Error(err))
		select {
		case <-time.After(s.Cfg.Backoff):
		case <-ctx.Done():
		}
		return
	}
	s.notifyTransitions(ctx, results)
}

// notifyTransitions sends best-effort down/recovery notices when a site's
// overall state flips. State is in-process only; a restart just re-learns
// it on the next cycle.
func (s *Scheduler) notifyTransitions(ctx context.Context, results []domain.CheckResult) {
	if s.Notifier == nil {
		return
	}
	for _, r := range results {
		s.mu.Lock()
		prev, seen := s.lastState[r.SiteName]
		s.lastState[r.SiteName] = r.OverallSuccess
		s.mu.Unlock()

		if !seen || prev == r.OverallSuccess {
			continue
		}
		n := notify.Notice{
			Site:      r.SiteName,
			Recovered: r.OverallSuccess,
			HTTP:      outcomeText(r.HTTP.Success),
			Ping:      outcomeText(r.Ping.Success),
			CheckedAt: r.Timestamp,
		}
		if err := s.Notifier.Send(ctx, n); err != nil {
			s.Logger.Warn("notify_error", zap.String("site", r.SiteName), zap.Error(err))
		}
	}
}

func outcomeText(success *bool) string {
	switch {
	case success == nil:
		return "skipped"
	case *success:
		return "pass"
	default:
		return "fail"
	}
}

func (s *Scheduler) siteCount(ctx context.Context) (int, error) {
	configs, err := s.Monitor.Configs.ListEnabled(ctx)
	if err != nil {
		return 0, err
	}
	return len(configs), nil
}

// nextDaily returns the next occurrence of the "15:04" wall-clock time at
// or after now. A malformed value falls back to 02:00.
func nextDaily(now time.Time, at string) time.Time {
	t, err := time.Parse("15:04", at)
	if err != nil {
		t, _ = time.Parse("15:04", "02:00")
	}
	next := time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
