package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"netmonitor/internal/domain"
	"netmonitor/internal/repo"
)

// Service runs one monitoring cycle: read the enabled configs fresh,
// evaluate every site, persist every result. Sites are independent, so
// evaluation fans out with bounded concurrency; one result comes back per
// config no matter what happens inside a single evaluation.
type Service struct {
	Logger      *zap.Logger
	Configs     repo.ConfigStore
	Results     repo.ResultStore
	Evaluator   *Evaluator
	Concurrency int
}

func NewService(logger *zap.Logger, configs repo.ConfigStore, results repo.ResultStore, ev *Evaluator, concurrency int) *Service {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Service{
		Logger:      logger,
		Configs:     configs,
		Results:     results,
		Evaluator:   ev,
		Concurrency: concurrency,
	}
}

// RunCycle reads configs and evaluates and persists every site. The only
// returned error is a failed config read; everything downstream is
// absorbed per site.
func (s *Service) RunCycle(ctx context.Context) ([]domain.CheckResult, error) {
	configs, err := s.Configs.ListEnabled(ctx)
	if err != nil {
		return nil, fmt.Errorf("list enabled configs: %w", err)
	}

	results := s.Evaluate(ctx, configs)

	var persistErr error
	stored := 0
	for i := range results {
		if err := s.Results.Append(ctx, &results[i]); err != nil {
			persistErr = multierr.Append(persistErr, fmt.Errorf("%s: %w", results[i].SiteName, err))
			continue
		}
		stored++
	}
	if persistErr != nil {
		s.Logger.Warn("cycle_append_errors", zap.Error(persistErr))
	}
	s.Logger.Info("cycle_completed",
		zap.Int("sites", len(configs)),
		zap.Int("stored", stored),
	)
	return results, nil
}

// Evaluate produces one result per config. Order is not guaranteed;
// cardinality is.
func (s *Service) Evaluate(ctx context.Context, configs []domain.SiteConfig) []domain.CheckResult {
	results := make([]domain.CheckResult, len(configs))

	sem := make(chan struct{}, s.Concurrency)
	var wg sync.WaitGroup
	for i, cfg := range configs {
		i, cfg := i, cfg
		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer func() { <-sem }()
			defer wg.Done()
			results[i] = s.evaluateOne(ctx, cfg)
		}()
	}
	wg.Wait()
	return results
}

// evaluateOne isolates a single site: an unexpected panic becomes a
// synthetic failed result so one bad record can never abort the batch.
func (s *Service) evaluateOne(ctx context.Context, cfg domain.SiteConfig) (res domain.CheckResult) {
	defer func() {
		if r := recover(); r != nil {
			s.Logger.Error("site_evaluation_panic",
				zap.String("site", cfg.Name),
				zap.Any("panic", r),
			)
			res = failedResult(cfg)
		}
	}()
	return s.Evaluator.Evaluate(ctx, cfg)
}

// failedResult reflects whichever probes were enabled, forced to failure.
func failedResult(cfg domain.SiteConfig) domain.CheckResult {
	res := domain.CheckResult{
		Timestamp: time.Now().UTC(),
		SiteName:  cfg.Name,
		SiteURL:   cfg.URL,
		PingHost:  cfg.PingHost,
	}
	if cfg.HTTPEnabled() {
		res.HTTP = domain.FailedHTTPOutcome()
	}
	if cfg.PingEnabled() {
		res.Ping = domain.FailedPingOutcome()
	}
	return res
}
