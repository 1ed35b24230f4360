package monitor

import (
	"context"
	"time"

	"go.uber.org/zap"

	"netmonitor/internal/domain"
	"netmonitor/internal/probe"
)

// Evaluator turns one site config into one CheckResult. A site is healthy
// if ANY enabled probe succeeds: plenty of endpoints block ICMP while
// serving HTTP fine, and vice versa, so the probes are independent
// evidence rather than a conjunction.
type Evaluator struct {
	Logger *zap.Logger
	HTTP   probe.HTTPProber
	Ping   probe.PingProber
}

func NewEvaluator(logger *zap.Logger, http probe.HTTPProber, ping probe.PingProber) *Evaluator {
	return &Evaluator{Logger: logger, HTTP: http, Ping: ping}
}

func (e *Evaluator) Evaluate(ctx context.Context, cfg domain.SiteConfig) domain.CheckResult {
	res := domain.CheckResult{
		Timestamp: time.Now().UTC(),
		SiteName:  cfg.Name,
		SiteURL:   cfg.URL,
		PingHost:  cfg.PingHost,
	}

	httpEnabled := cfg.HTTPEnabled()
	pingEnabled := cfg.PingEnabled()

	if !httpEnabled && !pingEnabled {
		// A malformed entry must not abort the cycle; record a failure
		// with every probe field absent so "not attempted" survives.
		e.Logger.Error("no_tests_enabled",
			zap.String("site", cfg.Name),
		)
		return res
	}

	if httpEnabled {
		res.HTTP = e.HTTP.Probe(ctx, cfg.URL)
	}
	if pingEnabled {
		res.Ping = e.Ping.Probe(ctx, cfg.PingHost)
	}

	switch {
	case httpEnabled && pingEnabled:
		res.OverallSuccess = boolOf(res.HTTP.Success) || boolOf(res.Ping.Success)
	case httpEnabled:
		res.OverallSuccess = boolOf(res.HTTP.Success)
	default:
		res.OverallSuccess = boolOf(res.Ping.Success)
	}

	e.Logger.Debug("site_evaluated",
		zap.String("site", cfg.Name),
		zap.String("http", triState(httpEnabled, res.HTTP.Success)),
		zap.String("ping", triState(pingEnabled, res.Ping.Success)),
		zap.Bool("overall", res.OverallSuccess),
	)
	return res
}

func boolOf(p *bool) bool { return p != nil && *p }

func triState(enabled bool, success *bool) string {
	switch {
	case !enabled:
		return "skipped"
	case success != nil && *success:
		return "pass"
	default:
		return "fail"
	}
}
