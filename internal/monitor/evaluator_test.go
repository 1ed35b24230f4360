package monitor

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"netmonitor/internal/domain"
)

// --- fakes ---

type fakeHTTP struct {
	out domain.HTTPOutcome
}

func (f *fakeHTTP) Probe(ctx context.Context, url string) domain.HTTPOutcome { return f.out }

type fakePing struct {
	out domain.PingOutcome
}

func (f *fakePing) Probe(ctx context.Context, host string) domain.PingOutcome { return f.out }

func okHTTP() domain.HTTPOutcome {
	return domain.HTTPOutcome{Success: domain.Bool(true), StatusCode: domain.Int(200), ResponseTimeMS: domain.Float64(42)}
}

func okPing() domain.PingOutcome {
	return domain.PingOutcome{Success: domain.Bool(true), AvgMS: domain.Float64(12.5), MinMS: domain.Float64(10), MaxMS: domain.Float64(15), PacketLossPercent: domain.Float64(0)}
}

// --- tests ---

func TestEvaluator_BothEnabled_AnyPassIsHealthy(t *testing.T) {
	cases := []struct {
		name   string
		http   domain.HTTPOutcome
		ping   domain.PingOutcome
		wantUp bool
	}{
		{"both pass", okHTTP(), okPing(), true},
		{"http only passes", okHTTP(), domain.FailedPingOutcome(), true},
		{"ping only passes", domain.FailedHTTPOutcome(), okPing(), true},
		{"both fail", domain.FailedHTTPOutcome(), domain.FailedPingOutcome(), false},
	}

	cfg := domain.SiteConfig{Name: "Google", URL: "https://www.google.com", PingHost: "8.8.8.8", EnableHTTP: true, EnablePing: true}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ev := NewEvaluator(zap.NewNop(), &fakeHTTP{out: tc.http}, &fakePing{out: tc.ping})
			res := ev.Evaluate(context.Background(), cfg)
			if res.OverallSuccess != tc.wantUp {
				t.Fatalf("want overall=%v, got %+v", tc.wantUp, res)
			}
		})
	}
}

func TestEvaluator_SingleProbe_DisabledStaysAbsent(t *testing.T) {
	ev := NewEvaluator(zap.NewNop(), &fakeHTTP{out: okHTTP()}, &fakePing{out: okPing()})

	// HTTP only: ping outcome must be fully absent, not failed.
	res := ev.Evaluate(context.Background(), domain.SiteConfig{Name: "Microsoft", URL: "https://www.microsoft.com", EnableHTTP: true})
	if !res.OverallSuccess {
		t.Fatalf("want healthy, got %+v", res)
	}
	if res.Ping.Success != nil || res.Ping.PacketLossPercent != nil {
		t.Fatalf("disabled ping must stay absent, got %+v", res.Ping)
	}

	// Ping only.
	res = ev.Evaluate(context.Background(), domain.SiteConfig{Name: "DNS", PingHost: "8.8.4.4", EnablePing: true})
	if !res.OverallSuccess {
		t.Fatalf("want healthy, got %+v", res)
	}
	if res.HTTP.Success != nil || res.HTTP.StatusCode != nil {
		t.Fatalf("disabled http must stay absent, got %+v", res.HTTP)
	}
}

func TestEvaluator_SingleProbeFailure(t *testing.T) {
	ev := NewEvaluator(zap.NewNop(), &fakeHTTP{out: domain.FailedHTTPOutcome()}, &fakePing{out: okPing()})
	res := ev.Evaluate(context.Background(), domain.SiteConfig{Name: "X", URL: "https://x", EnableHTTP: true})
	if res.OverallSuccess {
		t.Fatalf("single failing probe must mean unhealthy, got %+v", res)
	}
}

func TestEvaluator_PausedProbeIgnored(t *testing.T) {
	// URL present but enable_http=false: only ping counts.
	ev := NewEvaluator(zap.NewNop(), &fakeHTTP{out: okHTTP()}, &fakePing{out: domain.FailedPingOutcome()})
	res := ev.Evaluate(context.Background(), domain.SiteConfig{
		Name: "Paused", URL: "https://paused", EnableHTTP: false,
		PingHost: "paused", EnablePing: true,
	})
	if res.OverallSuccess {
		t.Fatalf("paused http probe must not contribute, got %+v", res)
	}
	if res.HTTP.Success != nil {
		t.Fatalf("paused http outcome must stay absent, got %+v", res.HTTP)
	}
}

func TestEvaluator_NeitherEnabled(t *testing.T) {
	ev := NewEvaluator(zap.NewNop(), &fakeHTTP{out: okHTTP()}, &fakePing{out: okPing()})
	res := ev.Evaluate(context.Background(), domain.SiteConfig{Name: "Broken"})
	if res.OverallSuccess {
		t.Fatalf("no enabled test must mean failure, got %+v", res)
	}
	if res.HTTP.Success != nil || res.Ping.Success != nil {
		t.Fatalf("both outcomes must be fully absent, got %+v", res)
	}
	if res.SiteName != "Broken" {
		t.Fatalf("result must still carry the site name, got %q", res.SiteName)
	}
}
