package probe

import (
	"context"
	"io"
	"net/http"
	"time"

	"netmonitor/internal/domain"
)

const userAgent = "netmonitor/1.0 (+https://github.com/home-net-monitor)"

// HTTPProbe issues one GET with redirect-following and measures wall-clock
// latency. Success means the final status code is exactly 200 — not 2xx.
// A redirect chain ending on anything else counts as failure; this is the
// deliberate policy, even though operators sometimes expect "2xx = healthy".
type HTTPProbe struct {
	Client *http.Client
}

func NewHTTPProbe(timeout time.Duration) *HTTPProbe {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPProbe{
		Client: &http.Client{Timeout: timeout},
	}
}

func (p *HTTPProbe) Probe(ctx context.Context, url string) domain.HTTPOutcome {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.FailedHTTPOutcome()
	}
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := p.Client.Do(req)
	if err != nil {
		// Timeout, connection refused, DNS failure: all the same to the
		// health policy. No measurement fields on a transport error.
		return domain.FailedHTTPOutcome()
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	elapsed := time.Since(start).Seconds() * 1000

	return domain.HTTPOutcome{
		Success:        domain.Bool(resp.StatusCode == http.StatusOK),
		StatusCode:     domain.Int(resp.StatusCode),
		ResponseTimeMS: domain.Float64(elapsed),
	}
}
