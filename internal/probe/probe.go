package probe

import (
	"context"

	"netmonitor/internal/domain"
)

// HTTPProber performs a single HTTP reachability check against a URL.
// Implementations never return errors; transport failures are folded into
// a failed outcome so the monitoring loop cannot crash on a bad endpoint.
type HTTPProber interface {
	Probe(ctx context.Context, url string) domain.HTTPOutcome
}

// PingProber performs a single ICMP round-trip measurement against a host.
type PingProber interface {
	Probe(ctx context.Context, host string) domain.PingOutcome
}
