package notify

import (
	"context"
	"time"
)

// Notice describes one site transition worth telling a human about:
// a site going down, or coming back. Probe fields carry the rendered
// verdicts ("pass", "fail", "skipped") rather than raw outcomes so
// transports stay dumb.
type Notice struct {
	Site      string
	Recovered bool // false means the site just went down
	HTTP      string
	Ping      string
	CheckedAt time.Time
}

func (n Notice) Title() string {
	if n.Recovered {
		return "Site recovered: " + n.Site
	}
	return "Site DOWN: " + n.Site
}

// Notifier delivers a best-effort, fire-and-forget notice. Failures are
// the caller's to log and ignore; nothing here retries or queues.
type Notifier interface {
	Send(ctx context.Context, n Notice) error
}

type Multi []Notifier

func (m Multi) Send(ctx context.Context, n Notice) error {
	var firstErr error
	for _, nt := range m {
		if nt == nil {
			continue
		}
		if err := nt.Send(ctx, n); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
