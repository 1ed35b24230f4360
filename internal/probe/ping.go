package probe

import (
	"context"
	"regexp"
	"strconv"
	"time"

	"netmonitor/internal/domain"
)

var (
	packetLossRe = regexp.MustCompile(`([0-9.]+)% packet loss`)
	// Linux iputils and BSD/macOS print slightly different stats lines;
	// the short form catches "round-trip min/avg/max/stddev = ..." and
	// "rtt min/avg/max/mdev = ..." alike.
	rttFullRe  = regexp.MustCompile(`min/avg/max/stddev = ([\d.]+)/([\d.]+)/([\d.]+)/([\d.]+) ms`)
	rttShortRe = regexp.MustCompile(`= ([\d.]+)/([\d.]+)/([\d.]+)/([\d.]+) ms`)
)

// PingProbe shells out to the system ping binary and parses its
// human-readable report. Every failure mode — launch error, non-zero exit,
// subprocess timeout, unparseable output — is absorbed into a failed
// outcome; the probe never panics and never returns an error.
type PingProbe struct {
	Runner  Runner
	Count   int
	Timeout time.Duration
}

func NewPingProbe(count int, timeout time.Duration) *PingProbe {
	if count <= 0 {
		count = 3
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &PingProbe{Runner: ExecRunner{}, Count: count, Timeout: timeout}
}

func (p *PingProbe) Probe(ctx context.Context, host string) domain.PingOutcome {
	// Hard deadline above ping's own wait so a hung binary can't stall
	// the whole cycle.
	ctx, cancel := context.WithTimeout(ctx, p.Timeout+5*time.Second)
	defer cancel()

	waitSecs := int(p.Timeout.Seconds())
	if waitSecs < 1 {
		waitSecs = 1
	}
	args := []string{"-c", strconv.Itoa(p.Count), "-W", strconv.Itoa(waitSecs), host}

	out, err := p.Runner.Run(ctx, "ping", args...)
	if err != nil {
		return domain.FailedPingOutcome()
	}
	return ParsePingOutput(string(out))
}

// ParsePingOutput extracts packet loss and the min/avg/max round-trip
// triple from a ping report. Loss below 100% counts as success even when
// the timing line is missing: some formats omit it, and a reachable host
// must not be reported down over a formatting quirk. Output with no
// recognizable loss line is a failure, never a silent 0%.
func ParsePingOutput(output string) domain.PingOutcome {
	m := packetLossRe.FindStringSubmatch(output)
	if m == nil {
		return domain.FailedPingOutcome()
	}
	loss, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return domain.FailedPingOutcome()
	}

	res := domain.PingOutcome{
		Success:           domain.Bool(loss < 100.0),
		PacketLossPercent: domain.Float64(loss),
	}

	t := rttFullRe.FindStringSubmatch(output)
	if t == nil {
		t = rttShortRe.FindStringSubmatch(output)
	}
	if t != nil {
		minMS, errMin := strconv.ParseFloat(t[1], 64)
		avgMS, errAvg := strconv.ParseFloat(t[2], 64)
		maxMS, errMax := strconv.ParseFloat(t[3], 64)
		if errMin == nil && errAvg == nil && errMax == nil {
			res.MinMS = domain.Float64(minMS)
			res.AvgMS = domain.Float64(avgMS)
			res.MaxMS = domain.Float64(maxMS)
		}
	}
	return res
}
