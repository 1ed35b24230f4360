package domain

import "time"

// HTTPOutcome is the result of one HTTP probe. All fields are pointers so
// "not tested" (nil) stays distinguishable from a negative or zero value.
type HTTPOutcome struct {
	Success        *bool    `json:"success"`
	StatusCode     *int     `json:"status_code"`
	ResponseTimeMS *float64 `json:"response_time_ms"`
}

// PingOutcome is the result of one ICMP probe.
type PingOutcome struct {
	Success           *bool    `json:"success"`
	AvgMS             *float64 `json:"avg_ms"`
	MinMS             *float64 `json:"min_ms"`
	MaxMS             *float64 `json:"max_ms"`
	PacketLossPercent *float64 `json:"packet_loss_percent"`
}

// CheckResult is the persisted record for one site, one cycle. It is
// append-only; OverallSuccess is derived by the evaluator, never set by
// callers.
type CheckResult struct {
	ID             int64       `json:"id"`
	Timestamp      time.Time   `json:"timestamp"`
	SiteName       string      `json:"site_name"`
	SiteURL        string      `json:"site_url,omitempty"`
	PingHost       string      `json:"ping_host,omitempty"`
	HTTP           HTTPOutcome `json:"http"`
	Ping           PingOutcome `json:"ping"`
	OverallSuccess bool        `json:"overall_success"`
}

// Bool, Float64 and Int are pointer helpers for building outcomes.
func Bool(v bool) *bool          { return &v }
func Float64(v float64) *float64 { return &v }
func Int(v int) *int             { return &v }

// FailedHTTPOutcome is a tested-and-failed outcome with no measurements.
func FailedHTTPOutcome() HTTPOutcome {
	return HTTPOutcome{Success: Bool(false)}
}

// FailedPingOutcome is a tested-and-failed outcome: total loss, no timing.
func FailedPingOutcome() PingOutcome {
	return PingOutcome{Success: Bool(false), PacketLossPercent: Float64(100.0)}
}
