package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestSiteConfig_Validate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     SiteConfig
		wantErr error
	}{
		{
			name:    "both tests enabled with targets",
			cfg:     SiteConfig{Name: "Google", URL: "https://www.google.com", PingHost: "8.8.8.8", EnableHTTP: true, EnablePing: true},
			wantErr: nil,
		},
		{
			name:    "ping only",
			cfg:     SiteConfig{Name: "DNS", PingHost: "8.8.4.4", EnablePing: true},
			wantErr: nil,
		},
		{
			name:    "blank name",
			cfg:     SiteConfig{Name: "   ", URL: "https://x", EnableHTTP: true},
			wantErr: ErrNameRequired,
		},
		{
			name:    "no tests enabled",
			cfg:     SiteConfig{Name: "Paused", URL: "https://x", PingHost: "x"},
			wantErr: ErrNoTestsEnabled,
		},
		{
			name:    "http enabled without url",
			cfg:     SiteConfig{Name: "NoURL", EnableHTTP: true, EnablePing: true, PingHost: "x"},
			wantErr: ErrURLRequired,
		},
		{
			name:    "ping enabled without host",
			cfg:     SiteConfig{Name: "NoHost", EnablePing: true},
			wantErr: ErrPingHostRequired,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("want %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestSiteConfig_Enablement(t *testing.T) {
	// Flag set but target blank means the probe must not run.
	c := SiteConfig{Name: "X", EnableHTTP: true, URL: "  ", EnablePing: true, PingHost: "1.1.1.1"}
	if c.HTTPEnabled() {
		t.Fatal("blank url should disable http probe")
	}
	if !c.PingEnabled() {
		t.Fatal("ping should be enabled")
	}

	// Target present but flag off means "configured but paused".
	c = SiteConfig{Name: "Y", URL: "https://y", EnableHTTP: false, EnablePing: true, PingHost: "y"}
	if c.HTTPEnabled() {
		t.Fatal("enable_http=false should disable http probe")
	}
}

func TestCheckResult_JSONKeepsAbsentFields(t *testing.T) {
	want := CheckResult{
		Timestamp:      time.Date(2025, 8, 18, 12, 0, 0, 0, time.UTC),
		SiteName:       "Google",
		SiteURL:        "https://www.google.com",
		HTTP:           HTTPOutcome{Success: Bool(true), StatusCode: Int(200), ResponseTimeMS: Float64(123.4)},
		Ping:           PingOutcome{},
		OverallSuccess: true,
	}
	b, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got CheckResult
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got.Ping.Success != nil || got.Ping.PacketLossPercent != nil {
		t.Fatalf("ping outcome should stay absent, got %+v", got.Ping)
	}
	if got.HTTP.Success == nil || !*got.HTTP.Success || *got.HTTP.StatusCode != 200 {
		t.Fatalf("http outcome lost in round-trip: %+v", got.HTTP)
	}
	if !got.Timestamp.Equal(want.Timestamp) || got.SiteName != want.SiteName {
		t.Fatalf("mismatch after round-trip:\nwant=%+v\ngot =%+v", want, got)
	}
}

func TestFailedOutcomes(t *testing.T) {
	h := FailedHTTPOutcome()
	if h.Success == nil || *h.Success || h.StatusCode != nil || h.ResponseTimeMS != nil {
		t.Fatalf("unexpected failed http outcome: %+v", h)
	}
	p := FailedPingOutcome()
	if p.Success == nil || *p.Success || p.PacketLossPercent == nil || *p.PacketLossPercent != 100.0 {
		t.Fatalf("unexpected failed ping outcome: %+v", p)
	}
	if p.AvgMS != nil || p.MinMS != nil || p.MaxMS != nil {
		t.Fatalf("failed ping outcome must not carry timing: %+v", p)
	}
}
