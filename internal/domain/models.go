package domain

import (
	"errors"
	"strings"
	"time"
)

// SiteConfig identifies one monitored target. URL and PingHost are
// optional; EnableHTTP/EnablePing gate which probes may run even when a
// target value is present ("configured but paused").
type SiteConfig struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	URL        string    `json:"url,omitempty"`
	PingHost   string    `json:"ping_host,omitempty"`
	Enabled    bool      `json:"enabled"`
	EnableHTTP bool      `json:"enable_http"`
	EnablePing bool      `json:"enable_ping"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

var (
	ErrNameRequired     = errors.New("site name is required")
	ErrNoTestsEnabled   = errors.New("at least one test type (HTTP or ping) must be enabled")
	ErrURLRequired      = errors.New("url is required when the HTTP test is enabled")
	ErrPingHostRequired = errors.New("ping host is required when the ping test is enabled")
)

// Validate rejects configs that could never produce a meaningful check:
// blank name, no test enabled, or an enabled test without its target.
func (c *SiteConfig) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrNameRequired
	}
	if !c.EnableHTTP && !c.EnablePing {
		return ErrNoTestsEnabled
	}
	if c.EnableHTTP && strings.TrimSpace(c.URL) == "" {
		return ErrURLRequired
	}
	if c.EnablePing && strings.TrimSpace(c.PingHost) == "" {
		return ErrPingHostRequired
	}
	return nil
}

// HTTPEnabled reports whether the HTTP probe should run for this site.
func (c *SiteConfig) HTTPEnabled() bool {
	return c.EnableHTTP && strings.TrimSpace(c.URL) != ""
}

// PingEnabled reports whether the ping probe should run for this site.
func (c *SiteConfig) PingEnabled() bool {
	return c.EnablePing && strings.TrimSpace(c.PingHost) != ""
}
