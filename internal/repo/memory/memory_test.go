package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"netmonitor/internal/domain"
	"netmonitor/internal/repo"
)

func TestConfigCRUD(t *testing.T) {
	ctx := context.Background()
	m := New()

	c := domain.SiteConfig{Name: "Google", URL: "https://www.google.com", Enabled: true, EnableHTTP: true}
	if err := m.Insert(ctx, &c); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if c.ID == 0 {
		t.Fatal("insert must assign an id")
	}

	// Validation runs on insert: a no-test config never reaches a cycle.
	bad := domain.SiteConfig{Name: "Broken", URL: "https://x"}
	if err := m.Insert(ctx, &bad); !errors.Is(err, domain.ErrNoTestsEnabled) {
		t.Fatalf("want ErrNoTestsEnabled, got %v", err)
	}

	c.PingHost = "8.8.8.8"
	c.EnablePing = true
	if err := m.Update(ctx, c.ID, &c); err != nil {
		t.Fatalf("update: %v", err)
	}
	all, _ := m.ListAll(ctx)
	if len(all) != 1 || !all[0].EnablePing {
		t.Fatalf("update not applied: %+v", all)
	}

	if err := m.Update(ctx, 999, &c); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if err := m.Delete(ctx, c.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := m.Delete(ctx, c.ID); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("double delete: want ErrNotFound, got %v", err)
	}
}

func TestListEnabledFilters(t *testing.T) {
	ctx := context.Background()
	m := New()
	on := domain.SiteConfig{Name: "On", URL: "https://on", Enabled: true, EnableHTTP: true}
	off := domain.SiteConfig{Name: "Off", URL: "https://off", Enabled: false, EnableHTTP: true}
	_ = m.Insert(ctx, &on)
	_ = m.Insert(ctx, &off)

	enabled, err := m.ListEnabled(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(enabled) != 1 || enabled[0].Name != "On" {
		t.Fatalf("want only enabled configs, got %+v", enabled)
	}
}

func TestResultsWindowAndStatus(t *testing.T) {
	ctx := context.Background()
	m := New()
	now := time.Now().UTC()

	_ = m.Append(ctx, &domain.CheckResult{Timestamp: now.Add(-48 * time.Hour), SiteName: "A", OverallSuccess: true})
	_ = m.Append(ctx, &domain.CheckResult{Timestamp: now.Add(-time.Minute), SiteName: "A", OverallSuccess: false})
	_ = m.Append(ctx, &domain.CheckResult{Timestamp: now, SiteName: "B", OverallSuccess: true})

	recent, err := m.Recent(ctx, 24)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 2 {
		t.Fatalf("want 2 results inside 24h, got %d", len(recent))
	}
	if !recent[0].Timestamp.After(recent[1].Timestamp) {
		t.Fatalf("recent must be newest-first: %+v", recent)
	}

	if _, err := m.Recent(ctx, 0); !errors.Is(err, repo.ErrBadWindow) {
		t.Fatalf("want ErrBadWindow, got %v", err)
	}

	status, err := m.CurrentStatus(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(status) != 2 {
		t.Fatalf("want one row per site, got %+v", status)
	}
	for _, r := range status {
		if r.SiteName == "A" && r.OverallSuccess {
			t.Fatalf("status for A must be its newest (failed) row: %+v", r)
		}
	}
}

func TestDeleteOlderThan(t *testing.T) {
	ctx := context.Background()
	m := New()
	now := time.Now().UTC()
	_ = m.Append(ctx, &domain.CheckResult{Timestamp: now.AddDate(0, 0, -40), SiteName: "Old"})
	_ = m.Append(ctx, &domain.CheckResult{Timestamp: now, SiteName: "New"})

	removed, err := m.DeleteOlderThan(ctx, 30)
	if err != nil {
		t.Fatal(err)
	}
	if removed != 1 {
		t.Fatalf("want 1 removed, got %d", removed)
	}

	for _, days := range []int{0, -1, 3651} {
		if _, err := m.DeleteOlderThan(ctx, days); !errors.Is(err, repo.ErrBadRetention) {
			t.Fatalf("days=%d: want ErrBadRetention, got %v", days, err)
		}
	}
}
