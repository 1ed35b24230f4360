package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"netmonitor/internal/domain"
	"netmonitor/internal/repo"
)

var _ repo.ConfigStore = (*Store)(nil)
var _ repo.ResultStore = (*Store)(nil)

// Store is an in-memory adapter used by tests and DB-less runs.
type Store struct {
	mu      sync.RWMutex
	nextID  int64
	configs map[int64]*domain.SiteConfig
	results []*domain.CheckResult
}

func New() *Store {
	return &Store{
		nextID:  1,
		configs: make(map[int64]*domain.SiteConfig),
		results: make([]*domain.CheckResult, 0, 128),
	}
}

// ---- ConfigStore ----

func (m *Store) Insert(ctx context.Context, c *domain.SiteConfig) error {
	if err := c.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = m.nextID
	m.nextID++
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	cp := *c
	m.configs[c.ID] = &cp
	return nil
}

func (m *Store) Update(ctx context.Context, id int64, c *domain.SiteConfig) error {
	if err := c.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.configs[id]
	if !ok {
		return repo.ErrNotFound
	}
	cp := *c
	cp.ID = id
	cp.CreatedAt = cur.CreatedAt
	cp.UpdatedAt = time.Now().UTC()
	m.configs[id] = &cp
	return nil
}

func (m *Store) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.configs[id]; !ok {
		return repo.ErrNotFound
	}
	delete(m.configs, id)
	return nil
}

func (m *Store) ListAll(ctx context.Context) ([]domain.SiteConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.SiteConfig, 0, len(m.configs))
	for _, c := range m.configs {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Store) ListEnabled(ctx context.Context) ([]domain.SiteConfig, error) {
	all, err := m.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, c := range all {
		if c.Enabled {
			out = append(out, c)
		}
	}
	return out, nil
}

// ---- ResultStore ----

func (m *Store) Append(ctx context.Context, r *domain.CheckResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *r
	cp.ID = m.nextID
	m.nextID++
	m.results = append(m.results, &cp)
	return nil
}

func (m *Store) Recent(ctx context.Context, hours int) ([]domain.CheckResult, error) {
	if !repo.ValidQueryHours(hours) {
		return nil, repo.ErrBadWindow
	}
	cutoff := time.Now().UTC().Add(-time.Duration(hours) * time.Hour)
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []domain.CheckResult
	for _, r := range m.results {
		if r.Timestamp.After(cutoff) {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

func (m *Store) CurrentStatus(ctx context.Context) ([]domain.CheckResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	latest := make(map[string]*domain.CheckResult)
	for _, r := range m.results {
		cur := latest[r.SiteName]
		if cur == nil || r.Timestamp.After(cur.Timestamp) {
			latest[r.SiteName] = r
		}
	}
	out := make([]domain.CheckResult, 0, len(latest))
	for _, r := range latest {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SiteName < out[j].SiteName })
	return out, nil
}

func (m *Store) DeleteOlderThan(ctx context.Context, days int) (int64, error) {
	if !repo.ValidRetentionDays(days) {
		return 0, repo.ErrBadRetention
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.results[:0]
	var removed int64
	for _, r := range m.results {
		if r.Timestamp.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	m.results = kept
	return removed, nil
}
