package repo

import (
	"context"
	"errors"

	"netmonitor/internal/domain"
)

var ErrNotFound = errors.New("not found")

// Retention and query-window bounds, validated before any interval is
// built from operator input.
const (
	MinRetentionDays = 1
	MaxRetentionDays = 3650
	MaxQueryHours    = 8760
)

var (
	ErrBadRetention = errors.New("retention days must be between 1 and 3650")
	ErrBadWindow    = errors.New("query window must be between 1 and 8760 hours")
)

// ValidRetentionDays reports whether days is inside the policy bound.
func ValidRetentionDays(days int) bool {
	return days >= MinRetentionDays && days <= MaxRetentionDays
}

// ValidQueryHours reports whether hours is inside the policy bound.
func ValidQueryHours(hours int) bool {
	return hours >= 1 && hours <= MaxQueryHours
}

// Ports (interfaces) — swap in any DB adapter later.

// ConfigStore owns site configurations. The engine only ever reads the
// enabled set; CRUD exists for the API surface.
type ConfigStore interface {
	ListEnabled(ctx context.Context) ([]domain.SiteConfig, error)
	ListAll(ctx context.Context) ([]domain.SiteConfig, error)
	Insert(ctx context.Context, c *domain.SiteConfig) error
	Update(ctx context.Context, id int64, c *domain.SiteConfig) error
	Delete(ctx context.Context, id int64) error
}

// ResultStore owns monitoring results. Append-mostly: inserts per cycle,
// periodic bulk delete for retention, read queries for the API.
type ResultStore interface {
	Append(ctx context.Context, r *domain.CheckResult) error
	Recent(ctx context.Context, hours int) ([]domain.CheckResult, error)
	CurrentStatus(ctx context.Context) ([]domain.CheckResult, error)
	DeleteOlderThan(ctx context.Context, days int) (int64, error)
}
