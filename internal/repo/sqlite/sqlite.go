package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"netmonitor/internal/domain"
	"netmonitor/internal/repo"
)

var _ repo.ConfigStore = (*Store)(nil)
var _ repo.ResultStore = (*Store)(nil)

// Store is the embedded sqlite adapter. A single-file database is all a
// one-operator monitor needs; WAL mode (set via the driver's _pragma DSN
// parameters) tolerates the monitor writing while the API reads.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database file and runs migrations.
func New(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)", path))
	if err != nil {
		return nil, fmt.Errorf("unable to open sqlite database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate(ctx context.Context) error {
	schema := `
CREATE TABLE IF NOT EXISTS monitoring_config (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	name        TEXT NOT NULL UNIQUE,
	url         TEXT,
	ping_host   TEXT,
	enabled     INTEGER NOT NULL DEFAULT 1,
	enable_http INTEGER NOT NULL DEFAULT 1,
	enable_ping INTEGER NOT NULL DEFAULT 1,
	created_at  TEXT NOT NULL,
	updated_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS monitoring_results (
	id                       INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp                TEXT NOT NULL,
	site_name                TEXT NOT NULL,
	site_url                 TEXT,
	ping_host                TEXT,
	http_status_code         INTEGER,
	http_response_time_ms    REAL,
	http_success             INTEGER,
	ping_avg_ms              REAL,
	ping_min_ms              REAL,
	ping_max_ms              REAL,
	ping_packet_loss_percent REAL,
	ping_success             INTEGER,
	overall_success          INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_monitoring_timestamp ON monitoring_results (timestamp);
CREATE INDEX IF NOT EXISTS idx_monitoring_site ON monitoring_results (site_name);
`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// ---- ConfigStore ----

func (s *Store) Insert(ctx context.Context, c *domain.SiteConfig) error {
	if err := c.Validate(); err != nil {
		return err
	}
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
INSERT INTO monitoring_config (name, url, ping_host, enabled, enable_http, enable_ping, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Name, nullStr(c.URL), nullStr(c.PingHost), c.Enabled, c.EnableHTTP, c.EnablePing,
		now.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert config: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("config id: %w", err)
	}
	c.ID = id
	c.CreatedAt = now
	c.UpdatedAt = now
	return nil
}

func (s *Store) Update(ctx context.Context, id int64, c *domain.SiteConfig) error {
	if err := c.Validate(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
UPDATE monitoring_config
   SET name = ?, url = ?, ping_host = ?, enabled = ?, enable_http = ?, enable_ping = ?, updated_at = ?
 WHERE id = ?`,
		c.Name, nullStr(c.URL), nullStr(c.PingHost), c.Enabled, c.EnableHTTP, c.EnablePing,
		time.Now().UTC().Format(time.RFC3339Nano), id,
	)
	if err != nil {
		return fmt.Errorf("update config: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM monitoring_config WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete config: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return repo.ErrNotFound
	}
	return nil
}

const configColumns = `id, name, url, ping_host, enabled, enable_http, enable_ping, created_at, updated_at`

func (s *Store) ListAll(ctx context.Context) ([]domain.SiteConfig, error) {
	return s.queryConfigs(ctx, `SELECT `+configColumns+` FROM monitoring_config ORDER BY name`)
}

func (s *Store) ListEnabled(ctx context.Context) ([]domain.SiteConfig, error) {
	return s.queryConfigs(ctx, `SELECT `+configColumns+` FROM monitoring_config WHERE enabled = 1 ORDER BY name`)
}

func (s *Store) queryConfigs(ctx context.Context, query string, args ...any) ([]domain.SiteConfig, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list configs: %w", err)
	}
	defer rows.Close()

	var out []domain.SiteConfig
	for rows.Next() {
		var (
			c                    domain.SiteConfig
			url, pingHost        sql.NullString
			createdAt, updatedAt string
		)
		if err := rows.Scan(&c.ID, &c.Name, &url, &pingHost, &c.Enabled, &c.EnableHTTP, &c.EnablePing, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan config: %w", err)
		}
		c.URL = url.String
		c.PingHost = pingHost.String
		c.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		c.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
		out = append(out, c)
	}
	return out, rows.Err()
}

// ---- ResultStore ----

func (s *Store) Append(ctx context.Context, r *domain.CheckResult) error {
	res, err := s.db.ExecContext(ctx, `
INSERT INTO monitoring_results (
	timestamp, site_name, site_url, ping_host,
	http_status_code, http_response_time_ms, http_success,
	ping_avg_ms, ping_min_ms, ping_max_ms, ping_packet_loss_percent, ping_success,
	overall_success
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Timestamp.UTC().Format(time.RFC3339Nano), r.SiteName, nullStr(r.SiteURL), nullStr(r.PingHost),
		nullInt(r.HTTP.StatusCode), nullFloat(r.HTTP.ResponseTimeMS), nullBool(r.HTTP.Success),
		nullFloat(r.Ping.AvgMS), nullFloat(r.Ping.MinMS), nullFloat(r.Ping.MaxMS),
		nullFloat(r.Ping.PacketLossPercent), nullBool(r.Ping.Success),
		r.OverallSuccess,
	)
	if err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		r.ID = id
	}
	return nil
}

const resultColumns = `id, timestamp, site_name, site_url, ping_host,
	http_status_code, http_response_time_ms, http_success,
	ping_avg_ms, ping_min_ms, ping_max_ms, ping_packet_loss_percent, ping_success,
	overall_success`

func (s *Store) Recent(ctx context.Context, hours int) ([]domain.CheckResult, error) {
	if !repo.ValidQueryHours(hours) {
		return nil, repo.ErrBadWindow
	}
	cutoff := time.Now().UTC().Add(-time.Duration(hours) * time.Hour)
	return s.queryResults(ctx,
		`SELECT `+resultColumns+` FROM monitoring_results WHERE timestamp > ? ORDER BY timestamp DESC`,
		cutoff.Format(time.RFC3339Nano),
	)
}

// CurrentStatus returns the most recent result per site.
func (s *Store) CurrentStatus(ctx context.Context) ([]domain.CheckResult, error) {
	return s.queryResults(ctx, `
SELECT `+resultColumns+` FROM monitoring_results
 WHERE id IN (SELECT MAX(id) FROM monitoring_results GROUP BY site_name)
 ORDER BY site_name`)
}

func (s *Store) DeleteOlderThan(ctx context.Context, days int) (int64, error) {
	if !repo.ValidRetentionDays(days) {
		return 0, repo.ErrBadRetention
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM monitoring_results WHERE timestamp < ?`,
		cutoff.Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("delete old results: %w", err)
	}
	return res.RowsAffected()
}

func (s *Store) queryResults(ctx context.Context, query string, args ...any) ([]domain.CheckResult, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()

	var out []domain.CheckResult
	for rows.Next() {
		var (
			r                               domain.CheckResult
			ts                              string
			siteURL, pingHost               sql.NullString
			httpStatus                      sql.NullInt64
			httpRespTime                    sql.NullFloat64
			httpSuccess, pingSuccess        sql.NullBool
			avgMS, minMS, maxMS, lossPct    sql.NullFloat64
		)
		if err := rows.Scan(&r.ID, &ts, &r.SiteName, &siteURL, &pingHost,
			&httpStatus, &httpRespTime, &httpSuccess,
			&avgMS, &minMS, &maxMS, &lossPct, &pingSuccess,
			&r.OverallSuccess); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		r.Timestamp, _ = time.Parse(time.RFC3339Nano, ts)
		r.SiteURL = siteURL.String
		r.PingHost = pingHost.String
		if httpSuccess.Valid {
			r.HTTP.Success = domain.Bool(httpSuccess.Bool)
		}
		if httpStatus.Valid {
			r.HTTP.StatusCode = domain.Int(int(httpStatus.Int64))
		}
		if httpRespTime.Valid {
			r.HTTP.ResponseTimeMS = domain.Float64(httpRespTime.Float64)
		}
		if pingSuccess.Valid {
			r.Ping.Success = domain.Bool(pingSuccess.Bool)
		}
		if avgMS.Valid {
			r.Ping.AvgMS = domain.Float64(avgMS.Float64)
		}
		if minMS.Valid {
			r.Ping.MinMS = domain.Float64(minMS.Float64)
		}
		if maxMS.Valid {
			r.Ping.MaxMS = domain.Float64(maxMS.Float64)
		}
		if lossPct.Valid {
			r.Ping.PacketLossPercent = domain.Float64(lossPct.Float64)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// nullStr maps "" to NULL so optional targets stay NULL in the schema.
func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullBool(v *bool) any {
	if v == nil {
		return nil
	}
	return *v
}
