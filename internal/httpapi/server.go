package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"netmonitor/internal/domain"
	"netmonitor/internal/repo"
)

// Server is the read-mostly status API. The monitoring engine never
// depends on it; it shares nothing with the scheduler but the stores.
type Server struct {
	Logger  *zap.Logger
	Configs repo.ConfigStore
	Results repo.ResultStore
}

func NewServer(l *zap.Logger, configs repo.ConfigStore, results repo.ResultStore) *Server {
	return &Server{Logger: l, Configs: configs, Results: results}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", s.handleHealthz)
	r.Get("/api/sites", s.handleListSites)
	r.Post("/api/sites", s.handleAddSite)
	r.Delete("/api/sites/{id}", s.handleDeleteSite)
	r.Get("/api/status", s.handleStatus)
	r.Get("/api/results", s.handleResults)

	return r
}

// handleHealthz reports whether the monitoring loop is producing data:
// healthy when a result landed within the last 5 minutes, or — right
// after install, before the first interval elapses — when any data
// exists at all.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	recent, err := s.Results.Recent(r.Context(), 1)
	if err != nil {
		http.Error(w, "storage error", http.StatusServiceUnavailable)
		return
	}
	cutoff := time.Now().UTC().Add(-5 * time.Minute)
	for _, res := range recent {
		if res.Timestamp.After(cutoff) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ok"))
			return
		}
	}
	older, err := s.Results.Recent(r.Context(), repo.MaxQueryHours)
	if err == nil && len(older) > 0 {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok (stale)"))
		return
	}
	http.Error(w, "no monitoring data", http.StatusServiceUnavailable)
}

func (s *Server) handleListSites(w http.ResponseWriter, r *http.Request) {
	sites, err := s.Configs.ListAll(r.Context())
	if err != nil {
		http.Error(w, "list error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, sites)
}

func (s *Server) handleAddSite(w http.ResponseWriter, r *http.Request) {
	var c domain.SiteConfig
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "bad payload", http.StatusBadRequest)
		return
	}
	c.Enabled = true
	if err := c.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.Configs.Insert(r.Context(), &c); err != nil {
		http.Error(w, "could not add", http.StatusInternalServerError)
		return
	}
	s.Logger.Info("site_added",
		zap.String("name", c.Name),
		zap.Bool("http", c.EnableHTTP),
		zap.Bool("ping", c.EnablePing),
	)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(c)
}

func (s *Server) handleDeleteSite(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "bad id", http.StatusBadRequest)
		return
	}
	if err := s.Configs.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		http.Error(w, "delete error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.Results.CurrentStatus(r.Context())
	if err != nil {
		http.Error(w, "status error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, status)
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	hours := 24
	if v := r.URL.Query().Get("hours"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || !repo.ValidQueryHours(n) {
			http.Error(w, "hours must be between 1 and 8760", http.StatusBadRequest)
			return
		}
		hours = n
	}
	results, err := s.Results.Recent(r.Context(), hours)
	if err != nil {
		http.Error(w, "results error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, results)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
