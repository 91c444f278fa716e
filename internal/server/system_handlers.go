package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// CacheReporter reports price cache size
type CacheReporter interface {
	CacheStats() (int, error)
}

// HoldingCounter reports session portfolio size
type HoldingCounter interface {
	Count() int
}

// JobLister reports registered background jobs
type JobLister interface {
	Jobs() []string
}

// SystemHandlers handles system-wide monitoring endpoints
type SystemHandlers struct {
	log       zerolog.Logger
	startedAt time.Time
	cache     CacheReporter
	portfolio HoldingCounter
	jobs      JobLister
}

// NewSystemHandlers creates a new system handlers instance
func NewSystemHandlers(log zerolog.Logger, cache CacheReporter, portfolio HoldingCounter, jobs JobLister) *SystemHandlers {
	return &SystemHandlers{
		log:       log.With().Str("handler", "system").Logger(),
		startedAt: time.Now(),
		cache:     cache,
		portfolio: portfolio,
		jobs:      jobs,
	}
}

// HandleStatus handles GET /api/system/status
func (h *SystemHandlers) HandleStatus(w http.ResponseWriter, r *http.Request) {
	cacheRows, err := h.cache.CacheStats()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to read cache stats")
		cacheRows = -1
	}

	response := map[string]interface{}{
		"status":           "ok",
		"uptime_seconds":   int(time.Since(h.startedAt).Seconds()),
		"holdings":         h.portfolio.Count(),
		"price_cache_rows": cacheRows,
		"scheduled_jobs":   h.jobs.Jobs(),
		"timestamp":        time.Now().UTC().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode status response")
	}
}
