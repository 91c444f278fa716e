package marketdata

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/varwatch/internal/events"
)

// CacheSweepJob evicts stale price history so the cache does not grow
// without bound between sessions
type CacheSweepJob struct {
	cache  *CacheRepository
	maxAge time.Duration
	events *events.Manager
	log    zerolog.Logger
}

// NewCacheSweepJob creates a new cache sweep job
func NewCacheSweepJob(cache *CacheRepository, maxAge time.Duration, eventManager *events.Manager, log zerolog.Logger) *CacheSweepJob {
	return &CacheSweepJob{
		cache:  cache,
		maxAge: maxAge,
		events: eventManager,
		log:    log.With().Str("job", "cache_sweep").Logger(),
	}
}

// Name returns the job name
func (j *CacheSweepJob) Name() string {
	return "cache_sweep"
}

// Run deletes cache rows older than the configured max age
func (j *CacheSweepJob) Run() error {
	deleted, err := j.cache.DeleteStale(j.maxAge)
	if err != nil {
		return fmt.Errorf("cache sweep failed: %w", err)
	}

	if deleted > 0 {
		j.log.Info().Int64("deleted", deleted).Msg("Swept stale price cache rows")
		j.events.Emit("marketdata", events.CacheSwept, map[string]interface{}{
			"deleted": deleted,
		})
	}

	return nil
}
