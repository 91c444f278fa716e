package marketdata

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// CacheRepository persists fetched price history in the cache database
type CacheRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewCacheRepository creates a new price cache repository
func NewCacheRepository(db *sql.DB, log zerolog.Logger) *CacheRepository {
	return &CacheRepository{
		db:  db,
		log: log.With().Str("repo", "price_cache").Logger(),
	}
}

// GetSeries returns the cached series for (symbol, period) if every row is
// younger than maxAge. The bool reports a usable cache hit.
func (r *CacheRepository) GetSeries(symbol, period string, maxAge time.Duration) ([]PricePoint, bool, error) {
	cutoff := time.Now().Add(-maxAge).Unix()

	// A stale row anywhere invalidates the whole series
	var stale int
	err := r.db.QueryRow(
		"SELECT COUNT(*) FROM price_history WHERE symbol = ? AND period = ? AND fetched_at < ?",
		symbol, period, cutoff,
	).Scan(&stale)
	if err != nil {
		return nil, false, fmt.Errorf("failed to check cache freshness: %w", err)
	}
	if stale > 0 {
		return nil, false, nil
	}

	rows, err := r.db.Query(
		"SELECT date, adj_close FROM price_history WHERE symbol = ? AND period = ? ORDER BY date ASC",
		symbol, period,
	)
	if err != nil {
		return nil, false, fmt.Errorf("failed to query cached prices: %w", err)
	}
	defer rows.Close()

	var series []PricePoint
	for rows.Next() {
		var p PricePoint
		if err := rows.Scan(&p.Date, &p.AdjClose); err != nil {
			return nil, false, fmt.Errorf("failed to scan cached price: %w", err)
		}
		series = append(series, p)
	}

	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("error iterating cached prices: %w", err)
	}

	if len(series) == 0 {
		return nil, false, nil
	}

	return series, true, nil
}

// PutSeries replaces the cached series for (symbol, period)
func (r *CacheRepository) PutSeries(symbol, period string, series []PricePoint) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin cache transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"DELETE FROM price_history WHERE symbol = ? AND period = ?",
		symbol, period,
	); err != nil {
		return fmt.Errorf("failed to clear cached series: %w", err)
	}

	stmt, err := tx.Prepare(
		"INSERT INTO price_history (symbol, period, date, adj_close, fetched_at) VALUES (?, ?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("failed to prepare cache insert: %w", err)
	}
	defer stmt.Close()

	fetchedAt := time.Now().Unix()
	for _, p := range series {
		if _, err := stmt.Exec(symbol, period, p.Date, p.AdjClose, fetchedAt); err != nil {
			return fmt.Errorf("failed to insert cached price: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit cache transaction: %w", err)
	}

	r.log.Debug().
		Str("symbol", symbol).
		Str("period", period).
		Int("rows", len(series)).
		Msg("Cached price series")

	return nil
}

// DeleteStale removes cache rows older than maxAge and returns the count
func (r *CacheRepository) DeleteStale(maxAge time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxAge).Unix()

	result, err := r.db.Exec("DELETE FROM price_history WHERE fetched_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale cache rows: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted rows: %w", err)
	}

	return deleted, nil
}

// CountRows returns the total number of cached price rows
func (r *CacheRepository) CountRows() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM price_history").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count cache rows: %w", err)
	}
	return count, nil
}
