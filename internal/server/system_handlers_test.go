package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCache struct {
	rows int
	err  error
}

func (s stubCache) CacheStats() (int, error) { return s.rows, s.err }

type stubPortfolio struct{ count int }

func (s stubPortfolio) Count() int { return s.count }

type stubJobs struct{ names []string }

func (s stubJobs) Jobs() []string { return s.names }

func TestHandleStatus(t *testing.T) {
	log := zerolog.New(nil).Level(zerolog.Disabled)
	h := NewSystemHandlers(log, stubCache{rows: 42}, stubPortfolio{count: 3}, stubJobs{names: []string{"cache_sweep"}})

	req := httptest.NewRequest(http.MethodGet, "/api/system/status", nil)
	rec := httptest.NewRecorder()
	h.HandleStatus(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, 42.0, resp["price_cache_rows"])
	assert.Equal(t, 3.0, resp["holdings"])
	assert.Equal(t, []interface{}{"cache_sweep"}, resp["scheduled_jobs"])
}

func TestHandleStatus_CacheErrorIsNonFatal(t *testing.T) {
	log := zerolog.New(nil).Level(zerolog.Disabled)
	h := NewSystemHandlers(log, stubCache{err: fmt.Errorf("db closed")}, stubPortfolio{}, stubJobs{})

	req := httptest.NewRequest(http.MethodGet, "/api/system/status", nil)
	rec := httptest.NewRecorder()
	h.HandleStatus(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, -1.0, resp["price_cache_rows"])
}
