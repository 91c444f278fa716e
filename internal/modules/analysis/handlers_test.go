package analysis

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/varwatch/internal/modules/marketdata"
	"github.com/aristath/varwatch/internal/modules/portfolio"
)

func newHandlerRouter(pf PortfolioReader, prices PriceTableProvider) *chi.Mux {
	log := zerolog.New(nil).Level(zerolog.Disabled)
	handler := NewHandler(newRunService(pf, prices), log)

	router := chi.NewRouter()
	router.Route("/api", func(r chi.Router) {
		handler.RegisterRoutes(r)
	})
	return router
}

func postRun(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/analysis/run", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleGetOptions(t *testing.T) {
	router := newHandlerRouter(&fakePortfolio{}, &fakePrices{})

	req := httptest.NewRequest(http.MethodGet, "/api/analysis/options", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Benchmarks       []Benchmark `json:"benchmarks"`
		Periods          []string    `json:"periods"`
		ConfidenceLevels []int       `json:"confidence_levels"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Benchmarks, 6)
	assert.Equal(t, []string{"1mo", "3mo", "6mo", "1y", "2y", "5y"}, resp.Periods)
	assert.Equal(t, []int{90, 95, 99}, resp.ConfidenceLevels)
}

func TestHandleRun(t *testing.T) {
	router := newHandlerRouter(
		&fakePortfolio{summary: twoHoldingSummary()},
		&fakePrices{tables: testTables()},
	)

	rec := postRun(t, router, `{"benchmark": "sp500", "period": "3mo", "confidence": 95}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var result Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "sp500", result.Benchmark.Key)
	assert.NotEmpty(t, result.RunID)
}

func TestHandleRun_EmptyPortfolio(t *testing.T) {
	router := newHandlerRouter(
		&fakePortfolio{err: portfolio.ErrEmptyPortfolio},
		&fakePrices{tables: testTables()},
	)

	rec := postRun(t, router, `{"benchmark": "sp500", "period": "3mo", "confidence": 95}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandleRun_BadEnum(t *testing.T) {
	router := newHandlerRouter(
		&fakePortfolio{summary: twoHoldingSummary()},
		&fakePrices{tables: testTables()},
	)

	rec := postRun(t, router, `{"benchmark": "nasdaq", "period": "3mo", "confidence": 95}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleRun_InvalidBody(t *testing.T) {
	router := newHandlerRouter(&fakePortfolio{}, &fakePrices{})

	rec := postRun(t, router, `{benchmark}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleRun_DataRetrievalFailure(t *testing.T) {
	router := newHandlerRouter(
		&fakePortfolio{summary: twoHoldingSummary()},
		&fakePrices{err: fmt.Errorf("%w: A: timeout", marketdata.ErrFetchFailed)},
	)

	rec := postRun(t, router, `{"benchmark": "sp500", "period": "3mo", "confidence": 95}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHandleRun_InsufficientHistory(t *testing.T) {
	tables := testTables()
	tables["A"] = marketdata.PriceTable{
		Dates:   []string{"d1"},
		Columns: []string{"A", "B"},
		Prices:  map[string][]float64{"A": {100}, "B": {50}},
	}

	router := newHandlerRouter(
		&fakePortfolio{summary: twoHoldingSummary()},
		&fakePrices{tables: tables},
	)

	rec := postRun(t, router, `{"benchmark": "sp500", "period": "3mo", "confidence": 95}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHandleRun_DegenerateMetricsEncodeAsNull(t *testing.T) {
	tables := testTables()
	tables["A"] = marketdata.PriceTable{
		Dates:   []string{"d1", "d2", "d3"},
		Columns: []string{"A", "B"},
		Prices: map[string][]float64{
			"A": {100, 100, 100},
			"B": {50, 50, 50},
		},
	}

	router := newHandlerRouter(
		&fakePortfolio{summary: twoHoldingSummary()},
		&fakePrices{tables: tables},
	)

	rec := postRun(t, router, `{"benchmark": "sp500", "period": "3mo", "confidence": 95}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	metrics := resp["portfolio_metrics"].(map[string]interface{})
	assert.Nil(t, metrics["sharpe"])
	assert.Nil(t, metrics["sortino"])
	assert.Equal(t, true, metrics["degenerate"])
}
