package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian/commerce-insights/api"
	"github.com/meridian/commerce-insights/dataset"
	"github.com/meridian/commerce-insights/factory"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func demoRouter(t *testing.T) http.Handler {
	t.Helper()
	p, err := factory.BuildFromSet(dataset.Demo(), factory.AnalysisConfig{})
	require.NoError(t, err)
	return api.NewRouter(api.NewHandler(p))
}

func get(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, into any) {
	t.Helper()
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), into))
}

// =============================================================================
// SUMMARY
// =============================================================================

func TestGetSummary(t *testing.T) {
	router := demoRouter(t)

	rec := get(t, router, "/api/summary")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	decode(t, rec, &body)

	assert.Equal(t, float64(2023), body["analysis_year"])
	assert.Equal(t, float64(2022), body["comparison_year"])
	assert.InDelta(t, 862.64, body["total_revenue"], 0.001)
	assert.Equal(t, float64(8), body["total_orders"])
	assert.NotNil(t, body["avg_order_value"], "a period with orders has a defined AOV")
	assert.Contains(t, body, "avg_monthly_growth")
}

// =============================================================================
// REVENUE TABLES
// =============================================================================

func TestGetMonthlyRevenue(t *testing.T) {
	router := demoRouter(t)

	rec := get(t, router, "/api/revenue/monthly")
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []map[string]any
	decode(t, rec, &rows)
	require.NotEmpty(t, rows)

	// Presentation column names, chronological order.
	assert.Contains(t, rows[0], "Month")
	assert.Contains(t, rows[0], "Revenue")
	assert.Equal(t, float64(1), rows[0]["Month"])
	for i := 1; i < len(rows); i++ {
		assert.Less(t, rows[i-1]["Month"], rows[i]["Month"])
	}
}

func TestGetMonthlyGrowth_FirstMonthIsNull(t *testing.T) {
	router := demoRouter(t)

	rec := get(t, router, "/api/revenue/growth")
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []map[string]any
	decode(t, rec, &rows)
	require.NotEmpty(t, rows)

	assert.Nil(t, rows[0]["Growth Rate"], "no prior month to compare against")
	if len(rows) > 1 {
		assert.NotNil(t, rows[1]["Growth Rate"])
	}
}

func TestGetMonthlyRevenue_BadYear(t *testing.T) {
	router := demoRouter(t)

	rec := get(t, router, "/api/revenue/monthly?year=abc")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]any
	decode(t, rec, &body)
	assert.Contains(t, body, "error")
}

func TestGetCategoryRevenue(t *testing.T) {
	router := demoRouter(t)

	rec := get(t, router, "/api/revenue/categories")
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []map[string]any
	decode(t, rec, &rows)
	require.Len(t, rows, 3)

	// Descending by revenue; electronics dominates the demo set.
	assert.Equal(t, "electronics", rows[0]["Category"])
	for i := 1; i < len(rows); i++ {
		assert.GreaterOrEqual(t, rows[i-1]["Revenue"], rows[i]["Revenue"])
	}
}

func TestGetCategoryRevenue_TopParameter(t *testing.T) {
	router := demoRouter(t)

	rec := get(t, router, "/api/revenue/categories?top=1")
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []map[string]any
	decode(t, rec, &rows)
	assert.Len(t, rows, 1)

	rec = get(t, router, "/api/revenue/categories?top=-1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetStateRevenue(t *testing.T) {
	router := demoRouter(t)

	rec := get(t, router, "/api/revenue/states")
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []map[string]any
	decode(t, rec, &rows)
	require.Len(t, rows, 4)
	assert.Contains(t, rows[0], "State")
}

func TestGetStatusRevenue_IncludesAllStatuses(t *testing.T) {
	router := demoRouter(t)

	rec := get(t, router, "/api/revenue/status")
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []map[string]any
	decode(t, rec, &rows)

	statuses := map[string]bool{}
	for _, row := range rows {
		statuses[row["Status"].(string)] = true
	}
	assert.True(t, statuses["delivered"])
	assert.True(t, statuses["shipped"], "status breakdown must not be pre-filtered")
	assert.True(t, statuses["canceled"])
}

// =============================================================================
// REVIEW TABLES
// =============================================================================

func TestGetReviewDistribution(t *testing.T) {
	router := demoRouter(t)

	rec := get(t, router, "/api/reviews/distribution")
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []map[string]any
	decode(t, rec, &rows)
	require.Len(t, rows, 5)

	total := 0.0
	for _, row := range rows {
		total += row["Percentage"].(float64)
	}
	assert.InDelta(t, 100.0, total, 0.001)
	assert.Equal(t, float64(1), rows[0]["Review Score"], "ascending score order")
}

func TestGetDeliveryScores(t *testing.T) {
	router := demoRouter(t)

	rec := get(t, router, "/api/reviews/delivery")
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []map[string]any
	decode(t, rec, &rows)
	require.Len(t, rows, 3)

	assert.Equal(t, "1-3 days", rows[0]["Delivery Time"])
	assert.Equal(t, "4-7 days", rows[1]["Delivery Time"])
	assert.Equal(t, "8+ days", rows[2]["Delivery Time"])

	assert.InDelta(t, 29.0/6.0, rows[0]["Avg Review Score"], 0.001)
	assert.InDelta(t, 3.75, rows[1]["Avg Review Score"], 0.001)
	assert.InDelta(t, 5.0/3.0, rows[2]["Avg Review Score"], 0.001)
}
