/*
handlers.go - HTTP API handlers for the insights engine

PURPOSE:
  Exposes the aggregated analytics tables via REST API for the
  visualization layer. Handles HTTP request/response and JSON
  serialization, delegating all computation to the commerce package.

ENDPOINTS:
  Summary:
    GET /api/summary                    Seven-metric summary

  Revenue:
    GET /api/revenue/monthly?year=      Monthly revenue table
    GET /api/revenue/growth?year=       Month-over-month growth table
    GET /api/revenue/categories?top=    Revenue by product category
    GET /api/revenue/states             Revenue by customer state
    GET /api/revenue/status?year=       Revenue by order status

  Reviews:
    GET /api/reviews/distribution       Review score distribution
    GET /api/reviews/delivery           Avg review score per delivery bucket

REQUEST FLOW:
  1. Parse query parameters (year, top)
  2. Read from the prepared pipeline (no I/O, no mutation)
  3. Serialize presentation-ready tables

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Bad query parameter, data fault in the underlying tables
  - 500: Internal errors

SEE ALSO:
  - dto.go: Response data structures
  - server.go: Router setup and middleware
  - factory/pipeline.go: The prepared pipeline handlers read from
*/
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/meridian/commerce-insights/commerce"
	"github.com/meridian/commerce-insights/factory"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler serves one prepared pipeline. The pipeline is immutable, so
// handlers are safe under concurrent requests without locking.
type Handler struct {
	Pipeline *factory.Pipeline
}

// NewHandler creates a handler over a prepared pipeline.
func NewHandler(p *factory.Pipeline) *Handler {
	return &Handler{Pipeline: p}
}

// =============================================================================
// SUMMARY
// =============================================================================

// GetSummary returns the fixed summary metric set for the configured
// analysis and comparison years.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	engine := h.Pipeline.Engine
	s := engine.Summary(h.Pipeline.Analysis)
	writeJSON(w, http.StatusOK, summaryDTO(engine.AnalysisYear(), engine.ComparisonYear(), s))
}

// =============================================================================
// REVENUE TABLES
// =============================================================================

// GetMonthlyRevenue returns the Month/Revenue table for a year.
func (h *Handler) GetMonthlyRevenue(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(w, r)
	if !ok {
		return
	}
	entries := h.Pipeline.Engine.MonthlyRevenue(h.Pipeline.Analysis, year)
	writeJSON(w, http.StatusOK, monthlyRevenueDTOs(entries))
}

// GetMonthlyGrowth returns the Month/Growth Rate table for a year. The
// first month's rate is null: there is no prior month to compare.
func (h *Handler) GetMonthlyGrowth(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(w, r)
	if !ok {
		return
	}
	growth := h.Pipeline.Engine.MonthlyGrowth(h.Pipeline.Analysis, year)
	writeJSON(w, http.StatusOK, monthlyGrowthDTOs(growth))
}

// GetCategoryRevenue returns the Category/Revenue table, descending,
// truncated to ?top= when given (default 10).
func (h *Handler) GetCategoryRevenue(w http.ResponseWriter, r *http.Request) {
	top := 10
	if raw := r.URL.Query().Get("top"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "Invalid top parameter", err)
			return
		}
		top = n
	}

	entries := commerce.GroupedRevenue(h.Pipeline.CategoryObs, top)
	dtos := make([]CategoryRevenueDTO, len(entries))
	for i, e := range entries {
		dtos[i] = CategoryRevenueDTO{Category: e.Key, Revenue: e.Value.InexactFloat64()}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetStateRevenue returns the State/Revenue table, descending.
func (h *Handler) GetStateRevenue(w http.ResponseWriter, r *http.Request) {
	entries := commerce.GroupedRevenue(h.Pipeline.StateObs, 0)
	dtos := make([]StateRevenueDTO, len(entries))
	for i, e := range entries {
		dtos[i] = StateRevenueDTO{State: e.Key, Revenue: e.Value.InexactFloat64()}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetStatusRevenue returns the Status/Revenue table for a year, computed
// over the unfiltered table so every order status appears.
func (h *Handler) GetStatusRevenue(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(w, r)
	if !ok {
		return
	}
	if year == 0 {
		year = h.Pipeline.Engine.AnalysisYear()
	}

	obs := h.Pipeline.Unfiltered.Obs(commerce.ByStatus, commerce.YearIs(year))
	entries := commerce.GroupedRevenue(obs, 0)
	dtos := make([]StatusRevenueDTO, len(entries))
	for i, e := range entries {
		dtos[i] = StatusRevenueDTO{Status: e.Key, Revenue: e.Value.InexactFloat64()}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// REVIEW TABLES
// =============================================================================

// GetReviewDistribution returns the Review Score/Percentage table.
func (h *Handler) GetReviewDistribution(w http.ResponseWriter, r *http.Request) {
	shares, err := commerce.ScoreDistribution(h.Pipeline.Set.Reviews, commerce.ColReviewScore)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to compute review distribution", err)
		return
	}

	dtos := make([]ReviewShareDTO, len(shares))
	for i, s := range shares {
		dtos[i] = ReviewShareDTO{Score: s.Value, Percentage: s.Percent.InexactFloat64()}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetDeliveryScores returns the Delivery Time/Avg Review Score table in
// intrinsic bucket order.
func (h *Handler) GetDeliveryScores(w http.ResponseWriter, r *http.Request) {
	entries := commerce.MeanByBucket(h.Pipeline.ReviewPairs, commerce.DeliveryBucketOrder())
	dtos := make([]DeliveryScoreDTO, len(entries))
	for i, e := range entries {
		dtos[i] = DeliveryScoreDTO{
			DeliveryTime:   string(e.Key),
			AvgReviewScore: e.Value.InexactFloat64(),
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// HELPERS
// =============================================================================

// yearParam reads the optional ?year= parameter; 0 means "use the
// configured analysis year" downstream.
func yearParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		return 0, true
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year < 0 {
		writeError(w, http.StatusBadRequest, "Invalid year parameter", err)
		return 0, false
	}
	return year, true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
