/*
dto.go - Data Transfer Objects for API responses

PURPOSE:
  Defines the JSON structures returned to the visualization layer. The
  JSON keys are the stable presentation column names the charts bind to
  ("Month"/"Revenue", "Category"/"Revenue", ...), so the rendering layer
  needs no further transformation.

UNDEFINED VALUES:
  Metrics without a defined value (no orders in a period, first month of
  a growth sequence) serialize as null, never as 0. Clients decide how to
  display "no data".

NUMBERS:
  Internally everything is decimal; values become floats only here, at
  the presentation boundary.

SEE ALSO:
  - handlers.go: Builds these from commerce results
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/meridian/commerce-insights/commerce"
	"github.com/meridian/commerce-insights/tabular"
)

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// SummaryDTO is the fixed metric set for the configured periods.
type SummaryDTO struct {
	AnalysisYear     int      `json:"analysis_year"`
	ComparisonYear   int      `json:"comparison_year"`
	TotalRevenue     float64  `json:"total_revenue"`
	RevenueGrowth    float64  `json:"revenue_growth"`
	AvgOrderValue    *float64 `json:"avg_order_value"`
	AOVGrowth        float64  `json:"aov_growth"`
	TotalOrders      int      `json:"total_orders"`
	OrderGrowth      float64  `json:"order_growth"`
	AvgMonthlyGrowth *float64 `json:"avg_monthly_growth"`
}

// MonthlyRevenueDTO is one row of the monthly revenue table.
type MonthlyRevenueDTO struct {
	Month   int     `json:"Month"`
	Revenue float64 `json:"Revenue"`
}

// MonthlyGrowthDTO is one row of the month-over-month growth table.
// GrowthRate is a percentage and null for the first month.
type MonthlyGrowthDTO struct {
	Month      int      `json:"Month"`
	GrowthRate *float64 `json:"Growth Rate"`
}

// The grouped revenue tables share one shape but each dimension keeps
// its own column name, so clients bind axes without remapping.

type CategoryRevenueDTO struct {
	Category string  `json:"Category"`
	Revenue  float64 `json:"Revenue"`
}

type StateRevenueDTO struct {
	State   string  `json:"State"`
	Revenue float64 `json:"Revenue"`
}

type StatusRevenueDTO struct {
	Status  string  `json:"Status"`
	Revenue float64 `json:"Revenue"`
}

// ReviewShareDTO is one row of the review score distribution.
type ReviewShareDTO struct {
	Score      int     `json:"Review Score"`
	Percentage float64 `json:"Percentage"`
}

// DeliveryScoreDTO is one row of the delivery-speed / review-score
// relationship, in intrinsic bucket order.
type DeliveryScoreDTO struct {
	DeliveryTime   string  `json:"Delivery Time"`
	AvgReviewScore float64 `json:"Avg Review Score"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func maybeFloat(m tabular.Maybe[decimal.Decimal]) *float64 {
	if !m.Defined {
		return nil
	}
	f := m.Value.InexactFloat64()
	return &f
}

func summaryDTO(analysisYear, comparisonYear int, s commerce.Summary) SummaryDTO {
	return SummaryDTO{
		AnalysisYear:     analysisYear,
		ComparisonYear:   comparisonYear,
		TotalRevenue:     s.TotalRevenue.InexactFloat64(),
		RevenueGrowth:    s.RevenueGrowth.Value.InexactFloat64(),
		AvgOrderValue:    maybeFloat(s.AvgOrderValue),
		AOVGrowth:        s.AOVGrowth.Value.InexactFloat64(),
		TotalOrders:      s.TotalOrders,
		OrderGrowth:      s.OrderGrowth.Value.InexactFloat64(),
		AvgMonthlyGrowth: maybeFloat(s.AvgMonthlyGrowth),
	}
}

func monthlyRevenueDTOs(entries []tabular.Entry[time.Month]) []MonthlyRevenueDTO {
	dtos := make([]MonthlyRevenueDTO, len(entries))
	for i, e := range entries {
		dtos[i] = MonthlyRevenueDTO{Month: int(e.Key), Revenue: e.Value.InexactFloat64()}
	}
	return dtos
}

func monthlyGrowthDTOs(growth []commerce.MonthGrowth) []MonthlyGrowthDTO {
	dtos := make([]MonthlyGrowthDTO, len(growth))
	for i, g := range growth {
		dto := MonthlyGrowthDTO{Month: int(g.Month)}
		if g.Growth.Defined {
			pct := g.Growth.Value.Mul(decimal.NewFromInt(100)).InexactFloat64()
			dto.GrowthRate = &pct
		}
		dtos[i] = dto
	}
	return dtos
}
