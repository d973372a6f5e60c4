/*
metrics.go - KPI computation over the analysis table

PURPOSE:
  Computes the point-in-time and comparative business metrics: total
  revenue, year-over-year growth of revenue / orders / average order
  value, month-over-month growth, and the grouped summary tables the
  presentation layer binds to.

PERIODS:
  An Engine is constructed once per run with an analysis year and a
  comparison year, both read-only afterwards. Every operation takes an
  explicit year; passing 0 means "use the configured period", mirroring
  the defaulting behavior callers expect.

DEGENERATE ARITHMETIC:
  - A growth ratio over a zero baseline is 0 with Baseline=false, a
    documented simplification, not a measured rate and not an error.
  - The mean of an empty group (average order value of a period with no
    orders, average of zero defined monthly growths) is undefined, a
    first-class tabular.Maybe, never coerced to 0.
  - Total revenue of an empty period is 0: sums have a natural identity,
    means do not.

CONCURRENCY:
  The Engine is immutable and every operation is a pure read over the
  table it is given, so concurrent use over distinct tables needs no
  coordination.

SEE ALSO:
  - preparer.go: Produces the tables consumed here
  - tabular/: The generic aggregation primitives
*/
package commerce

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/meridian/commerce-insights/dataset"
	"github.com/meridian/commerce-insights/tabular"
)

// Default periods when the caller configures none.
const (
	DefaultAnalysisYear   = 2023
	DefaultComparisonYear = 2022
)

// Engine computes KPIs over analysis tables. The two configured years
// are fixed at construction.
type Engine struct {
	analysisYear   int
	comparisonYear int
}

// NewEngine creates an Engine with the given analysis and comparison
// years. Zero values fall back to the defaults (2023 / 2022).
func NewEngine(analysisYear, comparisonYear int) *Engine {
	if analysisYear == 0 {
		analysisYear = DefaultAnalysisYear
	}
	if comparisonYear == 0 {
		comparisonYear = DefaultComparisonYear
	}
	return &Engine{analysisYear: analysisYear, comparisonYear: comparisonYear}
}

// AnalysisYear returns the configured analysis period.
func (e *Engine) AnalysisYear() int { return e.analysisYear }

// ComparisonYear returns the configured comparison period.
func (e *Engine) ComparisonYear() int { return e.comparisonYear }

func (e *Engine) orAnalysis(year int) int {
	if year == 0 {
		return e.analysisYear
	}
	return year
}

func (e *Engine) orComparison(year int) int {
	if year == 0 {
		return e.comparisonYear
	}
	return year
}

// =============================================================================
// POINT METRICS
// =============================================================================

// TotalRevenue sums price over records purchased in the given year.
// An empty period yields 0.
func (e *Engine) TotalRevenue(a *Analysis, year int) decimal.Decimal {
	year = e.orAnalysis(year)
	total := decimal.Zero
	for _, r := range a.Records {
		if r.Year == year {
			total = total.Add(r.Price)
		}
	}
	return total
}

// TotalOrders counts distinct orders purchased in the given year.
func (e *Engine) TotalOrders(a *Analysis, year int) int {
	year = e.orAnalysis(year)
	seen := make(map[string]struct{})
	for _, r := range a.Records {
		if r.Year == year {
			seen[r.OrderID] = struct{}{}
		}
	}
	return len(seen)
}

// AverageOrderValue groups records by order within the year, sums price
// per order, and returns the mean of those per-order sums. Undefined
// when the year has no orders; callers check Defined before formatting.
func (e *Engine) AverageOrderValue(a *Analysis, year int) tabular.Maybe[decimal.Decimal] {
	year = e.orAnalysis(year)
	perOrder := tabular.SumBy(a.records(year), ByOrderID, recordPrice)
	return tabular.MeanOf(perOrder)
}

// =============================================================================
// COMPARATIVE METRICS
// =============================================================================

// RevenueGrowth computes (current-previous)/previous revenue. A zero
// previous-year revenue yields Ratio{0, Baseline: false}.
func (e *Engine) RevenueGrowth(a *Analysis, currentYear, previousYear int) tabular.Ratio {
	currentYear = e.orAnalysis(currentYear)
	previousYear = e.orComparison(previousYear)
	return tabular.GrowthRate(e.TotalRevenue(a, currentYear), e.TotalRevenue(a, previousYear))
}

// OrderGrowth computes the year-over-year change of the distinct order
// count, with the same zero-baseline policy as RevenueGrowth.
func (e *Engine) OrderGrowth(a *Analysis, currentYear, previousYear int) tabular.Ratio {
	currentYear = e.orAnalysis(currentYear)
	previousYear = e.orComparison(previousYear)
	return tabular.GrowthRate(
		decimal.NewFromInt(int64(e.TotalOrders(a, currentYear))),
		decimal.NewFromInt(int64(e.TotalOrders(a, previousYear))),
	)
}

// AOVGrowth computes the year-over-year change of the average order
// value. An undefined or zero previous-year AOV yields the no-baseline
// ratio; an undefined current-year AOV counts as 0 against an existing
// baseline.
func (e *Engine) AOVGrowth(a *Analysis, currentYear, previousYear int) tabular.Ratio {
	currentYear = e.orAnalysis(currentYear)
	previousYear = e.orComparison(previousYear)
	previous := e.AverageOrderValue(a, previousYear)
	if !previous.Defined {
		return tabular.Ratio{Value: decimal.Zero, Baseline: false}
	}
	current := e.AverageOrderValue(a, currentYear)
	return tabular.GrowthRate(current.Or(decimal.Zero), previous.Value)
}

// =============================================================================
// MONTHLY SEQUENCES
// =============================================================================

// MonthGrowth is one entry of the month-over-month growth sequence. The
// first month of the sequence has an undefined growth: there is no prior
// month to compare, which is not the same thing as 0% growth.
type MonthGrowth struct {
	Month  time.Month
	Growth tabular.Maybe[decimal.Decimal]
}

// MonthlyRevenue sums price per purchase month within the year, in
// chronological order. Only months present in the data appear.
func (e *Engine) MonthlyRevenue(a *Analysis, year int) []tabular.Entry[time.Month] {
	year = e.orAnalysis(year)
	byMonth := tabular.SumBy(a.records(year), recordMonth, recordPrice)
	return tabular.ByKeyAsc(byMonth)
}

// MonthlyGrowth computes the successive percentage change between
// chronologically adjacent months present in the data. The first entry
// is undefined; so is any entry whose prior month summed to exactly
// zero (nothing to divide by).
func (e *Engine) MonthlyGrowth(a *Analysis, year int) []MonthGrowth {
	monthly := e.MonthlyRevenue(a, year)
	growth := make([]MonthGrowth, 0, len(monthly))
	for i, entry := range monthly {
		mg := MonthGrowth{Month: entry.Key, Growth: tabular.None[decimal.Decimal]()}
		if i > 0 {
			if rate := tabular.GrowthRate(entry.Value, monthly[i-1].Value); rate.Baseline {
				mg.Growth = tabular.Some(rate.Value)
			}
		}
		growth = append(growth, mg)
	}
	return growth
}

// =============================================================================
// SUMMARY
// =============================================================================

// Summary is the fixed metric set computed over the configured periods.
// Undefined values stay undefined here; formatting them is the
// presentation layer's problem.
type Summary struct {
	TotalRevenue     decimal.Decimal
	RevenueGrowth    tabular.Ratio
	AvgOrderValue    tabular.Maybe[decimal.Decimal]
	AOVGrowth        tabular.Ratio
	TotalOrders      int
	OrderGrowth      tabular.Ratio
	AvgMonthlyGrowth tabular.Maybe[decimal.Decimal]
}

// Summary computes all summary metrics for the configured analysis year
// against the configured comparison year. AvgMonthlyGrowth is the mean
// of the defined month-over-month growth values only.
func (e *Engine) Summary(a *Analysis) Summary {
	var defined []decimal.Decimal
	for _, mg := range e.MonthlyGrowth(a, 0) {
		if mg.Growth.Defined {
			defined = append(defined, mg.Growth.Value)
		}
	}

	return Summary{
		TotalRevenue:     e.TotalRevenue(a, 0),
		RevenueGrowth:    e.RevenueGrowth(a, 0, 0),
		AvgOrderValue:    e.AverageOrderValue(a, 0),
		AOVGrowth:        e.AOVGrowth(a, 0, 0),
		TotalOrders:      e.TotalOrders(a, 0),
		OrderGrowth:      e.OrderGrowth(a, 0, 0),
		AvgMonthlyGrowth: tabular.MeanSeq(defined),
	}
}

// =============================================================================
// GROUPED TABLES
// =============================================================================

// GroupedRevenue sums price per distinct observation key, descending by
// revenue, truncated to topN when topN > 0. The same operation serves
// the category, state, and status breakdowns; only the observations
// differ.
func GroupedRevenue(obs []Obs, topN int) []tabular.Entry[string] {
	totals := tabular.SumBy(obs, func(o Obs) string { return o.Key }, func(o Obs) decimal.Decimal { return o.Price })
	return tabular.RankDesc(totals, topN)
}

// ScoreDistribution computes the normalized frequency distribution of an
// integer-valued column (review scores), as percentages summing to 100
// in the score's natural order.
func ScoreDistribution(tbl *dataset.Table, column string) ([]tabular.Share[int], error) {
	if missing := tbl.Missing(column); len(missing) > 0 {
		return nil, &SchemaError{Table: tbl.Name, Missing: missing}
	}
	idx := tbl.Index(column)

	values := make([]int, 0, len(tbl.Rows))
	for _, row := range tbl.Rows {
		v, err := strconv.Atoi(row[idx])
		if err != nil {
			return nil, &InvalidArgumentError{
				Field:  column,
				Reason: "not an integer",
				Value:  row[idx],
			}
		}
		values = append(values, v)
	}
	return tabular.Distribution(values), nil
}

// MeanByBucket averages review scores per delivery bucket, emitted in
// the intrinsic bucket order. Buckets with no observations are omitted.
func MeanByBucket(pairs []BucketScore, order []DeliveryBucket) []tabular.Entry[DeliveryBucket] {
	tp := make([]tabular.Pair[DeliveryBucket], len(pairs))
	for i, p := range pairs {
		tp[i] = tabular.Pair[DeliveryBucket]{Key: p.Bucket, Value: p.Score}
	}
	return tabular.MeanBy(tp, order)
}

// =============================================================================
// INTERNAL SELECTORS
// =============================================================================

func (a *Analysis) records(year int) []Record {
	var out []Record
	for _, r := range a.Records {
		if r.Year == year {
			out = append(out, r)
		}
	}
	return out
}

func recordPrice(r Record) decimal.Decimal { return r.Price }
func recordMonth(r Record) time.Month      { return r.Month }
