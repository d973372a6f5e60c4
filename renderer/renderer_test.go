package renderer_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/meridian/commerce-insights/commerce"
	"github.com/meridian/commerce-insights/renderer"
	"github.com/meridian/commerce-insights/tabular"
)

func TestCurrency(t *testing.T) {
	assert.Equal(t, "$1,234.50", renderer.Currency(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "$0.00", renderer.Currency(decimal.Zero))
	assert.Equal(t, "$0.99", renderer.Currency(decimal.RequireFromString("0.994")))
}

func TestPercent(t *testing.T) {
	up := tabular.Ratio{Value: decimal.RequireFromString("0.0512"), Baseline: true}
	assert.Equal(t, "+5.12%", renderer.Percent(up))

	down := tabular.Ratio{Value: decimal.RequireFromString("-0.1"), Baseline: true}
	assert.Equal(t, "-10.00%", renderer.Percent(down))
}

func TestPercent_NoBaseline(t *testing.T) {
	// A zero-revenue comparison period renders as n/a, never as 0%.
	assert.Equal(t, "n/a (no baseline)", renderer.Percent(tabular.Ratio{}))
}

func TestSummary(t *testing.T) {
	s := commerce.Summary{
		TotalRevenue:     decimal.RequireFromString("3090"),
		RevenueGrowth:    tabular.Ratio{Value: decimal.RequireFromString("1.06"), Baseline: true},
		AvgOrderValue:    tabular.Some(decimal.RequireFromString("772.5")),
		AOVGrowth:        tabular.Ratio{Value: decimal.RequireFromString("0.03"), Baseline: true},
		TotalOrders:      4,
		OrderGrowth:      tabular.Ratio{Value: decimal.NewFromInt(1), Baseline: true},
		AvgMonthlyGrowth: tabular.Some(decimal.Zero),
	}

	out := renderer.Summary(s, 2023, 2022)

	assert.True(t, strings.HasPrefix(out, "# Business Summary 2023 (vs 2022)"))
	assert.Contains(t, out, "$3,090.00")
	assert.Contains(t, out, "+106.00%")
	assert.Contains(t, out, "$772.50")
	assert.Contains(t, out, "+0.00%", "a defined zero growth is a number, not n/a")
}

func TestSummary_UndefinedValues(t *testing.T) {
	s := commerce.Summary{
		AvgOrderValue:    tabular.None[decimal.Decimal](),
		AvgMonthlyGrowth: tabular.None[decimal.Decimal](),
	}

	out := renderer.Summary(s, 2023, 2022)

	assert.Contains(t, out, "n/a (no orders)")
	assert.Contains(t, out, "n/a (no baseline)")
}

func TestRevenueTable(t *testing.T) {
	entries := []tabular.Entry[string]{
		{Key: "electronics", Value: decimal.RequireFromString("230")},
		{Key: "books", Value: decimal.RequireFromString("120")},
	}

	out := renderer.RevenueTable("Revenue by Category", "Category", entries)

	assert.Contains(t, out, "# Revenue by Category")
	assert.Contains(t, out, "| Category")
	assert.Contains(t, out, "$230.00")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 6, "title, blank, header, separator, two rows")
}

func TestDeliveryScores(t *testing.T) {
	entries := []tabular.Entry[commerce.DeliveryBucket]{
		{Key: commerce.BucketFast, Value: decimal.RequireFromString("4.8333")},
		{Key: commerce.BucketSlow, Value: decimal.RequireFromString("1.6667")},
	}

	out := renderer.DeliveryScores(entries)

	assert.Contains(t, out, "1-3 days")
	assert.Contains(t, out, "4.83")
	assert.Contains(t, out, "8+ days")
}

func TestReviewDistribution(t *testing.T) {
	shares := []tabular.Share[int]{
		{Value: 1, Percent: decimal.RequireFromString("25")},
		{Value: 5, Percent: decimal.RequireFromString("75")},
	}

	out := renderer.ReviewDistribution(shares)

	assert.Contains(t, out, "Review Score")
	assert.Contains(t, out, "25.00%")
	assert.Contains(t, out, "75.00%")
}
