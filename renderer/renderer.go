/*
Package renderer turns the aggregated analytics tables into markdown
text for the CLI.

PURPOSE:
  The metrics engine emits decimals, ratios, and Maybe values; this
  package owns their display form: currency through go-money (USD),
  growth as signed percentages, undefined values as "n/a". Nothing here
  computes - it only formats what commerce produced.

SEE ALSO:
  - cmd/insights: The CLI that prints these renderings
*/
package renderer

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/meridian/commerce-insights/commerce"
	"github.com/meridian/commerce-insights/tabular"
)

// Currency formats a decimal amount as US dollars.
func Currency(d decimal.Decimal) string {
	cents := d.Shift(2).Round(0).IntPart()
	return money.New(cents, money.USD).Display()
}

// Percent formats a ratio (0.05 -> "+5.00%"). A no-baseline ratio reads
// "n/a (no baseline)".
func Percent(r tabular.Ratio) string {
	if !r.Baseline {
		return "n/a (no baseline)"
	}
	return signedPercent(r.Value)
}

func signedPercent(d decimal.Decimal) string {
	return fmt.Sprintf("%+.2f%%", d.Shift(2).InexactFloat64())
}

// =============================================================================
// SUMMARY REPORT
// =============================================================================

// Summary renders the fixed metric set as a markdown report.
func Summary(s commerce.Summary, analysisYear, comparisonYear int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Business Summary %d (vs %d)\n\n", analysisYear, comparisonYear)

	aov := "n/a (no orders)"
	if s.AvgOrderValue.Defined {
		aov = Currency(s.AvgOrderValue.Value)
	}
	avgMonthly := "n/a"
	if s.AvgMonthlyGrowth.Defined {
		avgMonthly = signedPercent(s.AvgMonthlyGrowth.Value)
	}

	writeTable(&b, []string{"Metric", "Value"}, [][]string{
		{"Total Revenue", Currency(s.TotalRevenue)},
		{"Revenue Growth", Percent(s.RevenueGrowth)},
		{"Avg Order Value", aov},
		{"AOV Growth", Percent(s.AOVGrowth)},
		{"Total Orders", fmt.Sprintf("%d", s.TotalOrders)},
		{"Order Growth", Percent(s.OrderGrowth)},
		{"Avg Monthly Growth", avgMonthly},
	})
	return b.String()
}

// =============================================================================
// GROUPED TABLES
// =============================================================================

// RevenueTable renders a grouped revenue table under the given title,
// with the dimension's presentation column name in the header.
func RevenueTable(title, dimension string, entries []tabular.Entry[string]) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)

	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{e.Key, Currency(e.Value)}
	}
	writeTable(&b, []string{dimension, "Revenue"}, rows)
	return b.String()
}

// ReviewDistribution renders the Review Score/Percentage table.
func ReviewDistribution(shares []tabular.Share[int]) string {
	var b strings.Builder
	b.WriteString("# Review Score Distribution\n\n")

	rows := make([][]string, len(shares))
	for i, s := range shares {
		rows[i] = []string{
			fmt.Sprintf("%d", s.Value),
			fmt.Sprintf("%.2f%%", s.Percent.InexactFloat64()),
		}
	}
	writeTable(&b, []string{"Review Score", "Percentage"}, rows)
	return b.String()
}

// DeliveryScores renders the Delivery Time/Avg Review Score table.
func DeliveryScores(entries []tabular.Entry[commerce.DeliveryBucket]) string {
	var b strings.Builder
	b.WriteString("# Average Review Score by Delivery Speed\n\n")

	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{string(e.Key), fmt.Sprintf("%.2f", e.Value.InexactFloat64())}
	}
	writeTable(&b, []string{"Delivery Time", "Avg Review Score"}, rows)
	return b.String()
}

// =============================================================================
// MARKDOWN TABLE PLUMBING
// =============================================================================

func writeTable(b *strings.Builder, header []string, rows [][]string) {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	writeRow := func(cells []string) {
		b.WriteString("|")
		for i, cell := range cells {
			fmt.Fprintf(b, " %-*s |", widths[i], cell)
		}
		b.WriteString("\n")
	}

	writeRow(header)
	b.WriteString("|")
	for _, w := range widths {
		b.WriteString(strings.Repeat("-", w+2))
		b.WriteString("|")
	}
	b.WriteString("\n")
	for _, row := range rows {
		writeRow(row)
	}
}
