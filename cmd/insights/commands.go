package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/meridian/commerce-insights/commerce"
	"github.com/meridian/commerce-insights/factory"
	"github.com/meridian/commerce-insights/renderer"
)

// =============================================================================
// SHARED PIPELINE FLAGS
// =============================================================================

// pipelineFlags are the config flags every report subcommand shares.
type pipelineFlags struct {
	configPath string
	demo       bool
}

func (p *pipelineFlags) register(f *flag.FlagSet) {
	f.StringVar(&p.configPath, "config", "", "YAML config path")
	f.BoolVar(&p.demo, "demo", false, "use the built-in sample dataset")
}

func (p *pipelineFlags) build() (*factory.Pipeline, error) {
	var cfg *factory.Config
	var err error
	switch {
	case p.configPath != "":
		cfg, err = factory.LoadConfig(p.configPath)
	case p.demo:
		cfg = factory.DemoConfig()
	default:
		return nil, fmt.Errorf("either -config or -demo is required")
	}
	if err != nil {
		return nil, err
	}
	return factory.Build(cfg)
}

// fail prints the error and returns the failure exit status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}

// =============================================================================
// SUMMARY
// =============================================================================

type summaryCmd struct{ pipelineFlags }

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the business summary metrics" }
func (*summaryCmd) Usage() string {
	return `insights summary -config=<path>

  Prints total revenue, growth rates, order counts, and average order
  value for the configured analysis year against the comparison year.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) { c.register(f) }

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := c.build()
	if err != nil {
		return fail(err)
	}
	s := p.Engine.Summary(p.Analysis)
	fmt.Print(renderer.Summary(s, p.Engine.AnalysisYear(), p.Engine.ComparisonYear()))
	return subcommands.ExitSuccess
}

// =============================================================================
// GROUPED REVENUE REPORTS
// =============================================================================

type categoriesCmd struct {
	pipelineFlags
	top int
}

func (*categoriesCmd) Name() string     { return "categories" }
func (*categoriesCmd) Synopsis() string { return "display revenue by product category" }
func (*categoriesCmd) Usage() string {
	return `insights categories -config=<path> [-top=<n>]

  Prints the top product categories by revenue, descending.
`
}

func (c *categoriesCmd) SetFlags(f *flag.FlagSet) {
	c.register(f)
	f.IntVar(&c.top, "top", 10, "number of categories to show (0 = all)")
}

func (c *categoriesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := c.build()
	if err != nil {
		return fail(err)
	}
	entries := commerce.GroupedRevenue(p.CategoryObs, c.top)
	fmt.Print(renderer.RevenueTable(
		fmt.Sprintf("Top Product Categories by Revenue (top %d)", c.top),
		"Category", entries))
	return subcommands.ExitSuccess
}

type statesCmd struct{ pipelineFlags }

func (*statesCmd) Name() string     { return "states" }
func (*statesCmd) Synopsis() string { return "display revenue by customer state" }
func (*statesCmd) Usage() string {
	return `insights states -config=<path>

  Prints revenue per customer state, descending.
`
}

func (c *statesCmd) SetFlags(f *flag.FlagSet) { c.register(f) }

func (c *statesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := c.build()
	if err != nil {
		return fail(err)
	}
	entries := commerce.GroupedRevenue(p.StateObs, 0)
	fmt.Print(renderer.RevenueTable("Revenue by State", "State", entries))
	return subcommands.ExitSuccess
}

type statusCmd struct{ pipelineFlags }

func (*statusCmd) Name() string     { return "status" }
func (*statusCmd) Synopsis() string { return "display revenue by order status" }
func (*statusCmd) Usage() string {
	return `insights status -config=<path>

  Prints revenue per order status for the analysis year, over all
  orders regardless of the configured status filter.
`
}

func (c *statusCmd) SetFlags(f *flag.FlagSet) { c.register(f) }

func (c *statusCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := c.build()
	if err != nil {
		return fail(err)
	}
	obs := p.Unfiltered.Obs(commerce.ByStatus, commerce.YearIs(p.Engine.AnalysisYear()))
	entries := commerce.GroupedRevenue(obs, 0)
	fmt.Print(renderer.RevenueTable(
		fmt.Sprintf("Revenue by Order Status - %d", p.Engine.AnalysisYear()),
		"Status", entries))
	return subcommands.ExitSuccess
}

// =============================================================================
// REVIEW REPORTS
// =============================================================================

type reviewsCmd struct{ pipelineFlags }

func (*reviewsCmd) Name() string     { return "reviews" }
func (*reviewsCmd) Synopsis() string { return "display the review score distribution" }
func (*reviewsCmd) Usage() string {
	return `insights reviews -config=<path>

  Prints the normalized review score distribution.
`
}

func (c *reviewsCmd) SetFlags(f *flag.FlagSet) { c.register(f) }

func (c *reviewsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := c.build()
	if err != nil {
		return fail(err)
	}
	shares, err := commerce.ScoreDistribution(p.Set.Reviews, commerce.ColReviewScore)
	if err != nil {
		return fail(err)
	}
	fmt.Print(renderer.ReviewDistribution(shares))
	return subcommands.ExitSuccess
}

type deliveryCmd struct{ pipelineFlags }

func (*deliveryCmd) Name() string     { return "delivery" }
func (*deliveryCmd) Synopsis() string { return "display avg review score by delivery speed" }
func (*deliveryCmd) Usage() string {
	return `insights delivery -config=<path>

  Prints the average review score per delivery-speed bucket.
`
}

func (c *deliveryCmd) SetFlags(f *flag.FlagSet) { c.register(f) }

func (c *deliveryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := c.build()
	if err != nil {
		return fail(err)
	}
	entries := commerce.MeanByBucket(p.ReviewPairs, commerce.DeliveryBucketOrder())
	fmt.Print(renderer.DeliveryScores(entries))
	return subcommands.ExitSuccess
}
