package factory

import (
	"errors"

	"github.com/meridian/commerce-insights/commerce"
	"github.com/meridian/commerce-insights/dataset"
)

// =============================================================================
// PIPELINE - One prepared run: tables, enrichments, engine
// =============================================================================

// Pipeline holds everything one run derives from the raw tables. All of
// it is immutable after Build; handlers and subcommands only read.
type Pipeline struct {
	Set      *dataset.Set
	Engine   *commerce.Engine
	Preparer *commerce.Preparer

	// Analysis is the status-filtered table with delivery metrics; the
	// KPI operations run over it.
	Analysis *commerce.Analysis

	// Unfiltered retains every order status; it exists solely for the
	// revenue-by-status breakdown.
	Unfiltered *commerce.Analysis

	// Pre-joined enrichment observations for the grouped tables.
	CategoryObs []commerce.Obs
	StateObs    []commerce.Obs
	ReviewPairs []commerce.BucketScore
}

// ErrNoSource is returned by Build when the config names no dataset
// source.
var ErrNoSource = errors.New("config selects no dataset source")

// Build loads the raw tables, runs preparation and enrichment once, and
// constructs the metrics engine. Any data fault aborts the build; there
// is no partial pipeline.
func Build(cfg *Config) (*Pipeline, error) {
	set, err := loadSet(cfg.Data)
	if err != nil {
		return nil, err
	}
	return BuildFromSet(set, cfg.Analysis)
}

// BuildFromSet runs preparation over an already-loaded Set.
func BuildFromSet(set *dataset.Set, cfg AnalysisConfig) (*Pipeline, error) {
	preparer := commerce.NewPreparer()

	analysis, err := preparer.Prepare(set.Orders, set.OrderItems, cfg.StatusFilter)
	if err != nil {
		return nil, err
	}
	analysis, err = preparer.AddDeliveryMetrics(analysis)
	if err != nil {
		return nil, err
	}

	unfiltered, err := preparer.Prepare(set.Orders, set.OrderItems, commerce.StatusAny)
	if err != nil {
		return nil, err
	}

	categoryObs, err := preparer.CategoryObservations(analysis, set.Products)
	if err != nil {
		return nil, err
	}
	stateObs, err := preparer.StateObservations(analysis, set.Orders, set.Customers)
	if err != nil {
		return nil, err
	}
	reviewPairs, err := preparer.DeliveryReviewPairs(analysis, set.Reviews)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		Set:         set,
		Engine:      commerce.NewEngine(cfg.Year, cfg.ComparisonYear),
		Preparer:    preparer,
		Analysis:    analysis,
		Unfiltered:  unfiltered,
		CategoryObs: categoryObs,
		StateObs:    stateObs,
		ReviewPairs: reviewPairs,
	}, nil
}

func loadSet(cfg DataConfig) (*dataset.Set, error) {
	switch {
	case cfg.Dir != "":
		return dataset.LoadDir(cfg.Dir)
	case cfg.SQLite != "":
		return dataset.LoadSQLite(cfg.SQLite)
	case cfg.Demo:
		return dataset.Demo(), nil
	default:
		return nil, ErrNoSource
	}
}
