package factory_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian/commerce-insights/commerce"
	"github.com/meridian/commerce-insights/dataset"
	"github.com/meridian/commerce-insights/factory"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
data:
  dir: ./ecommerce_data
analysis:
  year: 2024
  comparison_year: 2023
  status_filter: shipped
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := factory.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "./ecommerce_data", cfg.Data.Dir)
	assert.Equal(t, 2024, cfg.Analysis.Year)
	assert.Equal(t, 2023, cfg.Analysis.ComparisonYear)
	assert.Equal(t, "shipped", cfg.Analysis.StatusFilter)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := factory.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadConfig_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data: [unclosed"), 0o644))

	_, err := factory.LoadConfig(path)
	require.Error(t, err)
}

func TestBuild_Demo(t *testing.T) {
	// GIVEN: The demo config
	// WHEN: Building the pipeline
	// THEN: Everything downstream needs is prepared once, up front

	p, err := factory.Build(factory.DemoConfig())
	require.NoError(t, err)

	assert.Equal(t, 2023, p.Engine.AnalysisYear())
	assert.Equal(t, 2022, p.Engine.ComparisonYear())

	// The shipped and canceled demo orders carry one line item each;
	// the delivered filter drops both.
	assert.Equal(t, 16, p.Analysis.Len())
	assert.Equal(t, 18, p.Unfiltered.Len())
	assert.NotEmpty(t, p.CategoryObs)
	assert.NotEmpty(t, p.StateObs)
	assert.NotEmpty(t, p.ReviewPairs)
}

func TestBuild_NoSource(t *testing.T) {
	_, err := factory.Build(&factory.Config{})
	require.ErrorIs(t, err, factory.ErrNoSource)
}

func TestBuildFromSet_PropagatesDataFaults(t *testing.T) {
	set := dataset.Demo()
	set.Orders = &dataset.Table{Name: "orders", Columns: []string{"order_id"}}

	_, err := factory.BuildFromSet(set, factory.AnalysisConfig{})
	require.Error(t, err)
	assert.ErrorIs(t, err, commerce.ErrSchema)
}

func TestBuildFromSet_DemoTotals(t *testing.T) {
	p, err := factory.BuildFromSet(dataset.Demo(), factory.AnalysisConfig{})
	require.NoError(t, err)

	revenue := p.Engine.TotalRevenue(p.Analysis, 0)
	assert.Equal(t, "862.64", revenue.StringFixed(2))
	assert.Equal(t, 8, p.Engine.TotalOrders(p.Analysis, 0))
}
