/*
Package factory assembles the analytics pipeline from external
configuration.

PURPOSE:
  Translates a YAML config file into concrete pipeline objects: picks the
  dataset source (CSV directory, SQLite database, or the built-in demo
  set), runs preparation once, and constructs the metrics engine with the
  configured periods. The core packages never read config or environment
  themselves; years and the status filter reach them as explicit
  arguments from here.

CONFIG FILE:
  data:
    dir: ./ecommerce_data        # CSV directory, or
    sqlite: ./ecommerce.db       # SQLite database, or
    demo: true                   # built-in sample set
  analysis:
    year: 2023
    comparison_year: 2022
    status_filter: delivered

SEE ALSO:
  - pipeline.go: Build() and the Pipeline type
  - dataset/: The three sources
*/
package factory

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the external configuration of one pipeline run.
type Config struct {
	Data     DataConfig     `yaml:"data"`
	Analysis AnalysisConfig `yaml:"analysis"`
}

// DataConfig selects the dataset source. Exactly one of Dir, SQLite, or
// Demo should be set; Dir wins over SQLite, SQLite over Demo.
type DataConfig struct {
	Dir    string `yaml:"dir"`
	SQLite string `yaml:"sqlite"`
	Demo   bool   `yaml:"demo"`
}

// AnalysisConfig carries the periods and the status filter. Zero values
// fall back to the engine defaults (2023 / 2022 / delivered).
type AnalysisConfig struct {
	Year           int    `yaml:"year"`
	ComparisonYear int    `yaml:"comparison_year"`
	StatusFilter   string `yaml:"status_filter"`
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (*Config, error) {
	config := &Config{}

	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(file, config); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return config, nil
}

// DemoConfig returns a config wired to the built-in sample set with
// default periods.
func DemoConfig() *Config {
	return &Config{Data: DataConfig{Demo: true}}
}
