// Package tables holds the hand-authored parameters that drive the dataset
// builders. Each process has one YAML file; the default set is embedded and
// an alternative directory can be loaded for experiments.
package tables

import (
	"github.com/dshills/kpisynth/internal/schema"
	"github.com/dshills/kpisynth/internal/shape"
)

// Table is the full parameter set for one process.
type Table struct {
	Process     schema.Process `yaml:"process"`
	KPIs        []KPIParams    `yaml:"kpis"`
	Steps       []StepParams   `yaml:"steps"`
	Counts      []CountParams  `yaml:"counts"`
	Bottlenecks []Bottleneck   `yaml:"bottlenecks"`
	Flows       []Flow         `yaml:"step_counts"`
	Volumes     []Field        `yaml:"volumes"`
	Inspections []Field        `yaml:"inspections,omitempty"`
}

// Curve is an interpolated trajectory with noise and quarter overrides.
type Curve struct {
	shape.Range `yaml:",inline"`
	Variability float64         `yaml:"var"`
	Overrides   shape.Overrides `yaml:"at,omitempty"`
}

// KPIParams drives one KPI series.
type KPIParams struct {
	ID              string  `yaml:"id"`
	Baseline        float64 `yaml:"baseline"`
	Target          float64 `yaml:"target"`
	Curve           `yaml:",inline"`
	Disaggregations []Dimension `yaml:"disaggregations,omitempty"`
}

// Dimension is one categorical breakdown of a series.
type Dimension struct {
	Name       string     `yaml:"dimension"`
	Categories []Category `yaml:"categories"`
}

// Category is one label within a dimension, with its own trajectory.
type Category struct {
	Label string `yaml:"label"`
	Curve `yaml:",inline"`
}

// StepParams drives one process-step duration series. End is the step target.
type StepParams struct {
	Step            string `yaml:"step"`
	Curve           `yaml:",inline"`
	Disaggregations []Dimension `yaml:"disaggregations,omitempty"`
}

// CountParams drives one KPI count series. Exactly one of Pair or Sample is set.
type CountParams struct {
	KPI    string `yaml:"kpi"`
	Pair   *Pair  `yaml:"pair,omitempty"`
	Sample *Curve `yaml:"sample,omitempty"`
}

// Pair is a numerator/denominator trajectory.
type Pair struct {
	Numerator   shape.Range         `yaml:"numerator"`
	Denominator shape.Range         `yaml:"denominator"`
	Variability float64             `yaml:"var"`
	Overrides   shape.PairOverrides `yaml:"at,omitempty"`
}

// Bottleneck lists the metrics generated for one hot step.
type Bottleneck struct {
	Step    string         `yaml:"step"`
	Metrics []shape.Metric `yaml:"metrics"`
}

// Flow drives the step-flow counts of one step.
type Flow struct {
	Step             string `yaml:"step"`
	shape.FlowParams `yaml:",inline"`
	Overrides        shape.FlowOverrides `yaml:"at,omitempty"`
}
