package shape

import (
	"math"

	"github.com/dshills/kpisynth/internal/prng"
	"github.com/dshills/kpisynth/internal/schema"
)

// FlowParams drives StepCounts. Started grows by Step per quarter from
// StartedBase; completions are CompletedRatio of starts.
type FlowParams struct {
	StartedBase    float64 `yaml:"base"`
	Step           float64 `yaml:"growth"`
	CompletedRatio float64 `yaml:"completed_ratio"`
	Open           Range   `yaml:"open"`
	Variability    float64 `yaml:"var"`
}

// FlowOverride replaces individual step-flow fields for one quarter.
type FlowOverride struct {
	Started   *float64 `yaml:"started"`
	Completed *float64 `yaml:"completed"`
	OpenEnd   *float64 `yaml:"open_end"`
}

// FlowOverrides maps a quarter label to a flow override.
type FlowOverrides map[string]FlowOverride

// StepCounts produces started/completed/open counts for one step. Completed
// noise is half the started noise and open noise a quarter of it. Completed
// is clamped into [0, started].
func StepCounts(src *prng.Source, p FlowParams, ov FlowOverrides) []schema.FlowPoint {
	out := make([]schema.FlowPoint, schema.QuarterCount)
	for i, q := range schema.Quarters {
		o := ov[q]

		started := p.StartedBase + p.Step*float64(i)
		if o.Started != nil {
			started = *o.Started
		}
		started = math.Max(0, started+src.Noise(p.Variability))
		startedQ := int(math.Round(started))

		completed := started * p.CompletedRatio
		if o.Completed != nil {
			completed = *o.Completed
		}
		completed += src.Noise(p.Variability / 2)
		completedQ := int(math.Round(clamp(completed, 0, float64(startedQ))))

		open := p.Open.At(i)
		if o.OpenEnd != nil {
			open = *o.OpenEnd
		}
		openQ := nonNegInt(open + src.Noise(p.Variability/4))

		out[i] = schema.FlowPoint{Quarter: q, StartedQ: startedQ, CompletedQ: completedQ, OpenEndQ: openQ}
	}
	return out
}
