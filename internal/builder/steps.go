package builder

import (
	"github.com/dshills/kpisynth/internal/schema"
	"github.com/dshills/kpisynth/internal/shape"
	"github.com/dshills/kpisynth/internal/tables"
)

// StepDurations builds the average-days series of every process step.
func (b *Builder) StepDurations() (map[schema.Process]map[string]schema.StepSeries, error) {
	out := make(map[schema.Process]map[string]schema.StepSeries, len(schema.Processes))
	for _, p := range schema.Processes {
		t, err := b.table(p)
		if err != nil {
			return nil, err
		}
		series := make(map[string]schema.StepSeries, len(t.Steps))
		for _, st := range t.Steps {
			s := schema.StepSeries{Data: b.durationCurve(st.Curve, st.End)}
			if len(st.Disaggregations) > 0 {
				s.Disaggregations = make(map[string]map[string][]schema.StepPoint, len(st.Disaggregations))
				for _, d := range st.Disaggregations {
					cats := make(map[string][]schema.StepPoint, len(d.Categories))
					for _, c := range d.Categories {
						cats[c.Label] = b.durationCurve(c.Curve, st.End)
					}
					s.Disaggregations[d.Name] = cats
				}
			}
			series[st.Step] = s
		}
		out[p] = series
		b.log.Debug("built step durations", zapProcess(p), zapCount(len(series)))
	}
	return out, nil
}

// durationCurve draws one duration series. Categories of a disaggregated
// step share the step's target.
func (b *Builder) durationCurve(c tables.Curve, target float64) []schema.StepPoint {
	pts := shape.Decreasing(b.src, c.Range, c.Overrides, c.Variability, target)
	for i := range pts {
		pts[i].AvgDays = shape.Round(pts[i].AvgDays, 1)
	}
	return pts
}
