package builder

import (
	"math"

	"github.com/dshills/kpisynth/internal/metadata"
	"github.com/dshills/kpisynth/internal/schema"
	"github.com/dshills/kpisynth/internal/shape"
	"github.com/dshills/kpisynth/internal/tables"
)

// KPISeries builds the quarterly KPI series of every process, including the
// nested disaggregations.
func (b *Builder) KPISeries() (map[schema.Process]map[string]schema.KPISeries, error) {
	out := make(map[schema.Process]map[string]schema.KPISeries, len(schema.Processes))
	for _, p := range schema.Processes {
		t, err := b.table(p)
		if err != nil {
			return nil, err
		}
		series := make(map[string]schema.KPISeries, len(t.KPIs))
		for _, k := range t.KPIs {
			s := schema.KPISeries{
				Baseline: k.Baseline,
				Target:   k.Target,
				Data:     b.kpiCurve(k.ID, k.Curve),
			}
			if len(k.Disaggregations) > 0 {
				s.Disaggregations = make(map[string]map[string][]schema.Point, len(k.Disaggregations))
				for _, d := range k.Disaggregations {
					cats := make(map[string][]schema.Point, len(d.Categories))
					for _, c := range d.Categories {
						cats[c.Label] = b.kpiCurve(k.ID, c.Curve)
					}
					s.Disaggregations[d.Name] = cats
				}
			}
			series[k.ID] = s
		}
		out[p] = series
		b.log.Debug("built KPI series", zapProcess(p), zapCount(len(series)))
	}
	return out, nil
}

// kpiCurve draws a Linear curve and applies the KPI unit: percentages stay in
// [0,100], day counts stay non-negative, both rounded to one decimal.
func (b *Builder) kpiCurve(id string, c tables.Curve) []schema.Point {
	pts := shape.Linear(b.src, c.Range, c.Overrides, c.Variability)
	timeBased := metadata.IsTimeBased(id)
	for i := range pts {
		v := pts[i].Value
		if timeBased {
			v = math.Max(0, v)
		} else {
			v = math.Max(0, math.Min(100, v))
		}
		pts[i].Value = shape.Round(v, 1)
	}
	return pts
}
