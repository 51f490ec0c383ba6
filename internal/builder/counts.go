package builder

import (
	"github.com/dshills/kpisynth/internal/schema"
	"github.com/dshills/kpisynth/internal/shape"
)

// Counts builds the numerator/denominator pairs behind rate KPIs and the
// sample sizes behind median and average KPIs.
func (b *Builder) Counts() (map[schema.Process]map[string][]schema.CountPoint, error) {
	out := make(map[schema.Process]map[string][]schema.CountPoint, len(schema.Processes))
	for _, p := range schema.Processes {
		t, err := b.table(p)
		if err != nil {
			return nil, err
		}
		series := make(map[string][]schema.CountPoint, len(t.Counts))
		for _, c := range t.Counts {
			if c.Pair != nil {
				series[c.KPI] = shape.NumDen(b.src, c.Pair.Numerator, c.Pair.Denominator, c.Pair.Overrides, c.Pair.Variability)
				continue
			}
			series[c.KPI] = shape.Sample(b.src, c.Sample.Range, c.Sample.Overrides, c.Sample.Variability)
		}
		out[p] = series
		b.log.Debug("built KPI counts", zapProcess(p), zapCount(len(series)))
	}
	return out, nil
}
