package synth

import (
	"github.com/dshills/kpisynth/internal/schema"
	"github.com/dshills/kpisynth/internal/shape"
)

// Rates derives percentage series from the numerator/denominator pairs in
// counts. Sample-size series have no rate and are skipped.
func Rates(counts map[schema.Process]map[string][]schema.CountPoint) map[schema.Process]map[string][]schema.RatePoint {
	out := make(map[schema.Process]map[string][]schema.RatePoint, len(counts))
	for p, series := range counts {
		rates := make(map[string][]schema.RatePoint)
		for id, pts := range series {
			if len(pts) == 0 || !pts[0].IsPair() {
				continue
			}
			rs := make([]schema.RatePoint, 0, len(pts))
			for _, c := range pts {
				if !c.IsPair() {
					continue
				}
				rs = append(rs, Rate(c.Quarter, *c.Numerator, *c.Denominator))
			}
			rates[id] = rs
		}
		out[p] = rates
	}
	return out
}

// Rate returns numerator/denominator as a percentage rounded to one decimal,
// or 0 when the denominator is 0.
func Rate(quarter string, numerator, denominator int) schema.RatePoint {
	r := schema.RatePoint{Quarter: quarter, Numerator: numerator, Denominator: denominator}
	if denominator > 0 {
		r.Value = shape.Round(100*float64(numerator)/float64(denominator), 1)
	}
	return r
}
