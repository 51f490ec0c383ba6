package shape

import (
	"math"

	"github.com/dshills/kpisynth/internal/prng"
	"github.com/dshills/kpisynth/internal/schema"
)

// PairOverride replaces the numerator, the denominator, or both for one quarter.
type PairOverride struct {
	Numerator   *float64 `yaml:"numerator"`
	Denominator *float64 `yaml:"denominator"`
}

// PairOverrides maps a quarter label to a pair override.
type PairOverrides map[string]PairOverride

// NumDen interpolates a numerator and a denominator independently. Both are
// floored at zero and rounded. A numerator above its denominator is rescaled
// to denominator*U(0.7,1.0) so the derived rate never exceeds 100%.
func NumDen(src *prng.Source, num, den Range, ov PairOverrides, variability float64) []schema.CountPoint {
	out := make([]schema.CountPoint, schema.QuarterCount)
	for i, q := range schema.Quarters {
		n, d := num.At(i), den.At(i)
		if o, ok := ov[q]; ok {
			if o.Numerator != nil {
				n = *o.Numerator
			}
			if o.Denominator != nil {
				d = *o.Denominator
			}
		}
		ni := nonNegInt(n + src.Noise(variability))
		di := nonNegInt(d + src.Noise(variability))
		if ni > di {
			ni = int(math.Round(float64(di) * src.Uniform(0.7, 1.0)))
		}
		out[i] = schema.CountPoint{Quarter: q, Numerator: &ni, Denominator: &di}
	}
	return out
}
