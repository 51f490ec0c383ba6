// Package shape builds per-quarter curves from start/end bounds, sparse
// quarter overrides and uniform noise drawn from a shared prng.Source.
//
// Every generator returns exactly one value per quarter on the schema axis.
// Overrides replace the interpolated value before noise and clamping, so an
// override is still noised and clamped.
package shape

import (
	"math"

	"github.com/dshills/kpisynth/internal/prng"
	"github.com/dshills/kpisynth/internal/schema"
)

// sentinel bounds Linear output against runaway values.
const sentinel = 1e9

// maxDays caps Decreasing output at ten years.
const maxDays = 3650

// Overrides maps a quarter label to a replacement value.
type Overrides map[string]float64

// lookup returns the override for q, or fallback when absent.
func (o Overrides) lookup(q string, fallback float64) float64 {
	if v, ok := o[q]; ok {
		return v
	}
	return fallback
}

// Range is a start/end pair interpolated across the quarter axis.
type Range struct {
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
}

// At returns the linear interpolation for quarter index i.
func (r Range) At(i int) float64 {
	return lerp(r.Start, r.End, i)
}

func lerp(start, end float64, i int) float64 {
	return start + (end-start)*float64(i)/float64(schema.QuarterCount-1)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Round rounds v to the given number of decimals.
func Round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

// Linear interpolates start..end, applies overrides and noise, and bounds the
// result to the sentinel range. Values are not rounded.
func Linear(src *prng.Source, r Range, ov Overrides, variability float64) []schema.Point {
	out := make([]schema.Point, schema.QuarterCount)
	for i, q := range schema.Quarters {
		v := ov.lookup(q, r.At(i)) + src.Noise(variability)
		out[i] = schema.Point{Quarter: q, Value: clamp(v, -sentinel, sentinel)}
	}
	return out
}

// Decreasing produces a duration series trending from start to end days.
// target is reported as targetDays on every quarter.
func Decreasing(src *prng.Source, r Range, ov Overrides, variability, target float64) []schema.StepPoint {
	out := make([]schema.StepPoint, schema.QuarterCount)
	for i, q := range schema.Quarters {
		v := ov.lookup(q, r.At(i)) + src.Noise(variability)
		out[i] = schema.StepPoint{Quarter: q, AvgDays: clamp(v, 0, maxDays), TargetDays: target}
	}
	return out
}

// Sample produces a non-negative integer sample-size series.
func Sample(src *prng.Source, r Range, ov Overrides, variability float64) []schema.CountPoint {
	out := make([]schema.CountPoint, schema.QuarterCount)
	for i, q := range schema.Quarters {
		v := ov.lookup(q, r.At(i)) + src.Noise(variability)
		n := nonNegInt(v)
		out[i] = schema.CountPoint{Quarter: q, SampleN: &n}
	}
	return out
}

func nonNegInt(v float64) int {
	return int(math.Round(math.Max(0, v)))
}
