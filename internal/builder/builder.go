// Package builder turns the parameter tables into the seven dataset
// categories. All builders share one prng.Source; the order in which they
// run and iterate their tables fixes the draw order and therefore the output.
package builder

import (
	"math"

	"go.uber.org/zap"

	"github.com/dshills/kpisynth/internal/prng"
	"github.com/dshills/kpisynth/internal/schema"
	"github.com/dshills/kpisynth/internal/tables"
)

// Builder owns the draw stream for one dataset.
type Builder struct {
	src *prng.Source
	set *tables.Set
	log *zap.Logger
}

// New returns a Builder drawing from src. A nil logger disables logging.
func New(src *prng.Source, set *tables.Set, log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{src: src, set: set, log: log}
}

// table returns the parameters for p.
func (b *Builder) table(p schema.Process) (*tables.Table, error) {
	return b.set.Get(p)
}

// count returns a noisy non-negative integer count trending base+slope*i.
func (b *Builder) count(i int, base, slope, variability float64) float64 {
	return math.Round(math.Max(0, base+slope*float64(i)+b.src.Noise(variability)))
}

// ramp is zero before quarter index from and grows linearly afterwards.
// No noise is drawn while the ramp is closed.
func (b *Builder) ramp(i, from int, base, slope, variability float64) float64 {
	if i < from {
		return 0
	}
	return b.count(i-from, base, slope, variability)
}

// share returns a noisy fraction of total, clamped into [0,total].
func (b *Builder) share(total, ratio, variability float64) float64 {
	v := math.Round(total*ratio + b.src.Noise(variability))
	return math.Max(0, math.Min(total, v))
}
