package shape

import (
	"fmt"
	"math"

	"github.com/dshills/kpisynth/internal/prng"
	"github.com/dshills/kpisynth/internal/schema"
)

// MetricType selects the clamping policy of a bottleneck metric.
type MetricType int

const (
	MetricRaw MetricType = iota
	MetricPct
	MetricDays
	MetricCount
	MetricRatio
	MetricUtil
)

var metricTypeNames = map[MetricType]string{
	MetricRaw:   "raw",
	MetricPct:   "pct",
	MetricDays:  "days",
	MetricCount: "count",
	MetricRatio: "ratio",
	MetricUtil:  "util",
}

func (t MetricType) String() string {
	if s, ok := metricTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("MetricType(%d)", int(t))
}

// ParseMetricType converts a tag such as "pct" into a MetricType.
func ParseMetricType(s string) (MetricType, error) {
	for t, name := range metricTypeNames {
		if name == s {
			return t, nil
		}
	}
	return MetricRaw, fmt.Errorf("unknown metric type %q: valid types are raw, pct, days, count, ratio, util", s)
}

// UnmarshalText lets YAML and JSON decoders read the tag form.
func (t *MetricType) UnmarshalText(text []byte) error {
	parsed, err := ParseMetricType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t MetricType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Clamp applies the policy of t to v.
func (t MetricType) Clamp(v float64) float64 {
	switch t {
	case MetricPct:
		return clamp(v, 0, 100)
	case MetricDays, MetricRatio, MetricUtil:
		return math.Max(0, v)
	case MetricCount:
		return float64(nonNegInt(v))
	case MetricRaw:
		return v
	}
	panic(fmt.Sprintf("shape: unhandled metric type %d", int(t)))
}

// Metric configures one bottleneck metric.
type Metric struct {
	Name        string     `yaml:"name"`
	Type        MetricType `yaml:"type"`
	Start       float64    `yaml:"start"`
	End         float64    `yaml:"end"`
	Variability float64    `yaml:"var"`
	Overrides   Overrides  `yaml:"at,omitempty"`
}

// Bottleneck produces one record per quarter holding every metric. Metrics
// draw noise in slice order within each quarter.
func Bottleneck(src *prng.Source, metrics []Metric) []schema.Record {
	out := make([]schema.Record, schema.QuarterCount)
	for i, q := range schema.Quarters {
		rec := schema.NewRecord(q)
		for _, m := range metrics {
			v := m.Overrides.lookup(q, lerp(m.Start, m.End, i)) + src.Noise(m.Variability)
			rec.Values[m.Name] = m.Type.Clamp(v)
		}
		out[i] = rec
	}
	return out
}
