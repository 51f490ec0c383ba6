package builder

import (
	"github.com/dshills/kpisynth/internal/schema"
	"github.com/dshills/kpisynth/internal/shape"
)

// Bottlenecks builds the typed metric blocks of each process's hot steps.
func (b *Builder) Bottlenecks() (map[schema.Process]map[string][]schema.Record, error) {
	out := make(map[schema.Process]map[string][]schema.Record, len(schema.Processes))
	for _, p := range schema.Processes {
		t, err := b.table(p)
		if err != nil {
			return nil, err
		}
		steps := make(map[string][]schema.Record, len(t.Bottlenecks))
		for _, bn := range t.Bottlenecks {
			steps[bn.Step] = shape.Bottleneck(b.src, bn.Metrics)
		}
		out[p] = steps
		b.log.Debug("built bottleneck blocks", zapProcess(p), zapCount(len(steps)))
	}
	return out, nil
}
