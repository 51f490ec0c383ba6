package builder

import (
	"github.com/dshills/kpisynth/internal/schema"
	"github.com/dshills/kpisynth/internal/shape"
)

// StepFlows builds started/completed/open counts for every process step.
func (b *Builder) StepFlows() (map[schema.Process]map[string][]schema.FlowPoint, error) {
	out := make(map[schema.Process]map[string][]schema.FlowPoint, len(schema.Processes))
	for _, p := range schema.Processes {
		t, err := b.table(p)
		if err != nil {
			return nil, err
		}
		steps := make(map[string][]schema.FlowPoint, len(t.Flows))
		for _, f := range t.Flows {
			steps[f.Step] = shape.StepCounts(b.src, f.FlowParams, f.Overrides)
		}
		out[p] = steps
		b.log.Debug("built step flows", zapProcess(p), zapCount(len(steps)))
	}
	return out, nil
}
