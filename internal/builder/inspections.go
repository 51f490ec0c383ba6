package builder

import "github.com/dshills/kpisynth/internal/schema"

// Inspections builds requested and conducted inspection counts for the
// processes whose table lists inspection fields (CT and GMP by default).
func (b *Builder) Inspections() (map[schema.Process][]schema.Record, error) {
	out := make(map[schema.Process][]schema.Record, len(schema.Processes))
	for _, p := range schema.Processes {
		t, err := b.table(p)
		if err != nil {
			return nil, err
		}
		if len(t.Inspections) == 0 {
			continue
		}
		out[p] = b.records(t.Inspections)
		b.log.Debug("built inspection volumes", zapProcess(p), zapCount(len(t.Inspections)))
	}
	return out, nil
}
