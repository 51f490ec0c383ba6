package builder

import (
	"fmt"

	"github.com/dshills/kpisynth/internal/schema"
	"github.com/dshills/kpisynth/internal/tables"
)

// Volumes builds the quarterly intake and completion counts of every
// process from the volume fields of its table.
func (b *Builder) Volumes() (map[schema.Process][]schema.Record, error) {
	out := make(map[schema.Process][]schema.Record, len(schema.Processes))
	for _, p := range schema.Processes {
		t, err := b.table(p)
		if err != nil {
			return nil, err
		}
		out[p] = b.records(t.Volumes)
		b.log.Debug("built quarterly volumes", zapProcess(p), zapCount(len(t.Volumes)))
	}
	return out, nil
}

// records evaluates fields once per quarter, in axis order.
func (b *Builder) records(fields []tables.Field) []schema.Record {
	recs := make([]schema.Record, schema.QuarterCount)
	for i, q := range schema.Quarters {
		rec := schema.NewRecord(q)
		for _, f := range fields {
			rec.Values[f.Name] = b.field(i, f, rec.Values)
		}
		recs[i] = rec
	}
	return recs
}

// field derives one value at quarter index i. Share and sum read fields
// already set in v.
func (b *Builder) field(i int, f tables.Field, v map[string]float64) float64 {
	switch f.Kind {
	case tables.FieldCount:
		return b.count(i, f.Base, f.Slope, f.Variability)
	case tables.FieldRamp:
		from, _ := schema.QuarterIndex(f.From)
		return b.ramp(i, from, f.Base, f.Slope, f.Variability)
	case tables.FieldShare:
		return b.share(v[f.Of[0]], f.RatioAt(i), f.Variability)
	case tables.FieldSum:
		var total float64
		for _, name := range f.Of {
			total += v[name]
		}
		return total
	}
	panic(fmt.Sprintf("builder: unhandled field kind %d", int(f.Kind)))
}
