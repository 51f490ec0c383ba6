// Package synth assembles a complete Dataset from one seeded draw stream.
package synth

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/dshills/kpisynth/internal/builder"
	"github.com/dshills/kpisynth/internal/flatten"
	"github.com/dshills/kpisynth/internal/metadata"
	"github.com/dshills/kpisynth/internal/prng"
	"github.com/dshills/kpisynth/internal/schema"
	"github.com/dshills/kpisynth/internal/tables"
)

// Options configures one generation run. A nil Seed draws an ambient random
// seed, so the output differs between calls.
type Options struct {
	Seed *int64
}

// Seed is a convenience for building Options.Seed from a literal.
func Seed(s int64) *int64 { return &s }

// Generator produces datasets from a fixed table set. It holds no draw state,
// so one Generator may serve concurrent Generate calls.
type Generator struct {
	tables *tables.Set
	log    *zap.Logger
}

// New returns a Generator over set. A nil logger disables logging.
func New(set *tables.Set, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{tables: set, log: log}
}

// Generate builds a dataset from the embedded tables.
func Generate(opts Options) (*schema.Dataset, error) {
	set, err := tables.Default()
	if err != nil {
		return nil, fmt.Errorf("loading tables: %w", err)
	}
	return New(set, nil).Generate(opts)
}

// Generate runs every builder in fixed order against a fresh prng.Source,
// flattens disaggregations and derives the rate series.
func (g *Generator) Generate(opts Options) (*schema.Dataset, error) {
	var src *prng.Source
	if opts.Seed != nil {
		src = prng.New(*opts.Seed)
	} else {
		src = prng.NewUnseeded()
	}
	g.log.Info("generating dataset",
		zap.Uint32("seed", src.Seed()),
		zap.Bool("seeded", src.Seeded()),
		zap.String("tables", g.tables.Fingerprint),
	)

	b := builder.New(src, g.tables, g.log)

	kpis, err := b.KPISeries()
	if err != nil {
		return nil, fmt.Errorf("building KPI series: %w", err)
	}
	steps, err := b.StepDurations()
	if err != nil {
		return nil, fmt.Errorf("building step durations: %w", err)
	}
	counts, err := b.Counts()
	if err != nil {
		return nil, fmt.Errorf("building KPI counts: %w", err)
	}
	volumes, err := b.Volumes()
	if err != nil {
		return nil, fmt.Errorf("building volumes: %w", err)
	}
	inspections, err := b.Inspections()
	if err != nil {
		return nil, fmt.Errorf("building inspection volumes: %w", err)
	}
	bottlenecks, err := b.Bottlenecks()
	if err != nil {
		return nil, fmt.Errorf("building bottlenecks: %w", err)
	}
	flows, err := b.StepFlows()
	if err != nil {
		return nil, fmt.Errorf("building step flows: %w", err)
	}

	ds := &schema.Dataset{
		Quarters:          schema.Axis(),
		ProcessMetadata:   make(map[schema.Process]schema.ProcessMeta, len(schema.Processes)),
		KPIDictionary:     make(map[schema.Process]map[string]string, len(schema.Processes)),
		QuarterlyData:     kpis,
		ProcessStepData:   steps,
		KPICounts:         counts,
		KPIRates:          Rates(counts),
		QuarterlyVolumes:  volumes,
		InspectionVolumes: inspections,
		BottleneckData:    bottlenecks,
		ProcessStepCounts: flows,
	}
	for _, def := range metadata.All() {
		ds.ProcessMetadata[def.Process] = def.Meta()
		ds.KPIDictionary[def.Process] = def.Dictionary()
	}

	if err := flatten.Dataset(ds); err != nil {
		return nil, fmt.Errorf("flattening disaggregations: %w", err)
	}
	return ds, nil
}
