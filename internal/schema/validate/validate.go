package validate

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/dshills/kpisynth/internal/flatten"
	"github.com/dshills/kpisynth/internal/schema"
	"github.com/dshills/kpisynth/internal/shape"
	"github.com/dshills/kpisynth/internal/tables"
)

// Violation is one broken invariant in a dataset.
type Violation struct {
	Path    string
	Message string
}

func (v Violation) String() string { return v.Path + ": " + v.Message }

// Parse decodes a serialized dataset. It fails if the document is not a JSON
// object or lacks one of the seven dataset categories.
func Parse(raw []byte) (*schema.Dataset, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, fmt.Errorf("JSON parse failed: dataset must be a JSON object: %w", err)
	}
	if top == nil {
		return nil, fmt.Errorf("dataset must be a JSON object, got null")
	}
	var missing []string
	for _, key := range schema.CategoryKeys {
		if _, ok := top[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("dataset missing required keys: %v", missing)
	}

	var ds schema.Dataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("JSON parse failed: %w", err)
	}
	return &ds, nil
}

// Check returns every invariant violation in ds. When set is non-nil the
// bottleneck clamp policies and flattening completeness are checked against
// it as well.
func Check(ds *schema.Dataset, set *tables.Set) []Violation {
	c := &checker{}
	c.quarters(ds)
	c.counts(ds)
	c.flows(ds)
	c.flat(ds)
	if set != nil {
		c.bottlenecks(ds, set)
		c.flatCoverage(ds, set)
	}
	sort.SliceStable(c.out, func(i, j int) bool { return c.out[i].Path < c.out[j].Path })
	return c.out
}

type checker struct {
	out []Violation
}

func (c *checker) add(path, format string, args ...any) {
	c.out = append(c.out, Violation{Path: path, Message: fmt.Sprintf(format, args...)})
}

func (c *checker) axis(path string, got []string) {
	if len(got) != schema.QuarterCount {
		c.add(path, "has %d quarters, want %d", len(got), schema.QuarterCount)
		return
	}
	for i, q := range got {
		if q != schema.Quarters[i] {
			c.add(path, "entry %d has quarter %q, want %q", i, q, schema.Quarters[i])
			return
		}
	}
}

func (c *checker) quarters(ds *schema.Dataset) {
	c.axis("quarters", ds.Quarters)
	for p, series := range ds.QuarterlyData {
		for id, s := range series {
			c.axis(fmt.Sprintf("quarterlyData.%s.%s", p, id), pointQuarters(s.Data))
		}
	}
	for p, series := range ds.ProcessStepData {
		for id, s := range series {
			qs := make([]string, len(s.Data))
			for i, pt := range s.Data {
				qs[i] = pt.Quarter
			}
			c.axis(fmt.Sprintf("processStepData.%s.%s", p, id), qs)
		}
	}
	for p, series := range ds.KPICounts {
		for id, pts := range series {
			qs := make([]string, len(pts))
			for i, pt := range pts {
				qs[i] = pt.Quarter
			}
			c.axis(fmt.Sprintf("kpiCounts.%s.%s", p, id), qs)
		}
	}
	for p, series := range ds.KPIRates {
		for id, pts := range series {
			qs := make([]string, len(pts))
			for i, pt := range pts {
				qs[i] = pt.Quarter
			}
			c.axis(fmt.Sprintf("kpiRates.%s.%s", p, id), qs)
		}
	}
	for p, recs := range ds.QuarterlyVolumes {
		c.axis(fmt.Sprintf("quarterlyVolumes.%s", p), recordQuarters(recs))
	}
	for p, recs := range ds.InspectionVolumes {
		c.axis(fmt.Sprintf("inspectionVolumes.%s", p), recordQuarters(recs))
	}
	for p, steps := range ds.BottleneckData {
		for step, recs := range steps {
			c.axis(fmt.Sprintf("bottleneckData.%s.%s", p, step), recordQuarters(recs))
		}
	}
	for p, steps := range ds.ProcessStepCounts {
		for step, pts := range steps {
			qs := make([]string, len(pts))
			for i, pt := range pts {
				qs[i] = pt.Quarter
			}
			c.axis(fmt.Sprintf("processStepCounts.%s.%s", p, step), qs)
		}
	}
}

func (c *checker) counts(ds *schema.Dataset) {
	for p, series := range ds.KPICounts {
		for id, pts := range series {
			path := fmt.Sprintf("kpiCounts.%s.%s", p, id)
			ratePath := fmt.Sprintf("kpiRates.%s.%s", p, id)
			rates, hasRates := ds.KPIRates[p][id]
			if len(pts) > 0 && pts[0].IsPair() && !hasRates {
				c.add(ratePath, "missing rate series for count pairs")
			}
			for i, pt := range pts {
				if !pt.IsPair() {
					if pt.SampleN == nil {
						c.add(path, "%s: neither numerator/denominator nor sample_n", pt.Quarter)
					} else if *pt.SampleN < 0 {
						c.add(path, "%s: sample_n %d is negative", pt.Quarter, *pt.SampleN)
					}
					continue
				}
				n, d := *pt.Numerator, *pt.Denominator
				if n < 0 || n > d {
					c.add(path, "%s: numerator %d outside [0, denominator %d]", pt.Quarter, n, d)
				}
				if i >= len(rates) {
					continue
				}
				want := 0.0
				if d > 0 {
					want = shape.Round(100*float64(n)/float64(d), 1)
				}
				r := rates[i]
				if r.Numerator != n || r.Denominator != d || math.Abs(r.Value-want) > 1e-9 {
					c.add(ratePath, "%s: rate %v for %d/%d, want %v", r.Quarter, r.Value, r.Numerator, r.Denominator, want)
				}
			}
		}
	}
}

func (c *checker) flows(ds *schema.Dataset) {
	for p, steps := range ds.ProcessStepCounts {
		for step, pts := range steps {
			path := fmt.Sprintf("processStepCounts.%s.%s", p, step)
			for _, pt := range pts {
				if pt.CompletedQ < 0 || pt.CompletedQ > pt.StartedQ {
					c.add(path, "%s: completed_q %d outside [0, started_q %d]", pt.Quarter, pt.CompletedQ, pt.StartedQ)
				}
				if pt.OpenEndQ < 0 {
					c.add(path, "%s: open_end_q %d is negative", pt.Quarter, pt.OpenEndQ)
				}
			}
		}
	}
}

func (c *checker) flat(ds *schema.Dataset) {
	for p, series := range ds.QuarterlyData {
		for id, s := range series {
			if s.Disaggregations != nil {
				c.add(fmt.Sprintf("quarterlyData.%s.%s", p, id), "retains disaggregations")
			}
		}
	}
	for p, series := range ds.ProcessStepData {
		for id, s := range series {
			if s.Disaggregations != nil {
				c.add(fmt.Sprintf("processStepData.%s.%s", p, id), "retains disaggregations")
			}
		}
	}
}

func (c *checker) flatCoverage(ds *schema.Dataset, set *tables.Set) {
	for p, tbl := range set.Tables {
		for _, k := range tbl.KPIs {
			for _, d := range k.Disaggregations {
				for _, cat := range d.Categories {
					key := flatten.Key(k.ID, cat.Label)
					if _, ok := ds.QuarterlyData[p][key]; !ok {
						c.add(fmt.Sprintf("quarterlyData.%s.%s", p, key), "missing flattened series for %s/%s", d.Name, cat.Label)
					}
				}
			}
		}
		for _, st := range tbl.Steps {
			for _, d := range st.Disaggregations {
				for _, cat := range d.Categories {
					key := flatten.Key(st.Step, cat.Label)
					path := fmt.Sprintf("processStepData.%s.%s", p, key)
					flat, ok := ds.ProcessStepData[p][key]
					if !ok {
						c.add(path, "missing flattened series for %s/%s", d.Name, cat.Label)
						continue
					}
					for _, pt := range flat.Data {
						if pt.TargetDays != st.End {
							c.add(path, "%s: targetDays %g differs from step target %g", pt.Quarter, pt.TargetDays, st.End)
						}
					}
				}
			}
		}
	}
}

func (c *checker) bottlenecks(ds *schema.Dataset, set *tables.Set) {
	for p, tbl := range set.Tables {
		for _, bn := range tbl.Bottlenecks {
			path := fmt.Sprintf("bottleneckData.%s.%s", p, bn.Step)
			recs, ok := ds.BottleneckData[p][bn.Step]
			if !ok {
				c.add(path, "missing bottleneck block")
				continue
			}
			for _, r := range recs {
				for _, m := range bn.Metrics {
					v, ok := r.Values[m.Name]
					if !ok {
						c.add(path, "%s: missing metric %s", r.Quarter, m.Name)
						continue
					}
					if !withinPolicy(m.Type, v) {
						c.add(path, "%s: %s metric %s = %v violates clamp", r.Quarter, m.Type, m.Name, v)
					}
				}
			}
		}
	}
}

func withinPolicy(t shape.MetricType, v float64) bool {
	switch t {
	case shape.MetricPct:
		return v >= 0 && v <= 100
	case shape.MetricDays, shape.MetricRatio, shape.MetricUtil:
		return v >= 0
	case shape.MetricCount:
		return v >= 0 && v == math.Trunc(v)
	}
	return true
}

func pointQuarters(pts []schema.Point) []string {
	qs := make([]string, len(pts))
	for i, pt := range pts {
		qs[i] = pt.Quarter
	}
	return qs
}

func recordQuarters(recs []schema.Record) []string {
	qs := make([]string, len(recs))
	for i, r := range recs {
		qs[i] = r.Quarter
	}
	return qs
}
