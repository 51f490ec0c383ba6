package tables

import (
	"fmt"
	"strings"

	"github.com/dshills/kpisynth/internal/metadata"
	"github.com/dshills/kpisynth/internal/schema"
	"github.com/dshills/kpisynth/internal/shape"
)

// Validate checks a decoded table against the process metadata and the
// quarter axis. Override keys that are not quarters on the axis are errors.
func Validate(t *Table) error {
	def, err := metadata.Get(t.Process)
	if err != nil {
		return err
	}

	seen := map[string]bool{}
	for i, k := range t.KPIs {
		prefix := fmt.Sprintf("kpis[%d] %s", i, k.ID)
		if !def.HasKPI(k.ID) {
			return fmt.Errorf("%s: unknown KPI id", prefix)
		}
		if seen[k.ID] {
			return fmt.Errorf("%s: duplicate KPI id", prefix)
		}
		seen[k.ID] = true
		if err := checkOverrides(prefix, k.Overrides); err != nil {
			return err
		}
		if err := checkDimensions(prefix, k.Disaggregations); err != nil {
			return err
		}
	}
	if err := checkCoverage("kpis", seen, def.KPIIDs()); err != nil {
		return err
	}

	seen = map[string]bool{}
	for i, s := range t.Steps {
		prefix := fmt.Sprintf("steps[%d] %s", i, s.Step)
		if err := checkStep(prefix, def, s.Step, seen); err != nil {
			return err
		}
		if err := checkOverrides(prefix, s.Overrides); err != nil {
			return err
		}
		if err := checkDimensions(prefix, s.Disaggregations); err != nil {
			return err
		}
	}
	if err := checkCoverage("steps", seen, def.StepOrder); err != nil {
		return err
	}

	seen = map[string]bool{}
	for i, c := range t.Counts {
		prefix := fmt.Sprintf("counts[%d] %s", i, c.KPI)
		if !def.HasKPI(c.KPI) {
			return fmt.Errorf("%s: unknown KPI id", prefix)
		}
		if seen[c.KPI] {
			return fmt.Errorf("%s: duplicate KPI id", prefix)
		}
		seen[c.KPI] = true
		switch {
		case c.Pair != nil && c.Sample != nil:
			return fmt.Errorf("%s: pair and sample are mutually exclusive", prefix)
		case c.Pair != nil:
			for q := range c.Pair.Overrides {
				if err := checkQuarter(prefix, q); err != nil {
					return err
				}
			}
		case c.Sample != nil:
			if err := checkOverrides(prefix, c.Sample.Overrides); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%s: one of pair or sample is required", prefix)
		}
	}
	if err := checkCoverage("counts", seen, def.KPIIDs()); err != nil {
		return err
	}

	seen = map[string]bool{}
	for i, b := range t.Bottlenecks {
		prefix := fmt.Sprintf("bottlenecks[%d] %s", i, b.Step)
		if err := checkStep(prefix, def, b.Step, seen); err != nil {
			return err
		}
		if err := checkMetrics(prefix, b.Metrics); err != nil {
			return err
		}
	}

	seen = map[string]bool{}
	for i, f := range t.Flows {
		prefix := fmt.Sprintf("step_counts[%d] %s", i, f.Step)
		if err := checkStep(prefix, def, f.Step, seen); err != nil {
			return err
		}
		if f.CompletedRatio < 0 {
			return fmt.Errorf("%s: completed_ratio must be >= 0, got %g", prefix, f.CompletedRatio)
		}
		for q := range f.Overrides {
			if err := checkQuarter(prefix, q); err != nil {
				return err
			}
		}
	}
	if err := checkCoverage("step_counts", seen, def.StepOrder); err != nil {
		return err
	}

	if len(t.Volumes) == 0 {
		return fmt.Errorf("volumes: no fields")
	}
	if err := checkFields("volumes", t.Volumes); err != nil {
		return err
	}
	return checkFields("inspections", t.Inspections)
}

// checkCoverage requires every name in want to have been seen.
func checkCoverage(section string, seen map[string]bool, want []string) error {
	var missing []string
	for _, name := range want {
		if !seen[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s: missing entries for %s", section, strings.Join(missing, ", "))
	}
	return nil
}

func checkStep(prefix string, def *metadata.Definition, step string, seen map[string]bool) error {
	if !def.HasStep(step) {
		return fmt.Errorf("%s: step not in %s step order", prefix, def.Process)
	}
	if seen[step] {
		return fmt.Errorf("%s: duplicate step", prefix)
	}
	seen[step] = true
	return nil
}

func checkQuarter(prefix, q string) error {
	if _, ok := schema.QuarterIndex(q); !ok {
		return fmt.Errorf("%s: override key %q is not a quarter on the axis", prefix, q)
	}
	return nil
}

func checkOverrides(prefix string, ov shape.Overrides) error {
	for q := range ov {
		if err := checkQuarter(prefix, q); err != nil {
			return err
		}
	}
	return nil
}

func checkDimensions(prefix string, dims []Dimension) error {
	for _, d := range dims {
		p := fmt.Sprintf("%s/%s", prefix, d.Name)
		if d.Name == "" {
			return fmt.Errorf("%s: dimension name is required", prefix)
		}
		if len(d.Categories) == 0 {
			return fmt.Errorf("%s: dimension has no categories", p)
		}
		labels := map[string]bool{}
		for _, c := range d.Categories {
			if c.Label == "" {
				return fmt.Errorf("%s: category label is required", p)
			}
			if labels[c.Label] {
				return fmt.Errorf("%s: duplicate category %q", p, c.Label)
			}
			labels[c.Label] = true
			if err := checkOverrides(p+"/"+c.Label, c.Overrides); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkMetrics(prefix string, metrics []shape.Metric) error {
	if len(metrics) == 0 {
		return fmt.Errorf("%s: no metrics", prefix)
	}
	names := map[string]bool{}
	for _, m := range metrics {
		switch {
		case m.Name == "":
			return fmt.Errorf("%s: metric name is required", prefix)
		case m.Name == "quarter":
			return fmt.Errorf("%s: metric name %q is reserved", prefix, m.Name)
		case names[m.Name]:
			return fmt.Errorf("%s: duplicate metric %q", prefix, m.Name)
		}
		names[m.Name] = true
		if err := checkOverrides(prefix+"/"+m.Name, m.Overrides); err != nil {
			return err
		}
	}
	return nil
}
