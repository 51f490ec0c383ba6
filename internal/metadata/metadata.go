package metadata

import (
	"fmt"
	"strings"

	"github.com/dshills/kpisynth/internal/schema"
)

// KPI pairs a KPI id with its display label.
type KPI struct {
	ID    string
	Label string
}

// Definition is the static description of one process.
type Definition struct {
	Process     schema.Process
	DisplayName string
	StepOrder   []string
	StepSLA     map[string]int
	KPIs        []KPI
}

// Get returns the definition for process p.
func Get(p schema.Process) (*Definition, error) {
	switch p {
	case schema.ProcessMA:
		return marketingAuthorization(), nil
	case schema.ProcessCT:
		return clinicalTrials(), nil
	case schema.ProcessGMP:
		return gmpCompliance(), nil
	default:
		return nil, fmt.Errorf("unknown process %q: valid processes are MA, CT, GMP", p)
	}
}

// All returns every process definition in schema.Processes order.
func All() []*Definition {
	return []*Definition{marketingAuthorization(), clinicalTrials(), gmpCompliance()}
}

// timePrefixes mark KPI ids measured in days rather than percent.
var timePrefixes = []string{"avg_", "median_"}

// IsTimeBased reports whether a KPI id is measured in days rather than percent.
func IsTimeBased(id string) bool {
	for _, p := range timePrefixes {
		if strings.HasPrefix(id, p) {
			return true
		}
	}
	return false
}

// Meta converts d into its wire form.
func (d *Definition) Meta() schema.ProcessMeta {
	order := make([]string, len(d.StepOrder))
	copy(order, d.StepOrder)
	sla := make(map[string]int, len(d.StepSLA))
	for k, v := range d.StepSLA {
		sla[k] = v
	}
	return schema.ProcessMeta{DisplayName: d.DisplayName, StepOrder: order, StepSLA: sla}
}

// Dictionary returns the KPI id -> label map of d.
func (d *Definition) Dictionary() map[string]string {
	out := make(map[string]string, len(d.KPIs))
	for _, k := range d.KPIs {
		out[k.ID] = k.Label
	}
	return out
}

// HasStep reports whether step is part of the canonical step order.
func (d *Definition) HasStep(step string) bool {
	for _, s := range d.StepOrder {
		if s == step {
			return true
		}
	}
	return false
}

// KPIIDs returns the KPI ids of d in definition order.
func (d *Definition) KPIIDs() []string {
	ids := make([]string, len(d.KPIs))
	for i, k := range d.KPIs {
		ids[i] = k.ID
	}
	return ids
}

// HasKPI reports whether id is a KPI of d.
func (d *Definition) HasKPI(id string) bool {
	for _, k := range d.KPIs {
		if k.ID == id {
			return true
		}
	}
	return false
}
