// Package flatten replaces nested disaggregations with sibling series keyed
// "<id>_<sanitized label>".
package flatten

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/dshills/kpisynth/internal/schema"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Sanitize lowercases label, replaces each run of non-alphanumeric characters
// with a single underscore, and trims underscores from both ends.
func Sanitize(label string) string {
	return strings.Trim(nonAlnum.ReplaceAllString(strings.ToLower(label), "_"), "_")
}

// Key returns the flat key for one category of a disaggregated series.
func Key(id, label string) string {
	return id + "_" + Sanitize(label)
}

// Dataset flattens every KPI series and step-duration series of ds in place.
// It returns an error, leaving the offending process untouched, if two
// categories map to the same key or a key is already taken. Running it on an
// already flat dataset is a no-op.
func Dataset(ds *schema.Dataset) error {
	for _, p := range schema.Processes {
		if series, ok := ds.QuarterlyData[p]; ok {
			if err := KPIs(series); err != nil {
				return fmt.Errorf("quarterlyData.%s: %w", p, err)
			}
		}
		if series, ok := ds.ProcessStepData[p]; ok {
			if err := Steps(series); err != nil {
				return fmt.Errorf("processStepData.%s: %w", p, err)
			}
		}
	}
	return nil
}

// KPIs flattens one process's KPI series.
func KPIs(series map[string]schema.KPISeries) error {
	added := map[string]schema.KPISeries{}
	for _, id := range sortedKeys(series) {
		parent := series[id]
		for _, dim := range sortedKeys(parent.Disaggregations) {
			cats := parent.Disaggregations[dim]
			for _, label := range sortedKeys(cats) {
				key := Key(id, label)
				if err := claim(key, id, dim, label, series, added); err != nil {
					return err
				}
				added[key] = schema.KPISeries{Baseline: parent.Baseline, Target: parent.Target, Data: cats[label]}
			}
		}
	}
	for id, s := range series {
		if s.Disaggregations != nil {
			s.Disaggregations = nil
			series[id] = s
		}
	}
	for k, s := range added {
		series[k] = s
	}
	return nil
}

// Steps flattens one process's step-duration series.
func Steps(series map[string]schema.StepSeries) error {
	added := map[string]schema.StepSeries{}
	for _, id := range sortedKeys(series) {
		parent := series[id]
		for _, dim := range sortedKeys(parent.Disaggregations) {
			cats := parent.Disaggregations[dim]
			for _, label := range sortedKeys(cats) {
				key := Key(id, label)
				if err := claim(key, id, dim, label, series, added); err != nil {
					return err
				}
				added[key] = schema.StepSeries{Data: cats[label]}
			}
		}
	}
	for id, s := range series {
		if s.Disaggregations != nil {
			s.Disaggregations = nil
			series[id] = s
		}
	}
	for k, s := range added {
		series[k] = s
	}
	return nil
}

func claim[T any](key, id, dim, label string, existing, added map[string]T) error {
	if Sanitize(label) == "" {
		return fmt.Errorf("%s/%s label %q has no alphanumeric characters", id, dim, label)
	}
	if _, ok := existing[key]; ok {
		return fmt.Errorf("%s/%s label %q: key %q already exists", id, dim, label, key)
	}
	if _, ok := added[key]; ok {
		return fmt.Errorf("%s/%s label %q: key %q collides with another category", id, dim, label, key)
	}
	return nil
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
