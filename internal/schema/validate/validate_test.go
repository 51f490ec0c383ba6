package validate

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/kpisynth/internal/schema"
	"github.com/dshills/kpisynth/internal/synth"
	"github.com/dshills/kpisynth/internal/tables"
)

func generated(t *testing.T) (*schema.Dataset, *tables.Set) {
	t.Helper()
	set, err := tables.Default()
	require.NoError(t, err)
	ds, err := synth.New(set, nil).Generate(synth.Options{Seed: synth.Seed(42)})
	require.NoError(t, err)
	return ds, set
}

func roundTrip(t *testing.T, ds *schema.Dataset) *schema.Dataset {
	t.Helper()
	raw, err := json.Marshal(ds)
	require.NoError(t, err)
	parsed, err := Parse(raw)
	require.NoError(t, err)
	return parsed
}

func TestCheck_GeneratedDatasetIsClean(t *testing.T) {
	ds, set := generated(t)
	assert.Empty(t, Check(ds, set))
	assert.Empty(t, Check(roundTrip(t, ds), set))
}

func TestCheck_ManySeedsClean(t *testing.T) {
	set, err := tables.Default()
	require.NoError(t, err)
	g := synth.New(set, nil)
	for seed := int64(100); seed < 130; seed++ {
		ds, err := g.Generate(synth.Options{Seed: synth.Seed(seed)})
		require.NoError(t, err)
		assert.Empty(t, Check(ds, set), "seed %d", seed)
	}
}

func TestParse_NotObject(t *testing.T) {
	for _, raw := range []string{`[1,2]`, `"text"`, `null`, `{`} {
		_, err := Parse([]byte(raw))
		assert.Error(t, err, raw)
	}
}

func TestParse_MissingKeys(t *testing.T) {
	_, err := Parse([]byte(`{"quarterlyData":{},"kpiCounts":{}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "processStepData")
	assert.Contains(t, err.Error(), "bottleneckData")
	assert.NotContains(t, err.Error(), "kpiCounts")
}

func TestParse_MinimalObject(t *testing.T) {
	raw := `{"quarterlyData":{},"processStepData":{},"kpiCounts":{},"quarterlyVolumes":{},` +
		`"inspectionVolumes":{},"bottleneckData":{},"processStepCounts":{}}`
	ds, err := Parse([]byte(raw))
	require.NoError(t, err)
	assert.Empty(t, ds.QuarterlyData)
}

func hasViolation(vs []Violation, path, fragment string) bool {
	for _, v := range vs {
		if strings.HasPrefix(v.Path, path) && strings.Contains(v.Message, fragment) {
			return true
		}
	}
	return false
}

func TestCheck_DetectsNumeratorAboveDenominator(t *testing.T) {
	ds, set := generated(t)
	pt := ds.KPICounts[schema.ProcessMA]["pct_new_apps_evaluated_on_time"][2]
	big := *pt.Denominator + 5
	ds.KPICounts[schema.ProcessMA]["pct_new_apps_evaluated_on_time"][2].Numerator = &big

	vs := Check(ds, set)
	assert.True(t, hasViolation(vs, "kpiCounts.MA.pct_new_apps_evaluated_on_time", "outside"))
	assert.True(t, hasViolation(vs, "kpiRates.MA.pct_new_apps_evaluated_on_time", "rate"))
}

func TestCheck_DetectsMissingRates(t *testing.T) {
	ds, set := generated(t)
	delete(ds.KPIRates[schema.ProcessCT], "pct_ct_apps_evaluated_on_time")
	assert.True(t, hasViolation(Check(ds, set), "kpiRates.CT.pct_ct_apps_evaluated_on_time", "missing"))
}

func TestCheck_DetectsFlowViolation(t *testing.T) {
	ds, set := generated(t)
	pts := ds.ProcessStepCounts[schema.ProcessGMP]["CAPA Review"]
	pts[4].CompletedQ = pts[4].StartedQ + 1
	assert.True(t, hasViolation(Check(ds, set), "processStepCounts.GMP.CAPA Review", "completed_q"))
}

func TestCheck_DetectsClampViolation(t *testing.T) {
	ds, set := generated(t)
	ds.BottleneckData[schema.ProcessMA]["Validation"][0].Values["pct_within_sla"] = 104
	ds.BottleneckData[schema.ProcessMA]["Validation"][1].Values["backlog_open"] = 3.5
	vs := Check(ds, set)
	assert.True(t, hasViolation(vs, "bottleneckData.MA.Validation", "pct_within_sla"))
	assert.True(t, hasViolation(vs, "bottleneckData.MA.Validation", "backlog_open"))
}

func TestCheck_DetectsShortSeries(t *testing.T) {
	ds, _ := generated(t)
	s := ds.QuarterlyData[schema.ProcessMA]["pct_decisions_published"]
	s.Data = s.Data[:9]
	ds.QuarterlyData[schema.ProcessMA]["pct_decisions_published"] = s
	assert.True(t, hasViolation(Check(ds, nil), "quarterlyData.MA.pct_decisions_published", "9 quarters"))
}

func TestCheck_DetectsUnflattened(t *testing.T) {
	ds, set := generated(t)
	s := ds.QuarterlyData[schema.ProcessGMP]["pct_risk_based_inspections"]
	s.Disaggregations = map[string]map[string][]schema.Point{"d": {"x": s.Data}}
	ds.QuarterlyData[schema.ProcessGMP]["pct_risk_based_inspections"] = s
	delete(ds.ProcessStepData[schema.ProcessMA], "Scientific Assessment_foreign")

	vs := Check(ds, set)
	assert.True(t, hasViolation(vs, "quarterlyData.GMP.pct_risk_based_inspections", "retains"))
	assert.True(t, hasViolation(vs, "processStepData.MA.Scientific Assessment_foreign", "missing"))
}

func TestCheck_DetectsCategoryTargetDrift(t *testing.T) {
	ds, set := generated(t)
	s := ds.ProcessStepData[schema.ProcessMA]["Scientific Assessment_domestic"]
	require.Len(t, s.Data, schema.QuarterCount)
	s.Data[3].TargetDays = 115
	assert.True(t, hasViolation(Check(ds, set), "processStepData.MA.Scientific Assessment_domestic", "step target"))
}
