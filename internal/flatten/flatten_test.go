package flatten

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/kpisynth/internal/schema"
)

func pts(v float64) []schema.Point {
	out := make([]schema.Point, schema.QuarterCount)
	for i, q := range schema.Quarters {
		out[i] = schema.Point{Quarter: q, Value: v}
	}
	return out
}

func stepPts(v float64) []schema.StepPoint {
	out := make([]schema.StepPoint, schema.QuarterCount)
	for i, q := range schema.Quarters {
		out[i] = schema.StepPoint{Quarter: q, AvgDays: v, TargetDays: 1}
	}
	return out
}

func TestSanitize(t *testing.T) {
	cases := map[string]string{
		"Domestic":                  "domestic",
		"Reliance / Abridged":       "reliance_abridged",
		"Vaccines & Biologics":      "vaccines_biologics",
		"Academic / Non-commercial": "academic_non_commercial",
		"Type IA":                   "type_ia",
		"  Phase   III ":            "phase_iii",
		"For-cause":                 "for_cause",
	}
	for in, want := range cases {
		assert.Equal(t, want, Sanitize(in), "Sanitize(%q)", in)
	}
}

func TestKPIs_FlattensAndRemovesNested(t *testing.T) {
	series := map[string]schema.KPISeries{
		"pct_x": {
			Baseline: 60, Target: 90, Data: pts(70),
			Disaggregations: map[string]map[string][]schema.Point{
				"applicant_type": {"Domestic": pts(72), "Reliance / Abridged": pts(80)},
				"area":           {"Oncology": pts(65)},
			},
		},
		"pct_y": {Baseline: 1, Target: 2, Data: pts(1)},
	}
	require.NoError(t, KPIs(series))

	assert.Len(t, series, 5)
	assert.Nil(t, series["pct_x"].Disaggregations)
	flat, ok := series["pct_x_reliance_abridged"]
	require.True(t, ok)
	assert.Equal(t, 60.0, flat.Baseline)
	assert.Equal(t, 90.0, flat.Target)
	assert.Equal(t, 80.0, flat.Data[0].Value)
	assert.Contains(t, series, "pct_x_domestic")
	assert.Contains(t, series, "pct_x_oncology")
}

func TestKPIs_Idempotent(t *testing.T) {
	series := map[string]schema.KPISeries{
		"pct_x": {Data: pts(1), Disaggregations: map[string]map[string][]schema.Point{"d": {"A": pts(2)}}},
	}
	require.NoError(t, KPIs(series))
	first := len(series)
	require.NoError(t, KPIs(series))
	assert.Equal(t, first, len(series))
}

func TestKPIs_CollidingLabels(t *testing.T) {
	series := map[string]schema.KPISeries{
		"pct_x": {Data: pts(1), Disaggregations: map[string]map[string][]schema.Point{
			"d": {"A-B": pts(2), "A B": pts(3)},
		}},
	}
	err := KPIs(series)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pct_x_a_b")
	assert.NotNil(t, series["pct_x"].Disaggregations, "failed flatten must not modify the input")
}

func TestKPIs_CollisionAcrossDimensions(t *testing.T) {
	series := map[string]schema.KPISeries{
		"pct_x": {Data: pts(1), Disaggregations: map[string]map[string][]schema.Point{
			"location": {"Foreign": pts(2)},
			"origin":   {"Foreign": pts(3)},
		}},
	}
	assert.Error(t, KPIs(series))
}

func TestKPIs_CollisionWithExistingID(t *testing.T) {
	series := map[string]schema.KPISeries{
		"pct_x":   {Data: pts(1), Disaggregations: map[string]map[string][]schema.Point{"d": {"Y": pts(2)}}},
		"pct_x_y": {Data: pts(9)},
	}
	assert.Error(t, KPIs(series))
}

func TestKPIs_EmptySanitizedLabel(t *testing.T) {
	series := map[string]schema.KPISeries{
		"pct_x": {Data: pts(1), Disaggregations: map[string]map[string][]schema.Point{"d": {"--": pts(2)}}},
	}
	assert.Error(t, KPIs(series))
	assert.NotNil(t, series["pct_x"].Disaggregations)
}

func TestSteps_Flattens(t *testing.T) {
	series := map[string]schema.StepSeries{
		"Scientific Assessment": {Data: stepPts(150), Disaggregations: map[string]map[string][]schema.StepPoint{
			"applicant_type": {"Foreign": stepPts(170)},
		}},
	}
	require.NoError(t, Steps(series))
	flat, ok := series["Scientific Assessment_foreign"]
	require.True(t, ok)
	assert.Equal(t, 170.0, flat.Data[0].AvgDays)
	assert.Nil(t, flat.Disaggregations)
	assert.Nil(t, series["Scientific Assessment"].Disaggregations)
}

func TestDataset_ErrorNamesProcess(t *testing.T) {
	ds := &schema.Dataset{
		QuarterlyData: map[schema.Process]map[string]schema.KPISeries{
			schema.ProcessCT: {"pct_x": {Data: pts(1), Disaggregations: map[string]map[string][]schema.Point{
				"d": {"a.b": pts(1), "a b": pts(2)},
			}}},
		},
	}
	err := Dataset(ds)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quarterlyData.CT")
}
