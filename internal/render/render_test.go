package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/kpisynth/internal/schema"
	"github.com/dshills/kpisynth/internal/synth"
)

func sampleDataset(t *testing.T) *schema.Dataset {
	t.Helper()
	ds, err := synth.Generate(synth.Options{Seed: synth.Seed(42)})
	require.NoError(t, err)
	return ds
}

func TestNewRenderer_JSON(t *testing.T) {
	r, err := NewRenderer("json")
	require.NoError(t, err)
	out, err := r.Render(sampleDataset(t))
	require.NoError(t, err)
	require.True(t, json.Valid(out), "json renderer produced invalid JSON")

	var top map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &top))
	for _, key := range schema.CategoryKeys {
		assert.Contains(t, top, key)
	}
	for _, key := range []string{"quarters", "processMetadata", "kpiDictionary", "kpiRates"} {
		assert.Contains(t, top, key)
	}
}

func TestNewRenderer_JSONRoundTrip(t *testing.T) {
	ds := sampleDataset(t)
	r, err := NewRenderer("json")
	require.NoError(t, err)
	out, err := r.Render(ds)
	require.NoError(t, err)

	var decoded schema.Dataset
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, ds.Quarters, decoded.Quarters)
	assert.Equal(t, ds.BottleneckData[schema.ProcessMA]["Validation"][0].Values,
		decoded.BottleneckData[schema.ProcessMA]["Validation"][0].Values)
}

func TestNewRenderer_Markdown(t *testing.T) {
	r, err := NewRenderer("md")
	require.NoError(t, err)
	out, err := r.Render(sampleDataset(t))
	require.NoError(t, err)
	s := string(out)
	assert.True(t, strings.HasPrefix(s, "# Regulatory KPI Dataset"))
	assert.Contains(t, s, "## Marketing Authorization (MA)")
	assert.Contains(t, s, "## Clinical Trials (CT)")
	assert.Contains(t, s, "## GMP Compliance (GMP)")
	assert.Contains(t, s, "New applications evaluated within timeline (%)")
	assert.Contains(t, s, "| Scientific Assessment |")
	assert.Contains(t, s, "Q2 2025")
}

func TestNewRenderer_MarkdownEmptyDataset(t *testing.T) {
	r, err := NewRenderer("md")
	require.NoError(t, err)
	_, err = r.Render(&schema.Dataset{})
	assert.Error(t, err)
}

func TestNewRenderer_UnknownFormat(t *testing.T) {
	_, err := NewRenderer("xml")
	require.Error(t, err)
	for _, f := range Formats {
		assert.Contains(t, err.Error(), f)
	}
}

func TestNewRenderer_EveryFormatDeterministic(t *testing.T) {
	ds := sampleDataset(t)
	for _, f := range Formats {
		r, err := NewRenderer(f)
		require.NoError(t, err, f)
		a, err := r.Render(ds)
		require.NoError(t, err, f)
		b, err := r.Render(ds)
		require.NoError(t, err, f)
		assert.Equal(t, a, b, f)
		assert.True(t, strings.HasSuffix(string(a), "\n"), "%s output should end with a newline", f)
	}
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "68.0%", formatValue(68, "%"))
	assert.Equal(t, "318.4d", formatValue(318.4, "d"))
}
