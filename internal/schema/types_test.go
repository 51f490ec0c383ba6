package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuarterIndex(t *testing.T) {
	i, ok := QuarterIndex("Q1 2023")
	assert.True(t, ok)
	assert.Equal(t, 0, i)

	i, ok = QuarterIndex("Q2 2025")
	assert.True(t, ok)
	assert.Equal(t, QuarterCount-1, i)

	_, ok = QuarterIndex("Q5 2024")
	assert.False(t, ok)
}

func TestQuarters_Length(t *testing.T) {
	assert.Len(t, Quarters, QuarterCount)
}

func TestAxis_IsCopy(t *testing.T) {
	a := Axis()
	a[0] = "changed"
	assert.Equal(t, "Q1 2023", Quarters[0])
}

func TestRecord_MarshalFlat(t *testing.T) {
	r := NewRecord("Q3 2024")
	r.Values["received"] = 120
	r.Values["completed"] = 97.5

	out, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"quarter":"Q3 2024","completed":97.5,"received":120}`, string(out))
	assert.Equal(t, `{"quarter":"Q3 2024","completed":97.5,"received":120}`, string(out), "fields must be sorted")
}

func TestRecord_RoundTrip(t *testing.T) {
	var r Record
	require.NoError(t, json.Unmarshal([]byte(`{"quarter":"Q1 2023","a":1,"b":2.5}`), &r))
	assert.Equal(t, "Q1 2023", r.Quarter)
	assert.Equal(t, map[string]float64{"a": 1, "b": 2.5}, r.Values)
}

func TestRecord_UnmarshalMissingQuarter(t *testing.T) {
	var r Record
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &r))
}

func TestRecord_ReservedName(t *testing.T) {
	r := NewRecord("Q1 2023")
	r.Values["quarter"] = 1
	_, err := json.Marshal(r)
	assert.Error(t, err)
}

func TestCountPoint_OmitsAbsentFields(t *testing.T) {
	n := 12
	out, err := json.Marshal(CountPoint{Quarter: "Q1 2023", SampleN: &n})
	require.NoError(t, err)
	assert.JSONEq(t, `{"quarter":"Q1 2023","sample_n":12}`, string(out))
	assert.False(t, CountPoint{SampleN: &n}.IsPair())
}

func TestIsValidProcess(t *testing.T) {
	for _, p := range Processes {
		assert.True(t, IsValidProcess(p))
	}
	assert.False(t, IsValidProcess("PV"))
}
