package render

import (
	"encoding/json"

	"github.com/dshills/kpisynth/internal/schema"
)

// jsonRenderer emits the dashboard wire format: two-space indented, map keys
// sorted by encoding/json, newline-terminated.
type jsonRenderer struct{}

func (jsonRenderer) Render(ds *schema.Dataset) ([]byte, error) {
	out, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}
