// Package render serializes a generated Dataset for the dashboard (json) or
// for a human reader (md).
package render

import (
	"fmt"
	"strings"

	"github.com/dshills/kpisynth/internal/schema"
)

// Renderer turns a complete, flattened Dataset into one output document.
// Implementations must be deterministic: the same Dataset renders to the
// same bytes, which is what seed diffs rely on.
type Renderer interface {
	Render(ds *schema.Dataset) ([]byte, error)
}

// Formats lists the accepted format names in help order.
var Formats = []string{"json", "md"}

var renderers = map[string]func() Renderer{
	"json": func() Renderer { return jsonRenderer{} },
	"md":   func() Renderer { return &markdownRenderer{} },
}

// NewRenderer returns the Renderer registered for format.
func NewRenderer(format string) (Renderer, error) {
	mk, ok := renderers[format]
	if !ok {
		return nil, fmt.Errorf("unknown format %q: supported formats are %s", format, strings.Join(Formats, ", "))
	}
	return mk(), nil
}
