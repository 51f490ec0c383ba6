package tables

import (
	"fmt"

	"github.com/dshills/kpisynth/internal/schema"
)

// FieldKind selects how a volume or inspection field is derived.
type FieldKind int

const (
	// FieldCount is a noisy non-negative count trending base+slope*i.
	FieldCount FieldKind = iota
	// FieldRamp is zero before its opening quarter and a count afterwards.
	FieldRamp
	// FieldShare is a noisy fraction of an earlier field, never above it.
	FieldShare
	// FieldSum adds earlier fields without drawing.
	FieldSum
)

var fieldKindNames = map[FieldKind]string{
	FieldCount: "count",
	FieldRamp:  "ramp",
	FieldShare: "share",
	FieldSum:   "sum",
}

func (k FieldKind) String() string {
	if s, ok := fieldKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("FieldKind(%d)", int(k))
}

// UnmarshalText reads the tag form used in the YAML tables.
func (k *FieldKind) UnmarshalText(text []byte) error {
	for kind, name := range fieldKindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown field kind %q: valid kinds are count, ramp, share, sum", text)
}

func (k FieldKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Field is one named value of a quarterly volume or inspection record.
// Fields are evaluated in list order; Of names earlier fields.
type Field struct {
	Name        string    `yaml:"name"`
	Kind        FieldKind `yaml:"kind"`
	Base        float64   `yaml:"base,omitempty"`
	Slope       float64   `yaml:"slope,omitempty"`
	Variability float64   `yaml:"var,omitempty"`
	From        string    `yaml:"from,omitempty"`
	Of          []string  `yaml:"of,omitempty"`
	Ratio       float64   `yaml:"ratio,omitempty"`
	RatioGrowth float64   `yaml:"ratio_growth,omitempty"`
}

// RatioAt returns the share ratio at quarter index i.
func (f Field) RatioAt(i int) float64 {
	return f.Ratio + f.RatioGrowth*float64(i)
}

func checkFields(prefix string, fields []Field) error {
	defined := map[string]bool{}
	for i, f := range fields {
		p := fmt.Sprintf("%s[%d] %s", prefix, i, f.Name)
		switch {
		case f.Name == "":
			return fmt.Errorf("%s: field name is required", p)
		case f.Name == "quarter":
			return fmt.Errorf("%s: field name %q is reserved", p, f.Name)
		case defined[f.Name]:
			return fmt.Errorf("%s: duplicate field", p)
		}

		switch f.Kind {
		case FieldCount:
			if len(f.Of) > 0 || f.From != "" {
				return fmt.Errorf("%s: count takes no of or from", p)
			}
		case FieldRamp:
			if f.From == "" {
				return fmt.Errorf("%s: ramp requires from", p)
			}
			if _, ok := schema.QuarterIndex(f.From); !ok {
				return fmt.Errorf("%s: from %q is not a quarter on the axis", p, f.From)
			}
		case FieldShare:
			if len(f.Of) != 1 {
				return fmt.Errorf("%s: share requires exactly one of field, got %d", p, len(f.Of))
			}
			if f.Ratio < 0 || f.RatioAt(schema.QuarterCount-1) < 0 {
				return fmt.Errorf("%s: share ratio must be >= 0", p)
			}
		case FieldSum:
			if len(f.Of) == 0 {
				return fmt.Errorf("%s: sum requires at least one of field", p)
			}
		}
		for _, ref := range f.Of {
			if !defined[ref] {
				return fmt.Errorf("%s: %q is not an earlier field", p, ref)
			}
		}
		defined[f.Name] = true
	}
	return nil
}
