package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Record is a per-quarter bag of named numeric fields. It serializes as a
// flat object: {"quarter": ..., "<name>": <value>, ...}.
type Record struct {
	Quarter string
	Values  map[string]float64
}

// NewRecord returns an empty record for quarter q.
func NewRecord(q string) Record {
	return Record{Quarter: q, Values: map[string]float64{}}
}

// Names returns the field names in sorted order.
func (r Record) Names() []string {
	names := make([]string, 0, len(r.Values))
	for k := range r.Values {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"quarter":`)
	q, err := json.Marshal(r.Quarter)
	if err != nil {
		return nil, err
	}
	buf.Write(q)
	for _, name := range r.Names() {
		if name == "quarter" {
			return nil, fmt.Errorf("record field name %q is reserved", name)
		}
		k, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(r.Values[name])
		if err != nil {
			return nil, fmt.Errorf("record field %s: %w", name, err)
		}
		buf.WriteByte(',')
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	qRaw, ok := raw["quarter"]
	if !ok {
		return fmt.Errorf("record missing quarter")
	}
	if err := json.Unmarshal(qRaw, &r.Quarter); err != nil {
		return fmt.Errorf("record quarter: %w", err)
	}
	r.Values = make(map[string]float64, len(raw)-1)
	for k, v := range raw {
		if k == "quarter" {
			continue
		}
		var f float64
		if err := json.Unmarshal(v, &f); err != nil {
			return fmt.Errorf("record field %s: %w", k, err)
		}
		r.Values[k] = f
	}
	return nil
}
