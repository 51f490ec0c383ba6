package tables

import (
	"bytes"
	"crypto/sha256"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dshills/kpisynth/internal/schema"
)

//go:embed data/*.yaml
var embedded embed.FS

// Set holds one validated Table per process.
type Set struct {
	Tables      map[schema.Process]*Table
	Fingerprint string // "sha256:<hex>" over the files in process order
}

// Get returns the table for p.
func (s *Set) Get(p schema.Process) (*Table, error) {
	t, ok := s.Tables[p]
	if !ok {
		return nil, fmt.Errorf("no table for process %s", p)
	}
	return t, nil
}

// Default loads the embedded tables.
func Default() (*Set, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, err
	}
	return Load(sub)
}

// LoadDir loads tables from a directory containing ma.yaml, ct.yaml and gmp.yaml.
func LoadDir(dir string) (*Set, error) {
	return Load(os.DirFS(dir))
}

// Load reads, decodes and validates one table per process from fsys.
func Load(fsys fs.FS) (*Set, error) {
	set := &Set{Tables: make(map[schema.Process]*Table, len(schema.Processes))}
	sum := sha256.New()
	for _, p := range schema.Processes {
		name := strings.ToLower(string(p)) + ".yaml"
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("reading table %s: %w", name, err)
		}
		sum.Write(data)

		t, err := Decode(data)
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", name, err)
		}
		if t.Process != p {
			return nil, fmt.Errorf("table %s: declares process %q, want %q", name, t.Process, p)
		}
		if err := Validate(t); err != nil {
			return nil, fmt.Errorf("table %s: %w", name, err)
		}
		set.Tables[p] = t
	}
	set.Fingerprint = fmt.Sprintf("sha256:%x", sum.Sum(nil))
	return set, nil
}

// Decode parses a single table. Unknown fields are rejected.
func Decode(data []byte) (*Table, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var t Table
	if err := dec.Decode(&t); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty table")
		}
		return nil, fmt.Errorf("decoding YAML: %w", err)
	}
	return &t, nil
}
