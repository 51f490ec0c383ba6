package compare

import (
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Result summarizes a line diff between two rendered datasets.
type Result struct {
	Added     int
	Removed   int
	Unchanged int
	diffs     []diffmatchpatch.Diff
	before    string
}

// Identical reports whether the two inputs had no differing lines.
func (r *Result) Identical() bool {
	return r.Added == 0 && r.Removed == 0
}

// Lines diffs before and after line by line. Both inputs are normalized
// (CRLF to LF, trailing whitespace trimmed) before diffing.
func Lines(before, after string) *Result {
	before, after = normalize(before), normalize(after)

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	res := &Result{diffs: diffs, before: before}
	for _, d := range diffs {
		n := countLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			res.Added += n
		case diffmatchpatch.DiffDelete:
			res.Removed += n
		case diffmatchpatch.DiffEqual:
			res.Unchanged += n
		}
	}
	return res
}

// Write prints changed lines prefixed with "-" or "+". Runs of unchanged
// lines are collapsed into a single "@@ n unchanged @@" marker.
func (r *Result) Write(w io.Writer) error {
	for _, d := range r.diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			if _, err := fmt.Fprintf(w, "@@ %d unchanged @@\n", countLines(d.Text)); err != nil {
				return err
			}
			continue
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		}
		for _, line := range splitLines(d.Text) {
			if _, err := fmt.Fprintf(w, "%s%s\n", prefix, line); err != nil {
				return err
			}
		}
	}
	return nil
}

// Patch returns the diff in diff-match-patch patch format, suitable for
// applying to the first input with PatchApply.
func (r *Result) Patch() string {
	if r.Identical() {
		return ""
	}
	dmp := diffmatchpatch.New()
	return dmp.PatchToText(dmp.PatchMake(r.before, r.diffs))
}

// normalize trims trailing whitespace from each line and converts CRLF to LF.
func normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}

func splitLines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	return len(splitLines(s))
}
