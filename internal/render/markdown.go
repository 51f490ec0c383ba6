package render

import (
	"bytes"
	"fmt"
	"sort"
	"text/template"

	"github.com/dshills/kpisynth/internal/metadata"
	"github.com/dshills/kpisynth/internal/schema"
)

type markdownRenderer struct{}

var mdTemplate = template.Must(template.New("dataset").Parse(`# Regulatory KPI Dataset

**Quarters:** {{ .First }} – {{ .Last }}
{{ range .Processes }}
---

## {{ .Name }} ({{ .ID }})

| KPI | Baseline | Target | {{ $.First }} | {{ $.Last }} |
|---|---|---|---|---|
{{ range .KPIs }}| {{ .Label }} | {{ .Baseline }} | {{ .Target }} | {{ .First }} | {{ .Last }} |
{{ end }}
### Step durations ({{ $.Last }})

| Step | Avg days | Target days | SLA |
|---|---|---|---|
{{ range .Steps }}| {{ .Name }} | {{ .Avg }} | {{ .Target }} | {{ .SLA }} |
{{ end }}{{ if .Volumes }}
### Volumes ({{ $.Last }})

| Field | Count |
|---|---|
{{ range .Volumes }}| {{ .Name }} | {{ .Value }} |
{{ end }}{{ end }}{{ end }}`))

type mdDataset struct {
	First, Last string
	Processes   []mdProcess
}

type mdProcess struct {
	ID      schema.Process
	Name    string
	KPIs    []mdKPI
	Steps   []mdStep
	Volumes []mdField
}

type mdKPI struct {
	Label                         string
	Baseline, Target, First, Last string
}

type mdStep struct {
	Name, Avg, Target, SLA string
}

type mdField struct {
	Name  string
	Value string
}

func (r *markdownRenderer) Render(ds *schema.Dataset) ([]byte, error) {
	if len(ds.Quarters) == 0 {
		return nil, fmt.Errorf("rendering markdown: dataset has no quarters")
	}
	view := mdDataset{First: ds.Quarters[0], Last: ds.Quarters[len(ds.Quarters)-1]}
	for _, p := range schema.Processes {
		meta, ok := ds.ProcessMetadata[p]
		if !ok {
			continue
		}
		view.Processes = append(view.Processes, buildProcess(ds, p, meta))
	}

	var buf bytes.Buffer
	if err := mdTemplate.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}
	return buf.Bytes(), nil
}

func buildProcess(ds *schema.Dataset, p schema.Process, meta schema.ProcessMeta) mdProcess {
	out := mdProcess{ID: p, Name: meta.DisplayName}

	dict := ds.KPIDictionary[p]
	ids := make([]string, 0, len(dict))
	for id := range dict {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		s, ok := ds.QuarterlyData[p][id]
		if !ok || len(s.Data) == 0 {
			continue
		}
		unit := "%"
		if metadata.IsTimeBased(id) {
			unit = "d"
		}
		out.KPIs = append(out.KPIs, mdKPI{
			Label:    dict[id],
			Baseline: formatValue(s.Baseline, unit),
			Target:   formatValue(s.Target, unit),
			First:    formatValue(s.Data[0].Value, unit),
			Last:     formatValue(s.Data[len(s.Data)-1].Value, unit),
		})
	}

	for _, step := range meta.StepOrder {
		s, ok := ds.ProcessStepData[p][step]
		if !ok || len(s.Data) == 0 {
			continue
		}
		last := s.Data[len(s.Data)-1]
		sla := "–"
		if d, ok := meta.StepSLA[step]; ok {
			sla = fmt.Sprintf("%d", d)
		}
		out.Steps = append(out.Steps, mdStep{
			Name:   step,
			Avg:    fmt.Sprintf("%.1f", last.AvgDays),
			Target: fmt.Sprintf("%.1f", last.TargetDays),
			SLA:    sla,
		})
	}

	if recs := ds.QuarterlyVolumes[p]; len(recs) > 0 {
		last := recs[len(recs)-1]
		for _, name := range last.Names() {
			out.Volumes = append(out.Volumes, mdField{Name: name, Value: fmt.Sprintf("%.0f", last.Values[name])})
		}
	}
	return out
}

func formatValue(v float64, unit string) string {
	return fmt.Sprintf("%.1f%s", v, unit)
}
