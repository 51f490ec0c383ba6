package metadata

import "github.com/dshills/kpisynth/internal/schema"

func clinicalTrials() *Definition {
	return &Definition{
		Process:     schema.ProcessCT,
		DisplayName: "Clinical Trials",
		StepOrder: []string{
			"Application Receipt",
			"Administrative Check",
			"Scientific Review",
			"Ethics Coordination",
			"GCP Review",
			"Decision",
			"Registry Publication",
		},
		StepSLA: map[string]int{
			"Administrative Check": 7,
			"Scientific Review":    45,
			"Ethics Coordination":  30,
			"Decision":             10,
		},
		KPIs: []KPI{
			{"pct_ct_apps_evaluated_on_time", "Clinical trial applications evaluated within timeline (%)"},
			{"pct_amendments_evaluated_on_time", "Substantial amendments evaluated within timeline (%)"},
			{"pct_safety_reports_assessed_on_time", "SUSAR reports assessed within timeline (%)"},
			{"pct_gcp_inspections_on_time", "GCP inspections completed as planned (%)"},
			{"pct_trials_registered_publicly", "Approved trials registered in public registry (%)"},
			{"avg_time_to_ct_approval", "Average time to clinical trial approval (days)"},
			{"median_ethics_review_days", "Median ethics review duration (days)"},
		},
	}
}
