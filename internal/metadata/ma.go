package metadata

import "github.com/dshills/kpisynth/internal/schema"

func marketingAuthorization() *Definition {
	return &Definition{
		Process:     schema.ProcessMA,
		DisplayName: "Marketing Authorization",
		StepOrder: []string{
			"Submission Receipt",
			"Validation",
			"Screening",
			"Scientific Assessment",
			"Clock Stop",
			"Quality Review",
			"Expert Committee",
			"Decision",
			"Certificate Issuance",
		},
		StepSLA: map[string]int{
			"Validation":            10,
			"Screening":             15,
			"Scientific Assessment": 120,
			"Quality Review":        30,
			"Expert Committee":      30,
			"Decision":              15,
		},
		KPIs: []KPI{
			{"pct_new_apps_evaluated_on_time", "New applications evaluated within timeline (%)"},
			{"pct_renewal_apps_evaluated_on_time", "Renewal applications evaluated within timeline (%)"},
			{"pct_variation_apps_evaluated_on_time", "Variation applications evaluated within timeline (%)"},
			{"pct_apps_approved_first_cycle", "Applications approved in first review cycle (%)"},
			{"pct_reliance_pathway_applications", "Applications processed through reliance pathways (%)"},
			{"pct_decisions_published", "Decisions published with public assessment report (%)"},
			{"avg_time_to_decision", "Average time to decision (days)"},
			{"median_clock_stop_days", "Median applicant clock-stop duration (days)"},
		},
	}
}
