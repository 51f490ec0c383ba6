package metadata

import "github.com/dshills/kpisynth/internal/schema"

func gmpCompliance() *Definition {
	return &Definition{
		Process:     schema.ProcessGMP,
		DisplayName: "GMP Compliance",
		StepOrder: []string{
			"Inspection Request",
			"Planning",
			"Desk Review",
			"On-site Inspection",
			"Report Drafting",
			"CAPA Review",
			"Close-out",
			"Certificate Issuance",
		},
		StepSLA: map[string]int{
			"Planning":           30,
			"On-site Inspection": 5,
			"Report Drafting":    30,
			"CAPA Review":        60,
			"Close-out":          15,
		},
		KPIs: []KPI{
			{"pct_inspections_completed_on_time", "Planned inspections completed on time (%)"},
			{"pct_risk_based_inspections", "Inspections scheduled by risk ranking (%)"},
			{"pct_reports_issued_on_time", "Inspection reports issued within timeline (%)"},
			{"pct_capa_closed_on_time", "CAPA plans closed within timeline (%)"},
			{"pct_reliance_inspections", "Inspections replaced by reliance decisions (%)"},
			{"avg_time_to_inspection_report", "Average time from inspection to report (days)"},
			{"median_capa_closure_days", "Median CAPA closure duration (days)"},
		},
	}
}
