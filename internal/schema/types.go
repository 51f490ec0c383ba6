package schema

// Process identifies one of the regulatory workflows.
type Process string

const (
	ProcessMA  Process = "MA"
	ProcessCT  Process = "CT"
	ProcessGMP Process = "GMP"
)

// Processes lists every process in output order.
var Processes = []Process{ProcessMA, ProcessCT, ProcessGMP}

// IsValidProcess reports whether p is one of the modeled processes.
func IsValidProcess(p Process) bool {
	switch p {
	case ProcessMA, ProcessCT, ProcessGMP:
		return true
	}
	return false
}

// Dataset is the generator output. JSON field names are the wire contract
// consumed by the dashboard.
type Dataset struct {
	Quarters          []string                            `json:"quarters"`
	ProcessMetadata   map[Process]ProcessMeta             `json:"processMetadata"`
	KPIDictionary     map[Process]map[string]string       `json:"kpiDictionary"`
	QuarterlyData     map[Process]map[string]KPISeries    `json:"quarterlyData"`
	ProcessStepData   map[Process]map[string]StepSeries   `json:"processStepData"`
	KPICounts         map[Process]map[string][]CountPoint `json:"kpiCounts"`
	KPIRates          map[Process]map[string][]RatePoint  `json:"kpiRates"`
	QuarterlyVolumes  map[Process][]Record                `json:"quarterlyVolumes"`
	InspectionVolumes map[Process][]Record                `json:"inspectionVolumes"`
	BottleneckData    map[Process]map[string][]Record     `json:"bottleneckData"`
	ProcessStepCounts map[Process]map[string][]FlowPoint  `json:"processStepCounts"`
}

// CategoryKeys are the seven dataset categories every serialized dataset must carry.
var CategoryKeys = []string{
	"quarterlyData",
	"processStepData",
	"kpiCounts",
	"quarterlyVolumes",
	"inspectionVolumes",
	"bottleneckData",
	"processStepCounts",
}

// ProcessMeta is static display metadata for a process.
type ProcessMeta struct {
	DisplayName string         `json:"displayName"`
	StepOrder   []string       `json:"stepOrder"`
	StepSLA     map[string]int `json:"stepSLA"`
}

// Point is one quarter of a KPI series.
type Point struct {
	Quarter string  `json:"quarter"`
	Value   float64 `json:"value"`
}

// KPISeries is a KPI with its baseline, target and quarterly values.
// Disaggregations maps dimension -> category label -> series; it is only
// populated until the dataset is flattened.
type KPISeries struct {
	Baseline        float64                       `json:"baseline"`
	Target          float64                       `json:"target"`
	Data            []Point                       `json:"data"`
	Disaggregations map[string]map[string][]Point `json:"disaggregations,omitempty"`
}

// StepPoint is one quarter of a process-step duration series.
type StepPoint struct {
	Quarter    string  `json:"quarter"`
	AvgDays    float64 `json:"avgDays"`
	TargetDays float64 `json:"targetDays"`
}

// StepSeries is the duration series of one process step.
type StepSeries struct {
	Data            []StepPoint                       `json:"data"`
	Disaggregations map[string]map[string][]StepPoint `json:"disaggregations,omitempty"`
}

// CountPoint is one quarter of a KPI count series. Rate KPIs carry
// Numerator and Denominator; scalar KPIs (medians, averages) carry SampleN.
type CountPoint struct {
	Quarter     string `json:"quarter"`
	Numerator   *int   `json:"numerator,omitempty"`
	Denominator *int   `json:"denominator,omitempty"`
	SampleN     *int   `json:"sample_n,omitempty"`
}

// IsPair reports whether the point is a numerator/denominator pair.
func (c CountPoint) IsPair() bool {
	return c.Numerator != nil && c.Denominator != nil
}

// RatePoint is a count pair with its derived percentage.
type RatePoint struct {
	Quarter     string  `json:"quarter"`
	Numerator   int     `json:"numerator"`
	Denominator int     `json:"denominator"`
	Value       float64 `json:"value"`
}

// FlowPoint is one quarter of step-flow counts. CompletedQ never exceeds StartedQ.
type FlowPoint struct {
	Quarter    string `json:"quarter"`
	StartedQ   int    `json:"started_q"`
	CompletedQ int    `json:"completed_q"`
	OpenEndQ   int    `json:"open_end_q"`
}
