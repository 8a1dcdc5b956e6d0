package model

// ReportType categorizes a report by the entity it describes.
// Values mirror the upper-case enum tokens used on the wire.
type ReportType string

const (
	ReportTypeClient    ReportType = "CLIENT"
	ReportTypeServer    ReportType = "SERVER"
	ReportTypeFileStore ReportType = "FILE_STORE"
)

// ReportDescriptor is the static metadata for one report: its wire name,
// its category, and whether it accepts a time range. Descriptors are
// immutable once resolved and replaced wholesale on a name change.
type ReportDescriptor struct {
	Name              string     `json:"name" yaml:"name"`
	Type              ReportType `json:"type" yaml:"type"`
	RequiresTimeRange bool       `json:"requires_time_range" yaml:"requires_time_range"`
	Summary           string     `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// Phase is the observable fetch lifecycle of the report view.
// It starts at Initial, moves to Loading on every issued fetch, and
// reaches Loaded only when an in-order response is accepted. It never
// returns to Initial.
type Phase int

const (
	PhaseInitial Phase = iota
	PhaseLoading
	PhaseLoaded
)

// String returns the display token for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseInitial:
		return "INITIAL"
	case PhaseLoading:
		return "LOADING"
	case PhaseLoaded:
		return "LOADED"
	default:
		return "UNKNOWN"
	}
}
