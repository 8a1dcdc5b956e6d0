package controller

// Outcome classifies what a coordinator activation did. Failure paths in
// this design are deliberate no-ops, so they are modeled as values rather
// than errors; tests assert on the absence of a transition the same way
// they assert on its presence.
type Outcome int

const (
	// OutcomeNone means no activation has happened yet.
	OutcomeNone Outcome = iota
	// OutcomeSkipped means an evaluation ran but no fetch was issued
	// (no descriptor, or the descriptor has no name).
	OutcomeSkipped
	// OutcomeFetched means a request was issued and its token recorded.
	OutcomeFetched
	// OutcomeApplied means an in-order response updated the view.
	OutcomeApplied
	// OutcomeStale means a superseded response arrived and was discarded.
	OutcomeStale
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFetched:
		return "fetched"
	case OutcomeApplied:
		return "applied"
	case OutcomeStale:
		return "stale"
	default:
		return "unknown"
	}
}
