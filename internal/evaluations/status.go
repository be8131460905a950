package evaluations

// Status is an evaluation's position in the recruitment pipeline.
type Status string

// Recruitment pipeline statuses.
const (
	StatusUnderProcess Status = "UNDER_PROCESS"
	StatusShortlisted  Status = "SHORTLISTED"
	StatusInterviewing Status = "INTERVIEWING"
	StatusOffered      Status = "OFFERED"
	StatusHired        Status = "HIRED"
	StatusRejected     Status = "REJECTED"
	StatusWithdrawn    Status = "WITHDRAWN"
)

// transitions defines the forward path through the pipeline. Rejection and
// withdrawal are reachable from any non-terminal status; HIRED, REJECTED,
// and WITHDRAWN are terminal.
var transitions = map[Status][]Status{
	StatusUnderProcess: {StatusShortlisted, StatusRejected, StatusWithdrawn},
	StatusShortlisted:  {StatusInterviewing, StatusRejected, StatusWithdrawn},
	StatusInterviewing: {StatusOffered, StatusRejected, StatusWithdrawn},
	StatusOffered:      {StatusHired, StatusRejected, StatusWithdrawn},
	StatusHired:        {},
	StatusRejected:     {},
	StatusWithdrawn:    {},
}

// Known reports whether s is a recognized pipeline status.
func (s Status) Known() bool {
	_, ok := transitions[s]
	return ok
}

// Terminal reports whether no further transitions are possible from s.
func (s Status) Terminal() bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

// CanTransition reports whether moving from s to target is a valid
// pipeline step. Overrides bypass this guard.
func (s Status) CanTransition(target Status) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}
