package scheduling

import "fmt"

// ValidationError reports a malformed or semantically invalid mission
// request. It is surfaced to callers as a rejection, never as a process
// fault.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// AssignmentErrorKind distinguishes why no port could be assigned.
type AssignmentErrorKind int

const (
	// NoCapabilityMatch means no registered port satisfies the mission's
	// capability requirements, regardless of timing.
	NoCapabilityMatch AssignmentErrorKind = iota
	// AllPortsConflicted means capability-compatible ports exist but every
	// one is occupied during the requested window.
	AllPortsConflicted
)

// AssignmentError reports that the policy found no compatible,
// conflict-free port for a request.
type AssignmentError struct {
	Kind   AssignmentErrorKind
	Reason string
}

func (e *AssignmentError) Error() string { return e.Reason }

// internalError wraps faults that indicate a programming or configuration
// problem rather than a rejectable request. They are fatal to the single
// request and reported to the monitor.
type internalError struct {
	op  string
	err error
}

func (e *internalError) Error() string { return fmt.Sprintf("%s: %v", e.op, e.err) }
func (e *internalError) Unwrap() error { return e.err }
