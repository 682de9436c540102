package scheduling

import (
	"fmt"

	"github.com/chloebrgr/docksched/core/model"
	"github.com/chloebrgr/docksched/core/registry"
)

// Validator checks mission requests before they reach the assignment
// policy. Checks run in a fixed order and stop at the first failure.
type Validator struct {
	reg *registry.Registry
}

// NewValidator creates a Validator bound to the port registry.
func NewValidator(reg *registry.Registry) *Validator {
	return &Validator{reg: reg}
}

// Validate returns nil when the request is well-formed, or a
// *ValidationError describing the first failing check. It has no side
// effects.
func (v *Validator) Validate(req model.MissionRequest) error {
	if req.MissionID == "" {
		return &ValidationError{Reason: "mission_id is required"}
	}
	if !v.reg.Known(req.RequestedPort) {
		return &ValidationError{Reason: fmt.Sprintf("unknown requested port %q", req.RequestedPort)}
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return &ValidationError{Reason: "start_time and end_time are required"}
	}
	if !req.EndTime.After(req.StartTime) {
		return &ValidationError{Reason: "end_time must be after start_time"}
	}
	if req.Team == "" {
		return &ValidationError{Reason: "team is required"}
	}
	return nil
}
