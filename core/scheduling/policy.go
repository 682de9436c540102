package scheduling

import (
	"github.com/chloebrgr/docksched/core/model"
	"github.com/chloebrgr/docksched/core/registry"
)

// Policy selects a port for a validated mission request. It is greedy,
// deterministic and single-pass: the requested port is always tried first,
// then the remaining candidates in registry priority order. Committed
// missions are never displaced.
type Policy struct {
	reg *registry.Registry
}

// NewPolicy creates a Policy bound to the port registry.
func NewPolicy(reg *registry.Registry) *Policy {
	return &Policy{reg: reg}
}

// candidates returns the ordered, deduplicated candidate list for the
// request: the requested port first, then either its configured fallback
// ports or every other registered port in priority order.
func (p *Policy) candidates(req model.MissionRequest) []model.Port {
	requested, err := p.reg.Get(req.RequestedPort)
	if err != nil {
		// Validation guarantees a known port; an empty list makes the
		// engine surface this as an internal fault.
		return nil
	}
	out := []model.Port{requested}
	seen := map[string]bool{requested.Code: true}
	if len(requested.Fallbacks) > 0 {
		for _, code := range requested.Fallbacks {
			if seen[code] {
				continue
			}
			if fb, err := p.reg.Get(code); err == nil {
				out = append(out, fb)
				seen[code] = true
			}
		}
		return out
	}
	for _, port := range p.reg.Ports() {
		if seen[port.Code] {
			continue
		}
		out = append(out, port)
		seen[port.Code] = true
	}
	return out
}

// Assign walks the candidate list and returns the code of the first port
// that satisfies the request's capability needs and is free for the
// requested window. On failure it returns an *AssignmentError whose Kind
// tells capability starvation apart from time contention.
func (p *Policy) Assign(store *Store, req model.MissionRequest) (string, error) {
	compatible := 0
	for _, port := range p.candidates(req) {
		if !port.Supports(req) {
			continue
		}
		compatible++
		if !Overlaps(store.List(port.Code), req.StartTime, req.EndTime) {
			return port.Code, nil
		}
	}
	if compatible == 0 {
		return "", &AssignmentError{
			Kind:   NoCapabilityMatch,
			Reason: "no candidate port offers the required capabilities",
		}
	}
	return "", &AssignmentError{
		Kind:   AllPortsConflicted,
		Reason: "all compatible ports are occupied for the requested window",
	}
}
