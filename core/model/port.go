package model

// Capability identifies a named feature a docking port may offer.
type Capability string

const (
	// CapabilityRefueling marks ports equipped for propellant transfer.
	CapabilityRefueling Capability = "refueling"
)

// CapabilitySet is the set of capabilities a port offers.
type CapabilitySet map[Capability]bool

// NewCapabilitySet builds a set from the given capabilities.
func NewCapabilitySet(caps ...Capability) CapabilitySet {
	s := make(CapabilitySet, len(caps))
	for _, c := range caps {
		s[c] = true
	}
	return s
}

// Has reports whether the set contains the capability.
func (s CapabilitySet) Has(c Capability) bool { return s[c] }

// List returns the capabilities in deterministic order for display.
func (s CapabilitySet) List() []Capability {
	out := make([]Capability, 0, len(s))
	for _, c := range []Capability{CapabilityRefueling} {
		if s[c] {
			out = append(out, c)
		}
	}
	return out
}

// Port represents a physical docking port on the station. Ports are
// configured once at startup and never change for the process lifetime.
type Port struct {
	Code         string
	Capabilities CapabilitySet
	// Fallbacks optionally restricts which ports may host missions that
	// requested this port. Empty means every registered port is eligible.
	Fallbacks []string
}

// Supports reports whether the port satisfies the mission's capability
// requirements.
func (p Port) Supports(req MissionRequest) bool {
	if req.RefuelingRequired && !p.Capabilities.Has(CapabilityRefueling) {
		return false
	}
	return true
}
