// Package registry holds the static table of docking ports and their
// capabilities. The registry is built once from configuration at startup and
// is immutable afterwards; its enumeration order is the deployment-time
// priority order used for fallback assignment.
package registry

import (
	"errors"
	"fmt"

	"github.com/chloebrgr/docksched/core/model"
)

// ErrUnknownPort is returned when a port code is not registered.
var ErrUnknownPort = errors.New("unknown port")

// Registry is the fixed set of docking ports.
type Registry struct {
	ports []model.Port
	index map[string]int
}

// New builds a Registry from the configured ports. Order is preserved and
// becomes the fallback priority order. Duplicate codes and fallback
// references to unregistered ports are configuration errors.
func New(cfgs []PortConfig) (*Registry, error) {
	if len(cfgs) == 0 {
		return nil, fmt.Errorf("registry: at least one port must be configured")
	}
	r := &Registry{
		ports: make([]model.Port, 0, len(cfgs)),
		index: make(map[string]int, len(cfgs)),
	}
	for _, c := range cfgs {
		if c.Code == "" {
			return nil, fmt.Errorf("registry: port code must not be empty")
		}
		if _, ok := r.index[c.Code]; ok {
			return nil, fmt.Errorf("registry: duplicate port %s", c.Code)
		}
		caps := make([]model.Capability, 0, len(c.Capabilities))
		for _, s := range c.Capabilities {
			caps = append(caps, model.Capability(s))
		}
		r.index[c.Code] = len(r.ports)
		r.ports = append(r.ports, model.Port{
			Code:         c.Code,
			Capabilities: model.NewCapabilitySet(caps...),
			Fallbacks:    append([]string(nil), c.Fallbacks...),
		})
	}
	for _, p := range r.ports {
		for _, fb := range p.Fallbacks {
			if _, ok := r.index[fb]; !ok {
				return nil, fmt.Errorf("registry: port %s lists unknown fallback %s", p.Code, fb)
			}
		}
	}
	return r, nil
}

// Ports returns every registered port in priority order. The returned slice
// is a copy; callers may not mutate registry state through it.
func (r *Registry) Ports() []model.Port {
	return append([]model.Port(nil), r.ports...)
}

// Get returns the port with the given code.
func (r *Registry) Get(code string) (model.Port, error) {
	i, ok := r.index[code]
	if !ok {
		return model.Port{}, fmt.Errorf("%w: %s", ErrUnknownPort, code)
	}
	return r.ports[i], nil
}

// Capabilities returns the capability set of the given port.
func (r *Registry) Capabilities(code string) (model.CapabilitySet, error) {
	p, err := r.Get(code)
	if err != nil {
		return nil, err
	}
	return p.Capabilities, nil
}

// Known reports whether the code belongs to a registered port.
func (r *Registry) Known(code string) bool {
	_, ok := r.index[code]
	return ok
}

// Codes returns the port codes in priority order.
func (r *Registry) Codes() []string {
	out := make([]string, len(r.ports))
	for i, p := range r.ports {
		out[i] = p.Code
	}
	return out
}
