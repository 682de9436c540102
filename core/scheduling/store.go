package scheduling

import (
	"fmt"
	"sync"

	"github.com/chloebrgr/docksched/core/model"
	"github.com/chloebrgr/docksched/core/registry"
)

// Store owns the per-port assignment lists and is the single source of
// truth for the schedule. Lists keep insertion order. Put does not
// re-check conflicts; the engine establishes conflict-freedom through the
// policy before committing, and serializes the whole check-then-act
// sequence.
type Store struct {
	mu    sync.RWMutex
	order []string
	ports map[string][]model.Assignment
}

// NewStore creates an empty store with one list per registered port.
func NewStore(reg *registry.Registry) *Store {
	codes := reg.Codes()
	s := &Store{
		order: codes,
		ports: make(map[string][]model.Assignment, len(codes)),
	}
	for _, c := range codes {
		s.ports[c] = nil
	}
	return s
}

// Put appends the assignment to the port's list. A port code outside the
// registry is an internal consistency fault, not a rejectable condition.
func (s *Store) Put(port string, a model.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ports[port]; !ok {
		return fmt.Errorf("%w: %s", registry.ErrUnknownPort, port)
	}
	s.ports[port] = append(s.ports[port], a)
	return nil
}

// List returns the assignments committed to the port in insertion order.
func (s *Store) List(port string) []model.Assignment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Assignment(nil), s.ports[port]...)
}

// Clear atomically empties every port's list and returns the number of
// assignments discarded.
func (s *Store) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.order {
		n += len(s.ports[c])
		s.ports[c] = nil
	}
	return n
}

// Len returns the total number of committed assignments.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, l := range s.ports {
		n += len(l)
	}
	return n
}

// Contains reports whether any port holds an assignment for the mission.
func (s *Store) Contains(missionID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.ports {
		for _, a := range l {
			if a.MissionID == missionID {
				return true
			}
		}
	}
	return false
}

// ForEachPort returns a snapshot of the full schedule. Every registered
// port is present, including empty ones.
func (s *Store) ForEachPort() model.ScheduleView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	view := make(model.ScheduleView, len(s.order))
	for _, c := range s.order {
		view[c] = append([]model.Assignment(nil), s.ports[c]...)
	}
	return view
}
