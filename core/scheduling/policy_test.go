package scheduling

import (
	"errors"
	"testing"
	"time"

	"github.com/chloebrgr/docksched/core/model"
	"github.com/chloebrgr/docksched/core/registry"
)

func request(id, port string, start, end time.Time, refuel bool) model.MissionRequest {
	return model.MissionRequest{
		MissionID:         id,
		RequestedPort:     port,
		StartTime:         start,
		EndTime:           end,
		Team:              "Artemis Ops",
		RefuelingRequired: refuel,
	}
}

func TestAssignPrefersRequestedPort(t *testing.T) {
	reg := testRegistry(t)
	p := NewPolicy(reg)
	s := NewStore(reg)

	port, err := p.Assign(s, request("M1", "A2", at(10, 0), at(11, 0), false))
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if port != "A2" {
		t.Fatalf("free requested port must win, got %s", port)
	}
}

func TestAssignFallsBackInRegistryOrder(t *testing.T) {
	reg := testRegistry(t)
	p := NewPolicy(reg)
	s := NewStore(reg)
	if err := s.Put("A1", model.Assignment{MissionID: "M0", Port: "A1", StartTime: at(10, 0), EndTime: at(12, 0)}); err != nil {
		t.Fatalf("put: %v", err)
	}

	port, err := p.Assign(s, request("M1", "A1", at(10, 30), at(11, 30), false))
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if port != "A2" {
		t.Fatalf("fallback must follow registry order, got %s", port)
	}
}

func TestAssignCapabilityFilter(t *testing.T) {
	reg := testRegistry(t)
	p := NewPolicy(reg)
	s := NewStore(reg)

	// Only B1 refuels; a refueling mission requesting A2 must land there.
	port, err := p.Assign(s, request("M1", "A2", at(9, 0), at(10, 0), true))
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if port != "B1" {
		t.Fatalf("capability filter must route to B1, got %s", port)
	}
}

func TestAssignNoCapabilityMatch(t *testing.T) {
	reg, err := registry.New([]registry.PortConfig{{Code: "A1"}, {Code: "A2"}})
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	p := NewPolicy(reg)
	s := NewStore(reg)

	_, err = p.Assign(s, request("M1", "A1", at(9, 0), at(10, 0), true))
	var aerr *AssignmentError
	if !errors.As(err, &aerr) || aerr.Kind != NoCapabilityMatch {
		t.Fatalf("expected NoCapabilityMatch, got %v", err)
	}
}

func TestAssignAllPortsConflicted(t *testing.T) {
	reg := testRegistry(t)
	p := NewPolicy(reg)
	s := NewStore(reg)
	for _, port := range []string{"A1", "A2", "B1"} {
		if err := s.Put(port, model.Assignment{MissionID: "M-" + port, Port: port, StartTime: at(10, 0), EndTime: at(11, 0)}); err != nil {
			t.Fatalf("put: %v", err)
		}
	}

	_, err := p.Assign(s, request("M1", "A1", at(10, 15), at(10, 45), false))
	var aerr *AssignmentError
	if !errors.As(err, &aerr) || aerr.Kind != AllPortsConflicted {
		t.Fatalf("expected AllPortsConflicted, got %v", err)
	}
}

func TestAssignHonorsConfiguredFallbacks(t *testing.T) {
	reg, err := registry.New([]registry.PortConfig{
		{Code: "A1", Fallbacks: []string{"B1"}},
		{Code: "A2"},
		{Code: "B1"},
	})
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	p := NewPolicy(reg)
	s := NewStore(reg)
	if err := s.Put("A1", model.Assignment{MissionID: "M0", Port: "A1", StartTime: at(10, 0), EndTime: at(12, 0)}); err != nil {
		t.Fatalf("put: %v", err)
	}

	// A1's fallback list skips A2, so the mission must land on B1 even
	// though A2 is free.
	port, err := p.Assign(s, request("M1", "A1", at(10, 30), at(11, 30), false))
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if port != "B1" {
		t.Fatalf("configured fallback must be honored, got %s", port)
	}
}

func TestAssignDeterministic(t *testing.T) {
	reg := testRegistry(t)
	p := NewPolicy(reg)
	s := NewStore(reg)
	if err := s.Put("A1", model.Assignment{MissionID: "M0", Port: "A1", StartTime: at(10, 0), EndTime: at(12, 0)}); err != nil {
		t.Fatalf("put: %v", err)
	}
	req := request("M1", "A1", at(10, 30), at(11, 30), false)
	first, err := p.Assign(s, req)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	for i := 0; i < 10; i++ {
		got, err := p.Assign(s, req)
		if err != nil || got != first {
			t.Fatalf("run %d: got %s/%v, want %s", i, got, err, first)
		}
	}
}
