package model

import (
	"testing"
	"time"
)

func ts(h, m int) time.Time {
	return time.Date(2025, 10, 1, h, m, 0, 0, time.UTC)
}

func TestAssignmentOverlaps(t *testing.T) {
	a := Assignment{MissionID: "Orion-3", Port: "A1", StartTime: ts(10, 0), EndTime: ts(11, 0)}
	cases := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"identical", ts(10, 0), ts(11, 0), true},
		{"contained", ts(10, 15), ts(10, 45), true},
		{"overlap head", ts(9, 30), ts(10, 30), true},
		{"overlap tail", ts(10, 30), ts(11, 30), true},
		{"surrounding", ts(9, 0), ts(12, 0), true},
		{"back to back before", ts(9, 0), ts(10, 0), false},
		{"back to back after", ts(11, 0), ts(12, 0), false},
		{"disjoint", ts(13, 0), ts(14, 0), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := a.Overlaps(c.start, c.end); got != c.want {
				t.Fatalf("Overlaps(%v, %v) = %v, want %v", c.start, c.end, got, c.want)
			}
		})
	}
}

func TestPortSupports(t *testing.T) {
	plain := Port{Code: "A2", Capabilities: NewCapabilitySet()}
	fuel := Port{Code: "B1", Capabilities: NewCapabilitySet(CapabilityRefueling)}

	req := MissionRequest{RefuelingRequired: true}
	if plain.Supports(req) {
		t.Fatal("port without refueling must not support a refueling mission")
	}
	if !fuel.Supports(req) {
		t.Fatal("refueling port must support a refueling mission")
	}
	req.RefuelingRequired = false
	if !plain.Supports(req) || !fuel.Supports(req) {
		t.Fatal("any port must support a mission without capability needs")
	}
}

func TestCapabilitySetList(t *testing.T) {
	s := NewCapabilitySet(CapabilityRefueling)
	got := s.List()
	if len(got) != 1 || got[0] != CapabilityRefueling {
		t.Fatalf("unexpected list: %v", got)
	}
	if len(NewCapabilitySet().List()) != 0 {
		t.Fatal("empty set must list nothing")
	}
}
