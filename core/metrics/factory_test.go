package metrics

import (
	"testing"

	"github.com/chloebrgr/docksched/core/factory"
)

type countingSink struct{ calls int }

func (c *countingSink) RecordDecisions(recs []DecisionRecord) error {
	c.calls += len(recs)
	return nil
}

func TestNewMetricsSink_Defaults(t *testing.T) {
	s, err := NewMetricsSink(nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, ok := s.(NopSink); !ok {
		t.Fatalf("expected NopSink, got %T", s)
	}
}

func TestNewMetricsSink_Multi(t *testing.T) {
	a := &countingSink{}
	b := &countingSink{}
	if err := RegisterMetricsSink("count_a", func(map[string]any) (MetricsSink, error) { return a, nil }); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := RegisterMetricsSink("count_b", func(map[string]any) (MetricsSink, error) { return b, nil }); err != nil {
		t.Fatalf("register: %v", err)
	}
	s, err := NewMetricsSink([]factory.ModuleConfig{{Type: "count_a"}, {Type: "count_b"}})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, ok := s.(*MultiSink); !ok {
		t.Fatalf("expected MultiSink, got %T", s)
	}
	if err := s.RecordDecisions([]DecisionRecord{{MissionID: "Orion-3"}}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if a.calls != 1 || b.calls != 1 {
		t.Fatalf("expected fan-out to both sinks, got %d/%d", a.calls, b.calls)
	}
}

func TestNewMetricsSink_Unknown(t *testing.T) {
	if _, err := NewMetricsSink([]factory.ModuleConfig{{Type: "does-not-exist"}}); err == nil {
		t.Fatal("expected unknown sink error")
	}
}
