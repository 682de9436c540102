package metrics

import (
	"time"

	"github.com/chloebrgr/docksched/core/model"
)

// DecisionRecord represents one scheduling decision to be recorded.
type DecisionRecord struct {
	MissionID         string
	RequestedPort     string
	AssignedPort      string
	Status            model.DecisionStatus
	Reason            string
	Team              string
	RefuelingRequired bool
	WindowStart       time.Time
	WindowEnd         time.Time
	DecidedAt         time.Time
	Latency           time.Duration
}

// MetricsSink records scheduling decisions for observability purposes.
type MetricsSink interface {
	RecordDecisions(records []DecisionRecord) error
}

// OccupancyRecorder records the number of committed assignments per port.
type OccupancyRecorder interface {
	RecordOccupancy(perPort map[string]int) error
}

// ResetRecorder records schedule wipes.
type ResetRecorder interface {
	RecordReset(cleared int, at time.Time) error
}

// NopSink discards all records.
type NopSink struct{}

func (NopSink) RecordDecisions([]DecisionRecord) error { return nil }
