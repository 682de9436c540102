package metrics

import "time"

// MultiSink fans records out to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordDecisions forwards the records to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordDecisions(recs []DecisionRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordDecisions(recs); err != nil {
			return err
		}
	}
	return nil
}

// RecordOccupancy forwards occupancy snapshots to sinks that support them.
func (m *MultiSink) RecordOccupancy(perPort map[string]int) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(OccupancyRecorder); ok {
			if err := rec.RecordOccupancy(perPort); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordReset forwards reset events to sinks that support them.
func (m *MultiSink) RecordReset(cleared int, at time.Time) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(ResetRecorder); ok {
			if err := rec.RecordReset(cleared, at); err != nil {
				return err
			}
		}
	}
	return nil
}
