package model

import "time"

// MissionRequest is a structured docking request as produced by the
// upstream extraction pipeline. Times are absolute instants; the half-open
// window [StartTime, EndTime) is the slot the mission wants to occupy.
type MissionRequest struct {
	MissionID         string    `json:"mission_id"`
	RequestedPort     string    `json:"requested_port"`
	StartTime         time.Time `json:"start_time"`
	EndTime           time.Time `json:"end_time"`
	Team              string    `json:"team"`
	RefuelingRequired bool      `json:"refueling_required"`
}

// Duration returns the length of the requested window. It is negative for
// requests that have not passed validation.
func (r MissionRequest) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

// Assignment is a committed, conflict-free booking of a port.
type Assignment struct {
	MissionID string    `json:"mission_id"`
	Port      string    `json:"port"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Team      string    `json:"team"`
}

// Overlaps reports whether the assignment's half-open interval intersects
// [start, end). Back-to-back windows, where one ends exactly when the other
// begins, do not overlap.
func (a Assignment) Overlaps(start, end time.Time) bool {
	return a.StartTime.Before(end) && start.Before(a.EndTime)
}

// ScheduleView is a read-only snapshot of the schedule keyed by port code.
// Every registered port is present, mapped to its assignments in insertion
// order.
type ScheduleView map[string][]Assignment
