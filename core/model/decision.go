package model

import "time"

// DecisionStatus is the outcome of one scheduling attempt.
type DecisionStatus string

const (
	StatusAccepted DecisionStatus = "accepted"
	StatusRejected DecisionStatus = "rejected"
)

// Decision is the engine's answer to one MissionRequest. Decisions are not
// part of the schedule; only accepted missions persist as Assignments.
type Decision struct {
	DecisionID   string         `json:"decision_id"`
	MissionID    string         `json:"mission_id"`
	Status       DecisionStatus `json:"status"`
	AssignedPort string         `json:"assigned_port,omitempty"`
	Reason       string         `json:"reason,omitempty"`
	DecidedAt    time.Time      `json:"decided_at"`
}

// Accepted reports whether the mission was committed to a port.
func (d Decision) Accepted() bool { return d.Status == StatusAccepted }
