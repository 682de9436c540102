package events

import (
	"time"

	"github.com/chloebrgr/docksched/core/model"
)

// RequestEvent is published when a mission request is received by the engine.
type RequestEvent struct {
	Request model.MissionRequest
}

// DecisionEvent is published after the engine decides on a mission request.
type DecisionEvent struct {
	Request  model.MissionRequest
	Decision model.Decision
	Latency  time.Duration
}

// ResetEvent is published when the schedule is wiped. Cleared counts the
// assignments discarded across all ports.
type ResetEvent struct {
	Cleared int
	Time    time.Time
}
