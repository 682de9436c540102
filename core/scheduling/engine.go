package scheduling

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/chloebrgr/docksched/core/events"
	"github.com/chloebrgr/docksched/core/logger"
	"github.com/chloebrgr/docksched/core/metrics"
	"github.com/chloebrgr/docksched/core/model"
	"github.com/chloebrgr/docksched/core/monitoring"
	"github.com/chloebrgr/docksched/core/registry"
	"github.com/chloebrgr/docksched/core/scheduling/logging"
	"github.com/chloebrgr/docksched/internal/eventbus"
)

// Engine composes the validator, assignment policy and schedule store into
// the three top-level operations: Schedule, Reset and Snapshot. The whole
// validate-assign-commit sequence of one request runs under an exclusive
// lock so concurrent submissions can never both pass conflict checking
// against the same stale state.
type Engine struct {
	reg       *registry.Registry
	validator *Validator
	policy    *Policy
	store     *Store
	cfg       Config
	logger    logger.Logger
	metrics   metrics.MetricsSink
	bus       eventbus.EventBus
	monitor   monitoring.Monitor
	audit     logging.AuditStore
	mu        sync.Mutex
}

// NewEngine creates an Engine. The registry and logger are required;
// metrics sink, event bus and monitor may be nil.
func NewEngine(reg *registry.Registry, cfg Config, sink metrics.MetricsSink, bus eventbus.EventBus, mon monitoring.Monitor, log logger.Logger) (*Engine, error) {
	if reg == nil || log == nil {
		return nil, fmt.Errorf("scheduling: nil parameter provided to NewEngine")
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("scheduling: %w", err)
	}
	return &Engine{
		reg:       reg,
		validator: NewValidator(reg),
		policy:    NewPolicy(reg),
		store:     NewStore(reg),
		cfg:       cfg,
		logger:    log,
		metrics:   sink,
		bus:       bus,
		monitor:   mon,
	}, nil
}

// SetAuditStore configures the store used to persist decision records.
func (e *Engine) SetAuditStore(store logging.AuditStore) {
	e.mu.Lock()
	e.audit = store
	e.mu.Unlock()
}

// Close releases resources held by the engine.
func (e *Engine) Close() error {
	if e.bus != nil {
		e.bus.Close()
	}
	if e.audit != nil {
		return e.audit.Close()
	}
	return nil
}

// Schedule decides on one mission request. Validation failures and port
// contention come back as rejected Decisions with a nil error; a non-nil
// error marks an internal fault, fatal to this request only. The returned
// AssignedPort is authoritative and may differ from the requested port.
func (e *Engine) Schedule(req model.MissionRequest) (model.Decision, error) {
	start := time.Now()
	if e.bus != nil {
		e.bus.Publish(events.RequestEvent{Request: req})
	}

	dec, err := e.decide(req)
	latency := time.Since(start)

	if err != nil {
		e.logger.Errorf("internal fault scheduling mission %s: %v", req.MissionID, err)
	} else if dec.Accepted() {
		e.logger.Infof("mission %s accepted on port %s", req.MissionID, dec.AssignedPort)
	} else {
		e.logger.Infof("mission %s rejected: %s", req.MissionID, dec.Reason)
	}

	if e.bus != nil {
		e.bus.Publish(events.DecisionEvent{Request: req, Decision: dec, Latency: latency})
	}
	e.recordDecision(req, dec, latency)
	e.appendAudit(req, dec)
	return dec, err
}

// decide runs the serialized validate-assign-commit sequence.
func (e *Engine) decide(req model.MissionRequest) (model.Decision, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.validator.Validate(req); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return e.rejection(req, verr.Reason), nil
		}
		return e.rejection(req, err.Error()), nil
	}

	if e.cfg.DuplicatePolicy == DuplicateReject && e.store.Contains(req.MissionID) {
		return e.rejection(req, fmt.Sprintf("mission %s already has a committed assignment", req.MissionID)), nil
	}

	port, err := e.policy.Assign(e.store, req)
	if err != nil {
		var aerr *AssignmentError
		if errors.As(err, &aerr) {
			return e.rejection(req, aerr.Reason), nil
		}
		return e.fault(req, &internalError{op: "assign", err: err})
	}

	a := model.Assignment{
		MissionID: req.MissionID,
		Port:      port,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Team:      req.Team,
	}
	if err := e.store.Put(port, a); err != nil {
		return e.fault(req, &internalError{op: "commit assignment", err: err})
	}

	return model.Decision{
		DecisionID:   uuid.NewString(),
		MissionID:    req.MissionID,
		Status:       model.StatusAccepted,
		AssignedPort: port,
		DecidedAt:    time.Now().UTC(),
	}, nil
}

// Reset discards all assignments across all ports and returns how many
// were cleared. It is idempotent: resetting an empty schedule is a no-op
// success.
func (e *Engine) Reset() int {
	e.mu.Lock()
	cleared := e.store.Clear()
	e.mu.Unlock()

	e.logger.Infof("schedule reset, %d assignments discarded", cleared)
	if e.bus != nil {
		e.bus.Publish(events.ResetEvent{Cleared: cleared, Time: time.Now().UTC()})
	}
	if rr, ok := e.metrics.(metrics.ResetRecorder); ok {
		if err := rr.RecordReset(cleared, time.Now().UTC()); err != nil {
			e.logger.Errorf("reset metrics error: %v", err)
		}
	}
	e.recordOccupancy()
	return cleared
}

// Snapshot returns a read-only view of all ports and their assignments,
// safe to serialize for external display.
func (e *Engine) Snapshot() model.ScheduleView {
	return e.store.ForEachPort()
}

// Registry exposes the port registry the engine was built with.
func (e *Engine) Registry() *registry.Registry { return e.reg }

func (e *Engine) rejection(req model.MissionRequest, reason string) model.Decision {
	return model.Decision{
		DecisionID: uuid.NewString(),
		MissionID:  req.MissionID,
		Status:     model.StatusRejected,
		Reason:     reason,
		DecidedAt:  time.Now().UTC(),
	}
}

// fault reports an internal consistency problem to the monitor and rejects
// the single request without touching the schedule.
func (e *Engine) fault(req model.MissionRequest, ierr *internalError) (model.Decision, error) {
	if e.monitor != nil {
		e.monitor.CaptureException(ierr, map[string]string{
			"mission_id":     req.MissionID,
			"requested_port": req.RequestedPort,
		})
	}
	return e.rejection(req, "internal scheduling fault"), ierr
}

func (e *Engine) recordDecision(req model.MissionRequest, dec model.Decision, latency time.Duration) {
	if e.metrics == nil {
		return
	}
	rec := metrics.DecisionRecord{
		MissionID:         req.MissionID,
		RequestedPort:     req.RequestedPort,
		AssignedPort:      dec.AssignedPort,
		Status:            dec.Status,
		Reason:            dec.Reason,
		Team:              req.Team,
		RefuelingRequired: req.RefuelingRequired,
		WindowStart:       req.StartTime,
		WindowEnd:         req.EndTime,
		DecidedAt:         dec.DecidedAt,
		Latency:           latency,
	}
	if err := e.metrics.RecordDecisions([]metrics.DecisionRecord{rec}); err != nil {
		e.logger.Errorf("metrics error: %v", err)
	}
	if dec.Accepted() {
		e.recordOccupancy()
	}
}

func (e *Engine) recordOccupancy() {
	or, ok := e.metrics.(metrics.OccupancyRecorder)
	if !ok {
		return
	}
	perPort := make(map[string]int)
	for port, list := range e.store.ForEachPort() {
		perPort[port] = len(list)
	}
	if err := or.RecordOccupancy(perPort); err != nil {
		e.logger.Errorf("occupancy metrics error: %v", err)
	}
}

func (e *Engine) appendAudit(req model.MissionRequest, dec model.Decision) {
	e.mu.Lock()
	store := e.audit
	e.mu.Unlock()
	if store == nil {
		return
	}
	rec := logging.LogRecord{
		Timestamp: time.Now().UTC(),
		Request:   req,
		Decision:  dec,
	}
	if err := store.Append(context.Background(), rec); err != nil {
		e.logger.Errorf("audit append error: %v", err)
	}
}
