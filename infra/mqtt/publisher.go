package mqtt

import (
	"fmt"
	"sync"

	coremqtt "github.com/chloebrgr/docksched/core/mqtt"
	"github.com/chloebrgr/docksched/core/model"
)

// RequestSource mirrors the core mqtt.RequestSource interface.
type RequestSource = coremqtt.RequestSource

// DecisionPublisher mirrors the core mqtt.DecisionPublisher interface.
type DecisionPublisher = coremqtt.DecisionPublisher

// MockPublisher records published decisions for tests.
type MockPublisher struct {
	Decisions []model.Decision
	FailIDs   map[string]bool
	mu        sync.Mutex
}

// NewMockPublisher creates a new MockPublisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{FailIDs: make(map[string]bool)}
}

// PublishDecision records the decision or returns an error if configured to fail.
func (m *MockPublisher) PublishDecision(d model.Decision) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailIDs[d.MissionID] {
		return fmt.Errorf("publish failed")
	}
	m.Decisions = append(m.Decisions, d)
	return nil
}

// Published returns a copy of the recorded decisions.
func (m *MockPublisher) Published() []model.Decision {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Decision, len(m.Decisions))
	copy(out, m.Decisions)
	return out
}

// MockSource delivers mission requests directly to the registered handler.
type MockSource struct {
	mu      sync.Mutex
	handler coremqtt.RequestHandler
}

// Subscribe registers the handler.
func (m *MockSource) Subscribe(h coremqtt.RequestHandler) error {
	m.mu.Lock()
	m.handler = h
	m.mu.Unlock()
	return nil
}

// Emit invokes the handler with the given request.
func (m *MockSource) Emit(req model.MissionRequest) {
	m.mu.Lock()
	h := m.handler
	m.mu.Unlock()
	if h != nil {
		h(req)
	}
}

// Disconnect is a no-op.
func (m *MockSource) Disconnect() {}
