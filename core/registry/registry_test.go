package registry

import (
	"errors"
	"testing"

	"github.com/chloebrgr/docksched/core/model"
)

func testPorts() []PortConfig {
	return []PortConfig{
		{Code: "A1"},
		{Code: "A2"},
		{Code: "B1", Capabilities: []string{"refueling"}},
	}
}

func TestNew_OrderAndCapabilities(t *testing.T) {
	r, err := New(testPorts())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	got := r.Codes()
	want := []string{"A1", "A2", "B1"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order mismatch: got %v want %v", got, want)
		}
	}
	caps, err := r.Capabilities("B1")
	if err != nil {
		t.Fatalf("capabilities: %v", err)
	}
	if !caps.Has(model.CapabilityRefueling) {
		t.Fatal("B1 must offer refueling")
	}
	caps, err = r.Capabilities("A1")
	if err != nil {
		t.Fatalf("capabilities: %v", err)
	}
	if caps.Has(model.CapabilityRefueling) {
		t.Fatal("A1 must not offer refueling")
	}
}

func TestNew_Errors(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatal("expected error for empty port list")
	}
	if _, err := New([]PortConfig{{Code: "A1"}, {Code: "A1"}}); err == nil {
		t.Fatal("expected duplicate code error")
	}
	if _, err := New([]PortConfig{{Code: "A1", Fallbacks: []string{"Z9"}}}); err == nil {
		t.Fatal("expected unknown fallback error")
	}
}

func TestUnknownPort(t *testing.T) {
	r, err := New(testPorts())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := r.Capabilities("Z9"); !errors.Is(err, ErrUnknownPort) {
		t.Fatalf("expected ErrUnknownPort, got %v", err)
	}
	if r.Known("Z9") {
		t.Fatal("Z9 must not be known")
	}
	if !r.Known("A2") {
		t.Fatal("A2 must be known")
	}
}

func TestPortsReturnsCopy(t *testing.T) {
	r, err := New(testPorts())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ports := r.Ports()
	ports[0].Code = "mutated"
	if r.Codes()[0] != "A1" {
		t.Fatal("registry state leaked through Ports()")
	}
}

func TestConfigDefaultsAndValidate(t *testing.T) {
	var c Config
	c.SetDefaults()
	if len(c.Ports) != 3 {
		t.Fatalf("expected 3 default ports, got %d", len(c.Ports))
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
	bad := Config{Ports: []PortConfig{{Code: "A1"}, {Code: "A1"}}}
	if err := bad.Validate(); err == nil {
		t.Fatal("expected duplicate error")
	}
}
