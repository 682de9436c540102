package registry

import "fmt"

// PortConfig describes one docking port in the configuration file.
type PortConfig struct {
	Code         string   `json:"code"`
	Capabilities []string `json:"capabilities"`
	// Fallbacks optionally restricts which ports may host missions that
	// requested this port. When empty the full registry order applies.
	Fallbacks []string `json:"fallbacks"`
}

// Config defines the registry section of the configuration.
type Config struct {
	Ports []PortConfig `json:"ports"`
}

// SetDefaults applies the reference three-port station layout when no ports
// are configured.
func (c *Config) SetDefaults() {
	if len(c.Ports) == 0 {
		c.Ports = []PortConfig{
			{Code: "A1"},
			{Code: "A2"},
			{Code: "B1", Capabilities: []string{"refueling"}},
		}
	}
}

// Validate checks the port list for structural problems.
func (c Config) Validate() error {
	seen := make(map[string]bool, len(c.Ports))
	for _, p := range c.Ports {
		if p.Code == "" {
			return fmt.Errorf("port code must not be empty")
		}
		if seen[p.Code] {
			return fmt.Errorf("duplicate port %s", p.Code)
		}
		seen[p.Code] = true
	}
	for _, p := range c.Ports {
		for _, fb := range p.Fallbacks {
			if !seen[fb] {
				return fmt.Errorf("port %s lists unknown fallback %s", p.Code, fb)
			}
		}
	}
	return nil
}
