package scheduling

import "fmt"

// Duplicate mission id policies. The core does not require globally unique
// mission ids; deployments that want uniqueness opt into rejection.
const (
	DuplicateAllow  = "allow"
	DuplicateReject = "reject"
)

// Config defines scheduling engine settings.
type Config struct {
	// DuplicatePolicy controls what happens when a mission id that already
	// has a committed assignment is submitted again: "allow" books it as a
	// distinct mission, "reject" refuses the request.
	DuplicatePolicy string `json:"duplicate_policy"`
}

// SetDefaults applies default settings.
func (c *Config) SetDefaults() {
	if c.DuplicatePolicy == "" {
		c.DuplicatePolicy = DuplicateAllow
	}
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	if c.DuplicatePolicy != DuplicateAllow && c.DuplicatePolicy != DuplicateReject {
		return fmt.Errorf("unknown duplicate_policy %q", c.DuplicatePolicy)
	}
	return nil
}
