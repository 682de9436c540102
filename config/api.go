package config

// APIConfig defines settings for the HTTP API server.
type APIConfig struct {
	// Enabled starts the HTTP server when true.
	Enabled bool `json:"enabled"`
	// Address is the listen address, e.g. ":8080".
	Address string `json:"address"`
	// Token protects the decision log endpoint when non-empty.
	Token string `json:"token"`
}

// SetDefaults applies sane defaults.
func (c *APIConfig) SetDefaults() {
	if c.Address == "" {
		c.Address = ":8080"
	}
}
