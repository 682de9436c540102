package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/chloebrgr/docksched/core/metrics"
	"github.com/chloebrgr/docksched/core/registry"
	"github.com/chloebrgr/docksched/core/scheduling"
	"github.com/chloebrgr/docksched/core/scheduling/logging"
	"github.com/chloebrgr/docksched/infra/mqtt"
)

type Config struct {
	Registry   registry.Config   `json:"registry"`
	Scheduling scheduling.Config `json:"scheduling"`
	MQTT       mqtt.Config       `json:"mqtt"`
	API        APIConfig         `json:"api"`
	Metrics    metrics.Config    `json:"metrics"`
	Audit      logging.Config    `json:"audit"`
	Sentry     SentryConfig      `json:"sentry"`
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("DS_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "ds_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Registry.SetDefaults()
	cfg.Scheduling.SetDefaults()
	cfg.MQTT.SetDefaults()
	cfg.API.SetDefaults()
	cfg.Audit.SetDefaults()
	if err := cfg.Registry.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Scheduling.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Audit.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
