package sched

import (
	"os"

	yaml "github.com/goccy/go-yaml"
)

// Config mirrors config.yml.
type Config struct {
	Quantum     int64 `yaml:"quantum"`      // base time quantum, 200 by default
	TraceEvents bool  `yaml:"trace_events"` // record per-run event traces
}

// If the config file is not found, we use default values.
func defaultConfig() Config {
	return Config{
		Quantum: 200,
	}
}

// Load reads YAML and overrides defaults; empty path = defaults only.
func Load(path string) Config {
	cfg := defaultConfig()

	if path == "" {
		return cfg
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	_ = yaml.Unmarshal(data, &cfg)

	// sanity clamps
	if cfg.Quantum <= 0 {
		cfg.Quantum = 200
	}

	return cfg
}
