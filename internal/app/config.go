package app

import "fmt"

// Config holds the process-level options an App is created with. Empty
// fields leave the value from the configuration files untouched.
type Config struct {
	ConfigPaths []string // hcl files or directories

	LogFormat    string
	LogLevel     string
	BridgeListen string

	// LaunchArgs are the positional arguments the process was started with.
	// Desktop platforms pass the activation URL here.
	LaunchArgs []string
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	switch cfg.LogFormat {
	case "", "text", "json":
	default:
		return nil, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", cfg.LogFormat)
	}
	switch cfg.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}
	return &cfg, nil
}
