package httpclient

import (
	"crypto/tls"
	"fmt"
	"time"
)

// Config represents HTTP client configuration options
type Config struct {
	// Timeout bounds a whole request. Zero means no client-side timeout.
	Timeout   time.Duration     `json:"timeout" yaml:"timeout"`
	UserAgent string            `json:"user_agent" yaml:"user_agent"`
	Headers   map[string]string `json:"headers" yaml:"headers"`

	TLSConfig *TLSConfig `json:"tls" yaml:"tls"`
	LogConfig *LogConfig `json:"log" yaml:"log"`
}

// TLSConfig defines TLS security settings
type TLSConfig struct {
	InsecureSkipVerify bool   `json:"insecure_skip_verify" yaml:"insecure_skip_verify"`
	MinVersion         uint16 `json:"min_version" yaml:"min_version"`
	RootCAFile         string `json:"root_ca_file" yaml:"root_ca_file"`
}

// LogConfig defines logging behavior
type LogConfig struct {
	LogRequests  bool `json:"log_requests" yaml:"log_requests"`
	LogResponses bool `json:"log_responses" yaml:"log_responses"`
}

// DefaultConfig returns the configuration used by the CLI and TUI.
// No timeout is set, so requests wait as long as the transport allows.
func DefaultConfig() *Config {
	return &Config{
		Timeout:   0,
		UserAgent: "userdir/1.0",
		Headers: map[string]string{
			"Accept": "application/json",
		},
		TLSConfig: &TLSConfig{
			InsecureSkipVerify: false,
			MinVersion:         tls.VersionTLS12,
		},
		LogConfig: &LogConfig{},
	}
}

// TestConfig returns a configuration suitable for testing
func TestConfig() *Config {
	config := DefaultConfig()

	// Allow insecure TLS for testing
	config.TLSConfig.InsecureSkipVerify = true

	// Tests should never hang on a dead server
	config.Timeout = 5 * time.Second

	config.LogConfig.LogRequests = true
	config.LogConfig.LogResponses = true

	return config
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Timeout < 0 {
		return &ConfigError{Field: "Timeout", Message: "cannot be negative"}
	}

	if c.TLSConfig != nil {
		switch c.TLSConfig.MinVersion {
		case 0, tls.VersionTLS12, tls.VersionTLS13:
		default:
			return &ConfigError{Field: "TLSConfig.MinVersion", Message: "must be TLS 1.2 or TLS 1.3"}
		}
	}

	for name := range c.Headers {
		if name == "" {
			return &ConfigError{Field: "Headers", Message: "header names cannot be empty"}
		}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config field %s: %s", e.Field, e.Message)
}
