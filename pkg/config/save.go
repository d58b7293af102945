// pkg/config/save.go

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/CodeMonkeyCybersecurity/userdir/pkg/dir_err"
	"gopkg.in/yaml.v3"
)

// Save writes cfg to path as YAML, owner-readable only since the base URL
// carries the access token.
func Save(path string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := Marshal(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return dir_err.NewConfigError(fmt.Sprintf("cannot create %s", filepath.Dir(path)), err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return dir_err.NewConfigError(fmt.Sprintf("cannot write %s", path), err)
	}
	return nil
}

// Marshal renders cfg as YAML. Timeouts are written as duration strings.
func Marshal(cfg *Config) ([]byte, error) {
	out := struct {
		BaseURL   string `yaml:"base_url"`
		Timeout   string `yaml:"timeout,omitempty"`
		UserAgent string `yaml:"user_agent,omitempty"`
		LogLevel  string `yaml:"log_level,omitempty"`
	}{
		BaseURL:   cfg.BaseURL,
		UserAgent: cfg.UserAgent,
		LogLevel:  cfg.LogLevel,
	}
	if cfg.Timeout > 0 {
		out.Timeout = cfg.Timeout.String()
	}
	return yaml.Marshal(out)
}
