// pkg/cmd_helpers/client.go
//
// Shared plumbing for the user commands: configuration from flags, a
// client built from it, and outcome printing.

package cmd_helpers

import (
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/config"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/dir_io"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/userdir"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Global flag names, registered as persistent flags on the root command.
const (
	FlagBaseURL  = "base-url"
	FlagConfig   = "config"
	FlagTimeout  = "timeout"
	FlagJSON     = "json"
	FlagLogLevel = "log-level"
)

var flagKeys = map[string]string{
	FlagBaseURL:  config.KeyBaseURL,
	FlagTimeout:  config.KeyTimeout,
	FlagLogLevel: config.KeyLogLevel,
}

// LoadConfig resolves configuration for cmd from its flags, the environment
// and the config file, and applies the configured log level.
func LoadConfig(rc *dir_io.RuntimeContext, cmd *cobra.Command) (*config.Config, error) {
	v := config.New()
	if err := config.BindFlagsToViper(cmd.Flags(), v, flagKeys); err != nil {
		return nil, err
	}

	path, _ := cmd.Flags().GetString(FlagConfig)
	cfg, err := config.Load(v, path)
	if err != nil {
		return nil, err
	}

	if cfg.LogLevel != "" {
		logger.SetLevel(cfg.LogLevel)
	}

	rc.Log.Debug("Configuration loaded",
		zap.String("base_url", userdir.RedactURL(cfg.BaseURL)),
		zap.String("source", cfg.Source),
		zap.Duration("timeout", cfg.Timeout))
	return cfg, nil
}

// NewClient loads configuration and builds a users client from it.
func NewClient(rc *dir_io.RuntimeContext, cmd *cobra.Command, opts ...userdir.Option) (*userdir.Client, *config.Config, error) {
	cfg, err := LoadConfig(rc, cmd)
	if err != nil {
		return nil, nil, err
	}

	opts = append([]userdir.Option{userdir.WithLogger(rc.Log)}, opts...)
	client, err := userdir.New(userdir.Config{BaseURL: cfg.BaseURL, HTTP: cfg.HTTPConfig()}, opts...)
	if err != nil {
		return nil, nil, err
	}
	return client, cfg, nil
}

// AddGlobalFlags registers the flags every user command reads.
func AddGlobalFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.String(FlagBaseURL, "", "users endpoint, e.g. https://crudcrud.com/api/<token> (env USERDIR_BASE_URL)")
	f.String(FlagConfig, "", "config file (default "+config.DefaultPath()+")")
	f.Duration(FlagTimeout, 0, "per-request timeout; 0 uses the transport default")
	f.Bool(FlagJSON, false, "print the raw JSON payload instead of a message")
	f.String(FlagLogLevel, "", "console log level: debug, info, warn, error (env LOG_LEVEL)")
}
