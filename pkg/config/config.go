// pkg/config/config.go
//
// Runtime configuration for userdir. Values come from, lowest precedence
// first: defaults, the YAML config file, a .env file, USERDIR_* environment
// variables and command-line flags.

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/CodeMonkeyCybersecurity/userdir/pkg/dir_err"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/httpclient"
	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "USERDIR"

	KeyBaseURL   = "base_url"
	KeyTimeout   = "timeout"
	KeyUserAgent = "user_agent"
	KeyLogLevel  = "log_level"

	// DotEnvFile is read from the working directory when present.
	DotEnvFile = ".env"
)

// Config is the validated runtime configuration.
type Config struct {
	BaseURL   string        `mapstructure:"base_url" yaml:"base_url" validate:"required,http_url"`
	Timeout   time.Duration `mapstructure:"timeout" yaml:"timeout,omitempty" validate:"gte=0"`
	UserAgent string        `mapstructure:"user_agent" yaml:"user_agent,omitempty"`
	LogLevel  string        `mapstructure:"log_level" yaml:"log_level,omitempty" validate:"omitempty,oneof=debug info warn warning error DEBUG INFO WARN WARNING ERROR"`

	// Source is the config file that was read, if any.
	Source string `mapstructure:"-" yaml:"-"`
}

// HTTPConfig maps the transport settings onto an httpclient.Config.
func (c *Config) HTTPConfig() *httpclient.Config {
	hc := httpclient.DefaultConfig()
	hc.Timeout = c.Timeout
	if c.UserAgent != "" {
		hc.UserAgent = c.UserAgent
	}
	return hc
}

var validate = validator.New()

// Validate checks the struct tags and reports every problem at once.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return dir_err.NewConfigError("configuration could not be validated", err)
	}

	var result error
	for _, fe := range verrs {
		result = multierror.Append(result, fieldError(fe))
	}
	return dir_err.NewConfigError("configuration is invalid", result,
		"set --base-url or USERDIR_BASE_URL, e.g. https://crudcrud.com/api/<token>",
		"run 'userdir config show' to see where each value comes from")
}

func fieldError(fe validator.FieldError) error {
	name := tagName(fe.StructField())
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", name)
	case "http_url":
		return fmt.Errorf("%s must be an absolute http or https URL", name)
	case "gte":
		return fmt.Errorf("%s must not be negative", name)
	case "oneof":
		return fmt.Errorf("%s must be one of debug, info, warn, error (got %q)", name, fe.Value())
	default:
		return fmt.Errorf("%s failed %s validation", name, fe.Tag())
	}
}

func tagName(field string) string {
	switch field {
	case "BaseURL":
		return KeyBaseURL
	case "Timeout":
		return KeyTimeout
	case "UserAgent":
		return KeyUserAgent
	case "LogLevel":
		return KeyLogLevel
	default:
		return strings.ToLower(field)
	}
}

// New returns a viper instance reading USERDIR_* variables, with defaults set.
func New() *viper.Viper {
	v := viper.New()
	SetViperEnvPrefix(v, EnvPrefix)
	v.SetDefault(KeyTimeout, time.Duration(0))
	v.SetDefault(KeyUserAgent, httpclient.DefaultConfig().UserAgent)
	for _, key := range []string{KeyBaseURL, KeyTimeout, KeyUserAgent, KeyLogLevel} {
		_ = v.BindEnv(key)
	}
	return v
}

// SetViperEnvPrefix makes v read PREFIX_KEY variables, with dashes in keys
// mapped to underscores.
func SetViperEnvPrefix(v *viper.Viper, prefix string) {
	v.SetEnvPrefix(prefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
}

// BindFlagsToViper binds flags under the keys in names (flag name → key).
// Flags not named are bound under their own name with dashes as underscores.
func BindFlagsToViper(flags *pflag.FlagSet, v *viper.Viper, names map[string]string) error {
	var result error
	flags.VisitAll(func(f *pflag.Flag) {
		key, ok := names[f.Name]
		if !ok {
			key = strings.ReplaceAll(f.Name, "-", "_")
		}
		if err := v.BindPFlag(key, f); err != nil {
			result = multierror.Append(result, fmt.Errorf("bind flag %s: %w", f.Name, err))
		}
	})
	return result
}

// DefaultPath is $XDG_CONFIG_HOME/userdir/config.yaml, falling back to
// ~/.config/userdir/config.yaml.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "userdir", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "userdir", "config.yaml")
}

// LoadDotEnv exports the variables in path that are not already set.
// A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = DotEnvFile
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return dir_err.NewConfigError(fmt.Sprintf("failed to read %s", path), err)
	}
	return nil
}

// Load reads the config file into v and returns the validated result.
// An explicit path must exist; the default path is optional.
func Load(v *viper.Viper, path string) (*Config, error) {
	if err := LoadDotEnv(DotEnvFile); err != nil {
		return nil, err
	}

	source, err := readConfigFile(v, path)
	if err != nil {
		return nil, err
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	cfg.Source = source

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readConfigFile(v *viper.Viper, path string) (string, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
		if path == "" {
			return "", nil
		}
		if _, err := os.Stat(path); err != nil {
			return "", nil
		}
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return "", dir_err.NewConfigError(fmt.Sprintf("failed to read config file %s", path), err,
			"check the file is valid YAML, or pass --config with another path")
	}
	return path, nil
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, dir_err.NewConfigError("configuration values have the wrong type", err,
			"timeout takes a duration such as 30s or 2m")
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	return &cfg, nil
}
