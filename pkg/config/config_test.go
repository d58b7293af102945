package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/CodeMonkeyCybersecurity/userdir/pkg/dir_err"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/testutil"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// isolate keeps the developer's own config, .env and USERDIR_* variables
// out of the test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	for _, key := range []string{"BASE_URL", "TIMEOUT", "USER_AGENT", "LOG_LEVEL"} {
		t.Setenv(EnvPrefix+"_"+key, "")
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoadFromExplicitFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "userdir.yaml")
	writeFile(t, path, "base_url: https://crudcrud.com/api/abc/\ntimeout: 30s\nlog_level: debug\n")

	cfg, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, "https://crudcrud.com/api/abc", cfg.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "userdir/1.0", cfg.UserAgent)
	assert.Equal(t, path, cfg.Source)

	hc := cfg.HTTPConfig()
	assert.Equal(t, 30*time.Second, hc.Timeout)
	assert.Equal(t, "userdir/1.0", hc.UserAgent)
}

func TestLoadDefaultPathIsOptional(t *testing.T) {
	isolate(t)
	t.Setenv("USERDIR_BASE_URL", "http://localhost:8089/api/t")

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8089/api/t", cfg.BaseURL)
	assert.Empty(t, cfg.Source)
	assert.Zero(t, cfg.Timeout, "no timeout unless asked for")
}

func TestLoadDefaultPathIsRead(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "xdg", "userdir", "config.yaml"), "base_url: https://crudcrud.com/api/fromfile\n")

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, "https://crudcrud.com/api/fromfile", cfg.BaseURL)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	dir := isolate(t)

	_, err := Load(New(), filepath.Join(dir, "nope.yaml"))
	require.Error(t, err)
	assert.Equal(t, dir_err.CategoryValidation, dir_err.Classify(err))
}

func TestEnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "userdir.yaml")
	writeFile(t, path, "base_url: https://crudcrud.com/api/file\n")
	t.Setenv("USERDIR_BASE_URL", "https://crudcrud.com/api/env")
	t.Setenv("USERDIR_TIMEOUT", "5s")

	cfg, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, "https://crudcrud.com/api/env", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestDotEnvFillsUnsetVariables(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, DotEnvFile), "USERDIR_BASE_URL=https://crudcrud.com/api/dotenv\n")
	// t.Setenv above left the variable set but empty; godotenv only fills unset ones.
	require.NoError(t, os.Unsetenv("USERDIR_BASE_URL"))
	t.Cleanup(func() { _ = os.Unsetenv("USERDIR_BASE_URL") })

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, "https://crudcrud.com/api/dotenv", cfg.BaseURL)
}

func TestFlagsOverrideEnv(t *testing.T) {
	isolate(t)
	t.Setenv("USERDIR_BASE_URL", "https://crudcrud.com/api/env")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("base-url", "", "")
	flags.Duration("timeout", 0, "")
	flags.String("log-level", "", "")
	require.NoError(t, flags.Parse([]string{"--base-url", "https://crudcrud.com/api/flag", "--timeout", "2m"}))

	v := New()
	require.NoError(t, BindFlagsToViper(flags, v, nil))

	cfg, err := Load(v, "")
	require.NoError(t, err)
	assert.Equal(t, "https://crudcrud.com/api/flag", cfg.BaseURL)
	assert.Equal(t, 2*time.Minute, cfg.Timeout)
}

func TestBindFlagsToViperUsesNameMap(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("url", "", "")
	require.NoError(t, flags.Parse([]string{"--url", "https://crudcrud.com/api/x"}))

	v := New()
	require.NoError(t, BindFlagsToViper(flags, v, map[string]string{"url": KeyBaseURL}))
	assert.Equal(t, "https://crudcrud.com/api/x", v.GetString(KeyBaseURL))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr []string
	}{
		{name: "valid", cfg: Config{BaseURL: "https://crudcrud.com/api/abc"}},
		{name: "valid with level", cfg: Config{BaseURL: "http://localhost:8089", LogLevel: "WARN"}},
		{name: "missing base url", cfg: Config{}, wantErr: []string{"base_url is required"}},
		{name: "not http", cfg: Config{BaseURL: "ftp://crudcrud.com/api"}, wantErr: []string{"base_url must be an absolute http or https URL"}},
		{
			name:    "several problems",
			cfg:     Config{BaseURL: "crudcrud", Timeout: -time.Second, LogLevel: "loud"},
			wantErr: []string{"base_url must be", "timeout must not be negative", `log_level must be one of`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, dir_err.CategoryValidation, dir_err.Classify(err))
			for _, want := range tt.wantErr {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "nested", "config.yaml")

	want := &Config{BaseURL: "https://crudcrud.com/api/abc", Timeout: 45 * time.Second, LogLevel: "info"}
	require.NoError(t, Save(path, want))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, want.BaseURL, got.BaseURL)
	assert.Equal(t, want.Timeout, got.Timeout)
	assert.Equal(t, want.LogLevel, got.LogLevel)
}

func TestSaveRejectsInvalid(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.yaml")

	require.Error(t, Save(path, &Config{}))
	assert.NoFileExists(t, path)
}

func TestMarshalOmitsZeroTimeout(t *testing.T) {
	data, err := Marshal(&Config{BaseURL: "https://crudcrud.com/api/abc"})
	require.NoError(t, err)
	assert.Equal(t, "base_url: https://crudcrud.com/api/abc\n", string(data))
}

func TestWatchReportsChanges(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "base_url: https://crudcrud.com/api/first\n")

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	var mu sync.Mutex
	var seen []string
	require.NoError(t, Watch(ctx, path, zaptest.NewLogger(t), func(cfg *Config) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, cfg.BaseURL)
	}))

	// an invalid edit is skipped
	writeFile(t, path, "base_url: not-a-url\n")
	time.Sleep(3 * watchSettle)
	writeFile(t, path, "base_url: https://crudcrud.com/api/second\n")

	testutil.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) > 0 && seen[len(seen)-1] == "https://crudcrud.com/api/second"
	}, 5*time.Second, 20*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.NotContains(t, seen, "not-a-url")
}

func TestWatchMissingDirectory(t *testing.T) {
	dir := isolate(t)
	err := Watch(context.Background(), filepath.Join(dir, "absent", "config.yaml"), nil, func(*Config) {})
	assert.Error(t, err)
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
