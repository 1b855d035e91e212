package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:    "http://localhost:5000",
			MaxRetries: 3,
			Backoff:    400 * time.Millisecond,
		},
		Suggest: SuggestConfig{
			MaxResults: 40,
			Debounce:   400 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing base url", mutate: func(c *Config) { c.API.BaseURL = "" }, wantErr: "api.base_url is required"},
		{name: "relative base url", mutate: func(c *Config) { c.API.BaseURL = "/api" }, wantErr: "absolute URL"},
		{name: "negative retries", mutate: func(c *Config) { c.API.MaxRetries = -1 }, wantErr: "api.max_retries"},
		{name: "negative backoff", mutate: func(c *Config) { c.API.Backoff = -time.Second }, wantErr: "api.backoff"},
		{name: "too many results", mutate: func(c *Config) { c.Suggest.MaxResults = 41 }, wantErr: "suggest.max_results"},
		{name: "negative rate limit", mutate: func(c *Config) { c.Suggest.RateLimit = -1 }, wantErr: "suggest.rate_limit"},
		{name: "empty preset", mutate: func(c *Config) { c.Filter.Presets = map[string]string{"austen": " "} }, wantErr: "filter preset 'austen'"},
		{name: "bad level", mutate: func(c *Config) { c.Logging.Level = "trace" }, wantErr: "invalid logging level: trace"},
		{name: "bad format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: "invalid logging format: xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// isolate runs the test in an empty working and home directory
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	return dir
}

func TestLoadDefaultsWithoutConfigFile(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000", cfg.API.BaseURL)
	assert.Equal(t, 3, cfg.API.MaxRetries)
	assert.Equal(t, 400*time.Millisecond, cfg.API.Backoff)
	assert.Zero(t, cfg.API.Timeout)
	assert.Equal(t, "https://www.googleapis.com/books/v1/volumes", cfg.Suggest.Endpoint)
	assert.Equal(t, "US", cfg.Suggest.Country)
	assert.Equal(t, 40, cfg.Suggest.MaxResults)
	assert.Equal(t, 400*time.Millisecond, cfg.Suggest.Debounce)
	assert.Zero(t, cfg.Suggest.RateLimit)
	assert.True(t, cfg.Safety.ConfirmDelete)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "s0up4200/librarr", cfg.Update.Repository)
}

func TestLoadFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "librarr.yaml")
	content := `
api:
  base_url: https://library.example.com
  max_retries: 5
  backoff: 1s
  timeout: 30s
suggest:
  max_results: 10
  rate_limit: 2.5
filter:
  presets:
    austen: 'contains(Author, "austen")'
safety:
  confirm_delete: false
logging:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://library.example.com", cfg.API.BaseURL)
	assert.Equal(t, 5, cfg.API.MaxRetries)
	assert.Equal(t, time.Second, cfg.API.Backoff)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, 10, cfg.Suggest.MaxResults)
	assert.Equal(t, 2.5, cfg.Suggest.RateLimit)
	assert.Equal(t, "US", cfg.Suggest.Country, "unset keys keep defaults")
	assert.Equal(t, `contains(Author, "austen")`, cfg.Filter.Presets["austen"])
	assert.False(t, cfg.Safety.ConfirmDelete)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config")
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("LIBRARR_API_BASE_URL", "https://env.example.com")
	t.Setenv("LIBRARR_API_MAX_RETRIES", "1")
	t.Setenv("LIBRARR_SUGGEST_API_KEY", "secret")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com", cfg.API.BaseURL)
	assert.Equal(t, 1, cfg.API.MaxRetries)
	assert.Equal(t, "secret", cfg.Suggest.APIKey)
}

func TestLoadDotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LIBRARR_LOGGING_LEVEL=warn\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("LIBRARR_LOGGING_LEVEL") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadInvalidEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("LIBRARR_LOGGING_FORMAT", "xml")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}
