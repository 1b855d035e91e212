package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, as in LIBRARR_API_BASE_URL
const EnvPrefix = "LIBRARR"

// Load loads the configuration from file, .env and the environment.
// A missing config file is not an error when configPath is empty.
func Load(configPath string) (*Config, error) {
	// .env only fills variables that are not already set
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env: %w", err)
	}

	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath(".")

		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".librarr"))
		}

		v.AddConfigPath("/etc/librarr/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Backend defaults
	v.SetDefault("api.base_url", "http://localhost:5000")
	v.SetDefault("api.max_retries", 3)
	v.SetDefault("api.backoff", "400ms")
	v.SetDefault("api.timeout", "0s")

	// Suggestion defaults
	v.SetDefault("suggest.endpoint", "https://www.googleapis.com/books/v1/volumes")
	v.SetDefault("suggest.country", "US")
	v.SetDefault("suggest.max_results", 40)
	v.SetDefault("suggest.api_key", "")
	v.SetDefault("suggest.debounce", "400ms")
	v.SetDefault("suggest.rate_limit", 0)

	// Safety defaults
	v.SetDefault("safety.confirm_delete", true)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)

	v.SetDefault("update.repository", "s0up4200/librarr")
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if u, err := url.Parse(cfg.API.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url must be an absolute URL: %s", cfg.API.BaseURL)
	}

	if cfg.API.MaxRetries < 0 {
		return fmt.Errorf("api.max_retries must not be negative")
	}
	if cfg.API.Backoff < 0 {
		return fmt.Errorf("api.backoff must not be negative")
	}
	if cfg.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative")
	}

	if cfg.Suggest.MaxResults < 1 || cfg.Suggest.MaxResults > 40 {
		return fmt.Errorf("suggest.max_results must be between 1 and 40")
	}
	if cfg.Suggest.Debounce < 0 {
		return fmt.Errorf("suggest.debounce must not be negative")
	}
	if cfg.Suggest.RateLimit < 0 {
		return fmt.Errorf("suggest.rate_limit must not be negative")
	}

	for name, expression := range cfg.Filter.Presets {
		if strings.TrimSpace(expression) == "" {
			return fmt.Errorf("filter preset '%s' has an empty expression", name)
		}
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
