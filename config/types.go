package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Suggest SuggestConfig `mapstructure:"suggest"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Safety  SafetyConfig  `mapstructure:"safety"`
	Logging LoggingConfig `mapstructure:"logging"`
	Update  UpdateConfig  `mapstructure:"update"`
}

// APIConfig holds the catalog backend connection details
type APIConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	MaxRetries int           `mapstructure:"max_retries"`
	Backoff    time.Duration `mapstructure:"backoff"`
	// Timeout of zero leaves requests without a deadline
	Timeout time.Duration `mapstructure:"timeout"`
}

// SuggestConfig holds the title suggestion search settings
type SuggestConfig struct {
	Endpoint   string        `mapstructure:"endpoint"`
	Country    string        `mapstructure:"country"`
	MaxResults int           `mapstructure:"max_results"`
	APIKey     string        `mapstructure:"api_key"`
	Debounce   time.Duration `mapstructure:"debounce"`
	// RateLimit is in requests per second, zero disables it
	RateLimit float64 `mapstructure:"rate_limit"`
}

// FilterConfig contains named filter presets for list commands
type FilterConfig struct {
	Presets map[string]string `mapstructure:"presets"`
}

// SafetyConfig contains safety-related settings
type SafetyConfig struct {
	ConfirmDelete bool `mapstructure:"confirm_delete"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// UpdateConfig holds the release source for self update
type UpdateConfig struct {
	Repository string `mapstructure:"repository"`
}
