package model

import "time"

// Config is the complete runtime configuration
type Config struct {
	Safety      SafetyConfig      `yaml:"safety"`
	Output      OutputConfig      `yaml:"output"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Cache       CacheConfig       `yaml:"cache"`
	Store       StoreConfig       `yaml:"store"`
	Notify      NotifyConfig      `yaml:"notify"`
	Server      ServerConfig      `yaml:"server"`
	LLM         LLMConfig         `yaml:"llm"`
}

// SafetyConfig holds the keyword lists used by the safety monitor.
// These are deliberately separate from the hardcoded lists inside the
// assessment classifier: the monitor lists are operator-tunable and
// have historically differed (e.g. "fell", "lost", "pain" appear here
// but not in the classifier's distress tier).
type SafetyConfig struct {
	CrisisKeywords   []string `yaml:"crisis_keywords"`
	DistressKeywords []string `yaml:"distress_keywords"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	IncludeFooter bool `yaml:"include_footer"`
}

// ConcurrencyConfig controls batch analysis parallelism
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
}

// CacheConfig controls the in-memory report cache used by the server
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	TTL     time.Duration `yaml:"ttl"`
}

// StoreConfig locates the alert/report database
type StoreConfig struct {
	Path string `yaml:"path"` // SQLite database path
}

// NotifyConfig controls alert fan-out
type NotifyConfig struct {
	NATSURL    string  `yaml:"nats_url"` // empty disables publishing
	Subject    string  `yaml:"subject"`
	RatePerSec float64 `yaml:"rate_per_sec"`
	Burst      int     `yaml:"burst"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port int `yaml:"port"`
}

// LLMConfig holds optional coaching-summary settings
type LLMConfig struct {
	Provider  string `yaml:"provider"` // "openai", "ollama", "" (disabled)
	Model     string `yaml:"model"`
	APIKey    string `yaml:"-"` // from environment, never serialized
	BaseURL   string `yaml:"base_url"`
	Timeout   int    `yaml:"timeout_seconds"`
	MaxTokens int    `yaml:"max_tokens"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Safety: SafetyConfig{
			CrisisKeywords: []string{
				"suicide", "kill myself", "end it all", "want to die", "hurt myself",
			},
			DistressKeywords: []string{
				"fell", "can't breathe", "lost", "pain", "help me", "scared",
			},
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     10 * time.Minute,
		},
		Store: StoreConfig{
			Path: "memorycare.db",
		},
		Notify: NotifyConfig{
			NATSURL:    "",
			Subject:    "safety.alert.created",
			RatePerSec: 1,
			Burst:      5,
		},
		Server: ServerConfig{
			Port: 8080,
		},
		LLM: LLMConfig{
			Provider:  "",
			Timeout:   30,
			MaxTokens: 600,
		},
	}
}
