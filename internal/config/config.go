package config

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	// Server (HTTP transport mode)
	Host        string `json:"host"`
	Port        int    `json:"port"`
	Environment string `json:"environment"`
	LogLevel    string `json:"log_level"`
	Debug       bool   `json:"debug"`

	// CORS
	CORSOrigins []string `json:"cors_origins"`

	// Auth
	APIKeyHeader string   `json:"api_key_header"`
	APIKeys      []string `json:"api_keys"`
	EnableAuth   bool     `json:"enable_auth"`

	// Rate Limiting
	RateLimitPerMinute int `json:"rate_limit_per_minute"`

	// Confirmation log
	ConfirmationLogPath string `json:"confirmation_log_path"`

	// Elicitation
	DefaultTimeoutMs int `json:"default_timeout_ms"`
}

func Load() (*Config, error) {
	cfg := &Config{
		Host:                DefaultHost,
		Port:                DefaultPort,
		Environment:         DefaultEnvironment,
		LogLevel:            DefaultLogLevel,
		CORSOrigins:         DefaultCORSOrigins,
		APIKeyHeader:        "X-API-Key",
		EnableAuth:          true,
		RateLimitPerMinute:  DefaultRateLimitPerMinute,
		ConfirmationLogPath: DefaultConfirmationLogPath,
		DefaultTimeoutMs:    DefaultElicitationTimeoutMs,
	}

	// Load from JSON config file if specified
	if path := getEnv("PARLEY_CONFIG", ""); path != "" {
		if err := loadJSON(path, cfg); err != nil {
			return nil, err
		}
	}

	// Environment overrides
	applyEnvOverrides(cfg)

	cfg.SetDefaults()

	return cfg, nil
}

// SetDefaults normalizes values that arrived from file or environment.
// An out-of-range elicitation timeout falls back to the default rather
// than failing startup.
func (c *Config) SetDefaults() {
	if c.DefaultTimeoutMs == 0 {
		c.DefaultTimeoutMs = DefaultElicitationTimeoutMs
	}
	if c.DefaultTimeoutMs < MinElicitationTimeoutMs || c.DefaultTimeoutMs > MaxElicitationTimeoutMs {
		c.DefaultTimeoutMs = DefaultElicitationTimeoutMs
	}
	if c.ConfirmationLogPath == "" {
		c.ConfirmationLogPath = DefaultConfirmationLogPath
	}
	if c.RateLimitPerMinute <= 0 {
		c.RateLimitPerMinute = DefaultRateLimitPerMinute
	}
	if c.Debug {
		c.LogLevel = "debug"
	}
}

func loadJSON(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, cfg)
}

func applyEnvOverrides(cfg *Config) {
	if v := getEnv("PARLEY_HOST", ""); v != "" {
		cfg.Host = v
	}
	if v := getEnv("PARLEY_PORT", ""); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := getEnv("PARLEY_ENV", ""); v != "" {
		cfg.Environment = v
	}
	if v := getEnv("PARLEY_LOG_LEVEL", ""); v != "" {
		cfg.LogLevel = v
	}
	if v := getEnv("PARLEY_DEBUG", ""); v != "" {
		cfg.Debug = v == "true" || v == "1"
	}
	if v := getEnv("PARLEY_LOG_PATH", ""); v != "" {
		cfg.ConfirmationLogPath = v
	}
	if v := getEnv("PARLEY_DEFAULT_TIMEOUT_MS", ""); v != "" {
		if t, err := strconv.Atoi(v); err == nil {
			cfg.DefaultTimeoutMs = t
		}
	}
	if v := getEnv("PARLEY_API_KEYS", ""); v != "" {
		cfg.APIKeys = strings.Split(v, ",")
	}
	if v := getEnv("RATE_LIMIT_PER_MINUTE", ""); v != "" {
		if r, err := strconv.Atoi(v); err == nil {
			cfg.RateLimitPerMinute = r
		}
	}
	if v := getEnv("ENABLE_AUTH", ""); v != "" {
		cfg.EnableAuth = v == "true" || v == "1"
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
