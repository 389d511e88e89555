package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultMaxDepth bounds how deep a dependency graph may nest before
// resolution gives up.
const DefaultMaxDepth = 64

// Environment variables read by Load and LoadFile.
const (
	EnvLogLevel     = "MAGICMOCK_LOG_LEVEL"
	EnvMaxDepth     = "MAGICMOCK_MAX_DEPTH"
	EnvStrictValues = "MAGICMOCK_STRICT_VALUES"
)

// Config holds resolver settings loaded from YAML and env.
type Config struct {
	// LogLevel enables resolver logging (DEBUG, INFO, WARN, ERROR). Empty
	// keeps the resolver silent.
	LogLevel string `yaml:"log_level"`

	// MaxDepth is the deepest a dependency graph may nest.
	MaxDepth int `yaml:"max_depth"`

	// StrictValues makes unbound primitive parameters an error instead of
	// resolving them to their zero value.
	StrictValues bool `yaml:"strict_values"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{MaxDepth: DefaultMaxDepth}
}

// Load reads .env (if present) and applies environment variables on top of
// the defaults.
func Load(envFiles ...string) *Config {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: most test directories carry no .env
	_ = godotenv.Load(files...)

	cfg := Default()
	applyEnv(cfg)
	return cfg
}

// LoadFile reads a YAML config file, then applies .env and environment
// overrides the same way Load does.
func LoadFile(path string, envFiles ...string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if len(envFiles) > 0 {
		_ = godotenv.Load(envFiles...)
	}
	applyEnv(cfg)

	if cfg.MaxDepth <= 0 {
		return nil, fmt.Errorf("config: max_depth must be positive, got %d", cfg.MaxDepth)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.LogLevel = strings.ToUpper(env(EnvLogLevel, cfg.LogLevel))
	cfg.MaxDepth = GetInt(EnvMaxDepth, cfg.MaxDepth)
	cfg.StrictValues = GetBool(EnvStrictValues, cfg.StrictValues)
}

// Get returns a raw env value, falling back to defaultVal.
func Get(key, defaultVal string) string {
	return env(key, defaultVal)
}

// GetInt returns a positive int env value.
func GetInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil || i <= 0 {
		return defaultVal
	}
	return i
}

// GetBool returns a bool env value.
func GetBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal
	}
	return b
}

// ── helpers ─────────────────────────────────────────────────────────────────

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
