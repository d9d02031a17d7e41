// Package config provides configuration loading and validation for the
// server and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/storage"
)

// Defaults applied by Default and MergeWithDefaults
const (
	DefaultPort        = 8080
	DefaultStorageKind = string(storage.KindFile)
	DefaultStorageDir  = "data"
)

// Config represents the application configuration that can be loaded from a
// JSON file or the environment. All fields are optional; missing values use
// defaults or must be provided via CLI flags.
type Config struct {
	// Server
	Port int `json:"port,omitempty"` // HTTP listen port

	// Storage
	StorageKind string `json:"storage_kind,omitempty"` // memory, file, postgres or redis
	StorageDir  string `json:"storage_dir,omitempty"`  // Directory for the file backend
	StorageKey  string `json:"storage_key,omitempty"`  // Record key used by the CLI
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	RedisAddr   string `json:"redis_addr,omitempty"`   // Redis host:port
	RedisTTL    string `json:"redis_ttl,omitempty"`    // Record expiry, e.g. "720h"; empty keeps records forever
	MemoryQuota int    `json:"memory_quota,omitempty"` // Byte quota for the memory backend; 0 is unlimited

	// Model
	APIKey        string `json:"api_key,omitempty"`        // Gemini API key
	ModelLite     string `json:"model_lite,omitempty"`     // Overrides the lite tier model
	ModelStandard string `json:"model_standard,omitempty"` // Overrides the standard tier model
	ModelAdvanced string `json:"model_advanced,omitempty"` // Overrides the advanced tier model

	// Rendering
	Template   string `json:"template,omitempty"`    // Default template variant
	ChromePath string `json:"chrome_path,omitempty"` // Chrome binary for PDF export
	PDFTimeout string `json:"pdf_timeout,omitempty"` // Print timeout, e.g. "30s"

	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Port:        DefaultPort,
		StorageKind: DefaultStorageKind,
		StorageDir:  DefaultStorageDir,
		Template:    string(rendering.DefaultVariant),
		PDFTimeout:  rendering.DefaultPDFTimeout.String(),
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv reads configuration from environment variables. Unset variables
// leave fields empty so the result can be merged with a file config.
func FromEnv() (*Config, error) {
	cfg := &Config{
		StorageKind:   os.Getenv("STORAGE_KIND"),
		StorageDir:    os.Getenv("STORAGE_DIR"),
		StorageKey:    os.Getenv("STORAGE_KEY"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisTTL:      os.Getenv("REDIS_TTL"),
		APIKey:        os.Getenv("GEMINI_API_KEY"),
		ModelLite:     os.Getenv(llm.EnvModelLite),
		ModelStandard: os.Getenv(llm.EnvModelStandard),
		ModelAdvanced: os.Getenv(llm.EnvModelAdvanced),
		Template:      os.Getenv("RESUME_TEMPLATE"),
		ChromePath:    os.Getenv("CHROME_PATH"),
		PDFTimeout:    os.Getenv("PDF_TIMEOUT"),
	}

	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %v", err)
		}
		cfg.Port = p
	}
	if quota := os.Getenv("MEMORY_QUOTA"); quota != "" {
		q, err := strconv.Atoi(quota)
		if err != nil {
			return nil, fmt.Errorf("invalid MEMORY_QUOTA: %v", err)
		}
		cfg.MemoryQuota = q
	}

	return cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.MemoryQuota < 0 {
		return fmt.Errorf("config error: 'memory_quota' must be non-negative")
	}

	switch storage.Kind(c.StorageKind) {
	case "", storage.KindMemory, storage.KindFile:
	case storage.KindPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config error: 'database_url' is required for postgres storage")
		}
	case storage.KindRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("config error: 'redis_addr' is required for redis storage")
		}
	default:
		return fmt.Errorf("config error: unknown storage kind %q", c.StorageKind)
	}

	if c.Template != "" {
		if _, err := rendering.ParseVariant(c.Template); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}

	for name, value := range map[string]string{"redis_ttl": c.RedisTTL, "pdf_timeout": c.PDFTimeout} {
		if value == "" {
			continue
		}
		if d, err := time.ParseDuration(value); err != nil || d < 0 {
			return fmt.Errorf("config error: '%s' must be a non-negative duration, got %q", name, value)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to layer file values under env values, and both under CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	strs := []struct {
		field    *string
		fallback string
	}{
		{&result.StorageKind, defaults.StorageKind},
		{&result.StorageDir, defaults.StorageDir},
		{&result.StorageKey, defaults.StorageKey},
		{&result.DatabaseURL, defaults.DatabaseURL},
		{&result.RedisAddr, defaults.RedisAddr},
		{&result.RedisTTL, defaults.RedisTTL},
		{&result.APIKey, defaults.APIKey},
		{&result.ModelLite, defaults.ModelLite},
		{&result.ModelStandard, defaults.ModelStandard},
		{&result.ModelAdvanced, defaults.ModelAdvanced},
		{&result.Template, defaults.Template},
		{&result.ChromePath, defaults.ChromePath},
		{&result.PDFTimeout, defaults.PDFTimeout},
	}
	for _, s := range strs {
		if *s.field == "" {
			*s.field = s.fallback
		}
	}

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.MemoryQuota == 0 {
		result.MemoryQuota = defaults.MemoryQuota
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Resolve layers the environment over an optional config file over the
// built-in defaults, then validates the result.
func Resolve(path string) (*Config, error) {
	env, err := FromEnv()
	if err != nil {
		return nil, err
	}

	base := Default()
	if path != "" {
		file, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		base = file.MergeWithDefaults(base)
	}

	merged := env.MergeWithDefaults(base)
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// StorageConfig returns the storage backend settings
func (c *Config) StorageConfig() storage.Config {
	ttl, _ := time.ParseDuration(c.RedisTTL)
	return storage.Config{
		Kind:        storage.Kind(c.StorageKind),
		Dir:         c.StorageDir,
		DatabaseURL: c.DatabaseURL,
		RedisAddr:   c.RedisAddr,
		RedisTTL:    ttl,
		MemoryQuota: c.MemoryQuota,
	}
}

// LLMConfig returns the model configuration with any tier overrides applied
func (c *Config) LLMConfig() *llm.Config {
	cfg := llm.DefaultConfig()
	for tier, model := range map[llm.ModelTier]string{
		llm.TierLite:     c.ModelLite,
		llm.TierStandard: c.ModelStandard,
		llm.TierAdvanced: c.ModelAdvanced,
	} {
		if model != "" {
			cfg = cfg.WithModel(tier, model)
		}
	}
	return cfg
}

// PDFPrinter returns the Chrome printer for PDF export
func (c *Config) PDFPrinter() *rendering.ChromePrinter {
	timeout, _ := time.ParseDuration(c.PDFTimeout)
	return &rendering.ChromePrinter{
		ExecPath: c.ChromePath,
		Timeout:  timeout,
		Verbose:  c.Verbose,
	}
}
