// Package llm provides centralized LLM configuration and client abstractions
// for the resume assistant.
package llm

import "os"

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for short structured answers: keyword lists
	TierLite ModelTier = "lite"
	// TierStandard is for structured output over longer input: matching, summaries
	TierStandard ModelTier = "standard"
	// TierAdvanced is for document understanding: PDF parsing
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// Config holds the model configuration for the application
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return "" // No model configured
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := &Config{
		Provider: c.Provider,
		Models:   make(map[ModelTier]string),
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return newConfig
}

// Environment variables that override the model for each tier
const (
	EnvModelLite     = "GEMINI_MODEL_LITE"
	EnvModelStandard = "GEMINI_MODEL_STANDARD"
	EnvModelAdvanced = "GEMINI_MODEL_ADVANCED"
)

// ConfigFromEnv returns the default configuration with any tier overridden
// by its environment variable.
func ConfigFromEnv() *Config {
	config := DefaultConfig()
	for tier, key := range map[ModelTier]string{
		TierLite:     EnvModelLite,
		TierStandard: EnvModelStandard,
		TierAdvanced: EnvModelAdvanced,
	} {
		if model := os.Getenv(key); model != "" {
			config = config.WithModel(tier, model)
		}
	}
	return config
}
