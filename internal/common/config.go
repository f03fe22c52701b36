package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	LLM     LLMConfig
	Extract ExtractConfig
	Log     LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	HTTPAddr    string
	MaxUploadMB int
}

// LLMConfig holds language-model configuration
type LLMConfig struct {
	Provider        string // "ollama" | "openai" | "anthropic"
	Model           string
	OllamaHost      string
	OpenAIAPIKey    string
	AnthropicAPIKey string
	Temperature     float64
	Timeout         time.Duration
}

// ExtractConfig holds PDF extraction configuration
type ExtractConfig struct {
	MaxPages int // 0 = no limit
}

// LogConfig holds logging configuration
type LogConfig struct {
	File  string
	Level string
}

// LLM provider names accepted in LLM_PROVIDER.
const (
	ProviderOllama    = "ollama"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPAddr:    getEnv("HTTP_ADDR", ":8080"),
			MaxUploadMB: getEnvAsInt("MAX_UPLOAD_MB", 32),
		},
		LLM: LLMConfig{
			Provider:        getEnv("LLM_PROVIDER", ProviderOllama),
			Model:           getEnv("LLM_MODEL", "llama3"),
			OllamaHost:      getEnv("OLLAMA_HOST", "http://localhost:11434"),
			OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
			AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
			Temperature:     getEnvAsFloat64("LLM_TEMPERATURE", 0.0),
			Timeout:         getEnvAsDuration("LLM_TIMEOUT", 120*time.Second),
		},
		Extract: ExtractConfig{
			MaxPages: getEnvAsInt("EXTRACT_MAX_PAGES", 0),
		},
		Log: LogConfig{
			File:  getEnv("LOG_FILE", "./logs/doc-processor.log"),
			Level: getEnv("LOG_LEVEL", "INFO"),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// ValidateConfig validates the loaded configuration
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderOllama:
		if c.LLM.OllamaHost == "" {
			return NewAppError(CodeConfig, "OLLAMA_HOST is required", ErrInvalidInput)
		}
	case ProviderOpenAI:
		if c.LLM.OpenAIAPIKey == "" {
			return NewAppError(CodeConfig, "OPENAI_API_KEY is required", ErrInvalidInput)
		}
	case ProviderAnthropic:
		if c.LLM.AnthropicAPIKey == "" {
			return NewAppError(CodeConfig, "ANTHROPIC_API_KEY is required", ErrInvalidInput)
		}
	default:
		return NewAppError(CodeConfig, "unsupported LLM_PROVIDER: "+c.LLM.Provider, ErrInvalidInput)
	}
	if c.LLM.Model == "" {
		return NewAppError(CodeConfig, "LLM_MODEL is required", ErrInvalidInput)
	}
	if c.Server.HTTPAddr == "" {
		return NewAppError(CodeConfig, "HTTP_ADDR is required", ErrInvalidInput)
	}
	return nil
}
