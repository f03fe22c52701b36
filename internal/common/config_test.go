package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"HTTP_ADDR", "MAX_UPLOAD_MB", "LLM_PROVIDER", "LLM_MODEL",
		"LLM_TEMPERATURE", "LLM_TIMEOUT", "EXTRACT_MAX_PAGES",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	assert.Equal(t, ":8080", cfg.Server.HTTPAddr)
	assert.Equal(t, 32, cfg.Server.MaxUploadMB)
	assert.Equal(t, ProviderOllama, cfg.LLM.Provider)
	assert.Equal(t, 0.0, cfg.LLM.Temperature)
	assert.Equal(t, 120*time.Second, cfg.LLM.Timeout)
	assert.Zero(t, cfg.Extract.MaxPages)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("LLM_MODEL", "gpt-4o-mini")
	t.Setenv("LLM_TEMPERATURE", "0.2")
	t.Setenv("LLM_TIMEOUT", "30s")
	t.Setenv("MAX_UPLOAD_MB", "8")

	cfg := LoadConfig()
	assert.Equal(t, ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, 0.2, cfg.LLM.Temperature)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 8, cfg.Server.MaxUploadMB)
}

func TestValidateMissingProviderKey(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{HTTPAddr: ":8080"},
		LLM:    LLMConfig{Provider: ProviderOpenAI, Model: "gpt-4o-mini"},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, HasCode(err, CodeConfig))
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestValidateUnknownProvider(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{HTTPAddr: ":8080"},
		LLM:    LLMConfig{Provider: "bedrock", Model: "x"},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported LLM_PROVIDER")
}

func TestValidateOllamaDefaultsPass(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{HTTPAddr: ":8080"},
		LLM:    LLMConfig{Provider: ProviderOllama, Model: "llama3", OllamaHost: "http://localhost:11434"},
	}
	assert.NoError(t, cfg.Validate())
}
