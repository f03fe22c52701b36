package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/joseph-ayodele/doc-processor/internal/common"
)

// Model wraps a langchaingo LLM for text generation. It implements Generator.
type Model struct {
	llm         llms.Model
	modelName   string
	temperature float64
	timeout     time.Duration
	logger      *slog.Logger
}

// NewModel creates an LLM model based on configuration.
func NewModel(cfg common.LLMConfig, logger *slog.Logger) (*Model, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var model llms.Model
	var err error

	switch cfg.Provider {
	case common.ProviderOllama:
		model, err = ollama.New(
			ollama.WithModel(cfg.Model),
			ollama.WithServerURL(cfg.OllamaHost),
		)
		if err != nil {
			return nil, fmt.Errorf("create ollama model: %w", err)
		}

	case common.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OpenAI API key required")
		}
		model, err = openai.New(
			openai.WithToken(cfg.OpenAIAPIKey),
			openai.WithModel(cfg.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("create openai model: %w", err)
		}

	case common.ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("Anthropic API key required")
		}
		model, err = anthropic.New(
			anthropic.WithToken(cfg.AnthropicAPIKey),
			anthropic.WithModel(cfg.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("create anthropic model: %w", err)
		}

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}

	return &Model{
		llm:         model,
		modelName:   cfg.Model,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
		logger:      logger.With("component", "llm"),
	}, nil
}

// Generate produces text for a single prompt. The call blocks until the model
// responds or the configured timeout expires.
func (m *Model) Generate(ctx context.Context, prompt string) (string, error) {
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	start := time.Now()
	response, err := llms.GenerateFromSinglePrompt(ctx, m.llm, prompt,
		llms.WithTemperature(m.temperature),
	)
	if err != nil {
		m.logger.Error("llm.generate.failed",
			"model", m.modelName,
			"prompt_bytes", len(prompt),
			"elapsed_ms", time.Since(start).Milliseconds(),
			"error", err,
		)
		return "", fmt.Errorf("generate: %w", err)
	}

	m.logger.Debug("llm.generate.ok",
		"model", m.modelName,
		"prompt_bytes", len(prompt),
		"response_bytes", len(response),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return response, nil
}

// ModelName returns the configured model identifier.
func (m *Model) ModelName() string {
	return m.modelName
}
