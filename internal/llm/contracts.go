package llm

import "context"

// Generator is the minimal language-model interface the pipeline stages depend
// on: one rendered prompt in, raw generated text out.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
