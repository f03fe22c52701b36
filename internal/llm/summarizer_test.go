package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/doc-processor/internal/common"
)

func TestSummarizeReturnsRawOutput(t *testing.T) {
	gen := &fakeGenerator{response: "  A summary, verbatim.\n"}
	s := NewSummarizer(gen, SummarizerConfig{}, nil)

	out, err := s.Summarize(context.Background(), "document text")
	require.NoError(t, err)
	assert.Equal(t, "  A summary, verbatim.\n", out, "output must not be post-processed")

	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "document text")
	assert.Contains(t, gen.prompts[0], "concise summary")
}

func TestSummarizeWrapsGenerationFailure(t *testing.T) {
	cause := errors.New("model unavailable")
	gen := &fakeGenerator{err: cause}
	s := NewSummarizer(gen, SummarizerConfig{}, nil)

	_, err := s.Summarize(context.Background(), "text")
	require.Error(t, err)
	assert.True(t, common.IsGenerationError(err))
	assert.Contains(t, err.Error(), "model unavailable")
}

func TestSummarizeCustomTemplate(t *testing.T) {
	gen := &fakeGenerator{response: "ok"}
	s := NewSummarizer(gen, SummarizerConfig{Template: "Summarize briefly: %s"}, nil)

	_, err := s.Summarize(context.Background(), "body")
	require.NoError(t, err)
	assert.Equal(t, "Summarize briefly: body", gen.prompts[0])
}
