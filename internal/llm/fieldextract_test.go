package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/doc-processor/internal/common"
	"github.com/joseph-ayodele/doc-processor/internal/entity"
)

// fakeGenerator returns a canned response (or error) and records prompts.
type fakeGenerator struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func TestExtractFieldsValidFencedJSON(t *testing.T) {
	gen := &fakeGenerator{
		response: "```json\n{\"date\":\"2024-03-20\",\"title\":\"Memo\",\"author\":\"A\",\"recipient\":\"B\",\"main_points\":[\"x\",\"y\"],\"summary\":\"s\"}\n```",
	}
	fe := NewFieldExtractor(gen, FieldExtractorConfig{}, nil)

	rec, err := fe.ExtractFields(context.Background(), "memo body")
	require.NoError(t, err)
	require.False(t, rec.Degraded())

	assert.Equal(t, map[string]any{
		"date":        "2024-03-20",
		"title":       "Memo",
		"author":      "A",
		"recipient":   "B",
		"main_points": []any{"x", "y"},
		"summary":     "s",
	}, rec.Fields)
}

func TestExtractFieldsPromptEmbedsTextAndKeys(t *testing.T) {
	gen := &fakeGenerator{response: `{}`}
	fe := NewFieldExtractor(gen, FieldExtractorConfig{}, nil)

	_, err := fe.ExtractFields(context.Background(), "the quick brown fox")
	require.NoError(t, err)
	require.Len(t, gen.prompts, 1)

	prompt := gen.prompts[0]
	assert.Contains(t, prompt, "the quick brown fox")
	for _, key := range entity.FieldKeys {
		assert.Contains(t, prompt, key)
	}
}

func TestExtractFieldsNonJSONRecovered(t *testing.T) {
	gen := &fakeGenerator{response: "Sorry, I cannot comply."}
	fe := NewFieldExtractor(gen, FieldExtractorConfig{}, nil)

	rec, err := fe.ExtractFields(context.Background(), "text")
	require.NoError(t, err, "parse failure must be recovered, not raised")
	require.True(t, rec.Degraded())

	assert.Equal(t, entity.ParseFailureMessage, rec.Failure.Error)
	assert.Equal(t, "Sorry, I cannot comply.", rec.Failure.RawResponse)
	assert.Equal(t, entity.EmptyDocumentFields(), rec.Failure.ParsedFields)
}

func TestExtractFieldsRawResponseTruncation(t *testing.T) {
	long := strings.Repeat("a", 500)
	gen := &fakeGenerator{response: long}
	fe := NewFieldExtractor(gen, FieldExtractorConfig{}, nil)

	rec, err := fe.ExtractFields(context.Background(), "text")
	require.NoError(t, err)
	require.True(t, rec.Degraded())

	assert.Len(t, rec.Failure.RawResponse, entity.RawResponseLimit+3)
	assert.Equal(t, strings.Repeat("a", entity.RawResponseLimit)+"...", rec.Failure.RawResponse)
}

func TestExtractFieldsIdempotent(t *testing.T) {
	for _, response := range []string{
		"```json\n{\"title\":\"Memo\",\"main_points\":[\"x\"]}\n```",
		"not json at all",
	} {
		gen := &fakeGenerator{response: response}
		fe := NewFieldExtractor(gen, FieldExtractorConfig{}, nil)

		first, err := fe.ExtractFields(context.Background(), "text")
		require.NoError(t, err)
		second, err := fe.ExtractFields(context.Background(), "text")
		require.NoError(t, err)

		assert.Equal(t, first, second)
	}
}

func TestExtractFieldsGenerationFailureIsFatal(t *testing.T) {
	cause := errors.New("connection refused")
	gen := &fakeGenerator{err: cause}
	fe := NewFieldExtractor(gen, FieldExtractorConfig{}, nil)

	_, err := fe.ExtractFields(context.Background(), "text")
	require.Error(t, err)
	assert.True(t, common.IsGenerationError(err))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestExtractFieldsMissingKeysTolerated(t *testing.T) {
	gen := &fakeGenerator{response: `{"title":"only a title","extra":"kept"}`}
	fe := NewFieldExtractor(gen, FieldExtractorConfig{}, nil)

	rec, err := fe.ExtractFields(context.Background(), "text")
	require.NoError(t, err)
	require.False(t, rec.Degraded())
	assert.Equal(t, "only a title", rec.Fields["title"])
	assert.Equal(t, "kept", rec.Fields["extra"])
	_, hasDate := rec.Fields["date"]
	assert.False(t, hasDate, "absent keys stay absent")
}
