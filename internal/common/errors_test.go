package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorMessage(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewGenerationError("error generating summary", cause)

	assert.Equal(t, "GENERATION_ERROR: error generating summary: connection refused", err.Error())
	assert.Same(t, cause, errors.Unwrap(err))
}

func TestAppErrorMessageWithoutCause(t *testing.T) {
	err := NewAppError(CodeConfig, "missing OPENAI_API_KEY", nil)
	assert.Equal(t, "CONFIG_ERROR: missing OPENAI_API_KEY", err.Error())
}

func TestHasCodeThroughWrapping(t *testing.T) {
	err := NewExtractionError("error extracting text from PDF", errors.New("bad xref"))
	wrapped := WrapError(err, "text extraction stage")

	require.Error(t, wrapped)
	assert.Contains(t, wrapped.Error(), "text extraction stage")
	assert.True(t, IsExtractionError(wrapped))
	assert.False(t, IsGenerationError(wrapped))
}

func TestHasCodeNestedAppErrors(t *testing.T) {
	inner := NewGenerationError("error extracting fields", errors.New("timeout"))
	outer := NewAppError(CodeInput, "request rejected", inner)

	assert.True(t, HasCode(outer, CodeInput))
	assert.True(t, HasCode(outer, CodeGeneration))
	assert.False(t, HasCode(outer, CodeExtraction))
}

func TestWrapErrorNil(t *testing.T) {
	assert.NoError(t, WrapError(nil, "whatever"))
}
