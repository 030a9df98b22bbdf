package ai

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

func TestMapGenerateError_APIStatus(t *testing.T) {
	err := mapGenerateError(fmt.Errorf("generate: %w", &googleapi.Error{Code: 400, Message: "API key not valid. Please pass a valid API key."}))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 400, apiErr.Status)
	assert.Equal(t, "API key not valid. Please pass a valid API key.", apiErr.Message)
}

func TestMapGenerateError_StatusWithoutMessage(t *testing.T) {
	err := mapGenerateError(&googleapi.Error{Code: 503})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "gemini api returned status 503", apiErr.Error())
}

func TestMapGenerateError_Blocked(t *testing.T) {
	err := mapGenerateError(&genai.BlockedError{PromptFeedback: &genai.PromptFeedback{}})

	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestMapGenerateError_Transport(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := mapGenerateError(cause)

	assert.ErrorIs(t, err, cause)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestResponseText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("```json\n["), genai.Text("]\n```")}}},
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("ignored")}}},
		},
	}

	assert.Equal(t, "```json\n[]\n```", responseText(resp))
	assert.Equal(t, "", responseText(&genai.GenerateContentResponse{}))
	assert.Equal(t, "", responseText(nil))
}

func TestNewGeminiClient_Defaults(t *testing.T) {
	c := NewGeminiClient(Config{})

	assert.Equal(t, defaultGeminiModel, c.Model())
	assert.Equal(t, int32(defaultMaxOutputTokens), c.cfg.MaxOutputTokens)
	assert.Equal(t, float32(defaultTemperature), c.cfg.Temperature)
	assert.True(t, c.cfg.JSONMode)
}

func TestNewGeminiClient_ZeroTemperatureKept(t *testing.T) {
	c := NewGeminiClient(Config{Model: "gemini-2.5-pro", Temperature: 0})

	assert.Equal(t, "gemini-2.5-pro", c.Model())
	assert.Zero(t, c.cfg.Temperature)
	assert.False(t, c.cfg.JSONMode)
	assert.Equal(t, int32(defaultMaxOutputTokens), c.cfg.MaxOutputTokens)
}
