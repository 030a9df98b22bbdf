package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

type Config struct {
	Model           string  `env:"MODEL" envDefault:"gemini-2.5-flash"`
	Temperature     float32 `env:"TEMPERATURE" envDefault:"0.4"`
	MaxOutputTokens int32   `env:"MAX_OUTPUT_TOKENS" envDefault:"8192"`
	JSONMode        bool    `env:"JSON_MODE" envDefault:"true"`
}

// GeminiClient issues one generation call per Generate. The API key belongs to
// the caller, so the SDK client is built per call.
type GeminiClient struct {
	cfg  Config
	opts []option.ClientOption
}

// NewGeminiClient fills every default only for a zero Config, so an explicit
// temperature of 0 is kept. Model and MaxOutputTokens default when unset.
func NewGeminiClient(cfg Config, opts ...option.ClientOption) *GeminiClient {
	if cfg == (Config{}) {
		cfg.Temperature = defaultTemperature
		cfg.JSONMode = true
	}
	if cfg.Model == "" {
		cfg.Model = defaultGeminiModel
	}
	if cfg.MaxOutputTokens == 0 {
		cfg.MaxOutputTokens = defaultMaxOutputTokens
	}
	return &GeminiClient{cfg: cfg, opts: opts}
}

func (g *GeminiClient) Model() string {
	return g.cfg.Model
}

// Generate sends the prompt with the fixed system instruction and returns the
// generated text. Non-success statuses come back as *APIError.
func (g *GeminiClient) Generate(ctx context.Context, apiKey, prompt string) (string, error) {
	opts := append([]option.ClientOption{option.WithAPIKey(apiKey)}, g.opts...)
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(g.cfg.Model)
	model.SystemInstruction = genai.NewUserContent(genai.Text(SystemInstruction))
	model.SetTemperature(g.cfg.Temperature)
	model.SetMaxOutputTokens(g.cfg.MaxOutputTokens)
	if g.cfg.JSONMode {
		model.ResponseMIMEType = responseMIMEType
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", mapGenerateError(err)
	}
	return responseText(resp), nil
}

func mapGenerateError(err error) error {
	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		return fmt.Errorf("%w: %s", ErrEmptyResponse, blocked.Error())
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return &APIError{Status: gerr.Code, Message: strings.TrimSpace(gerr.Message)}
	}

	return fmt.Errorf("gemini request failed: %w", err)
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String()
}
