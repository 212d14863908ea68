package generativeAI

import (
	"context"
	"errors"
	"fmt"
	"os"

	"google.golang.org/genai"
)

// ErrNoAPIKey signals that no Gemini credential is configured. Callers treat
// this as the documented offline/demo mode, not as a failure.
var ErrNoAPIKey = errors.New("GOOGLE_GEMINI_API_KEY environment variable is not set")

// Client is the narrow surface the itinerary service needs from the model.
type Client interface {
	GenerateContent(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error)
}

// AIClient wraps the Gemini SDK client for plain prompt-in/text-out calls.
type AIClient struct {
	client *genai.Client
	model  string
}

var _ Client = (*AIClient)(nil)

// NewAIClient builds a Gemini-backed client. Returns ErrNoAPIKey when the
// credential is absent so the service can fall back to demo mode.
func NewAIClient(ctx context.Context, model string) (*AIClient, error) {
	apiKey := os.Getenv("GOOGLE_GEMINI_API_KEY")
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &AIClient{
		client: client,
		model:  model,
	}, nil
}

// GenerateContent sends a single prompt and returns the raw response text.
func (ai *AIClient) GenerateContent(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	result, err := ai.client.Models.GenerateContent(ctx, ai.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	txt := result.Text()
	if txt == "" {
		return "", fmt.Errorf("no valid content in model response")
	}
	return txt, nil
}
