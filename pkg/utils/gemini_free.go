package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// JSONCompletionClient returns a JSON document answering prompt. schema is a
// JSON schema describing the expected document.
type JSONCompletionClient interface {
	CompleteJSON(ctx context.Context, prompt string, schemaName string, schema json.RawMessage) (string, error)
}

// GeminiClient implements JSONCompletionClient using Google's Gemini models
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(apiKey, model string) (*GeminiClient, error) {
	if model == "" {
		model = "gemini-1.5-flash" // Free tier model
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiClient) CompleteJSON(ctx context.Context, prompt string, _ string, schema json.RawMessage) (string, error) {
	m := c.client.GenerativeModel(c.model)
	// Force JSON-only output
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(0.1)
	m.SetTopP(0.5)
	m.SetTopK(20)

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	full := fmt.Sprintf("%s\n\nReturn JSON only matching this schema:\n%s", prompt, schema)
	resp, err := m.GenerateContent(ctxWithTimeout, genai.Text(full))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: no content")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("gemini: unexpected part %T", resp.Candidates[0].Content.Parts[0])
	}
	content := cleanJSONResponse(string(text))
	if !json.Valid([]byte(content)) {
		return "", fmt.Errorf("gemini: not valid json")
	}
	return content, nil
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}
