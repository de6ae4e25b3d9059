// Package insight generates narrative analysis of engine outputs through a
// pluggable text-generation provider. Scoring never depends on a provider
// call succeeding: every entry point falls back to a deterministic summary.
package insight

import (
	"context"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"
)

// Provider is the capability interface for text generation. Implementations
// must be safe for concurrent use.
type Provider interface {
	Generate(ctx context.Context, prompt, systemPrompt string) (string, error)
}

// GeminiProvider generates text through the Google GenAI SDK.
type GeminiProvider struct {
	Model string // e.g. "gemini-2.0-flash-exp"
}

var _ Provider = (*GeminiProvider)(nil)

// Generate sends a generateContent request to the Gemini API.
func (p *GeminiProvider) Generate(ctx context.Context, prompt, systemPrompt string) (string, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	model := p.Model
	if model == "" {
		model = "gemini-2.0-flash-exp"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create GenAI client: %w", err)
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0.1)),
	}

	// Ask for structured output when the prompt expects JSON back.
	if strings.Contains(strings.ToLower(prompt), "json") || strings.Contains(strings.ToLower(systemPrompt), "json") {
		config.ResponseMIMEType = "application/json"
	}

	if systemPrompt != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		}
	}

	result, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}

	return result.Text(), nil
}

// StubProvider returns a fixed response without any network call. Used in
// tests and when no API key is configured.
type StubProvider struct {
	Response string
	Err      error
}

var _ Provider = (*StubProvider)(nil)

func (p *StubProvider) Generate(ctx context.Context, prompt, systemPrompt string) (string, error) {
	if p.Err != nil {
		return "", p.Err
	}
	if p.Response != "" {
		return p.Response, nil
	}
	return "{}", nil
}
