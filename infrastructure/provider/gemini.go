package provider

import (
	"context"
	"sync"

	"google.golang.org/genai"
)

// GeminiProvider implements text generation against the Google Gemini API.
// The underlying client is created on first use because its constructor
// requires a context. One provider instance serves all requests, so the
// initialization is guarded for concurrent first use.
type GeminiProvider struct {
	initOnce    sync.Once
	client      *genai.Client
	initErr     error
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
}

// GeminiConfig holds configuration for GeminiProvider.
type GeminiConfig struct {
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
}

// NewGeminiProvider creates a provider from configuration.
func NewGeminiProvider(cfg GeminiConfig) *GeminiProvider {
	model := cfg.Model
	if model == "" {
		model = "gemini-1.5-flash"
	}

	return &GeminiProvider{
		apiKey:      cfg.APIKey,
		model:       model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}
}

// ModelName returns the configured model.
func (p *GeminiProvider) ModelName() string {
	return p.model
}

// Close is a no-op for the Gemini provider.
func (p *GeminiProvider) Close() error {
	return nil
}

// ensureClient initializes the shared genai client exactly once. A failed
// initialization is sticky; client construction only fails on configuration
// problems that a retry cannot fix.
func (p *GeminiProvider) ensureClient(ctx context.Context) (*genai.Client, error) {
	p.initOnce.Do(func() {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  p.apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			p.initErr = NewProviderError("create_client", 0, "create gemini client", err)
			return
		}
		p.client = client
	})

	if p.initErr != nil {
		return nil, p.initErr
	}
	return p.client, nil
}

// Complete sends one generation request and returns the raw text.
func (p *GeminiProvider) Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error) {
	client, err := p.ensureClient(ctx)
	if err != nil {
		return CompletionResponse{}, err
	}

	var contents []*genai.Content
	config := &genai.GenerateContentConfig{}

	for _, m := range req.Messages() {
		if m.Role() == "system" {
			config.SystemInstruction = &genai.Content{
				Parts: []*genai.Part{{Text: m.Content()}},
			}
			continue
		}
		contents = append(contents, &genai.Content{
			Role:  genai.RoleUser,
			Parts: []*genai.Part{{Text: m.Content()}},
		})
	}

	temperature := float32(p.temperature)
	if req.Temperature() > 0 {
		temperature = float32(req.Temperature())
	}
	if temperature > 0 {
		config.Temperature = &temperature
	}

	maxTokens := p.maxTokens
	if req.MaxTokens() > 0 {
		maxTokens = req.MaxTokens()
	}
	if maxTokens > 0 {
		config.MaxOutputTokens = int32(maxTokens)
	}

	result, err := client.Models.GenerateContent(ctx, p.model, contents, config)
	if err != nil {
		return CompletionResponse{}, NewProviderError("generate_content", 0, "gemini generation", err)
	}
	if result == nil || len(result.Candidates) == 0 {
		return CompletionResponse{}, NewProviderError("generate_content", 0, "empty response from gemini", nil)
	}

	finishReason := ""
	if result.Candidates[0].FinishReason != "" {
		finishReason = string(result.Candidates[0].FinishReason)
	}

	return NewCompletionResponse(result.Text(), finishReason), nil
}

var _ TextGenerator = (*GeminiProvider)(nil)
