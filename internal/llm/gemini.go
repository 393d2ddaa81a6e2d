package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-1.5-pro"
}

type GeminiGenerator struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	modelName string
}

func NewGeminiGenerator(ctx context.Context, cfg GeminiConfig, sampling Sampling, system string) (*GeminiGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	name := cfg.Model
	if name == "" {
		name = "gemini-1.5-pro"
	}

	model := client.GenerativeModel(name)
	model.SetTemperature(float32(sampling.Temperature))
	model.SetTopP(float32(sampling.TopP))
	if sampling.TopK > 0 {
		model.SetTopK(int32(sampling.TopK))
	}
	if sampling.MaxOutputTokens > 0 {
		model.SetMaxOutputTokens(int32(sampling.MaxOutputTokens))
	}
	if system != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}

	return &GeminiGenerator{
		client:    client,
		model:     model,
		modelName: name,
	}, nil
}

func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", mapGeminiError(err)
	}

	text := extractText(resp)
	if strings.TrimSpace(text) == "" {
		return "", &ErrInvalidResponse{Err: fmt.Errorf("Gemini returned empty text")}
	}
	return text, nil
}

func (g *GeminiGenerator) ModelID() string {
	return g.modelName
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}

func mapGeminiError(err error) error {
	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		return &ErrInvalidResponse{Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}
