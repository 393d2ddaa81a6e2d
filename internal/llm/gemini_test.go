package llm

import (
	"errors"
	"testing"

	"github.com/google/generative-ai-go/genai"
)

func TestExtractText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("Question (English): What is X?\n"), genai.Text("Answer: Y")}}},
			{Content: nil},
		},
	}

	got := extractText(resp)
	if got != "Question (English): What is X?\nAnswer: Y" {
		t.Fatalf("unexpected text: %q", got)
	}
	if extractText(nil) != "" {
		t.Fatal("expected empty text for nil response")
	}
}

func TestMapGeminiError(t *testing.T) {
	var invalid *ErrInvalidResponse
	if !errors.As(mapGeminiError(&genai.BlockedError{}), &invalid) {
		t.Fatal("expected blocked prompt to map to ErrInvalidResponse")
	}

	var unavailable *ErrProviderUnavailable
	if !errors.As(mapGeminiError(errors.New("dial tcp: refused")), &unavailable) {
		t.Fatal("expected transport error to map to ErrProviderUnavailable")
	}
}

func TestNewGeminiGenerator_RequiresKey(t *testing.T) {
	if _, err := NewGeminiGenerator(t.Context(), GeminiConfig{}, DefaultSampling(), ""); err == nil {
		t.Fatal("expected error for missing API key")
	}
}
