package llm

import "context"

// Generator is the single text-in/text-out capability every component uses
// to reach the language model. Sampling parameters and the system framing
// are fixed when the Generator is built; callers only vary the prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)

	// ModelID returns the model identifier this generator is configured to use.
	ModelID() string
}

// Sampling holds the process-wide generation parameters.
type Sampling struct {
	Temperature     float64
	TopP            float64
	TopK            int
	MaxOutputTokens int
}

// DefaultSystemInstruction frames every request, whatever the purpose.
const DefaultSystemInstruction = "You're a lecture summarizer assistant. Your job is to create high-quality summaries that represent the main ideas, quotes, analogies and key points from the lecture content, focusing on aspects relevant to the student's questions and learning goals."

// DefaultSampling mirrors the parameters the companion has always shipped with.
func DefaultSampling() Sampling {
	return Sampling{
		Temperature:     1,
		TopP:            0.95,
		TopK:            64,
		MaxOutputTokens: 18192,
	}
}
