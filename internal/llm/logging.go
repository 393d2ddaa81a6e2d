package llm

import (
	"context"
	"time"

	"lecture-companion/internal/logger"
)

// LoggingGenerator records every model call: purpose, model, latency and
// payload sizes. Prompt bodies are not logged since they embed whole lectures.
type LoggingGenerator struct {
	inner Generator
	log   *logger.Logger
}

func WithLogging(g Generator, log *logger.Logger) Generator {
	if log == nil {
		return g
	}
	return &LoggingGenerator{inner: g, log: log}
}

func (l *LoggingGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	text, err := l.inner.Generate(ctx, prompt)

	fields := []interface{}{
		"purpose", PurposeFrom(ctx),
		"model", l.inner.ModelID(),
		"latency_ms", time.Since(start).Milliseconds(),
		"prompt_chars", len(prompt),
		"response_chars", len(text),
	}
	if err != nil {
		l.log.Warn("generation failed", append(fields, "error", err)...)
	} else {
		l.log.Debug("generation completed", fields...)
	}
	return text, err
}

func (l *LoggingGenerator) ModelID() string {
	return l.inner.ModelID()
}
