package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"lecture-companion/internal/llm"
	"lecture-companion/internal/quiz"
)

const devSessionSecret = "dev-only-session-secret-change-me"

type Config struct {
	// Server
	Port        string
	Env         string
	FrontendURL string
	LogMode     string

	// Lecture content
	ContentBackend string
	LecturesDir    string
	DatabaseURL    string
	MigrationsDir  string

	// Sessions
	SessionBackend string
	RedisURL       string
	SessionSecret  string
	SessionTTL     time.Duration

	// Generation
	LLMProvider          string
	GeminiAPIKey         string
	GeminiModel          string
	OpenAIAPIKey         string
	OpenAIModel          string
	OpenAIBaseURL        string
	AnthropicAPIKey      string
	AnthropicModel       string
	Temperature          float64
	TopP                 float64
	TopK                 int
	MaxOutputTokens      int
	GenerationConcurrent int
	GenerationPerMinute  int

	// Quiz
	QuizQuestionCount int
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	defaults := llm.DefaultSampling()

	cfg := &Config{
		Port:        getEnvOrDefault("PORT", "8080"),
		Env:         getEnvOrDefault("ENV", "development"),
		FrontendURL: getEnvOrDefault("FRONTEND_URL", "http://localhost:5173"),
		LogMode:     getEnvOrDefault("LOG_MODE", "dev"),

		ContentBackend: strings.ToLower(getEnvOrDefault("CONTENT_BACKEND", "files")),
		LecturesDir:    getEnvOrDefault("LECTURES_DIR", "./lectures"),
		MigrationsDir:  getEnvOrDefault("MIGRATIONS_DIR", "migrations"),

		SessionBackend: strings.ToLower(getEnvOrDefault("SESSION_BACKEND", "memory")),
		SessionTTL:     getEnvAsDurationOrDefault("SESSION_TTL", 24*time.Hour),

		LLMProvider:          strings.ToLower(getEnvOrDefault("LLM_PROVIDER", "gemini")),
		GeminiAPIKey:         getEnvOrDefault("GEMINI_API_KEY", os.Getenv("GOOGLE_API_KEY")),
		GeminiModel:          getEnvOrDefault("GEMINI_MODEL", "gemini-1.5-pro"),
		OpenAIAPIKey:         os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:          os.Getenv("OPENAI_MODEL"),
		OpenAIBaseURL:        os.Getenv("OPENAI_BASE_URL"),
		AnthropicAPIKey:      os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:       os.Getenv("ANTHROPIC_MODEL"),
		Temperature:          getEnvAsFloatOrDefault("GENERATION_TEMPERATURE", defaults.Temperature),
		TopP:                 getEnvAsFloatOrDefault("GENERATION_TOP_P", defaults.TopP),
		TopK:                 getEnvAsIntOrDefault("GENERATION_TOP_K", defaults.TopK),
		MaxOutputTokens:      getEnvAsIntOrDefault("GENERATION_MAX_OUTPUT_TOKENS", defaults.MaxOutputTokens),
		GenerationConcurrent: getEnvAsIntOrDefault("GENERATION_CONCURRENT_REQUESTS", 5),
		GenerationPerMinute:  getEnvAsIntOrDefault("GENERATION_REQUESTS_PER_MINUTE", 20),

		QuizQuestionCount: getEnvAsIntOrDefault("QUIZ_QUESTION_COUNT", quiz.DefaultQuestionCount),
	}

	if cfg.ContentBackend == "postgres" {
		cfg.DatabaseURL = mustGetEnv("DATABASE_URL")
	}
	if cfg.SessionBackend == "redis" {
		cfg.RedisURL = mustGetEnv("REDIS_URL")
	}
	if cfg.IsProduction() {
		cfg.SessionSecret = mustGetEnv("SESSION_SECRET")
	} else {
		cfg.SessionSecret = getEnvOrDefault("SESSION_SECRET", devSessionSecret)
	}

	return cfg
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate reports settings that would only fail later, at first use.
func (c *Config) Validate() error {
	switch c.ContentBackend {
	case "files", "postgres":
	default:
		return fmt.Errorf("unknown CONTENT_BACKEND: %q", c.ContentBackend)
	}
	switch c.SessionBackend {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown SESSION_BACKEND: %q", c.SessionBackend)
	}
	if c.QuizQuestionCount <= 0 {
		return fmt.Errorf("QUIZ_QUESTION_COUNT must be positive, got %d", c.QuizQuestionCount)
	}
	return c.LLM().Validate()
}

// LLM assembles the generator settings.
func (c *Config) LLM() llm.Config {
	return llm.Config{
		Provider: c.LLMProvider,
		Gemini: llm.GeminiConfig{
			APIKey: c.GeminiAPIKey,
			Model:  c.GeminiModel,
		},
		OpenAI: llm.OpenAIConfig{
			APIKey:  c.OpenAIAPIKey,
			Model:   c.OpenAIModel,
			BaseURL: c.OpenAIBaseURL,
		},
		Anthropic: llm.AnthropicConfig{
			APIKey: c.AnthropicAPIKey,
			Model:  c.AnthropicModel,
		},
		Sampling: llm.Sampling{
			Temperature:     c.Temperature,
			TopP:            c.TopP,
			TopK:            c.TopK,
			MaxOutputTokens: c.MaxOutputTokens,
		},
		SystemInstruction:  llm.DefaultSystemInstruction,
		ConcurrentRequests: c.GenerationConcurrent,
	}
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsFloatOrDefault(key string, defaultVal float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return defaultVal
	}
	return f
}

func getEnvAsDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}
