package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lecture-companion/internal/app"
	"lecture-companion/internal/config"
	"lecture-companion/internal/llm"
	"lecture-companion/internal/locale"
	"lecture-companion/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:           "companion",
	Short:         "Chat with and get quizzed on lecture transcripts",
	Long:          "companion answers questions about a lecture transcript and runs a question/answer quiz over it, in English or Arabic.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("lectures", "", "Lectures directory (overrides LECTURES_DIR)")
	rootCmd.PersistentFlags().String("provider", "", "LLM provider: gemini, openai, anthropic or mock (overrides LLM_PROVIDER)")
	rootCmd.PersistentFlags().String("log-mode", "", "Log mode: dev or prod (overrides LOG_MODE)")

	rootCmd.AddCommand(subjectsCmd)
	rootCmd.AddCommand(lessonsCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(importCmd)
}

// env is what every subcommand needs, resolved from config plus flags.
type env struct {
	cfg      *config.Config
	log      *logger.Logger
	lectures app.Lectures
	close    func()
}

func loadEnv(cmd *cobra.Command) (*env, error) {
	cfg := config.Load()
	if dir, _ := cmd.Flags().GetString("lectures"); dir != "" {
		cfg.LecturesDir = dir
		cfg.ContentBackend = "files"
	}
	if p, _ := cmd.Flags().GetString("provider"); p != "" {
		cfg.LLMProvider = p
	}
	if m, _ := cmd.Flags().GetString("log-mode"); m != "" {
		cfg.LogMode = m
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	lectures, closeFn, err := app.OpenLectures(cmd.Context(), cfg, log)
	if err != nil {
		return nil, fmt.Errorf("open lecture store: %w", err)
	}

	return &env{
		cfg:      cfg,
		log:      log,
		lectures: lectures,
		close: func() {
			closeFn()
			log.Sync()
		},
	}, nil
}

func (e *env) generator(ctx context.Context) (llm.Generator, error) {
	gen, err := llm.New(ctx, e.cfg.LLM(), e.log)
	if err != nil {
		return nil, fmt.Errorf("initialize generator: %w", err)
	}
	return gen, nil
}

func localeFlag(cmd *cobra.Command) (locale.Locale, error) {
	tag, _ := cmd.Flags().GetString("locale")
	loc, ok := locale.Lookup(locale.Tag(tag))
	if !ok {
		return locale.Locale{}, fmt.Errorf("unsupported locale %q (want en or ar)", tag)
	}
	return loc, nil
}
