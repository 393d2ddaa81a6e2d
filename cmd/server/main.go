package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lecture-companion/internal/app"
	"lecture-companion/internal/chat"
	"lecture-companion/internal/config"
	"lecture-companion/internal/handlers"
	"lecture-companion/internal/llm"
	"lecture-companion/internal/logger"
	"lecture-companion/internal/quiz"
	"lecture-companion/internal/router"
	"lecture-companion/internal/session"
)

func main() {
	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", "error", err)
	}
	log.Info("starting lecture companion", "env", cfg.Env, "content_backend", cfg.ContentBackend,
		"session_backend", cfg.SessionBackend, "llm_provider", cfg.LLMProvider)

	ctx := context.Background()

	// ──── Step 2: Open Lecture Store ────
	lectures, closeLectures, err := app.OpenLectures(ctx, cfg, log)
	if err != nil {
		log.Fatal("lecture store unavailable", "error", err)
	}
	defer closeLectures()
	log.Info("lecture store ready", "backend", cfg.ContentBackend)

	// ──── Step 3: Open Session Store ────
	sessionStore, closeSessions, err := app.OpenSessions(ctx, cfg)
	if err != nil {
		log.Fatal("session store unavailable", "error", err)
	}
	defer closeSessions()
	sessions := session.NewManager(sessionStore, cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	log.Info("session store ready", "backend", cfg.SessionBackend, "ttl", cfg.SessionTTL.String())

	// ──── Step 4: Initialize Generator ────
	gen, err := llm.New(ctx, cfg.LLM(), log)
	if err != nil {
		log.Fatal("generator initialization failed", "error", err)
	}
	log.Info("generator ready", "provider", cfg.LLMProvider, "model", gen.ModelID())

	// ──── Step 5: Initialize Services & Handlers ────
	chatService := chat.NewService(gen)
	quizService := quiz.NewService(gen, log, cfg.QuizQuestionCount)

	h := router.Handlers{
		Lecture: handlers.NewLectureHandler(lectures, log),
		Session: handlers.NewSessionHandler(sessions, lectures, log),
		Chat:    handlers.NewChatHandler(sessions, chatService, log),
		Quiz:    handlers.NewQuizHandler(sessions, quizService, log),
	}

	// ──── Step 6: Start HTTP Server ────
	r := router.New(h, router.Options{
		FrontendURL:         cfg.FrontendURL,
		GenerationPerMinute: cfg.GenerationPerMinute,
		RequestTimeout:      5 * time.Minute,
	})

	// Model calls can take a while; the write timeout leaves room for them.
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 6 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Info("lecture companion ready", "addr", fmt.Sprintf("http://localhost:%s", cfg.Port), "api", "/api/v1")

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatal("server error", "error", err)
	}
}
