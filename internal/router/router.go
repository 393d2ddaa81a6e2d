package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"lecture-companion/internal/handlers"
	"lecture-companion/internal/middleware"
)

type Handlers struct {
	Lecture *handlers.LectureHandler
	Session *handlers.SessionHandler
	Chat    *handlers.ChatHandler
	Quiz    *handlers.QuizHandler
}

type Options struct {
	FrontendURL string
	// GenerationPerMinute caps model-backed requests per client. 0 disables it.
	GenerationPerMinute int
	RequestTimeout      time.Duration
}

func New(h Handlers, opts Options) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(opts.FrontendURL))
	if opts.RequestTimeout > 0 {
		r.Use(chimiddleware.Timeout(opts.RequestTimeout))
	}

	generationLimiter := middleware.NewRateLimiter(opts.GenerationPerMinute, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/locales", h.Lecture.ListLocales)

		// ──── Lecture Catalog ────
		r.Route("/subjects", func(r chi.Router) {
			r.Get("/", h.Lecture.ListSubjects)
			r.Get("/{subject}/lessons", h.Lecture.ListLessons)
		})

		// ──── Session Routes ────
		r.Route("/session", func(r chi.Router) {
			r.Get("/", h.Session.Get)
			r.Delete("/", h.Session.Delete)
			r.Put("/lecture", h.Session.SelectLecture)
			r.Put("/locale", h.Session.SetLocale)
			r.Put("/mode", h.Session.SetMode)
		})

		// ──── Chat Routes ────
		r.Route("/chat", func(r chi.Router) {
			r.Get("/messages", h.Chat.History)
			r.With(generationLimiter.Middleware).Post("/messages", h.Chat.Ask)
		})

		// ──── Quiz Routes ────
		r.Route("/quiz", func(r chi.Router) {
			r.Get("/", h.Quiz.Get)
			r.Post("/next", h.Quiz.Next)
			r.Post("/discuss", h.Quiz.Discuss)

			r.Group(func(r chi.Router) {
				r.Use(generationLimiter.Middleware)
				r.Post("/start", h.Quiz.Start)
				r.Post("/answer", h.Quiz.Answer)
				r.Post("/discussion", h.Quiz.Discussion)
				r.Post("/regenerate", h.Quiz.Regenerate)
			})
		})
	})

	return r
}
