// Package api exposes the tracker over a JSON HTTP API.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/interntrack/interntrack/internal/tracker"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Options configures the server.
type Options struct {
	// LLMTimeout bounds requests that reach a model. Zero means no bound
	// beyond the client's own.
	LLMTimeout time.Duration

	// AllowedOrigins for CORS. Default: any origin.
	AllowedOrigins []string
}

// Server is the HTTP API over a tracker.Service.
type Server struct {
	svc    *tracker.Service
	opts   Options
	router *chi.Mux
}

// NewServer creates a server and builds its routes.
func NewServer(svc *tracker.Service, opts Options) *Server {
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	s := &Server{svc: svc, opts: opts}
	s.setupRouter()
	return s
}

// Handler returns the configured router.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRouter() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/tracks", func(r chi.Router) {
			r.Get("/", s.handleListTracks)
			r.Get("/{id}", s.handleGetTrack)
			r.Put("/{id}", s.handlePutTrack)
		})

		r.Route("/interns", func(r chi.Router) {
			r.Get("/", s.handleListInterns)
			r.Post("/", s.handleRegister)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetIntern)
				r.Post("/onboard", s.handleOnboard)
				r.Get("/sessions", s.handleListSessions)
				r.Post("/sessions", s.handleCompleteSession)
				r.Get("/performance", s.handlePerformance)
				r.Get("/metrics", s.handleMetricHistory)
			})
		})

		r.Get("/cohort", s.handleCohort)
		r.Post("/quiz", s.handleQuiz)
		r.Post("/analyze", s.handleAnalyze)
		r.Post("/performance", s.handleAnalyzePerformance)
	})

	s.router = r
}

// loggingMiddleware logs every request once it has been served.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			slog.InfoContext(r.Context(), "http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
