// Package server exposes the HTTP and WebSocket API.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/mockmate/interview-cli/internal/auth"
	"github.com/mockmate/interview-cli/internal/config"
	"github.com/mockmate/interview-cli/internal/questions"
	"github.com/mockmate/interview-cli/internal/scoring"
	"github.com/mockmate/interview-cli/internal/store"
	"github.com/mockmate/interview-cli/internal/transcribe"
)

// Server wires the API handlers to their collaborators.
type Server struct {
	store       store.Store
	verifier    auth.Verifier
	source      questions.Source
	transcriber transcribe.Transcriber // nil when the capability is unavailable
	strategy    scoring.Strategy

	analyzeLimiter *rate.Limiter
	log            *zap.Logger
}

// New creates a Server. A nil transcriber marks the analyze capability as
// permanently unavailable for this process.
func New(
	cfg config.ServerConfig,
	st store.Store,
	verifier auth.Verifier,
	source questions.Source,
	transcriber transcribe.Transcriber,
	strategy scoring.Strategy,
) *Server {
	perSec := cfg.AnalyzePerMin / 60.0
	if perSec <= 0 {
		perSec = 1
	}
	burst := cfg.AnalyzeBurst
	if burst <= 0 {
		burst = 1
	}
	return &Server{
		store:          st,
		verifier:       verifier,
		source:         source,
		transcriber:    transcriber,
		strategy:       strategy,
		analyzeLimiter: rate.NewLimiter(rate.Limit(perSec), burst),
		log:            zap.L(),
	}
}

// Handler builds the route tree.
func (s *Server) Handler(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))
	r.Use(s.requestLogger)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(api chi.Router) {
		api.Use(s.authenticate)
		api.Get("/user", s.handleGetUser)
		api.Post("/profile", s.handleUpdateProfile)
		api.Get("/interviews", s.handleListInterviews)
		api.Post("/interviews", s.handleSubmitInterview)
		api.Get("/questions", s.handleGetQuestions)
		api.Post("/analyze", s.handleAnalyze)
		api.Get("/session/live", s.handleLiveSession)
	})

	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("took", time.Since(start)),
		)
	})
}

type ctxKey int

const identityKey ctxKey = 0

// authenticate resolves the caller's identity. Every absent or invalid
// identity gets the same 401 regardless of route or payload. WebSocket
// clients cannot set headers, so a token query parameter is accepted too.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := auth.BearerToken(r.Header.Get("Authorization"))
		if !ok {
			token = r.URL.Query().Get("token")
		}

		id, err := s.verifier.Verify(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "unauthenticated")
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func identityFrom(ctx context.Context) auth.Identity {
	id, _ := ctx.Value(identityKey).(auth.Identity)
	return id
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
