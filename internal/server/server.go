package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/ferateo/bizbot/internal/classifier"
	"github.com/ferateo/bizbot/internal/engine"
	"github.com/ferateo/bizbot/internal/storage"
)

// Server exposes the chat surface, profile management and analytics over
// HTTP. Engines are constructed per request; the server itself holds no
// per-conversation state.
type Server struct {
	store       storage.Storage
	generator   engine.Generator
	classifier  classifier.Classifier
	hours       engine.HoursPolicy
	metrics     *engine.Metrics
	logger      *zap.Logger
	chatTimeout time.Duration
}

func New(
	store storage.Storage,
	generator engine.Generator,
	hours engine.HoursPolicy,
	metrics *engine.Metrics,
	logger *zap.Logger,
	chatTimeout time.Duration,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if chatTimeout <= 0 {
		chatTimeout = 10 * time.Second
	}

	return &Server{
		store:       store,
		generator:   generator,
		classifier:  classifier.NewKeywordClassifier(),
		hours:       hours,
		metrics:     metrics,
		logger:      logger,
		chatTimeout: chatTimeout,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Get("/metrics", s.handleMetrics)

	r.Route("/api", func(r chi.Router) {
		r.Post("/chat/{businessID}", s.handleChat)
		r.Post("/general-chat", s.handleGeneralChat)

		r.Post("/business", s.handleCreateBusiness)
		r.Get("/business/{businessID}", s.handleGetBusiness)
		r.Put("/business/{businessID}", s.handleUpdateBusiness)
		r.Get("/business/{businessID}/chat-analysis", s.handleChatAnalysis)
	})

	return r
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]uint64{
		"backend_failures": s.metrics.BackendFailures(),
	})
}
