package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"finover/internal/predictor"
	"finover/internal/risk"
	"finover/internal/store"
)

// Config holds the HTTP server settings.
type Config struct {
	Host           string
	Port           int
	RecommendLimit int
}

// Server exposes the risk API: single-symbol prediction, portfolio
// analysis, and low-risk recommendations. It is a thin caller of the
// core; inputs and outputs pass through unchanged.
type Server struct {
	router    *mux.Router
	server    *http.Server
	scorer    *risk.Scorer
	predictor predictor.Predictor // nil when no models directory is configured
	store     store.Store
	limit     int
	log       zerolog.Logger
}

// New builds the server and its routes.
func New(cfg Config, scorer *risk.Scorer, pred predictor.Predictor, st store.Store, log zerolog.Logger) *Server {
	s := &Server{
		router:    mux.NewRouter(),
		scorer:    scorer,
		predictor: pred,
		store:     st,
		limit:     cfg.RecommendLimit,
		log:       log,
	}
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(s.requestIDMiddleware)
	s.router.Use(s.loggingMiddleware)

	s.router.HandleFunc("/predict-risk", s.handlePredictRisk).Methods("POST")
	s.router.HandleFunc("/portfolio-risk", s.handlePortfolioRisk).Methods("POST")
	s.router.HandleFunc("/recommend-low-risk", s.handleRecommendLowRisk).Methods("GET")
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
	s.router.Handle("/metrics", promhttp.Handler()).Methods("GET")
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("risk api listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New().String()[:8]
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(
			context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

type requestIDKey struct{}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		id, _ := r.Context().Value(requestIDKey{}).(string)
		s.log.Debug().
			Str("request_id", id).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("request handled")
	})
}
