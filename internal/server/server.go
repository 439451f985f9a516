package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"rebalancer/internal/app"
)

const (
	// maxBody caps request bodies.
	maxBody = 1 << 20
	// maxSymbols caps the symbols of one quote request.
	maxSymbols = 1000
)

type Config struct {
	Port           string
	RequestTimeout time.Duration
	Log            zerolog.Logger
	Service        *app.Service
}

// Server is the JSON API over the app service.
type Server struct {
	router *chi.Mux
	server *http.Server
	log    zerolog.Logger
	svc    *app.Service
}

func New(cfg Config) *Server {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 15 * time.Second
	}
	s := &Server{
		router: chi.NewRouter(),
		log:    cfg.Log.With().Str("component", "server").Logger(),
		svc:    cfg.Service,
	}

	s.setupMiddleware(cfg.RequestTimeout)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *Server) setupMiddleware(timeout time.Duration) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(timeout))
	s.router.Use(middleware.RequestSize(maxBody))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	s.router.Use(middleware.Compress(5, "application/json"))
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/quotes", s.handleGetQuotes)
		r.Post("/quotes", s.handlePostQuotes)
		r.Get("/symbols/{symbol}", s.handleSymbol)

		r.Route("/portfolios", func(r chi.Router) {
			r.Get("/", s.handleListPortfolios)
			r.Post("/", s.handleCreatePortfolio)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleViewPortfolio)
				r.Delete("/", s.handleDeletePortfolio)
				r.Post("/holdings", s.handleAddHolding)
				r.Get("/prices/{symbol}", s.handleLastKnownPrice)
				r.Get("/rebalance", s.handleRebalanceForm)
				r.Post("/rebalance", s.handleRebalance)
			})
		})

		r.Route("/holdings/{id}", func(r chi.Router) {
			r.Patch("/", s.handleUpdateHolding)
			r.Delete("/", s.handleDeleteHolding)
		})
	})
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("Starting HTTP server")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
