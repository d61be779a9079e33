package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/investboard/investboard/internal/modules/ledger"
	"github.com/investboard/investboard/internal/modules/market"
	"github.com/investboard/investboard/internal/modules/positions"
	"github.com/investboard/investboard/internal/modules/valuation"
)

// Counter reports how many rows a store holds
type Counter interface {
	Count() (int, error)
}

// Config holds server configuration
type Config struct {
	Port         int
	Log          zerolog.Logger
	DevMode      bool
	Positions    *positions.Handler
	Market       *market.Handler
	Ledger       *ledger.Handler
	Valuation    *valuation.Handler
	Store        Counter // position store, surfaced in /system/status
	Transactions Counter // ledger, surfaced in /system/status
}

// Server represents the HTTP server
type Server struct {
	router       *chi.Mux
	server       *http.Server
	log          zerolog.Logger
	port         int
	store        Counter
	transactions Counter
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:       chi.NewRouter(),
		log:          cfg.Log.With().Str("component", "server").Logger(),
		port:         cfg.Port,
		store:        cfg.Store,
		transactions: cfg.Transactions,
	}

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes(cfg)

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(60 * time.Second))

	// The dashboard is served from a different origin
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(cfg Config) {
	s.router.Get("/health", s.handleHealth)
	s.router.Get("/system/status", s.handleSystemStatus)

	s.router.Route("/investments", func(r chi.Router) {
		r.Get("/", cfg.Positions.HandleList)
		r.Post("/", cfg.Positions.HandleCreate)

		// Fixed paths before the {id} wildcard
		r.Get("/summary", cfg.Valuation.HandleGetSummary)
		r.Get("/valuation", cfg.Valuation.HandleGetValuation)
		r.Get("/evolution", cfg.Ledger.HandleGetEvolution)
		r.Get("/transactions", cfg.Ledger.HandleGetTransactions)
		r.Get("/quotes", cfg.Market.HandleGetQuotes)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", cfg.Positions.HandleGet)
			r.Put("/", cfg.Positions.HandleUpdate)
			r.Delete("/", cfg.Positions.HandleDelete)
			r.Post("/sell", cfg.Positions.HandleSell)
		})
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Int("port", s.port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// Router exposes the route table, e.g. to tests
func (s *Server) Router() http.Handler {
	return s.router
}

// loggingMiddleware logs HTTP requests
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
