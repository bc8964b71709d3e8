package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/nats-io/nats.go"

	"trends/internal/config"
	"trends/internal/server/handlers"
)

// Server represents the HTTP server
type Server struct {
	server *http.Server
	router *chi.Mux
}

// NewServer creates a new HTTP server
func NewServer(
	cfg config.ServerConfig,
	ingestCfg config.IngestConfig,
	natsConn *nats.Conn,
	signals handlers.SignalReader,
	contentStore handlers.ContentStore,
	collector handlers.Ingester,
) *Server {
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(2 * time.Minute))

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CorsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Create handler dependencies
	signalHandler := handlers.NewSignalHandler(signals)
	contentHandler := handlers.NewContentHandler(contentStore)
	ingestHandler := handlers.NewIngestHandler(collector, ingestCfg.CronToken, ingestCfg.DefaultHoursBack)

	// Routes
	router.Route("/api", func(r chi.Router) {
		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("OK"))
		})

		// API version
		r.Route("/v1", func(r chi.Router) {
			// Trend signals API
			r.Route("/signals", func(r chi.Router) {
				r.Get("/", signalHandler.GetSignals)
			})

			// Content pipeline API
			r.Route("/pipeline", func(r chi.Router) {
				r.Post("/", contentHandler.CreatePipelineItem)
				r.Get("/{id}", contentHandler.GetPipelineItem)
				r.Patch("/{id}/status", contentHandler.UpdatePipelineStatus)
			})
		})
	})

	// Scheduled ingestion entry point, authenticated with the cron token
	router.Get("/cron/ingest", ingestHandler.RunIngest)

	// WebSocket endpoint for real-time signal events
	router.Get("/ws/signals", handlers.SignalWebSocketHandler(natsConn, ingestCfg.EventsSubject))

	// Create HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &Server{
		server: httpServer,
		router: router,
	}
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
