package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"

	"trends/internal/adapter/storage"
	"trends/internal/config"
	"trends/internal/logging"
	"trends/internal/server"
	"trends/internal/service/aggregate"
	"trends/internal/service/ingest"
	"trends/internal/service/source"
)

func main() {
	// Load .env if present; real environments set variables directly
	_ = godotenv.Load()

	log := logging.New()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Initialize dependencies
	db, err := initDatabase(ctx, cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}
	defer db.Close()

	natsConn, err := initNATS(cfg.NATS, log)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to NATS")
	}
	defer natsConn.Close()

	// Initialize storage adapters
	itemStore := storage.NewItemStore(db)
	signalStore := storage.NewSignalStore(db)
	contentStore := storage.NewContentStore(db)

	// Initialize services
	fetchers := source.BuildFetchers(cfg.Sources, log)

	aggregator := aggregate.New(aggregate.Config{
		MaxTopicsPerSource: cfg.Ingest.MaxTopicsPerSource,
		MinClusterSize:     cfg.Ingest.MinClusterSize,
		SampleSize:         cfg.Ingest.SampleSize,
	})

	collector := ingest.NewCollector(
		fetchers,
		itemStore,
		signalStore,
		aggregator,
		natsConn,
		ingest.Config{
			WindowHours:   cfg.Ingest.WindowHours,
			EventsSubject: cfg.Ingest.EventsSubject,
		},
		log,
	)

	// Initialize HTTP server
	httpServer := server.NewServer(
		cfg.Server,
		cfg.Ingest,
		natsConn,
		signalStore,
		contentStore,
		collector,
	)

	// Start HTTP server
	go func() {
		log.WithFields(logging.Fields{
			"host": cfg.Server.Host,
			"port": cfg.Server.Port,
		}).Info("starting HTTP server")

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("HTTP server error")
		}
	}()

	// Wait for shutdown signal
	<-shutdown
	log.Info("shutdown signal received")

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	// Shutdown HTTP server
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("HTTP server shutdown error")
	}

	log.Info("shutdown complete")
}

// Initialize database connection
func initDatabase(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	connString := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database, cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse connection string: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.MaxIdleConns)
	poolConfig.MaxConnLifetime = cfg.MaxLifetime

	db, err := pgxpool.ConnectConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	// Test connection
	if err := db.Ping(ctx); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return db, nil
}

// Initialize NATS connection
func initNATS(cfg config.NATSConfig, log logging.Logger) (*nats.Conn, error) {
	options := []nats.Option{
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.Timeout(cfg.ConnectTimeout),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.WithError(err).Warn("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.WithField("url", nc.ConnectedUrl()).Info("NATS reconnected")
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			log.Info("NATS connection closed")
		}),
	}

	nc, err := nats.Connect(cfg.URL, options...)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to NATS: %w", err)
	}

	return nc, nil
}
