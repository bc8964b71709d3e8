// Command ingest runs one collection cycle from the command line, for
// local runs and one-off backfills. Usage:
//
//	ingest [hoursBack]
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"

	"trends/internal/adapter/storage"
	"trends/internal/config"
	"trends/internal/logging"
	"trends/internal/service/aggregate"
	"trends/internal/service/ingest"
	"trends/internal/service/source"
)

func main() {
	_ = godotenv.Load()

	log := logging.New()

	hoursBack := 24
	if len(os.Args) > 1 {
		parsed, err := strconv.Atoi(os.Args[1])
		if err != nil || parsed <= 0 {
			log.Fatalf("invalid hoursBack argument: %s", os.Args[1])
		}
		hoursBack = parsed
	}

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	ctx := context.Background()

	db, err := initDatabase(ctx, cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}
	defer db.Close()

	// The event bus is optional for manual runs.
	natsConn, err := nats.Connect(cfg.NATS.URL, nats.Timeout(cfg.NATS.ConnectTimeout))
	if err != nil {
		log.WithError(err).Warn("NATS unavailable, signal events will not be published")
		natsConn = nil
	} else {
		defer natsConn.Close()
	}

	itemStore := storage.NewItemStore(db)
	signalStore := storage.NewSignalStore(db)

	collector := ingest.NewCollector(
		source.BuildFetchers(cfg.Sources, log),
		itemStore,
		signalStore,
		aggregate.New(aggregate.Config{
			MaxTopicsPerSource: cfg.Ingest.MaxTopicsPerSource,
			MinClusterSize:     cfg.Ingest.MinClusterSize,
			SampleSize:         cfg.Ingest.SampleSize,
		}),
		natsConn,
		ingest.Config{
			WindowHours:   cfg.Ingest.WindowHours,
			EventsSubject: cfg.Ingest.EventsSubject,
		},
		log,
	)

	result, err := collector.Ingest(ctx, hoursBack)
	if err != nil {
		log.WithError(err).Fatal("ingestion failed")
	}

	fmt.Printf("stored %d new raw items, created %d trend signals\n", result.RawItems, result.TrendSignals)

	signals, err := signalStore.LatestTrendSignals(ctx, 5)
	if err != nil {
		log.WithError(err).Fatal("failed to load latest signals")
	}

	for _, s := range signals {
		fmt.Printf(
			"  [%s] %s  volume=%d engagement=%d sentiment=%.2f (%s)\n",
			s.Sources[0], s.Topic, s.Volume, s.Engagement, s.SentimentAvg, s.SentimentLabel,
		)
	}
}

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

	db, err := pgxpool.ConnectConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return db, nil
}
