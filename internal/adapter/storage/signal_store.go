package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"

	"trends/internal/domain/signal"
)

// SignalStore implements trend signal persistence over Postgres.
// Signals always insert: a later run over an overlapping window creates
// new records, never updates old ones.
type SignalStore struct {
	db *pgxpool.Pool
}

// NewSignalStore creates a new trend signal store.
func NewSignalStore(db *pgxpool.Pool) *SignalStore {
	return &SignalStore{db: db}
}

// StoreTrendSignal inserts a signal and returns its generated id.
func (s *SignalStore) StoreTrendSignal(ctx context.Context, sig signal.TrendSignal) (string, error) {
	id := uuid.New().String()

	createdAt := sig.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	query := `
		INSERT INTO trend_signals (
			id, topic, sources, window_start, window_end,
			volume, engagement, sentiment_avg, sentiment_label,
			sample_item_ids, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := s.db.Exec(
		ctx,
		query,
		id,
		sig.Topic,
		sig.Sources,
		sig.WindowStart,
		sig.WindowEnd,
		sig.Volume,
		sig.Engagement,
		sig.SentimentAvg,
		string(sig.SentimentLabel),
		sig.SampleItemIDs,
		createdAt,
	)
	if err != nil {
		return "", fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}

// GetTrendSignalsByWindow returns signals whose window ends at or before
// windowEndBefore, most recent first, capped at limit.
func (s *SignalStore) GetTrendSignalsByWindow(ctx context.Context, windowEndBefore time.Time, limit int) ([]signal.TrendSignal, error) {
	query := `
		SELECT
			id, topic, sources, window_start, window_end,
			volume, engagement, sentiment_avg, sentiment_label,
			sample_item_ids, created_at
		FROM trend_signals
		WHERE window_end <= $1
		ORDER BY window_end DESC
		LIMIT $2
	`

	return s.querySignals(ctx, query, windowEndBefore, limit)
}

// LatestTrendSignals returns the most recently created signals.
func (s *SignalStore) LatestTrendSignals(ctx context.Context, limit int) ([]signal.TrendSignal, error) {
	query := `
		SELECT
			id, topic, sources, window_start, window_end,
			volume, engagement, sentiment_avg, sentiment_label,
			sample_item_ids, created_at
		FROM trend_signals
		ORDER BY created_at DESC
		LIMIT $1
	`

	return s.querySignals(ctx, query, limit)
}

func (s *SignalStore) querySignals(ctx context.Context, query string, args ...interface{}) ([]signal.TrendSignal, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var signals []signal.TrendSignal
	for rows.Next() {
		var (
			sig   signal.TrendSignal
			label string
		)

		err := rows.Scan(
			&sig.ID,
			&sig.Topic,
			&sig.Sources,
			&sig.WindowStart,
			&sig.WindowEnd,
			&sig.Volume,
			&sig.Engagement,
			&sig.SentimentAvg,
			&label,
			&sig.SampleItemIDs,
			&sig.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning trend signal: %w", err)
		}

		sig.SentimentLabel = labelFromString(label)
		signals = append(signals, sig)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trend signals: %w", err)
	}

	return signals, nil
}
