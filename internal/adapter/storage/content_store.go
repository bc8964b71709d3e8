package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"trends/internal/domain/content"
	"trends/internal/domain/item"
)

// Sentinel errors surfaced to handlers.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ContentStore implements content pipeline persistence over Postgres.
type ContentStore struct {
	db *pgxpool.Pool
}

// NewContentStore creates a new content pipeline store.
func NewContentStore(db *pgxpool.Pool) *ContentStore {
	return &ContentStore{db: db}
}

// StoreContentPipelineItem inserts a new pipeline item in draft status
// and returns its generated id. The item must reference at least one
// trend signal.
func (s *ContentStore) StoreContentPipelineItem(ctx context.Context, it content.PipelineItem) (string, error) {
	if len(it.TrendSignalIDs) == 0 {
		return "", fmt.Errorf("content pipeline item must reference at least one trend signal")
	}

	id := uuid.New().String()
	now := time.Now().UTC()

	status := it.Status
	if status == "" {
		status = content.StatusDraft
	}
	if !status.Valid() {
		return "", fmt.Errorf("unknown status: %s", status)
	}

	weekOf := it.WeekOf
	if weekOf == "" {
		weekOf = content.WeekOf(now)
	}

	outputsJSON, err := json.Marshal(it.Outputs)
	if err != nil {
		return "", fmt.Errorf("error marshaling outputs: %w", err)
	}

	query := `
		INSERT INTO content_pipeline (
			id, trend_signal_ids, week_of, status, outputs,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = s.db.Exec(ctx, query, id, it.TrendSignalIDs, weekOf, string(status), outputsJSON, now, now)
	if err != nil {
		return "", fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}

// GetContentPipelineItem retrieves one pipeline item by id.
func (s *ContentStore) GetContentPipelineItem(ctx context.Context, id string) (*content.PipelineItem, error) {
	query := `
		SELECT id, trend_signal_ids, week_of, status, outputs, created_at, updated_at
		FROM content_pipeline
		WHERE id = $1
	`

	var (
		it          content.PipelineItem
		status      string
		outputsJSON []byte
	)

	err := s.db.QueryRow(ctx, query, id).Scan(
		&it.ID,
		&it.TrendSignalIDs,
		&it.WeekOf,
		&status,
		&outputsJSON,
		&it.CreatedAt,
		&it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error querying content pipeline item: %w", err)
	}

	it.Status = content.Status(status)
	if err := json.Unmarshal(outputsJSON, &it.Outputs); err != nil {
		return nil, fmt.Errorf("error unmarshaling outputs: %w", err)
	}

	return &it, nil
}

// UpdateContentPipelineStatus moves an item to a new status, refreshing
// updated_at. The current status is read under a row lock and the edge
// validated against the pipeline state machine, so an illegal transition
// (or a transition out of a terminal state) fails with
// ErrInvalidTransition.
func (s *ContentStore) UpdateContentPipelineStatus(ctx context.Context, id string, status content.Status) error {
	if !status.Valid() {
		return fmt.Errorf("unknown status: %s", status)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var current string
	err = tx.QueryRow(ctx, `SELECT status FROM content_pipeline WHERE id = $1 FOR UPDATE`, id).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("error querying current status: %w", err)
	}

	if !content.CanTransition(content.Status(current), status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, status)
	}

	_, err = tx.Exec(
		ctx,
		`UPDATE content_pipeline SET status = $2, updated_at = $3 WHERE id = $1`,
		id,
		string(status),
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("error updating status: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}

	return nil
}

// labelFromString converts a stored label column, defaulting to neutral
// for rows written before scoring.
func labelFromString(label string) item.Label {
	if label == "" {
		return item.LabelNeutral
	}
	return item.Label(label)
}
