package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"trends/internal/domain/item"
)

// ItemStore implements raw item persistence over Postgres.
type ItemStore struct {
	db *pgxpool.Pool
}

// NewItemStore creates a new raw item store.
func NewItemStore(db *pgxpool.Pool) *ItemStore {
	return &ItemStore{db: db}
}

// StoreRawItem writes an item keyed by its content-derived id, computing
// the id when the caller has not. The insert is ON CONFLICT DO NOTHING:
// the first write wins and later submissions of the same (source,
// permalink) are skipped without touching the original row, which is
// what makes repeated ingestion runs (and racing ones) idempotent.
// The id is returned either way; inserted reports whether this call
// created the row.
func (s *ItemStore) StoreRawItem(ctx context.Context, it item.RawItem) (string, bool, error) {
	if it.Meta == nil {
		return "", false, fmt.Errorf("raw item has no source meta")
	}

	id := it.ID
	if id == "" {
		id = item.ComputeID(it.Source, it.Meta.NativeID())
	}

	metaJSON, err := json.Marshal(it.Meta)
	if err != nil {
		return "", false, fmt.Errorf("error marshaling source meta: %w", err)
	}

	var label *string
	if it.SentimentLabel != "" {
		l := string(it.SentimentLabel)
		label = &l
	}

	query := `
		INSERT INTO raw_items (
			id, source, meta, text_content, created_at, captured_at,
			lang, sentiment_score, sentiment_label
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO NOTHING
	`

	tag, err := s.db.Exec(
		ctx,
		query,
		id,
		string(it.Source),
		metaJSON,
		it.Text,
		it.CreatedAt,
		it.CapturedAt,
		it.Lang,
		it.SentimentScore,
		label,
	)
	if err != nil {
		return "", false, fmt.Errorf("error executing query: %w", err)
	}

	return id, tag.RowsAffected() == 1, nil
}

// GetRawItemsByWindow returns items whose capture time falls inside
// [capturedFrom, capturedTo], boundaries included.
func (s *ItemStore) GetRawItemsByWindow(ctx context.Context, capturedFrom, capturedTo time.Time) ([]item.RawItem, error) {
	query := `
		SELECT
			id, source, meta, text_content, created_at, captured_at,
			lang, sentiment_score, sentiment_label
		FROM raw_items
		WHERE captured_at >= $1 AND captured_at <= $2
		ORDER BY captured_at
	`

	rows, err := s.db.Query(ctx, query, capturedFrom, capturedTo)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var items []item.RawItem
	for rows.Next() {
		var (
			it       item.RawItem
			source   string
			metaJSON []byte
			label    *string
		)

		err := rows.Scan(
			&it.ID,
			&source,
			&metaJSON,
			&it.Text,
			&it.CreatedAt,
			&it.CapturedAt,
			&it.Lang,
			&it.SentimentScore,
			&label,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning raw item: %w", err)
		}

		it.Source = item.Source(source)
		if label != nil {
			it.SentimentLabel = item.Label(*label)
		}

		meta, err := item.DecodeMeta(it.Source, metaJSON)
		if err != nil {
			return nil, fmt.Errorf("error unmarshaling source meta: %w", err)
		}
		it.Meta = meta

		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating raw items: %w", err)
	}

	return items, nil
}
