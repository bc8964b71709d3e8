package ingest

import (
	"strings"
	"time"

	"trends/internal/domain/item"
)

// normalize converts adapter output into canonical raw items: text is
// trimmed, the content-derived id is assigned, and items with nothing to
// hash or nothing to say are dropped. Sentiment is filled in afterwards.
func normalize(items []item.RawItem, capturedAt time.Time) []item.RawItem {
	normalized := make([]item.RawItem, 0, len(items))

	for _, it := range items {
		it.Text = strings.TrimSpace(it.Text)
		if it.Text == "" || it.Meta == nil || it.Meta.NativeID() == "" {
			continue
		}

		it.ID = item.ComputeID(it.Source, it.Meta.NativeID())

		if it.CapturedAt.IsZero() {
			it.CapturedAt = capturedAt
		}
		if it.Lang == "" {
			it.Lang = "en"
		}

		normalized = append(normalized, it)
	}

	return normalized
}
