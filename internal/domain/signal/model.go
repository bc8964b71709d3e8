package signal

import (
	"time"

	"trends/internal/domain/item"
)

// TrendSignal is an aggregated topical cluster over a fixed time window.
// Signals are immutable once stored; a later run over an overlapping
// window creates new records rather than updating old ones.
type TrendSignal struct {
	ID             string     `json:"id,omitempty"`
	Topic          string     `json:"topic"`
	Sources        []string   `json:"sources"`
	WindowStart    time.Time  `json:"windowStart"`
	WindowEnd      time.Time  `json:"windowEnd"`
	Volume         int        `json:"volume"`
	Engagement     int        `json:"engagement"`
	SentimentAvg   float64    `json:"sentimentAvg"`
	SentimentLabel item.Label `json:"sentimentLabel"`
	SampleItemIDs  []string   `json:"sampleItemIds"`
	CreatedAt      time.Time  `json:"createdAt"`
}
