// Package aggregate turns scored raw items into windowed trend signals.
package aggregate

import (
	"sort"
	"time"

	"trends/internal/domain/item"
	"trends/internal/domain/signal"
	"trends/internal/service/sentiment"
	"trends/internal/service/topics"
)

// Config bounds one aggregation run.
type Config struct {
	MaxTopicsPerSource int
	MinClusterSize     int
	SampleSize         int
}

// DefaultConfig returns the aggregation bounds used in production runs.
func DefaultConfig() Config {
	return Config{
		MaxTopicsPerSource: 5,
		MinClusterSize:     2,
		SampleSize:         5,
	}
}

// Aggregator produces trend signals from raw items captured within a
// time window.
type Aggregator struct {
	cfg Config
}

// New creates an aggregator.
func New(cfg Config) *Aggregator {
	if cfg.MaxTopicsPerSource <= 0 {
		cfg.MaxTopicsPerSource = 5
	}
	if cfg.MinClusterSize <= 0 {
		cfg.MinClusterSize = 2
	}
	if cfg.SampleSize <= 0 {
		cfg.SampleSize = 5
	}
	return &Aggregator{cfg: cfg}
}

// Aggregate clusters the items captured within [windowStart, windowEnd]
// (boundary-inclusive) into topics, one topic per item per run, and
// computes per-topic volume, engagement, and sentiment. Items without a
// sentiment score are scored just-in-time so every cluster member
// contributes to the average. Signals come back ordered by
// volume x engagement, strongest first.
func (a *Aggregator) Aggregate(items []item.RawItem, windowStart, windowEnd time.Time) []signal.TrendSignal {
	inWindow := filterByWindow(items, windowStart, windowEnd)

	bySource := make(map[item.Source][]item.RawItem)
	for _, it := range inWindow {
		bySource[it.Source] = append(bySource[it.Source], it)
	}

	now := time.Now().UTC()
	var signals []signal.TrendSignal

	// Iterate sources in their fixed declaration order so repeated runs
	// over the same input produce the same signal order.
	for _, source := range item.Sources {
		sourceItems := bySource[source]
		if len(sourceItems) == 0 {
			continue
		}

		texts := make([]string, len(sourceItems))
		for i, it := range sourceItems {
			texts[i] = it.Text
		}

		clusters := topics.ClusterByTopic(texts, a.cfg.MinClusterSize)
		if len(clusters) > a.cfg.MaxTopicsPerSource {
			clusters = clusters[:a.cfg.MaxTopicsPerSource]
		}

		for _, cluster := range clusters {
			signals = append(signals, a.buildSignal(source, sourceItems, cluster, windowStart, windowEnd, now))
		}
	}

	sort.SliceStable(signals, func(i, j int) bool {
		return signals[i].Volume*signals[i].Engagement > signals[j].Volume*signals[j].Engagement
	})

	return signals
}

func (a *Aggregator) buildSignal(
	source item.Source,
	sourceItems []item.RawItem,
	cluster topics.Cluster,
	windowStart, windowEnd, createdAt time.Time,
) signal.TrendSignal {
	engagement := 0
	results := make([]sentiment.Result, 0, len(cluster.Indexes))
	members := make([]item.RawItem, 0, len(cluster.Indexes))

	for _, idx := range cluster.Indexes {
		it := sourceItems[idx]
		members = append(members, it)
		engagement += it.Engagement()

		if it.Scored() {
			results = append(results, sentiment.Result{
				Score:      *it.SentimentScore,
				Label:      it.SentimentLabel,
				Confidence: 1,
			})
		} else {
			results = append(results, sentiment.Analyze(it.Text))
		}
	}

	agg := sentiment.Aggregate(results)

	// Samples are the cluster's strongest items by individual engagement.
	sort.SliceStable(members, func(i, j int) bool {
		return members[i].Engagement() > members[j].Engagement()
	})

	sampleCount := a.cfg.SampleSize
	if sampleCount > len(members) {
		sampleCount = len(members)
	}
	samples := make([]string, sampleCount)
	for i := 0; i < sampleCount; i++ {
		samples[i] = members[i].ID
	}

	return signal.TrendSignal{
		Topic:          cluster.Topic,
		Sources:        []string{string(source)},
		WindowStart:    windowStart,
		WindowEnd:      windowEnd,
		Volume:         len(cluster.Indexes),
		Engagement:     engagement,
		SentimentAvg:   agg.Score,
		SentimentLabel: agg.Label,
		SampleItemIDs:  samples,
		CreatedAt:      createdAt,
	}
}

// filterByWindow keeps items whose capture time falls inside the window,
// boundaries included.
func filterByWindow(items []item.RawItem, start, end time.Time) []item.RawItem {
	kept := make([]item.RawItem, 0, len(items))
	for _, it := range items {
		if it.CapturedAt.Before(start) || it.CapturedAt.After(end) {
			continue
		}
		kept = append(kept, it)
	}
	return kept
}
