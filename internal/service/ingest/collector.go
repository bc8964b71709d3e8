// Package ingest orchestrates one full collection cycle: fetch from every
// active source, score, deduplicate into the store, aggregate the window
// into trend signals, and publish events for each stored signal.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	"trends/internal/domain/item"
	"trends/internal/domain/signal"
	"trends/internal/logging"
	"trends/internal/service/aggregate"
	"trends/internal/service/sentiment"
	"trends/internal/service/source"
)

// ItemStore is the raw item persistence the collector depends on.
type ItemStore interface {
	StoreRawItem(ctx context.Context, it item.RawItem) (id string, inserted bool, err error)
	GetRawItemsByWindow(ctx context.Context, capturedFrom, capturedTo time.Time) ([]item.RawItem, error)
}

// SignalStore is the trend signal persistence the collector depends on.
type SignalStore interface {
	StoreTrendSignal(ctx context.Context, s signal.TrendSignal) (string, error)
}

// Result summarizes one ingestion run.
type Result struct {
	RawItems     int `json:"rawItems"`
	TrendSignals int `json:"trendSignals"`
}

// Config tunes the collector.
type Config struct {
	// WindowHours bounds the aggregation window ending at run time. The
	// fetch range (hoursBack) can be wider; windowing always uses
	// capturedAt, not origin timestamps, because origin clocks are
	// untrusted.
	WindowHours int

	// EventsSubject is the NATS subject prefix for signal events.
	EventsSubject string
}

// Collector runs the ingestion pipeline.
type Collector struct {
	fetchers   []source.Fetcher
	items      ItemStore
	signals    SignalStore
	aggregator *aggregate.Aggregator
	events     *nats.Conn
	cfg        Config
	log        logging.Logger
}

// NewCollector creates a collector. events may be nil, in which case
// signal events are not published.
func NewCollector(
	fetchers []source.Fetcher,
	items ItemStore,
	signals SignalStore,
	aggregator *aggregate.Aggregator,
	events *nats.Conn,
	cfg Config,
	log logging.Logger,
) *Collector {
	if cfg.WindowHours <= 0 {
		cfg.WindowHours = 24
	}
	if cfg.EventsSubject == "" {
		cfg.EventsSubject = "trends.signal"
	}

	return &Collector{
		fetchers:   fetchers,
		items:      items,
		signals:    signals,
		aggregator: aggregator,
		events:     events,
		cfg:        cfg,
		log:        log,
	}
}

// Ingest runs one full cycle over the last hoursBack hours and reports
// how many new raw items were stored and how many signals were created.
// Source failures are tolerated per source; persistence failures abort
// the run and surface to the caller.
func (c *Collector) Ingest(ctx context.Context, hoursBack int) (Result, error) {
	var result Result

	windowEnd := time.Now().UTC()
	windowStart := windowEnd.Add(-time.Duration(c.cfg.WindowHours) * time.Hour)

	c.log.WithField("hours_back", hoursBack).Info("starting trend ingestion")

	collected := c.collect(ctx, hoursBack)
	c.log.WithField("items", len(collected)).Info("collected raw items from all sources")

	if len(collected) == 0 {
		return result, nil
	}

	items := normalize(collected, windowEnd)
	c.score(items)

	for _, it := range items {
		_, inserted, err := c.items.StoreRawItem(ctx, it)
		if err != nil {
			return result, fmt.Errorf("error storing raw item: %w", err)
		}
		if inserted {
			result.RawItems++
		}
	}
	c.log.WithField("stored", result.RawItems).Info("stored unique raw items")

	// Aggregation reads the window back from the store rather than using
	// the in-memory batch: the store is the synchronization point, and the
	// window may include items captured by earlier runs.
	stored, err := c.items.GetRawItemsByWindow(ctx, windowStart, windowEnd)
	if err != nil {
		return result, fmt.Errorf("error loading window items: %w", err)
	}

	signals := c.aggregator.Aggregate(stored, windowStart, windowEnd)

	for i := range signals {
		id, err := c.signals.StoreTrendSignal(ctx, signals[i])
		if err != nil {
			return result, fmt.Errorf("error storing trend signal: %w", err)
		}
		signals[i].ID = id
		result.TrendSignals++

		c.publishSignalEvent(signals[i])
	}

	c.log.WithFields(logging.Fields{
		"raw_items":     result.RawItems,
		"trend_signals": result.TrendSignals,
	}).Info("ingestion complete")

	return result, nil
}

// collect fans out to every active source in parallel and merges their
// output. A failing source contributes zero items and a log line; it
// never fails the run.
func (c *Collector) collect(ctx context.Context, hoursBack int) []item.RawItem {
	var (
		mu        sync.Mutex
		collected []item.RawItem
		wg        sync.WaitGroup
	)

	for _, fetcher := range c.fetchers {
		wg.Add(1)
		go func(f source.Fetcher) {
			defer wg.Done()

			items, err := f.FetchItems(ctx, hoursBack)
			if err != nil {
				c.log.WithError(err).WithField("source", f.Name()).Error("source fetch failed")
				return
			}

			mu.Lock()
			collected = append(collected, items...)
			mu.Unlock()
		}(fetcher)
	}

	wg.Wait()
	return collected
}

// score fills in sentiment for items the adapters left unscored.
func (c *Collector) score(items []item.RawItem) {
	for i := range items {
		if items[i].Scored() {
			continue
		}

		r := sentiment.Analyze(items[i].Text)
		score := r.Score
		items[i].SentimentScore = &score
		items[i].SentimentLabel = r.Label
	}
}

// publishSignalEvent announces a stored signal on the event bus.
func (c *Collector) publishSignalEvent(s signal.TrendSignal) {
	if c.events == nil {
		return
	}

	data, err := json.Marshal(s)
	if err != nil {
		c.log.WithError(err).Error("error marshaling signal event")
		return
	}

	subject := c.cfg.EventsSubject + ".created"
	if err := c.events.Publish(subject, data); err != nil {
		c.log.WithError(err).WithField("subject", subject).Error("error publishing signal event")
	}
}
