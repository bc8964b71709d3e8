package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"trends/internal/domain/item"
)

var (
	windowEnd   = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	windowStart = windowEnd.Add(-24 * time.Hour)
)

func scoredItem(source item.Source, meta item.Meta, text string, score float64, capturedAt time.Time) item.RawItem {
	s := score
	return item.RawItem{
		ID:             item.ComputeID(source, meta.NativeID()),
		Source:         source,
		Meta:           meta,
		Text:           text,
		CreatedAt:      capturedAt,
		CapturedAt:     capturedAt,
		Lang:           "en",
		SentimentScore: &s,
		SentimentLabel: item.LabelForScore(score),
	}
}

func TestAggregateEngagementSumsAllCounts(t *testing.T) {
	a := New(Config{MinClusterSize: 1})

	captured := windowEnd.Add(-time.Hour)
	items := []item.RawItem{
		scoredItem(item.SourceReddit, item.RedditMeta{Permalink: "/r/EdTech/1/", Upvotes: 10}, "classroom technology budget debate", 0.2, captured),
		scoredItem(item.SourceReddit, item.RedditMeta{Permalink: "/r/EdTech/2/", Upvotes: 0, Comments: 8}, "classroom technology budget discussion", 0.2, captured),
		scoredItem(item.SourceReddit, item.RedditMeta{Permalink: "/r/EdTech/3/"}, "classroom technology budget concerns", 0.2, captured),
	}

	signals := a.Aggregate(items, windowStart, windowEnd)
	require.Len(t, signals, 1)

	sig := signals[0]
	require.Equal(t, 3, sig.Volume)
	require.Equal(t, 18, sig.Engagement)
	require.Equal(t, []string{"reddit"}, sig.Sources)
	require.Equal(t, windowStart, sig.WindowStart)
	require.Equal(t, windowEnd, sig.WindowEnd)
}

func TestAggregateWindowBoundariesInclusive(t *testing.T) {
	a := New(Config{MinClusterSize: 1})

	items := []item.RawItem{
		scoredItem(item.SourceReddit, item.RedditMeta{Permalink: "/r/a/"}, "grading rubric standards alignment", 0, windowStart),
		scoredItem(item.SourceReddit, item.RedditMeta{Permalink: "/r/b/"}, "grading rubric standards alignment", 0, windowEnd),
		scoredItem(item.SourceReddit, item.RedditMeta{Permalink: "/r/c/"}, "grading rubric standards alignment", 0, windowStart.Add(-time.Second)),
		scoredItem(item.SourceReddit, item.RedditMeta{Permalink: "/r/d/"}, "grading rubric standards alignment", 0, windowEnd.Add(time.Second)),
	}

	signals := a.Aggregate(items, windowStart, windowEnd)
	require.Len(t, signals, 1)
	require.Equal(t, 2, signals[0].Volume)
}

func TestAggregateSentiment(t *testing.T) {
	a := New(Config{MinClusterSize: 1})

	captured := windowEnd.Add(-time.Hour)
	items := []item.RawItem{
		scoredItem(item.SourceRSS, item.RSSMeta{Permalink: "https://example.com/1"}, "teacher shortage staffing crisis districts", 0.6, captured),
		scoredItem(item.SourceRSS, item.RSSMeta{Permalink: "https://example.com/2"}, "teacher shortage staffing crisis schools", -0.2, captured),
	}

	signals := a.Aggregate(items, windowStart, windowEnd)
	require.Len(t, signals, 1)
	require.InDelta(t, 0.2, signals[0].SentimentAvg, 1e-9)
	require.Equal(t, item.LabelPositive, signals[0].SentimentLabel)
}

func TestAggregateScoresUnscoredItems(t *testing.T) {
	a := New(Config{MinClusterSize: 1})

	captured := windowEnd.Add(-time.Hour)
	it := item.RawItem{
		ID:         "x",
		Source:     item.SourceRSS,
		Meta:       item.RSSMeta{Permalink: "https://example.com/raw"},
		Text:       "This fantastic mentorship program is a wonderful success for new teachers",
		CapturedAt: captured,
	}

	signals := a.Aggregate([]item.RawItem{it}, windowStart, windowEnd)
	require.Len(t, signals, 1)
	require.Greater(t, signals[0].SentimentAvg, 0.05)
	require.Equal(t, item.LabelPositive, signals[0].SentimentLabel)
}

func TestAggregateSamplesStrongestByEngagement(t *testing.T) {
	a := New(Config{MinClusterSize: 1, SampleSize: 2})

	captured := windowEnd.Add(-time.Hour)
	low := scoredItem(item.SourceReddit, item.RedditMeta{Permalink: "/r/low/", Upvotes: 1}, "homework policy changes district", 0, captured)
	mid := scoredItem(item.SourceReddit, item.RedditMeta{Permalink: "/r/mid/", Upvotes: 50}, "homework policy changes schools", 0, captured)
	high := scoredItem(item.SourceReddit, item.RedditMeta{Permalink: "/r/high/", Upvotes: 200}, "homework policy changes debate", 0, captured)

	signals := a.Aggregate([]item.RawItem{low, mid, high}, windowStart, windowEnd)
	require.Len(t, signals, 1)
	require.Equal(t, []string{high.ID, mid.ID}, signals[0].SampleItemIDs)
}

func TestAggregateSplitsSourcesAndOrdersByStrength(t *testing.T) {
	a := New(Config{MinClusterSize: 1})

	captured := windowEnd.Add(-time.Hour)
	items := []item.RawItem{
		scoredItem(item.SourceReddit, item.RedditMeta{Permalink: "/r/1/", Upvotes: 100}, "standardized testing schedule changes spring", 0, captured),
		scoredItem(item.SourceReddit, item.RedditMeta{Permalink: "/r/2/", Upvotes: 100}, "standardized testing schedule changes assessments", 0, captured),
		scoredItem(item.SourceTwitter, item.TwitterMeta{Permalink: "https://twitter.com/i/web/status/1", Likes: 1}, "standardized testing schedule changes spring", 0, captured),
	}

	signals := a.Aggregate(items, windowStart, windowEnd)

	// Same topic on two platforms stays two signals; the reddit one is
	// stronger and sorts first.
	require.Len(t, signals, 2)
	require.Equal(t, []string{"reddit"}, signals[0].Sources)
	require.Equal(t, 2, signals[0].Volume)
	require.Equal(t, 200, signals[0].Engagement)
	require.Equal(t, []string{"twitter"}, signals[1].Sources)
}

func TestAggregateMinClusterSize(t *testing.T) {
	a := New(DefaultConfig())

	captured := windowEnd.Add(-time.Hour)
	items := []item.RawItem{
		scoredItem(item.SourceRSS, item.RSSMeta{Permalink: "https://example.com/solo"}, "one lonely post about cafeteria renovations", 0, captured),
	}

	// Default minimum cluster size is two; a singleton produces nothing.
	require.Empty(t, a.Aggregate(items, windowStart, windowEnd))
}

func TestAggregateMaxTopicsPerSource(t *testing.T) {
	a := New(Config{MinClusterSize: 1, MaxTopicsPerSource: 1})

	captured := windowEnd.Add(-time.Hour)
	items := []item.RawItem{
		scoredItem(item.SourceRSS, item.RSSMeta{Permalink: "https://example.com/a1"}, "robotics competition teams regional finals", 0, captured),
		scoredItem(item.SourceRSS, item.RSSMeta{Permalink: "https://example.com/a2"}, "robotics competition teams regional winners", 0, captured),
		scoredItem(item.SourceRSS, item.RSSMeta{Permalink: "https://example.com/b1"}, "library funding grants expand collections", 0, captured),
	}

	signals := a.Aggregate(items, windowStart, windowEnd)
	require.Len(t, signals, 1)
	require.Equal(t, 2, signals[0].Volume)
}

func TestAggregateEmptyInput(t *testing.T) {
	a := New(DefaultConfig())
	require.Empty(t, a.Aggregate(nil, windowStart, windowEnd))
}
