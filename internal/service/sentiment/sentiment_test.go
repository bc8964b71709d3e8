package sentiment

import (
	"testing"

	"github.com/stretchr/testify/require"

	"trends/internal/domain/item"
)

func TestAnalyzePositive(t *testing.T) {
	r := Analyze("This new curriculum is absolutely wonderful, the students love it!")
	require.Greater(t, r.Score, item.PositiveThreshold)
	require.Equal(t, item.LabelPositive, r.Label)
	require.Greater(t, r.Confidence, 0.0)
	require.LessOrEqual(t, r.Confidence, 1.0)
}

func TestAnalyzeNegative(t *testing.T) {
	r := Analyze("This policy is terrible and everyone hates the awful rollout.")
	require.Less(t, r.Score, item.NegativeThreshold)
	require.Equal(t, item.LabelNegative, r.Label)
}

func TestAnalyzeNeutral(t *testing.T) {
	r := Analyze("The meeting is scheduled for Tuesday at the district office.")
	require.Equal(t, item.LabelNeutral, r.Label)
	require.GreaterOrEqual(t, r.Score, -1.0)
	require.LessOrEqual(t, r.Score, 1.0)
}

func TestAnalyzeEmpty(t *testing.T) {
	r := Analyze("")
	require.Equal(t, item.LabelNeutral, r.Label)
	require.Equal(t, 0.0, r.Score)
}

func TestAnalyzeBatch(t *testing.T) {
	results := AnalyzeBatch([]string{
		"I love this!",
		"I hate this!",
	})
	require.Len(t, results, 2)
	require.Equal(t, item.LabelPositive, results[0].Label)
	require.Equal(t, item.LabelNegative, results[1].Label)

	require.Empty(t, AnalyzeBatch(nil))
}

func TestAggregateEmpty(t *testing.T) {
	require.Equal(t, Neutral, Aggregate(nil))
	require.Equal(t, Neutral, Aggregate([]Result{}))
}

func TestAggregateRederivesLabel(t *testing.T) {
	// Labels are never averaged; the aggregate label comes from the mean
	// score. Two mildly positive results and one strongly negative one
	// average out negative.
	agg := Aggregate([]Result{
		{Score: 0.1, Label: item.LabelPositive, Confidence: 0.5},
		{Score: 0.1, Label: item.LabelPositive, Confidence: 0.7},
		{Score: -0.8, Label: item.LabelNegative, Confidence: 0.9},
	})

	require.InDelta(t, -0.2, agg.Score, 1e-9)
	require.Equal(t, item.LabelNegative, agg.Label)
	require.InDelta(t, 0.7, agg.Confidence, 1e-9)
}

func TestAggregateNeutralBand(t *testing.T) {
	agg := Aggregate([]Result{
		{Score: 0.04, Label: item.LabelNeutral, Confidence: 1},
		{Score: -0.04, Label: item.LabelNeutral, Confidence: 1},
	})
	require.Equal(t, item.LabelNeutral, agg.Label)
	require.InDelta(t, 0, agg.Score, 1e-9)
}
