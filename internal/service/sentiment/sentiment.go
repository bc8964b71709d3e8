// Package sentiment scores text polarity with VADER, which handles the
// punctuation emphasis, degree modifiers, negation, and slang that social
// media text is full of. The package is stateless by design: free
// functions over a shared lexicon, no per-call configuration.
package sentiment

import (
	"strings"

	"github.com/jonreiter/govader"

	"trends/internal/domain/item"
)

// Result is one sentiment measurement. Score is the VADER compound score
// in [-1, 1]; Confidence is the strongest of the three underlying
// category proportions.
type Result struct {
	Score      float64    `json:"score"`
	Label      item.Label `json:"label"`
	Confidence float64    `json:"confidence"`
}

// Neutral is the zero-result returned for empty input and on any
// analysis failure.
var Neutral = Result{Score: 0, Label: item.LabelNeutral, Confidence: 0}

var analyzer = govader.NewSentimentIntensityAnalyzer()

// Analyze scores a single text. It never fails: any panic inside the
// scorer is recovered and the neutral zero-result returned instead.
func Analyze(text string) (result Result) {
	defer func() {
		if recover() != nil {
			result = Neutral
		}
	}()

	scores := analyzer.PolarityScores(preprocess(text))

	confidence := scores.Positive
	if scores.Neutral > confidence {
		confidence = scores.Neutral
	}
	if scores.Negative > confidence {
		confidence = scores.Negative
	}

	return Result{
		Score:      scores.Compound,
		Label:      item.LabelForScore(scores.Compound),
		Confidence: confidence,
	}
}

// AnalyzeBatch scores each text independently.
func AnalyzeBatch(texts []string) []Result {
	results := make([]Result, len(texts))
	for i, text := range texts {
		results[i] = Analyze(text)
	}
	return results
}

// Aggregate combines measurements into one result: arithmetic mean of
// scores and confidences, with the label re-derived from the averaged
// score using the same thresholds as single-item scoring. Labels are
// never averaged directly. Empty input yields the neutral zero-result.
func Aggregate(results []Result) Result {
	if len(results) == 0 {
		return Neutral
	}

	var scoreSum, confidenceSum float64
	for _, r := range results {
		scoreSum += r.Score
		confidenceSum += r.Confidence
	}

	avgScore := scoreSum / float64(len(results))

	return Result{
		Score:      avgScore,
		Label:      item.LabelForScore(avgScore),
		Confidence: confidenceSum / float64(len(results)),
	}
}

// preprocess lowercases and collapses whitespace. Punctuation is kept
// intact because it carries sentiment signal for VADER.
func preprocess(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}
