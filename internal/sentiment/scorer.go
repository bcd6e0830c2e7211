// Package sentiment implements the comment intelligence pipeline: lexical
// sentiment scoring, importance classification for feedback triage, and
// aggregation of per-comment results into dashboard statistics.
//
// All components are stateless and safe for concurrent use. Analysis never
// returns an error to the caller; malformed input degrades to a neutral
// result instead.
package sentiment

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"
)

// Label is the discrete sentiment classification of a comment.
type Label string

const (
	LabelPositive Label = "positive"
	LabelNegative Label = "negative"
	LabelNeutral  Label = "neutral"
)

// Polarity thresholds for label assignment. Anything between the two is
// considered neutral.
const (
	positiveThreshold = 0.1
	negativeThreshold = -0.1
)

// Result holds the sentiment scores for a single comment. Polarity is in
// [-1, 1], subjectivity and confidence in [0, 1]. All values are rounded to
// 3 decimal places.
type Result struct {
	Sentiment    Label   `json:"sentiment"`
	Polarity     float64 `json:"polarity"`
	Subjectivity float64 `json:"subjectivity"`
	Confidence   float64 `json:"confidence"`

	// Error carries a note when scoring degraded to the neutral fallback.
	Error string `json:"error,omitempty"`
}

// Scorer scores free-text comments with the VADER lexical model, which
// handles negation ("not good") and intensifiers ("very good") at the
// token level.
type Scorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewScorer creates a Scorer backed by a fresh VADER analyzer.
func NewScorer() *Scorer {
	return &Scorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score analyzes the given comment text and returns its sentiment. It is a
// pure function of the text and never fails: if the underlying model panics
// on pathological input, the result degrades to neutral with zero scores and
// a note in Error.
func (s *Scorer) Score(text string) (result Result) {
	defer func() {
		if rec := recover(); rec != nil {
			result = Result{
				Sentiment: LabelNeutral,
				Error:     fmt.Sprintf("sentiment analysis failed: %v", rec),
			}
		}
	}()

	scores := s.analyzer.PolarityScores(normalize(text))
	polarity := scores.Compound

	// The positive/negative proportions measure how much of the text is
	// opinion-laden at all, which stands in for subjectivity.
	subjectivity := clamp01(scores.Positive + scores.Negative)

	var label Label
	switch {
	case polarity > positiveThreshold:
		label = LabelPositive
	case polarity < negativeThreshold:
		label = LabelNegative
	default:
		label = LabelNeutral
	}

	return Result{
		Sentiment:    label,
		Polarity:     round3(polarity),
		Subjectivity: round3(subjectivity),
		Confidence:   round3(math.Abs(polarity)),
	}
}

var (
	markdownLinkPattern = regexp.MustCompile(`\[(.*?)\]\((https?://[^\s)]+)\)`)
	urlPattern          = regexp.MustCompile(`https?://\S+|www\.\S+`)
	htmlTagPattern      = regexp.MustCompile(`<[^>]*>`)
)

// normalize renders markdown comment text to plain words so that formatting
// characters and URLs do not skew the lexical model.
func normalize(input string) string {
	input = markdownLinkPattern.ReplaceAllString(input, "$1")

	rendered := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plain := htmlTagPattern.ReplaceAllString(string(rendered), " ")
	plain = urlPattern.ReplaceAllString(plain, "")

	return strings.Join(strings.Fields(plain), " ")
}

// round3 rounds to 3 decimal places for stable comparison.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
