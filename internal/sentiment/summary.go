package sentiment

import (
	"math"

	"golang.org/x/sync/errgroup"
)

// maxConcurrentScoring bounds the goroutines used when summarizing a comment
// collection. Per-comment scoring is independent, so order does not matter.
const maxConcurrentScoring = 8

// Summary holds distribution statistics over a comment collection. The three
// sentiment counts and the three importance counts each sum to TotalComments.
// Percentages are rounded independently per label and may not sum to exactly
// 100.0.
type Summary struct {
	TotalComments int `json:"total_comments"`

	PositiveCount int `json:"positive_count"`
	NegativeCount int `json:"negative_count"`
	NeutralCount  int `json:"neutral_count"`

	PositivePercentage float64 `json:"positive_percentage"`
	NegativePercentage float64 `json:"negative_percentage"`
	NeutralPercentage  float64 `json:"neutral_percentage"`

	AveragePolarity     float64 `json:"average_polarity"`
	AverageSubjectivity float64 `json:"average_subjectivity"`

	HighImportanceCount      int     `json:"high_importance_count"`
	MediumImportanceCount    int     `json:"medium_importance_count"`
	LowImportanceCount       int     `json:"low_importance_count"`
	HighImportancePercentage float64 `json:"high_importance_percentage"`
}

// CommentAnalysis pairs the two per-comment results for dashboard rendering.
type CommentAnalysis struct {
	Sentiment  Result     `json:"sentiment"`
	Importance Importance `json:"importance"`
}

// Analyzer bundles the scorer and classifier behind a single entry point for
// callers that analyze whole comment collections.
type Analyzer struct {
	scorer     *Scorer
	classifier *Classifier
}

// NewAnalyzer creates an Analyzer with the default lexicon.
func NewAnalyzer() *Analyzer {
	return NewAnalyzerWithLexicon(DefaultLexicon())
}

// NewAnalyzerWithLexicon creates an Analyzer with a custom keyword lexicon.
func NewAnalyzerWithLexicon(lexicon Lexicon) *Analyzer {
	scorer := NewScorer()
	return &Analyzer{
		scorer:     scorer,
		classifier: NewClassifier(scorer, lexicon),
	}
}

// Analyze scores and classifies a single comment.
func (a *Analyzer) Analyze(text string) CommentAnalysis {
	return CommentAnalysis{
		Sentiment:  a.scorer.Score(text),
		Importance: a.classifier.Classify(text),
	}
}

// AnalyzeAll analyzes every comment concurrently, preserving input order in
// the returned slice.
func (a *Analyzer) AnalyzeAll(texts []string) []CommentAnalysis {
	analyses := make([]CommentAnalysis, len(texts))

	var g errgroup.Group
	g.SetLimit(maxConcurrentScoring)

	for i, text := range texts {
		g.Go(func() error {
			analyses[i] = a.Analyze(text)
			return nil
		})
	}

	// Scoring never returns an error; degraded results are data, not failures.
	_ = g.Wait()

	return analyses
}

// Summarize analyzes every comment and reduces the results into distribution
// statistics. Callers that already hold per-comment results should use
// SummarizeAnalyses instead of scoring the texts a second time.
func (a *Analyzer) Summarize(texts []string) Summary {
	return SummarizeAnalyses(a.AnalyzeAll(texts))
}

// SummarizeAnalyses reduces precomputed per-comment results into distribution
// statistics. An empty collection yields an explicit zero-value summary with
// no division performed.
func SummarizeAnalyses(analyses []CommentAnalysis) Summary {
	if len(analyses) == 0 {
		return Summary{}
	}

	var (
		summary         Summary
		polaritySum     float64
		subjectivitySum float64
	)
	summary.TotalComments = len(analyses)

	for _, ca := range analyses {
		switch ca.Sentiment.Sentiment {
		case LabelPositive:
			summary.PositiveCount++
		case LabelNegative:
			summary.NegativeCount++
		default:
			summary.NeutralCount++
		}
		polaritySum += ca.Sentiment.Polarity
		subjectivitySum += ca.Sentiment.Subjectivity

		switch ca.Importance.Importance {
		case TierHigh:
			summary.HighImportanceCount++
		case TierMedium:
			summary.MediumImportanceCount++
		default:
			summary.LowImportanceCount++
		}
	}

	total := len(analyses)
	summary.PositivePercentage = percentage(summary.PositiveCount, total)
	summary.NegativePercentage = percentage(summary.NegativeCount, total)
	summary.NeutralPercentage = percentage(summary.NeutralCount, total)
	summary.HighImportancePercentage = percentage(summary.HighImportanceCount, total)

	summary.AveragePolarity = round3(polaritySum / float64(total))
	summary.AverageSubjectivity = round3(subjectivitySum / float64(total))

	return summary
}

// percentage computes round(100 * count / total, 1).
func percentage(count, total int) float64 {
	return math.Round(float64(count)/float64(total)*1000) / 10
}
