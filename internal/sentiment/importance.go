package sentiment

import "strings"

// Tier is the actionability classification of a comment, used by authors to
// triage large comment volumes.
type Tier string

const (
	TierHigh   Tier = "HIGH"
	TierMedium Tier = "MEDIUM"
	TierLow    Tier = "LOW"
)

// Importance holds the triage classification for a single comment.
type Importance struct {
	Importance   Tier   `json:"importance"`
	Reason       string `json:"reason"`
	Score        int    `json:"score"`
	WordCount    int    `json:"word_count"`
	HasQuestions bool   `json:"has_questions"`
	HasEmphasis  bool   `json:"has_emphasis"`
}

// Lexicon is the keyword configuration driving the classifier. Keywords are
// matched by case-insensitive substring containment, not tokenization, so
// overlapping entries multi-count; the scoring arithmetic depends on that.
type Lexicon struct {
	// High signals constructive or analytical feedback.
	High []string
	// Medium signals appreciation or conversational observations.
	Medium []string
	// Low signals filler acknowledgements.
	Low []string
	// Constructive is the subset of suggestion words that, combined with
	// negative polarity, marks constructive criticism.
	Constructive []string
}

// DefaultLexicon returns the built-in keyword lists. Callers get a fresh
// copy so the defaults cannot be mutated through a shared slice.
func DefaultLexicon() Lexicon {
	return Lexicon{
		High: []string{
			"improve", "improvement", "suggest", "suggestion", "feedback",
			"consider", "could better", "issue", "problem", "bug",
			"feature request", "enhancement", "detailed", "comprehensive",
			"research", "analysis", "insight", "perspective", "however",
			"moreover", "furthermore", "alternatively", "instead", "better",
			"should", "could", "would be better", "variety", "different",
		},
		Medium: []string{
			"great", "good", "nice", "love", "like", "awesome",
			"interesting", "useful", "helpful", "appreciate", "thanks",
			"way", "by the way", "though", "but", "yet", "though",
		},
		Low: []string{
			"ok", "fine", "hmm", "lol", "yes", "no", "cool",
			"+1", "agreed", "same", "this", "that", "it is",
		},
		Constructive: []string{
			"could", "should", "better", "improve", "instead", "variety",
		},
	}
}

// constructiveBoost is added to the composite score when negative tone pairs
// with suggestion language: criticism with a fix attached is high-value
// feedback, not noise.
const constructiveBoost = 4

// Classifier assigns an importance tier to comment text using lexical
// heuristics plus the sentiment scorer's polarity.
type Classifier struct {
	scorer  *Scorer
	lexicon Lexicon
}

// NewClassifier creates a Classifier using the given scorer and lexicon.
func NewClassifier(scorer *Scorer, lexicon Lexicon) *Classifier {
	return &Classifier{scorer: scorer, lexicon: lexicon}
}

// features holds everything the tier rules look at for one comment.
type features struct {
	highCount       int
	mediumCount     int
	lowCount        int
	wordCount       int
	hasQuestions    bool
	hasEmphasis     bool
	isNegative      bool
	hasConstruction bool
	score           int
}

// tierRule is one row of the tier decision table.
type tierRule struct {
	tier    Tier
	reason  string
	matches func(f features) bool
}

// tierRules is evaluated in order; the first matching rule wins. The final
// rule always matches. The reasons are fixed per tier and do not explain
// which clause fired.
var tierRules = []tierRule{
	{
		tier:   TierHigh,
		reason: "Contains constructive feedback or detailed insights",
		matches: func(f features) bool {
			return f.highCount >= 1 ||
				(f.isNegative && f.hasConstruction && f.wordCount >= 15)
		},
	},
	{
		tier:   TierMedium,
		reason: "Contains suggestions or observations for improvement",
		matches: func(f features) bool {
			return (f.mediumCount >= 1 && (f.hasQuestions || f.hasConstruction)) ||
				f.score >= 3
		},
	},
	{
		tier:    TierLow,
		reason:  "Generic or minimal engagement",
		matches: func(features) bool { return true },
	},
}

// Classify assigns an importance tier to the given comment text. Like Score,
// it is pure and tolerates empty strings (word count 0, all flags false,
// tier LOW).
func (c *Classifier) Classify(text string) Importance {
	f := c.extractFeatures(text)

	for _, rule := range tierRules {
		if rule.matches(f) {
			return Importance{
				Importance:   rule.tier,
				Reason:       rule.reason,
				Score:        f.score,
				WordCount:    f.wordCount,
				HasQuestions: f.hasQuestions,
				HasEmphasis:  f.hasEmphasis,
			}
		}
	}

	// Unreachable: the LOW rule always matches.
	return Importance{Importance: TierLow}
}

func (c *Classifier) extractFeatures(text string) features {
	lower := strings.ToLower(text)

	f := features{
		highCount:       countMatches(lower, c.lexicon.High),
		mediumCount:     countMatches(lower, c.lexicon.Medium),
		lowCount:        countMatches(lower, c.lexicon.Low),
		wordCount:       len(strings.Fields(text)),
		hasQuestions:    strings.Contains(text, "?"),
		hasEmphasis:     strings.Contains(text, "!"),
		hasConstruction: anyMatch(lower, c.lexicon.Constructive),
	}

	f.isNegative = c.scorer.Score(text).Polarity < negativeThreshold

	f.score = 3*f.highCount + f.mediumCount + boolToInt(f.hasQuestions) + boolToInt(f.hasEmphasis)
	if f.isNegative && f.hasConstruction {
		f.score += constructiveBoost
	}

	return f
}

// countMatches counts how many keywords appear in the text. Each keyword
// contributes at most 1 regardless of how often it occurs.
func countMatches(lower string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			n++
		}
	}
	return n
}

func anyMatch(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
