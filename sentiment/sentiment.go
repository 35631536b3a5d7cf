package sentiment

import (
	"strings"

	"github.com/grassmudhorses/vader-go/lexicon"
	"github.com/grassmudhorses/vader-go/sentitext"
)

// Scores is one VADER polarity triple. Negative and Positive are ratios in
// [0,1]; Compound is the normalized aggregate in [-1,1].
type Scores struct {
	Negative float64
	Positive float64
	Compound float64
}

// Scorer rates the polarity of a piece of text. Implementations must accept
// any string, including the empty string.
type Scorer interface {
	Score(text string) Scores
}

// Analyzer scores text against the default VADER lexicon.
type Analyzer struct{}

func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

func (a *Analyzer) Score(text string) Scores {
	// blank text is neutral; skip tokenization entirely
	if strings.TrimSpace(text) == "" {
		return Scores{}
	}

	parsed := sentitext.Parse(text, lexicon.DefaultLexicon)
	polarity := sentitext.PolarityScore(parsed)

	return Scores{
		Negative: polarity.Negative,
		Positive: polarity.Positive,
		Compound: polarity.Compound,
	}
}
