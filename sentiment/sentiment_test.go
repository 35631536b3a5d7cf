package sentiment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aneesh-aparajit/reddit-crawler/sentiment"
)

func TestScoreEmptyText(t *testing.T) {
	a := sentiment.NewAnalyzer()

	for _, text := range []string{"", "   ", "\n\t"} {
		scores := a.Score(text)
		assert.Zero(t, scores.Negative)
		assert.Zero(t, scores.Positive)
		assert.Zero(t, scores.Compound)
	}
}

func TestScorePolarity(t *testing.T) {
	a := sentiment.NewAnalyzer()

	happy := a.Score("I absolutely love this, it is wonderful and great!")
	assert.Greater(t, happy.Compound, 0.0)
	assert.Greater(t, happy.Positive, 0.0)

	angry := a.Score("This is horrible, I hate it so much. Terrible.")
	assert.Less(t, angry.Compound, 0.0)
	assert.Greater(t, angry.Negative, 0.0)
}

func TestScoreRanges(t *testing.T) {
	a := sentiment.NewAnalyzer()

	for _, text := range []string{
		"the cat sat on the mat",
		"best day ever!!!",
		"worst. day. ever.",
	} {
		scores := a.Score(text)
		assert.GreaterOrEqual(t, scores.Negative, 0.0)
		assert.LessOrEqual(t, scores.Negative, 1.0)
		assert.GreaterOrEqual(t, scores.Positive, 0.0)
		assert.LessOrEqual(t, scores.Positive, 1.0)
		assert.GreaterOrEqual(t, scores.Compound, -1.0)
		assert.LessOrEqual(t, scores.Compound, 1.0)
	}
}
