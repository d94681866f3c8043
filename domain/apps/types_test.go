package apps

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSentiment(t *testing.T) {
	assert.Equal(t, SentimentPositive, ParseSentiment(" positive "))
	assert.Equal(t, SentimentNeutral, ParseSentiment("Neutral"))
	assert.Equal(t, SentimentNegative, ParseSentiment("NEGATIVE"))
	assert.Equal(t, SentimentUnknown, ParseSentiment("nan"))
	assert.Equal(t, SentimentUnknown, ParseSentiment(""))
}

func TestHasRating(t *testing.T) {
	assert.False(t, AppRecord{}.HasRating())
	assert.False(t, AppRecord{Rating: Float(0)}.HasRating())
	assert.False(t, AppRecord{Rating: Float(math.NaN())}.HasRating())
	assert.True(t, AppRecord{Rating: Float(4.1)}.HasRating())
}

func TestSampleValues(t *testing.T) {
	assert.True(t, math.IsNaN(AppRecord{}.RatingValue()))
	assert.True(t, math.IsNaN(AppRecord{}.SizeValue()))
	assert.Equal(t, 12.5, AppRecord{SizeMB: Float(12.5)}.SizeValue())
	assert.True(t, math.IsNaN(ReviewRecord{}.PolarityValue()))
	assert.Equal(t, 0.4, ReviewRecord{SentimentSubjectivity: Float(0.4)}.SubjectivityValue())
}
