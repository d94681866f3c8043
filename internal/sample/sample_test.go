package sample

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanDropsHolesWithoutMutating(t *testing.T) {
	input := []float64{3, math.NaN(), 1, math.Inf(1), 2, math.Inf(-1)}
	snapshot := append([]float64(nil), input...)

	clean := Clean(input)

	assert.Equal(t, []float64{3, 1, 2}, clean)
	assert.Len(t, input, len(snapshot))
	for i := range input {
		if math.IsNaN(snapshot[i]) {
			assert.True(t, math.IsNaN(input[i]))
			continue
		}
		assert.Equal(t, snapshot[i], input[i])
	}
}

func TestCleanEmpty(t *testing.T) {
	assert.Empty(t, Clean(nil))
	assert.NotNil(t, Clean(nil))
}

func TestCleanPairs(t *testing.T) {
	x := []float64{1, math.NaN(), 3, 4}
	y := []float64{10, 20, math.NaN(), 40}

	xs, ys := CleanPairs(x, y)

	assert.Equal(t, []float64{1, 4}, xs)
	assert.Equal(t, []float64{10, 40}, ys)
}

func TestCleanStrings(t *testing.T) {
	assert.Equal(t, []string{"GAMES", "TOOLS"}, CleanStrings([]string{"", "GAMES", "", "TOOLS"}))
}

func TestSumAndMean(t *testing.T) {
	assert.Equal(t, 0.0, Sum(nil))
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 10.0, Sum([]float64{1, 2, 3, 4}))
	assert.Equal(t, 2.5, Mean([]float64{1, 2, 3, 4}))
}

func TestRatioGuardsZeroTotals(t *testing.T) {
	assert.Equal(t, 0.0, Ratio(5, 0))
	assert.Equal(t, 0.0, Percent(0, 0))
	assert.Equal(t, 25.0, Percent(1, 4))
	assert.Equal(t, 0.0, Finite(math.NaN()))
	assert.Equal(t, 1.5, Finite(1.5))
}

func TestGroupByKeepsFirstSeenOrder(t *testing.T) {
	words := []string{"tools", "games", "tea", "go", "toys"}

	groups := GroupBy(words, func(w string) byte { return w[0] })

	assert.Len(t, groups, 2)
	assert.Equal(t, byte('t'), groups[0].Key)
	assert.Equal(t, []string{"tools", "tea", "toys"}, groups[0].Items)
	assert.Equal(t, byte('g'), groups[1].Key)
	assert.Equal(t, []string{"games", "go"}, groups[1].Items)
}

func TestGroupByEmpty(t *testing.T) {
	groups := GroupBy([]int(nil), func(i int) int { return i })
	assert.Empty(t, groups)
}
