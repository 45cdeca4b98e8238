package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaximalMarginalRelevance(t *testing.T) {
	query := []float32{1, 0}

	t.Run("most relevant candidate is selected first", func(t *testing.T) {
		candidates := [][]float32{
			{0, 1},
			{1, 0},
			{0.5, 0.5},
		}

		indices := maximalMarginalRelevance(query, candidates, 0.5, 2)

		assert.Len(t, indices, 2)
		assert.Equal(t, 1, indices[0])
	})

	t.Run("diversity beats a near duplicate", func(t *testing.T) {
		// Candidates 0 and 1 are nearly identical and most relevant;
		// candidate 2 is less relevant but points elsewhere.
		diverseQuery := []float32{1, 1}
		candidates := [][]float32{
			{1, 0.2},
			{1, 0.19},
			{0.1, 1},
		}

		indices := maximalMarginalRelevance(diverseQuery, candidates, 0.5, 2)

		assert.Equal(t, []int{0, 2}, indices)
	})

	t.Run("pure relevance keeps duplicates", func(t *testing.T) {
		diverseQuery := []float32{1, 1}
		candidates := [][]float32{
			{1, 0.2},
			{1, 0.19},
			{0.1, 1},
		}

		indices := maximalMarginalRelevance(diverseQuery, candidates, 1.0, 2)

		assert.ElementsMatch(t, []int{0, 1}, indices)
	})

	t.Run("ties break toward the lowest index", func(t *testing.T) {
		candidates := [][]float32{
			{1, 0},
			{1, 0},
			{1, 0},
		}

		indices := maximalMarginalRelevance(query, candidates, 1.0, 2)

		assert.Equal(t, []int{0, 1}, indices)
	})

	t.Run("k larger than candidate set returns everything", func(t *testing.T) {
		candidates := [][]float32{{1, 0}, {0, 1}}

		indices := maximalMarginalRelevance(query, candidates, 0.5, 10)

		assert.ElementsMatch(t, []int{0, 1}, indices)
	})

	t.Run("zero k returns nothing", func(t *testing.T) {
		assert.Nil(t, maximalMarginalRelevance(query, [][]float32{{1, 0}}, 0.5, 0))
	})

	t.Run("no candidates", func(t *testing.T) {
		assert.Nil(t, maximalMarginalRelevance(query, nil, 0.5, 3))
	})
}
