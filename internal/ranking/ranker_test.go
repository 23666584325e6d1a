// internal/ranking/ranker_test.go
package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-ranker/internal/models"
)

var equalWeights = models.WeightVector{Budget: 0.2, Flight: 0.2, Hotel: 0.2, Connectivity: 0.2, Activity: 0.2}

func scored(index int, score float64) models.Candidate {
	return models.Candidate{
		Index:  index,
		Scores: models.ComponentScores{Budget: score, Flight: score, Hotel: score, Connectivity: score, Activity: score},
	}
}

func TestDisplayScore(t *testing.T) {
	tests := []struct {
		final float64
		want  int
	}{
		{0, 40},
		{39.9, 40},
		{40.4, 40},
		{40.5, 41},
		{66.8, 67},
		{95, 95},
		{100, 95},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DisplayScore(tt.final), "final %v", tt.final)
	}
}

func TestFinalScore(t *testing.T) {
	s := models.ComponentScores{Budget: 100, Flight: 50, Hotel: 80, Connectivity: 0, Activity: 20}
	w := models.WeightVector{Budget: 0.5, Flight: 0.1, Hotel: 0.2, Connectivity: 0.1, Activity: 0.1}
	assert.InDelta(t, 50+5+16+0+2, FinalScore(s, w), 1e-9)
}

func TestRankCandidates_SortsAndTruncates(t *testing.T) {
	cands := []models.Candidate{scored(0, 50), scored(1, 90), scored(2, 70), scored(3, 90), scored(4, 10)}

	ranked, total := RankCandidates(cands, equalWeights, 3)

	assert.Equal(t, 5, total)
	require.Len(t, ranked, 3)
	assert.Equal(t, []int{1, 3, 2}, []int{ranked[0].Index, ranked[1].Index, ranked[2].Index})
	assert.Equal(t, 90, ranked[0].DisplayScore)
	assert.InDelta(t, 90.0, ranked[0].FinalScore, 1e-9)

	// input order is untouched
	assert.Equal(t, 0, cands[0].Index)
	assert.Equal(t, 0, cands[0].DisplayScore)
}

func TestRankCandidates_TiesAfterClampKeepGenerationOrder(t *testing.T) {
	cands := []models.Candidate{scored(0, 10), scored(1, 20), scored(2, 99), scored(3, 97)}

	ranked, _ := RankCandidates(cands, equalWeights, 10)

	require.Len(t, ranked, 4)
	assert.Equal(t, []int{2, 3, 0, 1}, []int{ranked[0].Index, ranked[1].Index, ranked[2].Index, ranked[3].Index})
	assert.Equal(t, 95, ranked[0].DisplayScore)
	assert.Equal(t, 95, ranked[1].DisplayScore)
	assert.Equal(t, 40, ranked[3].DisplayScore)
}

func TestRankCandidates_Empty(t *testing.T) {
	ranked, total := RankCandidates(nil, equalWeights, 6)
	assert.Empty(t, ranked)
	assert.Equal(t, 0, total)
}

func TestContributions(t *testing.T) {
	s := models.ComponentScores{Budget: 80, Flight: 60, Hotel: 90, Connectivity: 50, Activity: 100}
	contribs := Contributions(s, equalWeights)

	require.Len(t, contribs, 5)
	factors := make([]string, 0, 5)
	sum := 0.0
	for _, c := range contribs {
		factors = append(factors, c.Factor)
		assert.InDelta(t, c.Score*c.Weight, c.Contribution, 1e-9)
		sum += c.Contribution
	}
	assert.Equal(t, []string{"budget", "flight", "hotel", "connectivity", "activity"}, factors)
	assert.InDelta(t, FinalScore(s, equalWeights), sum, 1e-9)
}
