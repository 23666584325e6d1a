// internal/ranking/ranker.go
package ranking

import (
	"math"
	"sort"

	"trip-ranker/internal/models"
)

const (
	DefaultTopN = 6

	// The shown match percentage never reads as 0% or 100%.
	minDisplayScore = 40
	maxDisplayScore = 95
)

// FinalScore is the weighted sum of the component scores.
func FinalScore(s models.ComponentScores, w models.WeightVector) float64 {
	return w.Budget*s.Budget +
		w.Flight*s.Flight +
		w.Hotel*s.Hotel +
		w.Connectivity*s.Connectivity +
		w.Activity*s.Activity
}

// DisplayScore rounds finalScore after clamping it to [40,95].
func DisplayScore(finalScore float64) int {
	return int(math.Round(clamp(finalScore, minDisplayScore, maxDisplayScore)))
}

// RankCandidates combines the component scores of already scored candidates,
// sorts by display score and truncates to topN. Equal
// display scores keep generation order. The second return value is the number
// of candidates before truncation. The input slice is not reordered.
func RankCandidates(candidates []models.Candidate, w models.WeightVector, topN int) ([]models.Candidate, int) {
	ranked := make([]models.Candidate, len(candidates))
	copy(ranked, candidates)

	for i := range ranked {
		ranked[i].FinalScore = FinalScore(ranked[i].Scores, w)
		ranked[i].DisplayScore = DisplayScore(ranked[i].FinalScore)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].DisplayScore != ranked[j].DisplayScore {
			return ranked[i].DisplayScore > ranked[j].DisplayScore
		}
		return ranked[i].Index < ranked[j].Index
	})

	total := len(ranked)
	if topN > 0 && total > topN {
		ranked = ranked[:topN]
	}
	return ranked, total
}

// Contributions lists each axis with its weighted share of the final score.
func Contributions(s models.ComponentScores, w models.WeightVector) []models.Contribution {
	axes := []struct {
		factor string
		score  float64
		weight float64
	}{
		{"budget", s.Budget, w.Budget},
		{"flight", s.Flight, w.Flight},
		{"hotel", s.Hotel, w.Hotel},
		{"connectivity", s.Connectivity, w.Connectivity},
		{"activity", s.Activity, w.Activity},
	}

	out := make([]models.Contribution, 0, len(axes))
	for _, a := range axes {
		out = append(out, models.Contribution{
			Factor:       a.factor,
			Score:        a.score,
			Weight:       a.weight,
			Contribution: a.score * a.weight,
		})
	}
	return out
}
