// internal/ranking/weights.go
package ranking

import "trip-ranker/internal/models"

// PriorityTable maps a constraint strength to its numeric priority.
type PriorityTable map[models.ConstraintType]int

// DefaultPriorities: hard=3, optimize=2, soft=1, none=0.
var DefaultPriorities = PriorityTable{
	models.ConstraintHard:     3,
	models.ConstraintOptimize: 2,
	models.ConstraintSoft:     1,
	models.ConstraintNone:     0,
}

// Flight and hotel quality always count.
const fixedPriority = 1

// Priority returns 0 for unknown constraint types.
func (p PriorityTable) Priority(c models.ConstraintType) int {
	return p[c]
}

// Weights turns the intent's constraint strengths into a weight vector summing
// to 1. The activity priority is the strongest interest, not the sum. When the
// user stated no budget, connectivity or interest preference every axis weighs
// 0.2.
func (p PriorityTable) Weights(intent models.Intent) models.WeightVector {
	budget := p.Priority(intent.Budget.ConstraintType)
	connectivity := p.Priority(intent.Connectivity.ConstraintType)

	activity := 0
	for _, in := range intent.Interests {
		if pr := p.Priority(in.ConstraintType); pr > activity {
			activity = pr
		}
	}

	if budget+connectivity+activity == 0 {
		return models.WeightVector{Budget: 0.2, Flight: 0.2, Hotel: 0.2, Connectivity: 0.2, Activity: 0.2}
	}

	sum := float64(budget + connectivity + activity + 2*fixedPriority)
	return models.WeightVector{
		Budget:       float64(budget) / sum,
		Flight:       fixedPriority / sum,
		Hotel:        fixedPriority / sum,
		Connectivity: float64(connectivity) / sum,
		Activity:     float64(activity) / sum,
	}
}

// CalculateWeights uses DefaultPriorities.
func CalculateWeights(intent models.Intent) models.WeightVector {
	return DefaultPriorities.Weights(intent)
}
