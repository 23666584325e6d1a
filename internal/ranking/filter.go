// internal/ranking/filter.go
package ranking

import "trip-ranker/internal/models"

// FilterCandidates drops every candidate that violates a hard constraint.
// Soft and optimize constraints only affect scoring.
func FilterCandidates(candidates []models.Candidate, intent models.Intent) []models.Candidate {
	out := make([]models.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if violatesHardConstraint(c, intent) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func violatesHardConstraint(c models.Candidate, intent models.Intent) bool {
	if intent.Budget.ConstraintType == models.ConstraintHard &&
		intent.Budget.HasMax() &&
		c.TotalCost > intent.Budget.Max {
		return true
	}

	if intent.Connectivity.ConstraintType == models.ConstraintHard &&
		intent.Connectivity.Value == models.ConnectivityNearMetro &&
		!c.Hotel.NearMetro {
		return true
	}

	return false
}
