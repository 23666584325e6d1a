// internal/ranking/generator.go
package ranking

import (
	"strings"

	"trip-ranker/internal/models"
)

const (
	// MaxActivities caps the itinerary of a single bundle.
	MaxActivities = 3
	// fallbackActivities are taken from the head of the destination subset
	// when no activity matches an interest.
	fallbackActivities = 2
	// PlaceholderDestination labels bundles with no location at all.
	PlaceholderDestination = "Your Destination"
)

// ActivitySelection is the itinerary shared by every flight and hotel pair of
// one ranking run.
type ActivitySelection struct {
	Activities []models.Activity
	// Matched counts selected activities that matched an interest. Fallback
	// defaults do not count.
	Matched  int
	Cost     float64
	Location string
}

// SelectActivities picks up to MaxActivities activities at the intent's
// destination (or anywhere when it is unspecified) whose tags or moods match
// an interest. Without a match the first two activities of the subset are
// used instead.
func SelectActivities(catalog []models.Activity, intent models.Intent) ActivitySelection {
	subset := catalog
	if intent.Destination != "" {
		subset = make([]models.Activity, 0)
		for _, a := range catalog {
			if strings.EqualFold(strings.TrimSpace(a.Location), intent.Destination) {
				subset = append(subset, a)
			}
		}
	}

	interests := loweredInterests(intent.Interests)

	var selected []models.Activity
	for _, a := range subset {
		if len(selected) == MaxActivities {
			break
		}
		if matchesAny(a, interests) {
			selected = append(selected, a)
		}
	}
	matched := len(selected)

	if matched == 0 {
		n := fallbackActivities
		if len(subset) < n {
			n = len(subset)
		}
		selected = subset[:n:n]
	}

	sel := ActivitySelection{
		Activities: append([]models.Activity(nil), selected...),
		Matched:    matched,
	}
	for _, a := range sel.Activities {
		sel.Cost += a.Price
	}

	switch {
	case intent.Destination != "":
		sel.Location = intent.Destination
	case len(sel.Activities) > 0:
		sel.Location = mostFrequentLocation(sel.Activities)
	default:
		sel.Location = PlaceholderDestination
	}

	return sel
}

// GenerateCandidates builds one candidate per flight and hotel pair in
// flight-major order. Candidates share the activity selection.
func GenerateCandidates(flights []models.Flight, hotels []models.Hotel, activities []models.Activity, intent models.Intent) []models.Candidate {
	sel := SelectActivities(activities, intent)

	candidates := make([]models.Candidate, 0, len(flights)*len(hotels))
	for _, f := range flights {
		for _, h := range hotels {
			hotelCost := h.PricePerNight * float64(intent.DurationDays)
			candidates = append(candidates, models.Candidate{
				Index:             len(candidates),
				Flight:            f,
				Hotel:             h,
				Activities:        sel.Activities,
				MatchedActivities: sel.Matched,
				Destination:       sel.Location,
				HotelCost:         hotelCost,
				ActivityCost:      sel.Cost,
				TotalCost:         f.Price + hotelCost + sel.Cost,
			})
		}
	}
	return candidates
}

func loweredInterests(interests []models.Interest) []string {
	out := make([]string, 0, len(interests))
	for _, in := range interests {
		if t := strings.ToLower(strings.TrimSpace(in.Type)); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// matchesAny reports whether a tag or mood of a contains an interest or is
// contained in one.
func matchesAny(a models.Activity, interests []string) bool {
	if len(interests) == 0 {
		return false
	}
	for _, list := range [][]string{a.Tags, a.Moods} {
		for _, tag := range list {
			tag = strings.ToLower(strings.TrimSpace(tag))
			if tag == "" {
				continue
			}
			for _, in := range interests {
				if strings.Contains(tag, in) || strings.Contains(in, tag) {
					return true
				}
			}
		}
	}
	return false
}

// mostFrequentLocation breaks ties by first appearance.
func mostFrequentLocation(activities []models.Activity) string {
	counts := make(map[string]int)
	order := make([]string, 0, len(activities))
	for _, a := range activities {
		loc := strings.ToLower(strings.TrimSpace(a.Location))
		if loc == "" {
			continue
		}
		if counts[loc] == 0 {
			order = append(order, loc)
		}
		counts[loc]++
	}

	best, bestCount := "", 0
	for _, loc := range order {
		if counts[loc] > bestCount {
			best, bestCount = loc, counts[loc]
		}
	}
	if best == "" {
		return PlaceholderDestination
	}
	return best
}
