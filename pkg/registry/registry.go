// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"
)

const Version = "1.0.0"

// Trip returns the activities of the trip-search process in execution order.
func Trip() *ActivityRegistry {
	return &ActivityRegistry{
		Version: Version,
		Activities: []Activity{
			{
				ID:          "extract-travel-intent",
				DisplayName: "Extract Travel Intent",
				Description: "Turns a free-text request into a structured travel intent using an LLM.",
				TaskType:    "extract-travel-intent",
				Inputs:      map[string]string{"text": "string"},
				Outputs:     map[string]string{"intent": "object"},
				ErrorCodes:  []string{"INTENT_MALFORMED", "INTENT_EXTRACTION_FAILED"},
				Timeout:     "30s",
				Retries:     3,
				Tags:        []string{"llm"},
			},
			{
				ID:          "fetch-flight-offers",
				DisplayName: "Fetch Flight Offers",
				Description: "Searches live flights for the intent, falling back to the static inventory.",
				TaskType:    "fetch-flight-offers",
				Inputs:      map[string]string{"intent": "object"},
				Outputs:     map[string]string{"flights": "array", "flightSource": "string"},
				ErrorCodes:  []string{"INTENT_MALFORMED"},
				Timeout:     "20s",
				Retries:     2,
				Tags:        []string{"flights"},
			},
			{
				ID:          "rank-trip-options",
				DisplayName: "Rank Trip Options",
				Description: "Builds flight, hotel and activity bundles and ranks them against the intent.",
				TaskType:    "rank-trip-options",
				Inputs:      map[string]string{"intent": "object", "flights": "array", "flightSource": "string"},
				Outputs:     map[string]string{"result": "object"},
				ErrorCodes:  []string{"INTENT_MALFORMED", "INVENTORY_UNAVAILABLE"},
				Timeout:     "30s",
				Retries:     3,
				Tags:        []string{"ranking"},
			},
		},
	}
}

// TaskTypes returns every registered task type.
func (r *ActivityRegistry) TaskTypes() []string {
	out := make([]string, 0, len(r.Activities))
	for _, a := range r.Activities {
		out = append(out, a.TaskType)
	}
	return out
}

// Find returns the activity with taskType.
func (r *ActivityRegistry) Find(taskType string) (Activity, bool) {
	for _, a := range r.Activities {
		if a.TaskType == taskType {
			return a, true
		}
	}
	return Activity{}, false
}

// Validate checks ids are unique and every activity has a task type and a
// parsable timeout.
func (r *ActivityRegistry) Validate() error {
	seen := make(map[string]bool, len(r.Activities))
	for _, a := range r.Activities {
		if a.ID == "" || a.TaskType == "" {
			return fmt.Errorf("activity %q: id and taskType are required", a.ID)
		}
		if seen[a.ID] {
			return fmt.Errorf("duplicate activity id %q", a.ID)
		}
		seen[a.ID] = true
		if _, err := time.ParseDuration(a.Timeout); err != nil {
			return fmt.Errorf("activity %q: invalid timeout %q", a.ID, a.Timeout)
		}
		if a.Retries < 0 {
			return fmt.Errorf("activity %q: retries must not be negative", a.ID)
		}
	}
	return nil
}

// Missing lists the task types of want that r does not register, sorted.
func (r *ActivityRegistry) Missing(want *ActivityRegistry) []string {
	var missing []string
	for _, a := range want.Activities {
		if _, ok := r.Find(a.TaskType); !ok {
			missing = append(missing, a.TaskType)
		}
	}
	sort.Strings(missing)
	return missing
}

func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg ActivityRegistry
	err = json.Unmarshal(data, &reg)
	return &reg, err
}

// Save writes r to path as indented JSON, stamping LastUpdated.
func (r *ActivityRegistry) Save(path string, now time.Time) error {
	r.LastUpdated = now.UTC().Format(time.RFC3339)
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
