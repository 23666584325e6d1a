// internal/intent/prompt.go
package intent

import "fmt"

const systemPrompt = `You extract structured travel search intent from a traveller's message.

Decide the constraint strength of every preference from its wording:
- "hard" for strict limits ("under", "at most", "must", "only", "not above")
- "optimize" for cost or priority optimization ("cheapest", "lowest cost", "as cheap as possible")
- "soft" for preferences ("with", "prefer", "good", "nice to have")
- null when the preference is not mentioned

Answer with one JSON object and nothing else, following this shape:
{
  "destination": string | null,
  "origin": string | null,
  "departure_date": "YYYY-MM-DD" | null,
  "duration_days": number | null,
  "month": string | null,
  "mood": string | null,
  "budget": {"max": number | null, "constraint_type": "hard" | "soft" | "optimize" | null},
  "connectivity": {"value": "nearMetro" | null, "constraint_type": "hard" | "soft" | null},
  "interests": [{"type": string, "constraint_type": "hard" | "soft" | null}]
}

Use IATA airport codes for origin when the city has one. Budget amounts are in rupees.`

func userPrompt(text string) string {
	return fmt.Sprintf("Text:\n%q", text)
}
