package aiplan

import (
	"fmt"
	"strings"
)

// planSchema constrains the upstream model to the Plan JSON shape so the
// response can be decoded directly instead of parsed out of prose.
const planSchema = `{
  "type": "object",
  "required": ["name", "exercises"],
  "properties": {
    "name": {"type": "string"},
    "description": {"type": "string"},
    "exercises": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["name", "sets", "reps"],
        "properties": {
          "name": {"type": "string"},
          "sets": {"type": "integer", "minimum": 1},
          "reps": {"type": "integer", "minimum": 1},
          "weight": {"type": "number", "minimum": 0},
          "restSeconds": {"type": "integer", "minimum": 0},
          "muscleGroup": {"type": "string"},
          "notes": {"type": "string"}
        }
      }
    }
  }
}`

// BuildPrompt renders the user request into the instruction sent upstream.
func BuildPrompt(req Request) string {
	var b strings.Builder
	b.WriteString("Generate a single workout as JSON matching the provided schema.\n")
	fmt.Fprintf(&b, "Goal: %s.\n", req.Goal)
	if req.Age > 0 {
		fmt.Fprintf(&b, "Age: %d.\n", req.Age)
	}
	if req.ExperienceLevel != "" {
		fmt.Fprintf(&b, "Experience level: %s.\n", req.ExperienceLevel)
	}
	if req.Duration > 0 {
		fmt.Fprintf(&b, "Target duration: %d minutes.\n", req.Duration)
	}
	if req.Notes != "" {
		fmt.Fprintf(&b, "Additional notes: %s.\n", req.Notes)
	}
	b.WriteString("Respond with JSON only, no commentary.")
	return b.String()
}
