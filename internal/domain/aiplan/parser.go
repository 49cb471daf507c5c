package aiplan

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	listMarkerRe = regexp.MustCompile(`^\s*(?:\d+[.)]\s*|[-*•]\s*)`)
	setsRepsRe   = regexp.MustCompile(`(?i)(\d+)\s*(?:sets?\s*(?:of|x|×)?|[x×])\s*(\d+)\s*(?:reps?)?`)
	weightRe     = regexp.MustCompile(`(?i)(?:at|@|with)\s*(\d+(?:\.\d+)?)\s*(?:kg|lbs?)`)
	restRe       = regexp.MustCompile(`(?i)rest\s*:?\s*(\d+)\s*(?:s\b|sec|seconds?)`)
)

// ParsePlanText extracts a Plan from a prose workout description, the
// fallback for servers that answer with free text instead of structured
// JSON. A line contributes an exercise when it carries a recognizable
// sets-by-reps figure, e.g. "Bench Press: 4x8" or "3 sets of 12 reps".
func ParsePlanText(text string) (Plan, error) {
	var plan Plan

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		body := listMarkerRe.ReplaceAllString(line, "")

		m := setsRepsRe.FindStringSubmatchIndex(body)
		if m == nil {
			if plan.Name == "" && len(plan.Exercises) == 0 && !strings.ContainsAny(body, ":") {
				plan.Name = strings.TrimRight(body, ".!")
			} else if plan.Name != "" && len(plan.Exercises) == 0 && plan.Description == "" {
				plan.Description = body
			}
			continue
		}

		sets, _ := strconv.Atoi(body[m[2]:m[3]])
		reps, _ := strconv.Atoi(body[m[4]:m[5]])

		name := strings.TrimSpace(body[:m[0]])
		name = strings.TrimRight(name, " -:–—,")
		if name == "" {
			continue
		}

		ex := PlanExercise{Name: name, Sets: sets, Reps: reps}
		if w := weightRe.FindStringSubmatch(body); w != nil {
			ex.Weight, _ = strconv.ParseFloat(w[1], 64)
		}
		if r := restRe.FindStringSubmatch(body); r != nil {
			ex.RestSeconds, _ = strconv.Atoi(r[1])
		}
		plan.Exercises = append(plan.Exercises, ex)
	}

	if len(plan.Exercises) == 0 {
		return Plan{}, ErrUnparseable
	}
	if plan.Name == "" {
		plan.Name = "Generated Workout"
	}
	return plan, nil
}
