package aiplan

// Request describes what kind of workout the user wants generated.
// Duration is in minutes; Notes carries the free-form part of the request.
type Request struct {
	Age             int    `json:"age,omitempty"`
	ExperienceLevel string `json:"experienceLevel,omitempty"`
	Goal            string `json:"goal"`
	Duration        int    `json:"duration,omitempty"`
	Notes           string `json:"request,omitempty"`
}

// Plan is a generated workout ready to be saved as a workout with exercises.
type Plan struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Exercises   []PlanExercise `json:"exercises"`
}

type PlanExercise struct {
	Name        string  `json:"name"`
	Sets        int     `json:"sets"`
	Reps        int     `json:"reps"`
	Weight      float64 `json:"weight,omitempty"`
	RestSeconds int     `json:"restSeconds,omitempty"`
	MuscleGroup string  `json:"muscleGroup,omitempty"`
	Notes       string  `json:"notes,omitempty"`
}
