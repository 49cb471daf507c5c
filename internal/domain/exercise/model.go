package exercise

type Exercise struct {
	ID          int     `json:"id"`
	UserID      int     `json:"-"`
	WorkoutID   int     `json:"workoutId"`
	Name        string  `json:"name"`
	Sets        int     `json:"sets"`
	Reps        int     `json:"reps"`
	Weight      float64 `json:"weight"`
	RestSeconds int     `json:"restSeconds"`
	MediaURL    string  `json:"mediaUrl,omitempty"`
	MuscleGroup string  `json:"muscleGroup,omitempty"`
}
