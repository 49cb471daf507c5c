package exercise

import "fitlog/internal/domain/exercise"

type listInput struct {
	WorkoutID int `query:"workoutId" doc:"Limit to one workout"`
}

type listOutput struct {
	Body []exercise.Exercise
}

type exercisePayload struct {
	WorkoutID   int     `json:"workoutId" minimum:"1"`
	Name        string  `json:"name" minLength:"1" maxLength:"120"`
	Sets        int     `json:"sets" minimum:"1"`
	Reps        int     `json:"reps" minimum:"1"`
	Weight      float64 `json:"weight,omitempty" minimum:"0"`
	RestSeconds int     `json:"restSeconds,omitempty" minimum:"0"`
	MediaURL    string  `json:"mediaUrl,omitempty"`
	MuscleGroup string  `json:"muscleGroup,omitempty"`
}

type createInput struct {
	Body exercisePayload
}

type bulkUpdateInput struct {
	Body struct {
		Exercises []bulkExercise `json:"exercises" minItems:"1"`
	}
}

type bulkExercise struct {
	ID int `json:"id" minimum:"1"`
	exercisePayload
}

type deleteInput struct {
	ID int `path:"id"`
}

type output struct {
	Body exercise.Exercise
}

type deleteOutput struct {
	Status int
}
