package workout

import "fitlog/internal/domain/workout"

type listOutput struct {
	Body []workout.Workout
}

type createInput struct {
	Body struct {
		Name        string `json:"name" minLength:"1" maxLength:"120" doc:"Workout name"`
		Description string `json:"description,omitempty" maxLength:"2000" doc:"Optional notes"`
	}
}

type findInput struct {
	ID int `path:"id"`
}

type updateInput struct {
	ID   int `path:"id"`
	Body struct {
		Name        string `json:"name" minLength:"1" maxLength:"120"`
		Description string `json:"description,omitempty" maxLength:"2000"`
	}
}

type deleteInput struct {
	ID int `path:"id"`
}

type output struct {
	Body workout.Workout
}

type deleteOutput struct {
	Status int
}
