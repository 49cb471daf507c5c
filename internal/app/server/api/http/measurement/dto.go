package measurement

import "fitlog/internal/domain/measurement"

type listOutput struct {
	Body []measurement.Entry
}

type createInput struct {
	Body struct {
		Date  string  `json:"date,omitempty" doc:"Day of the reading, YYYY-MM-DD or RFC3339; empty means today"`
		Value float64 `json:"value" doc:"Reading value: kilograms for weight, percent for bodyfat"`
	}
}

type deleteInput struct {
	ID int `path:"id"`
}

type output struct {
	Body measurement.Entry
}

type deleteOutput struct {
	Status int
}
