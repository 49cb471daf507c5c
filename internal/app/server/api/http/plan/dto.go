package plan

import "fitlog/internal/domain/aiplan"

type generateInput struct {
	Body aiplan.Request
}

type generateOutput struct {
	Body struct {
		Workout aiplan.Plan `json:"workout"`
	}
}
