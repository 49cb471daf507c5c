package plan

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) generateOp() huma.Operation {
	return huma.Operation{
		OperationID: "plan-generate",
		Method:      http.MethodPost,
		Path:        "/ai/generate-workout",
		Summary:     "Generate a workout plan",
		Description: "Asks the configured model for a workout matching the request and returns it as a structured plan.",
		Tags:        []string{"plans"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
