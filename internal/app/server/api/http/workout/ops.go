package workout

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "workouts-list",
		Method:      http.MethodGet,
		Path:        "/workouts",
		Summary:     "List the user's workouts",
		Tags:        []string{"workouts"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "workouts-create",
		Method:        http.MethodPost,
		Path:          "/workouts",
		Summary:       "Create a workout",
		DefaultStatus: http.StatusCreated,
		Tags:          []string{"workouts"},
		Security:      []map[string][]string{{"bearer": {}}},
		Middlewares:   h.middleware,
	}
}

func (h *Handler) findOp() huma.Operation {
	return huma.Operation{
		OperationID: "workouts-find",
		Method:      http.MethodGet,
		Path:        "/workouts/{id}",
		Summary:     "Get one workout",
		Tags:        []string{"workouts"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "workouts-update",
		Method:      http.MethodPut,
		Path:        "/workouts/{id}",
		Summary:     "Update a workout",
		Tags:        []string{"workouts"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "workouts-delete",
		Method:      http.MethodDelete,
		Path:        "/workouts/{id}",
		Summary:     "Delete a workout",
		Tags:        []string{"workouts"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
