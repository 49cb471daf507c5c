package exercise

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "exercises-list",
		Method:      http.MethodGet,
		Path:        "/exercises",
		Summary:     "List exercises, optionally for one workout",
		Tags:        []string{"exercises"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "exercises-create",
		Method:        http.MethodPost,
		Path:          "/exercises",
		Summary:       "Create an exercise",
		DefaultStatus: http.StatusCreated,
		Tags:          []string{"exercises"},
		Security:      []map[string][]string{{"bearer": {}}},
		Middlewares:   h.middleware,
	}
}

func (h *Handler) bulkUpdateOp() huma.Operation {
	return huma.Operation{
		OperationID: "exercises-bulk-update",
		Method:      http.MethodPut,
		Path:        "/exercises",
		Summary:     "Update a batch of exercises",
		Description: "Rewrites every exercise in the batch. No partial application: one invalid row rejects the whole request.",
		Tags:        []string{"exercises"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "exercises-delete",
		Method:      http.MethodDelete,
		Path:        "/exercises/{id}",
		Summary:     "Delete an exercise",
		Tags:        []string{"exercises"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
