package measurement

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// path returns "/weight" or "/bodyfat" depending on the mounted kind.
func (h *Handler) path() string {
	return "/" + string(h.kind)
}

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: string(h.kind) + "-list",
		Method:      http.MethodGet,
		Path:        h.path(),
		Summary:     "List " + string(h.kind) + " entries",
		Tags:        []string{"measurements"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   string(h.kind) + "-create",
		Method:        http.MethodPost,
		Path:          h.path(),
		Summary:       "Record a " + string(h.kind) + " entry",
		Description:   "Records one reading per day; a second reading for the same day replaces the first.",
		DefaultStatus: http.StatusCreated,
		Tags:          []string{"measurements"},
		Security:      []map[string][]string{{"bearer": {}}},
		Middlewares:   h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: string(h.kind) + "-delete",
		Method:      http.MethodDelete,
		Path:        h.path() + "/{id}",
		Summary:     "Delete a " + string(h.kind) + " entry",
		Tags:        []string{"measurements"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
