package measurement

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"fitlog/internal/app/server/api/http/middleware/auth"
	"fitlog/internal/domain/measurement"
)

// Handler serves one measurement series. The same handler type is mounted
// twice, once per kind, so /weight and /bodyfat stay symmetric.
type Handler struct {
	kind       measurement.Kind
	service    measurement.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(kind measurement.Kind, service measurement.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		kind:       kind,
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	entries, err := h.service.List(ctx, userID, h.kind)
	if err != nil {
		return nil, mapError(err)
	}
	if entries == nil {
		entries = []measurement.Entry{}
	}

	return &listOutput{Body: entries}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*output, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	e, err := h.service.Create(ctx, userID, h.kind, input.Body.Date, input.Body.Value)
	if err != nil {
		return nil, mapError(err)
	}
	return &output{Body: *e}, nil
}

func (h *Handler) delete(ctx context.Context, input *deleteInput) (*deleteOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.service.Delete(ctx, userID, h.kind, input.ID); err != nil {
		return nil, mapError(err)
	}
	return &deleteOutput{Status: http.StatusNoContent}, nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, measurement.ErrNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, measurement.ErrInvalidInput):
		return huma.Error422UnprocessableEntity(err.Error())
	default:
		return err
	}
}
