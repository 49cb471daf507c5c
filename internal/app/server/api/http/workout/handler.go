package workout

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"fitlog/internal/app/server/api/http/middleware/auth"
	"fitlog/internal/domain/workout"
)

type Handler struct {
	service    workout.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service workout.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.findOp(), h.find)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	workouts, err := h.service.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if workouts == nil {
		workouts = []workout.Workout{}
	}

	return &listOutput{Body: workouts}, nil
}

func (h *Handler) find(ctx context.Context, input *findInput) (*output, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	w, err := h.service.Get(ctx, userID, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	return &output{Body: *w}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*output, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	w, err := h.service.Create(ctx, userID, input.Body.Name, input.Body.Description)
	if err != nil {
		return nil, mapError(err)
	}
	return &output{Body: *w}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*output, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	w, err := h.service.Update(ctx, userID, input.ID, input.Body.Name, input.Body.Description)
	if err != nil {
		return nil, mapError(err)
	}
	return &output{Body: *w}, nil
}

func (h *Handler) delete(ctx context.Context, input *deleteInput) (*deleteOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.service.Delete(ctx, userID, input.ID); err != nil {
		return nil, mapError(err)
	}
	return &deleteOutput{Status: http.StatusNoContent}, nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, workout.ErrNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, workout.ErrInvalidInput):
		return huma.Error422UnprocessableEntity(err.Error())
	default:
		return err
	}
}
