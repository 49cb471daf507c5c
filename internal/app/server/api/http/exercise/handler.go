package exercise

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"fitlog/internal/app/server/api/http/middleware/auth"
	"fitlog/internal/domain/exercise"
)

type Handler struct {
	service    exercise.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service exercise.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.bulkUpdateOp(), h.bulkUpdate)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) list(ctx context.Context, input *listInput) (*listOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	exercises, err := h.service.List(ctx, userID, input.WorkoutID)
	if err != nil {
		return nil, mapError(err)
	}
	if exercises == nil {
		exercises = []exercise.Exercise{}
	}

	return &listOutput{Body: exercises}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*output, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	e, err := h.service.Create(ctx, toDomain(userID, 0, input.Body))
	if err != nil {
		return nil, mapError(err)
	}
	return &output{Body: *e}, nil
}

func (h *Handler) bulkUpdate(ctx context.Context, input *bulkUpdateInput) (*listOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	exercises := make([]exercise.Exercise, 0, len(input.Body.Exercises))
	for _, item := range input.Body.Exercises {
		exercises = append(exercises, toDomain(userID, item.ID, item.exercisePayload))
	}

	updated, err := h.service.BulkUpdate(ctx, userID, exercises)
	if err != nil {
		return nil, mapError(err)
	}
	return &listOutput{Body: updated}, nil
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

func toDomain(userID, id int, p exercisePayload) exercise.Exercise {
	return exercise.Exercise{
		ID:          id,
		UserID:      userID,
		WorkoutID:   p.WorkoutID,
		Name:        p.Name,
		Sets:        p.Sets,
		Reps:        p.Reps,
		Weight:      p.Weight,
		RestSeconds: p.RestSeconds,
		MediaURL:    p.MediaURL,
		MuscleGroup: p.MuscleGroup,
	}
}

func mapError(err error) error {
	switch {
	case errors.Is(err, exercise.ErrNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, exercise.ErrInvalidInput):
		return huma.Error422UnprocessableEntity(err.Error())
	default:
		return err
	}
}
