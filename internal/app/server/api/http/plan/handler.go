package plan

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"fitlog/internal/app/server/api/http/middleware/auth"
	"fitlog/internal/domain/aiplan"
)

type Handler struct {
	service    aiplan.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service aiplan.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.generateOp(), h.generate)
}

func (h *Handler) generate(ctx context.Context, input *generateInput) (*generateOutput, error) {
	if _, ok := auth.GetUserID(ctx); !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	p, err := h.service.Generate(ctx, input.Body)
	if err != nil {
		switch {
		case errors.Is(err, aiplan.ErrInvalidRequest):
			return nil, huma.Error422UnprocessableEntity(err.Error())
		case errors.Is(err, aiplan.ErrUpstream):
			return nil, huma.Error502BadGateway(err.Error())
		default:
			return nil, err
		}
	}

	out := &generateOutput{}
	out.Body.Workout = p
	return out, nil
}
