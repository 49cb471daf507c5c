package aiplan

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/exp/slog"
)

type Servicer interface {
	Generate(ctx context.Context, req Request) (Plan, error)
}

// Upstream is the text-completion backend that actually produces plans.
type Upstream interface {
	Complete(ctx context.Context, prompt, schema string) (string, error)
}

type Service struct {
	upstream Upstream
	log      *slog.Logger
}

func NewService(upstream Upstream, log *slog.Logger) *Service {
	return &Service{
		upstream: upstream,
		log:      log.With("component", "aiplan_service"),
	}
}

func (s *Service) Generate(ctx context.Context, req Request) (Plan, error) {
	if strings.TrimSpace(req.Goal) == "" {
		return Plan{}, fmt.Errorf("%w: goal is required", ErrInvalidRequest)
	}

	raw, err := s.upstream.Complete(ctx, BuildPrompt(req), planSchema)
	if err != nil {
		s.log.Error("upstream completion failed", "error", err)
		return Plan{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	var plan Plan
	if err := json.Unmarshal([]byte(raw), &plan); err == nil && len(plan.Exercises) > 0 {
		return plan, nil
	}

	// Some models ignore the schema and answer in prose anyway.
	plan, err = ParsePlanText(raw)
	if err != nil {
		s.log.Warn("plan response not parseable", "error", err)
		return Plan{}, err
	}
	return plan, nil
}
