package plan

import (
	"context"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"fitlog/internal/app/server/api/http/middleware/auth"
	"fitlog/internal/domain/aiplan"
)

// MockService is a mock implementation of the aiplan.Servicer interface for testing
type MockService struct {
	mock.Mock
}

func (m *MockService) Generate(ctx context.Context, req aiplan.Request) (aiplan.Plan, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(aiplan.Plan), args.Error(1)
}

func authedContext(userID int) context.Context {
	return context.WithValue(context.Background(), auth.UserIDKey, userID)
}

func TestHandler_generate(t *testing.T) {
	svc := new(MockService)
	svc.On("Generate", mock.Anything, aiplan.Request{Goal: "strength"}).
		Return(aiplan.Plan{
			Name:      "Leg Day",
			Exercises: []aiplan.PlanExercise{{Name: "Squats", Sets: 5, Reps: 5}},
		}, nil)

	h := NewHandler(svc, slog.Default(), huma.Middlewares{})
	out, err := h.generate(authedContext(1), &generateInput{Body: aiplan.Request{Goal: "strength"}})

	require.NoError(t, err)
	assert.Equal(t, "Leg Day", out.Body.Workout.Name)
	require.Len(t, out.Body.Workout.Exercises, 1)
}

func TestHandler_generate_InvalidRequest(t *testing.T) {
	svc := new(MockService)
	svc.On("Generate", mock.Anything, mock.Anything).
		Return(aiplan.Plan{}, aiplan.ErrInvalidRequest)

	h := NewHandler(svc, slog.Default(), huma.Middlewares{})
	_, err := h.generate(authedContext(1), &generateInput{})

	var statusErr huma.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 422, statusErr.GetStatus())
}

func TestHandler_generate_UpstreamDown(t *testing.T) {
	svc := new(MockService)
	svc.On("Generate", mock.Anything, mock.Anything).
		Return(aiplan.Plan{}, aiplan.ErrUpstream)

	h := NewHandler(svc, slog.Default(), huma.Middlewares{})
	_, err := h.generate(authedContext(1), &generateInput{Body: aiplan.Request{Goal: "strength"}})

	var statusErr huma.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 502, statusErr.GetStatus())
}

func TestHandler_generate_Unauthorized(t *testing.T) {
	h := NewHandler(new(MockService), slog.Default(), huma.Middlewares{})
	_, err := h.generate(context.Background(), &generateInput{})
	assert.Error(t, err)
}
