package aiplan

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

// MockUpstream is a mock implementation of the Upstream interface for testing
type MockUpstream struct {
	mock.Mock
}

func (m *MockUpstream) Complete(ctx context.Context, prompt, schema string) (string, error) {
	args := m.Called(ctx, prompt, schema)
	return args.String(0), args.Error(1)
}

func TestService_Generate_StructuredResponse(t *testing.T) {
	upstream := new(MockUpstream)
	upstream.On("Complete", mock.Anything, mock.Anything, mock.Anything).
		Return(`{"name":"Leg Day","exercises":[{"name":"Squats","sets":5,"reps":5}]}`, nil)

	svc := NewService(upstream, slog.Default())
	plan, err := svc.Generate(context.Background(), Request{Goal: "build leg strength"})

	require.NoError(t, err)
	assert.Equal(t, "Leg Day", plan.Name)
	require.Len(t, plan.Exercises, 1)
	assert.Equal(t, "Squats", plan.Exercises[0].Name)
	upstream.AssertExpectations(t)
}

func TestService_Generate_ProseFallback(t *testing.T) {
	upstream := new(MockUpstream)
	upstream.On("Complete", mock.Anything, mock.Anything, mock.Anything).
		Return("Quick Session\n1. Burpees 3x15\n2. Plank Rows 3x12", nil)

	svc := NewService(upstream, slog.Default())
	plan, err := svc.Generate(context.Background(), Request{Goal: "conditioning"})

	require.NoError(t, err)
	assert.Equal(t, "Quick Session", plan.Name)
	assert.Len(t, plan.Exercises, 2)
}

func TestService_Generate_EmptyGoal(t *testing.T) {
	svc := NewService(new(MockUpstream), slog.Default())
	_, err := svc.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestService_Generate_UpstreamError(t *testing.T) {
	upstream := new(MockUpstream)
	upstream.On("Complete", mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("timeout"))

	svc := NewService(upstream, slog.Default())
	_, err := svc.Generate(context.Background(), Request{Goal: "strength"})
	assert.ErrorIs(t, err, ErrUpstream)
}
