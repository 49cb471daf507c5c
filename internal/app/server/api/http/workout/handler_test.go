package workout

import (
	"context"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"fitlog/internal/app/server/api/http/middleware/auth"
	"fitlog/internal/domain/workout"
)

// MockService is a mock implementation of the workout.Servicer interface for testing
type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context, userID int) ([]workout.Workout, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]workout.Workout), args.Error(1)
}

func (m *MockService) Get(ctx context.Context, userID, workoutID int) (*workout.Workout, error) {
	args := m.Called(ctx, userID, workoutID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workout.Workout), args.Error(1)
}

func (m *MockService) Create(ctx context.Context, userID int, name, description string) (*workout.Workout, error) {
	args := m.Called(ctx, userID, name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workout.Workout), args.Error(1)
}

func (m *MockService) Update(ctx context.Context, userID, workoutID int, name, description string) (*workout.Workout, error) {
	args := m.Called(ctx, userID, workoutID, name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workout.Workout), args.Error(1)
}

func (m *MockService) Delete(ctx context.Context, userID, workoutID int) error {
	args := m.Called(ctx, userID, workoutID)
	return args.Error(0)
}

func authedContext(userID int) context.Context {
	return context.WithValue(context.Background(), auth.UserIDKey, userID)
}

func TestHandler_list(t *testing.T) {
	svc := new(MockService)
	svc.On("List", mock.Anything, 1).Return([]workout.Workout{{ID: 1, Name: "Push Day"}}, nil)

	h := NewHandler(svc, slog.Default(), huma.Middlewares{})
	out, err := h.list(authedContext(1), &struct{}{})

	require.NoError(t, err)
	require.Len(t, out.Body, 1)
	assert.Equal(t, "Push Day", out.Body[0].Name)
}

func TestHandler_list_EmptyBecomesArray(t *testing.T) {
	svc := new(MockService)
	svc.On("List", mock.Anything, 1).Return([]workout.Workout(nil), nil)

	h := NewHandler(svc, slog.Default(), huma.Middlewares{})
	out, err := h.list(authedContext(1), &struct{}{})

	require.NoError(t, err)
	assert.NotNil(t, out.Body, "empty list serializes as [] not null")
}

func TestHandler_list_Unauthorized(t *testing.T) {
	h := NewHandler(new(MockService), slog.Default(), huma.Middlewares{})
	_, err := h.list(context.Background(), &struct{}{})
	assert.Error(t, err)
}

func TestHandler_create(t *testing.T) {
	svc := new(MockService)
	svc.On("Create", mock.Anything, 1, "Push Day", "").
		Return(&workout.Workout{ID: 7, Name: "Push Day"}, nil)

	h := NewHandler(svc, slog.Default(), huma.Middlewares{})
	input := &createInput{}
	input.Body.Name = "Push Day"

	out, err := h.create(authedContext(1), input)
	require.NoError(t, err)
	assert.Equal(t, 7, out.Body.ID)
}

func TestHandler_find_NotFound(t *testing.T) {
	svc := new(MockService)
	svc.On("Get", mock.Anything, 1, 99).Return(nil, workout.ErrNotFound)

	h := NewHandler(svc, slog.Default(), huma.Middlewares{})
	_, err := h.find(authedContext(1), &findInput{ID: 99})

	var statusErr huma.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 404, statusErr.GetStatus())
}

func TestHandler_update_InvalidInput(t *testing.T) {
	svc := new(MockService)
	svc.On("Update", mock.Anything, 1, 7, "", "").Return(nil, workout.ErrInvalidInput)

	h := NewHandler(svc, slog.Default(), huma.Middlewares{})
	_, err := h.update(authedContext(1), &updateInput{ID: 7})

	var statusErr huma.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 422, statusErr.GetStatus())
}

func TestHandler_delete(t *testing.T) {
	svc := new(MockService)
	svc.On("Delete", mock.Anything, 1, 7).Return(nil)

	h := NewHandler(svc, slog.Default(), huma.Middlewares{})
	out, err := h.delete(authedContext(1), &deleteInput{ID: 7})

	require.NoError(t, err)
	assert.Equal(t, 204, out.Status)
	svc.AssertExpectations(t)
}
