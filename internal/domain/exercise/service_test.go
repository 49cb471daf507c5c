package exercise

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

// MockRepository is a mock implementation of the Repository interface for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context, userID int) ([]Exercise, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Exercise), args.Error(1)
}

func (m *MockRepository) ListByWorkout(ctx context.Context, userID, workoutID int) ([]Exercise, error) {
	args := m.Called(ctx, userID, workoutID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Exercise), args.Error(1)
}

func (m *MockRepository) Get(ctx context.Context, userID, exerciseID int) (*Exercise, error) {
	args := m.Called(ctx, userID, exerciseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Exercise), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, e *Exercise) (int, error) {
	args := m.Called(ctx, e)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, e *Exercise) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, userID, exerciseID int) error {
	args := m.Called(ctx, userID, exerciseID)
	return args.Error(0)
}

func validExercise() Exercise {
	return Exercise{UserID: 1, WorkoutID: 3, Name: "Squats", Sets: 5, Reps: 5, Weight: 80}
}

func TestService_List_FiltersByWorkout(t *testing.T) {
	repo := new(MockRepository)
	repo.On("ListByWorkout", mock.Anything, 1, 3).Return([]Exercise{{ID: 1, Name: "Squats"}}, nil)

	svc := NewService(repo, slog.Default())
	items, err := svc.List(context.Background(), 1, 3)

	require.NoError(t, err)
	assert.Len(t, items, 1)
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestService_List_AllWhenNoWorkout(t *testing.T) {
	repo := new(MockRepository)
	repo.On("List", mock.Anything, 1).Return([]Exercise{{ID: 1}, {ID: 2}}, nil)

	svc := NewService(repo, slog.Default())
	items, err := svc.List(context.Background(), 1, 0)

	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestService_Create(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(11, nil)

	svc := NewService(repo, slog.Default())
	e, err := svc.Create(context.Background(), validExercise())

	require.NoError(t, err)
	assert.Equal(t, 11, e.ID)
}

func TestService_Create_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Exercise)
	}{
		{"empty name", func(e *Exercise) { e.Name = " " }},
		{"missing workout", func(e *Exercise) { e.WorkoutID = 0 }},
		{"zero sets", func(e *Exercise) { e.Sets = 0 }},
		{"zero reps", func(e *Exercise) { e.Reps = 0 }},
		{"negative weight", func(e *Exercise) { e.Weight = -1 }},
		{"negative rest", func(e *Exercise) { e.RestSeconds = -30 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			svc := NewService(repo, slog.Default())

			e := validExercise()
			tt.mutate(&e)
			_, err := svc.Create(context.Background(), e)

			assert.ErrorIs(t, err, ErrInvalidInput)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestService_BulkUpdate_AllOrNothingValidation(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, slog.Default())

	bad := validExercise()
	bad.Sets = 0
	_, err := svc.BulkUpdate(context.Background(), 1, []Exercise{validExercise(), bad})

	assert.ErrorIs(t, err, ErrInvalidInput)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestService_BulkUpdate(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil).Twice()

	svc := NewService(repo, slog.Default())

	first := validExercise()
	first.ID = 1
	second := validExercise()
	second.ID = 2
	second.Name = "Front Squats"

	out, err := svc.BulkUpdate(context.Background(), 1, []Exercise{first, second})

	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Front Squats", out[1].Name)
	repo.AssertExpectations(t)
}
