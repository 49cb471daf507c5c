package workout

import (
	"context"
	"errors"
	"strings"
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

func (m *MockRepository) List(ctx context.Context, userID int) ([]Workout, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Workout), args.Error(1)
}

func (m *MockRepository) Get(ctx context.Context, userID, workoutID int) (*Workout, error) {
	args := m.Called(ctx, userID, workoutID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Workout), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, w *Workout) (int, error) {
	args := m.Called(ctx, w)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, w *Workout) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, userID, workoutID int) error {
	args := m.Called(ctx, userID, workoutID)
	return args.Error(0)
}

func TestService_Create(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(7, nil)

	svc := NewService(repo, slog.Default())
	w, err := svc.Create(context.Background(), 1, "  Push Day  ", "Chest and triceps")

	require.NoError(t, err)
	assert.Equal(t, 7, w.ID)
	assert.Equal(t, "Push Day", w.Name, "name is trimmed")
	repo.AssertExpectations(t)
}

func TestService_Create_Validation(t *testing.T) {
	tests := []struct {
		name        string
		workoutName string
		description string
	}{
		{"empty name", "", ""},
		{"blank name", "   ", ""},
		{"name too long", strings.Repeat("x", maxNameLen+1), ""},
		{"description too long", "Push Day", strings.Repeat("x", maxDescriptionLen+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			svc := NewService(repo, slog.Default())

			_, err := svc.Create(context.Background(), 1, tt.workoutName, tt.description)

			assert.ErrorIs(t, err, ErrInvalidInput)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestService_Update(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	repo.On("Get", mock.Anything, 1, 7).Return(&Workout{ID: 7, Name: "Push Day v2"}, nil)

	svc := NewService(repo, slog.Default())
	w, err := svc.Update(context.Background(), 1, 7, "Push Day v2", "")

	require.NoError(t, err)
	assert.Equal(t, "Push Day v2", w.Name)
	repo.AssertExpectations(t)
}

func TestService_Update_NotFound(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Update", mock.Anything, mock.Anything).Return(ErrNotFound)

	svc := NewService(repo, slog.Default())
	_, err := svc.Update(context.Background(), 1, 99, "Missing", "")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_List_RepoError(t *testing.T) {
	repo := new(MockRepository)
	repo.On("List", mock.Anything, 1).Return(nil, errors.New("db down"))

	svc := NewService(repo, slog.Default())
	_, err := svc.List(context.Background(), 1)

	assert.Error(t, err)
}
