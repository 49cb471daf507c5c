package measurement

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

// MockRepository is a mock implementation of the Repository interface for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context, userID int, kind Kind) ([]Entry, error) {
	args := m.Called(ctx, userID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Entry), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, e *Entry) (int, error) {
	args := m.Called(ctx, e)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, userID int, kind Kind, entryID int) error {
	args := m.Called(ctx, userID, kind, entryID)
	return args.Error(0)
}

func TestService_Create_NormalizesDates(t *testing.T) {
	tests := []struct {
		name string
		date string
		want string
	}{
		{"plain day", "2024-01-15", "2024-01-15"},
		{"rfc3339 timestamp", "2024-01-15T18:30:00Z", "2024-01-15"},
		{"empty means today", "", time.Now().UTC().Format(dateLayout)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			repo.On("Create", mock.Anything, mock.Anything).Return(3, nil)

			svc := NewService(repo, slog.Default())
			e, err := svc.Create(context.Background(), 1, KindWeight, tt.date, 70)

			require.NoError(t, err)
			assert.Equal(t, tt.want, e.Date)
			assert.Equal(t, 3, e.ID)
		})
	}
}

func TestService_Create_Validation(t *testing.T) {
	tests := []struct {
		name  string
		kind  Kind
		date  string
		value float64
	}{
		{"unknown kind", Kind("steps"), "2024-01-15", 1000},
		{"garbage date", KindWeight, "January 15th", 70},
		{"zero value", KindWeight, "2024-01-15", 0},
		{"negative value", KindWeight, "2024-01-15", -5},
		{"bodyfat over 100", KindBodyFat, "2024-01-15", 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			svc := NewService(repo, slog.Default())

			_, err := svc.Create(context.Background(), 1, tt.kind, tt.date, tt.value)

			assert.ErrorIs(t, err, ErrInvalidInput)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestService_List(t *testing.T) {
	repo := new(MockRepository)
	repo.On("List", mock.Anything, 1, KindBodyFat).Return([]Entry{{ID: 1, Value: 18.5}}, nil)

	svc := NewService(repo, slog.Default())
	items, err := svc.List(context.Background(), 1, KindBodyFat)

	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestService_Delete_UnknownKind(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, slog.Default())

	err := svc.Delete(context.Background(), 1, Kind("steps"), 4)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
