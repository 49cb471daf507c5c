package measurement

import (
	"context"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"fitlog/internal/app/server/api/http/middleware/auth"
	"fitlog/internal/domain/measurement"
)

// MockService is a mock implementation of the measurement.Servicer interface for testing
type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context, userID int, kind measurement.Kind) ([]measurement.Entry, error) {
	args := m.Called(ctx, userID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]measurement.Entry), args.Error(1)
}

func (m *MockService) Create(ctx context.Context, userID int, kind measurement.Kind, date string, value float64) (*measurement.Entry, error) {
	args := m.Called(ctx, userID, kind, date, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*measurement.Entry), args.Error(1)
}

func (m *MockService) Delete(ctx context.Context, userID int, kind measurement.Kind, entryID int) error {
	args := m.Called(ctx, userID, kind, entryID)
	return args.Error(0)
}

func authedContext(userID int) context.Context {
	return context.WithValue(context.Background(), auth.UserIDKey, userID)
}

func TestHandler_list_UsesMountedKind(t *testing.T) {
	svc := new(MockService)
	svc.On("List", mock.Anything, 1, measurement.KindBodyFat).
		Return([]measurement.Entry{{ID: 1, Date: "2024-01-15", Value: 18.5}}, nil)

	h := NewHandler(measurement.KindBodyFat, svc, slog.Default(), huma.Middlewares{})
	out, err := h.list(authedContext(1), &struct{}{})

	require.NoError(t, err)
	require.Len(t, out.Body, 1)
	assert.Equal(t, 18.5, out.Body[0].Value)
	svc.AssertExpectations(t)
}

func TestHandler_create(t *testing.T) {
	svc := new(MockService)
	svc.On("Create", mock.Anything, 1, measurement.KindWeight, "2024-01-15", 70.0).
		Return(&measurement.Entry{ID: 3, Date: "2024-01-15", Value: 70}, nil)

	h := NewHandler(measurement.KindWeight, svc, slog.Default(), huma.Middlewares{})
	input := &createInput{}
	input.Body.Date = "2024-01-15"
	input.Body.Value = 70

	out, err := h.create(authedContext(1), input)
	require.NoError(t, err)
	assert.Equal(t, 3, out.Body.ID)
}

func TestHandler_create_InvalidValue(t *testing.T) {
	svc := new(MockService)
	svc.On("Create", mock.Anything, 1, measurement.KindWeight, "", -1.0).
		Return(nil, measurement.ErrInvalidInput)

	h := NewHandler(measurement.KindWeight, svc, slog.Default(), huma.Middlewares{})
	input := &createInput{}
	input.Body.Value = -1

	_, err := h.create(authedContext(1), input)

	var statusErr huma.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 422, statusErr.GetStatus())
}

func TestHandler_delete_NotFound(t *testing.T) {
	svc := new(MockService)
	svc.On("Delete", mock.Anything, 1, measurement.KindWeight, 99).
		Return(measurement.ErrNotFound)

	h := NewHandler(measurement.KindWeight, svc, slog.Default(), huma.Middlewares{})
	_, err := h.delete(authedContext(1), &deleteInput{ID: 99})

	var statusErr huma.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 404, statusErr.GetStatus())
}

func TestHandler_paths(t *testing.T) {
	weight := NewHandler(measurement.KindWeight, new(MockService), slog.Default(), huma.Middlewares{})
	bodyfat := NewHandler(measurement.KindBodyFat, new(MockService), slog.Default(), huma.Middlewares{})

	assert.Equal(t, "/weight", weight.path())
	assert.Equal(t, "/bodyfat", bodyfat.path())
}
