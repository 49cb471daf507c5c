package client

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeWorkout_AcceptsBothIDFields(t *testing.T) {
	var byID, byWorkoutID workoutWire
	require.NoError(t, json.Unmarshal([]byte(`{"id":5,"name":"Push Day"}`), &byID))
	require.NoError(t, json.Unmarshal([]byte(`{"workout_id":5,"name":"Push Day"}`), &byWorkoutID))

	assert.Equal(t, "5", decodeWorkout(byID).ID)
	assert.Equal(t, "5", decodeWorkout(byWorkoutID).ID)
}

func TestDecodeExercise_AcceptsIDVariants(t *testing.T) {
	var wire exerciseWire
	require.NoError(t, json.Unmarshal(
		[]byte(`{"exercise_id":3,"workout_id":7,"name":"Squats","sets":5,"reps":5}`), &wire))

	e := decodeExercise(wire)
	assert.Equal(t, "3", e.ID)
	assert.Equal(t, "7", e.WorkoutID)
	assert.Equal(t, 5, e.Sets)
}

func TestMeasurementCodec_ValueField(t *testing.T) {
	var wire measurementWire
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"date":"2024-01-15T00:00:00Z","value":70}`), &wire))

	m := decodeMeasurement(wire)
	assert.Equal(t, "1", m.ID)
	assert.Equal(t, "2024-01-15", m.Date)
	assert.Equal(t, 70.0, m.Value)

	payload, err := json.Marshal(encodeMeasurement(m))
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-01-15","value":70}`, string(payload))
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-01-15T00:00:00Z", "2024-01-15"},
		{"2024-01-15T23:30:00+00:00", "2024-01-15"},
		{"2024-01-15", "2024-01-15"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeDate(tt.in), tt.in)
	}
}

func TestTempID(t *testing.T) {
	id := TempID()
	assert.True(t, IsTempID(id))
	assert.False(t, IsTempID("42"))
	assert.False(t, IsTempID(""))
}
