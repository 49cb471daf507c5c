package client

import (
	"strconv"
	"time"
)

// Wire formats of the REST API differ from the local models in a few ways:
// ids are integers, weight and bodyfat readings carry their value in a field
// named "value", dates are RFC3339 timestamps, and some responses name the
// primary key after the table ("workout_id" instead of "id"). Each entity
// has exactly one codec here translating both directions.

type workoutWire struct {
	ID          *int64 `json:"id,omitempty"`
	WorkoutID   *int64 `json:"workout_id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type workoutPayload struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func decodeWorkout(w workoutWire) Workout {
	id := w.ID
	if id == nil {
		id = w.WorkoutID
	}
	out := Workout{Name: w.Name, Description: w.Description}
	if id != nil {
		out.ID = strconv.FormatInt(*id, 10)
	}
	return out
}

func decodeWorkouts(ws []workoutWire) []Workout {
	out := make([]Workout, 0, len(ws))
	for _, w := range ws {
		out = append(out, decodeWorkout(w))
	}
	return out
}

func encodeWorkout(w Workout) workoutPayload {
	return workoutPayload{Name: w.Name, Description: w.Description}
}

type exerciseWire struct {
	ID          *int64  `json:"id,omitempty"`
	ExerciseID  *int64  `json:"exercise_id,omitempty"`
	WorkoutID   *int64  `json:"workoutId,omitempty"`
	WorkoutIDDB *int64  `json:"workout_id,omitempty"`
	Name        string  `json:"name"`
	Sets        int     `json:"sets"`
	Reps        int     `json:"reps"`
	Weight      float64 `json:"weight"`
	RestSeconds int     `json:"restSeconds"`
	MediaURL    string  `json:"mediaUrl"`
	MuscleGroup string  `json:"muscleGroup"`
}

type exercisePayload struct {
	WorkoutID   int64   `json:"workoutId"`
	Name        string  `json:"name"`
	Sets        int     `json:"sets"`
	Reps        int     `json:"reps"`
	Weight      float64 `json:"weight"`
	RestSeconds int     `json:"restSeconds,omitempty"`
	MediaURL    string  `json:"mediaUrl,omitempty"`
	MuscleGroup string  `json:"muscleGroup,omitempty"`
}

func decodeExercise(e exerciseWire) Exercise {
	id := e.ID
	if id == nil {
		id = e.ExerciseID
	}
	workoutID := e.WorkoutID
	if workoutID == nil {
		workoutID = e.WorkoutIDDB
	}
	out := Exercise{
		Name:        e.Name,
		Sets:        e.Sets,
		Reps:        e.Reps,
		Weight:      e.Weight,
		RestSeconds: e.RestSeconds,
		MediaURL:    e.MediaURL,
		MuscleGroup: e.MuscleGroup,
	}
	if id != nil {
		out.ID = strconv.FormatInt(*id, 10)
	}
	if workoutID != nil {
		out.WorkoutID = strconv.FormatInt(*workoutID, 10)
	}
	return out
}

func decodeExercises(es []exerciseWire) []Exercise {
	out := make([]Exercise, 0, len(es))
	for _, e := range es {
		out = append(out, decodeExercise(e))
	}
	return out
}

// bulkExercisePayload is the element shape of the bulk PUT /exercises: the
// server routes each element by its integer id, so the id rides alongside
// the regular payload fields.
type bulkExercisePayload struct {
	ID int64 `json:"id"`
	exercisePayload
}

func encodeBulkExercise(e Exercise) bulkExercisePayload {
	id, _ := strconv.ParseInt(e.ID, 10, 64)
	return bulkExercisePayload{ID: id, exercisePayload: encodeExercise(e)}
}

func encodeExercise(e Exercise) exercisePayload {
	workoutID, _ := strconv.ParseInt(e.WorkoutID, 10, 64)
	return exercisePayload{
		WorkoutID:   workoutID,
		Name:        e.Name,
		Sets:        e.Sets,
		Reps:        e.Reps,
		Weight:      e.Weight,
		RestSeconds: e.RestSeconds,
		MediaURL:    e.MediaURL,
		MuscleGroup: e.MuscleGroup,
	}
}

type measurementWire struct {
	ID    *int64  `json:"id,omitempty"`
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type measurementPayload struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

func decodeMeasurement(m measurementWire) MeasurementEntry {
	out := MeasurementEntry{Date: normalizeDate(m.Date), Value: m.Value}
	if m.ID != nil {
		out.ID = strconv.FormatInt(*m.ID, 10)
	}
	return out
}

func decodeMeasurements(ms []measurementWire) []MeasurementEntry {
	out := make([]MeasurementEntry, 0, len(ms))
	for _, m := range ms {
		out = append(out, decodeMeasurement(m))
	}
	return out
}

func encodeMeasurement(m MeasurementEntry) measurementPayload {
	return measurementPayload{Date: m.Date, Value: m.Value}
}

// normalizeDate reduces an RFC3339 timestamp to its YYYY-MM-DD day. Values
// that are already plain dates pass through unchanged.
func normalizeDate(date string) string {
	if t, err := time.Parse(time.RFC3339, date); err == nil {
		return t.UTC().Format("2006-01-02")
	}
	if len(date) > 10 {
		return date[:10]
	}
	return date
}
