package client

import (
	"fmt"
	"strings"
	"time"
)

// Entity names the four record kinds held in the local store and tagged on
// queue entries.
type Entity string

const (
	EntityWorkout  Entity = "workout"
	EntityExercise Entity = "exercise"
	EntityWeight   Entity = "weight"
	EntityBodyFat  Entity = "bodyfat"
)

// Workout is the local representation of a workout. The ID is the
// server-assigned integer rendered as a string, or a temporary id for
// records created while offline. ClientUID is a stable client-generated
// identifier that survives the temp-to-server id swap.
type Workout struct {
	ID          string `json:"id"`
	ClientUID   string `json:"-"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Pending     bool   `json:"_pending,omitempty"`
}

type Exercise struct {
	ID          string  `json:"id"`
	ClientUID   string  `json:"-"`
	WorkoutID   string  `json:"workoutId"`
	Name        string  `json:"name"`
	Sets        int     `json:"sets"`
	Reps        int     `json:"reps"`
	Weight      float64 `json:"weight"`
	RestSeconds int     `json:"restSeconds"`
	MediaURL    string  `json:"mediaUrl"`
	MuscleGroup string  `json:"muscleGroup"`
	Pending     bool    `json:"_pending,omitempty"`
}

// MeasurementEntry is a dated scalar reading: body weight in kilograms or
// body fat in percent, depending on which store it lives in. Date is always
// normalized to YYYY-MM-DD.
type MeasurementEntry struct {
	ID        string  `json:"id"`
	ClientUID string  `json:"-"`
	Date      string  `json:"date"`
	Value     float64 `json:"value"`
	Pending   bool    `json:"_pending,omitempty"`
}

const tempIDPrefix = "temp-"

// TempID returns a temporary record id for offline-created records. The id
// is replaced by the server-assigned one when the queued create is replayed.
func TempID() string {
	return fmt.Sprintf("%s%d", tempIDPrefix, time.Now().UnixNano())
}

// IsTempID reports whether the id was generated by TempID.
func IsTempID(id string) bool {
	return strings.HasPrefix(id, tempIDPrefix)
}
