package models

import "time"

// ExerciseSet is a single logged set within an exercise.
type ExerciseSet struct {
	SetNumber  int        `json:"setNumber"`
	Reps       int        `json:"reps"`
	Weight     float64    `json:"weight"` // kg
	Completed  bool       `json:"completed"`
	Difficulty Difficulty `json:"difficulty,omitempty"`
}

// PersonalRecord holds the best-ever weight and reps for an exercise.
// The two maxima are independent: they may come from different sets or even
// different sessions. The record is the pointwise maximum of each dimension,
// not a single best set.
type PersonalRecord struct {
	MaxWeight     float64 `json:"maxWeight"`
	MaxReps       int     `json:"maxReps"`
	MaxWeightDate string  `json:"maxWeightDate"` // ISO timestamp
	MaxRepsDate   string  `json:"maxRepsDate"`   // ISO timestamp
}

// WorkoutExercise is one exercise within a session, with its logged sets.
// PersonalRecord is a denormalized cache of the canonical record store,
// merged in when the session snapshot is created.
type WorkoutExercise struct {
	ExerciseID     int             `json:"exerciseId"`
	Name           string          `json:"name"`
	MuscleGroup    string          `json:"muscleGroup"`
	MET            float64         `json:"met"`
	Sets           []ExerciseSet   `json:"sets"`
	Completed      bool            `json:"completed"`
	PersonalRecord *PersonalRecord `json:"personalRecord,omitempty"`
}

// WorkoutSession is a full workout started from a schema.
// Date is a local calendar day (YYYY-MM-DD), not a UTC instant.
type WorkoutSession struct {
	ID         string            `json:"id"`
	Date       string            `json:"date"`
	SchemaID   string            `json:"schemaId"`
	SchemaName string            `json:"schemaName"`
	Exercises  []WorkoutExercise `json:"exercises"`
	StartTime  *time.Time        `json:"startTime"`
	EndTime    *time.Time        `json:"endTime"`
	Completed  bool              `json:"completed"`
}

// SessionDate parses the session's local calendar date. The date string is
// split into components rather than fed to a UTC parser so that sessions
// logged near midnight in non-UTC timezones land on the right day.
func (s WorkoutSession) SessionDate() (time.Time, bool) {
	return ParseLocalDate(s.Date)
}

// ParseLocalDate interprets a YYYY-MM-DD string as local midnight.
func ParseLocalDate(date string) (time.Time, bool) {
	t, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
