// Package analytics holds the pure computation core of LiftLog: personal
// record detection, one-rep-max estimation, progressive overload suggestions,
// calorie estimation, progression extraction and aggregate statistics.
//
// Every function here is stateless and side-effect free: it takes already
// loaded session data and returns a derived result without mutating its
// inputs. "Insufficient data" is uniformly signaled by nil/zero/empty returns,
// never by errors.
package analytics

import (
	"time"

	"github.com/claude/liftlog/internal/models"
)

// PRCheckResult reports which dimensions of a personal record were beaten and
// the merged record to persist.
type PRCheckResult struct {
	NewMaxWeight bool                  `json:"newMaxWeight"`
	NewMaxReps   bool                  `json:"newMaxReps"`
	UpdatedPR    models.PersonalRecord `json:"updatedPR"`
}

// CheckForNewPRs compares the exercise's completed sets against its attached
// personal record. Returns nil when there are no completed sets or no new
// record. Ties are not new records: only a strictly greater value counts.
func CheckForNewPRs(exercise models.WorkoutExercise) *PRCheckResult {
	return CheckForNewPRsAt(exercise, time.Now())
}

// CheckForNewPRsAt is CheckForNewPRs with an explicit evaluation time, so the
// record dates are deterministic in tests.
func CheckForNewPRsAt(exercise models.WorkoutExercise, now time.Time) *PRCheckResult {
	var completed []models.ExerciseSet
	for _, s := range exercise.Sets {
		if s.Completed {
			completed = append(completed, s)
		}
	}
	if len(completed) == 0 {
		return nil
	}

	today := now.Format(time.RFC3339)
	current := models.PersonalRecord{MaxWeightDate: today, MaxRepsDate: today}
	if exercise.PersonalRecord != nil {
		current = *exercise.PersonalRecord
	}

	var maxWeightInSets float64
	var maxRepsInSets int
	for _, s := range completed {
		if s.Weight > maxWeightInSets {
			maxWeightInSets = s.Weight
		}
		if s.Reps > maxRepsInSets {
			maxRepsInSets = s.Reps
		}
	}

	newMaxWeight := maxWeightInSets > current.MaxWeight
	newMaxReps := maxRepsInSets > current.MaxReps
	if !newMaxWeight && !newMaxReps {
		return nil
	}

	// Each dimension updates independently: a weight PR does not touch the
	// reps value or its date, and vice versa.
	updated := current
	if newMaxWeight {
		updated.MaxWeight = maxWeightInSets
		updated.MaxWeightDate = today
	}
	if newMaxReps {
		updated.MaxReps = maxRepsInSets
		updated.MaxRepsDate = today
	}

	return &PRCheckResult{
		NewMaxWeight: newMaxWeight,
		NewMaxReps:   newMaxReps,
		UpdatedPR:    updated,
	}
}

// ApplyPRToExercise returns a copy of the exercise with its personal record
// replaced by the merged record, or the exercise unchanged when no new record
// was set. Applying twice with the same sets is a fixed point.
func ApplyPRToExercise(exercise models.WorkoutExercise) models.WorkoutExercise {
	return ApplyPRToExerciseAt(exercise, time.Now())
}

// ApplyPRToExerciseAt is ApplyPRToExercise with an explicit evaluation time.
func ApplyPRToExerciseAt(exercise models.WorkoutExercise, now time.Time) models.WorkoutExercise {
	result := CheckForNewPRsAt(exercise, now)
	if result == nil {
		return exercise
	}
	updated := exercise
	pr := result.UpdatedPR
	updated.PersonalRecord = &pr
	return updated
}
