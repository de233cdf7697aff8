package analytics

import (
	"math"

	"github.com/claude/liftlog/internal/models"
)

// Duration model constants for set-based estimation.
const (
	secondsPerRep = 3.0
	restSecPerSet = 90.0
)

// KcalStats is the calorie breakdown for a session.
type KcalStats struct {
	TotalKcal       int     `json:"totalKcal"`
	DurationMinutes float64 `json:"durationMinutes"`
	DurationHours   float64 `json:"durationHours"`
	PerMinute       int     `json:"perMinute"`
}

// CalculateSessionKcal estimates energy expenditure for a whole session:
// kcal = MET × body weight (kg) × duration (hours). Zero stats when body
// weight or duration is non-positive.
func CalculateSessionKcal(bodyWeightKg, durationMinutes, metValue float64) KcalStats {
	if bodyWeightKg <= 0 || durationMinutes <= 0 {
		return KcalStats{}
	}

	durationHours := durationMinutes / 60
	totalKcal := int(math.Round(metValue * bodyWeightKg * durationHours))
	perMinute := int(math.Round(float64(totalKcal) / durationMinutes))

	return KcalStats{
		TotalKcal:       totalKcal,
		DurationMinutes: durationMinutes,
		DurationHours:   math.Round(durationHours*100) / 100,
		PerMinute:       perMinute,
	}
}

// CalculateExerciseKcal estimates calories for one exercise from its sets,
// modeling each set as avgReps × 3 s of work plus 90 s of rest. Average reps
// is taken over all sets, completed or not. Rest is charged after the final
// set too, which overestimates single-set exercises; kept as-is for numeric
// compatibility with historical values.
func CalculateExerciseKcal(exercise models.WorkoutExercise, bodyWeightKg, metValue float64) int {
	if len(exercise.Sets) == 0 || bodyWeightKg <= 0 {
		return 0
	}

	totalReps := 0
	for _, s := range exercise.Sets {
		totalReps += s.Reps
	}
	avgReps := float64(totalReps) / float64(len(exercise.Sets))

	secPerSet := avgReps*secondsPerRep + restSecPerSet
	totalSeconds := secPerSet * float64(len(exercise.Sets))
	durationHours := totalSeconds / 3600

	return int(math.Round(metValue * bodyWeightKg * durationHours))
}

// CalculateTotalSessionKcal estimates a session's calories from its actual
// wall-clock duration when both timestamps are present, falling back to the
// per-exercise set model otherwise.
func CalculateTotalSessionKcal(session models.WorkoutSession, bodyWeightKg, defaultMETValue float64) int {
	if session.StartTime == nil || session.EndTime == nil {
		total := 0
		for _, ex := range session.Exercises {
			total += CalculateExerciseKcal(ex, bodyWeightKg, defaultMETValue)
		}
		return total
	}

	durationMinutes := session.EndTime.Sub(*session.StartTime).Minutes()
	return CalculateSessionKcal(bodyWeightKg, durationMinutes, defaultMETValue).TotalKcal
}

// MetAdjustment scales a base MET value by the user's effort rating: light
// sets burn 20% less, heavy sets 30% more. Unknown or absent ratings leave
// the base unchanged.
func MetAdjustment(difficulty models.Difficulty, baseMET float64) float64 {
	switch difficulty {
	case models.DifficultyLicht:
		return baseMET * 0.8
	case models.DifficultyGoed:
		return baseMET
	case models.DifficultyZwaar:
		return baseMET * 1.3
	default:
		return baseMET
	}
}
