package analytics

import (
	"testing"
	"time"

	"github.com/claude/liftlog/internal/models"
)

var statsTestNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.Local)

func completedSession(date string, exercises ...models.WorkoutExercise) models.WorkoutSession {
	return models.WorkoutSession{
		ID:        "s-" + date,
		Date:      date,
		SchemaID:  "schema1",
		Exercises: exercises,
		Completed: true,
	}
}

// TestCalculateExerciseVolume verifies that only completed sets contribute to
// volume.
func TestCalculateExerciseVolume(t *testing.T) {
	exercise := models.WorkoutExercise{
		Sets: []models.ExerciseSet{
			{Weight: 100, Reps: 5, Completed: true},  // 500
			{Weight: 90, Reps: 8, Completed: true},   // 720
			{Weight: 110, Reps: 3, Completed: false}, // skipped
		},
	}
	if got := CalculateExerciseVolume(exercise); got != 1220 {
		t.Errorf("volume = %v, want 1220", got)
	}
	if got := CalculateExerciseVolume(models.WorkoutExercise{}); got != 0 {
		t.Errorf("empty exercise: volume = %v, want 0", got)
	}
}

// TestCalculateWorkoutDuration verifies minute rounding and the
// missing-timestamp guard.
func TestCalculateWorkoutDuration(t *testing.T) {
	start := time.Date(2026, 5, 20, 18, 0, 0, 0, time.Local)
	end := start.Add(47*time.Minute + 40*time.Second)

	session := models.WorkoutSession{StartTime: &start, EndTime: &end}
	if got := CalculateWorkoutDuration(session); got != 48 {
		t.Errorf("duration = %d, want 48", got)
	}

	if got := CalculateWorkoutDuration(models.WorkoutSession{StartTime: &start}); got != 0 {
		t.Errorf("missing end time: duration = %d, want 0", got)
	}
	if got := CalculateWorkoutDuration(models.WorkoutSession{}); got != 0 {
		t.Errorf("missing both: duration = %d, want 0", got)
	}
}

// TestCalculateStreak_CurrentAndLongest verifies that sessions on today and
// yesterday form a current streak of 2.
func TestCalculateStreak_CurrentAndLongest(t *testing.T) {
	sessions := []models.WorkoutSession{
		completedSession("2026-06-01"), // today
		completedSession("2026-05-31"), // yesterday
	}

	streak := CalculateStreakAt(sessions, statsTestNow)
	if streak.Current != 2 || streak.Longest != 2 {
		t.Errorf("streak = %+v, want current=2 longest=2", streak)
	}
}

// TestCalculateStreak_StaleStreak verifies that a historical streak whose
// most recent day is more than one day old yields current=0 while longest is
// preserved.
func TestCalculateStreak_StaleStreak(t *testing.T) {
	sessions := []models.WorkoutSession{
		completedSession("2026-05-29"), // 3 days ago
		completedSession("2026-05-28"),
	}

	streak := CalculateStreakAt(sessions, statsTestNow)
	if streak.Current != 0 {
		t.Errorf("current = %d, want 0 (last workout too old)", streak.Current)
	}
	if streak.Longest != 2 {
		t.Errorf("longest = %d, want 2", streak.Longest)
	}
}

// TestCalculateStreak_GapsAndHistory verifies that gaps reset the running
// streak and that longest tracks the best run anywhere in history.
func TestCalculateStreak_GapsAndHistory(t *testing.T) {
	sessions := []models.WorkoutSession{
		completedSession("2026-06-01"),
		// gap
		completedSession("2026-05-20"),
		completedSession("2026-05-19"),
		completedSession("2026-05-18"),
		{ID: "x", Date: "2026-05-17", Completed: false}, // not completed, ignored
	}

	streak := CalculateStreakAt(sessions, statsTestNow)
	if streak.Current != 1 {
		t.Errorf("current = %d, want 1 (today only)", streak.Current)
	}
	if streak.Longest != 3 {
		t.Errorf("longest = %d, want 3 (mid-May run)", streak.Longest)
	}
}

// TestCalculateStreak_Empty verifies the zero result for no sessions.
func TestCalculateStreak_Empty(t *testing.T) {
	if streak := CalculateStreakAt(nil, statsTestNow); streak != (Streak{}) {
		t.Errorf("empty history: got %+v, want zero streak", streak)
	}
}

// TestGetExerciseFrequency verifies counting of completed exercises in
// completed sessions only.
func TestGetExerciseFrequency(t *testing.T) {
	sessions := []models.WorkoutSession{
		completedSession("2026-05-20",
			models.WorkoutExercise{Name: "Squat", Completed: true},
			models.WorkoutExercise{Name: "Bench Press", Completed: false},
		),
		completedSession("2026-05-22",
			models.WorkoutExercise{Name: "Squat", Completed: true},
		),
		{ID: "open", Date: "2026-05-23", Completed: false,
			Exercises: []models.WorkoutExercise{{Name: "Squat", Completed: true}}},
	}

	freq := GetExerciseFrequency(sessions)
	if freq["Squat"] != 2 {
		t.Errorf("Squat count = %d, want 2", freq["Squat"])
	}
	if _, ok := freq["Bench Press"]; ok {
		t.Error("uncompleted exercise should not be counted")
	}
}

// TestGetVolumeByWeek verifies Sunday bucketing, ascending order and the
// 12-bucket cap.
func TestGetVolumeByWeek(t *testing.T) {
	set := models.ExerciseSet{Weight: 100, Reps: 10, Completed: true} // 1000 per session

	// Two sessions in the same week (Sunday 2026-05-17 .. Saturday 2026-05-23)
	// plus one the week after.
	sessions := []models.WorkoutSession{
		completedSession("2026-05-18", models.WorkoutExercise{Sets: []models.ExerciseSet{set}}),
		completedSession("2026-05-21", models.WorkoutExercise{Sets: []models.ExerciseSet{set}}),
		completedSession("2026-05-25", models.WorkoutExercise{Sets: []models.ExerciseSet{set}}),
	}

	weeks := GetVolumeByWeek(sessions)
	if len(weeks) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(weeks))
	}
	if weeks[0].Week != "2026-05-17" || weeks[0].Volume != 2000 {
		t.Errorf("first bucket = %+v, want week 2026-05-17 volume 2000", weeks[0])
	}
	if weeks[1].Week != "2026-05-24" || weeks[1].Volume != 1000 {
		t.Errorf("second bucket = %+v, want week 2026-05-24 volume 1000", weeks[1])
	}
}

// TestGetVolumeByWeek_CapsAtTwelve verifies that only the most recent 12
// weekly buckets survive, still ascending.
func TestGetVolumeByWeek_CapsAtTwelve(t *testing.T) {
	set := models.ExerciseSet{Weight: 50, Reps: 10, Completed: true}
	var sessions []models.WorkoutSession
	day := time.Date(2025, 9, 7, 0, 0, 0, 0, time.Local) // a Sunday
	for i := 0; i < 15; i++ {
		sessions = append(sessions, completedSession(
			day.AddDate(0, 0, i*7).Format("2006-01-02"),
			models.WorkoutExercise{Sets: []models.ExerciseSet{set}},
		))
	}

	weeks := GetVolumeByWeek(sessions)
	if len(weeks) != 12 {
		t.Fatalf("expected 12 buckets, got %d", len(weeks))
	}
	for i := 1; i < len(weeks); i++ {
		if weeks[i-1].Week >= weeks[i].Week {
			t.Fatalf("buckets not ascending: %q before %q", weeks[i-1].Week, weeks[i].Week)
		}
	}
	// The three oldest weeks must have been dropped.
	if weeks[0].Week != day.AddDate(0, 0, 3*7).Format("2006-01-02") {
		t.Errorf("first bucket = %q, want the 4th week", weeks[0].Week)
	}
}

// TestGetWorkoutsByMonth verifies local year-month keys over completed
// sessions.
func TestGetWorkoutsByMonth(t *testing.T) {
	sessions := []models.WorkoutSession{
		completedSession("2026-04-28"),
		completedSession("2026-05-02"),
		completedSession("2026-05-30"),
		{ID: "open", Date: "2026-05-31", Completed: false},
	}

	monthly := GetWorkoutsByMonth(sessions)
	if monthly["2026-04"] != 1 || monthly["2026-05"] != 2 {
		t.Errorf("monthly = %v, want 2026-04:1 2026-05:2", monthly)
	}
}

// TestGetExerciseStats verifies aggregation across completed exercise
// instances and the nil result when nothing matches.
func TestGetExerciseStats(t *testing.T) {
	sessions := []models.WorkoutSession{
		completedSession("2026-05-10", models.WorkoutExercise{
			Name: "Squat", Completed: true,
			Sets: []models.ExerciseSet{
				{Weight: 80, Reps: 5, Completed: true},
				{Weight: 85, Reps: 5, Completed: true},
			},
		}),
		completedSession("2026-05-20", models.WorkoutExercise{
			Name: "Squat", Completed: true,
			Sets: []models.ExerciseSet{
				{Weight: 90, Reps: 5, Completed: true},
				{Weight: 95, Reps: 3, Completed: false}, // not completed
			},
		}),
	}

	stats := GetExerciseStats(sessions, "Squat")
	if stats == nil {
		t.Fatal("expected stats, got nil")
	}
	if stats.TotalSets != 3 {
		t.Errorf("TotalSets = %d, want 3", stats.TotalSets)
	}
	if stats.TotalReps != 15 {
		t.Errorf("TotalReps = %d, want 15", stats.TotalReps)
	}
	if stats.MaxWeight != 90 {
		t.Errorf("MaxWeight = %v, want 90 (completed sets only)", stats.MaxWeight)
	}
	if stats.TimesPerformed != 2 {
		t.Errorf("TimesPerformed = %d, want 2", stats.TimesPerformed)
	}
	if stats.LastPerformed != "2026-05-20" {
		t.Errorf("LastPerformed = %q, want 2026-05-20", stats.LastPerformed)
	}
	if want := (80.0 + 85 + 90) / 3; stats.AverageWeight != want {
		t.Errorf("AverageWeight = %v, want %v", stats.AverageWeight, want)
	}

	if stats := GetExerciseStats(sessions, "Curl"); stats != nil {
		t.Errorf("unknown exercise: got %+v, want nil", stats)
	}
}

// TestCalculateWorkoutStats verifies the orchestrated aggregate, including
// the duration average that excludes sessions without timestamps.
func TestCalculateWorkoutStats(t *testing.T) {
	start := time.Date(2026, 5, 20, 18, 0, 0, 0, time.Local)
	end := start.Add(60 * time.Minute)

	timed := completedSession("2026-05-20", models.WorkoutExercise{
		Name: "Squat", Completed: true,
		Sets: []models.ExerciseSet{{Weight: 100, Reps: 10, Completed: true}},
	})
	timed.StartTime = &start
	timed.EndTime = &end

	untimed := completedSession("2026-05-22", models.WorkoutExercise{
		Name: "Bench Press", Completed: true,
		Sets: []models.ExerciseSet{
			{Weight: 60, Reps: 10, Completed: true},
			{Weight: 60, Reps: 8, Completed: false},
		},
	})

	open := models.WorkoutSession{ID: "open", Date: "2026-05-23", Completed: false,
		Exercises: []models.WorkoutExercise{{
			Name: "Curl", Completed: true,
			Sets: []models.ExerciseSet{{Weight: 20, Reps: 12, Completed: true}},
		}},
	}

	stats := CalculateWorkoutStats([]models.WorkoutSession{timed, untimed, open})
	if stats.TotalWorkouts != 2 {
		t.Errorf("TotalWorkouts = %d, want 2", stats.TotalWorkouts)
	}
	if stats.TotalVolume != 1600 { // 1000 + 600
		t.Errorf("TotalVolume = %v, want 1600", stats.TotalVolume)
	}
	if stats.TotalSets != 2 {
		t.Errorf("TotalSets = %d, want 2", stats.TotalSets)
	}
	if stats.TotalReps != 20 {
		t.Errorf("TotalReps = %d, want 20", stats.TotalReps)
	}
	if stats.AverageWorkoutDuration != 60 {
		t.Errorf("AverageWorkoutDuration = %d, want 60 (untimed excluded)", stats.AverageWorkoutDuration)
	}
	if stats.ExerciseFrequency["Squat"] != 1 || stats.ExerciseFrequency["Bench Press"] != 1 {
		t.Errorf("frequency = %v", stats.ExerciseFrequency)
	}
	// Weekly volume uses the full list, so the open session contributes too.
	var weeklyTotal float64
	for _, w := range stats.VolumeByWeek {
		weeklyTotal += w.Volume
	}
	if weeklyTotal != 1840 { // 1600 + 240 from the open session
		t.Errorf("weekly total = %v, want 1840", weeklyTotal)
	}
}

// TestCalculateWorkoutStats_Empty verifies the zero-value aggregate for an
// empty history.
func TestCalculateWorkoutStats_Empty(t *testing.T) {
	stats := CalculateWorkoutStats(nil)
	if stats.TotalWorkouts != 0 || stats.TotalVolume != 0 || len(stats.VolumeByWeek) != 0 {
		t.Errorf("empty history: got %+v", stats)
	}
	if stats.ExerciseFrequency == nil || stats.WorkoutsByMonth == nil {
		t.Error("maps should be initialized, not nil")
	}
}
