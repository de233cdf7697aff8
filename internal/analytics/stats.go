package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/claude/liftlog/internal/models"
)

// weeksShown caps the weekly volume breakdown to the most recent buckets.
const weeksShown = 12

// WorkoutStats aggregates all sessions into the numbers shown on the stats
// screen.
type WorkoutStats struct {
	TotalWorkouts          int               `json:"totalWorkouts"`
	TotalVolume            float64           `json:"totalVolume"` // kg × reps
	TotalSets              int               `json:"totalSets"`
	TotalReps              int               `json:"totalReps"`
	AverageWorkoutDuration int               `json:"averageWorkoutDuration"` // minutes
	CurrentStreak          int               `json:"currentStreak"`          // days in a row
	LongestStreak          int               `json:"longestStreak"`
	ExerciseFrequency      map[string]int    `json:"exerciseFrequency"`
	VolumeByWeek           []WeekVolume      `json:"volumeByWeek"`
	WorkoutsByMonth        map[string]int    `json:"workoutsByMonth"` // YYYY-MM -> count
}

// WeekVolume is the total volume lifted in the week starting at Week (Sunday).
type WeekVolume struct {
	Week   string  `json:"week"`
	Volume float64 `json:"volume"`
}

// ExerciseStats summarizes one exercise across all completed sessions.
type ExerciseStats struct {
	Name           string  `json:"name"`
	TotalSets      int     `json:"totalSets"`
	TotalReps      int     `json:"totalReps"`
	TotalVolume    float64 `json:"totalVolume"`
	AverageWeight  float64 `json:"averageWeight"`
	MaxWeight      float64 `json:"maxWeight"`
	TimesPerformed int     `json:"timesPerformed"`
	LastPerformed  string  `json:"lastPerformed"`
}

// Streak is the current and longest run of consecutive training days.
type Streak struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// CalculateExerciseVolume sums weight × reps over the exercise's completed
// sets.
func CalculateExerciseVolume(exercise models.WorkoutExercise) float64 {
	var volume float64
	for _, s := range exercise.Sets {
		if s.Completed {
			volume += s.Weight * float64(s.Reps)
		}
	}
	return volume
}

// CalculateWorkoutDuration returns the session length in whole minutes, or 0
// when either timestamp is missing.
func CalculateWorkoutDuration(session models.WorkoutSession) int {
	if session.StartTime == nil || session.EndTime == nil {
		return 0
	}
	return int(math.Round(session.EndTime.Sub(*session.StartTime).Minutes()))
}

// CalculateStreak computes training-day streaks over completed sessions.
func CalculateStreak(sessions []models.WorkoutSession) Streak {
	return CalculateStreakAt(sessions, time.Now())
}

// CalculateStreakAt computes streaks relative to an explicit "today".
//
// The current streak is the consecutive-day run ending at the most recent
// completed session, and counts only when that session is today or yesterday;
// a longer gap means the streak is broken regardless of history. The longest
// streak scans the whole history. A day-to-day gap of exactly 1 extends a
// run; any other gap (including a same-day duplicate) resets it.
func CalculateStreakAt(sessions []models.WorkoutSession, now time.Time) Streak {
	var days []time.Time
	for _, s := range sessions {
		if !s.Completed {
			continue
		}
		d, ok := s.SessionDate()
		if !ok {
			continue
		}
		days = append(days, d)
	}
	if len(days) == 0 {
		return Streak{}
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].After(days[j])
	})

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	daysSinceLast := daysBetween(days[0], today)

	current := 0
	inHeadRun := daysSinceLast <= 1
	if inHeadRun {
		current = 1
	}

	longest := 0
	run := 1
	for i := 1; i < len(days); i++ {
		gap := daysBetween(days[i], days[i-1])
		if gap == 1 {
			run++
			if inHeadRun {
				current = run
			}
		} else {
			inHeadRun = false
			if run > longest {
				longest = run
			}
			run = 1
		}
	}
	if run > longest {
		longest = run
	}

	return Streak{Current: current, Longest: longest}
}

// daysBetween counts whole calendar days from a to b, DST-safe.
func daysBetween(a, b time.Time) int {
	au := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bu := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au).Hours() / 24)
}

// GetExerciseFrequency counts completed exercises by name across completed
// sessions.
func GetExerciseFrequency(sessions []models.WorkoutSession) map[string]int {
	frequency := make(map[string]int)
	for _, session := range sessions {
		if !session.Completed {
			continue
		}
		for _, exercise := range session.Exercises {
			if exercise.Completed {
				frequency[exercise.Name]++
			}
		}
	}
	return frequency
}

// GetVolumeByWeek buckets per-session volume by week start (Sunday) and
// returns the last 12 buckets, ascending by week. All sessions contribute;
// set-level filtering happens in CalculateExerciseVolume.
func GetVolumeByWeek(sessions []models.WorkoutSession) []WeekVolume {
	weekly := make(map[string]float64)

	for _, session := range sessions {
		date, ok := session.SessionDate()
		if !ok {
			continue
		}
		weekStart := date.AddDate(0, 0, -int(date.Weekday()))
		key := weekStart.Format("2006-01-02")

		var sessionVolume float64
		for _, exercise := range session.Exercises {
			sessionVolume += CalculateExerciseVolume(exercise)
		}
		weekly[key] += sessionVolume
	}

	buckets := make([]WeekVolume, 0, len(weekly))
	for week, volume := range weekly {
		buckets = append(buckets, WeekVolume{Week: week, Volume: volume})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Week < buckets[j].Week
	})

	if len(buckets) > weeksShown {
		buckets = buckets[len(buckets)-weeksShown:]
	}
	return buckets
}

// GetWorkoutsByMonth counts completed sessions per local year-month.
func GetWorkoutsByMonth(sessions []models.WorkoutSession) map[string]int {
	monthly := make(map[string]int)
	for _, session := range sessions {
		if !session.Completed {
			continue
		}
		date, ok := session.SessionDate()
		if !ok {
			continue
		}
		monthly[date.Format("2006-01")]++
	}
	return monthly
}

// GetExerciseStats aggregates the named exercise across completed sessions,
// counting only completed exercise instances and completed sets. Returns nil
// when the exercise was never completed anywhere.
func GetExerciseStats(sessions []models.WorkoutSession, exerciseName string) *ExerciseStats {
	stats := &ExerciseStats{Name: exerciseName}
	var weights []float64
	var lastPerformed time.Time

	for _, session := range sessions {
		if !session.Completed {
			continue
		}
		matched := false
		for _, exercise := range session.Exercises {
			if exercise.Name != exerciseName || !exercise.Completed {
				continue
			}
			matched = true
			stats.TimesPerformed++
			stats.TotalVolume += CalculateExerciseVolume(exercise)
			for _, set := range exercise.Sets {
				if !set.Completed {
					continue
				}
				stats.TotalSets++
				stats.TotalReps += set.Reps
				weights = append(weights, set.Weight)
			}
		}
		if matched {
			if date, ok := session.SessionDate(); ok && date.After(lastPerformed) {
				lastPerformed = date
				stats.LastPerformed = session.Date
			}
		}
	}

	if stats.TimesPerformed == 0 {
		return nil
	}

	var sum float64
	for _, w := range weights {
		sum += w
		if w > stats.MaxWeight {
			stats.MaxWeight = w
		}
	}
	if len(weights) > 0 {
		stats.AverageWeight = sum / float64(len(weights))
	}
	return stats
}

// CalculateWorkoutStats orchestrates the full aggregate over the session
// history. Volume/set/rep totals and the duration average cover completed
// sessions only; the streak, frequency, weekly and monthly breakdowns apply
// their own filters to the full list.
func CalculateWorkoutStats(sessions []models.WorkoutSession) WorkoutStats {
	stats := WorkoutStats{
		ExerciseFrequency: map[string]int{},
		WorkoutsByMonth:   map[string]int{},
	}
	if len(sessions) == 0 {
		return stats
	}

	var durations []int
	for _, session := range sessions {
		if !session.Completed {
			continue
		}
		stats.TotalWorkouts++
		for _, exercise := range session.Exercises {
			stats.TotalVolume += CalculateExerciseVolume(exercise)
			for _, set := range exercise.Sets {
				if set.Completed {
					stats.TotalSets++
					stats.TotalReps += set.Reps
				}
			}
		}
		// Sessions with missing timestamps are excluded from the average,
		// not averaged in as zero.
		if d := CalculateWorkoutDuration(session); d > 0 {
			durations = append(durations, d)
		}
	}

	if len(durations) > 0 {
		total := 0
		for _, d := range durations {
			total += d
		}
		stats.AverageWorkoutDuration = int(math.Round(float64(total) / float64(len(durations))))
	}

	streak := CalculateStreak(sessions)
	stats.CurrentStreak = streak.Current
	stats.LongestStreak = streak.Longest
	stats.ExerciseFrequency = GetExerciseFrequency(sessions)
	stats.VolumeByWeek = GetVolumeByWeek(sessions)
	stats.WorkoutsByMonth = GetWorkoutsByMonth(sessions)
	return stats
}
