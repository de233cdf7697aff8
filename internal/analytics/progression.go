package analytics

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/claude/liftlog/internal/models"
)

// ProgressionDataPoint is one observation of an exercise on a calendar day:
// the heaviest weight lifted, the average reps per qualifying set, and the
// number of qualifying sets.
type ProgressionDataPoint struct {
	Date      string    `json:"date"`
	Weight    float64   `json:"weight"`
	Reps      int       `json:"reps"`
	Sets      int       `json:"sets"`
	Timestamp time.Time `json:"timestamp"`
}

// ExerciseProgressionData mines the sessions for a named exercise's trend over
// the last daysBack days (all history when daysBack <= 0). See
// ExerciseProgressionDataAt for the rules.
func ExerciseProgressionData(sessions []models.WorkoutSession, exerciseName string, daysBack int) []ProgressionDataPoint {
	return ExerciseProgressionDataAt(sessions, exerciseName, daysBack, time.Now())
}

// ExerciseProgressionDataAt extracts progression points relative to an
// explicit reference time.
//
// Name matching is case-insensitive and exact. All sets with a non-negative
// weight qualify, regardless of their completed flag: older data predates the
// flag and would otherwise vanish from charts. One point is emitted per
// matching exercise occurrence, then points sharing a calendar date are
// deduplicated keeping the heaviest. The result is ascending by timestamp.
func ExerciseProgressionDataAt(sessions []models.WorkoutSession, exerciseName string, daysBack int, now time.Time) []ProgressionDataPoint {
	if len(sessions) == 0 {
		return nil
	}

	var cutoff time.Time
	if daysBack > 0 {
		cutoff = now.Add(-time.Duration(daysBack) * 24 * time.Hour)
	}

	wanted := strings.ToLower(exerciseName)
	var points []ProgressionDataPoint

	for _, session := range sessions {
		sessionDate, ok := session.SessionDate()
		if !ok {
			continue
		}
		if sessionDate.Before(cutoff) {
			continue
		}

		for _, exercise := range session.Exercises {
			if strings.ToLower(exercise.Name) != wanted {
				continue
			}
			if len(exercise.Sets) == 0 {
				continue
			}

			var maxWeight float64
			totalReps := 0
			qualifying := 0
			for _, set := range exercise.Sets {
				if set.Weight < 0 {
					continue
				}
				if set.Weight > maxWeight {
					maxWeight = set.Weight
				}
				totalReps += set.Reps
				qualifying++
			}
			if qualifying == 0 {
				continue
			}

			points = append(points, ProgressionDataPoint{
				Date:      session.Date,
				Weight:    maxWeight,
				Reps:      int(math.Round(float64(totalReps) / float64(qualifying))),
				Sets:      qualifying,
				Timestamp: sessionDate,
			})
		}
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Timestamp.Before(points[j].Timestamp)
	})

	// Collapse duplicate calendar dates, keeping the heaviest point per day.
	byDate := make(map[string]ProgressionDataPoint)
	for _, p := range points {
		existing, ok := byDate[p.Date]
		if !ok || existing.Weight < p.Weight {
			byDate[p.Date] = p
		}
	}

	deduped := make([]ProgressionDataPoint, 0, len(byDate))
	for _, p := range byDate {
		deduped = append(deduped, p)
	}
	sort.Slice(deduped, func(i, j int) bool {
		return deduped[i].Timestamp.Before(deduped[j].Timestamp)
	})
	return deduped
}

// normalizeSchemaID strips hyphens so "schema-1" and "schema1" compare equal.
func normalizeSchemaID(id string) string {
	return strings.ReplaceAll(id, "-", "")
}

// ExercisesWithProgress lists the unique exercise names that have at least one
// logged set, sorted alphabetically. A non-empty schemaID restricts the scan
// to sessions of that schema (hyphen-normalized comparison).
func ExercisesWithProgress(sessions []models.WorkoutSession, schemaID string) []string {
	seen := make(map[string]struct{})

	for _, session := range sessions {
		if schemaID != "" && normalizeSchemaID(session.SchemaID) != normalizeSchemaID(schemaID) {
			continue
		}
		for _, exercise := range session.Exercises {
			if len(exercise.Sets) > 0 {
				seen[exercise.Name] = struct{}{}
			}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SchemasWithProgress lists the hyphen-normalized schema IDs that have any
// exercise with logged sets, sorted for stable output.
func SchemasWithProgress(sessions []models.WorkoutSession) []string {
	seen := make(map[string]struct{})

	for _, session := range sessions {
		for _, exercise := range session.Exercises {
			if len(exercise.Sets) > 0 {
				seen[normalizeSchemaID(session.SchemaID)] = struct{}{}
				break
			}
		}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DateRange is the first and last date covered by a progression series.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ProgressionMetrics summarizes a chronologically sorted progression series.
type ProgressionMetrics struct {
	CurrentWeight   float64   `json:"currentWeight"`
	StartWeight     float64   `json:"startWeight"`
	TotalProgress   float64   `json:"totalProgress"`
	PercentProgress float64   `json:"percentProgress"`
	WorkoutCount    int       `json:"workoutCount"`
	DateRange       DateRange `json:"dateRange"`
}

// CalculateProgressionMetrics derives start/current weight and total progress
// from sorted data points. Empty input yields the zero value, not an error.
func CalculateProgressionMetrics(dataPoints []ProgressionDataPoint) ProgressionMetrics {
	if len(dataPoints) == 0 {
		return ProgressionMetrics{}
	}

	current := dataPoints[len(dataPoints)-1].Weight
	start := dataPoints[0].Weight
	total := current - start

	percent := 0.0
	if start > 0 {
		percent = math.Round(total/start*100*100) / 100
	}

	return ProgressionMetrics{
		CurrentWeight:   current,
		StartWeight:     start,
		TotalProgress:   total,
		PercentProgress: percent,
		WorkoutCount:    len(dataPoints),
		DateRange: DateRange{
			Start: dataPoints[0].Date,
			End:   dataPoints[len(dataPoints)-1].Date,
		},
	}
}
