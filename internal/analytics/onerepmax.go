package analytics

import (
	"math"

	"github.com/claude/liftlog/internal/models"
)

// chartPercentages are the fixed 1RM percentages shown in the progression
// chart, from warmup range up to near-max.
var chartPercentages = []int{50, 60, 70, 75, 80, 85, 90, 95}

// CalculateOneRepMax estimates the maximal single-rep weight from a weight and
// rep count using the Epley formula: 1RM = weight × (1 + reps/30). The result
// is rounded to the nearest 0.5 kg; this rounding is part of the displayed
// contract. Returns 0 for non-positive inputs.
func CalculateOneRepMax(weight float64, reps int) float64 {
	if weight <= 0 || reps <= 0 {
		return 0
	}
	oneRepMax := weight * (1 + float64(reps)/30)
	return math.Round(oneRepMax*2) / 2
}

// Calculate1RMFromPR estimates the 1RM from a personal record. The record's
// weight and rep maxima may come from different sessions; combining them is
// intentional per the independent-maxima invariant.
func Calculate1RMFromPR(pr *models.PersonalRecord) float64 {
	if pr == nil || pr.MaxWeight == 0 {
		return 0
	}
	return CalculateOneRepMax(pr.MaxWeight, pr.MaxReps)
}

// EstimatedOneRepMax is a 1RM estimate with the record it was derived from.
type EstimatedOneRepMax struct {
	EstimatedMaxWeight float64 `json:"estimatedMaxWeight"`
	BaseWeight         float64 `json:"baseWeight"`
	BaseReps           int     `json:"baseReps"`
	Formula            string  `json:"formula"`
}

// Estimated1RM returns the detailed 1RM estimate for a record, or nil when
// there is no weight record to estimate from.
func Estimated1RM(pr *models.PersonalRecord) *EstimatedOneRepMax {
	if pr == nil || pr.MaxWeight == 0 {
		return nil
	}
	estimated := CalculateOneRepMax(pr.MaxWeight, pr.MaxReps)
	return &EstimatedOneRepMax{
		EstimatedMaxWeight: estimated,
		BaseWeight:         pr.MaxWeight,
		BaseReps:           pr.MaxReps,
		Formula:            formatWeight(pr.MaxWeight) + "kg × " + itoa(pr.MaxReps) + " → ~" + formatWeight(estimated) + "kg (1RM)",
	}
}

// EstimateRepsAtWeight inverts the Epley formula to estimate how many reps are
// possible at a target weight: reps = 30 × (1RM/weight − 1), floored at 1.
// Returns 0 when either input is 0.
func EstimateRepsAtWeight(oneRepMax, targetWeight float64) int {
	if oneRepMax == 0 || targetWeight == 0 {
		return 0
	}
	reps := 30 * (oneRepMax/targetWeight - 1)
	rounded := int(math.Round(reps))
	if rounded < 1 {
		return 1
	}
	return rounded
}

// ChartRow is one row of the weight progression chart.
type ChartRow struct {
	Percentage    int     `json:"percentage"`
	Weight        float64 `json:"weight"`
	EstimatedReps int     `json:"estimatedReps"`
}

// WeightProgressionChart builds the fixed 8-row table of working weights at
// standard percentages of the 1RM, each paired with an estimated rep count.
// Empty when the 1RM is 0.
func WeightProgressionChart(oneRepMax float64) []ChartRow {
	if oneRepMax == 0 {
		return nil
	}
	rows := make([]ChartRow, 0, len(chartPercentages))
	for _, pct := range chartPercentages {
		weight := math.Round(oneRepMax*float64(pct)/100*2) / 2
		rows = append(rows, ChartRow{
			Percentage:    pct,
			Weight:        weight,
			EstimatedReps: EstimateRepsAtWeight(oneRepMax, weight),
		})
	}
	return rows
}
