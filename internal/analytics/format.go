package analytics

import (
	"strconv"
	"strings"

	"github.com/claude/liftlog/internal/models"
)

// formatWeight renders a kg value without trailing zeros: 50 -> "50",
// 50.5 -> "50.5".
func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

// FormatKcalDisplay renders a calorie value, e.g. "245 kcal".
func FormatKcalDisplay(kcal int) string {
	return itoa(kcal) + " kcal"
}

// Format1RMDisplay renders the estimated 1RM for the exercise header, or ""
// when there is no estimate.
func Format1RMDisplay(oneRepMax float64) string {
	if oneRepMax == 0 {
		return ""
	}
	return "💪 Est. 1RM: ~" + formatWeight(oneRepMax) + "kg"
}

// FormatPRMessage renders the celebration message for a PR check result, one
// line per beaten dimension.
func FormatPRMessage(result PRCheckResult) string {
	var parts []string
	if result.NewMaxWeight {
		parts = append(parts, "🔥 Nieuw max gewicht: "+formatWeight(result.UpdatedPR.MaxWeight)+"kg")
	}
	if result.NewMaxReps {
		parts = append(parts, "💪 Nieuw max reps: "+itoa(result.UpdatedPR.MaxReps))
	}
	return strings.Join(parts, "\n")
}

// PRDisplay renders the exercise's attached record, or "" when none is set.
func PRDisplay(exercise models.WorkoutExercise) string {
	if exercise.PersonalRecord == nil {
		return ""
	}
	pr := exercise.PersonalRecord
	return "💪 PR: " + formatWeight(pr.MaxWeight) + "kg × " + itoa(pr.MaxReps)
}

// FormatProgressiveSuggestion renders an overload suggestion for display.
func FormatProgressiveSuggestion(s OverloadSuggestion) string {
	return "📈 Volgende: " + formatWeight(s.SuggestedWeight) + "kg × " + itoa(s.SuggestedReps)
}

// ProgressiveOverloadHint returns the explanation text for a suggestion.
func ProgressiveOverloadHint(s OverloadSuggestion) string {
	return s.Reason
}
