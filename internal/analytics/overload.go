package analytics

import "github.com/claude/liftlog/internal/models"

// ProgressType classifies what an overload suggestion asks the user to
// increase.
type ProgressType string

const (
	ProgressWeight ProgressType = "weight"
	ProgressReps   ProgressType = "reps"
	ProgressBoth   ProgressType = "both"
)

// hypertrophyRepTarget is the standard rep target for a new working weight.
const hypertrophyRepTarget = 12

// OverloadSuggestion is the next training target derived from a personal
// record.
type OverloadSuggestion struct {
	SuggestedWeight float64      `json:"suggestedWeight"`
	SuggestedReps   int          `json:"suggestedReps"`
	Reason          string       `json:"reason"`
	ProgressType    ProgressType `json:"progressType"`
}

// CalculateProgressiveOverload suggests the next target from a personal
// record: a flat +1 kg on the proven max weight, at min(12, maxReps) reps.
// The increment is deliberately flat rather than percentage-based.
//
// Returns nil when there is no record. A record with maxWeight 0 but
// maxReps > 0 (bodyweight-only history) also yields nil; that gap is
// preserved for behavioral compatibility.
func CalculateProgressiveOverload(pr *models.PersonalRecord) *OverloadSuggestion {
	if pr == nil {
		return nil
	}
	if pr.MaxWeight == 0 && pr.MaxReps == 0 {
		return nil
	}

	if pr.MaxWeight > 0 {
		targetReps := pr.MaxReps
		if targetReps > hypertrophyRepTarget {
			targetReps = hypertrophyRepTarget
		}
		return &OverloadSuggestion{
			SuggestedWeight: pr.MaxWeight + 1,
			SuggestedReps:   targetReps,
			Reason: "Vorig max: " + formatWeight(pr.MaxWeight) + "kg × " + itoa(pr.MaxReps) +
				". Volgende doel: +1kg progressie",
			ProgressType: ProgressWeight,
		}
	}

	return nil
}
