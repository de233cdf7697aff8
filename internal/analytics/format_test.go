package analytics

import (
	"testing"

	"github.com/claude/liftlog/internal/models"
)

// TestFormatKcalDisplay verifies the display string contract.
func TestFormatKcalDisplay(t *testing.T) {
	if got := FormatKcalDisplay(245); got != "245 kcal" {
		t.Errorf("got %q, want %q", got, "245 kcal")
	}
	if got := FormatKcalDisplay(0); got != "0 kcal" {
		t.Errorf("got %q, want %q", got, "0 kcal")
	}
}

// TestFormat1RMDisplay verifies weight formatting without trailing zeros and
// the empty string for a missing estimate.
func TestFormat1RMDisplay(t *testing.T) {
	cases := []struct {
		oneRepMax float64
		want      string
	}{
		{133.5, "💪 Est. 1RM: ~133.5kg"},
		{100, "💪 Est. 1RM: ~100kg"},
		{0, ""},
	}
	for _, tc := range cases {
		if got := Format1RMDisplay(tc.oneRepMax); got != tc.want {
			t.Errorf("Format1RMDisplay(%v) = %q, want %q", tc.oneRepMax, got, tc.want)
		}
	}
}

// TestFormatPRMessage verifies one line per beaten dimension.
func TestFormatPRMessage(t *testing.T) {
	result := PRCheckResult{
		NewMaxWeight: true,
		NewMaxReps:   true,
		UpdatedPR:    models.PersonalRecord{MaxWeight: 100, MaxReps: 8},
	}
	want := "🔥 Nieuw max gewicht: 100kg\n💪 Nieuw max reps: 8"
	if got := FormatPRMessage(result); got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	result.NewMaxReps = false
	if got := FormatPRMessage(result); got != "🔥 Nieuw max gewicht: 100kg" {
		t.Errorf("weight only: got %q", got)
	}
}

// TestPRDisplay verifies the attached-record display and the empty string
// when no record is set.
func TestPRDisplay(t *testing.T) {
	exercise := models.WorkoutExercise{
		PersonalRecord: &models.PersonalRecord{MaxWeight: 82.5, MaxReps: 12},
	}
	if got, want := PRDisplay(exercise), "💪 PR: 82.5kg × 12"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got := PRDisplay(models.WorkoutExercise{}); got != "" {
		t.Errorf("no record: got %q, want empty", got)
	}
}

// TestEstimated1RM verifies the detailed estimate including its formula
// string.
func TestEstimated1RM(t *testing.T) {
	if est := Estimated1RM(nil); est != nil {
		t.Errorf("nil record: got %+v", est)
	}

	est := Estimated1RM(&models.PersonalRecord{MaxWeight: 100, MaxReps: 10})
	if est == nil {
		t.Fatal("expected an estimate")
	}
	if est.EstimatedMaxWeight != 133.5 {
		t.Errorf("EstimatedMaxWeight = %v, want 133.5", est.EstimatedMaxWeight)
	}
	if want := "100kg × 10 → ~133.5kg (1RM)"; est.Formula != want {
		t.Errorf("Formula = %q, want %q", est.Formula, want)
	}
}
