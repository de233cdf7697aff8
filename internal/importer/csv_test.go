package importer

import (
	"strings"
	"testing"

	"github.com/claude/liftlog/internal/models"
)

// TestParseCSV_WithHeader verifies header detection, grouping by date and
// schema, and set expansion.
func TestParseCSV_WithHeader(t *testing.T) {
	csv := `date,schema,exercise,musclegroup,sets,reps,weight,durationminutes
2026-05-11,Push Day,Bench Press,Borst,3,10|8|6,60|65|70,45
2026-05-11,Push Day,Overhead Press,Schouders,2,8,40,45
2026-05-13,Pull Day,Deadlift,Rug,3,5,100,60
`
	result, err := parseCSVAt(strings.NewReader(csv), 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.RowsParsed != 3 {
		t.Errorf("rows parsed = %d, want 3", result.RowsParsed)
	}
	if len(result.Sessions) != 2 {
		t.Fatalf("sessions = %d, want 2", len(result.Sessions))
	}

	push := result.Sessions[0]
	if push.ID != "import-2026-05-11__Push Day" {
		t.Errorf("id = %q", push.ID)
	}
	if push.SchemaID != "push-day" {
		t.Errorf("schemaId = %q, want push-day", push.SchemaID)
	}
	if !push.Completed {
		t.Error("imported session should be completed")
	}
	if len(push.Exercises) != 2 {
		t.Fatalf("exercises = %d, want 2", len(push.Exercises))
	}

	bench := push.Exercises[0]
	if len(bench.Sets) != 3 {
		t.Fatalf("sets = %d, want 3", len(bench.Sets))
	}
	wantSets := []models.ExerciseSet{
		{SetNumber: 1, Reps: 10, Weight: 60, Completed: true, Difficulty: models.DifficultyGoed},
		{SetNumber: 2, Reps: 8, Weight: 65, Completed: true, Difficulty: models.DifficultyGoed},
		{SetNumber: 3, Reps: 6, Weight: 70, Completed: true, Difficulty: models.DifficultyGoed},
	}
	for i, want := range wantSets {
		if bench.Sets[i] != want {
			t.Errorf("set %d = %+v, want %+v", i, bench.Sets[i], want)
		}
	}

	// Single values repeat across all sets.
	ohp := push.Exercises[1]
	if len(ohp.Sets) != 2 {
		t.Fatalf("ohp sets = %d, want 2", len(ohp.Sets))
	}
	for i, set := range ohp.Sets {
		if set.Reps != 8 || set.Weight != 40 {
			t.Errorf("ohp set %d = %+v, want 8 reps at 40kg", i, set)
		}
	}

	// Duration fills the end time from the pinned 08:00 start.
	if push.StartTime == nil || push.EndTime == nil {
		t.Fatal("start/end time not set")
	}
	if got := push.EndTime.Sub(*push.StartTime).Minutes(); got != 45 {
		t.Errorf("duration = %v minutes, want 45", got)
	}
}

// TestParseCSV_NoHeader verifies the default column order when no header is
// present.
func TestParseCSV_NoHeader(t *testing.T) {
	csv := `13-05-2026,Leg Day,Squat,Benen,3,5|5|5,80|85|90,50`
	result, err := parseCSVAt(strings.NewReader(csv), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Sessions) != 1 {
		t.Fatalf("sessions = %d, want 1", len(result.Sessions))
	}
	if result.Sessions[0].Date != "2026-05-13" {
		t.Errorf("date = %q, want 2026-05-13 (DD-MM-YYYY normalized)", result.Sessions[0].Date)
	}
}

// TestParseCSV_Defaults verifies fallbacks for missing sets, reps, weight and
// muscle group.
func TestParseCSV_Defaults(t *testing.T) {
	csv := `date,schema,exercise
2026-05-11,Full Body,Pull-up
`
	result, err := parseCSVAt(strings.NewReader(csv), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ex := result.Sessions[0].Exercises[0]
	if ex.MuscleGroup != "Onbekend" {
		t.Errorf("muscleGroup = %q, want Onbekend", ex.MuscleGroup)
	}
	if ex.MET != 5 {
		t.Errorf("met = %v, want 5", ex.MET)
	}
	if len(ex.Sets) != 3 {
		t.Fatalf("sets = %d, want default 3", len(ex.Sets))
	}
	for _, set := range ex.Sets {
		if set.Reps != 12 || set.Weight != 0 {
			t.Errorf("set = %+v, want 12 reps at 0kg", set)
		}
	}
}

// TestParseCSV_SkipsIncompleteRows verifies that rows missing required
// fields are counted but not imported.
func TestParseCSV_SkipsIncompleteRows(t *testing.T) {
	csv := `date,schema,exercise
2026-05-11,Push Day,Bench Press
,,
2026-05-12,,Squat
`
	result, err := parseCSVAt(strings.NewReader(csv), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.RowsParsed != 1 || result.RowsSkipped != 2 {
		t.Errorf("parsed=%d skipped=%d, want 1 and 2", result.RowsParsed, result.RowsSkipped)
	}
}

// TestParseCSV_SemicolonLists verifies ; as a list separator.
func TestParseCSV_SemicolonLists(t *testing.T) {
	csv := `date,schema,exercise,musclegroup,sets,reps,weight
2026-05-11,Push Day,Dip,Borst,2,10;12,5;7.5
`
	result, err := parseCSVAt(strings.NewReader(csv), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sets := result.Sessions[0].Exercises[0].Sets
	if sets[0].Reps != 10 || sets[1].Reps != 12 {
		t.Errorf("reps = %d, %d, want 10, 12", sets[0].Reps, sets[1].Reps)
	}
	if sets[1].Weight != 7.5 {
		t.Errorf("weight = %v, want 7.5", sets[1].Weight)
	}
}

// TestToSlug verifies schema name slugging.
func TestToSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Push Day", "push-day"},
		{"Full Body (A)", "full-body-a"},
		{"  Krácht!  ", "kr-cht"},
		{"###", ""},
	}
	for _, tt := range tests {
		if got := toSlug(tt.in); got != tt.want {
			t.Errorf("toSlug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// TestNormalizeDate verifies both accepted date formats and zero padding.
func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"13-05-2026", "2026-05-13"},
		{"1-5-2026", "2026-05-01"},
		{"2026-05-13", "2026-05-13"},
		{"2026-5-1", "2026-05-01"},
		{"garbage", "garbage"},
	}
	for _, tt := range tests {
		if got := normalizeDate(tt.in); got != tt.want {
			t.Errorf("normalizeDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
