package models

import "testing"

// TestNormalizeDifficulty_Canonical verifies that the canonical Dutch labels
// pass through unchanged.
func TestNormalizeDifficulty_Canonical(t *testing.T) {
	cases := []struct {
		input string
		want  Difficulty
	}{
		{"licht", DifficultyLicht},
		{"goed", DifficultyGoed},
		{"zwaar", DifficultyZwaar},
	}
	for _, tc := range cases {
		got, known := NormalizeDifficulty(tc.input)
		if !known {
			t.Errorf("NormalizeDifficulty(%q): expected known=true", tc.input)
		}
		if got != tc.want {
			t.Errorf("NormalizeDifficulty(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

// TestNormalizeDifficulty_CaseAndEnglish verifies case-insensitive lookup and
// the English synonyms seen in CSV exports.
func TestNormalizeDifficulty_CaseAndEnglish(t *testing.T) {
	cases := []struct {
		input string
		want  Difficulty
	}{
		{"Licht", DifficultyLicht},
		{"ZWAAR", DifficultyZwaar},
		{"  goed  ", DifficultyGoed},
		{"light", DifficultyLicht},
		{"Heavy", DifficultyZwaar},
		{"good", DifficultyGoed},
	}
	for _, tc := range cases {
		got, known := NormalizeDifficulty(tc.input)
		if !known {
			t.Errorf("NormalizeDifficulty(%q): expected known=true", tc.input)
		}
		if got != tc.want {
			t.Errorf("NormalizeDifficulty(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

// TestNormalizeDifficulty_Unknown verifies that unrecognized ratings are
// returned as-is with known=false.
func TestNormalizeDifficulty_Unknown(t *testing.T) {
	got, known := NormalizeDifficulty("medium-rare")
	if known {
		t.Error("expected known=false for unknown rating")
	}
	if got != "medium-rare" {
		t.Errorf("expected original string returned, got %q", got)
	}
}

// TestParseLocalDate verifies local-midnight parsing and rejection of
// malformed dates.
func TestParseLocalDate(t *testing.T) {
	d, ok := ParseLocalDate("2026-05-20")
	if !ok {
		t.Fatal("expected valid date")
	}
	if d.Year() != 2026 || d.Month() != 5 || d.Day() != 20 {
		t.Errorf("parsed %v", d)
	}
	if d.Hour() != 0 || d.Minute() != 0 {
		t.Errorf("expected local midnight, got %v", d)
	}

	for _, bad := range []string{"", "not-a-date", "20-05-2026"} {
		if _, ok := ParseLocalDate(bad); ok {
			t.Errorf("ParseLocalDate(%q): expected ok=false", bad)
		}
	}
}
