package models

import "strings"

// Difficulty is the user's per-set effort rating. The canonical values are the
// Dutch labels shown in the app; stored data may carry any casing or be empty
// (sets logged before the rating feature existed).
type Difficulty string

const (
	DifficultyLicht Difficulty = "licht"
	DifficultyGoed  Difficulty = "goed"
	DifficultyZwaar Difficulty = "zwaar"
)

// difficultyMap maps lowercased rating labels to canonical values. Covers the
// Dutch labels plus English equivalents seen in CSV exports.
var difficultyMap = map[string]Difficulty{
	"licht": DifficultyLicht,
	"goed":  DifficultyGoed,
	"zwaar": DifficultyZwaar,

	"light": DifficultyLicht,
	"good":  DifficultyGoed,
	"heavy": DifficultyZwaar,
}

// NormalizeDifficulty maps a stored rating string to its canonical value.
// Returns the input unchanged with known=false when unrecognized, so callers
// can log a warning without losing data.
func NormalizeDifficulty(s string) (Difficulty, bool) {
	if d, ok := difficultyMap[strings.ToLower(strings.TrimSpace(s))]; ok {
		return d, true
	}
	return Difficulty(s), false
}
