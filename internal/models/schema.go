package models

// SchemaExercise is one exercise definition within a schema. MET is the
// metabolic equivalent used for calorie estimation.
type SchemaExercise struct {
	ID   int     `json:"id"`
	Name string  `json:"name"`
	MET  float64 `json:"met"`
}

// MuscleGroup is a named group of exercises within a schema.
type MuscleGroup struct {
	Name      string           `json:"name"`
	Exercises []SchemaExercise `json:"exercises"`
}

// Schema is a named workout plan. The analytics core only reads exercise
// name and MET metadata; schemas are never mutated here.
type Schema struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	MuscleGroups []MuscleGroup `json:"muscleGroups"`
}

// Settings holds user preferences the analytics core depends on.
type Settings struct {
	BodyWeightKg     float64 `json:"bodyWeightKg"`
	DefaultMET       float64 `json:"defaultMET"`
	ProgressDaysBack int     `json:"progressDaysBack"`
	CSVImportEnabled bool    `json:"csvImportEnabled"`
}

// DefaultSettings returns the settings used before the user configures any.
func DefaultSettings() Settings {
	return Settings{
		BodyWeightKg:     75,
		DefaultMET:       5,
		ProgressDaysBack: 180,
		CSVImportEnabled: true,
	}
}
