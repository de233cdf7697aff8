// Package achievements evaluates unlock rules against the user's training
// history. Rules are pure predicates over a snapshot; the engine persists
// unlocks and announces new ones on the event bus.
package achievements

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/claude/liftlog/internal/analytics"
	"github.com/claude/liftlog/internal/events"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
)

// Snapshot is everything a rule may look at.
type Snapshot struct {
	Stats         analytics.WorkoutStats
	WeightRecords int // exercises with a nonzero weight record
}

// Rule is a single achievement definition.
type Rule struct {
	ID          string
	Name        string
	Description string
	Check       func(Snapshot) bool
}

// Rules is the full achievement table, evaluated in order.
var Rules = []Rule{
	{
		ID:          "first_workout",
		Name:        "Eerste workout",
		Description: "Voltooi je eerste workout",
		Check:       func(s Snapshot) bool { return s.Stats.TotalWorkouts >= 1 },
	},
	{
		ID:          "ten_workouts",
		Name:        "Op dreef",
		Description: "Voltooi 10 workouts",
		Check:       func(s Snapshot) bool { return s.Stats.TotalWorkouts >= 10 },
	},
	{
		ID:          "hundred_workouts",
		Name:        "Honderd club",
		Description: "Voltooi 100 workouts",
		Check:       func(s Snapshot) bool { return s.Stats.TotalWorkouts >= 100 },
	},
	{
		ID:          "ton_lifted",
		Name:        "Een ton",
		Description: "Til in totaal 1.000 kg volume",
		Check:       func(s Snapshot) bool { return s.Stats.TotalVolume >= 1000 },
	},
	{
		ID:          "hundred_tons",
		Name:        "Honderd ton",
		Description: "Til in totaal 100.000 kg volume",
		Check:       func(s Snapshot) bool { return s.Stats.TotalVolume >= 100000 },
	},
	{
		ID:          "three_day_streak",
		Name:        "Drie op rij",
		Description: "Train 3 dagen achter elkaar",
		Check:       func(s Snapshot) bool { return s.Stats.LongestStreak >= 3 },
	},
	{
		ID:          "seven_day_streak",
		Name:        "Week vol",
		Description: "Train 7 dagen achter elkaar",
		Check:       func(s Snapshot) bool { return s.Stats.LongestStreak >= 7 },
	},
	{
		ID:          "first_pr",
		Name:        "Eerste record",
		Description: "Zet je eerste gewichtsrecord",
		Check:       func(s Snapshot) bool { return s.WeightRecords >= 1 },
	},
	{
		ID:          "five_prs",
		Name:        "Recordjager",
		Description: "Zet een gewichtsrecord op 5 oefeningen",
		Check:       func(s Snapshot) bool { return s.WeightRecords >= 5 },
	},
}

// Engine evaluates rules after each stored session.
type Engine struct {
	db  *storage.DB
	bus *events.Bus
	log *slog.Logger
}

// NewEngine creates an Engine.
func NewEngine(db *storage.DB, bus *events.Bus, log *slog.Logger) *Engine {
	return &Engine{db: db, bus: bus, log: log}
}

// Evaluate builds a snapshot from the store, runs every rule, and persists
// unlocks. Returns the IDs of achievements unlocked by this call. Already
// unlocked achievements are never re-announced.
func (e *Engine) Evaluate(ctx context.Context) ([]string, error) {
	sessions, err := e.db.ListSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading sessions: %w", err)
	}
	weightRecords, err := e.db.CountWeightRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting records: %w", err)
	}

	snap := Snapshot{
		Stats:         analytics.CalculateWorkoutStats(sessions),
		WeightRecords: weightRecords,
	}
	return e.evaluateSnapshot(ctx, snap)
}

func (e *Engine) evaluateSnapshot(ctx context.Context, snap Snapshot) ([]string, error) {
	var unlocked []string
	now := time.Now()
	for _, rule := range Rules {
		if !rule.Check(snap) {
			continue
		}
		inserted, err := e.db.UnlockAchievement(ctx, rule.ID, now)
		if err != nil {
			return unlocked, fmt.Errorf("unlocking %s: %w", rule.ID, err)
		}
		if !inserted {
			continue
		}
		unlocked = append(unlocked, rule.ID)
		e.log.Info("achievement unlocked", "id", rule.ID, "name", rule.Name)
		if e.bus != nil {
			e.bus.Publish(events.AchievementUnlocked{ID: rule.ID})
		}
	}
	return unlocked, nil
}

// Met returns the rules a snapshot satisfies, without touching storage.
// Used by tests and the read-only achievements listing.
func Met(snap Snapshot) []Rule {
	var met []Rule
	for _, rule := range Rules {
		if rule.Check(snap) {
			met = append(met, rule)
		}
	}
	return met
}

// ByID returns the rule with the given ID, or false when unknown.
func ByID(id string) (Rule, bool) {
	for _, rule := range Rules {
		if rule.ID == id {
			return rule, true
		}
	}
	return Rule{}, false
}

// SnapshotFromSessions builds a snapshot without a store, for callers that
// already hold the session list.
func SnapshotFromSessions(sessions []models.WorkoutSession, weightRecords int) Snapshot {
	return Snapshot{
		Stats:         analytics.CalculateWorkoutStats(sessions),
		WeightRecords: weightRecords,
	}
}
