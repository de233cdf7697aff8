package mcp

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/liftlog/internal/analytics"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
)

// --- Tool definitions ---

var toolGetWorkoutStats = mcp.NewTool("get_workout_stats",
	mcp.WithDescription("Aggregate statistics over all completed workouts: totals, volume, streaks, exercise frequency, weekly volume, workouts per month."),
)

var toolGetExerciseStats = mcp.NewTool("get_exercise_stats",
	mcp.WithDescription("Per-exercise statistics: total sets/reps/volume, average and max weight, times performed, last performed date."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exact exercise name (e.g. 'Bench Press')")),
)

var toolGetExerciseProgression = mcp.NewTool("get_exercise_progression",
	mcp.WithDescription("Progression data points for an exercise (one per training day, best weight kept) plus trend metrics: start/current/max weight, total and percentage change."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exact exercise name (case-insensitive)")),
	mcp.WithNumber("days", mcp.Description("Look-back window in days. 0 means all history. Defaults to the stored settings.")),
)

var toolListProgressExercises = mcp.NewTool("list_progress_exercises",
	mcp.WithDescription("List exercises with at least one logged set, optionally filtered by schema ID."),
	mcp.WithString("schema", mcp.Description("Schema ID filter (hyphens ignored when matching)")),
)

var toolGetPersonalRecords = mcp.NewTool("get_personal_records",
	mcp.WithDescription("All personal records: best weight and best reps per exercise with the dates they were set."),
)

var toolGetOverloadSuggestion = mcp.NewTool("get_overload_suggestion",
	mcp.WithDescription("Progressive overload suggestion for an exercise: +1kg on the proven max at a capped rep target."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exact exercise name")),
)

var toolGetOneRepMaxChart = mcp.NewTool("get_one_rep_max_chart",
	mcp.WithDescription("Estimated one-rep max (Epley) for an exercise with a percentage-based working weight chart."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exact exercise name")),
)

var toolEstimateSessionKcal = mcp.NewTool("estimate_session_kcal",
	mcp.WithDescription("Estimated calories burned for a stored workout session, using the configured body weight and MET values."),
	mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
)

// --- Tool handlers ---

func (h *handlers) getWorkoutStats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions, err := h.db.ListSessions(ctx)
	if err != nil {
		h.log.Error("mcp get_workout_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(analytics.CalculateWorkoutStats(sessions))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getExerciseStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}

	sessions, err := h.db.ListSessions(ctx)
	if err != nil {
		h.log.Error("mcp get_exercise_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	stats := analytics.GetExerciseStats(sessions, exercise)
	if stats == nil {
		return mcp.NewToolResultError("no completed sets for exercise: " + exercise), nil
	}

	result, err := mcp.NewToolResultJSON(stats)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getExerciseProgression(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}

	daysBack := req.GetInt("days", -1)
	if daysBack < 0 {
		settings, err := h.db.GetSettings(ctx)
		if err != nil {
			h.log.Error("mcp get_exercise_progression settings", "error", err)
			return mcp.NewToolResultError("query failed: " + err.Error()), nil
		}
		daysBack = settings.ProgressDaysBack
	}

	sessions, err := h.db.ListSessions(ctx)
	if err != nil {
		h.log.Error("mcp get_exercise_progression", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	points := analytics.ExerciseProgressionData(sessions, exercise, daysBack)
	result, err := mcp.NewToolResultJSON(map[string]any{
		"exercise": exercise,
		"days":     daysBack,
		"points":   points,
		"metrics":  analytics.CalculateProgressionMetrics(points),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listProgressExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions, err := h.db.ListSessions(ctx)
	if err != nil {
		h.log.Error("mcp list_progress_exercises", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	schemaID := req.GetString("schema", "")
	result, err := mcp.NewToolResultJSON(map[string]any{
		"exercises": analytics.ExercisesWithProgress(sessions, schemaID),
		"schemas":   analytics.SchemasWithProgress(sessions),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getPersonalRecords(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	records, err := h.db.ListPersonalRecords(ctx)
	if err != nil {
		h.log.Error("mcp get_personal_records", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(records)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getOverloadSuggestion(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pr, errResult := h.recordFor(ctx, req)
	if errResult != nil {
		return errResult, nil
	}

	suggestion := analytics.CalculateProgressiveOverload(pr)
	if suggestion == nil {
		return mcp.NewToolResultError("no weight record to progress from"), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"suggestion": suggestion,
		"display":    analytics.FormatProgressiveSuggestion(*suggestion),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getOneRepMaxChart(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pr, errResult := h.recordFor(ctx, req)
	if errResult != nil {
		return errResult, nil
	}

	oneRM := analytics.Calculate1RMFromPR(pr)
	if oneRM == 0 {
		return mcp.NewToolResultError("no weight record to estimate from"), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"oneRepMax": oneRM,
		"display":   analytics.Format1RMDisplay(oneRM),
		"chart":     analytics.WeightProgressionChart(oneRM),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) estimateSessionKcal(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := req.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id parameter is required"), nil
	}

	session, err := h.db.GetSession(ctx, sessionID)
	if errors.Is(err, storage.ErrNotFound) {
		return mcp.NewToolResultError("session not found: " + sessionID), nil
	}
	if err != nil {
		h.log.Error("mcp estimate_session_kcal", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	settings, err := h.db.GetSettings(ctx)
	if err != nil {
		h.log.Error("mcp estimate_session_kcal settings", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	total := analytics.CalculateTotalSessionKcal(*session, settings.BodyWeightKg, settings.DefaultMET)
	result, err := mcp.NewToolResultJSON(map[string]any{
		"sessionId":    session.ID,
		"totalKcal":    total,
		"display":      analytics.FormatKcalDisplay(total),
		"bodyWeightKg": settings.BodyWeightKg,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// recordFor loads the personal record named by the exercise parameter,
// returning a ready error result when it cannot.
func (h *handlers) recordFor(ctx context.Context, req mcp.CallToolRequest) (*models.PersonalRecord, *mcp.CallToolResult) {
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return nil, mcp.NewToolResultError("exercise parameter is required")
	}

	pr, err := h.db.GetPersonalRecord(ctx, exercise)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, mcp.NewToolResultError("no record for exercise: " + exercise)
	}
	if err != nil {
		h.log.Error("mcp record lookup", "exercise", exercise, "error", err)
		return nil, mcp.NewToolResultError("query failed: " + err.Error())
	}
	return pr, nil
}
