package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/claude/liftlog/internal/analytics"
	"github.com/claude/liftlog/internal/events"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
)

// saveSessionResult is the response to a session save: the stored session
// plus everything the save triggered.
type saveSessionResult struct {
	Session      models.WorkoutSession              `json:"session"`
	NewRecords   map[string]analytics.PRCheckResult `json:"newRecords,omitempty"`
	Achievements []string                           `json:"achievements,omitempty"`
}

func (s *Server) handleSaveSession(w http.ResponseWriter, r *http.Request) {
	var session models.WorkoutSession
	if err := json.NewDecoder(r.Body).Decode(&session); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if _, ok := session.SessionDate(); !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	result := saveSessionResult{NewRecords: map[string]analytics.PRCheckResult{}}

	// Attach each exercise's canonical record, evaluate it against this
	// session's sets, and merge improvements back into the store. Sync is
	// one-way: the canonical store only ever grows.
	for i, ex := range session.Exercises {
		stored, err := s.db.GetPersonalRecord(r.Context(), ex.Name)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		session.Exercises[i].PersonalRecord = stored

		prResult := analytics.CheckForNewPRs(session.Exercises[i])
		if prResult == nil {
			continue
		}
		if err := s.db.MergePersonalRecord(r.Context(), ex.Name, prResult.UpdatedPR); err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		pr := prResult.UpdatedPR
		session.Exercises[i].PersonalRecord = &pr
		result.NewRecords[ex.Name] = *prResult
	}

	if err := s.db.UpsertSession(r.Context(), session); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	result.Session = session

	if session.Completed {
		s.bus.Publish(events.SessionCompleted{Session: session})
		for name, pr := range result.NewRecords {
			s.bus.Publish(events.PRSet{ExerciseName: name, Result: pr})
		}
		unlocked, err := s.achieve.Evaluate(r.Context())
		if err != nil {
			s.log.Error("achievement evaluation failed", "session", session.ID, "error", err)
		}
		result.Achievements = unlocked
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	start, end, hasRange, err := parseDateRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	var sessions []models.WorkoutSession
	if hasRange {
		sessions, err = s.db.QuerySessions(r.Context(), start, end)
	} else {
		sessions, err = s.db.ListSessions(r.Context())
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.db.GetSession(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	err := s.db.DeleteSession(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleSessionKcal(w http.ResponseWriter, r *http.Request) {
	session, err := s.db.GetSession(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	settings, err := s.db.GetSettings(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	total := analytics.CalculateTotalSessionKcal(*session, settings.BodyWeightKg, settings.DefaultMET)

	// Per-exercise breakdown uses each exercise's own MET where set.
	type exerciseKcal struct {
		Name string `json:"name"`
		Kcal int    `json:"kcal"`
	}
	breakdown := make([]exerciseKcal, 0, len(session.Exercises))
	for _, ex := range session.Exercises {
		met := ex.MET
		if met <= 0 {
			met = settings.DefaultMET
		}
		breakdown = append(breakdown, exerciseKcal{
			Name: ex.Name,
			Kcal: analytics.CalculateExerciseKcal(ex, settings.BodyWeightKg, met),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"sessionId": session.ID,
		"totalKcal": total,
		"display":   analytics.FormatKcalDisplay(total),
		"exercises": breakdown,
	})
}

func (s *Server) handleWorkoutStats(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.db.ListSessions(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, analytics.CalculateWorkoutStats(sessions))
}

func (s *Server) handleExerciseStats(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name parameter required"})
		return
	}

	sessions, err := s.db.ListSessions(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	stats := analytics.GetExerciseStats(sessions, name)
	if stats == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no completed sets for exercise"})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleProgression(w http.ResponseWriter, r *http.Request) {
	exercise := r.URL.Query().Get("exercise")
	if exercise == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "exercise parameter required"})
		return
	}

	daysBack, err := s.progressionWindow(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	sessions, err := s.db.ListSessions(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, analytics.ExerciseProgressionData(sessions, exercise, daysBack))
}

func (s *Server) handleProgressionMetrics(w http.ResponseWriter, r *http.Request) {
	exercise := r.URL.Query().Get("exercise")
	if exercise == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "exercise parameter required"})
		return
	}

	daysBack, err := s.progressionWindow(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	sessions, err := s.db.ListSessions(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	points := analytics.ExerciseProgressionData(sessions, exercise, daysBack)
	writeJSON(w, http.StatusOK, analytics.CalculateProgressionMetrics(points))
}

func (s *Server) handleProgressionExercises(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.db.ListSessions(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	schemaID := r.URL.Query().Get("schema")
	writeJSON(w, http.StatusOK, analytics.ExercisesWithProgress(sessions, schemaID))
}

func (s *Server) handleProgressionSchemas(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.db.ListSessions(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, analytics.SchemasWithProgress(sessions))
}

func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	records, err := s.db.ListPersonalRecords(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	pr, ok := s.recordForQuery(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"record":    pr,
		"oneRepMax": analytics.Calculate1RMFromPR(pr),
	})
}

func (s *Server) handleOverloadSuggestion(w http.ResponseWriter, r *http.Request) {
	pr, ok := s.recordForQuery(w, r)
	if !ok {
		return
	}

	suggestion := analytics.CalculateProgressiveOverload(pr)
	if suggestion == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no weight record to progress from"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"suggestion": suggestion,
		"display":    analytics.FormatProgressiveSuggestion(*suggestion),
	})
}

func (s *Server) handleOneRepMaxChart(w http.ResponseWriter, r *http.Request) {
	pr, ok := s.recordForQuery(w, r)
	if !ok {
		return
	}

	oneRM := analytics.Calculate1RMFromPR(pr)
	if oneRM == 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no weight record to estimate from"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"oneRepMax": oneRM,
		"display":   analytics.Format1RMDisplay(oneRM),
		"chart":     analytics.WeightProgressionChart(oneRM),
	})
}

// recordForQuery loads the canonical record for the exercise named in the
// query string, writing the error response itself when it cannot.
func (s *Server) recordForQuery(w http.ResponseWriter, r *http.Request) (*models.PersonalRecord, bool) {
	exercise := r.URL.Query().Get("exercise")
	if exercise == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "exercise parameter required"})
		return nil, false
	}
	pr, err := s.db.GetPersonalRecord(r.Context(), exercise)
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no record for exercise"})
		return nil, false
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return nil, false
	}
	return pr, true
}

// progressionWindow resolves the days query parameter, falling back to the
// stored settings.
func (s *Server) progressionWindow(r *http.Request) (int, error) {
	if d := r.URL.Query().Get("days"); d != "" {
		days, err := strconv.Atoi(d)
		if err != nil || days < 0 {
			return 0, errors.New("days must be a non-negative integer")
		}
		return days, nil
	}
	settings, err := s.db.GetSettings(r.Context())
	if err != nil {
		return 0, err
	}
	return settings.ProgressDaysBack, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// parseDateRange reads optional start/end date parameters (YYYY-MM-DD).
// Returns hasRange=false when start is absent. A missing end means "through
// today".
func parseDateRange(r *http.Request) (start, end time.Time, hasRange bool, err error) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")
	if startStr == "" {
		return time.Time{}, time.Time{}, false, nil
	}

	start, ok := models.ParseLocalDate(startStr)
	if !ok {
		return time.Time{}, time.Time{}, false, errors.New("invalid start date, expected YYYY-MM-DD")
	}

	if endStr == "" {
		end = time.Now().AddDate(0, 0, 1)
	} else {
		endDay, ok := models.ParseLocalDate(endStr)
		if !ok {
			return time.Time{}, time.Time{}, false, errors.New("invalid end date, expected YYYY-MM-DD")
		}
		// End date is inclusive; the query range is half-open.
		end = endDay.AddDate(0, 0, 1)
	}
	return start, end, true, nil
}
