package server

import (
	"encoding/json"
	"net/http"

	"github.com/claude/liftlog/internal/achievements"
	"github.com/claude/liftlog/internal/models"
)

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.db.GetSettings(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) handleSaveSettings(w http.ResponseWriter, r *http.Request) {
	var settings models.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if settings.BodyWeightKg <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bodyWeightKg must be positive"})
		return
	}
	if settings.DefaultMET <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "defaultMet must be positive"})
		return
	}
	if settings.ProgressDaysBack < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "progressDaysBack must not be negative"})
		return
	}

	if err := s.db.SaveSettings(r.Context(), settings); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// achievementView joins a stored unlock with its rule metadata.
type achievementView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	UnlockedAt  string `json:"unlockedAt"`
}

func (s *Server) handleListAchievements(w http.ResponseWriter, r *http.Request) {
	unlocked, err := s.db.ListAchievements(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	views := make([]achievementView, 0, len(unlocked))
	for _, a := range unlocked {
		view := achievementView{ID: a.ID, UnlockedAt: a.UnlockedAt.Format("2006-01-02")}
		if rule, ok := achievements.ByID(a.ID); ok {
			view.Name = rule.Name
			view.Description = rule.Description
		}
		views = append(views, view)
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleDataStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.db.GetDataStats(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
