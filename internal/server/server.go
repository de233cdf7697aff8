package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/claude/liftlog/internal/achievements"
	"github.com/claude/liftlog/internal/events"
	"github.com/claude/liftlog/internal/storage"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db      *storage.DB
	bus     *events.Bus
	achieve *achievements.Engine
	log     *slog.Logger
	apiKey  string
	router  chi.Router
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, bus *events.Bus, achieve *achievements.Engine, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		db:      db,
		bus:     bus,
		achieve: achieve,
		log:     log,
		apiKey:  apiKey,
		router:  chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Write endpoints (API key required)
	s.router.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/api/v1/sessions", s.handleSaveSession)
		r.Delete("/api/v1/sessions/{id}", s.handleDeleteSession)
		r.Put("/api/v1/settings", s.handleSaveSettings)
	})

	// Read endpoints (no auth — tsnet handles access)
	s.router.Get("/api/v1/sessions", s.handleListSessions)
	s.router.Get("/api/v1/sessions/{id}", s.handleGetSession)
	s.router.Get("/api/v1/sessions/{id}/kcal", s.handleSessionKcal)
	s.router.Get("/api/v1/stats", s.handleWorkoutStats)
	s.router.Get("/api/v1/stats/exercise", s.handleExerciseStats)
	s.router.Get("/api/v1/progression", s.handleProgression)
	s.router.Get("/api/v1/progression/metrics", s.handleProgressionMetrics)
	s.router.Get("/api/v1/progression/exercises", s.handleProgressionExercises)
	s.router.Get("/api/v1/progression/schemas", s.handleProgressionSchemas)
	s.router.Get("/api/v1/records", s.handleListRecords)
	s.router.Get("/api/v1/records/exercise", s.handleGetRecord)
	s.router.Get("/api/v1/records/overload", s.handleOverloadSuggestion)
	s.router.Get("/api/v1/records/onerepmax", s.handleOneRepMaxChart)
	s.router.Get("/api/v1/settings", s.handleGetSettings)
	s.router.Get("/api/v1/achievements", s.handleListAchievements)
	s.router.Get("/api/v1/data/stats", s.handleDataStats)
	s.router.Get("/api/v1/events", s.handleEventStream)
}
