package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/claude/liftlog/internal/events"
)

// handleEventStream streams bus events to the client as SSE. Used by the
// dashboard to show PR and achievement toasts as sessions come in.
func (s *Server) handleEventStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "streaming not supported"})
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := s.bus.Subscribe()
	defer s.bus.Unsubscribe(ch)

	fmt.Fprintf(w, "event: connected\ndata: {}\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			name, data := encodeEvent(ev)
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data)
			flusher.Flush()
		}
	}
}

func encodeEvent(ev events.Event) (name, data string) {
	switch e := ev.(type) {
	case events.SessionCompleted:
		return "session_completed", mustJSON(map[string]any{
			"sessionId": e.Session.ID,
			"date":      e.Session.Date,
		})
	case events.PRSet:
		return "pr_set", mustJSON(map[string]any{
			"exercise": e.ExerciseName,
			"result":   e.Result,
		})
	case events.AchievementUnlocked:
		return "achievement_unlocked", mustJSON(map[string]any{"id": e.ID})
	default:
		return "event", "{}"
	}
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return `{}`
	}
	return string(b)
}
