package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/claude/liftlog/internal/events"
	"github.com/claude/liftlog/internal/models"
)

// TestSaveSessionRejectsBadJSON verifies that a malformed body is rejected
// before any storage access.
func TestSaveSessionRejectsBadJSON(t *testing.T) {
	s := &Server{}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	s.handleSaveSession(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestSaveSessionRejectsBadDate verifies that a session with an unparseable
// date is rejected.
func TestSaveSessionRejectsBadDate(t *testing.T) {
	s := &Server{}
	body := `{"id":"s1","date":"17-05-2026","exercises":[]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", strings.NewReader(body))
	rec := httptest.NewRecorder()

	s.handleSaveSession(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestParseDateRange verifies the start/end query parameter handling.
func TestParseDateRange(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions", nil)
	if _, _, hasRange, err := parseDateRange(req); err != nil || hasRange {
		t.Errorf("no params: hasRange=%v err=%v, want false nil", hasRange, err)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/sessions?start=2026-05-01&end=2026-05-17", nil)
	start, end, hasRange, err := parseDateRange(req)
	if err != nil || !hasRange {
		t.Fatalf("hasRange=%v err=%v, want true nil", hasRange, err)
	}
	wantStart, _ := models.ParseLocalDate("2026-05-01")
	if !start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", start, wantStart)
	}
	// End is inclusive, so the half-open range ends the day after.
	wantEnd, _ := models.ParseLocalDate("2026-05-18")
	if !end.Equal(wantEnd) {
		t.Errorf("end = %v, want %v", end, wantEnd)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/sessions?start=garbage", nil)
	if _, _, _, err := parseDateRange(req); err == nil {
		t.Error("expected error for invalid start date")
	}
}

// TestEncodeEvent verifies the SSE encoding of each event type.
func TestEncodeEvent(t *testing.T) {
	now := time.Now()
	tests := []struct {
		ev       events.Event
		wantName string
		wantSub  string
	}{
		{
			ev:       events.SessionCompleted{Session: models.WorkoutSession{ID: "s1", Date: "2026-05-17", StartTime: &now}},
			wantName: "session_completed",
			wantSub:  `"sessionId":"s1"`,
		},
		{
			ev:       events.PRSet{ExerciseName: "Squat"},
			wantName: "pr_set",
			wantSub:  `"exercise":"Squat"`,
		},
		{
			ev:       events.AchievementUnlocked{ID: "first_workout"},
			wantName: "achievement_unlocked",
			wantSub:  `"id":"first_workout"`,
		},
	}

	for _, tt := range tests {
		name, data := encodeEvent(tt.ev)
		if name != tt.wantName {
			t.Errorf("name = %q, want %q", name, tt.wantName)
		}
		if !strings.Contains(data, tt.wantSub) {
			t.Errorf("data = %s, want substring %s", data, tt.wantSub)
		}
	}
}
