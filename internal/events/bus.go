// Package events provides an in-process observer bus. Components publish
// domain events after state changes commit; subscribers react without the
// publisher knowing who listens.
package events

import (
	"log/slog"
	"sync"

	"github.com/claude/liftlog/internal/analytics"
	"github.com/claude/liftlog/internal/models"
)

// Event is a domain event published on the bus.
type Event interface {
	eventName() string
}

// SessionCompleted fires after a finished session has been stored.
type SessionCompleted struct {
	Session models.WorkoutSession
}

func (SessionCompleted) eventName() string { return "session_completed" }

// PRSet fires when a stored session improved a personal record.
type PRSet struct {
	ExerciseName string
	Result       analytics.PRCheckResult
}

func (PRSet) eventName() string { return "pr_set" }

// AchievementUnlocked fires when an achievement unlocks for the first time.
type AchievementUnlocked struct {
	ID string
}

func (AchievementUnlocked) eventName() string { return "achievement_unlocked" }

// Bus fans events out to subscribers. Publish never blocks: a subscriber
// that falls behind loses events rather than stalling the publisher.
type Bus struct {
	log *slog.Logger

	mu     sync.Mutex
	subs   map[chan Event]struct{}
	closed bool
}

// NewBus creates a Bus.
func NewBus(log *slog.Logger) *Bus {
	return &Bus{
		log:  log,
		subs: make(map[chan Event]struct{}),
	}
}

// Subscribe registers a new subscriber channel. The caller must drain the
// channel and call Unsubscribe when done.
func (b *Bus) Subscribe() chan Event {
	ch := make(chan Event, 32)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return ch
	}
	b.subs[ch] = struct{}{}
	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (b *Bus) Unsubscribe(ch chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[ch]; ok {
		delete(b.subs, ch)
		close(ch)
	}
}

// Publish delivers an event to all current subscribers.
func (b *Bus) Publish(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	for ch := range b.subs {
		select {
		case ch <- ev:
		default:
			// slow subscriber, skip
			if b.log != nil {
				b.log.Warn("dropping event for slow subscriber", "event", ev.eventName())
			}
		}
	}
}

// Close shuts the bus down and closes all subscriber channels. Publish and
// Subscribe become no-ops afterwards.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for ch := range b.subs {
		delete(b.subs, ch)
		close(ch)
	}
}
