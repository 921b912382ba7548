package repository

import (
	"sync"

	"github.com/stemsi/educonnect-backend/internal/model"
)

// EventRepository keeps calendar events in memory for the process lifetime.
type EventRepository struct {
	mu     sync.RWMutex
	events []model.CalendarEvent
}

// NewEventRepository creates an EventRepository seeded with the given events.
func NewEventRepository(seed []model.CalendarEvent) *EventRepository {
	r := &EventRepository{}
	for _, e := range seed {
		r.events = append(r.events, cloneEvent(e))
	}
	return r
}

// List returns all events in insertion order.
func (r *EventRepository) List() []model.CalendarEvent {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.CalendarEvent, len(r.events))
	for i, e := range r.events {
		out[i] = cloneEvent(e)
	}
	return out
}

// Create appends an event.
func (r *EventRepository) Create(e model.CalendarEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, cloneEvent(e))
}

func cloneEvent(e model.CalendarEvent) model.CalendarEvent {
	e.Series = append([]string{}, e.Series...)
	return e
}
