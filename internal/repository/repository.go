// Package repository holds the in-memory event store and registration log.
// Every read returns copies; the only way to change a stored event's seat
// count is TakeSeat.
package repository

import (
	"errors"
	"sync"

	"github.com/Jana57473/community-event-portal/internal/model"
)

// ErrNotFound is returned when an identifier does not resolve to an event.
var ErrNotFound = errors.New("event not found")

// ErrSoldOut is returned when an event has no remaining seats.
var ErrSoldOut = errors.New("no seats available")

// EventRepository is an ordered, process-local collection of events.
type EventRepository struct {
	mu     sync.RWMutex
	events []model.Event
}

// NewEventRepository constructs an EventRepository holding the given events
// in order.
func NewEventRepository(initial ...model.Event) *EventRepository {
	events := make([]model.Event, len(initial))
	copy(events, initial)
	return &EventRepository{events: events}
}

// Append adds an event at the end of the collection. Identifier uniqueness is
// the caller's responsibility.
func (r *EventRepository) Append(event model.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// FindByID returns the event with the given id or ErrNotFound.
func (r *EventRepository) FindByID(id int64) (model.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.indexOf(id)
	if i < 0 {
		return model.Event{}, ErrNotFound
	}
	return r.events[i], nil
}

// Filter returns the events satisfying pred, in insertion order. A nil
// predicate matches everything.
func (r *EventRepository) Filter(pred Predicate) []model.Event {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Event, 0, len(r.events))
	for _, e := range r.events {
		if pred == nil || pred(e) {
			out = append(out, e)
		}
	}
	return out
}

// All returns every event in insertion order.
func (r *EventRepository) All() []model.Event {
	return r.Filter(nil)
}

// Len returns the number of stored events.
func (r *EventRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.events)
}

// NextID returns one more than the largest stored identifier.
func (r *EventRepository) NextID() int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.nextID()
}

// Create appends the event built for the next free identifier. The id is
// chosen and the event stored under one write lock, so concurrent callers
// never share an id.
func (r *EventRepository) Create(build func(id int64) model.Event) model.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	event := build(r.nextID())
	r.events = append(r.events, event)
	return event
}

// nextID must be called with mu held.
func (r *EventRepository) nextID() int64 {
	var maxID int64
	for _, e := range r.events {
		if e.ID > maxID {
			maxID = e.ID
		}
	}
	return maxID + 1
}

// TakeSeat decrements the seat count of the event by exactly one and returns
// the updated event. The availability check and the decrement happen under a
// single lock so concurrent callers can never drive seats below zero.
func (r *EventRepository) TakeSeat(id int64) (model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return model.Event{}, ErrNotFound
	}
	if !r.events[i].Available() {
		return r.events[i], ErrSoldOut
	}
	r.events[i].Seats--
	return r.events[i], nil
}

// indexOf must be called with mu held.
func (r *EventRepository) indexOf(id int64) int {
	for i := range r.events {
		if r.events[i].ID == id {
			return i
		}
	}
	return -1
}

// RegistrationRepository is an append-only log of accepted registrations.
type RegistrationRepository struct {
	mu   sync.RWMutex
	regs []model.Registration
}

// NewRegistrationRepository constructs an empty RegistrationRepository.
func NewRegistrationRepository() *RegistrationRepository {
	return &RegistrationRepository{}
}

// Add appends a registration.
func (r *RegistrationRepository) Add(reg model.Registration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.regs = append(r.regs, reg)
}

// ListByEvent returns all registrations for an event, oldest first.
func (r *RegistrationRepository) ListByEvent(eventID int64) []model.Registration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []model.Registration
	for _, reg := range r.regs {
		if reg.EventID == eventID {
			out = append(out, reg)
		}
	}
	return out
}
