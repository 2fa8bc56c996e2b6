// Package service implements business logic, validation, and orchestration
// between HTTP handlers, the in-memory repositories, and the submission
// endpoint.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Jana57473/community-event-portal/internal/clock"
	"github.com/Jana57473/community-event-portal/internal/model"
	"github.com/Jana57473/community-event-portal/internal/repository"
	"github.com/Jana57473/community-event-portal/internal/submission"
)

// ErrInvalidInput is returned when a request fails validation.
var ErrInvalidInput = errors.New("invalid input")

// ErrSubmissionFailed is returned when the submission endpoint does not
// accept a registration form, for whatever reason.
var ErrSubmissionFailed = errors.New("registration submission failed")

const maxSeats = 100_000

// EventService orchestrates event listing and registration.
type EventService struct {
	events        *repository.EventRepository
	registrations *repository.RegistrationRepository
	counter       *RegistrationCounter
	submitter     submission.Submitter
	clock         clock.Clock
	log           *zap.Logger
}

// NewEventService constructs an EventService with its dependencies.
func NewEventService(
	events *repository.EventRepository,
	registrations *repository.RegistrationRepository,
	counter *RegistrationCounter,
	submitter submission.Submitter,
	clk clock.Clock,
	log *zap.Logger,
) *EventService {
	return &EventService{
		events:        events,
		registrations: registrations,
		counter:       counter,
		submitter:     submitter,
		clock:         clk,
		log:           log,
	}
}

// EventQuery narrows ListEvents.
type EventQuery struct {
	Category    string
	Search      string
	IncludePast bool
}

// ListEvents returns events matching q in store order. Unless IncludePast is
// set only upcoming events are returned, which also hides full ones.
func (s *EventService) ListEvents(ctx context.Context, q EventQuery) []model.Event {
	preds := []repository.Predicate{repository.InCategory(q.Category)}
	if q.Search != "" {
		preds = append(preds, repository.NameContains(q.Search))
	}
	if !q.IncludePast {
		preds = append(preds, repository.Upcoming(s.clock.Now()))
	}
	return s.events.Filter(repository.And(preds...))
}

// GetEvent returns a single event by id.
func (s *EventService) GetEvent(ctx context.Context, id int64) (model.Event, error) {
	e, err := s.events.FindByID(id)
	if err != nil {
		return model.Event{}, fmt.Errorf("get event %d: %w", id, err)
	}
	return e, nil
}

// CreateEvent validates the request and appends a new event with the next
// free identifier.
func (s *EventService) CreateEvent(ctx context.Context, req model.CreateEventRequest) (model.Event, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Category = strings.ToLower(strings.TrimSpace(req.Category))
	req.Location = strings.TrimSpace(req.Location)

	if req.Name == "" {
		return model.Event{}, fmt.Errorf("%w: event name is required", ErrInvalidInput)
	}
	if req.Category == "" || req.Category == repository.CategoryAll {
		return model.Event{}, fmt.Errorf("%w: category is required and may not be %q", ErrInvalidInput, repository.CategoryAll)
	}
	if req.Location == "" {
		return model.Event{}, fmt.Errorf("%w: location is required", ErrInvalidInput)
	}
	if req.Seats < 0 {
		return model.Event{}, fmt.Errorf("%w: seats cannot be negative", ErrInvalidInput)
	}
	if req.Seats > maxSeats {
		return model.Event{}, fmt.Errorf("%w: seats cannot exceed 100,000", ErrInvalidInput)
	}
	date, err := model.ParseDate(strings.TrimSpace(req.Date))
	if err != nil {
		return model.Event{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	event := s.events.Create(func(id int64) model.Event {
		return model.Event{
			ID:       id,
			Name:     req.Name,
			Date:     date,
			Category: req.Category,
			Location: req.Location,
			Seats:    req.Seats,
		}
	})

	s.log.Info("Event created",
		zap.Int64("event_id", event.ID),
		zap.String("category", event.Category),
		zap.Int("seats", event.Seats))
	return event, nil
}

// Register reserves one seat on the event and returns the seats left.
func (s *EventService) Register(ctx context.Context, eventID int64) (int, error) {
	res, err := s.Book(ctx, eventID)
	if err != nil {
		return 0, err
	}
	return res.SeatsRemaining, nil
}

// Book reserves one seat on the event, bumps the category counter, and
// reports both. It fails with repository.ErrNotFound or repository.ErrSoldOut
// and in that case changes nothing.
func (s *EventService) Book(ctx context.Context, eventID int64) (*model.RegisterResponse, error) {
	event, err := s.events.TakeSeat(eventID)
	if err != nil {
		return nil, fmt.Errorf("register for event %d: %w", eventID, err)
	}
	total := s.counter.Increment(event.Category)

	s.log.Info("Registration recorded",
		zap.Int64("event_id", event.ID),
		zap.String("category", event.Category),
		zap.Int("seats_remaining", event.Seats),
		zap.Int("category_total", total))

	return &model.RegisterResponse{
		EventID:        event.ID,
		Category:       event.Category,
		SeatsRemaining: event.Seats,
		CategoryTotal:  total,
	}, nil
}

// Submit validates a registration form, sends it to the submission endpoint,
// and once the endpoint accepts it reserves the seat with a single call to
// Book.
func (s *EventService) Submit(ctx context.Context, req model.SubmitRequest) (*model.Registration, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.EventID == 0 {
		return nil, fmt.Errorf("%w: please fill all fields", ErrInvalidInput)
	}
	if !isValidEmail(req.Email) {
		return nil, fmt.Errorf("%w: email is not a valid email address", ErrInvalidInput)
	}

	event, err := s.events.FindByID(req.EventID)
	if err != nil {
		return nil, fmt.Errorf("submit registration: %w", err)
	}
	if !event.Available() {
		return nil, fmt.Errorf("submit registration: %w", repository.ErrSoldOut)
	}

	res := submission.Start(ctx, s.submitter, req).Wait(ctx)
	if res.Err != nil {
		s.log.Warn("Registration submission failed",
			zap.Int64("event_id", req.EventID),
			zap.Error(res.Err))
		return nil, fmt.Errorf("%w: %w", ErrSubmissionFailed, res.Err)
	}

	booked, err := s.Book(ctx, req.EventID)
	if err != nil {
		return nil, err
	}

	reg := model.Registration{
		ID:             uuid.NewString(),
		EventID:        req.EventID,
		Name:           req.Name,
		Email:          req.Email,
		SeatsRemaining: booked.SeatsRemaining,
		CreatedAt:      s.clock.Now(),
	}
	s.registrations.Add(reg)

	s.log.Info("Registration submitted",
		zap.String("registration_id", reg.ID),
		zap.String("receipt_id", res.Receipt.ID),
		zap.Int64("event_id", reg.EventID))
	return &reg, nil
}

// ListRegistrations returns all accepted form registrations for an event.
func (s *EventService) ListRegistrations(ctx context.Context, eventID int64) ([]model.Registration, error) {
	if _, err := s.events.FindByID(eventID); err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return s.registrations.ListByEvent(eventID), nil
}

// CategoryTotals returns the running registration count per category.
func (s *EventService) CategoryTotals(ctx context.Context) map[string]int {
	return s.counter.Snapshot()
}

// isValidEmail does a basic structural check.
func isValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	return len(parts[0]) > 0 && strings.Contains(parts[1], ".")
}
