// Package submission models the remote endpoint that accepts registration
// forms. The only implementation is simulated: it waits, then accepts or
// rejects the form without touching the network.
package submission

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Jana57473/community-event-portal/internal/clock"
	"github.com/Jana57473/community-event-portal/internal/model"
)

// ErrRejected is returned when the endpoint does not accept a submission.
var ErrRejected = errors.New("submission rejected")

// Receipt is the endpoint's acknowledgement of an accepted form.
type Receipt struct {
	ID         string
	Request    model.SubmitRequest
	AcceptedAt time.Time
}

// Submitter sends a registration form to the endpoint.
type Submitter interface {
	Submit(ctx context.Context, req model.SubmitRequest) (Receipt, error)
}

// Simulated is a Submitter that sleeps for a fixed delay and then accepts the
// form, or rejects it with probability failureRate.
type Simulated struct {
	delay       time.Duration
	failureRate float64
	log         *zap.Logger
	clock       clock.Clock
	roll        func() float64
}

// SimulatedOption configures a Simulated submitter.
type SimulatedOption func(*Simulated)

// WithDelay sets how long each submission takes.
func WithDelay(d time.Duration) SimulatedOption {
	return func(s *Simulated) {
		if d >= 0 {
			s.delay = d
		}
	}
}

// WithFailureRate sets the probability in [0, 1] that a submission is rejected.
func WithFailureRate(rate float64) SimulatedOption {
	return func(s *Simulated) {
		if rate >= 0 && rate <= 1 {
			s.failureRate = rate
		}
	}
}

// WithClock sets the clock used to stamp receipts.
func WithClock(c clock.Clock) SimulatedOption {
	return func(s *Simulated) {
		if c != nil {
			s.clock = c
		}
	}
}

// NewSimulated constructs a Simulated submitter.
func NewSimulated(log *zap.Logger, opts ...SimulatedOption) *Simulated {
	s := &Simulated{
		delay: 1200 * time.Millisecond,
		log:   log,
		clock: clock.System,
		roll:  rand.Float64,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit waits for the configured delay, then accepts or rejects req.
func (s *Simulated) Submit(ctx context.Context, req model.SubmitRequest) (Receipt, error) {
	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return Receipt{}, ctx.Err()
	case <-timer.C:
	}

	if s.failureRate > 0 && s.roll() < s.failureRate {
		s.log.Warn("Simulated submission rejected", zap.Int64("event_id", req.EventID))
		return Receipt{}, ErrRejected
	}

	r := Receipt{
		ID:         uuid.NewString(),
		Request:    req,
		AcceptedAt: s.clock.Now(),
	}
	s.log.Debug("Simulated submission accepted",
		zap.String("receipt_id", r.ID),
		zap.Int64("event_id", req.EventID))
	return r, nil
}

// Result is the outcome of a Task.
type Result struct {
	Receipt Receipt
	Err     error
}

// Task is a submission running in its own goroutine.
type Task struct {
	done chan Result
}

// Start runs sub.Submit in the background and returns immediately.
func Start(ctx context.Context, sub Submitter, req model.SubmitRequest) *Task {
	t := &Task{done: make(chan Result, 1)}
	go func() {
		receipt, err := sub.Submit(ctx, req)
		t.done <- Result{Receipt: receipt, Err: err}
	}()
	return t
}

// Wait blocks until the task finishes or ctx is done.
func (t *Task) Wait(ctx context.Context) Result {
	select {
	case res := <-t.done:
		return res
	case <-ctx.Done():
		return Result{Err: ctx.Err()}
	}
}
