// Package model defines the core domain types for the community event portal.
package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar date without a time of day, always held at midnight UTC.
type Date struct {
	time.Time
}

// NewDate returns the calendar date of t.
func NewDate(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

// MarshalJSON encodes the date as "YYYY-MM-DD".
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a "YYYY-MM-DD" string.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Event represents a community activity with a seat capacity.
type Event struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Date     Date   `json:"date"`
	Category string `json:"category"`
	Location string `json:"location"`
	Seats    int    `json:"seats"`
}

// Available reports whether at least one seat remains.
func (e Event) Available() bool {
	return e.Seats > 0
}

// Registration records an accepted registration form submission.
type Registration struct {
	ID             string    `json:"id"`
	EventID        int64     `json:"event_id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	SeatsRemaining int       `json:"seats_remaining"`
	CreatedAt      time.Time `json:"created_at"`
}

// CreateEventRequest is the payload for adding a new event.
type CreateEventRequest struct {
	Name     string `json:"name"`
	Date     string `json:"date"`
	Category string `json:"category"`
	Location string `json:"location"`
	Seats    int    `json:"seats"`
}

// SubmitRequest is the registration form payload.
type SubmitRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	EventID int64  `json:"event_id"`
}

// RegisterResponse is returned by a direct seat registration.
type RegisterResponse struct {
	EventID        int64  `json:"event_id"`
	Category       string `json:"category"`
	SeatsRemaining int    `json:"seats_remaining"`
	CategoryTotal  int    `json:"category_total"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
