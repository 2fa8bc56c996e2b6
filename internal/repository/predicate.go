package repository

import (
	"strings"
	"time"

	"github.com/Jana57473/community-event-portal/internal/model"
)

// CategoryAll matches every category in InCategory.
const CategoryAll = "all"

// Predicate selects events in Filter.
type Predicate func(model.Event) bool

// IsUpcoming reports whether the event's date is on or after the calendar
// date of now AND it still has seats. A full event is never upcoming.
func IsUpcoming(event model.Event, now time.Time) bool {
	return !event.Date.Before(model.NewDate(now).Time) && event.Available()
}

// Upcoming returns IsUpcoming bound to now.
func Upcoming(now time.Time) Predicate {
	return func(e model.Event) bool {
		return IsUpcoming(e, now)
	}
}

// InCategory matches events whose category equals category, ignoring case.
// An empty category or CategoryAll matches everything.
func InCategory(category string) Predicate {
	category = strings.TrimSpace(category)
	if category == "" || strings.EqualFold(category, CategoryAll) {
		return func(model.Event) bool { return true }
	}
	return func(e model.Event) bool {
		return strings.EqualFold(e.Category, category)
	}
}

// NameContains matches events whose name contains query, ignoring case.
func NameContains(query string) Predicate {
	query = strings.ToLower(strings.TrimSpace(query))
	return func(e model.Event) bool {
		return strings.Contains(strings.ToLower(e.Name), query)
	}
}

// And matches events satisfying every non-nil predicate.
func And(preds ...Predicate) Predicate {
	return func(e model.Event) bool {
		for _, p := range preds {
			if p != nil && !p(e) {
				return false
			}
		}
		return true
	}
}
