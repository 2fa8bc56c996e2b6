// Package seed provides the starter set of community events.
package seed

import "github.com/Jana57473/community-event-portal/internal/model"

// Events returns the starter events with dates relative to today. The set
// deliberately includes one full event and one past event.
func Events(today model.Date) []model.Event {
	on := func(days int) model.Date {
		return model.NewDate(today.AddDate(0, 0, days))
	}
	return []model.Event{
		{ID: 1, Name: "Music Night", Date: on(30), Category: "music", Location: "Hall A", Seats: 30},
		{ID: 2, Name: "Baking Workshop", Date: on(10), Category: "workshop", Location: "Kitchen", Seats: 0},
		{ID: 3, Name: "Football Match", Date: on(45), Category: "sports", Location: "Field", Seats: 15},
		{ID: 4, Name: "Jazz Concert", Date: on(-30), Category: "music", Location: "Hall B", Seats: 25},
		{ID: 5, Name: "Rock Concert", Date: on(60), Category: "music", Location: "Stadium", Seats: 50},
	}
}
