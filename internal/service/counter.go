package service

import "sync"

// RegistrationCounter tallies successful registrations per category for the
// lifetime of the process.
type RegistrationCounter struct {
	mu     sync.Mutex
	totals map[string]int
}

// NewRegistrationCounter returns an empty counter.
func NewRegistrationCounter() *RegistrationCounter {
	return &RegistrationCounter{totals: make(map[string]int)}
}

// Increment adds one registration to category and returns the new total.
func (c *RegistrationCounter) Increment(category string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.totals[category]++
	return c.totals[category]
}

// Count returns the total for category, zero if none were recorded.
func (c *RegistrationCounter) Count(category string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totals[category]
}

// Snapshot returns a copy of all totals.
func (c *RegistrationCounter) Snapshot() map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]int, len(c.totals))
	for k, v := range c.totals {
		out[k] = v
	}
	return out
}
