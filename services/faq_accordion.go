package services

import (
	"errors"
	"sync"
)

var ErrFAQIndex = errors.New("faq entry out of range")

// FAQAccordion tracks which FAQ entries a visitor has expanded.
// Entries are independent; toggling one never changes another.
type FAQAccordion struct {
	mu   sync.RWMutex
	open []bool
}

// NewFAQAccordion creates an accordion with n collapsed entries
func NewFAQAccordion(n int) *FAQAccordion {
	if n < 0 {
		n = 0
	}
	return &FAQAccordion{open: make([]bool, n)}
}

// Len returns the number of entries
func (a *FAQAccordion) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.open)
}

// Toggle flips entry i and returns its new state
func (a *FAQAccordion) Toggle(i int) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if i < 0 || i >= len(a.open) {
		return false, ErrFAQIndex
	}
	a.open[i] = !a.open[i]
	return a.open[i], nil
}

// IsOpen reports whether entry i is expanded; out of range entries are closed
func (a *FAQAccordion) IsOpen(i int) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if i < 0 || i >= len(a.open) {
		return false
	}
	return a.open[i]
}

// Snapshot returns a copy of every entry's state
func (a *FAQAccordion) Snapshot() []bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]bool, len(a.open))
	copy(out, a.open)
	return out
}

// Reset collapses every entry
func (a *FAQAccordion) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := range a.open {
		a.open[i] = false
	}
}
