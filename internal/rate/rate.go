// Package rate holds the process-wide default interest rate.
package rate

import (
	"sync"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/validation"
)

// Cell is the configurable default interest rate, in percent units. It is
// safe for concurrent use.
type Cell struct {
	mu   sync.RWMutex
	rate float64
}

// NewCell returns a cell holding initial, or the built-in default when
// initial is out of bounds.
func NewCell(initial float64) *Cell {
	if !validation.InterestRateInBounds(initial) {
		initial = constants.DefaultInterestRate
	}
	return &Cell{rate: initial}
}

// Get returns the current rate.
func (c *Cell) Get() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rate
}

// Set commits newRate when it lies in (0, 100] and reports whether it did.
func (c *Cell) Set(newRate float64) bool {
	_, ok := c.Swap(newRate)
	return ok
}

// Swap is Set that also returns the rate held before the call.
func (c *Cell) Swap(newRate float64) (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	old := c.rate
	if !validation.InterestRateInBounds(newRate) {
		return old, false
	}
	c.rate = newRate
	return old, true
}
