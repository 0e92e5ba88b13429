// Package clock converts the simulation tick counter to and from day/hour/minute.
//
// One tick is ten minutes of simulated time.
package clock

import (
	"errors"
	"fmt"
	"sync"
)

const (
	// MinutesPerTick is the simulated length of one tick.
	MinutesPerTick = 10
	// TicksPerHour is the number of ticks in one simulated hour.
	TicksPerHour = 60 / MinutesPerTick
	// TicksPerDay is the number of ticks in one simulated day.
	TicksPerDay = 24 * TicksPerHour
)

// ErrInvalidRange is returned when a day, hour, or minute is out of range.
var ErrInvalidRange = errors.New("clock: value out of range")

// Calc converts a day/hour/minute triple to ticks. Minutes truncate to the
// ten-minute grid.
//
// Precondition: day >= 0; hour in [0, 24); minute in [0, 60).
// Postcondition: Returns the tick count or an error wrapping ErrInvalidRange.
func Calc(day, hour, minute int) (int, error) {
	if day < 0 {
		return 0, fmt.Errorf("%w: day %d", ErrInvalidRange, day)
	}
	if hour < 0 || hour >= 24 {
		return 0, fmt.Errorf("%w: hour %d", ErrInvalidRange, hour)
	}
	if minute < 0 || minute >= 60 {
		return 0, fmt.Errorf("%w: minute %d", ErrInvalidRange, minute)
	}
	return day*TicksPerDay + hour*TicksPerHour + minute/MinutesPerTick, nil
}

// MustCalc is Calc for constant inputs; it panics on an invalid range.
func MustCalc(day, hour, minute int) int {
	ticks, err := Calc(day, hour, minute)
	if err != nil {
		panic("clock.MustCalc: " + err.Error())
	}
	return ticks
}

// Hours returns the tick count of h whole hours.
func Hours(h int) int { return h * TicksPerHour }

// Days returns the tick count of d whole days.
func Days(d int) int { return d * TicksPerDay }

// Evaluate is the inverse of Calc.
//
// Precondition: ticks >= 0.
// Postcondition: hour in [0, 24); minute in {0, 10, ..., 50}.
func Evaluate(ticks int) (day, hour, minute int) {
	minute = (ticks % TicksPerHour) * MinutesPerTick
	hour = (ticks / TicksPerHour) % 24
	day = ticks / TicksPerDay
	return day, hour, minute
}

// Label renders ticks as a 1-indexed day with zero-padded hour and minute.
func Label(ticks int) string {
	day, hour, minute := Evaluate(ticks)
	return fmt.Sprintf("Day %d %02d:%02d", day+1, hour, minute)
}

// Clock holds the simulation tick counter.
// All methods are safe for concurrent use.
type Clock struct {
	mu    sync.RWMutex
	ticks int
}

// New creates a Clock positioned at the given day, hour and minute.
//
// Precondition: day, hour and minute satisfy Calc's ranges.
// Postcondition: Returns a non-nil Clock or an error wrapping ErrInvalidRange.
func New(day, hour, minute int) (*Clock, error) {
	ticks, err := Calc(day, hour, minute)
	if err != nil {
		return nil, err
	}
	return &Clock{ticks: ticks}, nil
}

// Ticks returns the raw tick counter.
func (c *Clock) Ticks() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ticks
}

// Evaluate returns the current day, hour and minute.
func (c *Clock) Evaluate() (day, hour, minute int) {
	return Evaluate(c.Ticks())
}

// Now returns the human-readable label of the current time.
func (c *Clock) Now() string {
	return Label(c.Ticks())
}

// Tick advances the clock by one tick.
func (c *Clock) Tick() {
	c.Step(1)
}

// Step advances the clock by amount ticks.
//
// Precondition: amount >= 0.
func (c *Clock) Step(amount int) {
	if amount < 0 {
		panic("clock.Clock.Step: amount must be >= 0")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ticks += amount
}
