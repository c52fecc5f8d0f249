// Package clock provides the millisecond counters that drive the generators.
package clock

import (
	"sync/atomic"
	"time"
)

// Clock is a monotonic millisecond counter. It wraps after ~49.7 days.
type Clock interface {
	Now() uint32
}

// System counts milliseconds since it was created
type System struct {
	start time.Time
}

func NewSystem() *System {
	return &System{start: time.Now()}
}

func (s *System) Now() uint32 {
	return uint32(time.Since(s.start).Milliseconds())
}

// Manual is a clock that only moves when told to
type Manual struct {
	now atomic.Uint32
}

func (m *Manual) Now() uint32 { return m.now.Load() }

// Set jumps to ms
func (m *Manual) Set(ms uint32) { m.now.Store(ms) }

// Advance moves the clock forward and returns the new time
func (m *Manual) Advance(ms uint32) uint32 { return m.now.Add(ms) }
