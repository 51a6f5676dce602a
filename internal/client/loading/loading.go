// Package loading implements loading flags with a minimum display time, so a
// skeleton placeholder never flickers on fast responses.
package loading

import (
	"sync"
	"time"

	"github.com/dmitrijs2005/recipes/internal/timex"
)

const (
	CollectionFloor = 1000 * time.Millisecond
	ProfileFloor    = 300 * time.Millisecond
)

// Flag is true from Begin until data has arrived and at least floor has
// passed since that Begin.
type Flag struct {
	floor time.Duration
	clock timex.Clock

	mu       sync.Mutex
	loading  bool
	started  time.Time
	gen      uint64
	timer    timex.Timer
	onChange func(bool)
}

func NewFlag(floor time.Duration, clock timex.Clock) *Flag {
	if clock == nil {
		clock = timex.RealClock()
	}
	return &Flag{floor: floor, clock: clock}
}

// OnChange registers fn to be called, outside the flag's lock, whenever the
// flag flips.
func (f *Flag) OnChange(fn func(bool)) {
	f.mu.Lock()
	f.onChange = fn
	f.mu.Unlock()
}

func (f *Flag) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

// Begin starts a load and returns its generation. Any pending flip from an
// earlier load is cancelled.
func (f *Flag) Begin() uint64 {
	f.mu.Lock()
	f.gen++
	gen := f.gen
	f.started = f.clock.Now()
	f.stopTimerLocked()
	changed := !f.loading
	f.loading = true
	cb := f.onChange
	f.mu.Unlock()

	if changed && cb != nil {
		cb(true)
	}
	return gen
}

// DataArrived finishes the most recent load.
func (f *Flag) DataArrived() {
	f.mu.Lock()
	gen := f.gen
	f.mu.Unlock()
	f.Arrived(gen)
}

// Arrived finishes load gen. Arrivals for superseded generations are ignored.
func (f *Flag) Arrived(gen uint64) {
	f.mu.Lock()
	if gen != f.gen || !f.loading {
		f.mu.Unlock()
		return
	}
	remaining := f.floor - f.clock.Now().Sub(f.started)
	if remaining > 0 {
		f.stopTimerLocked()
		f.timer = f.clock.AfterFunc(remaining, func() { f.finish(gen) })
		f.mu.Unlock()
		return
	}
	f.mu.Unlock()
	f.finish(gen)
}

func (f *Flag) finish(gen uint64) {
	f.mu.Lock()
	if gen != f.gen || !f.loading {
		f.mu.Unlock()
		return
	}
	f.loading = false
	f.timer = nil
	cb := f.onChange
	f.mu.Unlock()

	if cb != nil {
		cb(false)
	}
}

func (f *Flag) stopTimerLocked() {
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
}
