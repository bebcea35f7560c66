// Package timer implements the external timer service contract
// (paxos.Timer) with time.AfterFunc, matching the teacher's own use of
// time.AfterFunc for scheduled retries (paxos/acceptor.go's disk-write
// retry, stats/stats.go's republish loop).
package timer

import (
	"sync"
	"time"

	"paxoscore.dev/server/paxos"
)

// Real is a paxos.Timer backed by the standard library's runtime timers.
type Real struct{}

// New returns a Real timer service.
func New() *Real {
	return &Real{}
}

// Schedule implements paxos.Timer.
func (Real) Schedule(d time.Duration, fn func()) paxos.TimerHandle {
	t := time.AfterFunc(d, fn)
	return &handle{t: t}
}

type handle struct {
	t *time.Timer
}

func (h *handle) Cancel() {
	h.t.Stop()
}

// Fake is a deterministic timer service for tests: nothing fires until
// Advance is called, in the idiom of dedis-tlc's model_test.go driving
// nodes by hand rather than by wall-clock sleeps.
type Fake struct {
	mu      sync.Mutex
	now     time.Duration
	pending []*fakeEntry
}

type fakeEntry struct {
	at        time.Duration
	fn        func()
	cancelled bool
}

// NewFake returns a Fake timer service starting at time zero.
func NewFake() *Fake {
	return &Fake{}
}

// Schedule implements paxos.Timer.
func (f *Fake) Schedule(d time.Duration, fn func()) paxos.TimerHandle {
	f.mu.Lock()
	defer f.mu.Unlock()
	e := &fakeEntry{at: f.now + d, fn: fn}
	f.pending = append(f.pending, e)
	return &fakeHandle{e: e}
}

// Advance moves fake time forward by d, firing (in scheduled order) every
// non-cancelled entry whose deadline has now passed. A callback that
// itself schedules new work via Schedule is picked up by a later Advance.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	f.now += d
	due := f.now
	var fire []func()
	remaining := f.pending[:0]
	for _, e := range f.pending {
		if !e.cancelled && e.at <= due {
			fire = append(fire, e.fn)
		} else if !e.cancelled {
			remaining = append(remaining, e)
		}
	}
	f.pending = remaining
	f.mu.Unlock()

	for _, fn := range fire {
		fn()
	}
}

type fakeHandle struct {
	e *fakeEntry
}

func (h *fakeHandle) Cancel() {
	h.e.cancelled = true
}
