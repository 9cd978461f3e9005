package timeline

import (
	"slices"
	"sync"
	"time"

	"github.com/f1ledcircuit/replay-engine-go/pkg/model"
)

// entry tags each event with its arrival sequence so that equal timestamps
// keep arrival order no matter how often the slice is re-sorted.
type entry struct {
	ev  model.MappedEvent
	seq uint64
}

// Timeline merges mapped events from all driver streams into one globally
// time-ordered sequence. Producers append concurrently; readers always
// observe a fully sorted view.
type Timeline struct {
	mu      sync.RWMutex
	entries []entry
	nextSeq uint64
}

func New() *Timeline {
	return &Timeline{entries: make([]entry, 0, 1024)}
}

// Append inserts events and re-establishes the ordering before the lock is
// released, so no reader can see an unsorted intermediate state.
func (t *Timeline) Append(events []model.MappedEvent) {
	if len(events) == 0 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, ev := range events {
		t.entries = append(t.entries, entry{ev: ev, seq: t.nextSeq})
		t.nextSeq++
	}
	slices.SortFunc(t.entries, func(a, b entry) int {
		if c := a.ev.Timestamp.Compare(b.ev.Timestamp); c != 0 {
			return c
		}
		// arrival order breaks ties
		if a.seq < b.seq {
			return -1
		} else if a.seq > b.seq {
			return 1
		}
		return 0
	})
}

func (t *Timeline) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// StartTime returns the timestamp of the first event. All due-time
// calculations are relative to it, decoupling playback from the
// recording's absolute clock.
func (t *Timeline) StartTime() (time.Time, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if len(t.entries) == 0 {
		return time.Time{}, false
	}
	return t.entries[0].ev.Timestamp, true
}

// Due returns a copy of the prefix of events whose timestamp, relative to
// the first event, is within raceTime seconds. The copy is taken under one
// lock, so the caller gets an atomic view.
func (t *Timeline) Due(raceTime float64) []model.MappedEvent {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if len(t.entries) == 0 {
		return nil
	}
	start := t.entries[0].ev.Timestamp
	n := 0
	for n < len(t.entries) {
		rel := t.entries[n].ev.Timestamp.Sub(start).Seconds()
		if rel > raceTime {
			break
		}
		n++
	}
	ret := make([]model.MappedEvent, n)
	for i := range n {
		ret[i] = t.entries[i].ev
	}
	return ret
}

// Prefix returns a copy of the first n events, clamped to the current
// length.
func (t *Timeline) Prefix(n int) []model.MappedEvent {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if n > len(t.entries) {
		n = len(t.entries)
	}
	ret := make([]model.MappedEvent, n)
	for i := range n {
		ret[i] = t.entries[i].ev
	}
	return ret
}

// Events returns a copy of the whole timeline.
func (t *Timeline) Events() []model.MappedEvent {
	t.mu.RLock()
	defer t.mu.RUnlock()
	ret := make([]model.MappedEvent, len(t.entries))
	for i := range t.entries {
		ret[i] = t.entries[i].ev
	}
	return ret
}

// Clear removes all events. Only an explicit reset of a replay run should
// call this.
func (t *Timeline) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = t.entries[:0]
	t.nextSeq = 0
}
