//nolint:funlen // ok for tests
package playback

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/f1ledcircuit/replay-engine-go/pkg/model"
	"github.com/f1ledcircuit/replay-engine-go/pkg/timeline"
)

// fakeClock lets tests drive race time deterministically.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time { return f.t }

func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

func mapped(driver int, relSec float64, coord model.LedCoordinate) model.MappedEvent {
	base := time.Date(2023, 8, 27, 13, 0, 0, 0, time.UTC)
	return model.MappedEvent{
		DriverNumber: driver,
		Timestamp:    base.Add(time.Duration(relSec * float64(time.Second))),
		Coord:        coord,
	}
}

var (
	ledA = model.LedCoordinate{X: 0, Y: 0}
	ledB = model.LedCoordinate{X: 10, Y: 0}
	ledC = model.LedCoordinate{X: 10, Y: 10}
)

func TestRaceClock_Playback(t *testing.T) {
	tl := timeline.New()
	tl.Append([]model.MappedEvent{
		mapped(7, 0, ledA),
		mapped(7, 1, ledB),
		mapped(7, 2, ledC),
	})

	fc := newFakeClock()
	rc := NewRaceClock(tl, WithNow(fc.Now))
	rc.Start()

	fc.Advance(500 * time.Millisecond)
	snap := rc.Tick()
	assert.Equal(t, 1, snap.Cursor)
	assert.True(t, snap.Running)
	if assert.Len(t, snap.Frame, 1) {
		assert.Equal(t, ledA, snap.Frame[0].Coord)
		assert.Equal(t, 7, snap.Frame[0].Driver)
	}

	fc.Advance(500 * time.Millisecond)
	snap = rc.Tick()
	assert.Equal(t, 2, snap.Cursor)
	// the later sample replaces the earlier position, it does not add to it
	if assert.Len(t, snap.Frame, 1) {
		assert.Equal(t, ledB, snap.Frame[0].Coord)
	}

	fc.Advance(5 * time.Second)
	snap = rc.Tick()
	assert.Equal(t, 3, snap.Cursor)
	if assert.Len(t, snap.Frame, 1) {
		assert.Equal(t, ledC, snap.Frame[0].Coord)
	}
}

func TestRaceClock_SpeedScalesRaceTime(t *testing.T) {
	tl := timeline.New()
	tl.Append([]model.MappedEvent{
		mapped(7, 0, ledA),
		mapped(7, 4, ledB),
	})

	fc := newFakeClock()
	rc := NewRaceClock(tl, WithNow(fc.Now), WithSpeed(4))
	rc.Start()

	fc.Advance(time.Second)
	snap := rc.Tick()
	assert.InDelta(t, 4.0, snap.RaceTime, 1e-9)
	assert.Equal(t, 2, snap.Cursor)
}

func TestRaceClock_SpeedClampedToMinimum(t *testing.T) {
	rc := NewRaceClock(timeline.New(), WithSpeed(0))
	assert.Equal(t, 1, rc.Speed())
	rc.SetSpeed(-3)
	assert.Equal(t, 1, rc.Speed())
	rc.SetSpeed(5)
	assert.Equal(t, 5, rc.Speed())
}

func TestRaceClock_CursorNeverMovesBackwards(t *testing.T) {
	tl := timeline.New()
	tl.Append([]model.MappedEvent{
		mapped(7, 0, ledA),
		mapped(7, 1, ledB),
		mapped(7, 3, ledC),
	})

	fc := newFakeClock()
	rc := NewRaceClock(tl, WithNow(fc.Now), WithSpeed(4))
	rc.Start()

	fc.Advance(time.Second)
	snap := rc.Tick()
	assert.Equal(t, 3, snap.Cursor)
	if assert.Len(t, snap.Frame, 1) {
		assert.Equal(t, ledC, snap.Frame[0].Coord)
	}

	// dropping the speed shrinks the due prefix for the recomputed race
	// time, but neither the cursor nor the frame may move back: positions
	// always reflect the events up to the cursor
	rc.SetSpeed(1)
	snap = rc.Tick()
	assert.InDelta(t, 1.0, snap.RaceTime, 1e-9)
	assert.Equal(t, 3, snap.Cursor)
	if assert.Len(t, snap.Frame, 1) {
		assert.Equal(t, ledC, snap.Frame[0].Coord)
	}
}

// two drivers mapped onto the same LED: the driver whose sample comes later
// in the timeline owns it
func TestRaceClock_SharedLedLastWriteWins(t *testing.T) {
	tl := timeline.New()
	tl.Append([]model.MappedEvent{
		mapped(7, 0, ledA),
		mapped(44, 1, ledA),
	})

	fc := newFakeClock()
	rc := NewRaceClock(tl, WithNow(fc.Now))
	rc.Start()

	fc.Advance(2 * time.Second)
	snap := rc.Tick()
	assert.Equal(t, 2, snap.Cursor)
	if assert.Len(t, snap.Frame, 1) {
		assert.Equal(t, 44, snap.Frame[0].Driver)
	}
}

func TestRaceClock_TickWhileIdle(t *testing.T) {
	tl := timeline.New()
	tl.Append([]model.MappedEvent{mapped(7, 0, ledA)})

	rc := NewRaceClock(tl)
	snap := rc.Tick()
	assert.False(t, snap.Running)
	assert.Equal(t, 0, snap.Cursor)
	assert.Empty(t, snap.Frame)
}

func TestRaceClock_StopResetsState(t *testing.T) {
	tl := timeline.New()
	tl.Append([]model.MappedEvent{mapped(7, 0, ledA)})

	fc := newFakeClock()
	rc := NewRaceClock(tl, WithNow(fc.Now))
	rc.Start()
	fc.Advance(time.Second)
	assert.Equal(t, 1, rc.Tick().Cursor)

	rc.Stop()
	rc.Stop() // idempotent
	assert.False(t, rc.Running())

	// a fresh start replays from the beginning
	rc.Start()
	snap := rc.Tick()
	assert.Equal(t, 1, snap.Cursor)
	fc.Advance(10 * time.Second)
	assert.Equal(t, 1, rc.Tick().Cursor)
}

func TestRaceClock_EmptyTimeline(t *testing.T) {
	fc := newFakeClock()
	rc := NewRaceClock(timeline.New(), WithNow(fc.Now))
	rc.Start()
	fc.Advance(time.Minute)
	snap := rc.Tick()
	assert.True(t, snap.Running)
	assert.Equal(t, 0, snap.Cursor)
	assert.Empty(t, snap.Frame)
}

func TestRaceClock_Run(t *testing.T) {
	tl := timeline.New()
	tl.Append([]model.MappedEvent{mapped(7, 0, ledA)})

	rc := NewRaceClock(tl, WithTickInterval(time.Millisecond))
	rc.Start()

	ctx, cancel := context.WithCancel(context.Background())
	frames := rc.Run(ctx)

	snap, ok := <-frames
	assert.True(t, ok)
	assert.True(t, snap.Running)

	cancel()
	for range frames {
	}
}

func TestSnapshot_Clock(t *testing.T) {
	assert.Equal(t, "00:00:00.00", Snapshot{}.Clock())
	assert.Equal(t, "00:01:05.50", Snapshot{RaceTime: 65.5}.Clock())
	assert.Equal(t, "02:10:03.25", Snapshot{RaceTime: 7803.25}.Clock())
	// sub-centisecond remainders truncate instead of rounding into :60
	assert.Equal(t, "00:00:59.99", Snapshot{RaceTime: 59.999}.Clock())
	assert.Equal(t, "00:01:00.00", Snapshot{RaceTime: 60.0}.Clock())
}
