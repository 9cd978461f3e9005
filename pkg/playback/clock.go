package playback

import (
	"sync"
	"time"

	"github.com/f1ledcircuit/replay-engine-go/log"
	"github.com/f1ledcircuit/replay-engine-go/pkg/catalog"
	"github.com/f1ledcircuit/replay-engine-go/pkg/model"
	"github.com/f1ledcircuit/replay-engine-go/pkg/timeline"
)

const (
	minSpeed            = 1
	DefaultTickInterval = 50 * time.Millisecond
)

// RaceClock drives playback. It converts elapsed wall time and the speed
// multiplier into a race time, advances the cursor over the timeline's due
// prefix and derives the current LED frame from it.
//
// The clock is the only component mutating playback state. Producers keep
// appending to the timeline independently; stopping the clock never
// touches ingestion.
type RaceClock struct {
	mu       sync.Mutex
	tl       *timeline.Timeline
	colors   *catalog.Catalog
	now      func() time.Time
	interval time.Duration
	l        *log.Logger

	running  bool
	speed    int
	startRef time.Time
	cursor   int
	lastPos  map[int]model.LedCoordinate
	lastIdx  map[int]int
}

type Option func(*RaceClock)

func WithCatalog(c *catalog.Catalog) Option {
	return func(rc *RaceClock) {
		rc.colors = c
	}
}

func WithSpeed(speed int) Option {
	return func(rc *RaceClock) {
		rc.speed = max(speed, minSpeed)
	}
}

func WithTickInterval(d time.Duration) Option {
	return func(rc *RaceClock) {
		rc.interval = d
	}
}

// WithNow replaces the wall clock source. Used by tests.
func WithNow(now func() time.Time) Option {
	return func(rc *RaceClock) {
		rc.now = now
	}
}

func WithLogger(l *log.Logger) Option {
	return func(rc *RaceClock) {
		rc.l = l
	}
}

func NewRaceClock(tl *timeline.Timeline, opts ...Option) *RaceClock {
	rc := &RaceClock{
		tl:       tl,
		colors:   catalog.New(),
		now:      time.Now,
		interval: DefaultTickInterval,
		speed:    minSpeed,
		l:        log.Default().Named("playback"),
		lastPos:  make(map[int]model.LedCoordinate),
		lastIdx:  make(map[int]int),
	}
	for _, opt := range opts {
		opt(rc)
	}
	return rc
}

// Start transitions Idle -> Running. The current instant becomes the zero
// point of the race time and the cursor restarts at the beginning of the
// timeline.
func (rc *RaceClock) Start() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.startRef = rc.now()
	rc.cursor = 0
	clear(rc.lastPos)
	clear(rc.lastIdx)
	rc.running = true
	rc.l.Info("race started", log.Int("speed", rc.speed))
}

// Stop transitions Running -> Idle and clears all derived playback state.
// Calling it while already Idle is a no-op.
func (rc *RaceClock) Stop() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if rc.running {
		rc.l.Info("race stopped")
	}
	rc.running = false
	rc.cursor = 0
	clear(rc.lastPos)
	clear(rc.lastIdx)
}

// SetSpeed changes the playback speed. The change applies from the next
// tick on; race time already elapsed is not rescaled.
func (rc *RaceClock) SetSpeed(speed int) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.speed = max(speed, minSpeed)
}

func (rc *RaceClock) Speed() int {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.speed
}

func (rc *RaceClock) Running() bool {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.running
}

// Tick computes the current playback state. While running, the cursor
// moves forward to the end of the due prefix and never backwards.
func (rc *RaceClock) Tick() Snapshot {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if !rc.running {
		return Snapshot{Speed: rc.speed}
	}
	raceTime := rc.now().Sub(rc.startRef).Seconds() * float64(rc.speed)
	due := rc.tl.Due(raceTime)
	if len(due) > rc.cursor {
		rc.cursor = len(due)
	}
	// positions always derive from the cursor prefix: a speed decrease
	// shrinks the due prefix below the held cursor, and the frame must not
	// regress with it
	if len(due) < rc.cursor {
		due = rc.tl.Prefix(rc.cursor)
	}
	rc.rebuild(due)
	return rc.snapshot(raceTime)
}

// rebuild recomputes the last known position per driver over the cursor
// prefix. A later sample replaces the earlier one, it does not accumulate.
func (rc *RaceClock) rebuild(due []model.MappedEvent) {
	clear(rc.lastPos)
	clear(rc.lastIdx)
	for i, ev := range due {
		rc.lastPos[ev.DriverNumber] = ev.Coord
		rc.lastIdx[ev.DriverNumber] = i
	}
}
