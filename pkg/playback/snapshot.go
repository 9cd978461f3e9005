package playback

import (
	"context"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/f1ledcircuit/replay-engine-go/pkg/model"
)

// LedState is one lit LED of a frame.
type LedState struct {
	Coord  model.LedCoordinate `json:"coord"`
	Driver int                 `json:"driver"`
	Color  model.Color         `json:"color"`
}

// Snapshot is the immutable per-tick view handed to the presentation
// boundary. Frame holds at most one entry per LED.
type Snapshot struct {
	RaceTime float64    `json:"raceTime"`
	Cursor   int        `json:"cursor"`
	Running  bool       `json:"running"`
	Speed    int        `json:"speed"`
	Frame    []LedState `json:"frame"`
}

// Clock renders the race time as HH:MM:SS.ss. Truncated to centiseconds
// first, otherwise formatting rounds 59.999s up to the impossible 60.00.
func (s Snapshot) Clock() string {
	rt := math.Floor(s.RaceTime*100) / 100
	h := math.Floor(rt / 3600)
	m := math.Floor(math.Mod(rt, 3600) / 60)
	return fmt.Sprintf("%02.0f:%02.0f:%05.2f", h, m, math.Mod(rt, 60))
}

// snapshot derives the active LED frame from lastPos. Drivers are applied
// in timeline order of their last event, so when two drivers share an LED
// the one whose sample came later in the timeline owns it.
func (rc *RaceClock) snapshot(raceTime float64) Snapshot {
	drivers := make([]int, 0, len(rc.lastPos))
	for driver := range rc.lastPos {
		drivers = append(drivers, driver)
	}
	slices.SortFunc(drivers, func(a, b int) int {
		return rc.lastIdx[a] - rc.lastIdx[b]
	})

	type activeLed struct {
		coord  model.LedCoordinate
		driver int
	}
	active := make(map[model.CoordKey]activeLed, len(drivers))
	for _, driver := range drivers {
		coord := rc.lastPos[driver]
		active[coord.Key()] = activeLed{coord: coord, driver: driver}
	}

	frame := make([]LedState, 0, len(active))
	for _, led := range active {
		frame = append(frame, LedState{
			Coord:  led.coord,
			Driver: led.driver,
			Color:  rc.colors.Color(led.driver),
		})
	}
	slices.SortFunc(frame, func(a, b LedState) int {
		ka, kb := a.Coord.Key(), b.Coord.Key()
		if ka.X != kb.X {
			if ka.X < kb.X {
				return -1
			}
			return 1
		}
		if ka.Y != kb.Y {
			if ka.Y < kb.Y {
				return -1
			}
			return 1
		}
		return 0
	})

	return Snapshot{
		RaceTime: raceTime,
		Cursor:   rc.cursor,
		Running:  rc.running,
		Speed:    rc.speed,
		Frame:    frame,
	}
}

// Run ticks the clock on its own interval until ctx is done and emits a
// snapshot per tick. The returned channel is closed on shutdown.
func (rc *RaceClock) Run(ctx context.Context) <-chan Snapshot {
	out := make(chan Snapshot)
	go func() {
		defer close(out)
		ticker := time.NewTicker(rc.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				rc.l.Debug("race clock terminating")
				return
			case <-ticker.C:
				select {
				case out <- rc.Tick():
				case <-ctx.Done():
					rc.l.Debug("race clock terminating")
					return
				}
			}
		}
	}()
	return out
}
