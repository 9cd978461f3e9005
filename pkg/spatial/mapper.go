package spatial

import (
	"math"

	"github.com/f1ledcircuit/replay-engine-go/pkg/model"
)

// Mapper snaps raw telemetry coordinates onto the LED layout.
// The layout is in the low hundreds, so a linear scan beats any spatial
// index here.
type Mapper struct {
	layout []model.LedCoordinate
}

func NewMapper(layout []model.LedCoordinate) *Mapper {
	return &Mapper{layout: layout}
}

// Nearest returns the closest LED by euclidean distance. Ties go to the
// LED that comes first in layout order, which keeps the result
// deterministic.
func (m *Mapper) Nearest(x, y float64) model.LedCoordinate {
	best := m.layout[0]
	bestDist := math.Inf(1)
	for _, c := range m.layout {
		dx := c.X - x
		dy := c.Y - y
		if d := dx*dx + dy*dy; d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best
}

// Map converts a telemetry record into a mapped event.
func (m *Mapper) Map(rec model.TelemetryRecord) model.MappedEvent {
	return model.MappedEvent{
		DriverNumber: rec.DriverNumber,
		Timestamp:    rec.Date,
		Coord:        m.Nearest(rec.X, rec.Y),
	}
}
