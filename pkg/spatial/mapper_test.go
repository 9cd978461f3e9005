package spatial

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/f1ledcircuit/replay-engine-go/pkg/model"
)

var testLayout = []model.LedCoordinate{
	{X: 0, Y: 0},
	{X: 10, Y: 0},
	{X: 10, Y: 10},
}

func TestMapper_NearestExact(t *testing.T) {
	m := NewMapper(testLayout)
	for _, coord := range testLayout {
		assert.Equal(t, coord, m.Nearest(coord.X, coord.Y))
	}
}

func TestMapper_NearestBetween(t *testing.T) {
	m := NewMapper(testLayout)
	assert.Equal(t, testLayout[1], m.Nearest(9, 1))
	assert.Equal(t, testLayout[2], m.Nearest(11, 8))
	assert.Equal(t, testLayout[0], m.Nearest(-3, -4))
}

// equidistant raw positions resolve to the layout entry listed first
func TestMapper_TieBreakFirstWins(t *testing.T) {
	m := NewMapper(testLayout)
	// (5,0) is exactly between the first and second entry
	assert.Equal(t, testLayout[0], m.Nearest(5, 0))
	// (10,5) is exactly between the second and third entry
	assert.Equal(t, testLayout[1], m.Nearest(10, 5))
}

func TestMapper_Map(t *testing.T) {
	m := NewMapper(testLayout)
	ts := time.Date(2023, 8, 27, 12, 58, 56, 0, time.UTC)
	ev := m.Map(model.TelemetryRecord{DriverNumber: 7, Date: ts, X: 9, Y: 1})
	assert.Equal(t, 7, ev.DriverNumber)
	assert.Equal(t, ts, ev.Timestamp)
	assert.Equal(t, testLayout[1], ev.Coord)
}
