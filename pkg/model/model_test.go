package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLedCoordinate_Key(t *testing.T) {
	assert.Equal(t, CoordKey{X: 1_500_000, Y: -2_250_000},
		LedCoordinate{X: 1.5, Y: -2.25}.Key())
	// truncation, not rounding
	assert.Equal(t, CoordKey{X: 1, Y: -1},
		LedCoordinate{X: 0.0000019, Y: -0.0000019}.Key())
}

func TestLedCoordinate_KeyEquality(t *testing.T) {
	a := LedCoordinate{X: 10, Y: 0}
	b := LedCoordinate{X: 10.0000000001, Y: 0}
	assert.Equal(t, a.Key(), b.Key(), "sub-resolution differences collapse")
}
