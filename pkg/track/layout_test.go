package track

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/f1ledcircuit/replay-engine-go/pkg/model"
)

func TestReadLayout(t *testing.T) {
	data := "x_led,y_led\n0.5,1.25\n-3,4\n"
	got, err := ReadLayout(strings.NewReader(data))
	assert.NoError(t, err)
	assert.Equal(t, []model.LedCoordinate{
		{X: 0.5, Y: 1.25},
		{X: -3, Y: 4},
	}, got)
}

func TestReadLayout_HeaderOnly(t *testing.T) {
	_, err := ReadLayout(strings.NewReader("x_led,y_led\n"))
	assert.ErrorIs(t, err, ErrEmptyLayout)
}

func TestReadLayout_Empty(t *testing.T) {
	_, err := ReadLayout(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyLayout)
}

func TestReadLayout_InvalidCoordinate(t *testing.T) {
	_, err := ReadLayout(strings.NewReader("x_led,y_led\nfoo,1\n"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmptyLayout)
}

func TestLoadLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coords.csv")
	assert.NoError(t, os.WriteFile(path, []byte("x_led,y_led\n1,2\n"), 0o600))

	got, err := LoadLayout(path)
	assert.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestLoadLayout_MissingFile(t *testing.T) {
	_, err := LoadLayout(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestDefaultLayout(t *testing.T) {
	layout := DefaultLayout()
	assert.Len(t, layout, 96)
	// coordinates must be distinct, otherwise two LEDs collapse into one
	seen := make(map[model.CoordKey]struct{}, len(layout))
	for _, c := range layout {
		_, dup := seen[c.Key()]
		assert.False(t, dup, "duplicate coordinate %v", c)
		seen[c.Key()] = struct{}{}
	}
}
