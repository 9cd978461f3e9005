package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/f1ledcircuit/replay-engine-go/pkg/model"
)

func TestCatalog_Get(t *testing.T) {
	c := New()
	d, ok := c.Get(44)
	assert.True(t, ok)
	assert.Equal(t, "Lewis Hamilton", d.Name)
	assert.Equal(t, "Mercedes", d.Team)

	_, ok = c.Get(99)
	assert.False(t, ok)
}

func TestCatalog_Color(t *testing.T) {
	c := New()
	assert.Equal(t, model.Color{R: 220, G: 0, B: 0}, c.Color(16))
	// unknown drivers fall back to white
	assert.Equal(t, model.Color{R: 255, G: 255, B: 255}, c.Color(99))
}

func TestCatalog_Numbers(t *testing.T) {
	c := New()
	nums := c.Numbers()
	assert.Len(t, nums, 20)
	assert.Contains(t, nums, 1)
	assert.Contains(t, nums, 81)
}
