package catalog

import (
	"github.com/samber/lo"

	"github.com/f1ledcircuit/replay-engine-go/pkg/model"
)

// unknown driver numbers are rendered white
var colorUnknown = model.Color{R: 255, G: 255, B: 255}

//nolint:lll // table layout
func Drivers() []model.DriverInfo {
	return []model.DriverInfo{
		{Number: 1, Name: "Max Verstappen", Team: "Red Bull", Color: model.Color{R: 30, G: 65, B: 255}},
		{Number: 2, Name: "Logan Sargeant", Team: "Williams", Color: model.Color{R: 0, G: 82, B: 255}},
		{Number: 4, Name: "Lando Norris", Team: "McLaren", Color: model.Color{R: 255, G: 135, B: 0}},
		{Number: 10, Name: "Pierre Gasly", Team: "Alpine", Color: model.Color{R: 2, G: 144, B: 240}},
		{Number: 11, Name: "Sergio Perez", Team: "Red Bull", Color: model.Color{R: 30, G: 65, B: 255}},
		{Number: 14, Name: "Fernando Alonso", Team: "Aston Martin", Color: model.Color{R: 0, G: 110, B: 120}},
		{Number: 16, Name: "Charles Leclerc", Team: "Ferrari", Color: model.Color{R: 220, G: 0, B: 0}},
		{Number: 18, Name: "Lance Stroll", Team: "Aston Martin", Color: model.Color{R: 0, G: 110, B: 120}},
		{Number: 20, Name: "Kevin Magnussen", Team: "Haas", Color: model.Color{R: 160, G: 207, B: 205}},
		{Number: 22, Name: "Yuki Tsunoda", Team: "AlphaTauri", Color: model.Color{R: 60, G: 130, B: 200}},
		{Number: 23, Name: "Alex Albon", Team: "Williams", Color: model.Color{R: 0, G: 82, B: 255}},
		{Number: 24, Name: "Zhou Guanyu", Team: "Stake F1", Color: model.Color{R: 165, G: 160, B: 155}},
		{Number: 27, Name: "Nico Hulkenberg", Team: "Haas", Color: model.Color{R: 160, G: 207, B: 205}},
		{Number: 31, Name: "Esteban Ocon", Team: "Alpine", Color: model.Color{R: 2, G: 144, B: 240}},
		{Number: 40, Name: "Liam Lawson", Team: "AlphaTauri", Color: model.Color{R: 60, G: 130, B: 200}},
		{Number: 44, Name: "Lewis Hamilton", Team: "Mercedes", Color: model.Color{R: 0, G: 210, B: 190}},
		{Number: 55, Name: "Carlos Sainz", Team: "Ferrari", Color: model.Color{R: 220, G: 0, B: 0}},
		{Number: 63, Name: "George Russell", Team: "Mercedes", Color: model.Color{R: 0, G: 210, B: 190}},
		{Number: 77, Name: "Valtteri Bottas", Team: "Stake F1", Color: model.Color{R: 165, G: 160, B: 155}},
		{Number: 81, Name: "Oscar Piastri", Team: "McLaren", Color: model.Color{R: 255, G: 135, B: 0}},
	}
}

// Catalog provides driver lookups by number.
type Catalog struct {
	byNumber map[int]model.DriverInfo
}

func New() *Catalog {
	return &Catalog{
		byNumber: lo.Associate(Drivers(),
			func(d model.DriverInfo) (int, model.DriverInfo) {
				return d.Number, d
			}),
	}
}

func (c *Catalog) Get(number int) (model.DriverInfo, bool) {
	d, ok := c.byNumber[number]
	return d, ok
}

// Color returns the display color for a driver number.
func (c *Catalog) Color(number int) model.Color {
	if d, ok := c.byNumber[number]; ok {
		return d.Color
	}
	return colorUnknown
}

// Numbers returns all known driver numbers.
func (c *Catalog) Numbers() []int {
	return lo.Map(Drivers(), func(d model.DriverInfo, _ int) int {
		return d.Number
	})
}
