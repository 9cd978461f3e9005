package track

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/f1ledcircuit/replay-engine-go/pkg/model"
)

// ErrEmptyLayout marks the fatal configuration error of an unusable LED
// layout. Nothing can be mapped without coordinates, so callers must abort
// before any ingestion starts.
var ErrEmptyLayout = errors.New("LED layout contains no coordinates")

// LoadLayout reads an LED layout from a CSV file with an x_led,y_led header.
func LoadLayout(path string) ([]model.LedCoordinate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open layout file: %w", err)
	}
	defer f.Close()
	return ReadLayout(f)
}

// ReadLayout parses CSV layout data. The first row is expected to be the
// header; column order is x_led,y_led.
func ReadLayout(r io.Reader) ([]model.LedCoordinate, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not parse layout file: %w", err)
	}
	ret := make([]model.LedCoordinate, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			// header
			continue
		}
		x, xErr := strconv.ParseFloat(row[0], 64)
		y, yErr := strconv.ParseFloat(row[1], 64)
		if xErr != nil || yErr != nil {
			return nil, fmt.Errorf("invalid coordinate in row %d: %v", i+1, row)
		}
		ret = append(ret, model.LedCoordinate{X: x, Y: y})
	}
	if len(ret) == 0 {
		return nil, ErrEmptyLayout
	}
	return ret, nil
}
