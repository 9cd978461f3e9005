//nolint:funlen // ok for tests
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/f1ledcircuit/replay-engine-go/pkg/model"
	"github.com/f1ledcircuit/replay-engine-go/pkg/spatial"
	"github.com/f1ledcircuit/replay-engine-go/pkg/timeline"
)

var testLayout = []model.LedCoordinate{
	{X: 0, Y: 0},
	{X: 10, Y: 0},
	{X: 10, Y: 10},
}

// fakeSource yields canned fragments and a terminal error.
type fakeSource struct {
	fragments [][]byte
	finalErr  error
	pos       int
}

func (s *fakeSource) Next(_ context.Context) ([]byte, error) {
	if s.pos >= len(s.fragments) {
		if s.finalErr != nil {
			return nil, s.finalErr
		}
		return nil, io.EOF
	}
	frag := s.fragments[s.pos]
	s.pos++
	return frag, nil
}

func stream(driver int, coords ...[2]float64) []byte {
	buf := []byte("[")
	for i, c := range coords {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, fmt.Sprintf(
			`{"x":%v,"y":%v,"date":"2023-08-27T13:00:%02d+00:00","driver_number":%d}`,
			c[0], c[1], i, driver)...)
	}
	return append(buf, ']')
}

func TestRunner_SingleDriver(t *testing.T) {
	tl := timeline.New()
	sources := map[int]Source{
		7: &fakeSource{fragments: [][]byte{stream(7, [2]float64{1, 1}, [2]float64{9, 1})}},
	}
	r := NewRunner(tl, spatial.NewMapper(testLayout), sources)

	res := r.Run(context.Background())
	assert.Equal(t, 2, res.Emitted)
	assert.Empty(t, res.Failed)
	assert.Equal(t, 2, tl.Len())

	got := tl.Events()
	assert.Equal(t, testLayout[0], got[0].Coord)
	assert.Equal(t, testLayout[1], got[1].Coord)
}

func TestRunner_ZeroCoordinatesFiltered(t *testing.T) {
	tl := timeline.New()
	sources := map[int]Source{
		7: &fakeSource{fragments: [][]byte{
			stream(7, [2]float64{0, 0}, [2]float64{9, 1}, [2]float64{0, 0}),
		}},
	}
	r := NewRunner(tl, spatial.NewMapper(testLayout), sources)

	res := r.Run(context.Background())
	// decoded, but never mapped onto the timeline
	assert.Equal(t, 3, res.Emitted)
	assert.Equal(t, 1, tl.Len())
}

func TestRunner_FragmentedAcrossNextCalls(t *testing.T) {
	raw := stream(7, [2]float64{1, 1}, [2]float64{9, 1}, [2]float64{11, 9})
	var frags [][]byte
	for pos := 0; pos < len(raw); pos += 5 {
		frags = append(frags, raw[pos:min(pos+5, len(raw))])
	}

	tl := timeline.New()
	r := NewRunner(tl, spatial.NewMapper(testLayout), map[int]Source{
		7: &fakeSource{fragments: frags},
	})

	res := r.Run(context.Background())
	assert.Equal(t, 3, res.Emitted)
	assert.Equal(t, 3, tl.Len())
}

// a broken stream is reported but must not keep the other drivers from
// completing
func TestRunner_FailingDriverIsolated(t *testing.T) {
	tl := timeline.New()
	boom := errors.New("connection reset")
	sources := map[int]Source{
		7:  &fakeSource{fragments: [][]byte{stream(7, [2]float64{1, 1})}},
		44: &fakeSource{finalErr: boom},
		63: &fakeSource{fragments: [][]byte{stream(63, [2]float64{11, 9})}},
	}
	r := NewRunner(tl, spatial.NewMapper(testLayout), sources)

	res := r.Run(context.Background())
	assert.Equal(t, 2, res.Emitted)
	assert.Len(t, res.Failed, 1)
	assert.ErrorIs(t, res.Failed[44], boom)
	assert.Equal(t, 2, tl.Len())
}

func TestRunner_PartialDataBeforeFailure(t *testing.T) {
	tl := timeline.New()
	r := NewRunner(tl, spatial.NewMapper(testLayout), map[int]Source{
		7: &fakeSource{
			fragments: [][]byte{stream(7, [2]float64{1, 1})},
			finalErr:  errors.New("timeout"),
		},
	})

	res := r.Run(context.Background())
	assert.Len(t, res.Failed, 1)
	// records decoded before the failure stay on the timeline
	assert.Equal(t, 1, tl.Len())
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "7.json")
	assert.NoError(t, os.WriteFile(path, stream(7, [2]float64{1, 1}, [2]float64{9, 1}), 0o600))

	src := NewFileSource(path, 8)
	var collected []byte
	for {
		frag, err := src.Next(context.Background())
		collected = append(collected, frag...)
		if err != nil {
			assert.ErrorIs(t, err, io.EOF)
			break
		}
		assert.LessOrEqual(t, len(frag), 8)
	}
	assert.Equal(t, stream(7, [2]float64{1, 1}, [2]float64{9, 1}), collected)
}

func TestFileSource_MissingFile(t *testing.T) {
	src := NewFileSource(filepath.Join(t.TempDir(), "nope.json"), 0)
	_, err := src.Next(context.Background())
	assert.Error(t, err)
}

func TestHTTPSource(t *testing.T) {
	payload := stream(7, [2]float64{1, 1})
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, _ *http.Request) {
			//nolint:errcheck // test server
			w.Write(payload)
		}))
	defer server.Close()

	src := NewHTTPSource(server.URL)
	var collected []byte
	for {
		frag, err := src.Next(context.Background())
		collected = append(collected, frag...)
		if err != nil {
			assert.ErrorIs(t, err, io.EOF)
			break
		}
	}
	assert.Equal(t, payload, collected)
}

func TestHTTPSource_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
	defer server.Close()

	src := NewHTTPSource(server.URL)
	_, err := src.Next(context.Background())
	assert.Error(t, err)
}
