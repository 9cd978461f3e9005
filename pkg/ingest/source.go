package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
)

// Source delivers the raw byte fragments of one driver's telemetry
// stream. Next returns io.EOF after the last fragment; any other error is
// a transport failure of this stream only.
type Source interface {
	Next(ctx context.Context) ([]byte, error)
}

const DefaultChunkSize = 1024

// FileSource replays a recorded telemetry file in fixed-size fragments,
// reproducing the fragmentation a network stream would exhibit.
type FileSource struct {
	path      string
	chunkSize int
	f         *os.File
}

func NewFileSource(path string, chunkSize int) *FileSource {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &FileSource{path: path, chunkSize: chunkSize}
}

func (s *FileSource) Next(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.f == nil {
		f, err := os.Open(s.path)
		if err != nil {
			return nil, fmt.Errorf("could not open telemetry file: %w", err)
		}
		s.f = f
	}
	buf := make([]byte, s.chunkSize)
	n, err := s.f.Read(buf)
	if n > 0 {
		return buf[:n], nil
	}
	s.f.Close()
	return nil, err
}

// HTTPSource streams the response body of a location endpoint in
// transport-sized chunks.
type HTTPSource struct {
	url    string
	client *http.Client
	body   io.ReadCloser
}

func NewHTTPSource(url string) *HTTPSource {
	return &HTTPSource{url: url, client: http.DefaultClient}
}

func (s *HTTPSource) Next(ctx context.Context) ([]byte, error) {
	if s.body == nil {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, http.NoBody)
		if err != nil {
			return nil, err
		}
		resp, err := s.client.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("unexpected status %s from %s", resp.Status, s.url)
		}
		s.body = resp.Body
	}
	buf := make([]byte, DefaultChunkSize)
	n, err := s.body.Read(buf)
	if n > 0 {
		return buf[:n], nil
	}
	s.body.Close()
	return nil, err
}
