package decode

import (
	"bytes"

	"github.com/ohler55/ojg/oj"

	"github.com/f1ledcircuit/replay-engine-go/log"
	"github.com/f1ledcircuit/replay-engine-go/pkg/model"
)

// boundary separates two adjacent objects of the telemetry array.
// We never see the array as a whole, only fragments of it, so records are
// cut out by scanning for this marker.
var boundary = []byte("},{")

// Decoder reassembles telemetry records from an arbitrarily fragmented
// byte stream. Each instance is owned by exactly one ingest task and must
// not be shared.
//
// Feed guarantees split invariance: no matter where the incoming stream is
// cut into fragments, the emitted records are identical to decoding the
// whole stream in one call.
type Decoder struct {
	pending []byte
	emitted int
	dropped int
	l       *log.Logger
}

type Option func(*Decoder)

func WithLogger(l *log.Logger) Option {
	return func(d *Decoder) {
		d.l = l
	}
}

func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{
		pending: make([]byte, 0, 4096),
		l:       log.Default().Named("decode"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Feed consumes the next fragment and returns all records that became
// complete with it. Unconsumed trailing bytes are retained for the next
// call.
func (d *Decoder) Feed(fragment []byte) []model.TelemetryRecord {
	buf := append(d.pending, fragment...)
	ret := make([]model.TelemetryRecord, 0, 4)
	pos := 0
	for {
		idx := bytes.Index(buf[pos:], boundary)
		if idx < 0 {
			break
		}
		// include the closing brace, drop the marker
		slice := buf[pos : pos+idx+1]
		rec, ok, complete := d.decodeSlice(slice)
		if !complete {
			// treat as a record split across fragments, not as corrupt data;
			// scanning resumes once more bytes arrived
			break
		}
		pos += idx + len(boundary)
		if ok {
			ret = append(ret, rec)
		}
	}
	// no marker left: the remainder may hold the terminal record of the
	// stream or the so far complete prefix of the next one
	if rec, ok, complete := d.decodeSlice(buf[pos:]); complete {
		pos = len(buf)
		if ok {
			ret = append(ret, rec)
		}
	}
	d.pending = append(d.pending[:0], buf[pos:]...)
	d.emitted += len(ret)
	return ret
}

// decodeSlice normalizes a candidate slice into a single JSON object and
// parses it. complete=false means the slice is syntactically unfinished
// and the caller must not advance past it. ok=false with complete=true
// means the record was well-formed JSON but failed schema validation and
// was dropped.
//
//nolint:nonamedreturns // result triple reads better with names
func (d *Decoder) decodeSlice(slice []byte) (
	rec model.TelemetryRecord, ok, complete bool,
) {
	obj := normalize(slice)
	if len(obj) == 0 {
		// nothing but array framing, consume it
		return model.TelemetryRecord{}, false, true
	}
	parsed, err := oj.Parse(obj)
	if err != nil {
		return model.TelemetryRecord{}, false, false
	}
	rec, err = recordFromValue(parsed)
	if err != nil {
		d.dropped++
		d.l.Warn("dropping malformed record",
			log.ErrorField(err),
			log.Int("dropped", d.dropped))
		return model.TelemetryRecord{}, false, true
	}
	return rec, true, true
}

// normalize turns a raw slice into a parseable single object: array
// brackets and separators at the edges are stripped and a missing opening
// brace (consumed with the boundary marker) is synthesized.
func normalize(slice []byte) []byte {
	start := 0
	for start < len(slice) {
		switch slice[start] {
		case '[', ',', ' ', '\t', '\r', '\n':
			start++
			continue
		}
		break
	}
	end := len(slice)
	for end > start {
		switch slice[end-1] {
		case ']', ' ', '\t', '\r', '\n':
			end--
			continue
		}
		break
	}
	if start >= end {
		return nil
	}
	trimmed := slice[start:end]
	if trimmed[0] == '{' {
		return trimmed
	}
	obj := make([]byte, 0, len(trimmed)+1)
	obj = append(obj, '{')
	return append(obj, trimmed...)
}

// Pending reports how many unconsumed bytes are retained.
func (d *Decoder) Pending() int { return len(d.pending) }

// Emitted reports how many records have been produced so far.
func (d *Decoder) Emitted() int { return d.emitted }

// Dropped reports how many records failed schema validation.
func (d *Decoder) Dropped() int { return d.dropped }
