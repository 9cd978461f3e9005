package present

import (
	"github.com/f1ledcircuit/replay-engine-go/log"
	"github.com/f1ledcircuit/replay-engine-go/pkg/playback"
)

// Sink receives the per-tick playback snapshot. The engine only ever
// pushes; a sink never calls back into playback.
type Sink interface {
	OnFrame(s playback.Snapshot) error
	Close()
}

// LogSink reports frame progress on debug level. Serves as the in-process
// default when no external presentation is attached.
type LogSink struct {
	l *log.Logger
}

func NewLogSink() *LogSink {
	return &LogSink{l: log.Default().Named("present")}
}

func (s *LogSink) OnFrame(snap playback.Snapshot) error {
	s.l.Debug("frame",
		log.String("clock", snap.Clock()),
		log.Int("cursor", snap.Cursor),
		log.Int("lit", len(snap.Frame)))
	return nil
}

func (s *LogSink) Close() {}
