package present

import (
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/ohler55/ojg/oj"

	"github.com/f1ledcircuit/replay-engine-go/log"
	"github.com/f1ledcircuit/replay-engine-go/pkg/playback"
)

// NatsSink publishes each frame as JSON on lcr.race.<runKey>.frame so
// external renderers can subscribe without linking against this process.
type NatsSink struct {
	conn    *nats.Conn
	subject string
	l       *log.Logger
}

type NatsOption func(*NatsSink)

func WithLogger(l *log.Logger) NatsOption {
	return func(s *NatsSink) {
		s.l = l
	}
}

func NewNatsSink(url, runKey string, opts ...NatsOption) (*NatsSink, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("could not connect to nats: %w", err)
	}
	ret := &NatsSink{
		conn:    conn,
		subject: fmt.Sprintf("lcr.race.%s.frame", runKey),
		l:       log.Default().Named("present.nats"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret, nil
}

func (s *NatsSink) OnFrame(snap playback.Snapshot) error {
	data, err := oj.Marshal(snap)
	if err != nil {
		return err
	}
	if err := s.conn.Publish(s.subject, data); err != nil {
		s.l.Error("could not publish frame", log.ErrorField(err))
		return err
	}
	return nil
}

func (s *NatsSink) Close() {
	s.conn.Close()
}
