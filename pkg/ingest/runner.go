package ingest

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/f1ledcircuit/replay-engine-go/log"
	"github.com/f1ledcircuit/replay-engine-go/pkg/decode"
	"github.com/f1ledcircuit/replay-engine-go/pkg/model"
	"github.com/f1ledcircuit/replay-engine-go/pkg/spatial"
	"github.com/f1ledcircuit/replay-engine-go/pkg/timeline"
)

// task is one driver's decode loop. It exclusively owns its decoder (and
// with it the pending byte buffer); only the timeline append is shared.
type task struct {
	driver int
	source Source
	dec    *decode.Decoder
	mapper *spatial.Mapper
	tl     *timeline.Timeline
	l      *log.Logger
}

type taskResult struct {
	driver  int
	err     error
	emitted int
	dropped int
}

func (t *task) run(ctx context.Context) taskResult {
	for {
		frag, err := t.source.Next(ctx)
		if len(frag) > 0 {
			t.ingest(frag)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				if t.dec.Pending() > 0 {
					t.l.Warn("stream ended with undecodable trailing bytes",
						log.Int("driver", t.driver),
						log.Int("pending", t.dec.Pending()))
				}
				return taskResult{
					driver:  t.driver,
					emitted: t.dec.Emitted(),
					dropped: t.dec.Dropped(),
				}
			}
			return taskResult{
				driver:  t.driver,
				err:     err,
				emitted: t.dec.Emitted(),
				dropped: t.dec.Dropped(),
			}
		}
	}
}

func (t *task) ingest(frag []byte) {
	records := t.dec.Feed(frag)
	if len(records) == 0 {
		return
	}
	events := make([]model.MappedEvent, 0, len(records))
	for _, rec := range records {
		// (0,0) marks a sample without sensor fix, never map those
		if rec.X == 0 && rec.Y == 0 {
			continue
		}
		events = append(events, t.mapper.Map(rec))
	}
	t.tl.Append(events)
}

// Result sums up one ingestion run.
type Result struct {
	Emitted int
	Dropped int
	Failed  map[int]error
}

// Runner executes one decode-and-ingest task per driver. A failing driver
// stream never blocks or aborts the remaining drivers.
type Runner struct {
	tl      *timeline.Timeline
	mapper  *spatial.Mapper
	sources map[int]Source
	l       *log.Logger
}

type RunnerOption func(*Runner)

func WithLogger(l *log.Logger) RunnerOption {
	return func(r *Runner) {
		r.l = l
	}
}

func NewRunner(
	tl *timeline.Timeline,
	mapper *spatial.Mapper,
	sources map[int]Source,
	opts ...RunnerOption,
) *Runner {
	r := &Runner{
		tl:      tl,
		mapper:  mapper,
		sources: sources,
		l:       log.Default().Named("ingest"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run ingests all driver streams concurrently and blocks until every task
// has signaled completion. Per-driver stream failures are collected in the
// result, not returned as an error.
func (r *Runner) Run(ctx context.Context) Result {
	results := make(chan taskResult, len(r.sources))
	wg := sync.WaitGroup{}
	for driver, source := range r.sources {
		t := &task{
			driver: driver,
			source: source,
			dec:    decode.NewDecoder(decode.WithLogger(r.l.Named("decode"))),
			mapper: r.mapper,
			tl:     r.tl,
			l:      r.l,
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- t.run(ctx)
		}()
	}
	wg.Wait()
	close(results)

	ret := Result{Failed: make(map[int]error)}
	for res := range results {
		ret.Emitted += res.emitted
		ret.Dropped += res.dropped
		if res.err != nil {
			r.l.Error("driver stream failed",
				log.Int("driver", res.driver),
				log.ErrorField(res.err))
			ret.Failed[res.driver] = res.err
		} else {
			r.l.Debug("driver stream complete",
				log.Int("driver", res.driver),
				log.Int("emitted", res.emitted),
				log.Int("dropped", res.dropped))
		}
	}
	return ret
}
