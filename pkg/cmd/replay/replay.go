package replay

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // by design
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/f1ledcircuit/replay-engine-go/log"
	"github.com/f1ledcircuit/replay-engine-go/pkg/catalog"
	"github.com/f1ledcircuit/replay-engine-go/pkg/config"
	"github.com/f1ledcircuit/replay-engine-go/pkg/ingest"
	"github.com/f1ledcircuit/replay-engine-go/pkg/model"
	"github.com/f1ledcircuit/replay-engine-go/pkg/playback"
	"github.com/f1ledcircuit/replay-engine-go/pkg/present"
	"github.com/f1ledcircuit/replay-engine-go/pkg/spatial"
	"github.com/f1ledcircuit/replay-engine-go/pkg/timeline"
	"github.com/f1ledcircuit/replay-engine-go/pkg/track"
	"github.com/f1ledcircuit/replay-engine-go/pkg/utils"
	"github.com/f1ledcircuit/replay-engine-go/pkg/utils/broadcast"
)

var drivers []int

//nolint:funlen // mostly flag definitions
func NewReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "replays recorded or live telemetry on the LED circuit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay()
		},
	}
	cmd.Flags().StringVar(&config.CoordsFile,
		"coords",
		"",
		"LED layout CSV file (built-in layout if empty)")
	cmd.Flags().StringVar(&config.DataDir,
		"data-dir",
		"",
		"directory containing recorded telemetry files (<driver>.json)")
	cmd.Flags().StringVar(&config.TelemetryURL,
		"url",
		"",
		"location endpoint template, %d is replaced by the driver number")
	cmd.Flags().IntSliceVar(&drivers,
		"driver",
		nil,
		"driver numbers to replay (default: all known drivers)")
	cmd.Flags().IntVar(&config.Speed,
		"speed",
		1,
		"playback speed multiplier")
	cmd.Flags().StringVar(&config.TickInterval,
		"tick",
		"50ms",
		"race clock tick interval")
	cmd.Flags().IntVar(&config.ChunkSize,
		"chunk-size",
		ingest.DefaultChunkSize,
		"fragment size when replaying recorded files")
	cmd.Flags().StringVar(&config.NatsURL,
		"nats-url",
		"",
		"if set, playback frames are published to this NATS server")
	cmd.Flags().BoolVar(&config.EnableTelemetry,
		"enable-telemetry",
		false,
		"enables telemetry")
	cmd.Flags().StringVar(&config.TelemetryEndpoint,
		"telemetry-endpoint",
		"localhost:4317",
		"Endpoint that receives open telemetry data")
	cmd.Flags().IntVar(&config.ProfilingPort,
		"profiling-port",
		0,
		"port to use for providing profiling data")
	return cmd
}

func parseLogLevel(l string, defaultVal log.Level) log.Level {
	level, err := log.ParseLevel(l)
	if err != nil {
		return defaultVal
	}
	return level
}

func setupLogger() *log.Logger {
	var logger *log.Logger
	switch config.LogFormat {
	case "json":
		logger = log.New(
			os.Stderr,
			parseLogLevel(config.LogLevel, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
	default:
		logger = log.DevLogger(
			os.Stderr,
			parseLogLevel(config.LogLevel, log.DebugLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
	}
	if config.LogConfig != "" {
		filtered, err := log.NewWithFilter(logger, config.LogConfig)
		if err != nil {
			logger.Warn("ignoring invalid log config", log.ErrorField(err))
		} else {
			logger = filtered
		}
	}
	return logger
}

func loadLayout() ([]model.LedCoordinate, error) {
	if config.CoordsFile == "" {
		return track.DefaultLayout(), nil
	}
	return track.LoadLayout(config.CoordsFile)
}

// buildSources creates one telemetry source per requested driver.
func buildSources(cat *catalog.Catalog) (map[int]ingest.Source, error) {
	nums := drivers
	if len(nums) == 0 {
		nums = cat.Numbers()
	}
	ret := make(map[int]ingest.Source, len(nums))
	for _, num := range nums {
		switch {
		case config.DataDir != "":
			path := filepath.Join(config.DataDir, fmt.Sprintf("%d.json", num))
			if _, err := os.Stat(path); err != nil {
				log.Debug("no recorded data for driver, skipping",
					log.Int("driver", num))
				continue
			}
			ret[num] = ingest.NewFileSource(path, config.ChunkSize)
		case config.TelemetryURL != "":
			url := config.TelemetryURL
			if strings.Contains(url, "%d") {
				url = fmt.Sprintf(url, num)
			}
			ret[num] = ingest.NewHTTPSource(url)
		default:
			return nil, fmt.Errorf("neither --data-dir nor --url given")
		}
	}
	if len(ret) == 0 {
		return nil, fmt.Errorf("no telemetry sources could be resolved")
	}
	return ret, nil
}

//nolint:funlen,cyclop // by design
func runReplay() error {
	logger := setupLogger()
	log.ResetDefault(logger)

	if config.ProfilingPort > 0 {
		log.Info("Starting profiling server on port", log.Int("port", config.ProfilingPort))
		go func() {
			//nolint:gosec // by design
			err := http.ListenAndServe(
				fmt.Sprintf("localhost:%d", config.ProfilingPort),
				nil)
			if err != nil {
				log.Error("Profiling server stopped", log.ErrorField(err))
			}
		}()
	}

	var telemetry *config.Telemetry
	if config.EnableTelemetry {
		log.Info("Enabling telemetry")
		var err error
		if telemetry, err = config.SetupTelemetry(context.Background()); err != nil {
			log.Warn("Could not setup telemetry", log.ErrorField(err))
		}
	}

	layout, err := loadLayout()
	if err != nil {
		// fatal: the mapper is undefined over an empty layout
		return err
	}
	log.Info("LED layout loaded", log.Int("leds", len(layout)))

	cat := catalog.New()
	sources, err := buildSources(cat)
	if err != nil {
		return err
	}

	tickInterval, err := time.ParseDuration(config.TickInterval)
	if err != nil {
		log.Warn("invalid tick interval, using default", log.ErrorField(err))
		tickInterval = playback.DefaultTickInterval
	}

	runKey := uuid.New().String()
	log.Info("Starting replay run",
		log.String("runKey", runKey),
		log.Int("drivers", len(sources)),
		log.Int("speed", config.Speed))

	tl := timeline.New()
	mapper := spatial.NewMapper(layout)
	clock := playback.NewRaceClock(tl,
		playback.WithCatalog(cat),
		playback.WithSpeed(config.Speed),
		playback.WithTickInterval(tickInterval))

	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sinks, err := setupSinks(runKey)
	if err != nil {
		return err
	}
	defer func() {
		for _, s := range sinks {
			s.Close()
		}
	}()

	// ingestion runs independently of playback; stopping the clock must
	// not cancel these tasks
	runner := ingest.NewRunner(tl, mapper, sources)
	ingestDone := make(chan ingest.Result, 1)
	go func() {
		ingestDone <- runner.Run(context.WithoutCancel(ctx))
	}()

	frameCtx, cancelFrames := context.WithCancel(ctx)
	defer cancelFrames()
	snapshots := clock.Run(frameCtx)
	bcstOpts := []broadcast.Option[playback.Snapshot]{}
	if config.EnableTelemetry {
		bcstOpts = append(bcstOpts,
			broadcast.WithTelemetry[playback.Snapshot](runKey))
	}
	bcst := broadcast.NewBroadcastServer("frames", snapshots, bcstOpts...)
	defer bcst.Close()

	frames := bcst.Subscribe()
	clock.Start()

	var ingested *ingest.Result
	for {
		select {
		case res := <-ingestDone:
			ingested = &res
			log.Info("ingestion complete",
				log.Int("events", tl.Len()),
				log.Int("emitted", res.Emitted),
				log.Int("dropped", res.Dropped),
				log.Int("failed", len(res.Failed)))
		case snap, ok := <-frames:
			if !ok {
				logSummary(ingested, tl.Len())
				shutdownTelemetry(telemetry)
				return nil
			}
			for _, s := range sinks {
				if err := s.OnFrame(snap); err != nil {
					log.Warn("sink rejected frame", log.ErrorField(err))
				}
			}
			// replay is over once all streams ended and every event played
			if ingested != nil && snap.Cursor >= tl.Len() {
				clock.Stop()
				cancelFrames()
			}
		case <-ctx.Done():
			logSummary(ingested, tl.Len())
			shutdownTelemetry(telemetry)
			return nil
		}
	}
}

func setupSinks(runKey string) ([]present.Sink, error) {
	sinks := []present.Sink{present.NewLogSink()}
	if config.NatsURL == "" {
		return sinks, nil
	}
	timeout, err := time.ParseDuration(config.WaitForServices)
	if err != nil {
		timeout = 15 * time.Second
	}
	if addr := utils.ExtractFromNatsURL(config.NatsURL); addr != "" {
		if err := utils.WaitForTCP(addr, timeout); err != nil {
			return nil, err
		}
	}
	natsSink, err := present.NewNatsSink(config.NatsURL, runKey)
	if err != nil {
		return nil, err
	}
	return append(sinks, natsSink), nil
}

func logSummary(res *ingest.Result, events int) {
	if res == nil {
		log.Info("replay interrupted before ingestion finished",
			log.Int("events", events))
		return
	}
	log.Info("replay finished",
		log.Int("events", events),
		log.Int("dropped", res.Dropped),
		log.Int("failedStreams", len(res.Failed)))
}

func shutdownTelemetry(t *config.Telemetry) {
	if t != nil {
		t.Shutdown()
	}
}
