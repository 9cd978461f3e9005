package config

// this holds the resolved configuration values from CLI
//
//nolint:lll // readablity
var (
	CoordsFile        string // path to LED layout CSV (built-in layout if empty)
	DataDir           string // directory with recorded telemetry files (<driver>.json)
	TelemetryURL      string // location endpoint template for live telemetry
	Speed             int    // playback speed multiplier
	TickInterval      string // race clock tick interval
	ChunkSize         int    // fragment size when replaying recorded files
	NatsURL           string // if set, playback frames are published here
	WaitForServices   string // duration to wait for other services to be ready
	LogLevel          string // sets the log level (zap log level values)
	LogFormat         string // text vs json
	LogConfig         string // zapfilter rules for per-logger levels
	EnableTelemetry   bool   // enable telemetry
	TelemetryEndpoint string // endpoint for telemetry
	ProfilingPort     int    // port for profiling
)
