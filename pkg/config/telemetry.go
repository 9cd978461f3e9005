package config

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/f1ledcircuit/replay-engine-go/log"
	"github.com/f1ledcircuit/replay-engine-go/version"
)

type Telemetry struct {
	meterProvider *sdkmetric.MeterProvider
}

func (t *Telemetry) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := t.meterProvider.Shutdown(ctx); err != nil {
		log.Warn("could not shutdown meter provider", log.ErrorField(err))
	}
}

// SetupTelemetry initializes the otel meter provider.
// Metrics are exported via OTLP/gRPC to TelemetryEndpoint; if the endpoint
// is empty they go to stdout.
func SetupTelemetry(ctx context.Context) (*Telemetry, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName("lcr"),
			semconv.ServiceVersion(version.Version),
		))
	if err != nil {
		return nil, err
	}

	var reader sdkmetric.Reader
	if TelemetryEndpoint != "" {
		exp, expErr := otlpmetricgrpc.New(ctx,
			otlpmetricgrpc.WithEndpoint(TelemetryEndpoint),
			otlpmetricgrpc.WithInsecure())
		if expErr != nil {
			return nil, expErr
		}
		reader = sdkmetric.NewPeriodicReader(exp,
			sdkmetric.WithInterval(15*time.Second))
	} else {
		exp, expErr := stdoutmetric.New()
		if expErr != nil {
			return nil, expErr
		}
		reader = sdkmetric.NewPeriodicReader(exp,
			sdkmetric.WithInterval(15*time.Second))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(reader),
	)
	otel.SetMeterProvider(mp)
	return &Telemetry{meterProvider: mp}, nil
}
