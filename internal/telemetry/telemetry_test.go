package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

func TestInitDisabledInstallsPropagatorOnly(t *testing.T) {
	shutdown, err := Init(context.Background(), Options{ServiceName: "test", Enabled: false})
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	fields := otel.GetTextMapPropagator().Fields()
	assert.Contains(t, fields, "traceparent")
	assert.Contains(t, fields, "baggage")
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitEnabled(t *testing.T) {
	// Exporters connect lazily, so no collector is needed here.
	shutdown, err := Init(context.Background(), Options{
		ServiceName: "test",
		Endpoint:    "http://localhost:4318",
		Environment:    "test",
		Enabled:        true,
		SampleRatio:    0.5,
		MetricInterval: time.Second,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = shutdown(ctx)
}

func TestTrimProtocol(t *testing.T) {
	assert.Equal(t, "localhost:4318", trimProtocol("http://localhost:4318"))
	assert.Equal(t, "collector:4318", trimProtocol("https://collector:4318"))
	assert.Equal(t, "collector:4318", trimProtocol("collector:4318"))
}

func TestNewSampler(t *testing.T) {
	always := newSampler(1)
	assert.Contains(t, always.Description(), "AlwaysOnSampler")
	assert.Contains(t, newSampler(2).Description(), "AlwaysOnSampler")

	ratio := newSampler(0.25)
	assert.Contains(t, ratio.Description(), "TraceIDRatioBased{0.25}")
	assert.Contains(t, ratio.Description(), "ParentBased")

	none := newSampler(0)
	res := none.ShouldSample(sdktrace.SamplingParameters{
		ParentContext: context.Background(),
		TraceID:       trace.TraceID{1},
		Name:          "op",
	})
	assert.Equal(t, sdktrace.Drop, res.Decision)
}
