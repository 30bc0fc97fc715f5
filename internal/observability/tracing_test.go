package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scribe-chat/scribe/internal/config"
)

func TestSetup_Disabled(t *testing.T) {
	ctx := context.Background()
	shutdown, err := Setup(ctx, config.TracingConfig{Enabled: false}, nil)

	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(ctx))
}

func TestSetup_DefaultEndpoint(t *testing.T) {
	cfg := config.TracingConfig{
		Enabled:     true,
		Endpoint:    "", // Empty should use default
		Environment: "test",
		ServiceName: "test-service",
	}

	ctx := context.Background()
	shutdown, err := Setup(ctx, cfg, nil)

	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(ctx))
}

func TestSetup_CollectorUnavailable_GracefulDegradation(t *testing.T) {
	// Point to a non-existent collector. Exporter creation succeeds and
	// spans fail to export silently, so startup must not fail.
	cfg := config.TracingConfig{
		Enabled:     true,
		Endpoint:    "localhost:1",
		Environment: "test",
		ServiceName: "graceful-test",
	}

	ctx := context.Background()
	shutdown, err := Setup(ctx, cfg, nil)

	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(ctx))
}

func TestDefaultEndpoint_Value(t *testing.T) {
	assert.Equal(t, "localhost:4318", DefaultEndpoint)
}
