package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/wisteria/config"
	"github.com/Ramsey-B/wisteria/pkg/store"
)

func TestFromConfig(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{
		AppName:        "wisteria",
		LogLevel:       "error",
		TrackingPrefix: "TRK-",
		TrackingStart:  1,
	}

	p, shutdown, err := FromConfig(ctx, cfg, store.NewMemoryStore())
	require.NoError(t, err)
	defer func() { assert.NoError(t, shutdown(ctx)) }()

	result, err := p.Run(ctx, exportRows(), nil)
	require.NoError(t, err)
	require.Len(t, result.Stubs, 1)
	assert.Equal(t, "TRK-0001", result.Stubs[0].TrackingNumber)
}

func TestFromConfig_TracingAndEvents(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{
		AppName:          "wisteria",
		LogLevel:         "error",
		TracingEnabled:   true,
		EventsEnabled:    true,
		KafkaBrokers:     []string{"localhost:9092"},
		KafkaOutputTopic: "customer-events",
		TrackingPrefix:   "NEW-",
		TrackingStart:    1,
	}

	p, shutdown, err := FromConfig(ctx, cfg, store.NewMemoryStore())
	require.NoError(t, err)
	assert.NotNil(t, p)

	// The producer never sent anything, so shutdown closes it cleanly.
	assert.NoError(t, shutdown(ctx))
}
