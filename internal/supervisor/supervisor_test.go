package supervisor

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/marketdata/internal/config"
)

func TestAddRunner_SkipsDisabledWindow(t *testing.T) {
	s := &Supervisor{log: zerolog.Nop()}
	s.addRunner("reference", config.PipelineWindow{Enabled: false}, func(ctx context.Context) error { return nil })
	assert.Empty(t, s.runners)
}

func TestAddRunner_SkipsInvalidWindow(t *testing.T) {
	s := &Supervisor{log: zerolog.Nop()}
	s.addRunner("reference", config.PipelineWindow{
		Enabled: true, UpdateStartTime: "not-a-time", UpdateEndTime: "00:00", Timezone: "UTC",
	}, func(ctx context.Context) error { return nil })
	assert.Empty(t, s.runners)
}

func TestAddRunner_RegistersEnabledWindow(t *testing.T) {
	s := &Supervisor{log: zerolog.Nop()}
	s.addRunner("reference", config.PipelineWindow{
		Enabled: true, IntervalSeconds: 60, UpdateStartTime: "00:00", UpdateEndTime: "23:59", Timezone: "UTC",
	}, func(ctx context.Context) error { return nil })
	require.Len(t, s.runners, 1)
	assert.Equal(t, "reference", s.runners[0].name)
}

func TestRun_ReturnsPromptlyOnContextCancel(t *testing.T) {
	s := &Supervisor{log: zerolog.Nop()}
	s.addRunner("reference", config.PipelineWindow{
		Enabled: true, IntervalSeconds: 60, UpdateStartTime: "00:00", UpdateEndTime: "23:59", Timezone: "UTC",
	}, func(ctx context.Context) error { return nil })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after context cancellation")
	}
}
