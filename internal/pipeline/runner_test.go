package pipeline

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func alwaysInWindow(time.Time) (bool, error) { return true, nil }
func neverInWindow(time.Time) (bool, error)  { return false, nil }

func TestRunner_RunsWithinWindow(t *testing.T) {
	var calls int32
	r := NewRunner(Config{
		Name:     "test",
		Interval: 5 * time.Millisecond,
		Window:   alwaysInWindow,
		Log:      zerolog.Nop(),
	}, func(ctx context.Context) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_ = r.Run(ctx)
	assert.GreaterOrEqual(t, atomic.LoadInt32(&calls), int32(2))
}

func TestRunner_SkipsOutsideWindow(t *testing.T) {
	var calls int32
	r := NewRunner(Config{
		Name:     "test",
		Interval: 5 * time.Millisecond,
		Window:   neverInWindow,
		Log:      zerolog.Nop(),
	}, func(ctx context.Context) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_ = r.Run(ctx)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestRunner_BacksOffAfterFailure(t *testing.T) {
	var calls int32
	r := NewRunner(Config{
		Name:           "test",
		Interval:       2 * time.Millisecond,
		Window:         alwaysInWindow,
		Log:            zerolog.Nop(),
		InitialBackoff: 20 * time.Millisecond,
		MaxBackoff:     20 * time.Millisecond,
	}, func(ctx context.Context) error {
		atomic.AddInt32(&calls, 1)
		return errors.New("boom")
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_ = r.Run(ctx)
	// Within 10ms and a 20ms backoff, the failing pass should run only once.
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestRunner_StopsOnContextCancel(t *testing.T) {
	r := NewRunner(Config{
		Name:     "test",
		Interval: 5 * time.Millisecond,
		Window:   alwaysInWindow,
		Log:      zerolog.Nop(),
	}, func(ctx context.Context) error { return nil })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
