// Package pipeline supplies the three-state scheduler loop shared by every
// ingestion pipeline: idle-wait (outside the configured window), in-window
// run, and error-backoff after a failed pass. A single reusable type
// replaces one goroutine-and-ticker per job kind.
package pipeline

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// WindowPredicate reports whether now falls inside a pipeline's configured
// update window. Satisfied by the IsUpdateTime method of the predicate
// returned by config.NewWindowPredicate.
type WindowPredicate func(now time.Time) (bool, error)

// RunFunc executes one pass of a pipeline. A returned error is logged and
// triggers backoff; it never stops the Runner.
type RunFunc func(ctx context.Context) error

// Config parameterizes a Runner.
type Config struct {
	Name           string
	Interval       time.Duration
	Window         WindowPredicate
	Log            zerolog.Logger
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// Runner drives RunFunc on Config.Interval ticks while Window is true,
// backing off exponentially after failures without busy-waiting.
type Runner struct {
	cfg Config
	run RunFunc
}

// NewRunner builds a Runner. Zero InitialBackoff/MaxBackoff default to 1s
// and 5m.
func NewRunner(cfg Config, run RunFunc) *Runner {
	if cfg.InitialBackoff == 0 {
		cfg.InitialBackoff = time.Second
	}
	if cfg.MaxBackoff == 0 {
		cfg.MaxBackoff = 5 * time.Minute
	}
	return &Runner{cfg: cfg, run: run}
}

// Run blocks until ctx is canceled, ticking at Interval and suspending
// between ticks (idle-wait), invoking RunFunc when inside the window
// (in-window-run), and withholding additional ticks for an exponentially
// growing delay after a failed pass (error-backoff).
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	backoff := r.cfg.InitialBackoff
	var backoffUntil time.Time

	log := r.cfg.Log.With().Str("pipeline", r.cfg.Name).Logger()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			if now.Before(backoffUntil) {
				continue
			}

			inWindow, err := r.cfg.Window(now)
			if err != nil {
				log.Error().Err(err).Msg("window predicate failed")
				continue
			}
			if !inWindow {
				continue
			}

			if err := r.run(ctx); err != nil {
				log.Error().Err(err).Dur("backoff", backoff).Msg("pass failed, backing off")
				backoffUntil = now.Add(backoff)
				backoff *= 2
				if backoff > r.cfg.MaxBackoff {
					backoff = r.cfg.MaxBackoff
				}
				continue
			}

			backoff = r.cfg.InitialBackoff
			backoffUntil = time.Time{}
		}
	}
}
