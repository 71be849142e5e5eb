package hal

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	HostConfig
	// Ticks stops the runner after N steps (0 = run until the app stops).
	Ticks uint64
}

// RunHeadless steps the app on a ticker without opening a window.
func RunHeadless(ctx context.Context, cfg HeadlessConfig, newApp NewApp) (err error) {
	h := newHost(cfg.HostConfig, nil)
	app, err := newApp(h)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, app.Close())
	}()
	return runTicks(ctx, app, cfg.Ticks)
}

// runTicks is the frame limiter shared by the non-ebiten runners: one Step
// per tick, with the ticker re-armed whenever the app changes its rate.
func runTicks(ctx context.Context, app App, limit uint64) error {
	tps := app.TPS()
	d, err := tickPeriod(tps)
	if err != nil {
		return err
	}
	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if err := app.Step(); err != nil {
				if errors.Is(err, ErrQuit) {
					return nil
				}
				return err
			}
			tick++
			if limit > 0 && tick >= limit {
				return nil
			}
			if next := app.TPS(); next != tps {
				d, err := tickPeriod(next)
				if err != nil {
					return err
				}
				tps = next
				t.Reset(d)
			}
		}
	}
}

func tickPeriod(tps int) (time.Duration, error) {
	if tps <= 0 {
		return 0, fmt.Errorf("invalid tick rate: %d", tps)
	}
	return time.Second / time.Duration(tps), nil
}
