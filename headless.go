package backdrop

import (
	"context"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window runner.
type HeadlessConfig struct {
	// Hz is the tick rate. Defaults to 60.
	Hz int
	// Ticks stops the run after this many ticks. Zero runs until ctx is done.
	Ticks uint64
}

// RunHeadless drives h's frame loop from a ticker without opening a window.
// It returns nil after cfg.Ticks ticks, or ctx.Err() when ctx is cancelled.
func RunHeadless(ctx context.Context, h *HeadlessHost, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("backdrop: invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			h.Tick()
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}
