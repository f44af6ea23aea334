package grid

import (
	"context"
	"time"
)

// Initialize does a full rebuild.
func (g *Grid) Initialize() {
	g.rebuildNeeded = false
	g.Rebuild(WholeGrid)
}

// OnConfigChanged does a full rebuild now in Immediate mode, or on the next
// Tick in Deferred mode.
func (g *Grid) OnConfigChanged() {
	if g.mode == Deferred {
		g.rebuildNeeded = true
		return
	}
	g.Initialize()
}

// Tick does one full rebuild if one is pending.
func (g *Grid) Tick() bool {
	if !g.rebuildNeeded {
		return false
	}
	g.rebuildNeeded = false
	g.Rebuild(WholeGrid)
	return true
}

// Run ticks d every `interval` until ctx is done. Ticks come from the calling
// goroutine only, so d sees a single writer.
func Run(ctx context.Context, d Driver, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			d.Tick()
		}
	}
}
