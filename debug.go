package folio

import (
	"fmt"
	"time"
)

// frameStats holds per-frame timing and scheduling metrics.
// Only populated when Page.debug is true.
type frameStats struct {
	tickTime  time.Duration
	callbacks int
	pending   int
	settling  int
	listeners int
}

// debugLog writes the frame stats at debug level.
func (p *Page) debugLog(stats frameStats) {
	if !p.debug {
		return
	}
	Logger().Debug("frame",
		"clock", p.clock,
		"tick", stats.tickTime,
		"callbacks", stats.callbacks,
		"pending", stats.pending,
		"settling", stats.settling,
		"listeners", stats.listeners,
		"scrollY", p.viewport.ScrollY(),
	)
	if stats.listeners > debugMaxListeners {
		Logger().Warn("listener count exceeds threshold", "listeners", stats.listeners, "threshold", debugMaxListeners)
	}
}

// debugMaxListeners is the viewport listener count above which a leak is
// suspected.
const debugMaxListeners = 1000

// debugCheckClosed panics with a descriptive message when a closed page is
// used. Only called in debug mode.
func debugCheckClosed(p *Page, op string) {
	if p.closed {
		panic(fmt.Sprintf("folio debug: %s on closed page", op))
	}
}
