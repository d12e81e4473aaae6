// Package adaptive adjusts scan concurrency from observed latency.
//
// The controller keeps a rolling window of recent probe latencies.
// When the window fills it compares the window median against two
// thresholds: a fast server earns more workers, a slow one sheds
// them. The target never exceeds the configured maximum and never
// drops below one.
package adaptive

import (
	"sort"
	"sync"
	"time"
)

// Defaults for the controller. The window is sized so adjustments
// react within a few seconds at typical probe rates without chasing
// individual outliers.
const (
	DefaultWindowSize    = 50
	DefaultFastThreshold = 100 * time.Millisecond
	DefaultSlowThreshold = 500 * time.Millisecond

	growFactor   = 1.2
	shrinkFactor = 0.7
)

// Controller computes the concurrency target for the worker pool.
type Controller struct {
	mu sync.Mutex

	max     int
	target  int
	enabled bool

	windowSize    int
	fastThreshold time.Duration
	slowThreshold time.Duration

	latencies []time.Duration
	adjusts   int64
}

// New creates a controller starting at and capped by max workers.
// A disabled controller always reports the fixed target.
func New(max int, enabled bool) *Controller {
	if max < 1 {
		max = 1
	}
	return &Controller{
		max:           max,
		target:        max,
		enabled:       enabled,
		windowSize:    DefaultWindowSize,
		fastThreshold: DefaultFastThreshold,
		slowThreshold: DefaultSlowThreshold,
		latencies:     make([]time.Duration, 0, DefaultWindowSize),
	}
}

// Observe records one probe latency and returns the current target.
// The target changes only on the observation that fills the window;
// the window then restarts empty.
func (c *Controller) Observe(latency time.Duration) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.enabled {
		return c.target
	}

	c.latencies = append(c.latencies, latency)
	if len(c.latencies) < c.windowSize {
		return c.target
	}

	// The median ignores the slow outliers a mean would chase.
	sort.Slice(c.latencies, func(i, j int) bool { return c.latencies[i] < c.latencies[j] })
	median := c.latencies[len(c.latencies)/2]
	c.latencies = c.latencies[:0]

	switch {
	case median < c.fastThreshold:
		grown := int(float64(c.target) * growFactor)
		if grown == c.target {
			// Rounding stalls growth at small targets.
			grown = c.target + 1
		}
		c.setTarget(grown)
	case median > c.slowThreshold:
		c.setTarget(int(float64(c.target) * shrinkFactor))
	}

	return c.target
}

// setTarget clamps and stores a new target. Callers hold c.mu.
func (c *Controller) setTarget(n int) {
	if n < 1 {
		n = 1
	}
	if n > c.max {
		n = c.max
	}
	if n == c.target {
		return
	}
	c.target = n
	c.adjusts++
}

// Target returns the current concurrency target.
func (c *Controller) Target() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

// Adjustments returns how many times the target has changed.
func (c *Controller) Adjustments() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.adjusts
}

// Enabled reports whether adaptive control is active.
func (c *Controller) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}
