// Package ratelimit provides request pacing for the leftover scanner.
//
// Two independent controls compose: a global token bucket capping
// requests per second across all workers, and a fixed minimum delay
// each worker observes between its own probes. When both are set the
// effective pace is whichever is stricter at any moment, since a probe
// must clear both gates before it is sent.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Gate paces probe requests.
type Gate struct {
	mu         sync.RWMutex
	limiter    *rate.Limiter // nil when no global rate cap is set
	delay      time.Duration
	lastProbe  map[int]time.Time
	globalRate float64
	burst      int
}

// NewGate creates a probe gate. A requestsPerSecond of zero disables
// the token bucket; a delay of zero disables the per-worker pause.
func NewGate(requestsPerSecond float64, delay time.Duration) *Gate {
	g := &Gate{
		delay:      delay,
		lastProbe:  make(map[int]time.Time),
		globalRate: requestsPerSecond,
	}
	if requestsPerSecond > 0 {
		g.burst = burstFor(requestsPerSecond)
		g.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), g.burst)
	}
	return g
}

// burstFor sizes the bucket so low rates still admit single requests.
func burstFor(rps float64) int {
	b := int(rps)
	if b < 1 {
		b = 1
	}
	return b
}

// Wait blocks until the worker may send its next probe or the context
// is cancelled. Both gates are cleared in order: the global bucket
// first, then the worker's own delay.
func (g *Gate) Wait(ctx context.Context, workerID int) error {
	g.mu.RLock()
	limiter := g.limiter
	delay := g.delay
	g.mu.RUnlock()

	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}
	}

	if delay > 0 {
		g.mu.Lock()
		last, seen := g.lastProbe[workerID]
		g.mu.Unlock()

		if seen {
			if remaining := delay - time.Since(last); remaining > 0 {
				select {
				case <-time.After(remaining):
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}

		g.mu.Lock()
		g.lastProbe[workerID] = time.Now()
		g.mu.Unlock()
	}

	return nil
}

// Allow reports whether a probe would be admitted right now without
// blocking. The per-worker delay is not consulted.
func (g *Gate) Allow() bool {
	g.mu.RLock()
	limiter := g.limiter
	g.mu.RUnlock()

	if limiter == nil {
		return true
	}
	return limiter.Allow()
}

// SetRate updates the global rate cap. A value of zero removes it.
func (g *Gate) SetRate(requestsPerSecond float64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.globalRate = requestsPerSecond
	if requestsPerSecond <= 0 {
		g.limiter = nil
		return
	}
	g.burst = burstFor(requestsPerSecond)
	if g.limiter == nil {
		g.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), g.burst)
		return
	}
	g.limiter.SetLimit(rate.Limit(requestsPerSecond))
	g.limiter.SetBurst(g.burst)
}

// SetDelay updates the per-worker delay.
func (g *Gate) SetDelay(delay time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.delay = delay
}

// ForgetWorker drops pacing state for a retired worker.
func (g *Gate) ForgetWorker(workerID int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.lastProbe, workerID)
}

// Stats returns the gate's current configuration.
func (g *Gate) Stats() GateStats {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return GateStats{
		Rate:          g.globalRate,
		Burst:         g.burst,
		Delay:         g.delay,
		TrackedWorker: len(g.lastProbe),
	}
}

// GateStats contains probe gate statistics.
type GateStats struct {
	Rate          float64       `json:"rate"`
	Burst         int           `json:"burst"`
	Delay         time.Duration `json:"delay"`
	TrackedWorker int           `json:"tracked_workers"`
}
