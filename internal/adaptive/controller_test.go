package adaptive

import (
	"testing"
	"time"
)

func fillWindow(c *Controller, latency time.Duration) int {
	target := c.Target()
	for i := 0; i < DefaultWindowSize; i++ {
		target = c.Observe(latency)
	}
	return target
}

func TestController_FastServerGrows(t *testing.T) {
	c := New(100, true)
	c.setTarget(10)

	target := fillWindow(c, 50*time.Millisecond)
	if target != 12 {
		t.Errorf("target = %d, want 12 after 20%% growth", target)
	}
}

func TestController_SlowServerShrinks(t *testing.T) {
	c := New(10, true)

	target := fillWindow(c, 800*time.Millisecond)
	if target != 7 {
		t.Errorf("target = %d, want 7 after 30%% shrink", target)
	}
}

func TestController_MidRangeLatencyHolds(t *testing.T) {
	c := New(10, true)

	target := fillWindow(c, 250*time.Millisecond)
	if target != 10 {
		t.Errorf("target = %d, want 10 with mid-range latency", target)
	}
	if c.Adjustments() != 0 {
		t.Errorf("Adjustments = %d, want 0", c.Adjustments())
	}
}

func TestController_CappedAtMax(t *testing.T) {
	c := New(10, true)

	target := fillWindow(c, 10*time.Millisecond)
	if target != 10 {
		t.Errorf("target = %d, must not exceed max 10", target)
	}
}

func TestController_FloorOfOne(t *testing.T) {
	c := New(2, true)

	for i := 0; i < 10; i++ {
		fillWindow(c, time.Second)
	}
	if got := c.Target(); got != 1 {
		t.Errorf("target = %d, want floor of 1", got)
	}
}

func TestController_GrowthFromOne(t *testing.T) {
	c := New(10, true)
	c.setTarget(1)

	target := fillWindow(c, 10*time.Millisecond)
	if target != 2 {
		t.Errorf("target = %d, want 2 (growth must not stall at 1)", target)
	}
}

func TestController_OutliersDoNotDominateWindow(t *testing.T) {
	c := New(100, true)
	c.setTarget(10)

	// A handful of very slow probes among fast ones must not shrink
	// the pool; the window median stays fast even though the mean
	// crosses the slow threshold.
	target := 10
	for i := 0; i < DefaultWindowSize; i++ {
		latency := 50 * time.Millisecond
		if i%10 == 0 {
			latency = 10 * time.Second
		}
		target = c.Observe(latency)
	}
	if target != 12 {
		t.Errorf("target = %d, want 12 (fast median must win over slow outliers)", target)
	}
}

func TestController_NoChangeMidWindow(t *testing.T) {
	c := New(100, true)
	c.setTarget(10)

	for i := 0; i < DefaultWindowSize-1; i++ {
		if got := c.Observe(10 * time.Millisecond); got != 10 {
			t.Fatalf("target changed mid-window to %d", got)
		}
	}
}

func TestController_Disabled(t *testing.T) {
	c := New(10, false)

	target := fillWindow(c, time.Second)
	if target != 10 {
		t.Errorf("disabled controller changed target to %d", target)
	}
}
