// Package progress provides progress bar display for the scanner.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Display renders a single-line progress bar while a target is scanned.
// The candidate total is known once generation finishes, so the bar
// tracks probes completed against candidates generated.
type Display struct {
	mu      sync.Mutex
	started bool
	stopped bool
	out     io.Writer

	candidates atomic.Int64
	probes     atomic.Int64
	findings   atomic.Int64
	rejected   atomic.Int64
	errors     atomic.Int64
	workers    atomic.Int64

	startTime time.Time
	target    string

	lastLine string
}

// New creates a progress display writing to stderr.
func New() *Display {
	return &Display{out: os.Stderr}
}

// NewWithWriter creates a display writing to w, for tests.
func NewWithWriter(w io.Writer) *Display {
	return &Display{out: w}
}

// Start begins the progress display for a target.
func (d *Display) Start(target string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.started {
		return
	}

	d.started = true
	d.stopped = false
	d.startTime = time.Now()
	d.target = target
}

// Update redraws the progress line with current counters.
func (d *Display) Update(candidates, probes, findings, rejected, errors, workers int) {
	d.candidates.Store(int64(candidates))
	d.probes.Store(int64(probes))
	d.findings.Store(int64(findings))
	d.rejected.Store(int64(rejected))
	d.errors.Store(int64(errors))
	d.workers.Store(int64(workers))

	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.started || d.stopped {
		return
	}

	total := candidates
	if total == 0 {
		total = 1
	}

	percent := int((float64(probes) / float64(total)) * 100)
	if percent > 100 {
		percent = 100
	}

	elapsed := time.Since(d.startTime)
	speed := float64(0)
	if elapsed.Seconds() > 0 {
		speed = float64(probes) / elapsed.Seconds()
	}

	barWidth := 30
	filled := int(float64(percent) / 100 * float64(barWidth))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	line := fmt.Sprintf("\r[%s] %3d%% | Probes: %d/%d | Found: %d | Workers: %d | %.1f req/s | %s",
		bar, percent, probes, candidates, findings, workers, speed, formatDuration(elapsed))

	if len(line) < len(d.lastLine) {
		fmt.Fprint(d.out, "\r"+strings.Repeat(" ", len(d.lastLine)))
	}
	fmt.Fprint(d.out, line)
	d.lastLine = line
}

// Stop stops the progress display.
func (d *Display) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped || !d.started {
		return
	}

	d.stopped = true
	fmt.Fprintln(d.out)
}

// PrintSummary prints a final summary after the scan.
func (d *Display) PrintSummary(w io.Writer) {
	duration := time.Since(d.startTime)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "╔══════════════════════════════════════════════════════════════╗")
	fmt.Fprintln(w, "║                        Scan Complete                         ║")
	fmt.Fprintln(w, "╚══════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Target:       %s\n", truncateURL(d.target, 50))
	fmt.Fprintf(w, "  Duration:     %s\n", formatDuration(duration))
	fmt.Fprintf(w, "  Candidates:   %d\n", d.candidates.Load())
	fmt.Fprintf(w, "  Probes:       %d\n", d.probes.Load())
	fmt.Fprintf(w, "  Findings:     %d\n", d.findings.Load())
	fmt.Fprintf(w, "  Rejected:     %d\n", d.rejected.Load())
	fmt.Fprintf(w, "  Errors:       %d\n", d.errors.Load())
	fmt.Fprintln(w)

	if duration.Seconds() > 0 {
		fmt.Fprintf(w, "  Average Speed: %.1f req/sec\n", float64(d.probes.Load())/duration.Seconds())
		fmt.Fprintln(w)
	}
}

// Stats returns current scan counters.
func (d *Display) Stats() (candidates, probes, findings, rejected, errors int64) {
	return d.candidates.Load(),
		d.probes.Load(),
		d.findings.Load(),
		d.rejected.Load(),
		d.errors.Load()
}

func truncateURL(url string, maxLen int) string {
	if len(url) <= maxLen {
		return url
	}
	return url[:maxLen-3] + "..."
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%02ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
