package output

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
)

const durationRound = 100 * time.Millisecond

var (
	colorOK       = color.New(color.FgGreen, color.Bold)
	colorPartial  = color.New(color.FgCyan)
	colorRedirect = color.New(color.FgYellow)
	colorAuth     = color.New(color.FgRed)
	colorOther    = color.New(color.FgWhite)
	colorDim      = color.New(color.FgHiBlack)
	colorHeader   = color.New(color.FgBlue, color.Bold)
)

// ConsoleWriter writes human-readable findings to a terminal, one line
// per finding as they arrive plus a summary at the end.
type ConsoleWriter struct {
	mu      sync.Mutex
	writer  io.Writer
	noColor bool
	closed  bool
}

// NewConsoleWriter creates a console writer.
func NewConsoleWriter(w io.Writer, noColor bool) *ConsoleWriter {
	return &ConsoleWriter{writer: w, noColor: noColor}
}

func statusColor(status int) *color.Color {
	switch {
	case status == 200:
		return colorOK
	case status == 206:
		return colorPartial
	case status >= 300 && status < 400:
		return colorRedirect
	case status == 401 || status == 403:
		return colorAuth
	default:
		return colorOther
	}
}

func (c *ConsoleWriter) paint(col *color.Color, format string, args ...interface{}) string {
	if c.noColor {
		return fmt.Sprintf(format, args...)
	}
	return col.Sprintf(format, args...)
}

// WriteFinding prints one finding line.
func (c *ConsoleWriter) WriteFinding(f *Finding) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	status := c.paint(statusColor(f.StatusCode), "[%d]", f.StatusCode)
	size := humanBytes(f.Size)
	note := ""
	if f.LargeFile {
		note = " " + c.paint(colorDim, "(large file)")
	} else if f.PartialContent {
		note = " " + c.paint(colorDim, "(partial)")
	}
	if f.Location != "" {
		note += " " + c.paint(colorDim, "-> %s", f.Location)
	}

	_, err := fmt.Fprintf(c.writer, "%s %s  %s  %s%s\n",
		status, f.URL, size, c.paint(colorDim, "%s", f.Source), note)
	return err
}

// WriteError prints a probe error line.
func (c *ConsoleWriter) WriteError(scanErr *ScanError) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	_, err := fmt.Fprintf(c.writer, "%s %s: %s\n",
		c.paint(colorAuth, "[!]"), scanErr.URL, scanErr.Error)
	return err
}

// WriteReport prints the end-of-scan summary.
func (c *ConsoleWriter) WriteReport(report *ScanReport) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	fmt.Fprintf(c.writer, "\n%s\n", c.paint(colorHeader, "Scan summary"))
	for _, target := range report.Targets {
		fmt.Fprintf(c.writer, "  %s  %s\n", target.Target,
			c.paint(colorDim, "level %d, %d findings, %d probes",
				target.Level, target.Stats.Findings, target.Stats.ProbesCompleted))
	}

	s := report.Stats
	fmt.Fprintf(c.writer, "  %d findings, %d probes, %d errors in %s (%.1f req/s, %s transferred)\n",
		s.Findings, s.ProbesCompleted, s.Errors,
		s.Duration.Round(durationRound), s.RequestsPerSecond, humanBytes(s.BytesTransferred))
	return nil
}

// Flush flushes the writer.
func (c *ConsoleWriter) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if flusher, ok := c.writer.(interface{ Flush() error }); ok {
		return flusher.Flush()
	}
	return nil
}

// Close closes the writer.
func (c *ConsoleWriter) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	return nil
}

func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
