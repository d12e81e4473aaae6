// Package output provides report formatting for the scanner.
package output

import (
	"io"
)

// Writer defines the interface for report writers.
type Writer interface {
	// WriteReport writes the complete scan report
	WriteReport(report *ScanReport) error

	// WriteFinding writes a single finding (for streaming)
	WriteFinding(finding *Finding) error

	// WriteError writes a probe error (for streaming)
	WriteError(err *ScanError) error

	// Flush flushes any buffered output
	Flush() error

	// Close closes the writer
	Close() error
}

// Config holds output configuration.
type Config struct {
	Format   string
	Pretty   bool
	Stream   bool
	NoColor  bool
	FilePath string
}

// NewWriter creates a writer for the configured format.
func NewWriter(w io.Writer, config Config) Writer {
	switch config.Format {
	case "console":
		return NewConsoleWriter(w, config.NoColor)
	case "json":
		return NewJSONWriter(w, config.Pretty, config.Stream)
	default:
		return NewJSONWriter(w, config.Pretty, config.Stream)
	}
}
