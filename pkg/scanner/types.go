package scanner

import (
	"time"
)

// Version is the scanner version reported in output.
const Version = "1.0.0"

// Result represents one accepted finding.
type Result struct {
	URL            string        `json:"url"`
	StatusCode     int           `json:"status_code"`
	Size           int64         `json:"size"`
	ContentType    string        `json:"content_type,omitempty"`
	Hash           string        `json:"hash,omitempty"`
	Location       string        `json:"location,omitempty"`
	Tier           int           `json:"tier"`
	Source         string        `json:"source"`
	Confidence     string        `json:"confidence"`
	LargeFile      bool          `json:"large_file,omitempty"`
	PartialContent bool          `json:"partial_content,omitempty"`
	Duration       time.Duration `json:"duration"`
	Timestamp      time.Time     `json:"timestamp"`
}

// ScanError records a probe failure worth surfacing.
type ScanError struct {
	URL       string    `json:"url"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

// ScanStats summarizes one scan or one target within it.
type ScanStats struct {
	CandidatesGenerated int           `json:"candidates_generated"`
	ProbesCompleted     int           `json:"probes_completed"`
	Findings            int           `json:"findings"`
	Rejected            int           `json:"rejected"`
	Duplicates          int           `json:"duplicates"`
	Skipped             int           `json:"skipped"`
	Errors              int           `json:"errors"`
	Duration            time.Duration `json:"duration"`
	BytesTransferred    int64         `json:"bytes_transferred"`
	RequestsPerSecond   float64       `json:"requests_per_second"`
}

// TargetResult holds the outcome for a single target.
type TargetResult struct {
	Target      string      `json:"target"`
	Level       int         `json:"level"`
	Baseline    string      `json:"baseline,omitempty"`
	StartedAt   time.Time   `json:"started_at"`
	CompletedAt time.Time   `json:"completed_at,omitempty"`
	Stats       ScanStats   `json:"stats"`
	Findings    []Result    `json:"findings"`
	Errors      []ScanError `json:"errors,omitempty"`
}

// ScanResult is the complete outcome of a scan session.
type ScanResult struct {
	Version     string         `json:"version"`
	StartedAt   time.Time      `json:"started_at"`
	CompletedAt time.Time      `json:"completed_at,omitempty"`
	Stats       ScanStats      `json:"stats"`
	Targets     []TargetResult `json:"targets"`
}
