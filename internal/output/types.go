package output

import (
	"time"
)

// Finding represents one accepted probe result.
type Finding struct {
	URL            string    `json:"url"`
	StatusCode     int       `json:"status_code"`
	Size           int64     `json:"size"`
	ContentType    string    `json:"content_type,omitempty"`
	Hash           string    `json:"hash,omitempty"`
	Location       string    `json:"location,omitempty"`
	Tier           int       `json:"tier"`
	Source         string    `json:"source"`
	Confidence     string    `json:"confidence"`
	LargeFile      bool      `json:"large_file,omitempty"`
	PartialContent bool      `json:"partial_content,omitempty"`
	Duration       time.Duration `json:"duration_ms"`
	Timestamp      time.Time `json:"timestamp"`
}

// ScanStats contains statistics about a scan.
type ScanStats struct {
	CandidatesGenerated int           `json:"candidates_generated"`
	ProbesCompleted     int           `json:"probes_completed"`
	Findings            int           `json:"findings"`
	Rejected            int           `json:"rejected"`
	Duplicates          int           `json:"duplicates"`
	Errors              int           `json:"errors"`
	Duration            time.Duration `json:"duration"`
	BytesTransferred    int64         `json:"bytes_transferred"`
	RequestsPerSecond   float64       `json:"requests_per_second"`
}

// TargetReport contains the findings for a single target.
type TargetReport struct {
	Target      string    `json:"target"`
	Level       int       `json:"level"`
	Baseline    string    `json:"baseline,omitempty"`
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at,omitempty"`
	Stats       ScanStats `json:"stats"`
	Findings    []Finding `json:"findings"`
	Errors      []ScanError `json:"errors,omitempty"`
}

// ScanReport is the complete result of a scan session across all targets.
type ScanReport struct {
	Version     string         `json:"version"`
	StartedAt   time.Time      `json:"started_at"`
	CompletedAt time.Time      `json:"completed_at,omitempty"`
	Stats       ScanStats      `json:"stats"`
	Targets     []TargetReport `json:"targets"`
}

// ScanError represents a probe error worth surfacing in the report.
type ScanError struct {
	URL       string    `json:"url"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

// StreamEvent wraps streamed output records.
type StreamEvent struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}
