package state

import (
	"encoding/json"
	"time"
)

// ScanStats summarizes progress of a scan session.
type ScanStats struct {
	CandidatesGenerated int           `json:"candidates_generated"`
	ProbesCompleted     int           `json:"probes_completed"`
	Findings            int           `json:"findings"`
	Rejected            int           `json:"rejected"`
	Errors              int           `json:"errors"`
	Duration            time.Duration `json:"duration"`
	BytesTransferred    int64         `json:"bytes_transferred"`
}

// FindingRecord is the persisted form of an accepted finding.
type FindingRecord struct {
	URL         string    `json:"url"`
	StatusCode  int       `json:"status_code"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type,omitempty"`
	Hash        string    `json:"hash,omitempty"`
	Tier        int       `json:"tier"`
	Source      string    `json:"source"`
	Confidence  string    `json:"confidence"`
	Timestamp   time.Time `json:"timestamp"`
}

// ScanState is the complete persisted state of a scan session. A resumed
// scan reloads ProbedURLs into the deduplicator so already-probed
// candidates are skipped.
type ScanState struct {
	Target     string          `json:"target"`
	Level      int             `json:"level"`
	StartedAt  time.Time       `json:"started_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	Completed  bool            `json:"completed"`
	Stats      ScanStats       `json:"stats"`
	Config     json.RawMessage `json:"config,omitempty"`
	ProbedURLs []string        `json:"probed_urls"`
	Findings   []FindingRecord `json:"findings"`
}
