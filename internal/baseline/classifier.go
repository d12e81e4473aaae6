// Package baseline learns a target's "not found" behavior and rejects
// responses that merely repeat it.
//
// Many servers answer missing paths with HTTP 200 and a templated
// page, which would otherwise flood the scan with false hits. Before
// bulk probing, the classifier requests a handful of paths that cannot
// exist and distills their responses into a consensus signature. Every
// later probe is judged against that signature.
package baseline

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
)

// State tracks classifier initialization per target.
type State int

const (
	StateUninitialized State = iota
	StateSanityCheck
	StateReady
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateSanityCheck:
		return "sanity_check"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Confidence grades an accepted result for reporting.
type Confidence int

const (
	ConfidenceLow Confidence = iota
	ConfidenceMedium
	ConfidenceHigh
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	default:
		return "low"
	}
}

// Outcome is the classifier's view of one probe response.
type Outcome struct {
	Status      int
	Size        int64
	Hash        string
	ContentType string
	Sample      []byte
	Truncated   bool
}

// Verdict is the classification decision for one candidate.
type Verdict struct {
	Accept     bool
	Reason     string
	Confidence Confidence
}

// signature is the consensus not-found response shape.
type signature struct {
	status     int
	sizeBucket int64
	hash       string
	size       int64
}

// sizeBucketWidth groups nearby sizes so dynamic error pages with
// per-request noise (timestamps, request IDs) still reach consensus.
const sizeBucketWidth = 256

// Config tunes the classifier.
type Config struct {
	// Probes is how many improbable paths are requested during the
	// sanity check.
	Probes int
	// Consensus is the fraction of sanity probes that must share a
	// response shape before the signature is trusted. Below it the
	// classifier runs permissive.
	Consensus float64
	// SizeTolerance treats a response within this fraction of the
	// baseline size as baseline-sized.
	SizeTolerance float64
	// AllowStatuses restricts accepted status codes. Empty means the
	// default success set (200, 206).
	AllowStatuses []int
	// IgnoreStatuses always reject. 404 is implicit.
	IgnoreStatuses []int
	// IgnoreContentTypes rejects responses whose Content-Type
	// contains any listed substring.
	IgnoreContentTypes []string
	// MinSize and MaxSize bound accepted body sizes. Zero disables
	// the respective bound.
	MinSize int64
	MaxSize int64
	// SmallAuthLimit rejects 401/403 bodies under this size as the
	// server's stock denial page. Applied only when those statuses
	// are explicitly allowed.
	SmallAuthLimit int64
}

// DefaultConfig returns classifier defaults.
func DefaultConfig() Config {
	return Config{
		Probes:         3,
		Consensus:      0.6,
		SizeTolerance:  0.05,
		SmallAuthLimit: 1024,
	}
}

// ProbeFunc requests one URL on the classifier's behalf.
type ProbeFunc func(ctx context.Context, url string) (Outcome, error)

// Classifier holds per-target baseline state.
type Classifier struct {
	mu         sync.RWMutex
	config     Config
	state      State
	samples    []Outcome
	sig        *signature
	permissive bool
}

// New creates a classifier for one target.
func New(config Config) *Classifier {
	if config.Probes <= 0 {
		config.Probes = 3
	}
	if config.Consensus <= 0 || config.Consensus > 1 {
		config.Consensus = 0.6
	}
	if config.SizeTolerance <= 0 {
		config.SizeTolerance = 0.05
	}
	if config.SmallAuthLimit <= 0 {
		config.SmallAuthLimit = 1024
	}
	return &Classifier{config: config}
}

// State returns the current initialization state.
func (c *Classifier) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Permissive reports whether the classifier fell back to permissive
// mode for lack of a consistent baseline.
func (c *Classifier) Permissive() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.permissive
}

// SkipSanityCheck marks the classifier ready without sampling the
// target, so only the static filters apply.
func (c *Classifier) SkipSanityCheck() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateReady
	c.permissive = true
}

// Establish runs the sanity check: it probes improbable paths under
// baseURL and computes the consensus signature. Transport errors on
// individual probes are tolerated; if too few samples remain the
// classifier degrades to permissive rather than failing the scan.
func (c *Classifier) Establish(ctx context.Context, baseURL string, probe ProbeFunc) error {
	c.mu.Lock()
	c.state = StateSanityCheck
	probes := c.config.Probes
	c.mu.Unlock()

	var samples []Outcome
	for _, path := range ImprobablePaths(probes) {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		outcome, err := probe(ctx, strings.TrimSuffix(baseURL, "/")+path)
		if err != nil {
			continue
		}
		samples = append(samples, outcome)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.samples = samples
	c.state = StateReady

	if len(samples) < 2 {
		c.permissive = true
		return nil
	}

	// Count response shapes and take the most common.
	type shape struct {
		status int
		bucket int64
		hash   string
	}
	counts := make(map[shape]int)
	bySig := make(map[shape]Outcome)
	for _, s := range samples {
		k := shape{s.Status, s.Size / sizeBucketWidth, s.Hash}
		counts[k]++
		bySig[k] = s
	}

	var best shape
	bestCount := 0
	for k, n := range counts {
		if n > bestCount {
			best, bestCount = k, n
		}
	}

	if float64(bestCount)/float64(len(samples)) < c.config.Consensus {
		c.permissive = true
		return nil
	}

	c.sig = &signature{
		status:     best.status,
		sizeBucket: best.bucket,
		hash:       best.hash,
		size:       bySig[best].Size,
	}
	return nil
}

// Classify renders a verdict for one candidate outcome. The
// classifier must be READY.
func (c *Classifier) Classify(o Outcome) Verdict {
	c.mu.RLock()
	defer c.mu.RUnlock()

	// 404 is never a finding regardless of configuration.
	if o.Status == 404 {
		return Verdict{Reason: "not_found"}
	}

	for _, s := range c.config.IgnoreStatuses {
		if o.Status == s {
			return Verdict{Reason: "status_ignored"}
		}
	}

	if !c.statusAllowed(o.Status) {
		return Verdict{Reason: "status_filtered"}
	}

	for _, ct := range c.config.IgnoreContentTypes {
		if ct != "" && strings.Contains(strings.ToLower(o.ContentType), strings.ToLower(ct)) {
			return Verdict{Reason: "content_type_ignored"}
		}
	}

	if c.config.MinSize > 0 && o.Size < c.config.MinSize {
		return Verdict{Reason: "below_min_size"}
	}
	if c.config.MaxSize > 0 && o.Size > c.config.MaxSize {
		return Verdict{Reason: "above_max_size"}
	}

	// Stock denial pages for protected statuses.
	if (o.Status == 401 || o.Status == 403) && c.config.SmallAuthLimit > 0 && o.Size < c.config.SmallAuthLimit {
		return Verdict{Reason: "small_auth_page"}
	}

	if c.sig != nil && o.Hash == c.sig.hash {
		return Verdict{Reason: "baseline_hash"}
	}

	if c.permissive {
		// Only verbatim baseline hashes reject in permissive mode.
		for _, s := range c.samples {
			if o.Hash == s.Hash {
				return Verdict{Reason: "baseline_hash"}
			}
		}
		return Verdict{Accept: true, Reason: "accepted", Confidence: ConfidenceMedium}
	}

	if c.sig != nil && o.Status == c.sig.status {
		if withinTolerance(o.Size, c.sig.size, c.config.SizeTolerance) {
			return Verdict{Reason: "baseline_size"}
		}
	}

	// Templated error pages served with a success status.
	if looksLikeErrorPage(o) {
		return Verdict{Reason: "error_page_text"}
	}

	confidence := ConfidenceHigh
	if o.Truncated {
		confidence = ConfidenceLow
	} else if c.sig != nil && withinTolerance(o.Size, c.sig.size, c.config.SizeTolerance) {
		// Different hash but baseline-sized; likely real, less certain.
		confidence = ConfidenceMedium
	}

	return Verdict{Accept: true, Reason: "accepted", Confidence: confidence}
}

// statusAllowed checks the allow list, defaulting to the success set.
func (c *Classifier) statusAllowed(status int) bool {
	if len(c.config.AllowStatuses) == 0 {
		return status == 200 || status == 206
	}
	for _, s := range c.config.AllowStatuses {
		if status == s {
			return true
		}
	}
	return false
}

// withinTolerance reports whether a is within frac of b.
func withinTolerance(a, b int64, frac float64) bool {
	if b == 0 {
		return a == 0
	}
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return float64(diff) <= float64(b)*frac
}

const improbableChars = "abcdefghijklmnopqrstuvwxyz0123456789"

// ImprobablePaths returns n random paths no real site would serve.
// Shapes vary so servers with per-extension handlers are sampled too.
func ImprobablePaths(n int) []string {
	shapes := []string{
		"/%s",
		"/%s.html",
		"/%s.php",
		"/%s/",
		"/%s.bak",
	}
	paths := make([]string, 0, n)
	for i := 0; i < n; i++ {
		paths = append(paths, fmt.Sprintf(shapes[i%len(shapes)], randomToken(24)))
	}
	return paths
}

func randomToken(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		b.WriteByte(improbableChars[rand.Intn(len(improbableChars))])
	}
	return b.String()
}
