// Package scanner probes web servers for leftover files: backups,
// configuration files, credentials, and VCS metadata that deployments
// leave reachable. It separates real hits from the server's generic
// not-found behavior before reporting anything.
package scanner

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/PentesterFlow/leftover/internal/adaptive"
	"github.com/PentesterFlow/leftover/internal/baseline"
	"github.com/PentesterFlow/leftover/internal/cache"
	scanerrors "github.com/PentesterFlow/leftover/internal/errors"
	"github.com/PentesterFlow/leftover/internal/generate"
	"github.com/PentesterFlow/leftover/internal/logger"
	"github.com/PentesterFlow/leftover/internal/metrics"
	"github.com/PentesterFlow/leftover/internal/output"
	"github.com/PentesterFlow/leftover/internal/probe"
	"github.com/PentesterFlow/leftover/internal/progress"
	"github.com/PentesterFlow/leftover/internal/queue"
	"github.com/PentesterFlow/leftover/internal/ratelimit"
	"github.com/PentesterFlow/leftover/internal/shutdown"
	"github.com/PentesterFlow/leftover/internal/state"
)

// stateSaveInterval is how often a resumable scan checkpoints.
const stateSaveInterval = 30 * time.Second

// Scanner is the main scan orchestrator.
type Scanner struct {
	config       *Config
	client       *probe.Client
	gate         *ratelimit.Gate
	retrier      *scanerrors.Retrier
	store        state.Store
	logger       *logger.Logger
	metrics      *metrics.Collector
	output       output.Writer
	outputWriter io.Writer
	shutdownHdl  *shutdown.Handler

	running atomic.Bool
	result  *ScanResult

	progress     *progress.Display
	showProgress bool
}

// targetRun holds the per-target machinery while one target is scanned.
type targetRun struct {
	target     string
	classifier *baseline.Classifier
	dedup      *state.Deduplicator
	results    *state.ResultSet
	verdicts   *cache.LRU
	controller *adaptive.Controller
	queue      *queue.WorkQueue

	mu       sync.Mutex
	findings []Result
	errors   []ScanError

	candidates atomic.Int64
	probes     atomic.Int64
	rejected   atomic.Int64
	duplicates atomic.Int64
	skipped    atomic.Int64
	errCount   atomic.Int64
	bytes      atomic.Int64
}

// New creates a scanner with the given options.
func New(opts ...Option) (*Scanner, error) {
	s := &Scanner{
		config: DefaultConfig(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if err := s.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if s.logger == nil {
		logLevel := logger.WarnLevel
		if s.config.Debug {
			logLevel = logger.DebugLevel
		} else if s.config.Verbose {
			logLevel = logger.InfoLevel
		}
		s.logger = logger.New(logger.Config{
			Level:     logLevel,
			Pretty:    true,
			Component: "scanner",
		})
	}

	if s.metrics == nil {
		s.metrics = metrics.New()
	}

	return s, nil
}

// Run executes the scan across all configured targets. A cancelled
// context stops candidate generation, drains in-flight probes, and
// still returns the partial result.
func (s *Scanner) Run(ctx context.Context) (*ScanResult, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, fmt.Errorf("scanner is already running")
	}
	defer s.running.Store(false)

	if err := s.initialize(); err != nil {
		return nil, err
	}
	defer s.cleanup()

	s.shutdownHdl = shutdown.New(shutdown.Config{
		Timeout: s.config.Timeout * 2,
		OnStart: func() {
			s.logger.Warn("Interrupt received, draining in-flight probes")
		},
	})
	defer s.shutdownHdl.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-s.shutdownHdl.Context().Done():
			cancel()
		case <-ctx.Done():
		}
	}()

	s.result = &ScanResult{
		Version:   Version,
		StartedAt: time.Now(),
	}

	for _, target := range s.config.Targets {
		if ctx.Err() != nil {
			break
		}
		tr := s.scanTarget(ctx, target)
		s.result.Targets = append(s.result.Targets, tr)

		if s.config.Output.PerTarget && s.config.Output.FilePath != "" {
			if err := s.writeTargetReport(&tr); err != nil {
				s.logger.WithError(err).Warnf("Failed to write report for %s", target)
			}
		}
	}

	s.finalize()

	if err := s.output.WriteReport(toReport(s.result)); err != nil {
		return s.result, fmt.Errorf("failed to write report: %w", err)
	}
	s.output.Flush()

	return s.result, nil
}

// initialize sets up shared components.
func (s *Scanner) initialize() error {
	client, err := probe.NewClient(probe.ClientConfig{
		Timeout:             s.config.Timeout,
		MaxIdleConns:        500,
		MaxIdleConnsPerHost: 100,
		MaxConnsPerHost:     100,
		UserAgent:           s.config.UserAgent,
		Headers:             s.config.Headers,
		SkipTLSVerify:       s.config.SkipTLSVerify,
		Proxy:               s.config.Proxy,
	})
	if err != nil {
		return fmt.Errorf("failed to create probe client: %w", err)
	}
	s.client = client

	s.gate = ratelimit.NewGate(s.config.RequestsPerSecond, s.config.Delay)

	retryConfig := scanerrors.DefaultRetryConfig()
	retryConfig.MaxRetries = s.config.Retries
	s.retrier = scanerrors.NewRetrier(retryConfig)

	if s.config.StateFile != "" {
		store, err := state.NewBoltStore(s.config.StateFile)
		if err != nil {
			return fmt.Errorf("failed to open state file: %w", err)
		}
		s.store = store
	}

	if s.outputWriter == nil {
		s.outputWriter = os.Stdout
	}
	writer := s.outputWriter
	if s.config.Output.FilePath != "" && !s.config.Output.PerTarget {
		f, err := os.Create(s.config.Output.FilePath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		writer = f
	}
	s.output = output.NewWriter(writer, output.Config{
		Format:  s.config.Output.Format,
		Pretty:  s.config.Output.Pretty,
		Stream:  s.config.Output.Stream,
		NoColor: s.config.Output.NoColor,
	})

	return nil
}

func (s *Scanner) cleanup() {
	if s.client != nil {
		s.client.Close()
	}
	if s.store != nil {
		s.store.Close()
	}
	if s.output != nil {
		s.output.Close()
	}
}

// scanTarget runs the full pipeline for one target: baseline sanity
// check, candidate generation, concurrent probing, classification.
func (s *Scanner) scanTarget(ctx context.Context, target string) TargetResult {
	started := time.Now()
	tr := TargetResult{
		Target:    target,
		Level:     s.config.Level,
		StartedAt: started,
	}

	log := s.logger.WithTarget(target)
	log.Infof("Scanning at level %d", s.config.Level)

	gen, err := generate.New(target, generate.Config{
		Level:          generate.Level(s.config.Level),
		BruteForce:     s.config.BruteForce,
		BruteRecursive: s.config.BruteRecursive,
		DomainWordlist: s.config.DomainWordlist,
		TestIndex:      s.config.TestIndex,
		Language:       s.config.Language,
		ExtraWords:     s.config.ExtraWords,
		Extensions:     s.config.Extensions,
	})
	if err != nil {
		tr.Errors = append(tr.Errors, ScanError{URL: target, Error: err.Error(), Timestamp: time.Now()})
		tr.CompletedAt = time.Now()
		return tr
	}

	run := &targetRun{
		target:     target,
		classifier: baseline.New(baseline.Config{
			Probes:             s.config.BaselineProbes,
			Consensus:          s.config.BaselineConsensus,
			SizeTolerance:      s.config.SizeTolerance,
			AllowStatuses:      s.config.AllowStatuses,
			IgnoreStatuses:     s.config.IgnoreStatuses,
			IgnoreContentTypes: s.config.IgnoreContentTypes,
			MinSize:            s.config.MinSize,
			MaxSize:            s.config.MaxSize,
		}),
		dedup:      state.NewDeduplicator(50000),
		results:    state.NewResultSet(),
		verdicts:   cache.NewLRU(s.config.CacheSize),
		controller: adaptive.New(s.config.Workers, s.config.Adaptive),
		queue:      queue.New(0),
	}

	s.restoreState(run, &tr)

	if s.config.NoBaselineFilter {
		run.classifier.SkipSanityCheck()
		tr.Baseline = "disabled"
	} else {
		if err := run.classifier.Establish(ctx, target, s.baselineProbe); err != nil {
			if scanerrors.IsCancelled(err) {
				tr.CompletedAt = time.Now()
				return tr
			}
			log.WithError(err).Warn("Baseline sampling failed, classifying permissively")
		}
		tr.Baseline = run.classifier.State().String()
		if run.classifier.Permissive() {
			tr.Baseline = "permissive"
			s.logger.BaselineEvent(target, "no stable not-found signature, running permissive")
		}
	}

	if s.showProgress {
		s.progress = progress.New()
		s.progress.Start(target)
	}

	// Producer feeds the queue; workers drain it. The queue close is
	// what lets workers distinguish "no work yet" from "no more work".
	var producerWG sync.WaitGroup
	producerWG.Add(1)
	go func() {
		defer producerWG.Done()
		defer run.queue.Close()
		for cand := range gen.Stream(ctx) {
			if err := run.queue.Push(cand); err != nil {
				return
			}
			run.candidates.Add(1)
			s.metrics.RecordCandidates(1)
		}
	}()

	stopSave := s.startStateSaver(run, &tr)

	var workerWG sync.WaitGroup
	for i := 0; i < s.config.Workers; i++ {
		workerWG.Add(1)
		go s.worker(ctx, run, i, &workerWG)
	}

	workerWG.Wait()
	producerWG.Wait()
	stopSave()

	if s.progress != nil {
		s.progress.Stop()
		s.progress = nil
	}

	tr.CompletedAt = time.Now()
	run.mu.Lock()
	tr.Findings = run.findings
	tr.Errors = append(tr.Errors, run.errors...)
	run.mu.Unlock()

	duration := tr.CompletedAt.Sub(started)
	tr.Stats = ScanStats{
		CandidatesGenerated: int(run.candidates.Load()),
		ProbesCompleted:     int(run.probes.Load()),
		Findings:            len(tr.Findings),
		Rejected:            int(run.rejected.Load()),
		Duplicates:          int(run.duplicates.Load()),
		Skipped:             int(run.skipped.Load()),
		Errors:              int(run.errCount.Load()),
		Duration:            duration,
		BytesTransferred:    run.bytes.Load(),
	}
	if duration.Seconds() > 0 {
		tr.Stats.RequestsPerSecond = float64(tr.Stats.ProbesCompleted) / duration.Seconds()
	}

	s.saveState(run, &tr, ctx.Err() == nil)

	log.Infof("Done: %d findings from %d probes", tr.Stats.Findings, tr.Stats.ProbesCompleted)
	return tr
}

// worker drains the queue. Workers whose id is above the adaptive
// concurrency target park instead of popping, which is how the pool
// shrinks without killing goroutines.
func (s *Scanner) worker(ctx context.Context, run *targetRun, id int, wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		if ctx.Err() != nil {
			return
		}

		if id >= run.controller.Target() {
			if run.queue.Closed() && run.queue.Len() == 0 {
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(50 * time.Millisecond):
			}
			continue
		}

		cand, err := run.queue.PopWait()
		if err != nil {
			return
		}
		s.metrics.SetQueueDepth(int64(run.queue.Len()))

		if !run.dedup.MarkProbed(cand.URL) {
			run.skipped.Add(1)
			continue
		}

		if err := s.gate.Wait(ctx, id); err != nil {
			return
		}

		s.probeCandidate(ctx, run, cand)
	}
}

// probeCandidate requests one candidate and classifies the response.
// Transport and timeout errors are retried with backoff when the
// configuration asks for retries; the default is a single attempt.
func (s *Scanner) probeCandidate(ctx context.Context, run *targetRun, cand generate.Candidate) {
	var resp *probe.Response
	attempt := s.retrier.Do(ctx, "probe", cand.URL, func(ctx context.Context) error {
		var doErr error
		resp, doErr = s.client.Do(ctx, cand.URL, probe.Options{
			UseRange: cand.Interesting,
		})
		return doErr
	})

	for i := 0; i < attempt.Attempts; i++ {
		s.metrics.RecordRequest()
	}
	if err := attempt.LastError; !attempt.Success {
		if scanerrors.IsCancelled(err) {
			return
		}
		run.errCount.Add(1)
		perr := scanerrors.Categorize(err, cand.URL)
		s.metrics.RecordError(scanerrors.GetErrorType(perr).String())
		scanErr := ScanError{URL: cand.URL, Error: perr.Error(), Timestamp: time.Now()}
		run.mu.Lock()
		run.errors = append(run.errors, scanErr)
		run.mu.Unlock()
		s.output.WriteError(&output.ScanError{URL: scanErr.URL, Error: scanErr.Error, Timestamp: scanErr.Timestamp})
		s.updateProgress(run)
		return
	}

	run.probes.Add(1)
	run.bytes.Add(resp.BodySize)
	s.metrics.RecordProbeCompleted()
	s.metrics.RecordResponseTime(resp.Duration)
	s.metrics.RecordStatusCode(resp.StatusCode)
	s.metrics.RecordBytes(resp.BodySize)
	if resp.Truncated {
		s.metrics.RecordTruncatedBody()
	}
	s.logger.ProbeEvent("GET", cand.URL, resp.StatusCode, resp.Duration)

	target := run.controller.Observe(resp.Duration)
	s.metrics.SetConcurrencyTarget(int64(target))

	fp := cache.Fingerprint{
		PathShape: cache.PathShape(urlPath(cand.URL)),
		Status:    resp.StatusCode,
	}
	if cached, ok := run.verdicts.Get(fp); ok && cached.BaselineMatch && cached.ContentHash == resp.Hash {
		s.metrics.RecordCacheHit()
		s.metrics.RecordBaselineRejection()
		run.rejected.Add(1)
		s.updateProgress(run)
		return
	}
	s.metrics.RecordCacheMiss()

	verdict := run.classifier.Classify(baseline.Outcome{
		Status:      resp.StatusCode,
		Size:        resp.BodySize,
		Hash:        resp.Hash,
		ContentType: resp.ContentType,
		Sample:      resp.Sample,
		Truncated:   resp.Truncated,
	})

	if !verdict.Accept {
		run.rejected.Add(1)
		if strings.HasPrefix(verdict.Reason, "baseline") || verdict.Reason == "error_page_text" {
			s.metrics.RecordFalsePositive()
			run.verdicts.Put(fp, cache.Verdict{
				BaselineMatch: true,
				ContentHash:   resp.Hash,
				Size:          resp.BodySize,
			})
		}
		s.metrics.RecordBaselineRejection()
		s.updateProgress(run)
		return
	}

	if !run.results.Add(cand.URL, resp.StatusCode, resp.BodySize) {
		run.duplicates.Add(1)
		s.updateProgress(run)
		return
	}

	result := Result{
		URL:            cand.URL,
		StatusCode:     resp.StatusCode,
		Size:           resp.BodySize,
		ContentType:    resp.ContentType,
		Hash:           resp.Hash,
		Location:       resp.Location,
		Tier:           cand.Tier,
		Source:         string(cand.Source),
		Confidence:     verdict.Confidence.String(),
		LargeFile:      resp.Truncated || resp.ContentLength > probe.MaxBodyBytes,
		PartialContent: resp.Ranged,
		Duration:       resp.Duration,
		Timestamp:      time.Now(),
	}

	run.mu.Lock()
	run.findings = append(run.findings, result)
	run.mu.Unlock()

	s.metrics.RecordFinding()
	s.logger.HitEvent(result.URL, result.StatusCode, result.Size, result.Confidence)
	s.output.WriteFinding(toFinding(&result))
	s.updateProgress(run)
}

// baselineProbe adapts the probe client for baseline sampling.
func (s *Scanner) baselineProbe(ctx context.Context, url string) (baseline.Outcome, error) {
	resp, err := s.client.Do(ctx, url, probe.Options{})
	if err != nil {
		return baseline.Outcome{}, err
	}
	return baseline.Outcome{
		Status:      resp.StatusCode,
		Size:        resp.BodySize,
		Hash:        resp.Hash,
		ContentType: resp.ContentType,
		Sample:      resp.Sample,
		Truncated:   resp.Truncated,
	}, nil
}

func (s *Scanner) updateProgress(run *targetRun) {
	if s.progress == nil {
		return
	}
	run.mu.Lock()
	found := len(run.findings)
	run.mu.Unlock()
	s.progress.Update(
		int(run.candidates.Load()),
		int(run.probes.Load()),
		found,
		int(run.rejected.Load()),
		int(run.errCount.Load()),
		run.controller.Target(),
	)
}

// restoreState seeds a resumed scan from the state file.
func (s *Scanner) restoreState(run *targetRun, tr *TargetResult) {
	if s.store == nil {
		return
	}

	saved, err := s.store.Load(run.target)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to load saved state")
		return
	}
	if saved == nil || saved.Completed {
		return
	}

	run.dedup.Restore(saved.ProbedURLs)
	for _, f := range saved.Findings {
		run.results.Add(f.URL, f.StatusCode, f.Size)
		run.findings = append(run.findings, Result{
			URL:         f.URL,
			StatusCode:  f.StatusCode,
			Size:        f.Size,
			ContentType: f.ContentType,
			Hash:        f.Hash,
			Tier:        f.Tier,
			Source:      f.Source,
			Confidence:  f.Confidence,
			Timestamp:   f.Timestamp,
		})
	}
	s.logger.WithTarget(run.target).Infof("Resuming: %d URLs already probed, %d findings carried over",
		len(saved.ProbedURLs), len(saved.Findings))
}

// startStateSaver checkpoints a resumable scan periodically. The
// returned func stops the saver.
func (s *Scanner) startStateSaver(run *targetRun, tr *TargetResult) func() {
	if s.store == nil {
		return func() {}
	}

	done := make(chan struct{})
	var once sync.Once
	go func() {
		ticker := time.NewTicker(stateSaveInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				s.saveState(run, tr, false)
			}
		}
	}()
	return func() { once.Do(func() { close(done) }) }
}

func (s *Scanner) saveState(run *targetRun, tr *TargetResult, completed bool) {
	if s.store == nil {
		return
	}

	run.mu.Lock()
	records := make([]state.FindingRecord, 0, len(run.findings))
	for _, f := range run.findings {
		records = append(records, state.FindingRecord{
			URL:         f.URL,
			StatusCode:  f.StatusCode,
			Size:        f.Size,
			ContentType: f.ContentType,
			Hash:        f.Hash,
			Tier:        f.Tier,
			Source:      f.Source,
			Confidence:  f.Confidence,
			Timestamp:   f.Timestamp,
		})
	}
	run.mu.Unlock()

	cfg, _ := json.Marshal(s.config)
	err := s.store.Save(&state.ScanState{
		Target:     run.target,
		Level:      s.config.Level,
		StartedAt:  tr.StartedAt,
		Completed:  completed,
		Config:     cfg,
		ProbedURLs: run.dedup.Snapshot(),
		Findings:   records,
		Stats: state.ScanStats{
			CandidatesGenerated: int(run.candidates.Load()),
			ProbesCompleted:     int(run.probes.Load()),
			Findings:            len(records),
			Rejected:            int(run.rejected.Load()),
			Errors:              int(run.errCount.Load()),
			BytesTransferred:    run.bytes.Load(),
		},
	})
	if err != nil {
		s.logger.WithError(err).Warn("Failed to save scan state")
	}
}

// finalize rolls per-target stats into the session totals.
func (s *Scanner) finalize() {
	s.result.CompletedAt = time.Now()

	total := &s.result.Stats
	for _, tr := range s.result.Targets {
		total.CandidatesGenerated += tr.Stats.CandidatesGenerated
		total.ProbesCompleted += tr.Stats.ProbesCompleted
		total.Findings += tr.Stats.Findings
		total.Rejected += tr.Stats.Rejected
		total.Duplicates += tr.Stats.Duplicates
		total.Skipped += tr.Stats.Skipped
		total.Errors += tr.Stats.Errors
		total.BytesTransferred += tr.Stats.BytesTransferred
	}
	total.Duration = s.result.CompletedAt.Sub(s.result.StartedAt)
	if total.Duration.Seconds() > 0 {
		total.RequestsPerSecond = float64(total.ProbesCompleted) / total.Duration.Seconds()
	}
}

// writeTargetReport writes one target's findings to its own file.
func (s *Scanner) writeTargetReport(tr *TargetResult) error {
	path := perTargetPath(s.config.Output.FilePath, tr.Target)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := output.NewJSONWriter(f, s.config.Output.Pretty, false)
	report := &output.ScanReport{
		Version:     Version,
		StartedAt:   tr.StartedAt,
		CompletedAt: tr.CompletedAt,
		Stats:       toOutputStats(tr.Stats),
		Targets:     []output.TargetReport{toTargetReport(tr)},
	}
	return w.WriteReport(report)
}

// perTargetPath derives a per-target file name from the base report
// path: report.json + http://shop.example.com -> report.shop.example.com.json
func perTargetPath(base, target string) string {
	host := target
	if u, err := url.Parse(target); err == nil && u.Host != "" {
		host = u.Host
	}
	host = strings.NewReplacer(":", "_", "/", "_").Replace(host)

	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + "." + host + ext
}

func urlPath(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Path == "" {
		return "/"
	}
	return u.Path
}

// Stats returns session totals so far.
func (s *Scanner) Stats() ScanStats {
	if s.result == nil {
		return ScanStats{}
	}
	return s.result.Stats
}

// Metrics returns the metrics collector for external access.
func (s *Scanner) Metrics() *metrics.Collector {
	return s.metrics
}

// MetricsSnapshot returns a point-in-time snapshot of all metrics.
func (s *Scanner) MetricsSnapshot() *metrics.Snapshot {
	return s.metrics.Snapshot()
}

func toFinding(r *Result) *output.Finding {
	return &output.Finding{
		URL:            r.URL,
		StatusCode:     r.StatusCode,
		Size:           r.Size,
		ContentType:    r.ContentType,
		Hash:           r.Hash,
		Location:       r.Location,
		Tier:           r.Tier,
		Source:         r.Source,
		Confidence:     r.Confidence,
		LargeFile:      r.LargeFile,
		PartialContent: r.PartialContent,
		Duration:       r.Duration,
		Timestamp:      r.Timestamp,
	}
}

func toOutputStats(s ScanStats) output.ScanStats {
	return output.ScanStats{
		CandidatesGenerated: s.CandidatesGenerated,
		ProbesCompleted:     s.ProbesCompleted,
		Findings:            s.Findings,
		Rejected:            s.Rejected,
		Duplicates:          s.Duplicates,
		Errors:              s.Errors,
		Duration:            s.Duration,
		BytesTransferred:    s.BytesTransferred,
		RequestsPerSecond:   s.RequestsPerSecond,
	}
}

func toTargetReport(tr *TargetResult) output.TargetReport {
	report := output.TargetReport{
		Target:      tr.Target,
		Level:       tr.Level,
		Baseline:    tr.Baseline,
		StartedAt:   tr.StartedAt,
		CompletedAt: tr.CompletedAt,
		Stats:       toOutputStats(tr.Stats),
		Findings:    make([]output.Finding, 0, len(tr.Findings)),
	}
	for i := range tr.Findings {
		report.Findings = append(report.Findings, *toFinding(&tr.Findings[i]))
	}
	for _, e := range tr.Errors {
		report.Errors = append(report.Errors, output.ScanError{
			URL:       e.URL,
			Error:     e.Error,
			Timestamp: e.Timestamp,
		})
	}
	return report
}

func toReport(r *ScanResult) *output.ScanReport {
	report := &output.ScanReport{
		Version:     r.Version,
		StartedAt:   r.StartedAt,
		CompletedAt: r.CompletedAt,
		Stats:       toOutputStats(r.Stats),
		Targets:     make([]output.TargetReport, 0, len(r.Targets)),
	}
	for i := range r.Targets {
		report.Targets = append(report.Targets, toTargetReport(&r.Targets[i]))
	}
	return report
}
