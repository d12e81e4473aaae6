package scanner

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/PentesterFlow/leftover/internal/state"
)

// hard404Server serves real content for the given paths and a plain
// 404 for everything else.
func hard404Server(content map[string]string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if body, ok := content[r.URL.Path]; ok {
			w.WriteHeader(http.StatusOK)
			fmt.Fprint(w, body)
			return
		}
		http.NotFound(w, r)
	}))
}

func runScan(t *testing.T, opts ...Option) *ScanResult {
	t.Helper()

	var buf bytes.Buffer
	opts = append(opts, WithOutput(&buf))

	s, err := New(opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	result, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return result
}

func findingURLs(result *ScanResult) []string {
	var urls []string
	for _, tr := range result.Targets {
		for _, f := range tr.Findings {
			urls = append(urls, f.URL)
		}
	}
	return urls
}

func TestScanFindsExposedFiles(t *testing.T) {
	srv := hard404Server(map[string]string{
		"/.env":       "APP_KEY=base64:abc123\nDB_PASSWORD=hunter2\n",
		"/backup.sql": "-- MySQL dump 10.13\nCREATE TABLE users (id int);\n",
	})
	defer srv.Close()

	result := runScan(t,
		WithTarget(srv.URL),
		WithLevel(0),
		WithWorkers(4),
	)

	urls := findingURLs(result)
	if len(urls) != 2 {
		t.Fatalf("got %d findings %v, want 2", len(urls), urls)
	}
	want := map[string]bool{srv.URL + "/.env": true, srv.URL + "/backup.sql": true}
	for _, u := range urls {
		if !want[u] {
			t.Errorf("unexpected finding %s", u)
		}
	}

	tr := result.Targets[0]
	if tr.Baseline != "ready" {
		t.Errorf("Baseline = %q, want ready", tr.Baseline)
	}
	if tr.Stats.ProbesCompleted == 0 || tr.Stats.Rejected == 0 {
		t.Errorf("stats not tracked: %+v", tr.Stats)
	}
	for _, f := range tr.Findings {
		if f.StatusCode != 200 {
			t.Errorf("finding %s has status %d", f.URL, f.StatusCode)
		}
		if f.Confidence == "" || f.Hash == "" {
			t.Errorf("finding %s missing classification detail: %+v", f.URL, f)
		}
	}
}

func TestScanRejectsSoft404s(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Same friendly page for every path, always 200.
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "<html><body><h1>Oops! Page not found</h1></body></html>")
	}))
	defer srv.Close()

	result := runScan(t,
		WithTarget(srv.URL),
		WithLevel(1),
		WithWorkers(4),
	)

	if urls := findingURLs(result); len(urls) != 0 {
		t.Errorf("soft-404 server produced findings: %v", urls)
	}
	if result.Targets[0].Stats.Rejected == 0 {
		t.Error("rejections not counted")
	}
}

func TestScanRetriesTransportErrors(t *testing.T) {
	var envHits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/.env" {
			// Sever the first connection; the retry gets the file.
			if envHits.Add(1) == 1 {
				hj, ok := w.(http.Hijacker)
				if !ok {
					t.Error("response writer is not a hijacker")
					return
				}
				conn, _, err := hj.Hijack()
				if err != nil {
					t.Errorf("Hijack: %v", err)
					return
				}
				conn.Close()
				return
			}
			w.WriteHeader(http.StatusOK)
			fmt.Fprint(w, "DB_PASSWORD=hunter2\n")
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	result := runScan(t,
		WithTarget(srv.URL),
		WithLevel(0),
		WithWorkers(2),
		WithRetries(2),
	)

	urls := findingURLs(result)
	if len(urls) != 1 || urls[0] != srv.URL+"/.env" {
		t.Fatalf("findings = %v, want exactly %s", urls, srv.URL+"/.env")
	}
	if hits := envHits.Load(); hits < 2 {
		t.Errorf("/.env requested %d times, want at least 2", hits)
	}
	if errs := result.Targets[0].Errors; len(errs) != 0 {
		t.Errorf("recorded errors despite successful retry: %v", errs)
	}
}

func TestScanBaselineFilterDisabled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "<html><body><h1>Oops! Page not found</h1></body></html>")
	}))
	defer srv.Close()

	result := runScan(t,
		WithTarget(srv.URL),
		WithLevel(0),
		WithWorkers(4),
		WithBaselineFilter(false),
	)

	tr := result.Targets[0]
	if tr.Baseline != "disabled" {
		t.Errorf("Baseline = %q, want disabled", tr.Baseline)
	}
	// Every allowed-status response passes when the filter is off,
	// even the soft-404 page that it exists to reject.
	if len(tr.Findings) == 0 {
		t.Fatal("no findings with the baseline filter disabled")
	}
	for _, f := range tr.Findings {
		if f.Confidence != "medium" {
			t.Errorf("Confidence for %s = %q, want medium", f.URL, f.Confidence)
		}
	}
}

func TestScanAllowedStatusOverride(t *testing.T) {
	largeDenial := strings.Repeat("This directory is protected. Contact the administrator. ", 50)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/.htpasswd":
			w.WriteHeader(http.StatusForbidden)
			fmt.Fprint(w, largeDenial)
		case "/credentials.json":
			w.WriteHeader(http.StatusForbidden)
			fmt.Fprint(w, "Forbidden")
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	// Default status set ignores 403 entirely.
	result := runScan(t,
		WithTarget(srv.URL),
		WithLevel(0),
		WithWorkers(4),
	)
	if urls := findingURLs(result); len(urls) != 0 {
		t.Errorf("default status set accepted 403s: %v", urls)
	}

	// Allowing 403 accepts the large denial but still drops the
	// server's stock one-liner.
	result = runScan(t,
		WithTarget(srv.URL),
		WithLevel(0),
		WithWorkers(4),
		WithAllowStatuses(200, 206, 403),
	)
	urls := findingURLs(result)
	if len(urls) != 1 || urls[0] != srv.URL+"/.htpasswd" {
		t.Errorf("findings = %v, want only /.htpasswd", urls)
	}
}

func TestScanNoDuplicateFindings(t *testing.T) {
	srv := hard404Server(map[string]string{
		"/.env": "SECRET=1\n",
	})
	defer srv.Close()

	result := runScan(t,
		WithTarget(srv.URL),
		WithLevel(2),
		WithWorkers(8),
	)

	seen := make(map[string]bool)
	for _, tr := range result.Targets {
		for _, f := range tr.Findings {
			key := fmt.Sprintf("%s|%d|%d", f.URL, f.StatusCode, f.Size)
			if seen[key] {
				t.Errorf("duplicate finding %s", key)
			}
			seen[key] = true
		}
	}
}

func TestScanMultipleTargets(t *testing.T) {
	srvA := hard404Server(map[string]string{"/.env": "A=1\n"})
	defer srvA.Close()
	srvB := hard404Server(map[string]string{"/dump.sql": "-- dump\nDROP TABLE x;\n"})
	defer srvB.Close()

	result := runScan(t,
		WithTargets(srvA.URL, srvB.URL),
		WithLevel(0),
		WithWorkers(4),
	)

	if len(result.Targets) != 2 {
		t.Fatalf("got %d target results, want 2", len(result.Targets))
	}
	if result.Stats.Findings != 2 {
		t.Errorf("session findings = %d, want 2", result.Stats.Findings)
	}
	if result.Stats.ProbesCompleted != result.Targets[0].Stats.ProbesCompleted+result.Targets[1].Stats.ProbesCompleted {
		t.Error("session probe total does not match per-target sums")
	}
}

func TestScanCancellation(t *testing.T) {
	var served atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		served.Add(1)
		time.Sleep(20 * time.Millisecond)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	var buf bytes.Buffer
	s, err := New(
		WithTarget(srv.URL),
		WithLevel(3),
		WithBruteForce(true),
		WithWorkers(2),
		WithOutput(&buf),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	start := time.Now()
	result, err := s.Run(ctx)
	if err != nil {
		t.Fatalf("Run after cancel: %v", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Error("cancellation did not stop the scan promptly")
	}
	if result == nil || len(result.Targets) == 0 {
		t.Fatal("cancelled scan should still return partial results")
	}
	if result.Targets[0].Stats.ProbesCompleted >= result.Targets[0].Stats.CandidatesGenerated &&
		served.Load() > 1000 {
		t.Error("scan appears to have run to completion despite cancellation")
	}
}

func TestScanResumeSkipsProbedURLs(t *testing.T) {
	var envRequests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/.env" {
			envRequests.Add(1)
			fmt.Fprint(w, "SECRET=1\n")
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	stateFile := t.TempDir() + "/scan.db"

	// Simulate an interrupted scan that already probed /.env.
	store, err := state.NewBoltStore(stateFile)
	if err != nil {
		t.Fatalf("NewBoltStore: %v", err)
	}
	err = store.Save(&state.ScanState{
		Target:     srv.URL,
		Level:      0,
		StartedAt:  time.Now().Add(-time.Minute),
		Completed:  false,
		ProbedURLs: []string{srv.URL + "/.env"},
		Findings: []state.FindingRecord{
			{URL: srv.URL + "/.env", StatusCode: 200, Size: 9, Source: "specific", Confidence: "high", Timestamp: time.Now()},
		},
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	store.Close()

	result := runScan(t,
		WithTarget(srv.URL),
		WithLevel(0),
		WithWorkers(4),
		WithStateFile(stateFile),
	)

	if envRequests.Load() != 0 {
		t.Errorf("/.env probed %d times, want 0 on resume", envRequests.Load())
	}
	urls := findingURLs(result)
	found := false
	for _, u := range urls {
		if u == srv.URL+"/.env" {
			found = true
		}
	}
	if !found {
		t.Errorf("carried-over finding missing from %v", urls)
	}

	// The completed scan marks its state done; a fresh run starts over.
	reopened, err := state.NewBoltStore(stateFile)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	saved, err := reopened.Load(srv.URL)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if saved == nil || !saved.Completed {
		t.Error("finished scan should persist Completed state")
	}
}

func TestScanCustomHeadersSent(t *testing.T) {
	var sawHeader atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Bearer token123" {
			sawHeader.Store(true)
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	runScan(t,
		WithTarget(srv.URL),
		WithLevel(0),
		WithWorkers(2),
		WithHeaders(map[string]string{"Authorization": "Bearer token123"}),
	)

	if !sawHeader.Load() {
		t.Error("custom header not sent with probes")
	}
}

func TestScanRedirectsNotFollowed(t *testing.T) {
	var loginHits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login":
			loginHits.Add(1)
			fmt.Fprint(w, "login page")
		default:
			http.Redirect(w, r, "/login", http.StatusFound)
		}
	}))
	defer srv.Close()

	result := runScan(t,
		WithTarget(srv.URL),
		WithLevel(0),
		WithWorkers(2),
	)

	// 302 is not in the accepted status set, and probes must not chase
	// the redirect target.
	if urls := findingURLs(result); len(urls) != 0 {
		t.Errorf("redirects reported as findings: %v", urls)
	}
	if loginHits.Load() != 0 {
		t.Errorf("redirect target fetched %d times", loginHits.Load())
	}
}

func TestScannerRefusesConcurrentRuns(t *testing.T) {
	srv := hard404Server(nil)
	defer srv.Close()

	var buf bytes.Buffer
	s, err := New(WithTarget(srv.URL), WithLevel(0), WithOutput(&buf))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	s.running.Store(true)
	if _, err := s.Run(context.Background()); err == nil {
		t.Error("second concurrent Run should fail")
	}
	s.running.Store(false)
}

func TestPerTargetPath(t *testing.T) {
	cases := []struct {
		base   string
		target string
		want   string
	}{
		{"report.json", "http://shop.example.com", "report.shop.example.com.json"},
		{"out/report.json", "http://example.com:8080", "out/report.example.com_8080.json"},
		{"report", "http://example.com", "report.example.com"},
	}
	for _, tc := range cases {
		if got := perTargetPath(tc.base, tc.target); got != tc.want {
			t.Errorf("perTargetPath(%q, %q) = %q, want %q", tc.base, tc.target, got, tc.want)
		}
	}
}
