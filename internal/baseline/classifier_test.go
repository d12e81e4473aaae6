package baseline

import (
	"context"
	"strings"
	"testing"
)

// staticProbe returns the same outcome for every path.
func staticProbe(o Outcome) ProbeFunc {
	return func(ctx context.Context, url string) (Outcome, error) {
		return o, nil
	}
}

func establish(t *testing.T, config Config, probe ProbeFunc) *Classifier {
	t.Helper()
	c := New(config)
	if err := c.Establish(context.Background(), "http://example.com", probe); err != nil {
		t.Fatalf("Establish failed: %v", err)
	}
	if c.State() != StateReady {
		t.Fatalf("state = %v, want ready", c.State())
	}
	return c
}

func TestClassifier_Hard404Baseline(t *testing.T) {
	c := establish(t, DefaultConfig(), staticProbe(Outcome{Status: 404, Size: 0, Hash: "empty"}))

	if c.Permissive() {
		t.Fatal("consistent baseline should not be permissive")
	}

	// Anything echoing the 404 shape is rejected.
	v := c.Classify(Outcome{Status: 404, Size: 0, Hash: "empty"})
	if v.Accept {
		t.Error("404 response should be rejected")
	}

	// A real file with its own content is accepted.
	v = c.Classify(Outcome{Status: 200, Size: 5000, Hash: "realfile", ContentType: "application/zip"})
	if !v.Accept {
		t.Errorf("distinct 200 should be accepted, got reason %q", v.Reason)
	}
	if v.Confidence != ConfidenceHigh {
		t.Errorf("confidence = %v, want high", v.Confidence)
	}
}

func TestClassifier_Soft200Baseline(t *testing.T) {
	generic := Outcome{Status: 200, Size: 3000, Hash: "generic", ContentType: "text/html"}
	c := establish(t, DefaultConfig(), staticProbe(generic))

	// Candidates matching the generic page hash are baseline noise.
	v := c.Classify(generic)
	if v.Accept {
		t.Error("generic-page hash should be rejected")
	}
	if v.Reason != "baseline_hash" {
		t.Errorf("reason = %q, want baseline_hash", v.Reason)
	}

	// Same status and near-identical size is still baseline noise.
	v = c.Classify(Outcome{Status: 200, Size: 3050, Hash: "other", ContentType: "text/html"})
	if v.Accept {
		t.Error("baseline-sized 200 should be rejected")
	}

	// Genuinely different responses come through.
	v = c.Classify(Outcome{Status: 200, Size: 90000, Hash: "archive", ContentType: "application/zip"})
	if !v.Accept {
		t.Errorf("distinct response should be accepted, got reason %q", v.Reason)
	}
}

func TestClassifier_InconsistentBaselineGoesPermissive(t *testing.T) {
	i := 0
	varying := func(ctx context.Context, url string) (Outcome, error) {
		i++
		return Outcome{Status: 200, Size: int64(i * 10000), Hash: strings.Repeat("x", i)}, nil
	}

	config := DefaultConfig()
	config.Probes = 5
	c := establish(t, config, varying)

	if !c.Permissive() {
		t.Fatal("inconsistent baseline should fall back to permissive")
	}

	// Permissive mode still rejects verbatim sample hashes.
	v := c.Classify(Outcome{Status: 200, Size: 10000, Hash: "x"})
	if v.Accept {
		t.Error("verbatim sample hash should be rejected in permissive mode")
	}

	// Novel hashes are accepted at medium confidence.
	v = c.Classify(Outcome{Status: 200, Size: 777, Hash: "novel"})
	if !v.Accept {
		t.Errorf("novel response should be accepted, got reason %q", v.Reason)
	}
	if v.Confidence != ConfidenceMedium {
		t.Errorf("confidence = %v, want medium", v.Confidence)
	}
}

func TestClassifier_ProbeErrorsTolerated(t *testing.T) {
	failing := func(ctx context.Context, url string) (Outcome, error) {
		return Outcome{}, context.DeadlineExceeded
	}

	c := establish(t, DefaultConfig(), failing)
	if !c.Permissive() {
		t.Error("all-failed sanity check should degrade to permissive")
	}
}

func TestClassifier_StatusFiltering(t *testing.T) {
	c := establish(t, DefaultConfig(), staticProbe(Outcome{Status: 404, Hash: "nf"}))

	// 403 is not in the default success set.
	v := c.Classify(Outcome{Status: 403, Size: 9000, Hash: "protected"})
	if v.Accept {
		t.Error("403 should be filtered by default")
	}

	// With an explicit allow list, 403 findings surface.
	config := DefaultConfig()
	config.AllowStatuses = []int{403}
	c = establish(t, config, staticProbe(Outcome{Status: 404, Hash: "nf"}))

	v = c.Classify(Outcome{Status: 403, Size: 9000, Hash: "protected"})
	if !v.Accept {
		t.Errorf("allowed 403 should be accepted, got reason %q", v.Reason)
	}

	// But 200s are now excluded.
	v = c.Classify(Outcome{Status: 200, Size: 9000, Hash: "page"})
	if v.Accept {
		t.Error("200 should be filtered when allow list names only 403")
	}

	// And 404 never passes, even when allowed explicitly.
	config.AllowStatuses = []int{403, 404}
	c = establish(t, config, staticProbe(Outcome{Status: 404, Hash: "nf"}))
	v = c.Classify(Outcome{Status: 404, Size: 9000, Hash: "x"})
	if v.Accept {
		t.Error("404 must never be accepted")
	}
}

func TestClassifier_SmallAuthPagesRejected(t *testing.T) {
	config := DefaultConfig()
	config.AllowStatuses = []int{401, 403}
	c := establish(t, config, staticProbe(Outcome{Status: 404, Hash: "nf"}))

	v := c.Classify(Outcome{Status: 403, Size: 300, Hash: "denial"})
	if v.Accept {
		t.Error("small 403 body should be treated as the stock denial page")
	}

	v = c.Classify(Outcome{Status: 403, Size: 50000, Hash: "bigfile"})
	if !v.Accept {
		t.Errorf("large 403 body should be accepted, got reason %q", v.Reason)
	}
}

func TestClassifier_SizeBounds(t *testing.T) {
	config := DefaultConfig()
	config.MinSize = 100
	config.MaxSize = 10000
	c := establish(t, config, staticProbe(Outcome{Status: 404, Hash: "nf"}))

	if v := c.Classify(Outcome{Status: 200, Size: 50, Hash: "tiny"}); v.Accept {
		t.Error("undersized response should be rejected")
	}
	if v := c.Classify(Outcome{Status: 200, Size: 20000, Hash: "huge"}); v.Accept {
		t.Error("oversized response should be rejected")
	}
	if v := c.Classify(Outcome{Status: 200, Size: 5000, Hash: "ok"}); !v.Accept {
		t.Errorf("in-bounds response should be accepted, got reason %q", v.Reason)
	}
}

func TestClassifier_ContentTypeIgnore(t *testing.T) {
	config := DefaultConfig()
	config.IgnoreContentTypes = []string{"image/"}
	c := establish(t, config, staticProbe(Outcome{Status: 404, Hash: "nf"}))

	v := c.Classify(Outcome{Status: 200, Size: 5000, Hash: "pic", ContentType: "image/png"})
	if v.Accept {
		t.Error("ignored content type should be rejected")
	}
}

func TestClassifier_ErrorPageText(t *testing.T) {
	c := establish(t, DefaultConfig(), staticProbe(Outcome{Status: 404, Hash: "nf"}))

	page := []byte("<html><head><title>Oops</title></head><body><h1>Page not found</h1></body></html>")
	v := c.Classify(Outcome{
		Status:      200,
		Size:        int64(len(page)),
		Hash:        "errpage",
		ContentType: "text/html; charset=utf-8",
		Sample:      page,
	})
	if v.Accept {
		t.Error("templated error text should be rejected despite status 200")
	}
	if v.Reason != "error_page_text" {
		t.Errorf("reason = %q, want error_page_text", v.Reason)
	}
}

func TestClassifier_TruncatedLowersConfidence(t *testing.T) {
	c := establish(t, DefaultConfig(), staticProbe(Outcome{Status: 404, Hash: "nf"}))

	v := c.Classify(Outcome{Status: 200, Size: 10 * 1024 * 1024, Hash: "big", Truncated: true})
	if !v.Accept {
		t.Fatalf("truncated response should still be accepted, got reason %q", v.Reason)
	}
	if v.Confidence != ConfidenceLow {
		t.Errorf("confidence = %v, want low", v.Confidence)
	}
}

func TestImprobablePaths(t *testing.T) {
	paths := ImprobablePaths(5)
	if len(paths) != 5 {
		t.Fatalf("got %d paths, want 5", len(paths))
	}
	seen := make(map[string]bool)
	for _, p := range paths {
		if !strings.HasPrefix(p, "/") {
			t.Errorf("path %q should start with /", p)
		}
		if seen[p] {
			t.Errorf("duplicate path %q", p)
		}
		seen[p] = true
	}
}

func TestVisibleText(t *testing.T) {
	page := []byte(`<html><body><script>var x=1;</script><p>Hello   world</p></body></html>`)
	text := visibleText(page)
	if text != "Hello world" {
		t.Errorf("visibleText = %q, want %q", text, "Hello world")
	}
}
