package generate

import (
	"context"
	"strings"
	"testing"
)

func mustNew(t *testing.T, target string, config Config) *Generator {
	t.Helper()
	g, err := New(target, config)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return g
}

func urlSet(candidates []Candidate) map[string]bool {
	set := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		set[normalizeURL(c.URL)] = true
	}
	return set
}

func TestGenerator_NoDuplicates(t *testing.T) {
	g := mustNew(t, "http://example.com/app", Config{
		Level:          LevelExhaustive,
		BruteForce:     true,
		BruteRecursive: true,
		DomainWordlist: true,
		TestIndex:      true,
	})

	seen := make(map[string]bool)
	for _, c := range g.All() {
		key := normalizeURL(c.URL)
		if seen[key] {
			t.Fatalf("duplicate candidate %q", c.URL)
		}
		seen[key] = true
	}
}

func TestGenerator_LevelSubsets(t *testing.T) {
	config := func(l Level) Config {
		return Config{Level: l, BruteForce: true, TestIndex: true}
	}

	var prev map[string]bool
	for l := LevelCritical; l <= LevelExhaustive; l++ {
		g := mustNew(t, "http://example.com", config(l))
		current := urlSet(g.All())

		for u := range prev {
			if !current[u] {
				t.Errorf("level %d lost candidate %q present at level %d", l, u, l-1)
			}
		}
		prev = current
	}
}

func TestGenerator_Level0CriticalOnly(t *testing.T) {
	g := mustNew(t, "http://example.com", Config{Level: LevelCritical})
	all := g.All()

	// Critical files plus a handful of domain tokens; no sweeps.
	for _, c := range all {
		if c.Source != SourceCritical && c.Source != SourceDomain {
			t.Errorf("level 0 emitted %q from source %s", c.URL, c.Source)
		}
	}

	criticalCount := 0
	for _, c := range all {
		if c.Source == SourceCritical {
			criticalCount++
		}
	}
	if criticalCount != len(CriticalFiles) {
		t.Errorf("critical candidates = %d, want %d", criticalCount, len(CriticalFiles))
	}
}

func TestGenerator_CriticalFilesFirst(t *testing.T) {
	g := mustNew(t, "http://example.com", Config{Level: LevelBalanced, BruteForce: true})
	all := g.All()

	for i, f := range CriticalFiles {
		want := "http://example.com/" + f
		if all[i].URL != want {
			t.Fatalf("candidate %d = %q, want %q", i, all[i].URL, want)
		}
		if !all[i].Interesting {
			t.Errorf("critical file %q should be flagged interesting", f)
		}
	}
}

func TestGenerator_TierOrdering(t *testing.T) {
	g := mustNew(t, "http://example.com/app", Config{
		Level:          LevelBalanced,
		BruteForce:     true,
		BruteRecursive: true,
	})

	lastTier := 0
	for _, c := range g.All() {
		if c.Tier < lastTier {
			t.Fatalf("tier regression: %d after %d at %q", c.Tier, lastTier, c.URL)
		}
		lastTier = c.Tier
	}
}

func TestGenerator_ExtensionSweep(t *testing.T) {
	g := mustNew(t, "http://example.com/app", Config{Level: LevelQuick})

	wantSome := map[string]bool{
		"http://example.com/app.bak": false,
		"http://example.com/app.old": false,
		"http://example.com/app.sql": false,
	}
	for _, c := range g.All() {
		if _, ok := wantSome[c.URL]; ok {
			wantSome[c.URL] = true
		}
	}
	for u, found := range wantSome {
		if !found {
			t.Errorf("expected sweep candidate %q", u)
		}
	}
}

func TestGenerator_DomainOnlySweepYieldsDotfiles(t *testing.T) {
	g := mustNew(t, "http://example.com", Config{Level: LevelQuick})

	found := false
	for _, c := range g.All() {
		if c.URL == "http://example.com/.bak" {
			found = true
		}
	}
	if !found {
		t.Error("bare-domain sweep should emit root dotfiles like /.bak")
	}
}

func TestGenerator_IndexVariants(t *testing.T) {
	g := mustNew(t, "http://example.com", Config{Level: LevelQuick, TestIndex: true})

	found := false
	for _, c := range g.All() {
		if c.URL == "http://example.com/index.bak" && c.Source == SourceIndex {
			found = true
		}
	}
	if !found {
		t.Error("expected index.bak variant with test-index enabled")
	}

	// Index variants only apply to bare-domain targets.
	g = mustNew(t, "http://example.com/app", Config{Level: LevelQuick, TestIndex: true})
	for _, c := range g.All() {
		if c.Source == SourceIndex {
			t.Errorf("path target emitted index variant %q", c.URL)
		}
	}
}

func TestGenerator_BruteForceLanguageFilter(t *testing.T) {
	en := mustNew(t, "http://example.com", Config{Level: LevelCritical, BruteForce: true, Language: "en"})
	enSet := urlSet(en.All())

	if !enSet["http://example.com/password"] {
		t.Error("english brute force should include /password")
	}
	if enSet["http://example.com/senha"] {
		t.Error("english brute force should not include portuguese words")
	}

	ptbr := mustNew(t, "http://example.com", Config{Level: LevelCritical, BruteForce: true, Language: "pt-br"})
	if !urlSet(ptbr.All())["http://example.com/senha"] {
		t.Error("pt-br brute force should include /senha")
	}
}

func TestGenerator_ExtraWords(t *testing.T) {
	g := mustNew(t, "http://example.com", Config{
		Level:      LevelCritical,
		ExtraWords: []string{"customword"},
	})
	if !urlSet(g.All())["http://example.com/customword"] {
		t.Error("operator wordlist entries should be emitted")
	}
}

func TestGenerator_DomainWordlist(t *testing.T) {
	g := mustNew(t, "http://shop.example.com", Config{Level: LevelCritical, DomainWordlist: true})
	set := urlSet(g.All())

	if !set["http://shop.example.com/example.zip"] {
		t.Error("expected domain-derived /example.zip")
	}
	if !set["http://shop.example.com/shop_example.sql"] {
		t.Error("expected subdomain permutation /shop_example.sql")
	}
}

func TestGenerator_IPTargetSkipsDomainTests(t *testing.T) {
	g := mustNew(t, "http://192.168.1.10", Config{Level: LevelCritical, DomainWordlist: true, BruteForce: true})

	ipPathSeen := false
	for _, c := range g.All() {
		if c.Source == SourceDomain {
			t.Fatalf("IP target emitted domain candidate %q", c.URL)
		}
		if c.Source == SourceIPPath {
			ipPathSeen = true
		}
		// Words that would read as part of the IP are filtered.
		if strings.Contains(c.URL, "/.git") {
			t.Errorf("IP target emitted unsafe word candidate %q", c.URL)
		}
	}
	if !ipPathSeen {
		t.Error("IP target should draw from the common IP path catalog")
	}
}

func TestGenerator_RecursiveExpansion(t *testing.T) {
	g := mustNew(t, "http://example.com/a/b/c", Config{Level: LevelQuick, BruteRecursive: true})
	set := urlSet(g.All())

	// Parent prefixes re-enter the sweep.
	if !set["http://example.com/a/b.bak"] {
		t.Error("expected recursive sweep at /a/b")
	}
	if !set["http://example.com/a.bak"] {
		t.Error("expected recursive sweep at /a")
	}
	// Critical files surface at parent levels too.
	if !set["http://example.com/a/.env"] {
		t.Error("expected critical file at parent prefix /a")
	}
}

func TestGenerator_CustomExtensions(t *testing.T) {
	g := mustNew(t, "http://example.com/app", Config{
		Level:      LevelBalanced,
		Extensions: []string{"foo", "bar"},
	})

	extCount := 0
	for _, c := range g.All() {
		if c.Source == SourceExtension {
			extCount++
			if c.Extension != "foo" && c.Extension != "bar" {
				t.Errorf("unexpected extension %q", c.Extension)
			}
		}
	}
	if extCount != 2 {
		t.Errorf("extension candidates = %d, want 2", extCount)
	}
}

func TestGenerator_Stream(t *testing.T) {
	g := mustNew(t, "http://example.com", Config{Level: LevelCritical})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var streamed []Candidate
	for c := range g.Stream(ctx) {
		streamed = append(streamed, c)
	}
	if len(streamed) == 0 {
		t.Fatal("stream produced nothing")
	}
}

func TestGenerator_StreamCancellation(t *testing.T) {
	g := mustNew(t, "http://example.com/app", Config{Level: LevelExhaustive, BruteForce: true})

	ctx, cancel := context.WithCancel(context.Background())
	ch := g.Stream(ctx)
	<-ch
	cancel()

	// The channel must close shortly after cancellation.
	for range ch {
	}
}

func TestNew_Validation(t *testing.T) {
	if _, err := New("http://example.com", Config{Level: 9}); err == nil {
		t.Error("expected error for invalid level")
	}
	if _, err := New("example.com", Config{}); err == nil {
		t.Error("expected error for URL without scheme")
	}
	if _, err := New("ftp://example.com", Config{}); err == nil {
		t.Error("expected error for unsupported scheme")
	}
	if _, err := New("http://example.com", Config{Language: "fr"}); err == nil {
		t.Error("expected error for unknown language")
	}
}
