// Package generate produces the ordered candidate sequence for a scan.
//
// Candidates come out in strict priority tiers: critical filenames
// first, then index variants, the extension sweep, brute-force
// keywords, domain-derived names, and finally recursive expansion of
// parent directories. A seen-set keeps the sequence free of repeats
// no matter how the tiers overlap.
package generate

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PentesterFlow/leftover/internal/errors"
)

// Source names which generation step produced a candidate.
type Source string

const (
	SourceCritical  Source = "critical"
	SourceIndex     Source = "index"
	SourceExtension Source = "extension"
	SourceBrute     Source = "brute-force"
	SourceDomain    Source = "domain"
	SourceIPPath    Source = "ip-path"
	SourceRecursive Source = "recursive"
)

// Candidate is one URL to probe, with generation metadata.
type Candidate struct {
	URL         string
	Tier        int
	Source      Source
	Extension   string
	Interesting bool
}

// Config controls candidate generation for one target.
type Config struct {
	Level          Level
	BruteForce     bool
	BruteRecursive bool
	DomainWordlist bool
	TestIndex      bool
	// Language filters the brute-force vocabulary: "en", "pt-br", "all".
	Language string
	// ExtraWords come from an operator-supplied wordlist file.
	ExtraWords []string
	// Extensions overrides the level's extension set when non-empty.
	Extensions []string
}

// Generator emits the candidate sequence for a single target. Not
// restartable; create a new one per scan.
type Generator struct {
	config  Config
	target  *url.URL
	level   LevelConfig
	exts    []string
	isIP    bool
	seen    map[string]struct{}
	emitted int
}

// New parses the target and prepares the catalogs for its scan level.
func New(target string, config Config) (*Generator, error) {
	if !config.Level.Valid() {
		return nil, errors.NewConfigError(fmt.Sprintf("scan level %d out of range 0-4", config.Level), nil)
	}
	if config.Language == "" {
		config.Language = "all"
	}
	switch config.Language {
	case "en", "pt-br", "all":
	default:
		return nil, errors.NewConfigError(fmt.Sprintf("unknown wordlist language %q", config.Language), nil)
	}

	u, err := url.Parse(target)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errors.NewConfigError(fmt.Sprintf("invalid target URL %q", target), err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.NewConfigError(fmt.Sprintf("unsupported scheme %q", u.Scheme), nil)
	}

	level := ConfigForLevel(config.Level)
	exts := level.Extensions
	if len(config.Extensions) > 0 {
		exts = dedup(config.Extensions)
	}
	exts = OptimizeExtensions(exts, u)

	return &Generator{
		config: config,
		target: u,
		level:  level,
		exts:   exts,
		isIP:   isIPTarget(u),
		seen:   make(map[string]struct{}),
	}, nil
}

// Emitted returns how many candidates have been produced so far.
func (g *Generator) Emitted() int {
	return g.emitted
}

// Stream produces candidates on a channel until the sequence is
// exhausted or the context is cancelled.
func (g *Generator) Stream(ctx context.Context) <-chan Candidate {
	out := make(chan Candidate)
	go func() {
		defer close(out)
		g.produce(func(c Candidate) bool {
			select {
			case out <- c:
				return true
			case <-ctx.Done():
				return false
			}
		})
	}()
	return out
}

// All collects the full sequence. Intended for tests and dry runs.
func (g *Generator) All() []Candidate {
	var all []Candidate
	g.produce(func(c Candidate) bool {
		all = append(all, c)
		return true
	})
	return all
}

// produce walks the tiers in priority order, yielding each candidate
// once. yield returning false stops production.
func (g *Generator) produce(yield func(Candidate) bool) {
	basePath := strings.TrimSuffix(g.target.Path, "/")

	if !g.emitSpecificFiles(yield, basePath, 0) {
		return
	}
	if !g.emitIndexVariants(yield) {
		return
	}
	if !g.emitExtensionSweep(yield, basePath, 2, SourceExtension) {
		return
	}
	if !g.emitBruteForce(yield, basePath, 3, SourceBrute) {
		return
	}
	if g.isIP {
		if !g.emitIPPaths(yield, basePath) {
			return
		}
	} else if !g.emitDomainDerived(yield, basePath) {
		return
	}
	g.emitRecursive(yield, basePath)
}

// emitSpecificFiles probes complete filenames under dir.
func (g *Generator) emitSpecificFiles(yield func(Candidate) bool, dir string, tier int) bool {
	for i, f := range g.level.SpecificFiles {
		critical := i < len(CriticalFiles) && tier == 0
		c := Candidate{
			URL:         g.buildURL(dir + "/" + f),
			Tier:        tier,
			Source:      SourceCritical,
			Interesting: critical,
		}
		if tier > 0 {
			c.Source = SourceRecursive
		}
		if !g.yieldNew(yield, c) {
			return false
		}
	}
	return true
}

// emitIndexVariants probes index.<ext> at the root of bare-domain
// targets.
func (g *Generator) emitIndexVariants(yield func(Candidate) bool) bool {
	if !g.config.TestIndex || g.target.Path != "" && g.target.Path != "/" {
		return true
	}
	for _, ext := range g.exts {
		c := Candidate{
			URL:       g.buildURL("/index." + ext),
			Tier:      1,
			Source:    SourceIndex,
			Extension: ext,
		}
		if !g.yieldNew(yield, c) {
			return false
		}
	}
	return true
}

// emitExtensionSweep appends each extension to the base path. A bare
// domain yields root dotfiles ("/.bak"); a path target yields
// sibling backups ("/app.bak").
func (g *Generator) emitExtensionSweep(yield func(Candidate) bool, basePath string, tier int, source Source) bool {
	for _, ext := range g.exts {
		c := Candidate{
			URL:       g.buildURL(basePath + "." + ext),
			Tier:      tier,
			Source:    source,
			Extension: ext,
		}
		if !g.yieldNew(yield, c) {
			return false
		}
	}
	return true
}

// emitBruteForce crosses the keyword vocabulary with the leaf
// directory.
func (g *Generator) emitBruteForce(yield func(Candidate) bool, dir string, tier int, source Source) bool {
	words := g.bruteWords()
	for _, w := range words {
		c := Candidate{
			URL:    g.buildURL(dir + "/" + w),
			Tier:   tier,
			Source: source,
		}
		if !g.yieldNew(yield, c) {
			return false
		}
	}
	return true
}

// bruteWords assembles the keyword vocabulary for this scan.
func (g *Generator) bruteWords() []string {
	words := g.level.Words
	if g.config.BruteForce {
		words = concat(words, WordsByLanguage(g.config.Language))
	}
	words = dedup(concat(words, g.config.ExtraWords))
	if g.isIP {
		words = filterIPSafe(words)
	}
	return words
}

// filterIPSafe drops words that would read as part of the IP itself
// (leading dots, VCS dirs) when appended to a numeric host.
func filterIPSafe(words []string) []string {
	out := words[:0:0]
	for _, w := range words {
		if strings.HasPrefix(w, ".") || strings.Contains(w, ".env.") || strings.Contains(w, ".git") {
			continue
		}
		out = append(out, w)
	}
	return out
}

// emitDomainDerived probes the target's own name components: first as
// directories, then, when enabled, as generated backup filenames.
func (g *Generator) emitDomainDerived(yield func(Candidate) bool, basePath string) bool {
	for _, token := range domainPathTokens(g.target) {
		c := Candidate{
			URL:    g.buildURL("/" + token),
			Tier:   4,
			Source: SourceDomain,
		}
		if !g.yieldNew(yield, c) {
			return false
		}
	}

	if !g.config.DomainWordlist {
		return true
	}
	for _, w := range DomainWordlist(g.target) {
		c := Candidate{
			URL:         g.buildURL(basePath + "/" + w),
			Tier:        4,
			Source:      SourceDomain,
			Interesting: true,
		}
		if !g.yieldNew(yield, c) {
			return false
		}
	}
	return true
}

// emitIPPaths substitutes the domain tier for IP-addressed targets.
func (g *Generator) emitIPPaths(yield func(Candidate) bool, basePath string) bool {
	paths := append([]string{}, CommonIPPaths...)
	paths = append(paths, CommonPorts...)
	paths = append(paths, g.target.Hostname())

	for _, p := range paths {
		c := Candidate{
			URL:    g.buildURL(basePath + "/" + p),
			Tier:   4,
			Source: SourceIPPath,
		}
		if !g.yieldNew(yield, c) {
			return false
		}
	}
	return true
}

// emitRecursive re-runs the sweep and brute tiers at every parent
// directory of the target path. The prefixes are walked from an
// explicit stack so expansion stays bounded and cancellable.
func (g *Generator) emitRecursive(yield func(Candidate) bool, basePath string) bool {
	if !g.config.BruteRecursive || basePath == "" {
		return true
	}

	var stack []string
	prefix := basePath
	for {
		idx := strings.LastIndex(prefix, "/")
		if idx < 0 {
			break
		}
		prefix = prefix[:idx]
		stack = append(stack, prefix)
		if prefix == "" {
			break
		}
	}

	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !g.emitSpecificFiles(yield, dir, 5) {
			return false
		}
		if dir != "" {
			if !g.emitExtensionSweep(yield, dir, 5, SourceRecursive) {
				return false
			}
		}
		if !g.emitBruteForce(yield, dir, 5, SourceRecursive) {
			return false
		}
	}
	return true
}

// yieldNew suppresses duplicates and forwards fresh candidates.
func (g *Generator) yieldNew(yield func(Candidate) bool, c Candidate) bool {
	key := normalizeURL(c.URL)
	if _, ok := g.seen[key]; ok {
		return true
	}
	g.seen[key] = struct{}{}
	g.emitted++
	return yield(c)
}

// buildURL assembles an absolute URL for a path on the target host.
func (g *Generator) buildURL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return g.target.Scheme + "://" + g.target.Host + path
}

// normalizeURL is the dedup key: scheme and host case-folded, path
// kept verbatim.
func normalizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return strings.ToLower(u.Scheme) + "://" + strings.ToLower(u.Host) + u.Path
}
