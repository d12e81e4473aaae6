package generate

import (
	"net/url"
	"strings"
)

// Context clue vocabularies. A hostname or path containing one of
// these shifts which extension categories get probed first.
var (
	backupContextHints = []string{
		"backup", "bkp", "archive", "old", "temp", "tmp",
		"staging", "test", "dev", "development",
	}
	devContextHints = []string{
		"dev", "test", "staging", "beta", "alpha",
		"demo", "sandbox", "lab", "experimental",
	}
)

// targetContext summarizes clues read off the target URL.
type targetContext struct {
	likelyBackup bool
	likelyDev    bool
}

// analyzeContext inspects host and path for reordering hints.
func analyzeContext(u *url.URL) targetContext {
	host := strings.ToLower(u.Hostname())
	path := strings.ToLower(u.Path)

	var ctx targetContext
	for _, hint := range backupContextHints {
		if strings.Contains(host, hint) || strings.Contains(path, hint) {
			ctx.likelyBackup = true
			break
		}
	}
	for _, hint := range devContextHints {
		if strings.Contains(host, hint) {
			ctx.likelyDev = true
			break
		}
	}
	return ctx
}

// Priority membership sets, computed once.
var (
	highPriorityExts   = memberSet(concat(ArchiveExtensions, BackupSuffixes, DatabaseExtensions))
	mediumPriorityExts = memberSet(concat(ConfigLogExtensions, DocumentBackupExtensions))
	lowPriorityExts    = memberSet(CodeBackupExtensions)
)

func memberSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, s := range list {
		m[s] = struct{}{}
	}
	return m
}

// OptimizeExtensions reorders an extension list so the categories most
// likely to hit on this particular target come first. The list
// content never changes, only its order.
func OptimizeExtensions(extensions []string, u *url.URL) []string {
	if len(extensions) == 0 {
		return extensions
	}

	ctx := analyzeContext(u)

	var high, medium, low, unknown []string
	for _, ext := range extensions {
		switch {
		case contains(highPriorityExts, ext):
			high = append(high, ext)
		case contains(mediumPriorityExts, ext):
			medium = append(medium, ext)
		case contains(lowPriorityExts, ext):
			low = append(low, ext)
		default:
			unknown = append(unknown, ext)
		}
	}

	switch {
	case ctx.likelyBackup:
		// Whole-site archives pay off most on backup-flavored hosts.
		return concat(archivesFirst(high), medium, unknown, low)
	case ctx.likelyDev:
		return concat(medium, high, unknown, low)
	default:
		return concat(high, medium, unknown, low)
	}
}

var archiveExts = memberSet(ArchiveExtensions)

// archivesFirst stably moves archive extensions to the front.
func archivesFirst(exts []string) []string {
	var archives, rest []string
	for _, ext := range exts {
		if contains(archiveExts, ext) {
			archives = append(archives, ext)
		} else {
			rest = append(rest, ext)
		}
	}
	return append(archives, rest...)
}

func contains(set map[string]struct{}, s string) bool {
	_, ok := set[s]
	return ok
}
