package generate

import "fmt"

// Level selects how much of the catalogs a scan covers, 0 through 4.
// Each level's candidate set contains every lower level's set; the
// construction below builds each level by appending to the previous
// one, which makes the containment structural rather than accidental.
type Level int

const (
	LevelCritical   Level = 0 // critical files only, around 15 probes
	LevelQuick      Level = 1 // plus the top backup extensions
	LevelBalanced   Level = 2 // common targets, the default
	LevelDeep       Level = 3 // full catalogs minus low-yield extras
	LevelExhaustive Level = 4 // everything
)

// DefaultLevel is used when no level flag is given.
const DefaultLevel = LevelBalanced

// Valid reports whether the level is in range.
func (l Level) Valid() bool {
	return l >= LevelCritical && l <= LevelExhaustive
}

func (l Level) String() string {
	switch l {
	case LevelCritical:
		return "critical"
	case LevelQuick:
		return "quick"
	case LevelBalanced:
		return "balanced"
	case LevelDeep:
		return "deep"
	case LevelExhaustive:
		return "exhaustive"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// LevelConfig is the catalog slice a level covers.
type LevelConfig struct {
	Extensions    []string
	Words         []string
	SpecificFiles []string
}

// quickWords seed the balanced level's brute-force vocabulary.
var quickWords = []string{
	"backup", "old", "temp", "test", "dev", "staging",
	"archive", "copy", "original", "previous",
}

// ConfigForLevel returns the catalogs for a scan level. Out-of-range
// levels clamp to the nearest valid one.
func ConfigForLevel(level Level) LevelConfig {
	if level < LevelCritical {
		level = LevelCritical
	}
	if level > LevelExhaustive {
		level = LevelExhaustive
	}

	c := LevelConfig{
		SpecificFiles: CriticalFiles,
	}
	if level == LevelCritical {
		return c
	}

	c.Extensions = head(CriticalBackupExtensions, 15)
	if level == LevelQuick {
		return c
	}

	c.Extensions = dedup(concat(
		c.Extensions,
		CriticalBackupExtensions,
		ConfigLogExtensions,
		head(SecurityExtensions, 20),
		head(DatabaseExtensions, 10),
		head(ConfigExtensions, 15),
		head(CodeBackupExtensions, 20),
	))
	c.Words = quickWords
	c.SpecificFiles = dedup(concat(c.SpecificFiles, head(SpecificFiles, 30)))
	if level == LevelBalanced {
		return c
	}

	// Deep: every catalog except the low-yield extras.
	c.Extensions = dedup(concat(
		c.Extensions,
		SecurityExtensions,
		CodeBackupExtensions,
		DatabaseExtensions,
		ConfigExtensions,
		ArchiveExtensions,
		DocumentBackupExtensions,
		BuildConfigExtensions,
		IDELeftoverExtensions,
		VCSLeftoverExtensions,
	))
	c.Words = dedup(concat(
		c.Words,
		DefaultFilesWords,
		head(BackupDirectoryWords, 40),
		WebRelatedWords,
		head(ENCommonWords, 40),
		head(PTBRCommonWords, 30),
		VersionControlWords,
		head(DateVersionWords, 20),
	))
	c.SpecificFiles = dedup(concat(c.SpecificFiles, SpecificFiles, VCSFiles))
	if level == LevelDeep {
		return c
	}

	// Exhaustive: everything, extras included.
	c.Extensions = dedup(concat(c.Extensions, ExtrasExtensions))
	c.Words = dedup(concat(c.Words, WordsByLanguage("all")))
	return c
}
