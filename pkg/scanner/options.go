package scanner

import (
	"io"
	"time"

	"github.com/PentesterFlow/leftover/internal/logger"
	"github.com/PentesterFlow/leftover/internal/metrics"
)

// Option is a functional option for configuring the Scanner.
type Option func(*Scanner) error

// WithTarget adds a target URL to scan.
func WithTarget(url string) Option {
	return func(s *Scanner) error {
		s.config.Targets = append(s.config.Targets, url)
		return nil
	}
}

// WithTargets sets the full target list.
func WithTargets(urls ...string) Option {
	return func(s *Scanner) error {
		s.config.Targets = urls
		return nil
	}
}

// WithLevel sets the scan level (0-4).
func WithLevel(level int) Option {
	return func(s *Scanner) error {
		s.config.Level = level
		return nil
	}
}

// WithWorkers sets the number of concurrent probe workers.
func WithWorkers(n int) Option {
	return func(s *Scanner) error {
		if n < 1 {
			n = 1
		}
		s.config.Workers = n
		return nil
	}
}

// WithAdaptive enables/disables latency-based worker scaling.
func WithAdaptive(enabled bool) Option {
	return func(s *Scanner) error {
		s.config.Adaptive = enabled
		return nil
	}
}

// WithBruteForce enables wordlist brute forcing.
func WithBruteForce(enabled bool) Option {
	return func(s *Scanner) error {
		s.config.BruteForce = enabled
		return nil
	}
}

// WithBruteRecursive expands brute forcing into parent directories.
func WithBruteRecursive(enabled bool) Option {
	return func(s *Scanner) error {
		s.config.BruteRecursive = enabled
		if enabled {
			s.config.BruteForce = true
		}
		return nil
	}
}

// WithDomainWordlist enables domain-derived backup names.
func WithDomainWordlist(enabled bool) Option {
	return func(s *Scanner) error {
		s.config.DomainWordlist = enabled
		return nil
	}
}

// WithTestIndex enables index file variants on bare domains.
func WithTestIndex(enabled bool) Option {
	return func(s *Scanner) error {
		s.config.TestIndex = enabled
		return nil
	}
}

// WithLanguage sets the wordlist language.
func WithLanguage(lang string) Option {
	return func(s *Scanner) error {
		s.config.Language = lang
		return nil
	}
}

// WithExtraWords merges extra words into the brute force wordlist.
func WithExtraWords(words ...string) Option {
	return func(s *Scanner) error {
		s.config.ExtraWords = append(s.config.ExtraWords, words...)
		return nil
	}
}

// WithExtensions overrides the extension list.
func WithExtensions(exts ...string) Option {
	return func(s *Scanner) error {
		s.config.Extensions = exts
		return nil
	}
}

// WithRateLimit caps the global request rate.
func WithRateLimit(rps float64) Option {
	return func(s *Scanner) error {
		s.config.RequestsPerSecond = rps
		return nil
	}
}

// WithDelay sets a fixed delay between probes from the same worker.
func WithDelay(delay time.Duration) Option {
	return func(s *Scanner) error {
		s.config.Delay = delay
		return nil
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Scanner) error {
		s.config.Timeout = timeout
		return nil
	}
}

// WithTLSVerify enables TLS certificate verification.
func WithTLSVerify(verify bool) Option {
	return func(s *Scanner) error {
		s.config.SkipTLSVerify = !verify
		return nil
	}
}

// WithHeaders sets custom headers for all requests.
func WithHeaders(headers map[string]string) Option {
	return func(s *Scanner) error {
		if s.config.Headers == nil {
			s.config.Headers = make(map[string]string)
		}
		for k, v := range headers {
			s.config.Headers[k] = v
		}
		return nil
	}
}

// WithUserAgent fixes the User-Agent string.
func WithUserAgent(ua string) Option {
	return func(s *Scanner) error {
		s.config.UserAgent = ua
		return nil
	}
}

// WithProxy sets the proxy URL.
func WithProxy(proxy string) Option {
	return func(s *Scanner) error {
		s.config.Proxy = proxy
		return nil
	}
}

// WithAllowStatuses sets the status codes accepted as findings.
func WithAllowStatuses(statuses ...int) Option {
	return func(s *Scanner) error {
		s.config.AllowStatuses = statuses
		return nil
	}
}

// WithIgnoreStatuses sets status codes that are always rejected.
func WithIgnoreStatuses(statuses ...int) Option {
	return func(s *Scanner) error {
		s.config.IgnoreStatuses = statuses
		return nil
	}
}

// WithIgnoreContentTypes rejects responses whose Content-Type contains
// any of the given substrings.
func WithIgnoreContentTypes(types ...string) Option {
	return func(s *Scanner) error {
		s.config.IgnoreContentTypes = types
		return nil
	}
}

// WithSizeBounds sets response size bounds (0 = unbounded).
func WithSizeBounds(min, max int64) Option {
	return func(s *Scanner) error {
		s.config.MinSize = min
		s.config.MaxSize = max
		return nil
	}
}

// WithBaseline tunes baseline sampling.
func WithBaseline(probes int, consensus float64) Option {
	return func(s *Scanner) error {
		s.config.BaselineProbes = probes
		s.config.BaselineConsensus = consensus
		return nil
	}
}

// WithRetries sets how many times a probe is retried after a
// transport or timeout error. Zero, the default, fails the probe on
// the first error.
func WithRetries(n int) Option {
	return func(s *Scanner) error {
		s.config.Retries = n
		return nil
	}
}

// WithBaselineFilter toggles the baseline sanity check. Disabled,
// the scanner classifies with the static filters only and every
// accepted response carries medium confidence.
func WithBaselineFilter(enabled bool) Option {
	return func(s *Scanner) error {
		s.config.NoBaselineFilter = !enabled
		return nil
	}
}

// WithOutput sets the output writer.
func WithOutput(w io.Writer) Option {
	return func(s *Scanner) error {
		s.outputWriter = w
		return nil
	}
}

// WithOutputFile sets the report file path.
func WithOutputFile(path string) Option {
	return func(s *Scanner) error {
		s.config.Output.FilePath = path
		s.config.Output.Format = "json"
		return nil
	}
}

// WithStreamMode enables streaming output mode.
func WithStreamMode(stream bool) Option {
	return func(s *Scanner) error {
		s.config.Output.Stream = stream
		return nil
	}
}

// WithStateFile enables resumable scans backed by a state file.
func WithStateFile(path string) Option {
	return func(s *Scanner) error {
		s.config.StateFile = path
		return nil
	}
}

// WithVerbose enables/disables verbose logging.
func WithVerbose(verbose bool) Option {
	return func(s *Scanner) error {
		s.config.Verbose = verbose
		return nil
	}
}

// WithDebug enables/disables debug mode.
func WithDebug(debug bool) Option {
	return func(s *Scanner) error {
		s.config.Debug = debug
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Scanner) error {
		s.logger = l
		return nil
	}
}

// WithMetrics sets a custom metrics collector.
func WithMetrics(m *metrics.Collector) Option {
	return func(s *Scanner) error {
		s.metrics = m
		return nil
	}
}

// WithConfig sets the entire configuration.
func WithConfig(config *Config) Option {
	return func(s *Scanner) error {
		s.config = config
		return nil
	}
}

// WithProgress enables/disables the progress bar.
func WithProgress(enabled bool) Option {
	return func(s *Scanner) error {
		s.showProgress = enabled
		return nil
	}
}
