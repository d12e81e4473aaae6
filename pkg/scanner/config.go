package scanner

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/PentesterFlow/leftover/internal/generate"
)

// Config holds all scanner configuration.
type Config struct {
	// Targets to scan
	Targets []string `json:"targets" yaml:"targets"`

	// Scan level (0-4)
	Level int `json:"level" yaml:"level"`

	// Enable wordlist brute forcing
	BruteForce bool `json:"brute_force" yaml:"brute_force"`

	// Expand brute forcing into parent directories
	BruteRecursive bool `json:"brute_recursive" yaml:"brute_recursive"`

	// Test domain-derived backup names (example.com -> example.zip)
	DomainWordlist bool `json:"domain_wordlist" yaml:"domain_wordlist"`

	// Test index file variants on bare domains
	TestIndex bool `json:"test_index" yaml:"test_index"`

	// Wordlist language: en, pt-br, or all
	Language string `json:"language" yaml:"language"`

	// Extra words merged into the brute force wordlist
	ExtraWords []string `json:"extra_words" yaml:"extra_words"`

	// Override the extension list entirely
	Extensions []string `json:"extensions" yaml:"extensions"`

	// Number of concurrent probe workers
	Workers int `json:"workers" yaml:"workers"`

	// Adjust worker count from observed latency
	Adaptive bool `json:"adaptive" yaml:"adaptive"`

	// Global request rate cap (0 = uncapped)
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`

	// Fixed delay between probes from the same worker
	Delay time.Duration `json:"delay" yaml:"delay"`

	// Request timeout
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// Retries per probe on transport and timeout errors (0 = none)
	Retries int `json:"retries" yaml:"retries"`

	// Skip TLS certificate verification
	SkipTLSVerify bool `json:"skip_tls_verify" yaml:"skip_tls_verify"`

	// Custom headers for all requests
	Headers map[string]string `json:"headers" yaml:"headers"`

	// Fixed User-Agent (empty rotates built-in agents)
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// Proxy URL
	Proxy string `json:"proxy" yaml:"proxy"`

	// Status codes accepted as findings (default 200, 206)
	AllowStatuses []int `json:"allow_statuses" yaml:"allow_statuses"`

	// Status codes always rejected
	IgnoreStatuses []int `json:"ignore_statuses" yaml:"ignore_statuses"`

	// Content-Type substrings rejected
	IgnoreContentTypes []string `json:"ignore_content_types" yaml:"ignore_content_types"`

	// Response size bounds (0 = unbounded)
	MinSize int64 `json:"min_size" yaml:"min_size"`
	MaxSize int64 `json:"max_size" yaml:"max_size"`

	// Baseline sampling
	BaselineProbes    int     `json:"baseline_probes" yaml:"baseline_probes"`
	BaselineConsensus float64 `json:"baseline_consensus" yaml:"baseline_consensus"`
	SizeTolerance     float64 `json:"size_tolerance" yaml:"size_tolerance"`

	// Skip the baseline sanity check and classify with the static
	// filters only
	NoBaselineFilter bool `json:"no_baseline_filter" yaml:"no_baseline_filter"`

	// Verdict cache capacity
	CacheSize int `json:"cache_size" yaml:"cache_size"`

	// Output configuration
	Output OutputConfig `json:"output" yaml:"output"`

	// State file for resumable scans (empty disables persistence)
	StateFile string `json:"state_file" yaml:"state_file"`

	// Verbose logging
	Verbose bool `json:"verbose" yaml:"verbose"`

	// Debug mode
	Debug bool `json:"debug" yaml:"debug"`
}

// OutputConfig holds report output configuration.
type OutputConfig struct {
	Format    string `json:"format" yaml:"format"`
	Pretty    bool   `json:"pretty" yaml:"pretty"`
	Stream    bool   `json:"stream" yaml:"stream"`
	FilePath  string `json:"file_path" yaml:"file_path"`
	PerTarget bool   `json:"per_target" yaml:"per_target"`
	NoColor   bool   `json:"no_color" yaml:"no_color"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Level:             int(generate.DefaultLevel),
		Language:          "all",
		TestIndex:         false,
		Workers:           10,
		Adaptive:          true,
		RequestsPerSecond: 0,
		Delay:             0,
		Timeout:           10 * time.Second,
		SkipTLSVerify:     true,
		AllowStatuses:     []int{200, 206},
		BaselineProbes:    3,
		BaselineConsensus: 0.6,
		SizeTolerance:     0.05,
		CacheSize:         512,
		Output: OutputConfig{
			Format: "console",
			Pretty: true,
		},
	}
}

// StealthConfig returns a configuration tuned to stay under rate
// limiting and WAF thresholds.
func StealthConfig() *Config {
	cfg := DefaultConfig()
	cfg.Workers = 2
	cfg.Adaptive = false
	cfg.RequestsPerSecond = 5
	cfg.Delay = 250 * time.Millisecond
	cfg.Timeout = 15 * time.Second
	return cfg
}

// AggressiveConfig returns a configuration tuned for speed.
func AggressiveConfig() *Config {
	cfg := DefaultConfig()
	cfg.Workers = 50
	cfg.Adaptive = true
	cfg.Timeout = 5 * time.Second
	return cfg
}

// LoadFromFile loads configuration from a file (JSON or YAML).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()

	// Try YAML first, then JSON
	if err := yaml.Unmarshal(data, config); err != nil {
		if err := json.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	return config, nil
}

// SaveToFile saves configuration to a file.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if len(path) > 5 && path[len(path)-5:] == ".json" {
		data, err = json.MarshalIndent(c, "", "  ")
	} else {
		data, err = yaml.Marshal(c)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if len(c.Targets) == 0 {
		return fmt.Errorf("at least one target URL is required")
	}

	if !generate.Level(c.Level).Valid() {
		return fmt.Errorf("scan level must be between 0 and 4, got %d", c.Level)
	}

	switch c.Language {
	case "en", "pt-br", "all":
	default:
		return fmt.Errorf("language must be en, pt-br, or all, got %q", c.Language)
	}

	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1")
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}

	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("requests per second cannot be negative")
	}

	if c.Delay < 0 {
		return fmt.Errorf("delay cannot be negative")
	}

	if c.Retries < 0 {
		return fmt.Errorf("retries cannot be negative")
	}

	if c.BaselineProbes < 1 {
		return fmt.Errorf("baseline probes must be at least 1")
	}

	if c.BaselineConsensus <= 0 || c.BaselineConsensus > 1 {
		return fmt.Errorf("baseline consensus must be in (0, 1], got %g", c.BaselineConsensus)
	}

	if c.SizeTolerance < 0 {
		return fmt.Errorf("size tolerance cannot be negative")
	}

	if c.MinSize < 0 || c.MaxSize < 0 {
		return fmt.Errorf("size bounds cannot be negative")
	}
	if c.MaxSize > 0 && c.MinSize > c.MaxSize {
		return fmt.Errorf("min size %d exceeds max size %d", c.MinSize, c.MaxSize)
	}

	for _, status := range c.AllowStatuses {
		if status < 100 || status > 599 {
			return fmt.Errorf("invalid status code %d", status)
		}
	}

	return nil
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	data, _ := json.Marshal(c)
	clone := &Config{}
	json.Unmarshal(data, clone)
	return clone
}
