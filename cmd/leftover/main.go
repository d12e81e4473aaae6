package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/PentesterFlow/leftover/internal/state"
	"github.com/PentesterFlow/leftover/pkg/scanner"
)

var (
	version = scanner.Version

	// Global flags
	configFile string
	verbose    bool
	debug      bool

	// Target flags
	targetURL  string
	targetList string

	// Generation flags
	level          int
	bruteForce     bool
	bruteRecursive bool
	domainWordlist bool
	testIndex      bool
	language       string
	wordlistFile   string
	extensions     []string

	// Probe flags
	workers       int
	noAdaptive    bool
	rateLimit     float64
	delayMs       int
	timeoutSec    int
	retries       int
	verifyTLS     bool
	insecure      bool
	headers       []string
	cookie        string
	userAgent     string
	proxy         string

	// Classification flags
	allowStatuses  []int
	ignoreStatuses []int
	ignoreTypes    []string
	minSize        int64
	maxSize        int64
	noFP           bool

	// Mode flags
	stealthMode    bool
	aggressiveMode bool

	// Output flags
	outputFile   string
	outputPerURL bool
	jsonOutput   bool
	streamOutput bool
	noColor      bool
	silent       bool
	showMetrics  bool
	stateFile    string
	noProgress   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "leftover",
		Short: "Leftover - exposed backup and config file scanner",
		Long: `Leftover - A scanner for files deployments leave behind.

Probes targets for backup archives, configuration files, database dumps,
credentials, and VCS metadata, and separates real exposures from the
server's generic not-found behavior before reporting anything.`,
		Version: version,
	}

	scanCmd := newScanCommand()

	levelsCmd := &cobra.Command{
		Use:   "levels",
		Short: "Describe the scan levels",
		RunE:  runLevels,
	}

	statusCmd := &cobra.Command{
		Use:   "status <state-file>",
		Short: "Show saved scan state",
		Args:  cobra.ExactArgs(1),
		RunE:  runStatus,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Configuration file (YAML or JSON)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Debug mode")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(statusCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newScanCommand() *cobra.Command {
	scanCmd := &cobra.Command{
		Use:   "scan [targets...]",
		Short: "Scan one or more targets",
		Long:  "Scan targets for leftover files at the chosen level (0 critical files only, 4 exhaustive).",
		RunE:  runScan,
	}

	// Target flags
	scanCmd.Flags().StringVarP(&targetURL, "url", "u", "", "Target URL")
	scanCmd.Flags().StringVarP(&targetList, "list", "l", "", "File with one target URL per line")

	// Generation flags
	scanCmd.Flags().IntVar(&level, "level", 2, "Scan level 0-4")
	scanCmd.Flags().BoolVarP(&bruteForce, "brute", "b", false, "Brute force with the keyword wordlist")
	scanCmd.Flags().BoolVar(&bruteRecursive, "brute-recursive", false, "Brute force every parent directory too")
	scanCmd.Flags().BoolVar(&domainWordlist, "domain-wordlist", false, "Derive backup names from the target domain")
	scanCmd.Flags().BoolVar(&testIndex, "test-index", false, "Test index file variants on bare domains")
	scanCmd.Flags().StringVar(&language, "language", "all", "Wordlist language: en, pt-br, all")
	scanCmd.Flags().StringVarP(&wordlistFile, "wordlist", "W", "", "Extra wordlist file")
	scanCmd.Flags().StringSliceVarP(&extensions, "extensions", "x", nil, "Override the extension list")

	// Probe flags
	scanCmd.Flags().IntVarP(&workers, "threads", "t", 10, "Fixed worker count, disables latency scaling")
	scanCmd.Flags().BoolVar(&noAdaptive, "no-adaptive", false, "Disable latency-based worker scaling")
	scanCmd.Flags().Float64VarP(&rateLimit, "rate-limit", "r", 0, "Global requests per second cap (0 = uncapped)")
	scanCmd.Flags().IntVar(&delayMs, "delay", 0, "Delay between probes per worker, in milliseconds")
	scanCmd.Flags().IntVar(&timeoutSec, "timeout", 10, "Request timeout in seconds")
	scanCmd.Flags().IntVar(&retries, "retries", 0, "Retries per probe on transport errors")
	scanCmd.Flags().BoolVar(&verifyTLS, "verify-tls", false, "Verify TLS certificates")
	scanCmd.Flags().BoolVarP(&insecure, "insecure", "k", false, "Skip TLS certificate verification (the default)")
	scanCmd.Flags().StringArrayVarP(&headers, "header", "H", nil, "Custom header, Name: value (repeatable)")
	scanCmd.Flags().StringVar(&cookie, "cookie", "", "Cookie header sent with every probe")
	scanCmd.Flags().StringVar(&userAgent, "user-agent", "", "Fixed User-Agent (default rotates)")
	scanCmd.Flags().StringVar(&proxy, "proxy", "", "Proxy URL")

	// Classification flags
	scanCmd.Flags().IntSliceVar(&allowStatuses, "status", nil, "Status codes accepted as findings (default 200,206)")
	scanCmd.Flags().IntSliceVar(&ignoreStatuses, "ignore-status", nil, "Status codes always rejected")
	scanCmd.Flags().StringSliceVar(&ignoreTypes, "ignore-content-type", nil, "Reject responses whose Content-Type contains these")
	scanCmd.Flags().Int64Var(&minSize, "min-size", 0, "Minimum accepted body size in bytes")
	scanCmd.Flags().Int64Var(&maxSize, "max-size", 0, "Maximum accepted body size in bytes (0 = unbounded)")
	scanCmd.Flags().BoolVar(&noFP, "no-fp", false, "Disable the baseline false-positive filter")

	// Mode flags
	scanCmd.Flags().BoolVar(&stealthMode, "stealth", false, "Stealth mode: few workers, capped rate, spaced probes")
	scanCmd.Flags().BoolVar(&aggressiveMode, "aggressive", false, "Aggressive mode: many workers, short timeout")

	// Output flags
	scanCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write JSON report to file")
	scanCmd.Flags().BoolVar(&outputPerURL, "output-per-url", false, "Write one report file per target")
	scanCmd.Flags().BoolVar(&jsonOutput, "json", false, "JSON output on stdout instead of the console view")
	scanCmd.Flags().BoolVar(&streamOutput, "stream", false, "Emit findings as JSON lines while scanning")
	scanCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	scanCmd.Flags().BoolVar(&showMetrics, "metrics", false, "Print collector metrics after the scan")
	scanCmd.Flags().StringVar(&stateFile, "state-file", "", "State file for resumable scans")
	scanCmd.Flags().BoolVar(&noProgress, "no-progress", false, "Disable the progress bar")
	scanCmd.Flags().BoolVarP(&silent, "silent", "s", false, "Findings only, no banner or progress")

	return scanCmd
}

func runScan(cmd *cobra.Command, args []string) error {
	config, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	showProgress := !noProgress && !silent && !verbose && !jsonOutput && config.Output.Format == "console"

	s, err := scanner.New(
		scanner.WithConfig(config),
		scanner.WithProgress(showProgress),
	)
	if err != nil {
		return fmt.Errorf("failed to create scanner: %w", err)
	}

	if !silent {
		printBanner(config)
	}

	// The scanner installs its own interrupt handling: first Ctrl-C
	// drains and reports partial results, second one forces the stop.
	startTime := time.Now()
	result, err := s.Run(context.Background())
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if !silent && (config.Output.Format != "console" || config.Output.FilePath != "") {
		printSummary(result, time.Since(startTime))
	}

	if showMetrics {
		printMetrics(s)
	}

	return nil
}

func runLevels(cmd *cobra.Command, args []string) error {
	fmt.Println("Scan levels:")
	fmt.Println("  0  critical     credentials, keys, and database dumps only (~15 probes)")
	fmt.Println("  1  quick        plus the highest-yield backup extensions")
	fmt.Println("  2  balanced     common backup, config, and log patterns (default)")
	fmt.Println("  3  deep         full extension catalogs and keyword lists")
	fmt.Println("  4  exhaustive   everything, including low-yield extras")
	fmt.Println()
	fmt.Println("Each level is a superset of the one below it.")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	store, err := state.NewBoltStore(args[0])
	if err != nil {
		return fmt.Errorf("failed to open state file: %w", err)
	}
	defer store.Close()

	targets, err := store.Targets()
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		fmt.Println("No saved scans.")
		return nil
	}

	for _, target := range targets {
		saved, err := store.Load(target)
		if err != nil || saved == nil {
			continue
		}
		status := "in progress"
		if saved.Completed {
			status = "completed"
		}
		fmt.Printf("%s\n", target)
		fmt.Printf("  Status:   %s\n", status)
		fmt.Printf("  Level:    %d\n", saved.Level)
		fmt.Printf("  Updated:  %s\n", saved.UpdatedAt.Format(time.RFC3339))
		fmt.Printf("  Probed:   %d URLs\n", len(saved.ProbedURLs))
		fmt.Printf("  Findings: %d\n", len(saved.Findings))
	}
	return nil
}

// buildConfig assembles the scanner config from mode presets, the
// config file, and flags, in increasing precedence.
func buildConfig(cmd *cobra.Command, args []string) (*scanner.Config, error) {
	var config *scanner.Config
	switch {
	case stealthMode && aggressiveMode:
		return nil, fmt.Errorf("--stealth and --aggressive are mutually exclusive")
	case stealthMode:
		config = scanner.StealthConfig()
	case aggressiveMode:
		config = scanner.AggressiveConfig()
	default:
		config = scanner.DefaultConfig()
	}

	if configFile != "" {
		fileConfig, err := scanner.LoadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
		config = fileConfig
	}

	for _, arg := range args {
		if !strings.Contains(arg, "://") {
			arg = "http://" + arg
		}
		config.Targets = append(config.Targets, arg)
	}
	if targetURL != "" {
		config.Targets = append(config.Targets, targetURL)
	}
	if targetList != "" {
		targets, err := readTargetList(targetList)
		if err != nil {
			return nil, err
		}
		config.Targets = append(config.Targets, targets...)
	}

	if cmd.Flags().Changed("level") {
		config.Level = level
	}
	if cmd.Flags().Changed("threads") {
		// A pinned worker count is exactly that; latency scaling
		// stays off unless the count is left to the scanner.
		config.Workers = workers
		config.Adaptive = false
	}
	if noAdaptive {
		config.Adaptive = false
	}
	if cmd.Flags().Changed("rate-limit") {
		config.RequestsPerSecond = rateLimit
	}
	if cmd.Flags().Changed("delay") {
		config.Delay = time.Duration(delayMs) * time.Millisecond
	}
	if cmd.Flags().Changed("timeout") {
		config.Timeout = time.Duration(timeoutSec) * time.Second
	}
	if cmd.Flags().Changed("retries") {
		config.Retries = retries
	}
	if cmd.Flags().Changed("language") {
		config.Language = language
	}

	if bruteForce {
		config.BruteForce = true
	}
	if bruteRecursive {
		config.BruteForce = true
		config.BruteRecursive = true
	}
	if domainWordlist {
		config.DomainWordlist = true
	}
	if testIndex {
		config.TestIndex = true
	}
	if len(extensions) > 0 {
		config.Extensions = extensions
	}

	if wordlistFile != "" {
		words, err := readWordlist(wordlistFile)
		if err != nil {
			return nil, err
		}
		config.ExtraWords = append(config.ExtraWords, words...)
	}

	if verifyTLS {
		config.SkipTLSVerify = false
	}
	if insecure {
		config.SkipTLSVerify = true
	}
	if userAgent != "" {
		config.UserAgent = userAgent
	}
	if proxy != "" {
		config.Proxy = proxy
	}
	if len(headers) > 0 {
		parsed, err := parseHeaders(headers)
		if err != nil {
			return nil, err
		}
		config.Headers = parsed
	}
	if cookie != "" {
		if config.Headers == nil {
			config.Headers = make(map[string]string)
		}
		config.Headers["Cookie"] = cookie
	}

	if len(allowStatuses) > 0 {
		config.AllowStatuses = allowStatuses
	}
	if len(ignoreStatuses) > 0 {
		config.IgnoreStatuses = ignoreStatuses
	}
	if len(ignoreTypes) > 0 {
		config.IgnoreContentTypes = ignoreTypes
	}
	config.MinSize = minSize
	config.MaxSize = maxSize
	config.NoBaselineFilter = noFP

	if outputFile != "" {
		config.Output.FilePath = outputFile
		config.Output.Format = "json"
		config.Output.PerTarget = outputPerURL
	}
	if jsonOutput && outputFile == "" {
		config.Output.Format = "json"
	}
	if streamOutput {
		config.Output.Format = "json"
		config.Output.Stream = true
	}
	config.Output.NoColor = noColor
	config.StateFile = stateFile
	config.Verbose = verbose
	config.Debug = debug

	return config, nil
}

// readTargetList reads one target per line, skipping blanks and
// comments.
func readTargetList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open target list: %w", err)
	}
	defer f.Close()

	var targets []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !strings.Contains(line, "://") {
			line = "http://" + line
		}
		targets = append(targets, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read target list: %w", err)
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("target list %s is empty", path)
	}
	return targets, nil
}

func readWordlist(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open wordlist: %w", err)
	}
	defer f.Close()

	var words []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		word := strings.TrimSpace(sc.Text())
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		words = append(words, word)
	}
	return words, sc.Err()
}

// parseHeaders parses repeated "Name: value" flags.
func parseHeaders(raw []string) (map[string]string, error) {
	parsed := make(map[string]string, len(raw))
	for _, h := range raw {
		name, value, found := strings.Cut(h, ":")
		if !found || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid header %q, want Name: value", h)
		}
		parsed[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
	return parsed, nil
}

func printBanner(config *scanner.Config) {
	if config.Output.Format != "console" {
		return
	}
	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════════════════════════╗")
	fmt.Printf("║                      Leftover v%-6s                        ║\n", version)
	fmt.Println("╚══════════════════════════════════════════════════════════════╝")
	fmt.Println()
	for _, t := range config.Targets {
		fmt.Printf("Target:   %s\n", t)
	}
	fmt.Printf("Level:    %d\n", config.Level)
	fmt.Printf("Workers:  %d", config.Workers)
	if config.Adaptive {
		fmt.Print(" (adaptive)")
	}
	fmt.Println()
	if config.RequestsPerSecond > 0 {
		fmt.Printf("Rate cap: %.0f req/s\n", config.RequestsPerSecond)
	}
	fmt.Println()
}

func printSummary(result *scanner.ScanResult, duration time.Duration) {
	fmt.Fprintln(os.Stderr)
	fmt.Fprintf(os.Stderr, "Scanned %d target(s) in %v: %d findings, %d probes, %d errors\n",
		len(result.Targets), duration.Round(time.Second),
		result.Stats.Findings, result.Stats.ProbesCompleted, result.Stats.Errors)
}

func printMetrics(s *scanner.Scanner) {
	snapshot := s.MetricsSnapshot()
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return
	}
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, string(data))
}
