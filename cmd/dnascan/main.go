package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"dnascan/internal/analysis"
	"dnascan/internal/config"
	"dnascan/internal/report"
	"dnascan/internal/seqio"
)

// version is the program version. It can be overridden at build time with -ldflags "-X main.version=..."
var version = "0.1.0"

// timestampWriter prefixes each flushed line with an RFC3339 timestamp.
type timestampWriter struct {
	w   io.Writer
	buf bytes.Buffer
	mu  sync.Mutex
}

// Write buffers bytes until a newline is found; for each full line, write a timestamped
// line to the underlying writer. Partial lines are kept in the buffer.
func (t *timestampWriter) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	n, _ := t.buf.Write(p)
	total := n
	for {
		line, err := t.buf.ReadString('\n')
		if err != nil {
			break
		}
		ts := time.Now().Format(time.RFC3339)
		if _, err := t.w.Write([]byte(ts + " " + line)); err != nil {
			return total, err
		}
	}
	return total, nil
}

// terminalWriter wraps an io.Writer and exposes an Fd method so libraries that
// inspect the file descriptor (for TTY detection) can work with wrapped writers.
type terminalWriter struct {
	w  io.Writer
	fd uintptr
}

func (tw *terminalWriter) Write(p []byte) (int, error) { return tw.w.Write(p) }

// Fd exposes the underlying file descriptor (e.g., os.Stderr.Fd()).
func (tw *terminalWriter) Fd() uintptr { return tw.fd }

func main() {
	// CLI flags
	inputFlag := flag.String("in", "", "input dataset path (.json or .fasta)")
	settingsFlag := flag.String("settings", "", "path to settings.json (optional)")
	outFlag := flag.String("out", "", "output directory for result files")
	perSeqFlag := flag.Bool("per-seq-kmers", false, "rank k-mers per sequence instead of across the whole dataset")
	dryRun := flag.Bool("dry-run", false, "perform the analysis without writing result files")
	verbose := flag.Bool("verbose", false, "enable verbose (debug) logging")
	versionFlag := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Println("dnascan", version)
		return
	}

	// load settings (optional file); a parse failure is reported once the
	// logger exists
	cfg, cfgErr := config.Load(*settingsFlag)
	if cfg == nil {
		cfg = config.Default()
	}

	// merge CLI flags into settings (flags override file values when provided)
	if *inputFlag != "" {
		cfg.InputPath = *inputFlag
	}
	if *outFlag != "" {
		cfg.OutDir = *outFlag
	}
	if *perSeqFlag {
		cfg.PerSequenceKmers = true
	}

	// configure logger output
	var loggerOut io.Writer = os.Stderr
	var logFileHandle *os.File
	if cfg.LogFile != "" {
		if f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
			// write to both stderr and file so running interactively still shows logs
			loggerOut = io.MultiWriter(os.Stderr, f)
			logFileHandle = f
			// keep file handle open until program exit
			defer func() { _ = logFileHandle.Close() }()
		}
	}
	// If stderr is a terminal-like device, force colors for libraries that honor FORCE_COLOR.
	if fi, err := os.Stderr.Stat(); err == nil {
		if fi.Mode()&os.ModeCharDevice != 0 {
			_ = os.Setenv("FORCE_COLOR", "1")
		}
	}
	// create logger backed by the timestamping writer and expose Fd so charm.log can detect TTY
	tw := &timestampWriter{w: loggerOut}
	termW := &terminalWriter{w: tw, fd: os.Stderr.Fd()}
	logger := log.New(termW)

	// apply log level from flags/settings (flags override settings)
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		switch strings.ToLower(cfg.LogLevel) {
		case "debug":
			logger.SetLevel(log.DebugLevel)
		case "info", "":
			logger.SetLevel(log.InfoLevel)
		case "warn", "warning":
			logger.SetLevel(log.WarnLevel)
		case "error":
			logger.SetLevel(log.ErrorLevel)
		default:
			logger.SetLevel(log.InfoLevel)
			logger.Warn("unknown log_level in settings.json, defaulting to info", "provided", cfg.LogLevel)
		}
	}

	if cfgErr != nil {
		logger.Fatal("failed to load settings", "path", *settingsFlag, "err", cfgErr)
	}

	// Debug: show resolved settings
	logger.Debug("loaded settings", "input_path", cfg.InputPath, "out_dir", cfg.OutDir, "valid_nucleobases", strings.Join(cfg.ValidBases, ""), "k_values", cfg.KValues, "per_sequence_k_mers", cfg.PerSequenceKmers, "min_basepair_len", cfg.MinPalindromeLen, "min_bases", cfg.MinPalindromeBases, "top_n", cfg.TopN, "log_file", cfg.LogFile, "log_level", cfg.LogLevel)
	if cfg.LogFile != "" {
		if logFileHandle != nil {
			logger.Debug("log file open for append", "path", cfg.LogFile)
		} else {
			logger.Warn("log_file specified but could not be opened; logging to stderr only", "path", cfg.LogFile)
		}
	}
	logger.Info("starting dnascan", "input_path", cfg.InputPath, "out_dir", cfg.OutDir, "k_values", cfg.KValues, "top_n", cfg.TopN)

	// settings are checked in full before any sequence is touched
	analyzer, err := analysis.New(cfg, logger)
	if err != nil {
		logger.Fatal("invalid settings", "err", err)
	}

	if cfg.InputPath == "" {
		logger.Fatal("no input dataset; pass -in or set input_path in settings.json")
	}

	start := time.Now()
	seqs, err := seqio.LoadFile(cfg.InputPath)
	if err != nil {
		logger.Fatal("failed to read input dataset", "path", cfg.InputPath, "err", err)
	}
	logger.Info("parsed dataset", "path", cfg.InputPath, "sequences", len(seqs))

	res := analyzer.Run(seqs)
	dur := time.Since(start)

	palindromes := 0
	for _, m := range res.Palindromes {
		palindromes += len(m)
	}
	invalid := 0
	for _, m := range res.Invalid {
		invalid += len(m)
	}
	logger.Info("analysis finished", "sequences", len(seqs), "degenerate", len(res.Degenerate), "palindromes", palindromes, "invalid_bases", invalid, "k_layers", len(res.Kmers), "duration_ms", dur.Milliseconds())

	if *dryRun {
		logger.Info("dry-run: would write result files", "dir", cfg.OutDir)
		return
	}
	paths, err := report.Write(cfg.OutDir, res, cfg.PerSequenceKmers)
	if err != nil {
		logger.Fatal("failed to write result files", "dir", cfg.OutDir, "err", err)
	}
	logger.Info("wrote result files", "dir", cfg.OutDir, "files", len(paths))
	logger.Debug("result files", "paths", strings.Join(paths, ", "))
}
