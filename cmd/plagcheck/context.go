package main

import (
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/internal/checker"
	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/internal/similarity"
	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/pkg/logger"
)

// commandContext holds the persistent flags and the resources built from
// them once per invocation.
type commandContext struct {
	configPath    string
	tokenizer     string
	minTermLength int
	stopWords     bool
	stem          bool
	errorLogPath  string

	cfg         *config.Config
	engine      *similarity.Engine
	fingerprint string
	errorLog    *slog.Logger
	closeLog    func() error
}

func (c *commandContext) bindFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", "", "Configuration file path")
	flags.StringVar(&c.tokenizer, "tokenizer", "", "Tokenizer mode: word or segment")
	flags.IntVar(&c.minTermLength, "min-term-length", 0, "Drop terms shorter than this many characters")
	flags.BoolVar(&c.stopWords, "stop-words", false, "Drop common English stop words")
	flags.BoolVar(&c.stem, "stem", false, "Strip common English suffixes")
	flags.StringVar(&c.errorLogPath, "error-log", "", "Append failures to this file as JSON lines")
}

// setup opens the error log, loads configuration, applies flag overrides
// and builds the engine. A failure after the log is open is recorded in it
// and the log is closed again.
func (c *commandContext) setup(cmd *cobra.Command) error {
	if c.errorLogPath != "" {
		errLog, closeLog, err := logger.OpenErrorLog(c.errorLogPath)
		if err != nil {
			return err
		}
		c.errorLog, c.closeLog = errLog, closeLog
	}
	if err := c.configure(cmd); err != nil {
		c.fail("setup failed", err)
		c.teardown()
		return err
	}
	return nil
}

func (c *commandContext) configure(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load(strings.TrimSpace(c.configPath))
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("tokenizer") {
		cfg.Similarity.Tokenizer = c.tokenizer
	}
	if flags.Changed("min-term-length") {
		cfg.Similarity.MinTermLength = c.minTermLength
	}
	if flags.Changed("stop-words") {
		cfg.Similarity.StopWords = c.stopWords
	}
	if flags.Changed("stem") {
		cfg.Similarity.Stem = c.stem
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg

	// stdout carries the score, so diagnostics go to stderr.
	slog.SetDefault(logger.New(cmd.ErrOrStderr(), cfg.Logging.Level, "text"))

	engine, fingerprint, err := checker.NewEngine(cfg.Similarity)
	if err != nil {
		return err
	}
	c.engine, c.fingerprint = engine, fingerprint
	return nil
}

func (c *commandContext) teardown() error {
	if c.closeLog == nil {
		return nil
	}
	closeLog := c.closeLog
	c.closeLog, c.errorLog = nil, nil
	return closeLog()
}

// fail records err in the error log, if one is open, and returns it.
func (c *commandContext) fail(msg string, err error, args ...any) error {
	if c.errorLog != nil {
		c.errorLog.Error(msg, append(args, "error", err)...)
	}
	return err
}

func defaultWorkers(cfg *config.Config) int {
	if cfg == nil || cfg.Batch.Workers < 1 {
		return 1
	}
	return cfg.Batch.Workers
}
