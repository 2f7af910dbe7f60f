package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"yashubustudio/calibrator/calibrator"
)

type commandContext struct {
	configFlag *string
	verbose    *bool

	configOnce sync.Once
	config     calibrator.Config
	configErr  error

	serviceOnce sync.Once
	service     *calibrator.Service
	serviceErr  error
	logger      *zap.Logger
}

func newCommandContext(configFlag *string, verbose *bool) *commandContext {
	return &commandContext{configFlag: configFlag, verbose: verbose}
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) ensureConfig() (calibrator.Config, error) {
	c.configOnce.Do(func() {
		c.config, c.configErr = calibrator.LoadConfig(c.configPath())
	})
	return c.config, c.configErr
}

// corpusFlags override the configured corpus file and its columns.
type corpusFlags struct {
	path      string
	id        string
	text      string
	value     string
	kind      string
	delimiter string
	header    string
}

func addCorpusFlags(cmd *cobra.Command) *corpusFlags {
	f := &corpusFlags{}
	flags := cmd.Flags()
	flags.StringVar(&f.path, "corpus", "", "Corpus file (YAML, JSON, CSV, TSV or SQLite)")
	flags.StringVar(&f.id, "id-column", "", "Corpus id column: header name or #n")
	flags.StringVar(&f.text, "text-column", "", "Corpus text column: header name or #n")
	flags.StringVar(&f.value, "value-column", "", "Corpus value column: header name or #n")
	flags.StringVar(&f.kind, "kind-column", "", "Corpus kind column: header name or #n")
	flags.StringVar(&f.delimiter, "delimiter", "", "Delimiter of the corpus file (a character, tab, comma or semicolon)")
	flags.StringVar(&f.header, "header", "", "Whether the corpus file has a header row: auto, present or absent")
	return f
}

func (f *corpusFlags) apply(cfg *calibrator.Config) {
	if f == nil {
		return
	}
	set := func(dst *string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = v
		}
	}
	set(&cfg.Corpus.Path, f.path)
	cols := &cfg.Corpus.Columns
	set(&cols.ID, f.id)
	set(&cols.Text, f.text)
	set(&cols.Value, f.value)
	set(&cols.Kind, f.kind)
	if f.delimiter != "" {
		cols.Delimiter = f.delimiter
	}
	set(&cols.Header, f.header)
}

// ensureService builds the pipeline once per invocation; logs go to the
// command's stderr.
func (c *commandContext) ensureService(cmd *cobra.Command, corpus *corpusFlags) (*calibrator.Service, error) {
	c.serviceOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.serviceErr = err
			return
		}
		corpus.apply(&cfg)
		c.logger = newLogger(cmd.ErrOrStderr(), c.logLevel(cfg))
		c.service, c.serviceErr = calibrator.Open(cfg, c.logger)
	})
	return c.service, c.serviceErr
}

// loadData reads the corpus and reference map without starting backends.
func (c *commandContext) loadData(cmd *cobra.Command, corpus *corpusFlags) (*calibrator.Corpus, *calibrator.ReferenceMap, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	corpus.apply(&cfg)
	return calibrator.LoadData(cfg, newLogger(cmd.ErrOrStderr(), c.logLevel(cfg)))
}

// readStatements reads a statements file, finding its statement column by
// the configured text column names unless column names it.
func (c *commandContext) readStatements(path, column string) ([]string, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	opts := calibrator.ParseOptions{
		TextColumn: strings.TrimSpace(column),
		Candidates: cfg.Corpus.Columns.Candidates,
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open statements: %w", err)
	}
	defer f.Close()
	return calibrator.ReadStatements(f, path, opts)
}

func (c *commandContext) logLevel(cfg calibrator.Config) string {
	if c.verbose != nil && *c.verbose {
		return "debug"
	}
	return cfg.Log.Level
}

func (c *commandContext) close() error {
	var err error
	if c.service != nil {
		err = c.service.Close()
		c.service = nil
	}
	if c.logger != nil {
		_ = c.logger.Sync()
	}
	return err
}

// newLogger returns a console logger writing to w. Unknown levels fall back
// to warn.
func newLogger(w io.Writer, level string) *zap.Logger {
	lvl := zapcore.WarnLevel
	if parsed, err := zapcore.ParseLevel(level); err == nil {
		lvl = parsed
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), lvl)
	return zap.New(core)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
