// Package main provides the CLI entrypoint for pwscope.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/pwscope/internal/config"
	"github.com/verte-zerg/pwscope/internal/export"
	"github.com/verte-zerg/pwscope/internal/model"
	"github.com/verte-zerg/pwscope/internal/progress"
	"github.com/verte-zerg/pwscope/internal/render"
	"github.com/verte-zerg/pwscope/internal/scorer"
	"github.com/verte-zerg/pwscope/internal/stats"
)

const (
	defaultBackend   = string(render.BackendText)
	defaultCacheSize = scorer.DefaultCacheSize
	defaultPlotWidth = 0
)

var (
	analyzeFiles      []string
	analyzeLabels     []string
	analyzeBackend    string
	analyzeExport     string
	analyzeCacheSize  int
	analyzeNoProgress bool
	analyzePlotWidth  int
	analyzeVerbose    bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pwscope",
		Short:         "Compare the strength of password corpora",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runAnalyzeCmd,
	}

	rootCmd.Flags().StringSliceVar(&analyzeFiles, "input-files", nil, "password corpus files, one password per line")
	rootCmd.Flags().StringSliceVar(&analyzeLabels, "labels", nil, "display label for each input file")
	rootCmd.Flags().StringVar(&analyzeBackend, "backend", defaultBackend, "panel backend: text, tui or none")
	rootCmd.Flags().StringVar(&analyzeExport, "export", "", "write results to .json, .yaml, .csv or .db")
	rootCmd.Flags().IntVar(&analyzeCacheSize, "cache-size", defaultCacheSize, "scorer cache entries (0 disables)")
	rootCmd.Flags().BoolVar(&analyzeNoProgress, "no-progress", false, "disable the progress counter")
	rootCmd.Flags().IntVar(&analyzePlotWidth, "plot-width", defaultPlotWidth, "text panel width (0 uses terminal width)")
	rootCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runAnalyzeCmd(cmd *cobra.Command, _ []string) error {
	corpora, err := stats.ValidateCorpora(analyzeFiles, analyzeLabels)
	if err != nil {
		return err
	}

	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	progressOn := !analyzeNoProgress
	applyStringConfig(cmd, "backend", &analyzeBackend, fileCfg.Analyze.Backend)
	applyStringConfig(cmd, "export", &analyzeExport, fileCfg.Analyze.Export)
	applyIntConfig(cmd, "cache-size", &analyzeCacheSize, fileCfg.Analyze.CacheSize)
	applyBoolConfig(cmd, "no-progress", &progressOn, fileCfg.Analyze.Progress)
	applyIntConfig(cmd, "plot-width", &analyzePlotWidth, fileCfg.Analyze.PlotWidth)
	applyBoolConfig(cmd, "verbose", &analyzeVerbose, fileCfg.Analyze.Verbose)

	cfg := model.RunConfig{
		Corpora:   corpora,
		Backend:   analyzeBackend,
		Export:    analyzeExport,
		CacheSize: analyzeCacheSize,
		Progress:  progressOn,
		PlotWidth: analyzePlotWidth,
		Verbose:   analyzeVerbose,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return analyze(ctx, cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

func analyze(ctx context.Context, cfg model.RunConfig, stdout, stderr io.Writer) error {
	log := newLogger(stderr, cfg.Verbose)

	backend, err := render.ParseBackend(cfg.Backend)
	if err != nil {
		return err
	}
	if cfg.Export != "" {
		if _, err := export.DetectFormat(cfg.Export); err != nil {
			return fmt.Errorf("%w: %v", stats.ErrConfiguration, err)
		}
	}

	sc, err := scorer.New(cfg.CacheSize)
	if err != nil {
		return fmt.Errorf("failed to build scorer: %w", err)
	}
	renderer := render.New(backend, stdout, render.WithPanelOptions(stats.PanelOptions{Width: cfg.PlotWidth}))
	agg := stats.NewAggregator(sc, progress.ForStderr(cfg.Progress))

	report, err := stats.BuildReport(ctx, agg, cfg.Corpora, stats.Options{
		OnCorpus: renderer.Summary,
		Logger:   log,
	})
	if err != nil {
		return err
	}
	if cached, ok := sc.(*scorer.Cached); ok {
		hits, misses := cached.Stats()
		log.WithFields(logrus.Fields{"hits": hits, "misses": misses}).Debug("scorer cache")
	}

	if cfg.Export != "" {
		runID, err := export.Write(ctx, cfg.Export, report.Corpora)
		if err != nil {
			return fmt.Errorf("failed to export results: %w", err)
		}
		log.WithFields(logrus.Fields{"path": cfg.Export, "run": runID}).Info("results exported")
	}

	return renderer.Panels(report.Corpora)
}

func newLogger(w io.Writer, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	log.SetLevel(logrus.WarnLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := ensureConfigFile(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func ensureConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# pwscope configuration
# Uncomment a value to enable it. CLI flags override config values.

[analyze]
# backend = %q          # Panel backend: text, tui or none
# export = ""              # Export path (.json, .yaml, .csv, .db)
# cache-size = %d      # Scorer cache entries (0 disables)
# progress = true          # Show the progress counter on a terminal
# plot-width = %d           # Text panel width (0 uses terminal width)
# verbose = false          # Debug logging on stderr
`,
		defaultBackend,
		defaultCacheSize,
		defaultPlotWidth,
	)
}

func validateConfig(cfg model.RunConfig) error {
	if cfg.CacheSize < 0 {
		return fmt.Errorf("%w: --cache-size must be >= 0", stats.ErrConfiguration)
	}
	if cfg.PlotWidth < 0 {
		return fmt.Errorf("%w: --plot-width must be >= 0", stats.ErrConfiguration)
	}
	return nil
}
