// Package cli implements the edgecross command-line interface.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/edgecross/pkg/buildinfo"
	"github.com/matzehuels/edgecross/pkg/config"
	"github.com/matzehuels/edgecross/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "edgecross"

	// redisKeyPrefix scopes cache keys in a shared Redis instance.
	redisKeyPrefix = appName + ":"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	stderr  io.Writer
	cfgPath string
	logFile string
	cfg     *config.Config
	closers []io.Closer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		stderr: w,
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// Close releases resources opened while running a command, such as the
// rotating log file.
func (c *CLI) Close() error {
	var first error
	for _, cl := range c.closers {
		if err := cl.Close(); err != nil && first == nil {
			first = err
		}
	}
	c.closers = nil
	return first
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Edgecross counts edge crossings of graphs embedded in identifier spaces",
		Long: `Edgecross counts how often the edges of a graph cross when its nodes are drawn
at their identifier-space positions: on a ring, where edges are chords, or in
the plane, where edges are straight segments. It reports the total, the
per-edge crossing distribution and its average.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.cfgPath, "config", "c", os.Getenv("EDGECROSS_CONFIG"), "config file (TOML)")
	root.PersistentFlags().StringVar(&c.logFile, "log-file", "", "also write logs to this rotating file")

	root.AddCommand(c.computeCommand())
	root.AddCommand(c.localCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.resultsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the configuration and attaches the log file.
func (c *CLI) setup() error {
	cfg, err := config.Load(c.cfgPath)
	if err != nil {
		return err
	}
	if c.logFile != "" {
		cfg.Log.File = c.logFile
	}
	c.cfg = cfg

	if cfg.Log.File != "" {
		f := newRotatingFile(cfg.Log)
		c.Logger.SetOutput(io.MultiWriter(c.stderr, f))
		c.closers = append(c.closers, f)
		c.Logger.Debug("logging to file", "path", cfg.Log.File)
	}
	return nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// metricFlags holds the counting flags shared by compute, local and serve.
type metricFlags struct {
	strategy      string
	strict        bool
	maxNaiveEdges int
	refresh       bool
	noCache       bool
}

func (f *metricFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.strategy, "strategy", "s", "", "counting strategy: auto, naive, sweep (default from config)")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "fail on the first ambiguous pair instead of reporting it")
	cmd.Flags().IntVar(&f.maxNaiveEdges, "max-naive-edges", 0, "refuse pairwise counting above this many edges (negative disables)")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute even when a cached result exists")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the result cache")
}

// pipelineOptions merges the configured metric defaults with flags the user
// set explicitly.
func (c *CLI) pipelineOptions(cmd *cobra.Command, f *metricFlags) (pipeline.Options, error) {
	opts := pipeline.Options{
		Strategy:      c.cfg.Metric.Strategy,
		Strict:        c.cfg.Metric.Strict,
		MaxNaiveEdges: c.cfg.Metric.MaxNaiveEdges,
		Refresh:       f.refresh,
		Logger:        c.Logger,
	}
	flags := cmd.Flags()
	if flags.Changed("strategy") {
		opts.Strategy = f.strategy
	}
	if flags.Changed("strict") {
		opts.Strict = f.strict
	}
	if flags.Changed("max-naive-edges") {
		opts.MaxNaiveEdges = f.maxNaiveEdges
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}
