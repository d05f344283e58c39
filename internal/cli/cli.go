// Package cli implements the causeway command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/causelab/causeway/pkg/buildinfo"
	"github.com/causelab/causeway/pkg/cache"
	"github.com/causelab/causeway/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "causeway"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogError = log.ErrorLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config

	// Persistent flags, bound on the root command.
	verbose  bool
	quiet    bool
	noCache  bool
	cacheDir string
}

// New creates a new CLI instance with a default logger and the config
// file (if any) loaded.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: LoadConfig(),
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Causeway lays out causal diagrams",
		Long:         `Causeway is a CLI tool for laying out and rendering causal diagrams: cause, intermediate, and effect nodes connected by weighted influence edges.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			switch {
			case c.quiet:
				c.Logger.SetLevel(LogError)
			case c.verbose:
				c.Logger.SetLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().BoolVarP(&c.quiet, "quiet", "q", false, "errors only")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the stage cache")
	root.PersistentFlags().StringVar(&c.cacheDir, "cache-dir", "", "cache directory (default ~/.cache/causeway)")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.traceCommand())
	root.AddCommand(c.driversCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.diagramsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.newCache(), nil, c.Logger)
}

func (c *CLI) newCache() cache.Cache {
	if c.noCache {
		return cache.NewNullCache()
	}
	dir, err := c.resolveCacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("cache disabled", "error", err)
		return cache.NewNullCache()
	}
	return fc
}

// resolveCacheDir picks the cache directory: flag, config file, then
// the XDG default.
func (c *CLI) resolveCacheDir() (string, error) {
	if c.cacheDir != "" {
		return c.cacheDir, nil
	}
	if c.Config.CacheDir != "" {
		return c.Config.CacheDir, nil
	}
	return defaultCacheDir()
}

// defaultCacheDir returns the cache directory using the XDG standard
// (~/.cache/causeway/).
func defaultCacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// baseOptions seeds pipeline options from the config file. Flags
// overlay these per command.
func (c *CLI) baseOptions() pipeline.Options {
	return pipeline.Options{
		Algorithm: c.Config.Algorithm,
		Theme:     c.Config.Theme,
	}
}
