// Package cli implements the bricklayer command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bricklayer/pkg/buildinfo"
	"github.com/matzehuels/bricklayer/pkg/cache"
	bio "github.com/matzehuels/bricklayer/pkg/io"
	"github.com/matzehuels/bricklayer/pkg/pipeline"
	"github.com/matzehuels/bricklayer/pkg/wall"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "bricklayer"

	// redisURLEnv selects the Redis cache backend when set.
	redisURLEnv = "BRICKLAYER_REDIS_URL"
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
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "bricklayer",
		Short: "Bricklayer plans how a robot lays a brick wall",
		Long: `Bricklayer generates brick bond patterns for a wall and plans the order in
which a robot with a limited reach envelope lays them, bottom-up and supported.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.patternCommand())
	root.AddCommand(c.stepsCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool, keyer cache.Keyer) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, keyer, c.Logger), nil
}

// newCache picks the cache backend: none with --no-cache, Redis when
// BRICKLAYER_REDIS_URL is set, else the file cache.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if url := os.Getenv(redisURLEnv); url != "" {
		rc, err := cache.NewRedisCache(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("connect %s: %w", redisURLEnv, err)
		}
		c.Logger.Debug("using redis cache")
		return rc, nil
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Warn("cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("using file cache", "dir", dir)
	return fc, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/bricklayer/).
func cacheDir() (string, error) {
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
// Shared Flags
// =============================================================================

// runFlags are the pipeline flags shared by the commands that build a wall.
type runFlags struct {
	patternFile string
	stepsFile   string
	seed        uint64
	topFirst    bool
	noCache     bool
	refresh     bool
}

// register adds the flags to cmd. Commands that never plan leave out --steps.
func (f *runFlags) register(cmd *cobra.Command, withSteps bool) {
	cmd.Flags().StringVar(&f.patternFile, "pattern", "", "load the pattern from a file instead of generating it")
	if withSteps {
		cmd.Flags().StringVar(&f.stepsFile, "steps", "", "load the instructions from a file instead of planning them")
	}
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "seed for the wild bond (0 picks a random one)")
	cmd.Flags().BoolVar(&f.topFirst, "top-first", false, "pattern files list the top course first")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached results but store new ones")
}

func (f *runFlags) order() bio.Order {
	if f.topFirst {
		return bio.TopFirst
	}
	return bio.BottomFirst
}

func (f *runFlags) options(configPath string, logger *log.Logger) pipeline.Options {
	return pipeline.Options{
		ConfigPath:  configPath,
		PatternFile: f.patternFile,
		StepsFile:   f.stepsFile,
		Order:       f.order(),
		Seed:        f.seed,
		Refresh:     f.refresh,
		Logger:      logger,
	}
}

// loadSpec reads the wall configuration named on the command line.
func (c *CLI) loadSpec(path string) (wall.Spec, error) {
	spec, err := wall.Load(path)
	if err != nil {
		return wall.Spec{}, err
	}
	c.Logger.Debug("loaded wall config", "path", path, "bond", spec.Bond, "width", spec.Width, "height", spec.Height)
	return spec, nil
}

// openOutput returns the destination for command output: stdout when path
// is empty or "-", else the created file.
func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, f.Close, nil
}
