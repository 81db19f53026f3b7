// Package cli implements the boothtree command-line interface.
//
// Commands:
//   - build: reduce a multiplier's partial products and write artifacts
//   - layout: print the Booth partial-product matrix
//   - serve: run the HTTP API
//   - cache: inspect and clear the artifact cache
//   - version: print build information
//
// Every command reads boothtree.toml from the working directory (or the file
// named by --config); flags override file values. --verbose switches the
// logger to debug level.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/boothtree/pkg/buildinfo"
	"github.com/matzehuels/boothtree/pkg/cache"
	"github.com/matzehuels/boothtree/pkg/observability"
	"github.com/matzehuels/boothtree/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "boothtree"

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

	configPath string
	config     Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		config: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "boothtree synthesizes Booth multiplier Wallace trees",
		Long:         `boothtree lays out the radix-4 Booth partial products of an N-bit multiplier, reduces them with a Wallace tree of 2:1, 3:2 and 4:2 compressors, and reports the resulting netlist and timing.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.config = cfg
			if c.Logger.GetLevel() <= log.DebugLevel {
				hooks := observability.NewLogHooks(c.Logger)
				observability.SetPipelineHooks(hooks)
				observability.SetCacheHooks(hooks)
				observability.SetServerHooks(hooks)
			}
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ./"+defaultConfigFile+" if present)")

	root.AddCommand(c.buildCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.versionCommand())

	return root
}

// versionCommand prints build information.
func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
		},
	}
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cfg, err := c.cacheConfig(noCache)
	if err != nil {
		return nil, err
	}
	store, err := cache.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	runner := pipeline.NewRunner(store, nil, c.Logger)
	runner.TTL = c.config.Cache.ttl
	return runner, nil
}

func (c *CLI) cacheConfig(noCache bool) (cache.Config, error) {
	cc := c.config.Cache
	cfg := cache.Config{
		Backend:   cc.Backend,
		Dir:       cc.Dir,
		RedisAddr: cc.RedisAddr,
		RedisDB:   cc.RedisDB,
	}
	if noCache {
		cfg.Backend = cache.BackendNone
	}
	if cfg.Backend == cache.BackendFile && cfg.Dir == "" {
		dir, err := cacheDir()
		if err != nil {
			return cfg, fmt.Errorf("get cache dir: %w", err)
		}
		cfg.Dir = dir
	}
	return cfg, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/boothtree/).
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
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
