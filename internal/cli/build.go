package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boothtree/pkg/pipeline"
)

// buildFlags holds flag values for the build command.
type buildFlags struct {
	width    int
	depth    int
	prefix   string
	formats  string
	detailed bool
	output   string
	noCache  bool
	refresh  bool
}

// buildCommand creates the build command.
func (c *CLI) buildCommand() *cobra.Command {
	var flags buildFlags

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a Wallace tree and write its artifacts",
		Long: `Build lays out the Booth partial products of a multiplier, reduces them
with a Wallace tree and writes the requested artifacts:

  json  netlist of inputs, compressors and result ports
  dot   Graphviz source of the netlist
  svg   rendered netlist diagram
  txt   build report with timing and critical path

Files are named <output>.<format>.`,
		Example: `  boothtree build -w 16 -f txt,svg
  boothtree build -w 32 --depth 16 -o out/mul32`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBuild(cmd, flags)
		},
	}

	cmd.Flags().IntVarP(&flags.width, "width", "w", 0, "operand width in bits (default from config)")
	cmd.Flags().IntVar(&flags.depth, "depth", 0, "maximum number of reduction levels (default from config)")
	cmd.Flags().StringVar(&flags.prefix, "prefix", "", "partial-product signal prefix (default from config)")
	cmd.Flags().StringVarP(&flags.formats, "formats", "f", "", "comma-separated output formats: json,dot,svg,txt")
	cmd.Flags().BoolVar(&flags.detailed, "detailed", false, "include metadata in diagrams and signal names in reports")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output path without extension (default booth<width>)")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "re-render artifacts even if cached")

	return cmd
}

func (c *CLI) runBuild(cmd *cobra.Command, flags buildFlags) error {
	ctx := cmd.Context()
	opts := c.buildOptions(cmd, flags)

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Built %d-bit tree", result.Tree.Width()))

	base := flags.output
	if base == "" {
		base = fmt.Sprintf("booth%d", result.Tree.Width())
	}
	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	printSuccess("Reduced %d-bit multiplier", result.Tree.Width())
	printStats(result.Stats.Levels, result.Stats.Compressors, result.Stats.Critical, result.CacheInfo.RenderHit)
	for _, format := range opts.Formats {
		path := base + "." + format
		if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	if n := len(result.Tree.Truncated()); n > 0 {
		printDetail("%d carries out of the top column truncated", n)
	}
	return nil
}

// buildOptions merges config values with flags that were set explicitly.
func (c *CLI) buildOptions(cmd *cobra.Command, flags buildFlags) pipeline.Options {
	cfg := c.config
	opts := pipeline.Options{
		Width:      cfg.Tree.Width,
		LogicDepth: cfg.Tree.LogicDepth,
		Prefix:     cfg.Tree.Prefix,
		Formats:    cfg.Render.Formats,
		Detailed:   cfg.Render.Detailed,
		Refresh:    flags.refresh,
		Logger:     c.Logger,
	}
	fs := cmd.Flags()
	if fs.Changed("width") {
		opts.Width = flags.width
	}
	if fs.Changed("depth") {
		opts.LogicDepth = flags.depth
	}
	if fs.Changed("prefix") {
		opts.Prefix = flags.prefix
	}
	if fs.Changed("formats") {
		opts.Formats = parseFormats(flags.formats)
	}
	if fs.Changed("detailed") {
		opts.Detailed = flags.detailed
	}
	return opts
}
