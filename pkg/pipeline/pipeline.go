// Package pipeline provides the build → render pipeline shared by the CLI
// and the HTTP API.
//
// The pipeline has two stages:
//
//  1. Build: lay out the partial products, reduce them with a Wallace tree
//     and convert the result to a netlist
//  2. Render: produce the requested artifacts (JSON netlist, DOT, SVG, text
//     report)
//
// Builds are deterministic and take milliseconds, so they always run.
// Rendered artifacts are cached by content key.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Width:   16,
//	    Formats: []string{pipeline.FormatSVG},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts[pipeline.FormatSVG]
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/boothtree/pkg/cache"
	"github.com/matzehuels/boothtree/pkg/errors"
	"github.com/matzehuels/boothtree/pkg/netlist"
	"github.com/matzehuels/boothtree/pkg/wallace"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// DefaultWidth is the operand width used when none is given.
const DefaultWidth = 16

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatTXT  = "txt"
)

// ValidFormats lists the supported output formats in canonical order.
var ValidFormats = []string{FormatJSON, FormatDOT, FormatSVG, FormatTXT}

// ContentType returns the MIME type of a format.
func ContentType(format string) string {
	switch format {
	case FormatJSON:
		return "application/json"
	case FormatSVG:
		return "image/svg+xml"
	case FormatDOT:
		return "text/vnd.graphviz; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	// Build options
	Width      int    `json:"width"`
	LogicDepth int    `json:"logic_depth,omitempty"`
	Prefix     string `json:"prefix,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`
	Refresh  bool     `json:"refresh,omitempty"` // bypass cached artifacts

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID identifies the run in logs and API responses.
	ID string

	Tree    *wallace.Tree
	Netlist *netlist.Netlist

	// TreeKey is the cache key of the build configuration.
	TreeKey string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Levels      int
	Compressors int
	Critical    float64
	BuildTime   time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks artifact cache usage.
type CacheInfo struct {
	Hits      int
	Misses    int
	RenderHit bool // every artifact came from the cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	if !slices.Contains(ValidFormats, format) {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format %q (must be one of: %s)", format, strings.Join(ValidFormats, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and fills in defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.LogicDepth == 0 {
		o.LogicDepth = wallace.DefaultLogicDepthFor(o.Width)
	}
	if o.Prefix == "" {
		o.Prefix = wallace.DefaultPrefix
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatTXT}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	if err := errors.ValidateWidth(o.Width); err != nil {
		return err
	}
	if err := errors.ValidateLogicDepth(o.LogicDepth); err != nil {
		return err
	}
	if err := errors.ValidatePrefix(o.Prefix); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.Formats = dedupe(o.Formats)
	o.validated = true
	return nil
}

// TreeOptions returns the options passed to the reduction engine.
func (o *Options) TreeOptions() wallace.Options {
	return wallace.Options{LogicDepth: o.LogicDepth, Prefix: o.Prefix}
}

// TreeKeyOpts returns cache key options for the build configuration.
func (o *Options) TreeKeyOpts() cache.TreeKeyOpts {
	return cache.TreeKeyOpts{LogicDepth: o.LogicDepth, Prefix: o.Prefix}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: format, Detailed: o.Detailed}
}

func dedupe(formats []string) []string {
	seen := make(map[string]bool, len(formats))
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}

func (r *Result) String() string {
	return fmt.Sprintf("run %s: width %d, %d levels, %d compressors, critical %.1f",
		r.ID, r.Tree.Width(), r.Stats.Levels, r.Stats.Compressors, r.Stats.Critical)
}
