package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/boothtree/pkg/cache"
	"github.com/matzehuels/boothtree/pkg/netlist"
	"github.com/matzehuels/boothtree/pkg/observability"
	"github.com/matzehuels/boothtree/pkg/wallace"
)

const keyTypeArtifact = "artifact"

// Runner executes the pipeline with artifact caching.
// It holds no per-run state, so one Runner may serve concurrent requests.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL of cached artifacts; zero means cache.ArtifactTTL.
	TTL time.Duration
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// means the default keyer and a nil logger means log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute builds the tree described by opts and renders every requested
// format.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	result := &Result{
		ID:      uuid.NewString(),
		TreeKey: r.Keyer.TreeKey(opts.Width, opts.TreeKeyOpts()),
	}
	logger := opts.Logger.With("run", result.ID)

	// Stage 1: Build
	buildStart := time.Now()
	t, n, err := r.Build(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Tree = t
	result.Netlist = n
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.Levels = t.Levels()
	result.Stats.Compressors = t.Registry().Len()
	result.Stats.Critical = t.Timing().Critical

	logger.Info("built tree",
		"width", opts.Width,
		"levels", result.Stats.Levels,
		"compressors", result.Stats.Compressors,
		"duration", result.Stats.BuildTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, info, err := r.RenderWithCacheInfo(ctx, result.TreeKey, t, n, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo = info
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", info.Hits,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Build reduces the tree and converts it to a netlist.
func (r *Runner) Build(ctx context.Context, opts Options) (*wallace.Tree, *netlist.Netlist, error) {
	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, opts.Width)
	start := time.Now()

	t, err := wallace.Build(opts.Width, opts.TreeOptions())
	if err != nil {
		hooks.OnBuildComplete(ctx, opts.Width, 0, 0, time.Since(start), err)
		return nil, nil, err
	}
	n, err := netlist.FromTree(t)
	if err != nil {
		err = fmt.Errorf("netlist: %w", err)
		hooks.OnBuildComplete(ctx, opts.Width, t.Levels(), t.Registry().Len(), time.Since(start), err)
		return nil, nil, err
	}
	hooks.OnBuildComplete(ctx, opts.Width, t.Levels(), t.Registry().Len(), time.Since(start), nil)
	return t, n, nil
}

// RenderWithCacheInfo renders every format, reading and writing the cache
// per artifact. Refresh skips the reads but still writes.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, treeKey string, t *wallace.Tree, n *netlist.Netlist, opts Options) (map[string][]byte, CacheInfo, error) {
	hooks := observability.Pipeline()
	cacheHooks := observability.Cache()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	var info CacheInfo
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(treeKey, opts.ArtifactKeyOpts(format))

		if !opts.Refresh {
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil {
				opts.Logger.Warn("cache read failed", "format", format, "err", err)
			}
			if err == nil && hit {
				cacheHooks.OnCacheHit(ctx, keyTypeArtifact)
				artifacts[format] = data
				info.Hits++
				continue
			}
			cacheHooks.OnCacheMiss(ctx, keyTypeArtifact)
		}

		data, err := Render(ctx, t, n, format, opts.Detailed)
		if err != nil {
			hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, info, fmt.Errorf("%s: %w", format, err)
		}
		artifacts[format] = data
		info.Misses++

		if err := r.Cache.Set(ctx, key, data, r.ttl()); err != nil {
			opts.Logger.Warn("cache write failed", "format", format, "err", err)
		} else {
			cacheHooks.OnCacheSet(ctx, keyTypeArtifact, len(data))
		}
	}
	info.RenderHit = info.Misses == 0
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return artifacts, info, nil
}

func (r *Runner) ttl() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return cache.ArtifactTTL
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
