package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/boothtree/pkg/cache"
	bterrors "github.com/matzehuels/boothtree/pkg/errors"
	"github.com/matzehuels/boothtree/pkg/pipeline"
	"github.com/matzehuels/boothtree/pkg/wallace"
)

// defaultConfigFile is read from the working directory when --config is
// not given.
const defaultConfigFile = "boothtree.toml"

// Config mirrors boothtree.toml.
type Config struct {
	Tree   TreeConfig   `toml:"tree"`
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// TreeConfig holds build defaults.
type TreeConfig struct {
	Width      int    `toml:"width"`
	LogicDepth int    `toml:"logic_depth"` // 0 derives the cap from width
	Prefix     string `toml:"prefix"`
}

// RenderConfig holds artifact defaults.
type RenderConfig struct {
	Formats  []string `toml:"formats"`
	Detailed bool     `toml:"detailed"`
}

// CacheConfig selects the artifact cache.
type CacheConfig struct {
	Backend   string `toml:"backend"` // none, file or redis
	Dir       string `toml:"dir"`
	TTL       string `toml:"ttl"` // Go duration, e.g. "72h"
	RedisAddr string `toml:"redis_addr"`
	RedisDB   int    `toml:"redis_db"`

	ttl time.Duration
}

// ServerConfig configures boothtree serve.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// DefaultConfig returns the configuration used without a config file.
func DefaultConfig() Config {
	return Config{
		Tree: TreeConfig{
			Width:      pipeline.DefaultWidth,
			Prefix:     wallace.DefaultPrefix,
		},
		Render: RenderConfig{Formats: []string{pipeline.FormatTXT}},
		Cache:  CacheConfig{Backend: cache.BackendFile},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// LoadConfig reads path on top of DefaultConfig. An empty path falls back to
// boothtree.toml in the working directory, which may be absent.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, cfg.validate()
		}
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, bterrors.Wrap(bterrors.ErrCodeInvalidConfig, err, "config file %s not found", path)
		}
		return cfg, bterrors.Wrap(bterrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, bterrors.New(bterrors.ErrCodeInvalidConfig, "%s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if err := bterrors.ValidateWidth(c.Tree.Width); err != nil {
		return err
	}
	if c.Tree.LogicDepth != 0 {
		if err := bterrors.ValidateLogicDepth(c.Tree.LogicDepth); err != nil {
			return err
		}
	}
	if err := bterrors.ValidatePrefix(c.Tree.Prefix); err != nil {
		return err
	}
	if err := pipeline.ValidateFormats(c.Render.Formats); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case cache.BackendNone, cache.BackendFile, cache.BackendRedis:
	default:
		return bterrors.New(bterrors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.TTL != "" {
		ttl, err := time.ParseDuration(c.Cache.TTL)
		if err != nil || ttl <= 0 {
			return bterrors.New(bterrors.ErrCodeInvalidConfig, "cache ttl %q is not a positive duration", c.Cache.TTL)
		}
		c.Cache.ttl = ttl
	}
	return nil
}
