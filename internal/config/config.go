// Package config loads diagramkit settings from a TOML file and the
// environment.
//
// Precedence, lowest first: built-in defaults, the TOML file, DIAGRAMKIT_*
// environment variables, command-line flags (applied by the caller).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/diagramkit/pkg/analysis"
	"github.com/matzehuels/diagramkit/pkg/cache"
	"github.com/matzehuels/diagramkit/pkg/errors"
	"github.com/matzehuels/diagramkit/pkg/export"
	"github.com/matzehuels/diagramkit/pkg/layout"
	"github.com/matzehuels/diagramkit/pkg/pipeline"
)

const (
	// AppName names the cache directory and the default config file.
	AppName = "diagramkit"

	// DefaultFile is looked up in the working directory when no path is given.
	DefaultFile = AppName + ".toml"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "DIAGRAMKIT_"
)

// Cache backends.
const (
	BackendNone   = "none"
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Server defaults.
const (
	DefaultAddr         = ":8080"
	DefaultTimeout      = 30 * time.Second
	DefaultMaxShapes    = 5000
	DefaultMaxBodyBytes = 10 << 20
)

type Config struct {
	Analysis AnalysisConfig `toml:"analysis"`
	Layout   LayoutConfig   `toml:"layout"`
	Export   ExportConfig   `toml:"export"`
	Cache    CacheConfig    `toml:"cache"`
	Server   ServerConfig   `toml:"server"`
	Log      LogConfig      `toml:"log"`
}

type AnalysisConfig struct {
	Kind         string `toml:"kind"`
	Reachability string `toml:"reachability"`
	MaxPaths     int    `toml:"max_paths"`
	MaxCycles    int    `toml:"max_cycles"`
}

type LayoutConfig struct {
	Algorithm string        `toml:"algorithm"`
	Params    layout.Params `toml:"params"`
}

type ExportConfig struct {
	Formats []string                     `toml:"formats"`
	Styles  map[string]export.ShapeStyle `toml:"styles"`
}

type CacheConfig struct {
	Backend string      `toml:"backend"`
	Dir     string      `toml:"dir"`
	Entries int         `toml:"entries"`
	Redis   RedisConfig `toml:"redis"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

type ServerConfig struct {
	Addr         string        `toml:"addr"`
	Timeout      time.Duration `toml:"timeout"`
	MaxShapes    int           `toml:"max_shapes"`
	MaxBodyBytes int64         `toml:"max_body_bytes"`
	CachePrefix  string        `toml:"cache_prefix"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			Kind:         pipeline.DefaultAnalysis,
			Reachability: analysis.Weak.String(),
			MaxPaths:     analysis.DefaultMaxPaths,
			MaxCycles:    analysis.DefaultMaxCycles,
		},
		Layout: LayoutConfig{
			Algorithm: pipeline.DefaultAlgorithm,
		},
		Export: ExportConfig{
			Formats: []string{pipeline.DefaultFormat},
		},
		Cache: CacheConfig{
			Backend: BackendFile,
			Dir:     DefaultCacheDir(),
			Entries: cache.DefaultMemoryEntries,
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: AppName + ":",
			},
		},
		Server: ServerConfig{
			Addr:         DefaultAddr,
			Timeout:      DefaultTimeout,
			MaxShapes:    DefaultMaxShapes,
			MaxBodyBytes: DefaultMaxBodyBytes,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultCacheDir returns the cache directory using the XDG convention
// (~/.cache/diagramkit/). It returns "" when no home directory is known.
func DefaultCacheDir() string {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cache", AppName)
}

// Load reads path over the defaults and then applies environment overrides.
// An empty path loads DefaultFile if it exists and skips the file otherwise.
// Unknown keys in the file are returned as warnings.
func Load(path string) (*Config, []string, error) {
	cfg := Default()
	var warnings []string

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	if err := errors.ValidatePath(path); err != nil {
		return nil, nil, err
	}

	md, err := toml.DecodeFile(path, cfg)
	switch {
	case err == nil:
		for _, key := range md.Undecoded() {
			warnings = append(warnings, fmt.Sprintf("%s: unknown key %q", path, key.String()))
		}
	case os.IsNotExist(err) && !explicit:
	case os.IsNotExist(err):
		return nil, nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	default:
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, nil, err
	}
	return cfg, warnings, nil
}

// envVar describes one environment override.
type envVar struct {
	name string
	set  func(c *Config, v string) error
}

var envVars = []envVar{
	{"ANALYSIS_KIND", func(c *Config, v string) error { c.Analysis.Kind = v; return nil }},
	{"ANALYSIS_REACHABILITY", func(c *Config, v string) error { c.Analysis.Reachability = v; return nil }},
	{"LAYOUT_ALGORITHM", func(c *Config, v string) error { c.Layout.Algorithm = v; return nil }},
	{"EXPORT_FORMATS", func(c *Config, v string) error { c.Export.Formats = splitList(v); return nil }},
	{"CACHE_BACKEND", func(c *Config, v string) error { c.Cache.Backend = v; return nil }},
	{"CACHE_DIR", func(c *Config, v string) error { c.Cache.Dir = v; return nil }},
	{"CACHE_ENTRIES", intVar(func(c *Config) *int { return &c.Cache.Entries })},
	{"REDIS_ADDR", func(c *Config, v string) error { c.Cache.Redis.Addr = v; return nil }},
	{"REDIS_PASSWORD", func(c *Config, v string) error { c.Cache.Redis.Password = v; return nil }},
	{"REDIS_DB", intVar(func(c *Config) *int { return &c.Cache.Redis.DB })},
	{"SERVER_ADDR", func(c *Config, v string) error { c.Server.Addr = v; return nil }},
	{"SERVER_TIMEOUT", func(c *Config, v string) error {
		d, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		c.Server.Timeout = d
		return nil
	}},
	{"SERVER_MAX_SHAPES", intVar(func(c *Config) *int { return &c.Server.MaxShapes })},
	{"LOG_LEVEL", func(c *Config, v string) error { c.Log.Level = v; return nil }},
}

func intVar(field func(*Config) *int) func(*Config, string) error {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*field(c) = n
		return nil
	}
}

// ApplyEnv applies DIAGRAMKIT_* overrides found through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	for _, ev := range envVars {
		v, ok := lookup(EnvPrefix + ev.name)
		if !ok {
			continue
		}
		if err := ev.set(c, strings.TrimSpace(v)); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "%s%s", EnvPrefix, ev.name)
		}
	}
	return nil
}

// Validate returns an error for settings that cannot work and warnings for
// settings that will be ignored or adjusted.
func (c *Config) Validate() ([]string, error) {
	var warnings []string

	opts := c.PipelineOptions()
	if _, _, err := opts.AnalysisOptions(); err != nil {
		return nil, err
	}
	if _, _, err := opts.LayoutOptions(); err != nil {
		return nil, err
	}
	if _, _, err := opts.ExportOptions(); err != nil {
		return nil, err
	}

	switch c.Cache.Backend {
	case BackendNone, BackendMemory:
	case BackendFile:
		if c.Cache.Dir == "" {
			warnings = append(warnings, "cache.dir is empty; caching disabled")
		} else if err := errors.ValidatePath(c.Cache.Dir); err != nil {
			return nil, err
		}
	case BackendRedis:
		if c.Cache.Redis.Addr == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "cache.redis.addr is required for the redis backend")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.Backend == BackendMemory && c.Cache.Entries <= 0 {
		warnings = append(warnings, fmt.Sprintf("cache.entries must be positive; using %d", cache.DefaultMemoryEntries))
		c.Cache.Entries = cache.DefaultMemoryEntries
	}

	if c.Server.Timeout <= 0 {
		warnings = append(warnings, "server.timeout is not positive; requests are not bounded")
	}
	if c.Server.MaxShapes <= 0 {
		warnings = append(warnings, "server.max_shapes is not positive; diagram size is not limited")
	}
	if c.Server.MaxBodyBytes <= 0 {
		warnings = append(warnings, fmt.Sprintf("server.max_body_bytes must be positive; using %d", DefaultMaxBodyBytes))
		c.Server.MaxBodyBytes = DefaultMaxBodyBytes
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		warnings = append(warnings, fmt.Sprintf("unknown log.level %q; using info", c.Log.Level))
		c.Log.Level = "info"
	}
	return warnings, nil
}

// LogLevel returns the configured level, defaulting to info.
func (c *Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// PipelineOptions returns pipeline options seeded from the configuration.
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Analysis:     c.Analysis.Kind,
		Reachability: c.Analysis.Reachability,
		MaxPaths:     c.Analysis.MaxPaths,
		MaxCycles:    c.Analysis.MaxCycles,
		Algorithm:    c.Layout.Algorithm,
		Layout:       c.Layout.Params,
		Formats:      append([]string(nil), c.Export.Formats...),
		Styles:       c.Export.Styles,
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
