package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/diagramkit/internal/config"
	"github.com/matzehuels/diagramkit/pkg/buildinfo"
	"github.com/matzehuels/diagramkit/pkg/cache"
	"github.com/matzehuels/diagramkit/pkg/diagram"
	"github.com/matzehuels/diagramkit/pkg/observability"
	"github.com/matzehuels/diagramkit/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = config.AppName

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
	// Config is loaded before any subcommand runs.
	Config *config.Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "diagramkit analyzes, lays out and exports diagrams",
		Long: `diagramkit reads diagrams as JSON (shapes and connections), reports
structural metrics, positions shapes with one of several layout algorithms and
exports the result as draw.io, Mermaid, DOT, SVG or JSON.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: ./"+config.DefaultFile+" if present)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.kindsCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the configuration, sets the log level and attaches the logger
// to the command context.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	cfg, warnings, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	more, err := cfg.Validate()
	if err != nil {
		return err
	}
	c.Config = cfg

	level := cfg.LogLevel()
	if c.verbose {
		level = LogDebug
	}
	c.SetLogLevel(level)
	for _, w := range append(warnings, more...) {
		c.Logger.Warn(w)
	}
	if level == LogDebug {
		observability.NewLogHooks(c.Logger).Install()
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if prefix := c.Config.Server.CachePrefix; prefix != "" {
		keyer = cache.NewScopedKeyer(nil, prefix)
	}
	return pipeline.NewRunner(ch, keyer, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	cc := c.Config.Cache
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cc.Backend {
	case config.BackendMemory:
		return cache.NewMemoryCache(cc.Entries)
	case config.BackendRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cc.Redis.Addr,
			Password: cc.Redis.Password,
			DB:       cc.Redis.DB,
			Prefix:   cc.Redis.Prefix,
		})
	case config.BackendFile:
		if cc.Dir == "" {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(cc.Dir)
	default:
		return cache.NewNullCache(), nil
	}
}

// =============================================================================
// Options Helpers
// =============================================================================

// pipelineOptions seeds options from the configuration.
func (c *CLI) pipelineOptions() pipeline.Options {
	opts := c.Config.PipelineOptions()
	opts.Logger = c.Logger
	return opts
}

// readDiagram reads a diagram from path, or from stdin when path is "-".
func readDiagram(path string) (diagram.Diagram, error) {
	if path == "-" {
		d, err := diagram.Read(os.Stdin)
		if err != nil {
			return diagram.Diagram{}, fmt.Errorf("read stdin: %w", err)
		}
		return d, nil
	}
	return diagram.ReadFile(path)
}

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

// withConfig overlays options set on the command line onto the configured
// defaults.
func (c *CLI) withConfig(flags pipeline.Options) pipeline.Options {
	opts := c.pipelineOptions()
	if flags.Analysis != "" {
		opts.Analysis = flags.Analysis
	}
	if flags.Reachability != "" {
		opts.Reachability = flags.Reachability
	}
	if flags.MaxPaths != 0 {
		opts.MaxPaths = flags.MaxPaths
	}
	if flags.MaxCycles != 0 {
		opts.MaxCycles = flags.MaxCycles
	}
	if flags.Algorithm != "" {
		opts.Algorithm = flags.Algorithm
	}
	opts.Layout = flags.Layout.Merge(opts.Layout)
	if len(flags.Formats) > 0 {
		opts.Formats = flags.Formats
	}
	opts.Strict = flags.Strict
	opts.Refresh = flags.Refresh
	return opts
}
