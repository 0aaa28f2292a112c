package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/diagramkit/pkg/diagram"
	"github.com/matzehuels/diagramkit/pkg/layout"
	"github.com/matzehuels/diagramkit/pkg/pipeline"
)

// layoutParamFlags holds the raw values of the optional layout flags. Only
// flags the user set end up in layout.Params.
type layoutParamFlags struct {
	levelSep   float64
	nodeSep    float64
	iterations int
	columns    int
	radius     float64
	seed       uint64
}

func (f *layoutParamFlags) register(fs *pflag.FlagSet, p *layout.Params) {
	fs.StringVarP(&p.Direction, "direction", "d", "", "flow direction: top-down, left-right, bottom-up, right-left")
	fs.Float64Var(&f.levelSep, "level-sep", 0, "distance between levels (hierarchical, tree)")
	fs.Float64Var(&f.nodeSep, "node-sep", 0, "distance between shapes in a level")
	fs.IntVar(&f.iterations, "iterations", 0, "simulation steps (force-directed, organic)")
	fs.IntVar(&f.columns, "columns", 0, "grid columns (default: ceil(sqrt(n)))")
	fs.Float64Var(&f.radius, "radius", 0, "circle radius (circular)")
	fs.Uint64Var(&f.seed, "seed", 0, "random seed (force-directed, organic)")
}

func (f *layoutParamFlags) apply(fs *pflag.FlagSet, p *layout.Params) {
	if fs.Changed("level-sep") {
		p.LevelSeparation = &f.levelSep
	}
	if fs.Changed("node-sep") {
		p.NodeSeparation = &f.nodeSep
	}
	if fs.Changed("iterations") {
		p.Iterations = &f.iterations
	}
	if fs.Changed("columns") {
		p.Columns = &f.columns
	}
	if fs.Changed("radius") {
		p.Radius = &f.radius
	}
	if fs.Changed("seed") {
		p.Seed = &f.seed
	}
}

type layoutFlags struct {
	output  string
	pick    bool
	noCache bool
}

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags  layoutFlags
		params layoutParamFlags
		opts   pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "layout [diagram.json]",
		Short: "Position every shape of a diagram",
		Long: `Position every shape of a diagram.

The output is the same diagram with a position on every shape, written as
JSON. Pass it to 'export' to produce draw.io, Mermaid, DOT or SVG output.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params.apply(cmd.Flags(), &opts.Layout)
			if flags.pick {
				alg, ok, err := pickAlgorithm()
				if err != nil {
					return err
				}
				if !ok {
					printInfo("No algorithm selected")
					return nil
				}
				opts.Algorithm = string(alg)
			}
			return c.runLayout(cmd.Context(), args[0], c.withConfig(opts), flags)
		},
	}

	cmd.Flags().StringVarP(&opts.Algorithm, "algorithm", "a", "", "layout algorithm (default from config: hierarchical)")
	params.register(cmd.Flags(), &opts.Layout)
	cmd.Flags().BoolVar(&flags.pick, "pick", false, "choose the algorithm interactively")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default: <input>.layout.json, - for stdout)")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "reject dangling connections and duplicate ids")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, flags layoutFlags) error {
	d, err := readDiagram(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", opts.Algorithm))
	spinner.Start()

	positioned, cached, err := runner.LayoutWithCacheInfo(ctx, d, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()
	prog.done("Computed layout")

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := flags.output
	if outputPath == "-" || (outputPath == "" && input == "-") {
		return diagram.Write(positioned, os.Stdout)
	}
	if outputPath == "" {
		outputPath = strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
	}
	if err := diagram.WriteFile(positioned, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(d.Shapes), len(d.Connections), cached)
	printNewline()
	printNextStep("Export", appName+" export --no-layout "+outputPath)

	return nil
}
