package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/diagramkit/pkg/analysis"
	"github.com/matzehuels/diagramkit/pkg/pipeline"
)

type analyzeFlags struct {
	asJSON  bool
	noCache bool
}

// analyzeCommand creates the analyze command.
func (c *CLI) analyzeCommand() *cobra.Command {
	var (
		flags analyzeFlags
		opts  pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "analyze [diagram.json]",
		Short: "Report structural metrics for a diagram",
		Long: `Report structural metrics for a diagram.

Kinds: complexity, connectivity, hierarchy, cycles, paths, clusters and
metrics (all sections plus an overall score). Use "-" to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAnalyze(cmd.Context(), args[0], c.withConfig(opts), flags)
		},
	}

	cmd.Flags().StringVarP(&opts.Analysis, "kind", "k", "", "analysis kind (default from config: metrics)")
	cmd.Flags().StringVar(&opts.Reachability, "reachability", "", "connectivity mode: weak, forward")
	cmd.Flags().IntVar(&opts.MaxPaths, "max-paths", 0, "stop path enumeration after this many paths")
	cmd.Flags().IntVar(&opts.MaxCycles, "max-cycles", 0, "stop cycle enumeration after this many cycles")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "reject dangling connections and duplicate ids")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")
	cmd.Flags().BoolVar(&flags.asJSON, "json", false, "print the report as JSON")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runAnalyze(ctx context.Context, input string, opts pipeline.Options, flags analyzeFlags) error {
	d, err := readDiagram(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Analyzing diagram...")
	spinner.Start()

	report, cached, err := runner.AnalyzeWithCacheInfo(ctx, d, opts)
	if err != nil {
		spinner.StopWithError("Analysis failed")
		return err
	}
	spinner.Stop()

	if flags.asJSON {
		return writeReportJSON(report)
	}
	printReport(report)
	printNewline()
	printStats(len(d.Shapes), len(d.Connections), cached)
	return nil
}

func writeReportJSON(r analysis.Report) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
