package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/diagramkit/pkg/errors"
	"github.com/matzehuels/diagramkit/pkg/export"
	"github.com/matzehuels/diagramkit/pkg/pipeline"
)

type exportFlags struct {
	formats  string
	output   string
	noLayout bool
	noCache  bool
}

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		flags  exportFlags
		params layoutParamFlags
		opts   pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "export [diagram.json]",
		Short: "Lay out a diagram and export it",
		Long: `Lay out a diagram and export it.

Formats: drawio, mermaid, dot, svg, json. Several formats can be given as a
comma-separated list; each is written next to the output base name with its
own extension. With --no-layout the shapes keep the positions they have.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params.apply(cmd.Flags(), &opts.Layout)
			opts.Formats = parseFormats(flags.formats)
			return c.runExport(cmd.Context(), args[0], c.withConfig(opts), flags)
		},
	}

	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output formats, comma-separated (default from config: svg)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file or base name (default: <input>.<ext>, - for stdout)")
	cmd.Flags().StringVarP(&opts.Algorithm, "algorithm", "a", "", "layout algorithm (default from config: hierarchical)")
	params.register(cmd.Flags(), &opts.Layout)
	cmd.Flags().BoolVar(&flags.noLayout, "no-layout", false, "export shapes at their current positions")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "reject dangling connections and duplicate ids")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runExport(ctx context.Context, input string, opts pipeline.Options, flags exportFlags) error {
	d, err := readDiagram(input)
	if err != nil {
		return err
	}
	opts.SetDefaults()
	toStdout := flags.output == "-" || (flags.output == "" && input == "-")
	if toStdout && len(opts.Formats) != 1 {
		return errors.New(errors.ErrCodeInvalidInput, "writing to stdout needs exactly one format, got %d", len(opts.Formats))
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Exporting "+strings.Join(opts.Formats, ", ")+"...")
	spinner.Start()

	positioned := d
	layoutCached := true
	if !flags.noLayout {
		positioned, layoutCached, err = runner.LayoutWithCacheInfo(ctx, d, opts)
		if err != nil {
			spinner.StopWithError("Layout failed")
			return err
		}
	}
	artifacts, exportCached, err := runner.ExportWithCacheInfo(ctx, positioned, opts)
	if err != nil {
		spinner.StopWithError("Export failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Exported %d artifacts", len(artifacts)))

	if toStdout {
		f, _ := export.ParseFormat(opts.Formats[0])
		_, err := os.Stdout.Write(artifacts[string(f)])
		return err
	}

	base := flags.output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	}
	paths, err := writeArtifacts(artifacts, base, input)
	if err != nil {
		return err
	}

	printSuccess("Export complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(len(d.Shapes), len(d.Connections), layoutCached && exportCached)
	return nil
}

// writeArtifacts writes each artifact to base plus the format's extension.
// A format extension already on base is replaced. A path that would
// overwrite the input gets an ".export" infix instead.
func writeArtifacts(artifacts map[string][]byte, base, input string) ([]string, error) {
	names := make([]string, 0, len(artifacts))
	for name := range artifacts {
		names = append(names, name)
	}
	slices.Sort(names)

	var paths []string
	for _, name := range names {
		f, _ := export.ParseFormat(name)
		path := artifactPath(base, f)
		if filepath.Clean(path) == filepath.Clean(input) {
			path = strings.TrimSuffix(path, f.Extension()) + ".export" + f.Extension()
		}
		if err := errors.ValidatePath(path); err != nil {
			return nil, err
		}
		if err := os.WriteFile(path, artifacts[name], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func artifactPath(base string, f export.Format) string {
	ext := filepath.Ext(base)
	for _, known := range export.Formats() {
		if strings.EqualFold(ext, known.Extension()) {
			base = strings.TrimSuffix(base, ext)
			break
		}
	}
	return base + f.Extension()
}
