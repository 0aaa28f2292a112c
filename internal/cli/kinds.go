package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/diagramkit/pkg/analysis"
	"github.com/matzehuels/diagramkit/pkg/diagram"
	"github.com/matzehuels/diagramkit/pkg/export"
	"github.com/matzehuels/diagramkit/pkg/layout"
)

// kindsCommand lists the names every other command accepts.
func (c *CLI) kindsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List analyses, layout algorithms, export formats and shape kinds",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, row := range kindRows() {
				printKeyValue(row[0], row[1])
			}
		},
	}
}

func kindRows() [][]string {
	return [][]string{
		{"analyses", joinNames(analysis.Kinds())},
		{"algorithms", joinNames(layout.Algorithms())},
		{"formats", joinNames(export.Formats())},
		{"shapes", joinNames(diagram.Kinds())},
	}
}

func joinNames[T any](xs []T) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprint(x)
	}
	return strings.Join(parts, ", ")
}
