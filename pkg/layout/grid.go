package layout

import (
	"math"

	"github.com/matzehuels/diagramkit/pkg/diagram"
)

// Columns returns the column count the grid layout uses for n shapes.
func Columns(n, requested int) int {
	if requested >= 1 {
		return requested
	}
	return max(1, int(math.Ceil(math.Sqrt(float64(n)))))
}

// grid places shapes in row-major order.
func grid(d *diagram.Diagram, cfg config) {
	cols := Columns(len(d.Shapes), cfg.columns)
	for i, s := range d.Shapes {
		row, col := i/cols, i%cols
		d.Shapes[i] = s.At(
			cfg.padding+float64(col)*(cfg.cellWidth+cfg.padding),
			cfg.padding+float64(row)*(cfg.cellHeight+cfg.padding),
		)
	}
}
