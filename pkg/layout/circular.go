package layout

import (
	"math"

	"github.com/matzehuels/diagramkit/pkg/diagram"
)

// circular places shapes evenly on a circle in diagram order, starting at
// angle zero.
func circular(d *diagram.Diagram, cfg config) {
	n := len(d.Shapes)
	if n == 0 {
		return
	}
	step := 2 * math.Pi / float64(n)
	for i, s := range d.Shapes {
		angle := float64(i) * step
		d.Shapes[i] = s.At(
			cfg.centerX+cfg.radius*math.Cos(angle),
			cfg.centerY+cfg.radius*math.Sin(angle),
		)
	}
}
