package layout

// Params is the serializable form of the layout options, used by
// configuration files, the command line and HTTP requests. Nil fields keep
// the algorithm's default.
type Params struct {
	Direction         string   `json:"direction,omitempty" toml:"direction"`
	LevelSeparation   *float64 `json:"levelSeparation,omitempty" toml:"level_separation"`
	NodeSeparation    *float64 `json:"nodeSeparation,omitempty" toml:"node_separation"`
	SiblingSeparation *float64 `json:"siblingSeparation,omitempty" toml:"sibling_separation"`
	Iterations        *int     `json:"iterations,omitempty" toml:"iterations"`
	K                 *float64 `json:"k,omitempty" toml:"k"`
	C                 *float64 `json:"c,omitempty" toml:"c"`
	Radius            *float64 `json:"radius,omitempty" toml:"radius"`
	CenterX           *float64 `json:"centerX,omitempty" toml:"center_x"`
	CenterY           *float64 `json:"centerY,omitempty" toml:"center_y"`
	Columns           *int     `json:"columns,omitempty" toml:"columns"`
	CellWidth         *float64 `json:"cellWidth,omitempty" toml:"cell_width"`
	CellHeight        *float64 `json:"cellHeight,omitempty" toml:"cell_height"`
	Padding           *float64 `json:"padding,omitempty" toml:"padding"`
	Seed              *uint64  `json:"seed,omitempty" toml:"seed"`
}

// Options converts p into layout options. It fails only on an unknown
// direction.
func (p Params) Options() ([]Option, error) {
	var opts []Option
	if p.Direction != "" {
		dir, err := ParseDirection(p.Direction)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithDirection(dir))
	}
	if p.LevelSeparation != nil {
		opts = append(opts, WithLevelSeparation(*p.LevelSeparation))
	}
	if p.NodeSeparation != nil {
		opts = append(opts, WithNodeSeparation(*p.NodeSeparation))
	}
	if p.SiblingSeparation != nil {
		opts = append(opts, WithSiblingSeparation(*p.SiblingSeparation))
	}
	if p.Iterations != nil {
		opts = append(opts, WithIterations(*p.Iterations))
	}
	if p.K != nil {
		opts = append(opts, WithK(*p.K))
	}
	if p.C != nil {
		opts = append(opts, WithC(*p.C))
	}
	if p.Radius != nil {
		opts = append(opts, WithRadius(*p.Radius))
	}
	if p.CenterX != nil || p.CenterY != nil {
		x, y := DefaultCenterX, DefaultCenterY
		if p.CenterX != nil {
			x = *p.CenterX
		}
		if p.CenterY != nil {
			y = *p.CenterY
		}
		opts = append(opts, WithCenter(x, y))
	}
	if p.Columns != nil {
		opts = append(opts, WithColumns(*p.Columns))
	}
	if p.CellWidth != nil || p.CellHeight != nil {
		w, h := DefaultCellWidth, DefaultCellHeight
		if p.CellWidth != nil {
			w = *p.CellWidth
		}
		if p.CellHeight != nil {
			h = *p.CellHeight
		}
		opts = append(opts, WithCell(w, h))
	}
	if p.Padding != nil {
		opts = append(opts, WithPadding(*p.Padding))
	}
	if p.Seed != nil {
		opts = append(opts, WithSeed(*p.Seed))
	}
	return opts, nil
}

// Merge returns p with every nil field filled from base.
func (p Params) Merge(base Params) Params {
	if p.Direction == "" {
		p.Direction = base.Direction
	}
	p.LevelSeparation = orElse(p.LevelSeparation, base.LevelSeparation)
	p.NodeSeparation = orElse(p.NodeSeparation, base.NodeSeparation)
	p.SiblingSeparation = orElse(p.SiblingSeparation, base.SiblingSeparation)
	p.Iterations = orElse(p.Iterations, base.Iterations)
	p.K = orElse(p.K, base.K)
	p.C = orElse(p.C, base.C)
	p.Radius = orElse(p.Radius, base.Radius)
	p.CenterX = orElse(p.CenterX, base.CenterX)
	p.CenterY = orElse(p.CenterY, base.CenterY)
	p.Columns = orElse(p.Columns, base.Columns)
	p.CellWidth = orElse(p.CellWidth, base.CellWidth)
	p.CellHeight = orElse(p.CellHeight, base.CellHeight)
	p.Padding = orElse(p.Padding, base.Padding)
	p.Seed = orElse(p.Seed, base.Seed)
	return p
}

func orElse[T any](v, fallback *T) *T {
	if v != nil {
		return v
	}
	return fallback
}
