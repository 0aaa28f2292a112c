package export

import (
	"context"
	"strings"

	"github.com/matzehuels/diagramkit/pkg/diagram"
	"github.com/matzehuels/diagramkit/pkg/errors"
	"github.com/matzehuels/diagramkit/pkg/layout"
)

// Format names an output format.
type Format string

const (
	DrawIO  Format = "drawio"
	Mermaid Format = "mermaid"
	DOT     Format = "dot"
	SVG     Format = "svg"
	JSON    Format = "json"
)

// Formats returns every supported format.
func Formats() []Format {
	return []Format{DrawIO, Mermaid, DOT, SVG, JSON}
}

// ParseFormat normalizes s and reports whether it names a supported format.
// "draw.io" and "mmd" are accepted as aliases.
func ParseFormat(s string) (Format, bool) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case DrawIO, "draw.io":
		return DrawIO, true
	case Mermaid, "mmd":
		return Mermaid, true
	case DOT, SVG, JSON:
		return f, true
	default:
		return f, false
	}
}

// Extension returns the conventional file extension, including the dot.
func (f Format) Extension() string {
	switch f {
	case DrawIO:
		return ".drawio"
	case Mermaid:
		return ".mmd"
	case DOT:
		return ".dot"
	case SVG:
		return ".svg"
	default:
		return ".json"
	}
}

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	switch f {
	case DrawIO:
		return "application/xml"
	case SVG:
		return "image/svg+xml"
	case JSON:
		return "application/json"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Options configures an export. The zero value uses [DefaultStyles] and a
// top-down direction.
type Options struct {
	Styles    Styles
	Direction layout.Direction
}

func (o Options) leftRight() bool { return o.Direction == layout.LeftRight }

// Export serializes d in the requested format. An unknown format returns an
// error with code [errors.ErrCodeInvalidFormat].
func Export(ctx context.Context, d diagram.Diagram, f Format, opts Options) ([]byte, error) {
	switch f {
	case DrawIO:
		return ToDrawIO(d, opts)
	case Mermaid:
		return []byte(ToMermaid(d, opts)), nil
	case DOT:
		return []byte(ToDOT(d, opts)), nil
	case SVG:
		return ToSVG(ctx, d, opts)
	case JSON:
		data, err := diagram.Marshal(d)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode diagram")
		}
		return data, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown export format %q", f)
	}
}

// edges returns the connections whose endpoints both exist.
func edges(d diagram.Diagram) []diagram.Connection {
	ids := make(map[string]bool, len(d.Shapes))
	for _, s := range d.Shapes {
		ids[s.ID] = true
	}
	out := make([]diagram.Connection, 0, len(d.Connections))
	for _, c := range d.Connections {
		if ids[c.Source] && ids[c.Target] {
			out = append(out, c)
		}
	}
	return out
}

// uniqueShapes drops later shapes that repeat an earlier ID.
func uniqueShapes(d diagram.Diagram) []diagram.Shape {
	seen := make(map[string]bool, len(d.Shapes))
	out := make([]diagram.Shape, 0, len(d.Shapes))
	for _, s := range d.Shapes {
		if seen[s.ID] {
			continue
		}
		seen[s.ID] = true
		out = append(out, s)
	}
	return out
}

// placeAll returns a copy of d in which every unplaced shape takes its
// position from a grid layout. Placed shapes keep their coordinates.
func placeAll(d diagram.Diagram) diagram.Diagram {
	out := d.Clone()
	var missing bool
	for _, s := range out.Shapes {
		if !s.Placed() {
			missing = true
			break
		}
	}
	if !missing {
		return out
	}
	gridded := layout.Run(d, layout.Grid)
	for i, s := range out.Shapes {
		if !s.Placed() {
			out.Shapes[i] = gridded.Shapes[i]
		}
	}
	return out
}

func anyPlaced(d diagram.Diagram) bool {
	for _, s := range d.Shapes {
		if s.Placed() {
			return true
		}
	}
	return false
}
