package export

import (
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/matzehuels/diagramkit/pkg/diagram"
	"github.com/matzehuels/diagramkit/pkg/errors"
)

// MxGraphModel is the root element of a draw.io document.
type MxGraphModel struct {
	XMLName    xml.Name `xml:"mxGraphModel"`
	Dx         int      `xml:"dx,attr"`
	Dy         int      `xml:"dy,attr"`
	Grid       int      `xml:"grid,attr"`
	GridSize   int      `xml:"gridSize,attr"`
	Guides     int      `xml:"guides,attr"`
	Tooltips   int      `xml:"tooltips,attr"`
	Connect    int      `xml:"connect,attr"`
	Arrows     int      `xml:"arrows,attr"`
	Fold       int      `xml:"fold,attr"`
	Page       int      `xml:"page,attr"`
	PageScale  float64  `xml:"pageScale,attr"`
	PageWidth  int      `xml:"pageWidth,attr"`
	PageHeight int      `xml:"pageHeight,attr"`
	Root       Root     `xml:"root"`
}

type Root struct {
	MxCell []MxCell `xml:"mxCell"`
}

type MxCell struct {
	ID       string    `xml:"id,attr"`
	Parent   string    `xml:"parent,attr,omitempty"`
	Value    string    `xml:"value,attr,omitempty"`
	Style    string    `xml:"style,attr,omitempty"`
	Vertex   string    `xml:"vertex,attr,omitempty"`
	Edge     string    `xml:"edge,attr,omitempty"`
	Source   string    `xml:"source,attr,omitempty"`
	Target   string    `xml:"target,attr,omitempty"`
	Geometry *Geometry `xml:"mxGeometry,omitempty"`
}

type Geometry struct {
	Relative string  `xml:"relative,attr,omitempty"`
	As       string  `xml:"as,attr,omitempty"`
	X        float64 `xml:"x,attr,omitempty"`
	Y        float64 `xml:"y,attr,omitempty"`
	Width    float64 `xml:"width,attr,omitempty"`
	Height   float64 `xml:"height,attr,omitempty"`
}

// ToDrawIO encodes d as a draw.io document. Shape positions are the top-left
// corner of each vertex; unplaced shapes are laid out on a grid.
func ToDrawIO(d diagram.Diagram, opts Options) ([]byte, error) {
	model := drawioModel(placeAll(d), opts.Styles)
	out, err := xml.MarshalIndent(model, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal draw.io XML")
	}
	return []byte(xml.Header + string(out) + "\n"), nil
}

func drawioModel(d diagram.Diagram, styles Styles) *MxGraphModel {
	shapes := uniqueShapes(d)

	var maxX, maxY float64
	for _, s := range shapes {
		p, sz := s.Pos(), shapeSize(s)
		maxX = max(maxX, p.X+sz.Width)
		maxY = max(maxY, p.Y+sz.Height)
	}

	model := &MxGraphModel{
		Dx:         int(maxX),
		Dy:         int(maxY),
		Grid:       1,
		GridSize:   10,
		Guides:     1,
		Tooltips:   1,
		Connect:    1,
		Arrows:     1,
		Fold:       1,
		Page:       1,
		PageScale:  1,
		PageWidth:  max(850, int(maxX)+50),
		PageHeight: max(1100, int(maxY)+50),
		Root: Root{
			MxCell: []MxCell{
				{ID: "0"},
				{ID: "1", Parent: "0"},
			},
		},
	}

	cellIDs := make(map[string]string, len(shapes))
	for i, s := range shapes {
		id := "shape-" + strconv.Itoa(i)
		cellIDs[s.ID] = id
		p, sz := s.Pos(), shapeSize(s)
		model.Root.MxCell = append(model.Root.MxCell, MxCell{
			ID:     id,
			Parent: "1",
			Value:  s.DisplayLabel(),
			Style:  drawioStyle(s.Type, styles.Shape(s.Type)),
			Vertex: "1",
			Geometry: &Geometry{
				X:      p.X,
				Y:      p.Y,
				Width:  sz.Width,
				Height: sz.Height,
				As:     "geometry",
			},
		})
	}

	edgeStyle := fmt.Sprintf("edgeStyle=orthogonalEdgeStyle;rounded=0;orthogonalLoop=1;html=1;strokeColor=%s;", styles.Edge())
	for i, c := range edges(d) {
		model.Root.MxCell = append(model.Root.MxCell, MxCell{
			ID:     "edge-" + strconv.Itoa(i),
			Parent: "1",
			Value:  c.Label,
			Style:  edgeStyle,
			Edge:   "1",
			Source: cellIDs[c.Source],
			Target: cellIDs[c.Target],
			Geometry: &Geometry{
				Relative: "1",
				As:       "geometry",
			},
		})
	}
	return model
}

func drawioStyle(k diagram.ShapeKind, st ShapeStyle) string {
	return drawioShape(k) + fmt.Sprintf("fillColor=%s;strokeColor=%s;fontColor=%s;", st.Fill, st.Stroke, st.FontColor)
}

func drawioShape(k diagram.ShapeKind) string {
	switch k {
	case diagram.KindRectangle:
		return "rounded=0;whiteSpace=wrap;html=1;"
	case diagram.KindRounded:
		return "rounded=1;whiteSpace=wrap;html=1;"
	case diagram.KindDiamond:
		return "rhombus;whiteSpace=wrap;html=1;"
	case diagram.KindEllipse:
		return "ellipse;whiteSpace=wrap;html=1;"
	case diagram.KindCircle:
		return "ellipse;aspect=fixed;whiteSpace=wrap;html=1;"
	case diagram.KindParallelogram:
		return "shape=parallelogram;perimeter=parallelogramPerimeter;whiteSpace=wrap;html=1;fixedSize=1;"
	case diagram.KindHexagon:
		return "shape=hexagon;perimeter=hexagonPerimeter2;whiteSpace=wrap;html=1;fixedSize=1;"
	case diagram.KindCylinder:
		return "shape=cylinder3;whiteSpace=wrap;html=1;boundedLbl=1;backgroundOutline=1;size=15;"
	case diagram.KindDocument:
		return "shape=document;whiteSpace=wrap;html=1;boundedLbl=1;"
	case diagram.KindTerminator:
		return "rounded=1;whiteSpace=wrap;html=1;arcSize=50;"
	case diagram.KindNote:
		return "shape=note;whiteSpace=wrap;html=1;backgroundOutline=1;size=15;"
	case diagram.KindActor:
		return "shape=umlActor;verticalLabelPosition=bottom;verticalAlign=top;html=1;outlineConnect=0;"
	default:
		return "rounded=0;whiteSpace=wrap;html=1;"
	}
}

func shapeSize(s diagram.Shape) diagram.Size {
	sz := s.Size
	if sz.Width <= 0 {
		sz.Width = diagram.DefaultShapeWidth
	}
	if sz.Height <= 0 {
		sz.Height = diagram.DefaultShapeHeight
	}
	return sz
}
