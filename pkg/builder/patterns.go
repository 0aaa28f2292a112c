package builder

import (
	"slices"
	"strconv"

	"github.com/matzehuels/diagramkit/pkg/diagram"
)

// Swimlane geometry.
const (
	LaneWidth  = 200.0
	LaneHeader = 40.0
	StepGap    = 100.0
)

// Linear returns start → steps… → end. Steps are rectangles with IDs
// "step-1", "step-2", …; the endpoints are terminators "start" and "end".
func Linear(steps ...string) diagram.Diagram {
	b := New()
	b.Add(diagram.Shape{ID: "start", Type: diagram.KindTerminator, Label: "Start"})
	ids := []string{"start"}
	for i, step := range steps {
		id := "step-" + strconv.Itoa(i+1)
		b.Add(diagram.Shape{ID: id, Type: diagram.KindRectangle, Label: step})
		ids = append(ids, id)
	}
	b.Add(diagram.Shape{ID: "end", Type: diagram.KindTerminator, Label: "End"})
	ids = append(ids, "end")
	return b.Chain(ids...).MustBuild()
}

// Decision returns a diamond asking question with a "yes" and a "no" branch.
func Decision(question, yes, no string) diagram.Diagram {
	return New().
		Add(diagram.Shape{ID: "decision", Type: diagram.KindDiamond, Label: question}).
		Add(diagram.Shape{ID: "yes", Type: diagram.KindRectangle, Label: yes}).
		Add(diagram.Shape{ID: "no", Type: diagram.KindRectangle, Label: no}).
		ConnectLabeled("decision", "yes", "yes").
		ConnectLabeled("decision", "no", "no").
		MustBuild()
}

// Swimlane lays out one column per lane, in lane-name order. Each column
// starts with a note shape naming the lane, followed by its steps top to
// bottom. Shape IDs are "lane-<i>" and "lane-<i>-step-<j>", both 1-based.
// The result is already positioned.
func Swimlane(lanes map[string][]string) diagram.Diagram {
	names := make([]string, 0, len(lanes))
	for name := range lanes {
		names = append(names, name)
	}
	slices.Sort(names)

	b := New()
	for i, name := range names {
		x := float64(i) * LaneWidth
		lane := "lane-" + strconv.Itoa(i+1)
		b.Add(diagram.Shape{
			ID:    lane,
			Type:  diagram.KindNote,
			Label: name,
			Size:  diagram.Size{Width: diagram.DefaultShapeWidth, Height: LaneHeader},
		}.At(x, 0))

		prev := lane
		for j, step := range lanes[name] {
			id := lane + "-step-" + strconv.Itoa(j+1)
			b.Add(diagram.Shape{ID: id, Type: diagram.KindRectangle, Label: step}.
				At(x, LaneHeader+float64(j+1)*StepGap-StepGap/2))
			b.Connect(prev, id)
			prev = id
		}
	}
	return b.MustBuild()
}
