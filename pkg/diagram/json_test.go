package diagram

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestUnmarshalAppliesDefaults(t *testing.T) {
	data := []byte(`{
	  "shapes": [
	    {"id": "start", "type": "terminator"},
	    {"id": "check", "type": "diamond", "position": {"x": 0, "y": 0}, "size": {"width": 80, "height": 80}}
	  ],
	  "connections": [{"source": "start", "target": "check", "label": "go"}]
	}`)

	d, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if d.Shapes[0].Type != KindTerminator {
		t.Errorf("Type = %v, want terminator", d.Shapes[0].Type)
	}
	if d.Shapes[0].Size != (Size{Width: DefaultShapeWidth, Height: DefaultShapeHeight}) {
		t.Errorf("default size not applied: %+v", d.Shapes[0].Size)
	}
	if d.Shapes[0].Placed() {
		t.Error("shape without position should be unplaced")
	}
	if !d.Shapes[1].Placed() {
		t.Error("shape at origin should be placed")
	}
	if d.Connections[0].Label != "go" {
		t.Errorf("Label = %q, want go", d.Connections[0].Label)
	}
}

func TestUnmarshalRejectsUnknownKind(t *testing.T) {
	_, err := Unmarshal([]byte(`{"shapes":[{"id":"a","type":"star"}]}`))
	if !errors.Is(err, ErrUnknownShapeKind) {
		t.Errorf("error = %v, want ErrUnknownShapeKind", err)
	}
}

func TestMarshalEmptyDiagram(t *testing.T) {
	data, err := Marshal(Diagram{})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, `"shapes": []`) || !strings.Contains(s, `"connections": []`) {
		t.Errorf("empty diagram should encode empty arrays, got %s", s)
	}
}

func TestWriteReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flow.json")
	d := chain("a", "b", "c")
	d.Shapes[1].Type = KindDiamond
	d.Shapes[2] = d.Shapes[2].At(40, 80)

	if err := WriteFile(d, path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if len(got.Shapes) != 3 || len(got.Connections) != 2 {
		t.Fatalf("got %d shapes, %d connections", len(got.Shapes), len(got.Connections))
	}
	if got.Shapes[1].Type != KindDiamond {
		t.Errorf("Type = %v, want diamond", got.Shapes[1].Type)
	}
	if got.Shapes[2].Pos() != (Point{X: 40, Y: 80}) {
		t.Errorf("Pos = %v, want {40 80}", got.Shapes[2].Pos())
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
