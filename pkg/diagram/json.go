package diagram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Marshal encodes a diagram as indented JSON.
func Marshal(d Diagram) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(d, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes JSON bytes into a diagram, applying default shape sizes.
func Unmarshal(data []byte) (Diagram, error) {
	return Read(bytes.NewReader(data))
}

// Write encodes a diagram as indented JSON to w.
func Write(d Diagram, w io.Writer) error {
	if d.Shapes == nil {
		d.Shapes = []Shape{}
	}
	if d.Connections == nil {
		d.Connections = []Connection{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Read decodes a JSON diagram from r. Shapes without a size get
// [DefaultShapeWidth] × [DefaultShapeHeight].
func Read(r io.Reader) (Diagram, error) {
	var d Diagram
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Diagram{}, fmt.Errorf("decode: %w", err)
	}
	d.SetDefaults()
	return d, nil
}

// WriteFile writes a diagram to a JSON file.
func WriteFile(d Diagram, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(d, f)
}

// ReadFile reads a JSON diagram file.
func ReadFile(path string) (Diagram, error) {
	f, err := os.Open(path)
	if err != nil {
		return Diagram{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// SetDefaults replaces nil slices with empty ones and gives unsized shapes
// the default size. Decoders that bypass [Read] call it themselves.
func (d *Diagram) SetDefaults() {
	if d.Shapes == nil {
		d.Shapes = []Shape{}
	}
	if d.Connections == nil {
		d.Connections = []Connection{}
	}
	for i := range d.Shapes {
		if d.Shapes[i].Size.Width <= 0 {
			d.Shapes[i].Size.Width = DefaultShapeWidth
		}
		if d.Shapes[i].Size.Height <= 0 {
			d.Shapes[i].Size.Height = DefaultShapeHeight
		}
	}
}
