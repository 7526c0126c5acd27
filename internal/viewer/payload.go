// Package viewer forwards point sets to an external 3D viewer, falling back
// to a JSON file when the viewer cannot be reached.
package viewer

import (
	"encoding/json"
	"fmt"
	"os"

	"archviz/internal/dataset"
)

// FallbackFile is written into the output directory when delivery fails.
const FallbackFile = "3d_data.json"

// DefaultType labels points from datasets without a type column.
const DefaultType = "default"

// Point is the wire form of one point.
type Point struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Z    float64 `json:"z"`
	Type string  `json:"type"`
}

// Payload is the document sent to the viewer and written as fallback.
type Payload struct {
	Points     []Point `json:"points"`
	TotalCount int     `json:"total_count"`
}

// NewPayload converts a dataset. Missing z becomes 0 and missing type "default".
func NewPayload(ds *dataset.Dataset) Payload {
	hasZ, hasType := ds.HasZ(), ds.HasType()
	pts := make([]Point, len(ds.Points))
	for i, p := range ds.Points {
		pts[i] = Point{X: p.X, Y: p.Y, Type: DefaultType}
		if hasZ {
			pts[i].Z = p.Z
		}
		if hasType {
			pts[i].Type = p.Type
		}
	}
	return Payload{Points: pts, TotalCount: len(pts)}
}

// WriteFile stores the payload as indented JSON.
func WriteFile(path string, p Payload) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadPayload reads a payload previously written by WriteFile.
func LoadPayload(path string) (*Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("unmarshal payload: %w", err)
	}
	return &p, nil
}
