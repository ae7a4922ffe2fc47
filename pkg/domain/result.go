package domain

import (
	"encoding/json"

	"gonum.org/v1/gonum/spatial/r3"
)

// Centroid is the result of an area-weighted centroid computation.
// When Defined is false the total area was exactly zero (no faces, or only
// degenerate ones) and Point carries no meaning: it is not the origin.
type Centroid struct {
	Point   r3.Vec `json:"point,omitempty"`
	Defined bool   `json:"defined"`

	TotalArea       float64 `json:"total_area"`
	Faces           int     `json:"faces"`
	DegenerateFaces int     `json:"degenerate_faces"`
}

// Value returns the centroid and whether it is defined, in comma-ok form.
func (c Centroid) Value() (r3.Vec, bool) {
	if !c.Defined {
		return r3.Vec{}, false
	}
	return c.Point, true
}

// MarshalJSON leaves "point" out of an undefined centroid so it cannot be read
// as the origin.
func (c Centroid) MarshalJSON() ([]byte, error) {
	type fields Centroid
	out := struct {
		fields
		Point *r3.Vec `json:"point,omitempty"`
	}{fields: fields(c)}
	if c.Defined {
		out.Point = &c.Point
	}
	return json.Marshal(out)
}

// ScaleSummary is the diagnostic report of a scaling run. It is not part of
// the rewritten document.
type ScaleSummary struct {
	Surfaces   int     `json:"surfaces"`
	Breaklines int     `json:"breaklines"`
	Points     int     `json:"points"`
	Faces      int     `json:"faces"`
	Factor     float64 `json:"factor"`
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min r3.Vec `json:"min"`
	Max r3.Vec `json:"max"`
}

// Stats describes a parsed TIN.
type Stats struct {
	Points          int     `json:"points"`
	Faces           int     `json:"faces"`
	FilteredFaces   int     `json:"filtered_faces"`
	DegenerateFaces int     `json:"degenerate_faces"`
	DuplicatePoints int     `json:"duplicate_points"`
	SurfaceArea     float64 `json:"surface_area"`
	Bounds          *Bounds `json:"bounds,omitempty"`
}
