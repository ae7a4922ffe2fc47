package domain

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Tag names of the TIN XML dialect.
const (
	TagPoint     = "P"
	TagFace      = "F"
	TagSurface   = "Surface"
	TagBreakline = "Breakline"

	// AttrID is the point identity attribute required by the Extractor.
	AttrID = "id"
)

// PointMap maps a point ID to its coordinate.
type PointMap map[int]r3.Vec

// Face is one triangular facet referencing three point IDs.
type Face [3]int

// Geometry is the Extractor's output: a point mapping and the faces that passed
// the arity filter, in document order.
type Geometry struct {
	Points PointMap
	Faces  []Face

	// FilteredFaces counts `F` elements dropped because they did not hold exactly 3 IDs.
	FilteredFaces int
	// DuplicatePoints counts `P` elements whose ID was already present (last one wins).
	DuplicatePoints int
}

// NewGeometry returns an empty Geometry ready to be filled.
func NewGeometry() *Geometry {
	return &Geometry{
		Points: make(PointMap),
		Faces:  []Face{},
	}
}

// Resolve returns the three vertices of f.
// It returns a *DanglingReferenceError if any ID is absent from the mapping.
func (m PointMap) Resolve(f Face) (v1, v2, v3 r3.Vec, err error) {
	var vs [3]r3.Vec
	for i, id := range f {
		v, ok := m[id]
		if !ok {
			return r3.Vec{}, r3.Vec{}, r3.Vec{}, &DanglingReferenceError{Face: f, Missing: id}
		}
		vs[i] = v
	}
	return vs[0], vs[1], vs[2], nil
}
