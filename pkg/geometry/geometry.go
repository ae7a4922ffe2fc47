// Package geometry holds the triangle arithmetic of the toolkit: face areas,
// face centroids and the area-weighted centroid of a whole surface.
package geometry

import (
	"math"

	"github.com/aretw0/tinkit/pkg/domain"
	"gonum.org/v1/gonum/spatial/r3"
)

// TriangleArea returns half the magnitude of (v2-v1) x (v3-v1).
// Collinear or repeated vertices yield 0.
func TriangleArea(v1, v2, v3 r3.Vec) float64 {
	return 0.5 * r3.Norm(r3.Cross(r3.Sub(v2, v1), r3.Sub(v3, v1)))
}

// FaceCentroid returns the arithmetic mean of the three vertices.
func FaceCentroid(v1, v2, v3 r3.Vec) r3.Vec {
	sum := r3.Add(r3.Add(v1, v2), v3)
	return r3.Vec{X: sum.X / 3, Y: sum.Y / 3, Z: sum.Z / 3}
}

// WeightedCentroid computes the centroid of the faces weighted by their areas.
//
// Faces are accumulated in slice order. Degenerate faces contribute nothing
// but still have their references checked. When the accumulated area is not
// strictly positive the result is returned with Defined set to false.
func WeightedCentroid(points domain.PointMap, faces []domain.Face) (domain.Centroid, error) {
	var (
		weighted r3.Vec
		total    float64
		c        = domain.Centroid{Faces: len(faces)}
	)

	for _, f := range faces {
		v1, v2, v3, err := points.Resolve(f)
		if err != nil {
			return domain.Centroid{}, err
		}
		area := TriangleArea(v1, v2, v3)
		if area == 0 {
			c.DegenerateFaces++
			continue
		}
		weighted = r3.Add(weighted, r3.Scale(area, FaceCentroid(v1, v2, v3)))
		total += area
	}

	c.TotalArea = total
	if !(total > 0) {
		return c, nil
	}
	c.Point = r3.Scale(1/total, weighted)
	c.Defined = true
	return c, nil
}

// Summarize reports counts, total surface area and bounding box of g.
// Bounds is nil when g has no points.
func Summarize(g *domain.Geometry) (domain.Stats, error) {
	s := domain.Stats{
		Points:          len(g.Points),
		Faces:           len(g.Faces),
		FilteredFaces:   g.FilteredFaces,
		DuplicatePoints: g.DuplicatePoints,
	}

	c, err := WeightedCentroid(g.Points, g.Faces)
	if err != nil {
		return domain.Stats{}, err
	}
	s.SurfaceArea = c.TotalArea
	s.DegenerateFaces = c.DegenerateFaces

	if len(g.Points) == 0 {
		return s, nil
	}
	b := domain.Bounds{
		Min: r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)},
		Max: r3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)},
	}
	for _, v := range g.Points {
		b.Min = r3.Vec{X: math.Min(b.Min.X, v.X), Y: math.Min(b.Min.Y, v.Y), Z: math.Min(b.Min.Z, v.Z)}
		b.Max = r3.Vec{X: math.Max(b.Max.X, v.X), Y: math.Max(b.Max.Y, v.Y), Z: math.Max(b.Max.Z, v.Z)}
	}
	s.Bounds = &b
	return s, nil
}
