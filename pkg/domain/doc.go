/*
Package domain contains the core data model of a Triangulated Irregular Network (TIN)
as it is read from and written to the TIN XML dialect.

The package is kept pure and free of I/O: parsing lives in pkg/xmltree and
pkg/extract, the math in pkg/geometry.

# Key Entities

  - PointMap: point ID to 3D coordinate, the Extractor's view of `P` elements.
  - Face: an ordered triplet of point IDs, one triangle (`F` elements).
  - Geometry: a validated PointMap plus its faces, in document order.
  - Centroid: the area-weighted centroid, or the "undefined" sentinel.
  - ScaleSummary: the diagnostic counts reported by the Scaler.
*/
package domain
