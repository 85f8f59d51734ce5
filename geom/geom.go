// Package geom holds the planar primitives shared by the clustering packages:
// points, Euclidean distance, bounding boxes and centroids.
//
// All functions are pure and allocation-free unless they return a slice.
package geom

import (
	"errors"
	"math"
)

// ErrEmpty is returned by aggregate helpers that need at least one point.
var ErrEmpty = errors.New("geom: empty point set")

// Point is an immutable 2D coordinate.
type Point struct {
	X float64
	Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Finite reports whether both coordinates are finite (no NaN, no ±Inf).
func (p Point) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// Distance returns the Euclidean distance between a and b.
//
// math.Hypot is used instead of sqrt(dx²+dy²) so that very large projected
// coordinates do not overflow the intermediate square.
func Distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min Point
	Max Point
}

// Width returns Max.X - Min.X.
func (b Bounds) Width() float64 { return b.Max.X - b.Min.X }

// Height returns Max.Y - Min.Y.
func (b Bounds) Height() float64 { return b.Max.Y - b.Min.Y }

// Contains reports whether p lies inside b (inclusive).
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// BoundingBox returns the per-axis [min, max] box of pts.
//
// Complexity: O(n).
func BoundingBox(pts []Point) (Bounds, error) {
	if len(pts) == 0 {
		return Bounds{}, ErrEmpty
	}
	b := Bounds{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		b.Min.X = math.Min(b.Min.X, p.X)
		b.Min.Y = math.Min(b.Min.Y, p.Y)
		b.Max.X = math.Max(b.Max.X, p.X)
		b.Max.Y = math.Max(b.Max.Y, p.Y)
	}

	return b, nil
}

// Centroid returns the componentwise mean of pts.
func Centroid(pts []Point) (Point, error) {
	if len(pts) == 0 {
		return Point{}, ErrEmpty
	}
	var sx, sy float64
	for _, p := range pts {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(pts))

	return Point{X: sx / n, Y: sy / n}, nil
}
