package geom

import (
	"errors"
	"fmt"
	"math"
)

// Kind names the geometry types a record reader may hand over.
type Kind string

// Supported geometry kinds.
const (
	KindPoint           Kind = "Point"
	KindMultiPoint      Kind = "MultiPoint"
	KindLineString      Kind = "LineString"
	KindMultiLineString Kind = "MultiLineString"
	KindPolygon         Kind = "Polygon"
	KindMultiPolygon    Kind = "MultiPolygon"
)

// ErrUnsupportedKind is returned for geometry kinds RepresentativePoint cannot reduce.
var ErrUnsupportedKind = errors.New("geom: unsupported geometry kind")

// degenerateArea is the |signed area| below which a ring is treated as a line.
const degenerateArea = 1e-12

// Supported reports whether RepresentativePoint accepts kind.
func (k Kind) Supported() bool {
	switch k {
	case KindPoint, KindMultiPoint, KindLineString, KindMultiLineString, KindPolygon, KindMultiPolygon:
		return true
	default:
		return false
	}
}

// RepresentativePoint reduces a geometry to the single point that stands for
// it during clustering. parts holds one coordinate list per part: the point,
// the line or the exterior ring for single-part kinds, one entry per line or
// exterior ring for multi-part kinds.
//
//   - Point: the point itself.
//   - Polygon: area centroid of the exterior ring, falling back to the vertex
//     mean when the ring has (near) zero area.
//   - MultiPolygon: centroids of the exterior rings weighted by their area,
//     with the same vertex-mean fallback over all rings.
//   - LineString, MultiLineString, MultiPoint: vertex mean over all parts.
//
// Unknown kinds fail with ErrUnsupportedKind, geometries without coordinates
// with ErrEmpty.
func RepresentativePoint(kind Kind, parts ...[]Point) (Point, error) {
	if !kind.Supported() {
		return Point{}, fmt.Errorf("%w: %q", ErrUnsupportedKind, kind)
	}
	var all []Point
	for _, part := range parts {
		all = append(all, part...)
	}
	if len(all) == 0 {
		return Point{}, ErrEmpty
	}

	switch kind {
	case KindPoint:
		return all[0], nil
	case KindPolygon, KindMultiPolygon:
		if c, ok := areaCentroid(parts); ok {
			return c, nil
		}
	}
	return Centroid(all)
}

// areaCentroid combines ring centroids weighted by |area|. Rings too small to
// carry area are skipped.
func areaCentroid(rings [][]Point) (Point, bool) {
	var w, x, y float64
	for _, ring := range rings {
		c, a, ok := ringCentroid(ring)
		if !ok {
			continue
		}
		w += a
		x += c.X * a
		y += c.Y * a
	}
	if w < degenerateArea {
		return Point{}, false
	}

	return Point{X: x / w, Y: y / w}, true
}

// ringCentroid computes the area centroid of a closed or open ring using the
// shoelace formula, along with its unsigned area. Coordinates are shifted to
// the first vertex to keep the cross products small for projected inputs.
func ringCentroid(ring []Point) (Point, float64, bool) {
	n := len(ring)
	if n > 1 && ring[0] == ring[n-1] {
		n--
	}
	if n < 3 {
		return Point{}, 0, false
	}
	o := ring[0]
	var a, cx, cy float64
	for i := 0; i < n; i++ {
		p := ring[i]
		q := ring[(i+1)%n]
		px, py := p.X-o.X, p.Y-o.Y
		qx, qy := q.X-o.X, q.Y-o.Y
		cross := px*qy - qx*py
		a += cross
		cx += (px + qx) * cross
		cy += (py + qy) * cross
	}
	area := math.Abs(a / 2)
	if area < degenerateArea {
		return Point{}, 0, false
	}

	return Point{X: o.X + cx/(3*a), Y: o.Y + cy/(3*a)}, area, true
}
