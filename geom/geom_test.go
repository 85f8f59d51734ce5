package geom_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/capkmeans/geom"
)

func TestDistance(t *testing.T) {
	assert.InDelta(t, 5.0, geom.Distance(geom.Pt(0, 0), geom.Pt(3, 4)), 1e-12)
	assert.Equal(t, 0.0, geom.Distance(geom.Pt(2, 2), geom.Pt(2, 2)))
	// no overflow on huge projected coordinates
	assert.False(t, math.IsInf(geom.Distance(geom.Pt(1e200, 0), geom.Pt(-1e200, 0)), 0))
}

func TestFinite(t *testing.T) {
	assert.True(t, geom.Pt(1, -1).Finite())
	assert.False(t, geom.Pt(math.NaN(), 0).Finite())
	assert.False(t, geom.Pt(0, math.Inf(-1)).Finite())
}

func TestBoundingBox(t *testing.T) {
	_, err := geom.BoundingBox(nil)
	require.ErrorIs(t, err, geom.ErrEmpty)

	b, err := geom.BoundingBox([]geom.Point{{X: 1, Y: 5}, {X: -2, Y: 3}, {X: 4, Y: -1}})
	require.NoError(t, err)
	assert.Equal(t, geom.Pt(-2, -1), b.Min)
	assert.Equal(t, geom.Pt(4, 5), b.Max)
	assert.Equal(t, 6.0, b.Width())
	assert.Equal(t, 6.0, b.Height())
	assert.True(t, b.Contains(geom.Pt(0, 0)))
	assert.False(t, b.Contains(geom.Pt(5, 0)))
}

func TestCentroid(t *testing.T) {
	c, err := geom.Centroid([]geom.Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}})
	require.NoError(t, err)
	assert.Equal(t, geom.Pt(1, 1), c)

	_, err = geom.Centroid(nil)
	require.ErrorIs(t, err, geom.ErrEmpty)
}

func TestRepresentativePoint(t *testing.T) {
	p, err := geom.RepresentativePoint(geom.KindPoint, []geom.Point{{X: 7, Y: 8}})
	require.NoError(t, err)
	assert.Equal(t, geom.Pt(7, 8), p)

	// L-shaped polygon: area centroid differs from the vertex mean.
	ring := []geom.Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 2}, {X: 0, Y: 2}, {X: 0, Y: 0}}
	p, err = geom.RepresentativePoint(geom.KindPolygon, ring)
	require.NoError(t, err)
	assert.InDelta(t, 5.0/6.0, p.X, 1e-12)
	assert.InDelta(t, 5.0/6.0, p.Y, 1e-12)

	// Degenerate ring falls back to the vertex mean.
	p, err = geom.RepresentativePoint(geom.KindPolygon, []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, p.X, 1e-12)
	assert.InDelta(t, 1.0, p.Y, 1e-12)

	p, err = geom.RepresentativePoint(geom.KindLineString, []geom.Point{{X: 0, Y: 0}, {X: 4, Y: 2}})
	require.NoError(t, err)
	assert.Equal(t, geom.Pt(2, 1), p)

	_, err = geom.RepresentativePoint(geom.Kind("GeometryCollection"), []geom.Point{{X: 0, Y: 0}})
	require.ErrorIs(t, err, geom.ErrUnsupportedKind)
	_, err = geom.RepresentativePoint(geom.KindPoint, nil)
	require.ErrorIs(t, err, geom.ErrEmpty)
	_, err = geom.RepresentativePoint(geom.Kind("Curve"))
	require.ErrorIs(t, err, geom.ErrUnsupportedKind, "kind is checked before coordinates")
}

func TestRepresentativePointMultiPart(t *testing.T) {
	big := []geom.Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}, {X: 0, Y: 0}}
	small := []geom.Point{{X: 10, Y: 0}, {X: 11, Y: 0}, {X: 11, Y: 1}, {X: 10, Y: 1}}
	p, err := geom.RepresentativePoint(geom.KindMultiPolygon, big, small)
	require.NoError(t, err)
	assert.InDelta(t, 2.9, p.X, 1e-12)
	assert.InDelta(t, 0.9, p.Y, 1e-12)

	// a flat part carries no weight
	flat := []geom.Point{{X: 50, Y: 50}, {X: 51, Y: 51}, {X: 52, Y: 52}}
	p, err = geom.RepresentativePoint(geom.KindMultiPolygon, big, flat)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, p.X, 1e-12)
	assert.InDelta(t, 1.0, p.Y, 1e-12)

	p, err = geom.RepresentativePoint(geom.KindMultiLineString, []geom.Point{{X: 0, Y: 0}, {X: 2, Y: 0}}, []geom.Point{{X: 4, Y: 3}})
	require.NoError(t, err)
	assert.Equal(t, geom.Pt(2, 1), p)

	_, err = geom.RepresentativePoint(geom.KindMultiPolygon)
	require.ErrorIs(t, err, geom.ErrEmpty)
}
