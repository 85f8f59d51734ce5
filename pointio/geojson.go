package pointio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/katalvlaran/capkmeans/geom"
	"github.com/katalvlaran/capkmeans/kmeans"
)

// ErrBadGeometry indicates a feature whose geometry cannot be reduced to a point.
var ErrBadGeometry = errors.New("pointio: bad geometry")

// Feature is a GeoJSON feature. Geometry is kept verbatim for output.
type Feature struct {
	Type       string          `json:"type"`
	ID         any             `json:"id,omitempty"`
	Geometry   json.RawMessage `json:"geometry"`
	Properties map[string]any  `json:"properties"`
}

type featureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

type geometry struct {
	Type        geom.Kind       `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// ReadGeoJSON reads a FeatureCollection. Every feature is reduced to one
// point: points as-is, polygons to the centroid of their exterior ring,
// multipolygons to the area-weighted centroid of their exterior rings, lines
// and multipoints to their vertex mean.
func ReadGeoJSON(r io.Reader) (*Dataset, error) {
	var fc featureCollection
	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return nil, fmt.Errorf("pointio: geojson: %w", err)
	}
	if fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("pointio: geojson: expected FeatureCollection, got %q", fc.Type)
	}
	if len(fc.Features) == 0 {
		return nil, ErrNoPoints
	}

	ds := &Dataset{Features: fc.Features, Points: make([]geom.Point, len(fc.Features))}
	for i, f := range fc.Features {
		p, err := featurePoint(f.Geometry)
		if err != nil {
			return nil, &RecordError{Record: i, Err: err}
		}
		ds.Points[i] = p
	}

	return ds, nil
}

func featurePoint(raw json.RawMessage) (geom.Point, error) {
	var g geometry
	if len(raw) == 0 || string(raw) == "null" {
		return geom.Point{}, fmt.Errorf("%w: missing", ErrBadGeometry)
	}
	if err := json.Unmarshal(raw, &g); err != nil {
		return geom.Point{}, fmt.Errorf("%w: %v", ErrBadGeometry, err)
	}

	if !g.Type.Supported() {
		return geom.Point{}, fmt.Errorf("%w: %w: %q", ErrBadGeometry, geom.ErrUnsupportedKind, g.Type)
	}

	var parts [][][]float64
	switch g.Type {
	case geom.KindPoint:
		var c []float64
		if err := json.Unmarshal(g.Coordinates, &c); err != nil {
			return geom.Point{}, fmt.Errorf("%w: %v", ErrBadGeometry, err)
		}
		parts = [][][]float64{{c}}
	case geom.KindMultiPoint, geom.KindLineString:
		var c [][]float64
		if err := json.Unmarshal(g.Coordinates, &c); err != nil {
			return geom.Point{}, fmt.Errorf("%w: %v", ErrBadGeometry, err)
		}
		parts = [][][]float64{c}
	case geom.KindMultiLineString:
		if err := json.Unmarshal(g.Coordinates, &parts); err != nil {
			return geom.Point{}, fmt.Errorf("%w: %v", ErrBadGeometry, err)
		}
	case geom.KindPolygon:
		var rings [][][]float64
		if err := json.Unmarshal(g.Coordinates, &rings); err != nil {
			return geom.Point{}, fmt.Errorf("%w: %v", ErrBadGeometry, err)
		}
		if len(rings) == 0 {
			return geom.Point{}, fmt.Errorf("%w: polygon without rings", ErrBadGeometry)
		}
		parts = rings[:1]
	case geom.KindMultiPolygon:
		var polys [][][][]float64
		if err := json.Unmarshal(g.Coordinates, &polys); err != nil {
			return geom.Point{}, fmt.Errorf("%w: %v", ErrBadGeometry, err)
		}
		for i, rings := range polys {
			if len(rings) == 0 {
				return geom.Point{}, fmt.Errorf("%w: polygon %d without rings", ErrBadGeometry, i)
			}
			parts = append(parts, rings[0])
		}
	}

	pts := make([][]geom.Point, len(parts))
	for i, part := range parts {
		var err error
		if pts[i], err = toPoints(part); err != nil {
			return geom.Point{}, err
		}
	}
	p, err := geom.RepresentativePoint(g.Type, pts...)
	if err != nil {
		return geom.Point{}, fmt.Errorf("%w: %v", ErrBadGeometry, err)
	}
	return p, nil
}

func toPoints(cs [][]float64) ([]geom.Point, error) {
	pts := make([]geom.Point, len(cs))
	for i, c := range cs {
		if len(c) < 2 {
			return nil, fmt.Errorf("%w: position with %d values", ErrBadGeometry, len(c))
		}
		pts[i] = geom.Pt(c[0], c[1])
	}
	return pts, nil
}

// WriteGeoJSON writes ds as a FeatureCollection with the cluster columns
// added to every feature's properties. ds is not modified.
func WriteGeoJSON(w io.Writer, ds *Dataset, res *kmeans.Result) error {
	cols, err := columnsFor(ds, res)
	if err != nil {
		return err
	}
	out := featureCollection{Type: "FeatureCollection", Features: make([]Feature, len(ds.Features))}
	for i, f := range ds.Features {
		props := make(map[string]any, len(f.Properties)+3)
		for k, v := range f.Properties {
			props[k] = v
		}
		props[ColumnClusterID] = cols.ids[i]
		props[ColumnClusterSize] = cols.sizes[i]
		props[ColumnClusterColor] = cols.colors[i]
		f.Properties = props
		out.Features[i] = f
	}

	enc := json.NewEncoder(w)
	return enc.Encode(out)
}
