package pointio

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/capkmeans/geom"
	"github.com/katalvlaran/capkmeans/kmeans"
)

// Output column names.
const (
	ColumnClusterID    = "CLUSTER_ID"
	ColumnClusterSize  = "CLUSTER_SIZE"
	ColumnClusterColor = "CLUSTER_COLOR"
)

var (
	// ErrMissingColumn indicates a coordinate column absent from the CSV header.
	ErrMissingColumn = errors.New("pointio: missing column")
	// ErrNoPoints indicates an input without a single record.
	ErrNoPoints = errors.New("pointio: no points")
	// ErrResultMismatch indicates a result whose labels do not match the dataset.
	ErrResultMismatch = errors.New("pointio: result does not match dataset")
	// ErrUnknownFormat indicates a format other than "csv" or "geojson".
	ErrUnknownFormat = errors.New("pointio: unknown format")
)

// RecordError reports a record that could not be turned into a point.
type RecordError struct {
	Record int // 0-based, header excluded
	Err    error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("pointio: record %d: %v", e.Record, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// Dataset is a set of input records and the point derived from each one.
// Exactly one of Records (CSV) and Features (GeoJSON) is populated.
type Dataset struct {
	Header   []string
	Records  [][]string
	Features []Feature
	Points   []geom.Point
}

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.Points) }

// Read decodes r as format ("csv" or "geojson"). xCol and yCol are used by CSV only.
func Read(r io.Reader, format, xCol, yCol string) (*Dataset, error) {
	switch format {
	case "csv":
		return ReadCSV(r, xCol, yCol)
	case "geojson":
		return ReadGeoJSON(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Write encodes ds with the cluster columns of res in ds's own format.
func Write(w io.Writer, ds *Dataset, res *kmeans.Result) error {
	if ds.Features != nil {
		return WriteGeoJSON(w, ds, res)
	}
	return WriteCSV(w, ds, res)
}

// clusterColumns returns CLUSTER_ID, CLUSTER_SIZE and CLUSTER_COLOR per record.
type clusterColumns struct {
	ids    []int
	sizes  []int
	colors []string
}

func columnsFor(ds *Dataset, res *kmeans.Result) (*clusterColumns, error) {
	if res == nil || len(res.Labels) != ds.Len() {
		return nil, ErrResultMismatch
	}
	palette := Palette(len(res.Sizes))
	c := &clusterColumns{
		ids:    make([]int, ds.Len()),
		sizes:  make([]int, ds.Len()),
		colors: make([]string, ds.Len()),
	}
	for i, l := range res.Labels {
		if l < 0 || l >= len(res.Sizes) {
			return nil, fmt.Errorf("%w: label %d of record %d", ErrResultMismatch, l, i)
		}
		c.ids[i] = l + 1
		c.sizes[i] = res.SizeOf(l)
		c.colors[i] = palette[l]
	}
	return c, nil
}

func parseCoord(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
