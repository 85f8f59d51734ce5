package pointio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/capkmeans/geom"
	"github.com/katalvlaran/capkmeans/kmeans"
)

// ReadCSV reads a headed CSV and takes coordinates from columns xCol and yCol
// (matched case-insensitively).
func ReadCSV(r io.Reader, xCol, yCol string) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrNoPoints
	}
	if err != nil {
		return nil, fmt.Errorf("pointio: header: %w", err)
	}
	xi, yi := column(header, xCol), column(header, yCol)
	if xi < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, xCol)
	}
	if yi < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, yCol)
	}

	ds := &Dataset{Header: header}
	for n := 0; ; n++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &RecordError{Record: n, Err: err}
		}
		x, err := parseCoord(rec[xi])
		if err != nil {
			return nil, &RecordError{Record: n, Err: fmt.Errorf("column %q: %w", header[xi], err)}
		}
		y, err := parseCoord(rec[yi])
		if err != nil {
			return nil, &RecordError{Record: n, Err: fmt.Errorf("column %q: %w", header[yi], err)}
		}
		ds.Records = append(ds.Records, rec)
		ds.Points = append(ds.Points, geom.Pt(x, y))
	}
	if ds.Len() == 0 {
		return nil, ErrNoPoints
	}

	return ds, nil
}

// WriteCSV writes ds followed by the three cluster columns.
func WriteCSV(w io.Writer, ds *Dataset, res *kmeans.Result) error {
	cols, err := columnsFor(ds, res)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	header := append(append([]string(nil), ds.Header...), ColumnClusterID, ColumnClusterSize, ColumnClusterColor)
	if err = cw.Write(header); err != nil {
		return err
	}
	for i, rec := range ds.Records {
		row := append(append(make([]string, 0, len(rec)+3), rec...),
			strconv.Itoa(cols.ids[i]),
			strconv.Itoa(cols.sizes[i]),
			cols.colors[i],
		)
		if err = cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

func column(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}
