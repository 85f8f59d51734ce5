package pointio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies a stream codec, chosen by file extension.
type Compression int

const (
	None Compression = iota
	Gzip
	Zstd
	LZ4
)

// CompressionOf maps ".gz", ".zst" and ".lz4" to their codec; anything else is None.
func CompressionOf(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return Gzip
	case ".zst":
		return Zstd
	case ".lz4":
		return LZ4
	default:
		return None
	}
}

// FormatOf returns "csv" or "geojson" for path, ignoring a compression
// suffix, or "" when the extension is not recognized.
func FormatOf(path string) string {
	if CompressionOf(path) != None {
		path = strings.TrimSuffix(path, filepath.Ext(path))
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return "csv"
	case ".geojson", ".json":
		return "geojson"
	default:
		return ""
	}
}

// Open opens path for reading and transparently decompresses it.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pointio: %w", err)
	}
	rc, err := NewReader(f, CompressionOf(path))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("pointio: %s: %w", path, err)
	}

	return &stackedCloser{ReadCloser: rc, under: f}, nil
}

// Create creates path and compresses what is written according to its extension.
func Create(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("pointio: %w", err)
	}
	wc, err := NewWriter(f, CompressionOf(path))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("pointio: %s: %w", path, err)
	}

	return &stackedWriteCloser{WriteCloser: wc, under: f}, nil
}

// NewReader wraps r with the decoder for c.
func NewReader(r io.Reader, c Compression) (io.ReadCloser, error) {
	switch c {
	case Gzip:
		return gzip.NewReader(r)
	case Zstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return io.NopCloser(r), nil
	}
}

// NewWriter wraps w with the encoder for c. Closing the result flushes the
// codec but leaves w open.
func NewWriter(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case Gzip:
		return gzip.NewWriter(w), nil
	case Zstd:
		return zstd.NewWriter(w)
	case LZ4:
		return lz4.NewWriter(w), nil
	default:
		return nopWriteCloser{w}, nil
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// stackedCloser closes the codec, then the file.
type stackedCloser struct {
	io.ReadCloser
	under io.Closer
}

func (s *stackedCloser) Close() error {
	err := s.ReadCloser.Close()
	if uerr := s.under.Close(); err == nil {
		err = uerr
	}
	return err
}

type stackedWriteCloser struct {
	io.WriteCloser
	under io.Closer
}

func (s *stackedWriteCloser) Close() error {
	err := s.WriteCloser.Close()
	if uerr := s.under.Close(); err == nil {
		err = uerr
	}
	return err
}
