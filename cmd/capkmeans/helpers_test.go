package main

import (
	"bytes"
	"io"

	"github.com/katalvlaran/capkmeans/pointio"
)

// openForTest reads a whole, possibly compressed, file into memory.
func openForTest(path string) (io.Reader, error) {
	rc, err := pointio.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}
