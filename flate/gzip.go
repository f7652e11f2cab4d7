// Package flate compresses data in the gzip format, using
// github.com/klauspost/compress.
package flate

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
)

// NewGZIPWriter returns a writer that compresses to w in gzip encoding.
// Levels 1–9 are available; levels outside this range will be replaced by
// the closest level available, except 0, which selects the default level.
func NewGZIPWriter(w io.Writer, level int) *gzip.Writer {
	switch {
	case level == 0:
		level = flate.DefaultCompression
	case level < flate.BestSpeed:
		level = flate.BestSpeed
	case level > flate.BestCompression:
		level = flate.BestCompression
	}
	// The level has been clamped, so NewWriterLevel cannot fail.
	zw, _ := gzip.NewWriterLevel(w, level)
	return zw
}

// Compress returns src as a gzip stream.
func Compress(src []byte, level int) ([]byte, error) {
	var b bytes.Buffer
	w := NewGZIPWriter(&b, level)
	if _, err := w.Write(src); err != nil {
		return nil, fmt.Errorf("gzip compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("gzip compress: %w", err)
	}
	return b.Bytes(), nil
}

// Decompress decodes a gzip stream.
func Decompress(src []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("gzip decompress: %w", err)
	}
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("gzip decompress: %w", err)
	}
	return out, nil
}
