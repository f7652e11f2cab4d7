// Package brotli compresses data in the brotli format, using
// github.com/andybalholm/brotli.
package brotli

import (
	"bytes"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
)

// NewWriter returns a writer that compresses to w at the given level.
// Levels 0–11 are available; levels outside this range will be replaced
// with the closest level available.
func NewWriter(w io.Writer, level int) *brotli.Writer {
	if level < brotli.BestSpeed {
		level = brotli.BestSpeed
	}
	if level > brotli.BestCompression {
		level = brotli.BestCompression
	}
	return brotli.NewWriterLevel(w, level)
}

// Compress returns src as a brotli stream. A level of 0 selects
// brotli.DefaultCompression.
func Compress(src []byte, level int) ([]byte, error) {
	if level == 0 {
		level = brotli.DefaultCompression
	}
	var b bytes.Buffer
	w := NewWriter(&b, level)
	if _, err := w.Write(src); err != nil {
		return nil, fmt.Errorf("brotli compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("brotli compress: %w", err)
	}
	return b.Bytes(), nil
}

// Decompress decodes a brotli stream.
func Decompress(src []byte) ([]byte, error) {
	out, err := io.ReadAll(brotli.NewReader(bytes.NewReader(src)))
	if err != nil {
		return nil, fmt.Errorf("brotli decompress: %w", err)
	}
	return out, nil
}
