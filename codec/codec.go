// Package codec maps compression algorithm names to their
// implementations, so the file pipeline can select one by name.
package codec

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gsea/gsea/brotli"
	"github.com/gsea/gsea/flate"
	"github.com/gsea/gsea/lz4"
	"github.com/gsea/gsea/lz77"
	"github.com/gsea/gsea/snappy"
	"github.com/gsea/gsea/zstd"
)

// Algorithm names.
const (
	LZ77   = "lz77"
	Snappy = "snappy"
	LZ4    = "lz4"
	Zstd   = "zstd"
	Brotli = "brotli"
	Gzip   = "gzip"
)

// Default is the algorithm used when none is configured.
const Default = LZ77

// An Algorithm is a compression format with whole-buffer compress and
// decompress functions. Both are safe for concurrent use.
type Algorithm struct {
	Name   string
	Suffix string // file name suffix for compressed output, with the dot

	// Compress compresses src. Level is format specific; 0 selects the
	// format's default. Formats without levels ignore it.
	Compress func(src []byte, level int) ([]byte, error)

	// Decompress reverses Compress. It returns an error, never partial
	// output, if src is not valid.
	Decompress func(src []byte) ([]byte, error)
}

var algorithms = map[string]Algorithm{
	LZ77: {
		Name:   LZ77,
		Suffix: ".lz77",
		Compress: func(src []byte, _ int) ([]byte, error) {
			return lz77.EncodeFast(src), nil
		},
		Decompress: lz77.Decode,
	},
	Snappy: {
		Name:   Snappy,
		Suffix: ".sz",
		Compress: func(src []byte, _ int) ([]byte, error) {
			return snappy.Compress(src), nil
		},
		Decompress: snappy.Decompress,
	},
	LZ4: {
		Name:   LZ4,
		Suffix: ".lz4",
		Compress: func(src []byte, _ int) ([]byte, error) {
			return lz4.Compress(src), nil
		},
		Decompress: lz4.Decompress,
	},
	Zstd: {
		Name:       Zstd,
		Suffix:     ".zst",
		Compress:   zstd.Compress,
		Decompress: zstd.Decompress,
	},
	Brotli: {
		Name:       Brotli,
		Suffix:     ".br",
		Compress:   brotli.Compress,
		Decompress: brotli.Decompress,
	},
	Gzip: {
		Name:       Gzip,
		Suffix:     ".gz",
		Compress:   flate.Compress,
		Decompress: flate.Decompress,
	},
}

// Lookup returns the algorithm with the given name. Names are not case
// sensitive.
func Lookup(name string) (Algorithm, error) {
	a, ok := algorithms[strings.ToLower(name)]
	if !ok {
		return Algorithm{}, fmt.Errorf("unknown compression algorithm %q (available: %s)",
			name, strings.Join(Names(), ", "))
	}
	return a, nil
}

// Names returns the registered algorithm names in sorted order.
func Names() []string {
	names := make([]string, 0, len(algorithms))
	for name := range algorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TrimSuffix removes the algorithm's suffix from filename, if present.
func (a Algorithm) TrimSuffix(filename string) string {
	return strings.TrimSuffix(filename, a.Suffix)
}
