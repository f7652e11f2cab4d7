// Package zstd compresses data in the Zstandard format, using
// github.com/klauspost/compress/zstd.
package zstd

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// DefaultLevel is the zstd level used when the caller asks for level 0.
const DefaultLevel = 3

// decoder is shared across calls; zstd.Decoder is safe for concurrent
// use through DecodeAll.
var decoder *zstd.Decoder

func init() {
	var err error
	decoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("zstd: decoder initialization failed: " + err.Error())
	}
}

// Compress returns src as a zstd frame. Level follows the zstd command
// line tool (1 to 22); 0 selects DefaultLevel.
func Compress(src []byte, level int) ([]byte, error) {
	if level == 0 {
		level = DefaultLevel
	}
	encoder, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)),
		zstd.WithEncoderConcurrency(1),
		zstd.WithZeroFrames(true),
	)
	if err != nil {
		return nil, fmt.Errorf("zstd compress: %w", err)
	}
	defer encoder.Close()
	return encoder.EncodeAll(src, make([]byte, 0, len(src)/2)), nil
}

// Decompress decodes a zstd stream.
func Decompress(src []byte) ([]byte, error) {
	out, err := decoder.DecodeAll(src, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}
	return out, nil
}
