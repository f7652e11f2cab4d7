// Package lz4 writes the LZ4 block and frame formats from gsea matches,
// and reads them back with github.com/pierrec/lz4/v4.
package lz4

import (
	"encoding/binary"
	"fmt"

	"github.com/pierrec/lz4/v4"

	"github.com/gsea/gsea"
)

// A BlockEncoder implements the gsea.Encoder interface, writing in the LZ4
// block format. Matches must be at least 4 bytes long and at most 65535
// bytes back.
type BlockEncoder struct{}

func (BlockEncoder) Reset() {}

func (BlockEncoder) Encode(dst []byte, src []byte, matches []gsea.Match, lastBlock bool) []byte {
	// Ensure that the block ends with at least 5 literal bytes,
	// and the last match is at least 12 bytes before the end of the block.
	trailingLiterals := 0
	for len(matches) > 0 && (trailingLiterals < 5 || trailingLiterals+matches[len(matches)-1].Length < 12) {
		lastMatch := matches[len(matches)-1]
		matches = matches[:len(matches)-1]
		trailingLiterals += lastMatch.Unmatched + lastMatch.Length
	}

	pos := 0
	for _, m := range matches {
		dst = appendLiterals(dst, src[pos:pos+m.Unmatched], m.Length-4)
		dst = binary.LittleEndian.AppendUint16(dst, uint16(m.Distance))
		if m.Length-4 >= 15 {
			dst = appendInt(dst, m.Length-4-15)
		}
		pos += m.Unmatched + m.Length
	}

	// The last sequence holds only literals.
	return appendLiterals(dst, src[pos:], 0)
}

// appendLiterals appends a sequence token, the extended literal length if
// needed, and the literals. matchCode is the match length minus 4; its
// extension bytes, if any, are the caller's to write.
func appendLiterals(dst, lit []byte, matchCode int) []byte {
	token := byte(min(len(lit), 15))<<4 | byte(min(matchCode, 15))
	dst = append(dst, token)
	if len(lit) >= 15 {
		dst = appendInt(dst, len(lit)-15)
	}
	return append(dst, lit...)
}

// appendInt appends n to dst in LZ4's variable-length integer format.
func appendInt(dst []byte, n int) []byte {
	for n >= 255 {
		dst = append(dst, 255)
		n -= 255
	}
	return append(dst, byte(n))
}

// CompressBlock returns src as a single LZ4 block.
func CompressBlock(src []byte) []byte {
	matches := NewMatchFinder().FindMatches(nil, src)
	return BlockEncoder{}.Encode(nil, src, matches, true)
}

// DecompressBlock decodes an LZ4 block whose decoded size is known.
func DecompressBlock(src []byte, size int) ([]byte, error) {
	dst := make([]byte, size)
	n, err := lz4.UncompressBlock(src, dst)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompress: %w", err)
	}
	if n != size {
		return nil, fmt.Errorf("lz4 decompress: got %d bytes, expected %d", n, size)
	}
	return dst, nil
}
