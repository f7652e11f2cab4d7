// Package snappy writes the snappy framing format from gsea matches, and
// reads it back with github.com/golang/snappy.
package snappy

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"io"

	"github.com/golang/snappy"

	"github.com/gsea/gsea"
)

// MaxBlockSize is the largest block a snappy chunk may hold.
const MaxBlockSize = 65536

// An Encoder implements the gsea.Encoder interface, writing the snappy
// framing format. Blocks may not be longer than MaxBlockSize, and matches
// must be at least 4 bytes long and at most 65535 bytes back.
type Encoder struct {
	wroteHeader bool
}

var magicChunk = []byte("\xff\x06\x00\x00sNaPpY")

var crcTable = crc32.MakeTable(crc32.Castagnoli)

// crc implements the checksum specified in section 3 of
// https://github.com/google/snappy/blob/master/framing_format.txt
func crc(b []byte) uint32 {
	c := crc32.Update(0, crcTable, b)
	return uint32(c>>15|c<<17) + 0xa282ead8
}

func (e *Encoder) Reset() {
	e.wroteHeader = false
}

func (e *Encoder) Encode(dst []byte, src []byte, matches []gsea.Match, lastBlock bool) []byte {
	if len(src) > MaxBlockSize {
		panic("snappy: block too large")
	}

	if !e.wroteHeader {
		dst = append(dst, magicChunk...)
		e.wroteHeader = true
	}

	// Chunk header: type, 3-byte length (filled in below), checksum.
	start := len(dst)
	dst = append(dst, chunkCompressed, 0, 0, 0)
	dst = binary.LittleEndian.AppendUint32(dst, crc(src))
	dataStart := len(dst)

	dst = binary.AppendUvarint(dst, uint64(len(src)))

	pos := 0
	for _, m := range matches {
		if m.Unmatched > 0 {
			dst = appendLiteral(dst, src[pos:pos+m.Unmatched])
			pos += m.Unmatched
		}
		if m.Length > 0 {
			dst = appendCopy(dst, m.Length, m.Distance)
			pos += m.Length
		}
	}
	if pos < len(src) {
		dst = appendLiteral(dst, src[pos:])
	}

	// Store the block as-is unless compression saves at least 1/8.
	if len(dst)-dataStart >= len(src)-len(src)/8 {
		dst = append(dst[:dataStart], src...)
		dst[start] = chunkUncompressed
	}

	chunkLen := len(dst) - start - 4
	dst[start+1] = byte(chunkLen)
	dst[start+2] = byte(chunkLen >> 8)
	dst[start+3] = byte(chunkLen >> 16)
	return dst
}

const (
	chunkCompressed   = 0x00
	chunkUncompressed = 0x01
)

const (
	tagLiteral = 0x00
	tagCopy1   = 0x01
	tagCopy2   = 0x02
)

func appendLiteral(dst, lit []byte) []byte {
	n := len(lit) - 1
	switch {
	case n < 60:
		dst = append(dst, byte(n)<<2|tagLiteral)
	case n < 1<<8:
		dst = append(dst, 60<<2|tagLiteral, byte(n))
	default:
		dst = append(dst, 61<<2|tagLiteral, byte(n), byte(n>>8))
	}
	return append(dst, lit...)
}

func appendCopy(dst []byte, length, offset int) []byte {
	// Long copies are split into 64-byte pieces. A remainder of 65 to 67
	// bytes is emitted as 60 + the rest, since the 2-byte tagCopy1 form
	// needs at least 4 bytes.
	for length >= 68 {
		dst = append(dst,
			63<<2|tagCopy2,
			byte(offset),
			byte(offset>>8),
		)
		length -= 64
	}
	if length > 64 {
		dst = append(dst,
			59<<2|tagCopy2,
			byte(offset),
			byte(offset>>8),
		)
		length -= 60
	}
	if length >= 12 || offset >= 2048 {
		return append(dst,
			byte(length-1)<<2|tagCopy2,
			byte(offset),
			byte(offset>>8),
		)
	}
	return append(dst,
		byte(offset>>8)<<5|byte(length-4)<<2|tagCopy1,
		byte(offset),
	)
}

// NewMatchFinder returns a match finder tuned for snappy's limits.
func NewMatchFinder() gsea.MatchFinder {
	return &gsea.HashChain{
		SearchLen:  16,
		WindowSize: 65535,
		MaxLength:  MaxBlockSize,
		MinLength:  4,
	}
}

// NewWriter returns a gsea.Writer that writes the snappy framing format
// to dst.
func NewWriter(dst io.Writer) *gsea.Writer {
	return &gsea.Writer{
		Dest:        dst,
		MatchFinder: NewMatchFinder(),
		Encoder:     &Encoder{},
		BlockSize:   MaxBlockSize,
	}
}

// Compress returns src in the snappy framing format.
func Compress(src []byte) []byte {
	var b bytes.Buffer
	w := NewWriter(&b)
	w.Write(src)
	w.Close()
	return b.Bytes()
}

// Decompress decodes a snappy framed stream.
func Decompress(src []byte) ([]byte, error) {
	return io.ReadAll(snappy.NewReader(bytes.NewReader(src)))
}
