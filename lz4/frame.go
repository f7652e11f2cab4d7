package lz4

import (
	"bytes"
	"encoding/binary"
	"hash"
	"io"

	"github.com/pierrec/lz4/v4"
	"github.com/pierrec/xxHash/xxHash32"

	"github.com/gsea/gsea"
)

// A FrameEncoder implements the gsea.Encoder interface,
// writing in the LZ4 frame format.
type FrameEncoder struct {
	hasher      hash.Hash32
	blockBuffer []byte
}

func (f *FrameEncoder) Reset() {
	f.hasher = nil
}

func (f *FrameEncoder) Encode(dst []byte, src []byte, matches []gsea.Match, lastBlock bool) []byte {
	if f.hasher == nil {
		f.hasher = xxHash32.New(0)
		dst = binary.LittleEndian.AppendUint32(dst, 0x184D2204)
		// Frame header for content checksum enabled, and 4-MB blocks.
		dst = append(dst, 0x44, 0x70, 0x1d)
	}

	if len(src) > 0 {
		var be BlockEncoder
		f.blockBuffer = be.Encode(f.blockBuffer[:0], src, matches, lastBlock)
		dst = binary.LittleEndian.AppendUint32(dst, uint32(len(f.blockBuffer)))
		dst = append(dst, f.blockBuffer...)
		f.hasher.Write(src)
	}

	if lastBlock {
		dst = append(dst, 0, 0, 0, 0)
		dst = binary.LittleEndian.AppendUint32(dst, f.hasher.Sum32())
	}

	return dst
}

// NewMatchFinder returns a match finder tuned for LZ4's limits.
func NewMatchFinder() gsea.MatchFinder {
	return &gsea.HashChain{
		SearchLen:  16,
		WindowSize: 65535,
		MaxLength:  1 << 16,
		MinLength:  4,
	}
}

// NewWriter returns a gsea.Writer that writes the LZ4 frame format to w.
func NewWriter(w io.Writer) *gsea.Writer {
	return &gsea.Writer{
		Dest:        w,
		MatchFinder: NewMatchFinder(),
		Encoder:     &FrameEncoder{},
		BlockSize:   1 << 16,
	}
}

// Compress returns src as an LZ4 frame.
func Compress(src []byte) []byte {
	var b bytes.Buffer
	w := NewWriter(&b)
	w.Write(src)
	w.Close()
	return b.Bytes()
}

// Decompress decodes an LZ4 frame.
func Decompress(src []byte) ([]byte, error) {
	return io.ReadAll(lz4.NewReader(bytes.NewReader(src)))
}
