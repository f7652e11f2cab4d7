package lz77

import (
	"io"

	"github.com/gsea/gsea"
)

// An Encoder implements the gsea.Encoder interface, writing the token
// format. Every match it is given must fit the format's limits: offsets
// up to WindowSize and lengths from MinLength to MaxLength.
type Encoder struct{}

func (Encoder) Reset() {}

func (Encoder) Encode(dst []byte, src []byte, matches []gsea.Match, lastBlock bool) []byte {
	pos := 0
	for _, m := range matches {
		for _, c := range src[pos : pos+m.Unmatched] {
			dst = AppendLiteral(dst, c)
		}
		pos += m.Unmatched
		if m.Length > 0 {
			dst = AppendMatch(dst, m.Distance, m.Length)
			pos += m.Length
		}
	}
	for _, c := range src[pos:] {
		dst = AppendLiteral(dst, c)
	}
	return dst
}

// NewMatchFinder returns the reference match finder for the format: an
// exhaustive search of the window that prefers the farthest of equally
// long matches.
func NewMatchFinder() gsea.MatchFinder {
	return &gsea.WindowSearch{
		WindowSize: WindowSize,
		MaxLength:  MaxLength,
		MinLength:  MinLength,
	}
}

// NewFastMatchFinder returns a hash-chain match finder that produces the
// same matches as NewMatchFinder.
func NewFastMatchFinder() gsea.MatchFinder {
	return &gsea.HashChain{
		WindowSize: WindowSize,
		MaxLength:  MaxLength,
		MinLength:  MinLength,
	}
}

// Encode returns the token stream for src. An empty src gives an empty
// stream.
func Encode(src []byte) []byte {
	return encode(NewMatchFinder(), src)
}

// EncodeFast is like Encode, but uses a hash chain to find matches.
// Its output is identical to Encode's.
func EncodeFast(src []byte) []byte {
	return encode(NewFastMatchFinder(), src)
}

func encode(mf gsea.MatchFinder, src []byte) []byte {
	if len(src) == 0 {
		return nil
	}
	matches := mf.FindMatches(nil, src)
	return Encoder{}.Encode(make([]byte, 0, len(src)), src, matches, true)
}

// NewWriter returns a gsea.Writer that writes the token format to w.
// Data is buffered until Close, since matches may refer anywhere in the
// preceding window.
func NewWriter(w io.Writer) *gsea.Writer {
	return &gsea.Writer{
		Dest:        w,
		MatchFinder: NewFastMatchFinder(),
		Encoder:     Encoder{},
	}
}
