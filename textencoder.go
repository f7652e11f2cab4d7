package gsea

import "fmt"

// A TextEncoder is an Encoder that produces a human-readable representation of
// the LZ77 compression. Matches are replaced with <Length,Distance> symbols,
// and a literal '<' is written as "<<".
type TextEncoder struct{}

func (t TextEncoder) Reset() {}

func (t TextEncoder) Encode(dst []byte, src []byte, matches []Match, lastBlock bool) []byte {
	pos := 0
	for _, m := range matches {
		if m.Unmatched > 0 {
			dst = appendText(dst, src[pos:pos+m.Unmatched])
			pos += m.Unmatched
		}
		if m.Length > 0 {
			dst = fmt.Appendf(dst, "<%d,%d>", m.Length, m.Distance)
			pos += m.Length
		}
	}
	if pos < len(src) {
		dst = appendText(dst, src[pos:])
	}
	return dst
}

func appendText(dst, lit []byte) []byte {
	for _, c := range lit {
		if c == '<' {
			dst = append(dst, '<')
		}
		dst = append(dst, c)
	}
	return dst
}
