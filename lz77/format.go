// Package lz77 implements the gsea token format: a byte-oriented LZ77
// encoding made of 2-byte literal tokens and 4-byte match tokens.
//
// Token layout:
//
//	literal  0x00 value
//	match    0x01 offset>>8 offset&0xff length
//
// The offset counts back from the current end of the output and is in
// [1, WindowSize]; the length is in [MinLength, MaxLength]. A match may
// overlap the bytes it produces. The stream has no header, length prefix
// or checksum: it ends when the input ends.
package lz77

// Format constants.
const (
	WindowSize = 1024 // Maximum match offset.
	MaxLength  = 255  // Maximum match length; it is carried in one byte.
	MinLength  = 2    // Shorter matches are emitted as literals.

	TagLiteral = 0x00
	TagMatch   = 0x01

	LiteralSize = 2 // Bytes in a literal token.
	MatchSize   = 4 // Bytes in a match token.
)
