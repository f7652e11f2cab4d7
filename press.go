// Package gsea is a modular system for dictionary compression of files.
//
// A compressor has two main parts:
//   - Something that looks for repeated sequences of bytes (a MatchFinder)
//   - An encoder for the compressed data format (an Encoder)
//
// This package defines the interfaces and the intermediate representation
// that connect the two, so the same match finder can feed the LZ77 token
// format in package lz77 as well as the snappy and lz4 container formats.
package gsea

// A Match is the basic unit of LZ77 compression.
type Match struct {
	Unmatched int // the number of unmatched bytes since the previous match
	Length    int // the number of bytes in the matched string; it may be 0 at the end of the input
	Distance  int // how far back in the stream to copy from
}

// A MatchFinder performs the LZ77 stage of compression, looking for matches.
type MatchFinder interface {
	// FindMatches looks for matches in src, appends them to dst, and returns dst.
	FindMatches(dst []Match, src []byte) []Match

	// Reset clears any internal state, preparing the MatchFinder to be used with
	// a new stream.
	Reset()
}

// An Encoder encodes the data in its final format.
type Encoder interface {
	// Encode appends the encoded format of src to dst, using the match
	// information from matches. Encoders that write a stream header do so
	// on the first call after Reset.
	Encode(dst []byte, src []byte, matches []Match, lastBlock bool) []byte

	// Reset clears any internal state, preparing the Encoder to be used with
	// a new stream.
	Reset()
}
