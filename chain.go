package gsea

import (
	"encoding/binary"
	"math/bits"
	"runtime"
)

// HashChain is an implementation of the MatchFinder interface that
// indexes the input by 2-byte prefixes and follows a chain of earlier
// positions with the same prefix, instead of examining every position in
// the window.
//
// With SearchLen set to 0 it visits every candidate that could yield a
// match of at least two bytes, and breaks ties toward the farthest
// candidate, so it produces exactly the same matches as a WindowSearch
// with the same limits.
type HashChain struct {
	// SearchLen is how many entries to examine on the hash chain.
	// The default, 0, follows the chain to the edge of the window.
	SearchLen int

	// WindowSize is the maximum distance (in bytes) to look back for
	// a match. The default is 1024; the maximum is 65535.
	WindowSize int

	// MaxLength is the longest match that will be reported.
	// The default is 255.
	MaxLength int

	// MinLength is the shortest match that will be reported.
	// The default (and minimum) is 2.
	MinLength int

	parser GreedyParser

	// table holds, for each 2-byte prefix, the most recent position
	// with that prefix plus one.
	table [1 << 16]uint32

	src   []byte
	chain []uint16
}

const maxChainDistance = 65535

func (q *HashChain) setDefaults() {
	if q.WindowSize <= 0 {
		q.WindowSize = 1024
	}
	if q.WindowSize > maxChainDistance {
		q.WindowSize = maxChainDistance
	}
	if q.MaxLength <= 0 {
		q.MaxLength = 255
	}
	if q.MinLength < 2 {
		q.MinLength = 2
	}
}

func (q *HashChain) Reset() {
	q.table = [1 << 16]uint32{}
	q.src = nil
	q.chain = q.chain[:0]
}

// FindMatches looks for matches in src, appends them to dst, and returns dst.
func (q *HashChain) FindMatches(dst []Match, src []byte) []Match {
	q.setDefaults()
	q.Reset()
	q.src = src

	// Pre-calculate the chains. chain[i] is the distance from i back to
	// the previous position with the same prefix, or 0 if there is none
	// within reach.
	chain := q.chain[:0]
	for i := 0; i+1 < len(src); i++ {
		h := binary.BigEndian.Uint16(src[i:])
		candidate := int(q.table[h]) - 1
		q.table[h] = uint32(i + 1)
		if candidate < 0 || i-candidate > maxChainDistance {
			chain = append(chain, 0)
		} else {
			chain = append(chain, uint16(i-candidate))
		}
	}
	q.chain = chain

	q.parser.MinLength = q.MinLength
	dst = q.parser.Parse(dst, q, 0, len(src))
	q.src = nil
	return dst
}

// Search follows the chain from the nearest candidate to the farthest.
// It reports at most one match: the longest found, and of those the
// farthest back.
func (q *HashChain) Search(dst []AbsoluteMatch, pos, max int) []AbsoluteMatch {
	q.setDefaults()
	if pos >= len(q.chain) {
		return dst
	}
	src := q.src
	if max-pos > q.MaxLength {
		max = pos + q.MaxLength
	}

	var best AbsoluteMatch
	var length int

	candidate := pos
	for i := 0; q.SearchLen == 0 || i < q.SearchLen; i++ {
		d := q.chain[candidate]
		if d == 0 {
			break
		}
		candidate -= int(d)
		if pos-candidate > q.WindowSize {
			break
		}

		end := extendMatch(src[:max], candidate, pos)
		if end-pos >= length {
			best = AbsoluteMatch{
				Start: pos,
				End:   end,
				Match: candidate,
			}
			length = end - pos
		}
	}

	if length == 0 {
		return dst
	}
	return append(dst, best)
}

// extendMatch returns the largest k such that k <= len(src) and that
// src[i:i+k-j] and src[j:k] have the same contents.
//
// It assumes that:
//
//	0 <= i && i < j && j <= len(src)
func extendMatch(src []byte, i, j int) int {
	switch runtime.GOARCH {
	case "amd64", "arm64":
		// As long as we are 8 or more bytes before the end of src, we can load and
		// compare 8 bytes at a time. If those 8 bytes are equal, repeat.
		for j+8 < len(src) {
			iBytes := binary.LittleEndian.Uint64(src[i:])
			jBytes := binary.LittleEndian.Uint64(src[j:])
			if iBytes != jBytes {
				// XOR the two values; the lowest set bit marks the first byte
				// that differs, since both loads are little-endian.
				return j + bits.TrailingZeros64(iBytes^jBytes)>>3
			}
			i, j = i+8, j+8
		}
	case "386":
		// On a 32-bit CPU, we do it 4 bytes at a time.
		for j+4 < len(src) {
			iBytes := binary.LittleEndian.Uint32(src[i:])
			jBytes := binary.LittleEndian.Uint32(src[j:])
			if iBytes != jBytes {
				return j + bits.TrailingZeros32(iBytes^jBytes)>>3
			}
			i, j = i+4, j+4
		}
	}
	for ; j < len(src) && src[i] == src[j]; i, j = i+1, j+1 {
	}
	return j
}
