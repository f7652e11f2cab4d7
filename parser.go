package gsea

// An AbsoluteMatch is like a Match, but it stores indexes into the byte
// stream instead of lengths.
type AbsoluteMatch struct {
	// Start is the index of the first byte.
	Start int

	// End is the index of the byte after the last byte
	// (so that End - Start = Length).
	End int

	// Match is the index of the previous data that matches
	// (Start - Match = Distance).
	Match int
}

// A Searcher is the source of matches for a Parser. It is a lower-level
// interface than MatchFinder, only looking for matches at one position at a
// time.
type Searcher interface {
	// Search looks for matches starting at pos and appends them to dst.
	// Each match has Start == pos, End <= max and Match < Start.
	// Candidates are appended in order of preference: a later candidate
	// is only appended if it is strictly longer than every earlier one.
	Search(dst []AbsoluteMatch, pos, max int) []AbsoluteMatch
}

// A Parser chooses which matches to use to compress the data.
type Parser interface {
	// Parse gets matches from src, chooses which ones to use, and appends
	// them to dst. The matches cover the range of bytes from start to end.
	Parse(dst []Match, src Searcher, start, end int) []Match
}

// A GreedyParser implements the greedy matching strategy: It goes from start
// to end, choosing the longest match at each position.
type GreedyParser struct {
	// MinLength is the shortest match that is worth emitting.
	// Shorter matches are left as literals. The default is 2.
	MinLength int

	matchCache []AbsoluteMatch
}

func (p *GreedyParser) Parse(dst []Match, src Searcher, start, end int) []Match {
	if p.MinLength == 0 {
		p.MinLength = 2
	}
	matches := p.matchCache[:0]
	s := start
	nextEmit := start

	for s < end {
		matches = src.Search(matches[:0], s, end)
		m := longestMatch(matches)
		if m.End-m.Start < p.MinLength {
			s++
			continue
		}

		dst = append(dst, Match{
			Unmatched: m.Start - nextEmit,
			Length:    m.End - m.Start,
			Distance:  m.Start - m.Match,
		})
		s = m.End
		nextEmit = s
	}

	if nextEmit < end {
		dst = append(dst, Match{
			Unmatched: end - nextEmit,
		})
	}
	p.matchCache = matches[:0]
	return dst
}

// longestMatch returns the first of the longest matches, so that the
// Searcher's ordering decides ties.
func longestMatch(matches []AbsoluteMatch) AbsoluteMatch {
	var longest AbsoluteMatch

	for _, m := range matches {
		if m.End-m.Start > longest.End-longest.Start {
			longest = m
		}
	}

	return longest
}
