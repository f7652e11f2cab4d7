package gsea

// WindowSearch is an implementation of the MatchFinder interface that
// compares every position in the window with the bytes at the current
// position. It is slow, but it finds the longest match there is, and
// among matches of equal length it always picks the one farthest back.
// That makes its output a fixed function of the input, which the LZ77
// token format relies on.
//
// A WindowSearch keeps no state between calls to FindMatches.
type WindowSearch struct {
	// WindowSize is the maximum distance (in bytes) to look back for
	// a match. The default is 1024.
	WindowSize int

	// MaxLength is the longest match that will be reported.
	// The default is 255.
	MaxLength int

	// MinLength is the shortest match that will be reported; shorter
	// ones are left as literals. The default (and minimum) is 2.
	MinLength int

	parser GreedyParser
	src    []byte
}

func (w *WindowSearch) setDefaults() {
	if w.WindowSize <= 0 {
		w.WindowSize = 1024
	}
	if w.MaxLength <= 0 {
		w.MaxLength = 255
	}
	if w.MinLength < 2 {
		w.MinLength = 2
	}
}

func (w *WindowSearch) Reset() {
	w.src = nil
}

// FindMatches looks for matches in src, appends them to dst, and returns dst.
func (w *WindowSearch) FindMatches(dst []Match, src []byte) []Match {
	w.setDefaults()
	w.src = src
	w.parser.MinLength = w.MinLength
	dst = w.parser.Parse(dst, w, 0, len(src))
	w.src = nil
	return dst
}

// Search scans the window from the oldest position to the newest, and
// appends a candidate each time it finds a strictly longer match.
func (w *WindowSearch) Search(dst []AbsoluteMatch, pos, max int) []AbsoluteMatch {
	w.setDefaults()
	src := w.src
	if max-pos > w.MaxLength {
		max = pos + w.MaxLength
	}
	start := pos - w.WindowSize
	if start < 0 {
		start = 0
	}

	var length int
	for i := start; i < pos; i++ {
		end := extendMatch(src[:max], i, pos)
		if end-pos > length {
			dst = append(dst, AbsoluteMatch{
				Start: pos,
				End:   end,
				Match: i,
			})
			length = end - pos
		}
	}
	return dst
}
