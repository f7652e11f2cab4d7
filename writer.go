package gsea

import (
	"errors"
	"io"
)

var errWriterClosed = errors.New("gsea: write to closed Writer")

// A Writer uses MatchFinder and Encoder to write compressed data to Dest.
type Writer struct {
	Dest        io.Writer
	MatchFinder MatchFinder
	Encoder     Encoder

	// BlockSize is the number of bytes to compress at a time.
	// If it is 0, all input is buffered until Close and compressed as
	// one block, which is what formats without block framing need.
	BlockSize int

	inBuf   []byte
	outBuf  []byte
	matches []Match
	err     error
}

func (w *Writer) Write(p []byte) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}

	if w.BlockSize <= 0 {
		w.inBuf = append(w.inBuf, p...)
		return len(p), nil
	}

	for len(p) > 0 {
		// A full block is only flushed when more data arrives, so the
		// block written by Close is never empty unless there was no
		// input at all.
		if len(w.inBuf) == w.BlockSize {
			if w.err = w.writeBlock(false); w.err != nil {
				return n, w.err
			}
		}
		chunk := p
		if free := w.BlockSize - len(w.inBuf); len(chunk) > free {
			chunk = chunk[:free]
		}
		w.inBuf = append(w.inBuf, chunk...)
		n += len(chunk)
		p = p[len(chunk):]
	}
	return n, nil
}

func (w *Writer) writeBlock(lastBlock bool) error {
	w.matches = w.MatchFinder.FindMatches(w.matches[:0], w.inBuf)
	w.outBuf = w.Encoder.Encode(w.outBuf[:0], w.inBuf, w.matches, lastBlock)
	w.inBuf = w.inBuf[:0]
	if len(w.outBuf) == 0 {
		return nil
	}
	_, err := w.Dest.Write(w.outBuf)
	return err
}

// Close compresses any buffered data, finishes the stream,
// and writes it to Dest. It does not close Dest.
func (w *Writer) Close() error {
	if w.err != nil {
		return w.err
	}
	if err := w.writeBlock(true); err != nil {
		w.err = err
		return err
	}
	w.err = errWriterClosed
	return nil
}

// Reset discards the Writer's state and makes it equivalent to the result
// of its original state, but writing to dst instead.
func (w *Writer) Reset(dst io.Writer) {
	w.Dest = dst
	w.inBuf = w.inBuf[:0]
	w.err = nil
	w.MatchFinder.Reset()
	w.Encoder.Reset()
}
