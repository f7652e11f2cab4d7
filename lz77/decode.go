package lz77

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Decoding errors. They are returned wrapped in a *DecodeError, so use
// errors.Is to test for them.
var (
	ErrUnknownTokenFlag       = errors.New("unknown token flag")
	ErrTruncatedLiteral       = errors.New("truncated literal token")
	ErrTruncatedMatch         = errors.New("truncated match token")
	ErrInvalidMatchParameters = errors.New("match with zero offset or length")
	ErrOffsetOutOfRange       = errors.New("match offset out of range")
)

// A DecodeError records why and where decoding stopped.
type DecodeError struct {
	Err error // one of the Err* values above
	Pos int   // index of the offending token's tag byte
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("lz77: %v at byte %d", e.Err, e.Pos)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decode returns the bytes encoded by the token stream src.
// If src is malformed, it returns nil and a *DecodeError; no partial
// output is returned.
func Decode(src []byte) ([]byte, error) {
	var out []byte
	if len(src) > 0 {
		out = make([]byte, 0, len(src))
	}

	s := NewScanner(src)
	for s.Scan() {
		t := s.Token()
		if t.Kind == LiteralToken {
			out = append(out, t.Value)
			continue
		}

		if t.Offset > len(out) {
			return nil, &DecodeError{Err: ErrOffsetOutOfRange, Pos: t.Pos}
		}
		// Copy one byte at a time: when the offset is shorter than the
		// length, the later bytes come from the ones this match wrote.
		start := len(out) - t.Offset
		for i := 0; i < t.Length; i++ {
			out = append(out, out[start+i])
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// NewReader returns a reader that decodes the token stream read from r.
// The whole stream is read and decoded on the first call to Read.
func NewReader(r io.Reader) io.Reader {
	return &reader{src: r}
}

type reader struct {
	src io.Reader
	out *bytes.Reader
	err error
}

func (z *reader) Read(p []byte) (int, error) {
	if z.out == nil && z.err == nil {
		data, err := io.ReadAll(z.src)
		if err == nil {
			data, err = Decode(data)
		}
		if err != nil {
			z.err = err
		} else {
			z.out = bytes.NewReader(data)
		}
	}
	if z.err != nil {
		return 0, z.err
	}
	return z.out.Read(p)
}
