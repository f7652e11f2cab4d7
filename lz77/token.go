package lz77

import (
	"encoding/binary"
	"fmt"
)

// TokenKind tells literal tokens from match tokens.
type TokenKind uint8

const (
	LiteralToken TokenKind = iota
	MatchToken
)

// A Token is one decoded unit of the stream.
type Token struct {
	Kind TokenKind

	// Value is the byte carried by a literal token.
	Value byte

	// Offset and Length describe a match token.
	Offset int
	Length int

	// Pos is the index of the token's tag byte in the stream.
	Pos int
}

func (t Token) String() string {
	if t.Kind == MatchToken {
		return fmt.Sprintf("%d: match offset=%d length=%d", t.Pos, t.Offset, t.Length)
	}
	return fmt.Sprintf("%d: literal %#02x %q", t.Pos, t.Value, t.Value)
}

// AppendLiteral appends a literal token for c to dst.
func AppendLiteral(dst []byte, c byte) []byte {
	return append(dst, TagLiteral, c)
}

// AppendMatch appends a match token to dst. It panics if offset or length
// cannot be represented.
func AppendMatch(dst []byte, offset, length int) []byte {
	if offset < 1 || offset > WindowSize || length < MinLength || length > MaxLength {
		panic(fmt.Sprintf("lz77: match out of range (offset %d, length %d)", offset, length))
	}
	dst = append(dst, TagMatch)
	dst = binary.BigEndian.AppendUint16(dst, uint16(offset))
	return append(dst, byte(length))
}

// A Scanner reads tokens from a stream, checking that each one is
// complete and well-formed. It does not check match offsets against the
// output, since it does not produce any.
type Scanner struct {
	src []byte
	pos int
	tok Token
	err error
}

// NewScanner returns a Scanner reading from src.
func NewScanner(src []byte) *Scanner {
	return &Scanner{src: src}
}

// Scan advances to the next token. It returns false at the end of the
// stream or at the first malformed token; Err tells the two apart.
func (s *Scanner) Scan() bool {
	if s.err != nil || s.pos >= len(s.src) {
		return false
	}

	start := s.pos
	switch s.src[start] {
	case TagLiteral:
		if len(s.src)-start < LiteralSize {
			return s.fail(ErrTruncatedLiteral, start)
		}
		s.tok = Token{
			Kind:  LiteralToken,
			Value: s.src[start+1],
			Pos:   start,
		}
		s.pos += LiteralSize

	case TagMatch:
		if len(s.src)-start < MatchSize {
			return s.fail(ErrTruncatedMatch, start)
		}
		offset := int(binary.BigEndian.Uint16(s.src[start+1:]))
		length := int(s.src[start+3])
		if offset == 0 || length == 0 {
			return s.fail(ErrInvalidMatchParameters, start)
		}
		s.tok = Token{
			Kind:   MatchToken,
			Offset: offset,
			Length: length,
			Pos:    start,
		}
		s.pos += MatchSize

	default:
		return s.fail(ErrUnknownTokenFlag, start)
	}
	return true
}

func (s *Scanner) fail(err error, pos int) bool {
	s.err = &DecodeError{Err: err, Pos: pos}
	return false
}

// Token returns the token read by the last successful call to Scan.
func (s *Scanner) Token() Token {
	return s.tok
}

// Err returns the error that stopped the Scanner, or nil if it reached
// the end of the stream cleanly. The error is always a *DecodeError.
func (s *Scanner) Err() error {
	return s.err
}
