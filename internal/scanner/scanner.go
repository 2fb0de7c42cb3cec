package scanner

import (
	"fmt"
	"io"
	"slices"

	"github.com/arnodel/jsonsplit/internal/debug"
)

// Pos is a position in the input.  Line and Col are 0-based, Offset counts
// the bytes consumed since the start of the input.
type Pos struct {
	Line   int
	Col    int
	Offset int64
}

// String formats p 1-based, the way editors display positions.
func (p Pos) String() string {
	return fmt.Sprintf("L%d,C%d", p.Line+1, p.Col+1)
}

// Scanner reads bytes from an io.Reader through a fixed size buffer.  It
// can record a "token": all the bytes read between StartToken and EndToken
// are returned by EndToken, even if they did not fit in the buffer.
type Scanner struct {
	reader io.Reader
	buf    []byte

	// The first unfilled position in buf
	// 0 <= fillIndex <= len(buf)
	fillIndex int

	// Current position in buf
	// 0 <= currentIndex <= fillIndex
	currentIndex int

	// Position of the next byte to read, and of the previous one so that
	// Back() can restore it.
	currentPos, prevPos Pos

	// Position in buf of the currently recorded token.
	// -1 means not recording a token
	// 0 means there may be token parts no longer in the buffer
	// tokenStartIndex <= currentIndex
	tokenStartIndex int

	// Parts of a token that no longer fit in the read buffer.
	tokenParts [][]byte

	err error

	// Tracks how many EOFs have been read.  This is required to make
	// Back() work after an EOF has been read.
	eofCount int
}

func NewScanner(reader io.Reader) *Scanner {
	return NewScannerSize(reader, defaultBufSize)
}

func NewScannerSize(reader io.Reader, size int) *Scanner {
	return &Scanner{
		reader:          reader,
		buf:             make([]byte, size),
		tokenStartIndex: -1,
		prevPos:         Pos{Line: -1},
	}
}

func (s *Scanner) fillBuf() {
	if s.fillIndex == len(s.buf) {
		s.shiftBuf()
	}
	for i := maxConsecutiveEmptyReads; i > 0; i-- {
		n, err := s.reader.Read(s.buf[s.fillIndex:])
		s.fillIndex += n
		if err != nil {
			s.err = err
			return
		}
		if n > 0 {
			return
		}
	}
	s.err = io.ErrNoProgress
}

// shiftBuf makes room at the end of a full buffer.  Only lookBackSize bytes
// before the current position are kept, except for a token being recorded
// which is either kept in the buffer or saved in tokenParts.
func (s *Scanner) shiftBuf() {
	var baseIndex int
	switch {
	case s.tokenStartIndex > 0:
		// Try to shift the buffer so the token remains wholly in it.
		baseIndex = s.tokenStartIndex
		s.tokenStartIndex = 0
	case s.currentIndex >= lookBackSize:
		baseIndex = s.currentIndex - lookBackSize
		if s.tokenStartIndex == 0 {
			part := make([]byte, baseIndex)
			copy(part, s.buf)
			s.tokenParts = append(s.tokenParts, part)
			debug.Printf("token spans %d buffers at %s", len(s.tokenParts)+1, s.currentPos)
		}
	}
	if baseIndex > 0 {
		copy(s.buf, s.buf[baseIndex:s.fillIndex])
		s.fillIndex -= baseIndex
		s.currentIndex -= baseIndex
	}
}

func (s *Scanner) Read() (byte, error) {
	if s.currentIndex >= s.fillIndex {
		s.fillBuf()
	}
	if s.currentIndex < s.fillIndex {
		b := s.buf[s.currentIndex]
		s.prevPos = s.currentPos
		s.advancePos(b)
		s.currentIndex++
		return b, nil
	}
	if s.err == io.EOF {
		s.eofCount++
		return EOF, nil
	}
	return 0, s.err
}

func (s *Scanner) advancePos(b byte) {
	s.currentPos.Offset++
	switch {
	case b == '\n':
		s.currentPos.Line++
		s.currentPos.Col = 0
	case b < 0x80 || b >= 0xC0:
		// Count the first byte of each utf8-encoded codepoint only
		s.currentPos.Col++
	}
}

func (s *Scanner) StartToken() Pos {
	if s.tokenStartIndex >= 0 {
		panic("already in record mode")
	}
	s.tokenStartIndex = s.currentIndex
	return s.currentPos
}

func (s *Scanner) CurrentPos() Pos {
	return s.currentPos
}

func (s *Scanner) EndToken() []byte {
	if s.tokenStartIndex < 0 {
		panic("not in record mode")
	}
	if s.tokenParts == nil {
		tokBytes := slices.Clone(s.buf[s.tokenStartIndex:s.currentIndex])
		s.tokenStartIndex = -1
		return tokBytes
	}
	// Precalculate the size of the token so it doesn't have to be grown mid-concatenation
	tokLen := s.currentIndex - s.tokenStartIndex
	for _, p := range s.tokenParts {
		tokLen += len(p)
	}
	tokBytes := make([]byte, 0, tokLen)
	for _, p := range s.tokenParts {
		tokBytes = append(tokBytes, p...)
	}
	tokBytes = append(tokBytes, s.buf[s.tokenStartIndex:s.currentIndex]...)
	s.tokenStartIndex = -1
	s.tokenParts = nil
	return tokBytes
}

// Back undoes the last Read.  It can only be called once in a row.
func (s *Scanner) Back() {
	if s.prevPos.Line < 0 {
		panic("cannot go back twice")
	}
	if s.eofCount > 0 {
		s.eofCount--
		return
	}
	if s.currentIndex <= 0 || s.currentIndex <= s.tokenStartIndex {
		panic("cannot go back from start")
	}
	s.currentIndex--
	s.currentPos = s.prevPos
	s.prevPos.Line = -1
}

func (s *Scanner) Peek() (byte, error) {
	if s.currentIndex >= s.fillIndex {
		s.fillBuf()
	}
	if s.currentIndex < s.fillIndex {
		return s.buf[s.currentIndex], nil
	}
	return s.errOrEOF()
}

func (s *Scanner) errOrEOF() (byte, error) {
	if s.err == io.EOF {
		return EOF, nil
	}
	return 0, s.err
}

// SkipSpaceAndPeek consumes JSON whitespace and returns the next byte
// without consuming it.
func (s *Scanner) SkipSpaceAndPeek() (byte, error) {
	for {
		for i, b := range s.buf[s.currentIndex:s.fillIndex] {
			switch b {
			case '\n', ' ', '\t', '\r':
				s.advancePos(b)
			default:
				s.currentIndex += i
				return b, nil
			}
		}
		s.currentIndex = s.fillIndex
		s.fillBuf()
		if s.currentIndex >= s.fillIndex {
			return s.errOrEOF()
		}
	}
}

const (
	lookBackSize             = 1
	maxConsecutiveEmptyReads = 100
	defaultBufSize           = 64 * 1024
)

// 0xFF is a byte that should not appear in a UTF-8 encoded stream of bytes.
const EOF byte = 0xFF
