// Package tokenizer scans document text into tokens.
package tokenizer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mcncl/jsonkit/internal/errors"
	"github.com/mcncl/jsonkit/internal/token"
)

// Error describes a tokenize failure. Kind is one of errors.ErrUnexpectedCharacter
// or errors.ErrUnterminatedString.
type Error struct {
	Kind error
	// Char is the offending rune for ErrUnexpectedCharacter.
	Char rune
	// Offset is the byte offset of the offending rune, or of the opening quote for
	// an unterminated string.
	Offset int
}

func (e *Error) Error() string {
	if e.Kind == errors.ErrUnterminatedString {
		return fmt.Sprintf("%v for string starting at offset %d", e.Kind, e.Offset)
	}
	return fmt.Sprintf("%v %q at offset %d", e.Kind, e.Char, e.Offset)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// Tokenize scans the whole of text and returns its tokens in order.
func Tokenize(text string) ([]token.Token, error) {
	s := NewScanner(text)
	var tokens []token.Token
	for {
		tok, ok, err := s.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

// Scanner produces tokens one at a time with a single token of lookahead.
// Once it reports an error every later call reports the same error.
type Scanner struct {
	src    string
	off    int
	peeked *scanResult
	err    error
}

type scanResult struct {
	tok token.Token
	ok  bool
	err error
}

// NewScanner returns a Scanner positioned at the start of text.
func NewScanner(text string) *Scanner {
	return &Scanner{src: text}
}

// Next consumes and returns the next token. ok is false at end of input.
func (s *Scanner) Next() (tok token.Token, ok bool, err error) {
	if s.peeked != nil {
		r := s.peeked
		s.peeked = nil
		return r.tok, r.ok, r.err
	}
	return s.scan()
}

// Peek returns the next token without consuming it.
func (s *Scanner) Peek() (tok token.Token, ok bool, err error) {
	if s.peeked == nil {
		var r scanResult
		r.tok, r.ok, r.err = s.scan()
		s.peeked = &r
	}
	return s.peeked.tok, s.peeked.ok, s.peeked.err
}

// Done reports whether only whitespace remains. Content that would fail to
// tokenize still counts as remaining input.
func (s *Scanner) Done() bool {
	if s.peeked != nil {
		return !s.peeked.ok && s.peeked.err == nil
	}
	if s.err != nil {
		return false
	}
	s.skipSpace()
	return s.off >= len(s.src)
}

// Offset returns the byte offset of the next unread rune.
func (s *Scanner) Offset() int {
	return s.off
}

func (s *Scanner) skipSpace() {
	for s.off < len(s.src) {
		r, size := utf8.DecodeRuneInString(s.src[s.off:])
		if !unicode.IsSpace(r) {
			return
		}
		s.off += size
	}
}

func (s *Scanner) scan() (token.Token, bool, error) {
	if s.err != nil {
		return token.Token{}, false, s.err
	}
	s.skipSpace()
	if s.off >= len(s.src) {
		return token.Token{}, false, nil
	}

	start := s.off
	r, size := utf8.DecodeRuneInString(s.src[start:])
	if kind, ok := structural(r); ok {
		s.off += size
		return token.New(kind), true, nil
	}

	switch {
	case r == '"':
		return s.scanString(start)
	case isDigit(r):
		return s.scanNumber(start)
	case r >= 'a' && r <= 'z':
		return s.scanWord(start)
	}
	return s.fail(&Error{Kind: errors.ErrUnexpectedCharacter, Char: r, Offset: start})
}

func structural(r rune) (token.Kind, bool) {
	switch r {
	case '{':
		return token.LeftBrace, true
	case '}':
		return token.RightBrace, true
	case '[':
		return token.LeftBracket, true
	case ']':
		return token.RightBracket, true
	case ':':
		return token.Colon, true
	case ',':
		return token.Comma, true
	}
	return 0, false
}

// scanString reads a quoted literal verbatim up to the next quote. Backslashes
// have no special meaning, so any payload without a quote survives a write and
// re-read unchanged.
func (s *Scanner) scanString(start int) (token.Token, bool, error) {
	end := strings.IndexByte(s.src[start+1:], '"')
	if end < 0 {
		return s.fail(&Error{Kind: errors.ErrUnterminatedString, Char: '"', Offset: start})
	}
	s.off = start + 1 + end + 1
	return token.Ident(s.src[start+1 : start+1+end]), true, nil
}

func (s *Scanner) scanNumber(start int) (token.Token, bool, error) {
	i := start
	for i < len(s.src) && isDigit(rune(s.src[i])) {
		i++
	}
	s.off = i
	return token.Num(s.src[start:i]), true, nil
}

func (s *Scanner) scanWord(start int) (token.Token, bool, error) {
	i := start
	for i < len(s.src) && isLetter(s.src[i]) {
		i++
	}
	var kind token.Kind
	switch s.src[start:i] {
	case "true":
		kind = token.True
	case "false":
		kind = token.False
	case "null":
		kind = token.Null
	default:
		return s.fail(&Error{Kind: errors.ErrUnexpectedCharacter, Char: rune(s.src[start]), Offset: start})
	}
	s.off = i
	return token.New(kind), true, nil
}

func (s *Scanner) fail(err *Error) (token.Token, bool, error) {
	s.err = err
	return token.Token{}, false, err
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
