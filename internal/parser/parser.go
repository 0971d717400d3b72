package parser

import (
	stderrors "errors" // Standard errors package
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mcncl/jsonkit/internal/errors" // Custom errors package
	"github.com/mcncl/jsonkit/internal/models"
	"github.com/mcncl/jsonkit/internal/token"
	"github.com/mcncl/jsonkit/internal/tokenizer"
)

// Error describes a parse failure. Kind is one of errors.ErrUnexpectedToken,
// errors.ErrUnexpectedEOF, errors.ErrTrailingTokens, errors.ErrNumberOverflow or
// errors.ErrDepthLimit.
type Error struct {
	Kind error
	// Token is the token that was found, when there was one.
	Token *token.Token
	// Pos is the index of that token in the token sequence.
	Pos int
}

func (e *Error) Error() string {
	if e.Token == nil {
		return fmt.Sprintf("%v at token %d", e.Kind, e.Pos)
	}
	return fmt.Sprintf("%v %s at token %d", e.Kind, e.Token, e.Pos)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// DefaultMaxDepth is the nesting limit used when none is configured. The root
// object counts as depth 1.
const DefaultMaxDepth = 1000

// Option configures a Parser.
type Option func(*Parser)

// Strict makes commas mandatory between members and elements and rejects a
// comma before a closing brace or bracket. Without it a comma after an item is
// consumed when present and not required otherwise.
func Strict() Option {
	return func(p *Parser) {
		p.strict = true
	}
}

// WithStrict sets strict comma handling from a flag.
func WithStrict(strict bool) Option {
	return func(p *Parser) {
		p.strict = strict
	}
}

// WithMaxDepth limits how deeply objects and arrays may nest. Values below 1
// select DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		if depth <= 0 {
			depth = DefaultMaxDepth
		}
		p.maxDepth = depth
	}
}

// source yields tokens left to right with one token of lookahead.
type source interface {
	Next() (token.Token, bool, error)
	Peek() (token.Token, bool, error)
	Done() bool
}

type sliceSource struct {
	tokens []token.Token
	pos    int
}

func (s *sliceSource) Next() (token.Token, bool, error) {
	tok, ok, _ := s.Peek()
	if ok {
		s.pos++
	}
	return tok, ok, nil
}

func (s *sliceSource) Peek() (token.Token, bool, error) {
	if s.pos >= len(s.tokens) {
		return token.Token{}, false, nil
	}
	return s.tokens[s.pos], true, nil
}

func (s *sliceSource) Done() bool {
	return s.pos >= len(s.tokens)
}

// Parser builds a value tree from a token sequence by recursive descent. The
// cursor only moves forward. A Parser is good for a single Parse call.
type Parser struct {
	src      source
	pos      int
	strict   bool
	depth    int
	maxDepth int
}

// New returns a Parser that tokenizes text as it goes.
func New(text string, opts ...Option) *Parser {
	return newParser(tokenizer.NewScanner(text), opts)
}

// NewFromTokens returns a Parser over an already tokenized sequence.
func NewFromTokens(tokens []token.Token, opts ...Option) *Parser {
	return newParser(&sliceSource{tokens: tokens}, opts)
}

func newParser(src source, opts []Option) *Parser {
	p := &Parser{src: src, maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse reads a single root object and requires that nothing follows it.
// Errors are either *tokenizer.Error or *Error.
func (p *Parser) Parse() (*models.Object, error) {
	obj, err := p.parseObject()
	if err != nil {
		return nil, err
	}
	if !p.src.Done() {
		trailing := &Error{Kind: errors.ErrTrailingTokens, Pos: p.pos}
		if tok, ok, err := p.src.Peek(); err == nil && ok {
			trailing.Token = &tok
		}
		return nil, trailing
	}
	return obj, nil
}

// Position returns the number of tokens consumed so far.
func (p *Parser) Position() int {
	return p.pos
}

func (p *Parser) next() (token.Token, error) {
	tok, ok, err := p.src.Next()
	if err != nil {
		return token.Token{}, err
	}
	if !ok {
		return token.Token{}, &Error{Kind: errors.ErrUnexpectedEOF, Pos: p.pos}
	}
	p.pos++
	return tok, nil
}

func (p *Parser) peek() (token.Token, error) {
	tok, ok, err := p.src.Peek()
	if err != nil {
		return token.Token{}, err
	}
	if !ok {
		return token.Token{}, &Error{Kind: errors.ErrUnexpectedEOF, Pos: p.pos}
	}
	return tok, nil
}

func (p *Parser) nextIs(kind token.Kind) bool {
	tok, ok, err := p.src.Peek()
	return err == nil && ok && tok.Kind == kind
}

// unexpected reports tok, which must be the token just consumed.
func (p *Parser) unexpected(tok token.Token) error {
	return &Error{Kind: errors.ErrUnexpectedToken, Token: &tok, Pos: p.pos - 1}
}

func (p *Parser) expect(kind token.Kind) error {
	tok, err := p.next()
	if err != nil {
		return err
	}
	if tok.Kind != kind {
		return p.unexpected(tok)
	}
	return nil
}

// enter consumes the opening token of a container and enters one nesting level.
func (p *Parser) enter(kind token.Kind) error {
	tok, err := p.next()
	if err != nil {
		return err
	}
	if tok.Kind != kind {
		return p.unexpected(tok)
	}
	if p.depth >= p.maxDepth {
		return &Error{Kind: errors.ErrDepthLimit, Token: &tok, Pos: p.pos - 1}
	}
	p.depth++
	return nil
}

// leave consumes the closing token of a container and leaves its level.
func (p *Parser) leave(kind token.Kind) error {
	if err := p.expect(kind); err != nil {
		return err
	}
	p.depth--
	return nil
}

func (p *Parser) parseObject() (*models.Object, error) {
	if err := p.enter(token.LeftBrace); err != nil {
		return nil, err
	}
	obj := models.NewObject()
	err := p.parseSeries(token.RightBrace, func() error {
		key, value, err := p.parseMember()
		if err != nil {
			return err
		}
		obj.Set(key, value)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := p.leave(token.RightBrace); err != nil {
		return nil, err
	}
	return obj, nil
}

func (p *Parser) parseArray() (models.Array, error) {
	if err := p.enter(token.LeftBracket); err != nil {
		return nil, err
	}
	arr := models.Array{}
	err := p.parseSeries(token.RightBracket, func() error {
		value, err := p.parseValue()
		if err != nil {
			return err
		}
		arr = append(arr, value)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := p.leave(token.RightBracket); err != nil {
		return nil, err
	}
	return arr, nil
}

// parseSeries calls item for each member or element up to, but not including,
// the closing token.
func (p *Parser) parseSeries(closing token.Kind, item func() error) error {
	if p.strict {
		if p.nextIs(closing) {
			return nil
		}
		for {
			if err := item(); err != nil {
				return err
			}
			if !p.nextIs(token.Comma) {
				return nil
			}
			if _, err := p.next(); err != nil {
				return err
			}
		}
	}

	for !p.nextIs(closing) {
		if err := item(); err != nil {
			return err
		}
		if p.nextIs(token.Comma) {
			if _, err := p.next(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *Parser) parseMember() (string, models.Value, error) {
	key, err := p.parseKey()
	if err != nil {
		return "", nil, err
	}
	if err := p.expect(token.Colon); err != nil {
		return "", nil, err
	}
	value, err := p.parseValue()
	if err != nil {
		return "", nil, err
	}
	return key, value, nil
}

func (p *Parser) parseKey() (string, error) {
	tok, err := p.next()
	if err != nil {
		return "", err
	}
	key, ok := tok.IsIdentifier()
	if !ok {
		return "", p.unexpected(tok)
	}
	return key, nil
}

func (p *Parser) parseValue() (models.Value, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case token.LeftBrace:
		return p.parseObject()
	case token.LeftBracket:
		return p.parseArray()
	}

	if _, err := p.next(); err != nil {
		return nil, err
	}
	switch tok.Kind {
	case token.Identifier:
		return models.String(tok.Text), nil
	case token.Number:
		n, err := strconv.ParseUint(tok.Text, 10, 64)
		if err != nil {
			return nil, &Error{Kind: errors.ErrNumberOverflow, Token: &tok, Pos: p.pos - 1}
		}
		return models.Number(n), nil
	case token.True:
		return models.Boolean(true), nil
	case token.False:
		return models.Boolean(false), nil
	case token.Null:
		return models.Null{}, nil
	default:
		return nil, p.unexpected(tok)
	}
}

// ParseTokens parses an already tokenized document.
func ParseTokens(tokens []token.Token, opts ...Option) (*models.Object, error) {
	obj, err := NewFromTokens(tokens, opts...).Parse()
	if err != nil {
		return nil, errors.NewParsingError("failed to parse document", err)
	}
	return obj, nil
}

// ParseString tokenizes and parses text. Failures are *errors.AppError of type
// tokenize or parsing wrapping the stage error.
func ParseString(text string, opts ...Option) (*models.Object, error) {
	obj, err := New(text, opts...).Parse()
	if err != nil {
		return nil, wrapStageError(err)
	}
	return obj, nil
}

func wrapStageError(err error) error {
	var tokErr *tokenizer.Error
	if stderrors.As(err, &tokErr) {
		return errors.NewTokenizeError("failed to tokenize document", err)
	}
	return errors.NewParsingError("failed to parse document", err)
}

// Parse reads a whole document from reader and parses it.
func Parse(reader io.Reader, opts ...Option) (*models.Object, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.NewInputError("failed to read input", err)
	}
	return ParseString(string(data), opts...)
}

// ParseFile parses the document stored at filePath
func ParseFile(filePath string, opts ...Option) (*models.Object, error) {
	text, err := ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return ParseString(text, opts...)
}

// ReadFile returns the contents of filePath, rejecting empty paths, missing
// files and empty files with input errors.
func ReadFile(filePath string) (string, error) {
	if strings.TrimSpace(filePath) == "" {
		return "", errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		// Check if the file doesn't exist
		if os.IsNotExist(err) {
			return "", errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return "", errors.NewInputError(
			fmt.Sprintf("failed to read file '%s'", filePath),
			err,
		)
	}
	if len(data) == 0 {
		return "", errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}
	return string(data), nil
}
