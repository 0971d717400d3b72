package token

import "fmt"

// Kind identifies the lexical class of a Token.
type Kind uint8

const (
	LeftBrace Kind = iota
	RightBrace
	LeftBracket
	RightBracket
	Colon
	Comma
	// Identifier is a quoted string literal. It is used both as an object key and
	// as a string value; only the parser's position decides which.
	Identifier
	Number
	True
	False
	Null
)

var kindNames = [...]string{
	LeftBrace:    "LeftBrace",
	RightBrace:   "RightBrace",
	LeftBracket:  "LeftBracket",
	RightBracket: "RightBracket",
	Colon:        "Colon",
	Comma:        "Comma",
	Identifier:   "Identifier",
	Number:       "Number",
	True:         "True",
	False:        "False",
	Null:         "Null",
}

// String returns the kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Token is a single lexical unit. Text holds the string literal contents for
// Identifier and the digit run for Number; it is empty for every other kind.
type Token struct {
	Kind Kind
	Text string
}

// New returns a payload-free token of the given kind.
func New(kind Kind) Token {
	return Token{Kind: kind}
}

// Ident returns an Identifier token carrying text.
func Ident(text string) Token {
	return Token{Kind: Identifier, Text: text}
}

// Num returns a Number token carrying a digit sequence.
func Num(digits string) Token {
	return Token{Kind: Number, Text: digits}
}

// IsIdentifier reports whether t is an Identifier and returns its text.
func (t Token) IsIdentifier() (string, bool) {
	if t.Kind != Identifier {
		return "", false
	}
	return t.Text, true
}

// String renders the token in a debug form such as Identifier("name").
func (t Token) String() string {
	switch t.Kind {
	case Identifier:
		return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
	case Number:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Text)
	default:
		return t.Kind.String()
	}
}

// Literal returns the source text the token was scanned from.
func (t Token) Literal() string {
	switch t.Kind {
	case LeftBrace:
		return "{"
	case RightBrace:
		return "}"
	case LeftBracket:
		return "["
	case RightBracket:
		return "]"
	case Colon:
		return ":"
	case Comma:
		return ","
	case Identifier:
		return `"` + t.Text + `"`
	case Number:
		return t.Text
	case True:
		return "true"
	case False:
		return "false"
	case Null:
		return "null"
	default:
		return ""
	}
}
