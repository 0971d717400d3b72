// Package writer renders value trees as canonical single-line text.
//
// Objects render as {"key": value, ...} and arrays as [value, ...], with ", "
// between items and ": " after keys. String payloads are written between
// double quotes exactly as stored; nothing is escaped. Payloads without a double
// quote read back unchanged.
package writer

import (
	"io"
	"strconv"
	"strings"

	"github.com/mcncl/jsonkit/internal/models"
)

// Style decorates rendered pieces of output without changing the layout.
// Each hook receives the exact text that would otherwise be written.
type Style interface {
	Key(quoted string) string
	String(quoted string) string
	Number(digits string) string
	Literal(word string) string
	Punct(p string) string
}

type plainStyle struct{}

func (plainStyle) Key(s string) string     { return s }
func (plainStyle) String(s string) string  { return s }
func (plainStyle) Number(s string) string  { return s }
func (plainStyle) Literal(s string) string { return s }
func (plainStyle) Punct(s string) string   { return s }

// Writer serializes values. It never mutates its input.
type Writer struct {
	style Style
}

// Option configures a Writer.
type Option func(*Writer)

// WithStyle decorates output with s. A nil Style leaves output plain.
func WithStyle(s Style) Option {
	return func(w *Writer) {
		if s != nil {
			w.style = s
		}
	}
}

// New returns a Writer.
func New(opts ...Option) *Writer {
	w := &Writer{style: plainStyle{}}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write renders v with the default plain writer.
func Write(v models.Value) string {
	return New().Write(v)
}

// Write renders v.
func (w *Writer) Write(v models.Value) string {
	var b strings.Builder
	w.write(&b, v)
	return b.String()
}

// WriteValue renders v to out and reports the bytes written.
func (w *Writer) WriteValue(out io.Writer, v models.Value) (int64, error) {
	n, err := io.WriteString(out, w.Write(v))
	return int64(n), err
}

func (w *Writer) write(b *strings.Builder, v models.Value) {
	switch tv := v.(type) {
	case *models.Object:
		if tv == nil {
			b.WriteString(w.style.Literal("null"))
			return
		}
		b.WriteString(w.style.Punct("{"))
		for i, m := range tv.Members() {
			if i > 0 {
				b.WriteString(w.style.Punct(","))
				b.WriteByte(' ')
			}
			b.WriteString(w.style.Key(`"` + m.Key + `"`))
			b.WriteString(w.style.Punct(":"))
			b.WriteByte(' ')
			w.write(b, m.Value)
		}
		b.WriteString(w.style.Punct("}"))
	case models.Array:
		b.WriteString(w.style.Punct("["))
		for i, e := range tv {
			if i > 0 {
				b.WriteString(w.style.Punct(","))
				b.WriteByte(' ')
			}
			w.write(b, e)
		}
		b.WriteString(w.style.Punct("]"))
	case models.String:
		b.WriteString(w.style.String(`"` + string(tv) + `"`))
	case models.Number:
		b.WriteString(w.style.Number(strconv.FormatUint(uint64(tv), 10)))
	case models.Boolean:
		b.WriteString(w.style.Literal(strconv.FormatBool(bool(tv))))
	case models.Null:
		b.WriteString(w.style.Literal("null"))
	case nil:
		// A nil interface only appears in hand-built trees; render it as null.
		b.WriteString(w.style.Literal("null"))
	}
}
