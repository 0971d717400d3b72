package formatter

import (
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/mcncl/jsonkit/internal/models"
	"github.com/mcncl/jsonkit/internal/writer"
)

// ColorStyle is a writer.Style that colors each kind of output token.
type ColorStyle struct {
	key     func(a ...interface{}) string
	str     func(a ...interface{}) string
	number  func(a ...interface{}) string
	literal func(a ...interface{}) string
	punct   func(a ...interface{}) string
}

// NewColorStyle returns a ColorStyle with the default palette. Colors are
// always emitted, whatever color.NoColor says; callers decide when to use it.
func NewColorStyle() *ColorStyle {
	return &ColorStyle{
		key:     forced(color.New(color.FgCyan)),
		str:     forced(color.RGB(8, 196, 16)),
		number:  forced(color.RGB(128, 216, 236)),
		literal: forced(color.New(color.FgMagenta)),
		punct:   forced(color.New(color.Faint)),
	}
}

func forced(c *color.Color) func(a ...interface{}) string {
	c.EnableColor()
	return c.SprintFunc()
}

func (s *ColorStyle) Key(quoted string) string    { return s.key(quoted) }
func (s *ColorStyle) String(quoted string) string { return s.str(quoted) }
func (s *ColorStyle) Number(digits string) string { return s.number(digits) }
func (s *ColorStyle) Literal(word string) string  { return s.literal(word) }
func (s *ColorStyle) Punct(p string) string       { return s.punct(p) }

// Formatter renders values for display.
type Formatter struct {
	writer *writer.Writer
}

// NewFormatter creates a new Formatter. With colored set, output is decorated
// with ANSI colors.
func NewFormatter(colored bool) *Formatter {
	var opts []writer.Option
	if colored {
		opts = append(opts, writer.WithStyle(NewColorStyle()))
	}
	return &Formatter{writer: writer.New(opts...)}
}

// Format renders v on a single line.
func (f *Formatter) Format(v models.Value) string {
	return f.writer.Write(v)
}

// Changed reports whether input differs from its canonical form, ignoring
// leading and trailing whitespace.
func Changed(input, canonical string) bool {
	return strings.TrimSpace(input) != canonical
}

// Diff renders a character-level diff from input to canonical. Deleted text is
// shown as [-text-] and inserted text as {+text+}; with colored set deletions
// are red and insertions green instead.
func Diff(input, canonical string, colored bool) string {
	dmp := diffpatch.New()
	diffs := dmp.DiffMain(strings.TrimSpace(input), canonical, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	del := forced(color.New(color.FgRed))
	ins := forced(color.New(color.FgGreen))

	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffpatch.DiffEqual:
			b.WriteString(d.Text)
		case diffpatch.DiffDelete:
			if colored {
				b.WriteString(del(d.Text))
			} else {
				b.WriteString("[-" + d.Text + "-]")
			}
		case diffpatch.DiffInsert:
			if colored {
				b.WriteString(ins(d.Text))
			} else {
				b.WriteString("{+" + d.Text + "+}")
			}
		}
	}
	return b.String()
}
