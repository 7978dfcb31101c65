package renderer

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/nikogura/rhymer/pkg/highlight"
)

const ansiReset = "\x1b[0m"

var ansiStyles = map[highlight.Style]string{ //nolint:gochecknoglobals // read-only lookup table
	highlight.StyleVowel:    "\x1b[33m",
	highlight.StyleStressed: "\x1b[1;31m",
	highlight.StyleKnown:    "\x1b[32m",
	highlight.StyleUnknown:  "\x1b[4;35m",
}

// Terminal writes styled lines, with ANSI colors when the output is a terminal.
// Without colors stressed vowels are upper-cased so the stress stays visible.
type Terminal struct {
	w     io.Writer
	color bool
}

// NewTerminal creates a writer for w. Colors are enabled only when w is a terminal and
// NO_COLOR is unset.
func NewTerminal(w io.Writer) (t *Terminal) {
	color := false
	if f, ok := w.(*os.File); ok {
		color = term.IsTerminal(int(f.Fd()))
	}
	if os.Getenv("NO_COLOR") != "" {
		color = false
	}

	t = &Terminal{w: w, color: color}
	return t
}

// SetColor overrides terminal detection.
func (t *Terminal) SetColor(color bool) {
	t.color = color
}

// WriteLine writes one styled line followed by a newline.
func (t *Terminal) WriteLine(styled highlight.StyledText) (err error) {
	var b strings.Builder
	for _, span := range styled.Spans {
		code, styledSpan := ansiStyles[span.Style]
		switch {
		case t.color && styledSpan:
			b.WriteString(code)
			b.WriteString(span.Text)
			b.WriteString(ansiReset)
		case span.Style == highlight.StyleStressed:
			b.WriteString(strings.ToUpper(span.Text))
		default:
			b.WriteString(span.Text)
		}
	}
	b.WriteByte('\n')

	_, err = io.WriteString(t.w, b.String())
	if err != nil {
		err = errors.Wrap(err, "failed to write highlighted line")
		return err
	}
	return err
}
