// Package console prints operator-facing narration. Format strings accept the
// {{color}} templates of the ginkgo formatter, e.g.
//
//	c.Outf("{{green}}stored{{/}} %d\n", n)
package console

import (
	"fmt"
	"io"

	"github.com/onsi/ginkgo/v2/formatter"
)

// Console writes narration to Out and failures to Err.
type Console struct {
	out io.Writer
	err io.Writer
	f   formatter.Formatter
}

// New returns a console writing to out and err. Colour templates are rendered
// as ANSI escapes when color is true and stripped otherwise.
func New(out, err io.Writer, color bool) *Console {
	mode := formatter.ColorModeNone
	if color {
		mode = formatter.ColorModeTerminal
	}
	return &Console{out: out, err: err, f: formatter.New(mode)}
}

// Stdio returns a colour console on the process's standard streams.
func Stdio() *Console {
	return New(formatter.ColorableStdOut, formatter.ColorableStdErr, true)
}

// Discard returns a console that drops everything.
func Discard() *Console { return New(io.Discard, io.Discard, false) }

// Outf writes formatted narration.
func (c *Console) Outf(format string, args ...any) {
	fmt.Fprint(c.out, c.f.F(format, args...))
}

// Errf writes a formatted failure message.
func (c *Console) Errf(format string, args ...any) {
	fmt.Fprint(c.err, c.f.F(format, args...))
}

// Out returns the narration writer.
func (c *Console) Out() io.Writer { return c.out }
