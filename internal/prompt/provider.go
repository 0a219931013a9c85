package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"
)

// NumberProvider supplies one number per call.
type NumberProvider interface {
	Number(ctx context.Context, label string) (float64, error)
}

// Fixed returns the same raw answer every time, coerced with ParseNumber.
type Fixed string

// Number implements NumberProvider.
func (f Fixed) Number(ctx context.Context, _ string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return ParseNumber(string(f)), nil
}

// Line prints the label and reads one line, for piped input.
type Line struct {
	r *bufio.Reader
	w io.Writer
}

// NewLine returns a Line provider reading from r and writing labels to w.
func NewLine(r io.Reader, w io.Writer) *Line {
	return &Line{r: bufio.NewReader(r), w: w}
}

// Number implements NumberProvider. End of input counts as an empty answer.
func (l *Line) Number(ctx context.Context, label string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if _, err := fmt.Fprint(l.w, label); err != nil {
		return 0, err
	}
	text, err := l.r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("read answer: %w", err)
	}
	return ParseNumber(strings.TrimRight(text, "\r\n")), nil
}

// Promptui asks on an interactive terminal. The answer is not validated.
type Promptui struct {
	Stdin  io.ReadCloser
	Stdout io.WriteCloser
}

// Number implements NumberProvider.
func (p Promptui) Number(ctx context.Context, label string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	pr := promptui.Prompt{
		Label:  strings.TrimRight(label, " "),
		Stdin:  p.Stdin,
		Stdout: p.Stdout,
	}
	text, err := pr.Run()
	if err != nil {
		return 0, err
	}
	return ParseNumber(text), nil
}

// Auto picks Promptui when in is a terminal and Line otherwise. Labels go
// to out either way.
func Auto(in *os.File, out io.Writer) NumberProvider {
	if isatty.IsTerminal(in.Fd()) || isatty.IsCygwinTerminal(in.Fd()) {
		return Promptui{Stdin: in, Stdout: writeCloser(out)}
	}
	return NewLine(in, out)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// writeCloser keeps promptui from closing a shared stream.
func writeCloser(w io.Writer) io.WriteCloser {
	return nopWriteCloser{w}
}
