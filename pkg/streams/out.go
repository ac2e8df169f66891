package streams

import (
	"fmt"
	"io"
	"os"

	"github.com/moby/term"
	"github.com/morikuni/aec"
)

// Out is an output stream to write normal program output. It implements
// an [io.Writer], with additional utilities for detecting whether a terminal
// is connected and styling messages when colour is enabled.
type Out struct {
	commonStream
	out         io.Writer
	enableColor bool
}

func (o *Out) Write(p []byte) (int, error) {
	return o.out.Write(p)
}

// WriteString writes s to the underlying writer.
func (o *Out) WriteString(s string) (int, error) {
	return io.WriteString(o.out, s)
}

// IsColorEnabled reports whether styled output is written with ANSI codes.
func (o *Out) IsColorEnabled() bool {
	return o.enableColor
}

// NewOut returns a new [Out] from an [io.Writer].
func NewOut(out io.Writer) *Out {
	o := &Out{out: out}
	o.fd, o.isTerminal = term.GetFdInfo(out)
	o.enableColor = hasColors(o.isTerminal)
	return o
}

func hasColors(isTerminal bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	force := os.Getenv("CLICOLOR_FORCE")
	if force != "" && force != "0" {
		return true
	}

	if os.Getenv("CLICOLOR") == "0" {
		return false
	}

	return isTerminal
}

// SetColorEnabled overrides the colour detection done by NewOut.
func (o *Out) SetColorEnabled(enabled bool) {
	o.enableColor = enabled
}

func (o *Out) With(styles ...aec.ANSI) *StyledOut {
	return &StyledOut{
		parent: o,
		styles: styles,
	}
}

type StyledOut struct {
	parent *Out
	styles []aec.ANSI
}

func (s *StyledOut) apply(msg string) string {
	if len(s.styles) == 0 {
		return msg
	}

	combined := s.styles[0]
	for _, next := range s.styles[1:] {
		combined = combined.With(next)
	}

	return combined.Apply(msg)
}

func (s *StyledOut) Println(a ...any) {
	msg := fmt.Sprint(a...)

	if s.parent.enableColor {
		msg = s.apply(msg)
	}

	fmt.Fprintln(s.parent.out, msg)
}

func (s *StyledOut) Print(a ...any) {
	msg := fmt.Sprint(a...)

	if s.parent.enableColor {
		msg = s.apply(msg)
	}

	fmt.Fprint(s.parent.out, msg)
}

func (s *StyledOut) Printf(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)

	if s.parent.enableColor {
		msg = s.apply(msg)
	}

	fmt.Fprint(s.parent.out, msg)
}
