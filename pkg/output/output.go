// Package output prints end-of-run messages in a plain or a decorated form
// depending on whether the target stream renders colour.
package output

import (
	"io"

	"github.com/morikuni/aec"
)

type Writer interface {
	io.Writer
	IsColorEnabled() bool
	WriteString(s string) (int, error)
}

type Output struct {
	out Writer
	err Writer
}

func New(out, err Writer) *Output {
	return &Output{
		out: out,
		err: err,
	}
}

// Text is a message with a plain rendering and a decorated one.
type Text struct {
	Plain string
	Fancy string
}

// Styled returns a Text whose fancy form is symbol followed by msg, both
// wrapped in styles.
func Styled(symbol, msg string, styles ...aec.ANSI) Text {
	fancy := msg
	if symbol != "" {
		fancy = symbol + " " + msg
	}
	if len(styles) > 0 {
		combined := styles[0]
		for _, next := range styles[1:] {
			combined = combined.With(next)
		}
		fancy = combined.Apply(fancy)
	}
	return Text{Plain: msg, Fancy: fancy}
}

func (o *Output) Prettyln(t Text) {
	prettyln(o.out, t)
}

func (o *Output) PrettyErrorln(t Text) {
	prettyln(o.err, t)
}

func prettyln(w Writer, t Text) {
	if w.IsColorEnabled() {
		_, _ = w.WriteString(t.Fancy + "\n")
	} else {
		_, _ = w.WriteString(t.Plain + "\n")
	}
}
