package progress

import (
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"
)

// Progress shows a spinner on a terminal while a long step runs. It is safe
// for concurrent use; a disabled Progress only runs the step.
type Progress struct {
	ProgressColorEnabled     bool
	ProgressIndicatorEnabled bool
	progressIndicator        *spinner.Spinner
	progressIndicatorMu      sync.Mutex
}

func (p *Progress) StartProgressIndicatorWithLabel(label string, s io.Writer) {
	if !p.ProgressIndicatorEnabled {
		return
	}

	p.progressIndicatorMu.Lock()
	defer p.progressIndicatorMu.Unlock()

	if p.progressIndicator != nil {
		p.progressIndicator.Suffix = suffix(label)
		return
	}

	// https://github.com/briandowns/spinner#available-character-sets
	var sp *spinner.Spinner
	if p.ProgressColorEnabled {
		sp = spinner.New(spinner.CharSets[11], 120*time.Millisecond, spinner.WithWriter(s), spinner.WithColor("fgCyan"))
	} else {
		sp = spinner.New(spinner.CharSets[14], 120*time.Millisecond, spinner.WithWriter(s))
	}
	sp.Suffix = suffix(label)

	sp.Start()
	p.progressIndicator = sp
}

func (p *Progress) StopProgressIndicator() {
	p.progressIndicatorMu.Lock()
	defer p.progressIndicatorMu.Unlock()
	if p.progressIndicator == nil {
		return
	}
	p.progressIndicator.Stop()
	p.progressIndicator = nil
}

// RunWithProgress runs fn with a spinner labelled label written to out.
func (p *Progress) RunWithProgress(label string, fn func() error, out io.Writer) error {
	p.StartProgressIndicatorWithLabel(label, out)
	defer p.StopProgressIndicator()

	return fn()
}

func suffix(label string) string {
	if label == "" {
		return ""
	}
	return " " + label
}
