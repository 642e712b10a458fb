// Package output implements the shell's output sink: a printer that writes
// whole lines, optionally styled with lipgloss and able to render markdown
// through glamour. Styling is a decoration layered on here; the dispatch
// loop only ever hands over plain text.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

// Mode selects how the printer decorates text.
type Mode int

const (
	// ModeAuto styles when the destination looks like a capable terminal.
	ModeAuto Mode = iota
	// ModeStyled forces styling.
	ModeStyled
	// ModePlain strips all ANSI sequences from everything written.
	ModePlain
)

var errStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

// Printer is the default OutputSink implementation. Safe for concurrent use.
type Printer struct {
	mu     sync.Mutex
	writer io.Writer
	mode   Mode
	term   *termenv.Output
}

// NewPrinter creates a printer writing to stdout unless overridden by
// options.
func NewPrinter(options ...Option) *Printer {
	p := &Printer{writer: os.Stdout, mode: ModeAuto}
	for _, opt := range options {
		opt(p)
	}
	p.term = termenv.NewOutput(p.writer)
	return p
}

// Println writes one line of text.
func (p *Printer) Println(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.writer, p.decorate(text))
}

// Errorln writes one line of error-styled text.
func (p *Printer) Errorln(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.styled() {
		text = errStyle.Render(text)
	}
	fmt.Fprintln(p.writer, p.decorate(text))
}

// PrintMarkdown renders markdown before writing it. In plain mode, or if
// rendering fails, the source text is written as-is.
func (p *Printer) PrintMarkdown(md string) {
	if p.styled() {
		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(0))
		if err == nil {
			if out, err := r.Render(md); err == nil {
				p.mu.Lock()
				defer p.mu.Unlock()
				fmt.Fprintln(p.writer, strings.TrimRight(out, "\n"))
				return
			}
		}
	}
	p.Println(md)
}

// AltScreen switches the destination terminal to the alternate screen
// buffer. No-op in plain mode.
func (p *Printer) AltScreen() {
	if p.styled() {
		p.term.AltScreen()
	}
}

// ExitAltScreen restores the primary screen buffer.
func (p *Printer) ExitAltScreen() {
	if p.styled() {
		p.term.ExitAltScreen()
	}
}

func (p *Printer) styled() bool {
	switch p.mode {
	case ModeStyled:
		return true
	case ModePlain:
		return false
	}
	return termenv.EnvColorProfile() != termenv.Ascii
}

func (p *Printer) decorate(text string) string {
	if p.mode == ModePlain {
		return ansi.Strip(text)
	}
	return text
}
