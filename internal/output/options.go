package output

import "io"

// Option configures a Printer.
type Option func(*Printer)

// WithWriter redirects output to w instead of stdout.
func WithWriter(w io.Writer) Option {
	return func(p *Printer) { p.writer = w }
}

// WithMode pins the styling mode instead of auto-detecting.
func WithMode(m Mode) Option {
	return func(p *Printer) { p.mode = m }
}
