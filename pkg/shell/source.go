package shell

import (
	"errors"
	"sync"
)

// Input source boundary conditions.
var (
	// ErrInterrupted is reported by a LineSource instead of a line when the
	// user forcibly interrupts or input is exhausted/closed. The loop fires
	// the loop-interrupt event and terminates.
	ErrInterrupted = errors.New("input interrupted")
	// ErrNotStarted is reported when ReadLine is called outside the
	// Start/Stop scope. This is a usage error, distinct from interruption.
	ErrNotStarted = errors.New("input source not started")
)

// LineSource produces raw input lines on demand. It has a scoped-acquisition
// lifecycle: ReadLine may only be called between Start and Stop. Interrupt
// forces the next (or a pending) ReadLine to report ErrInterrupted, which is
// how the exit builtin terminates the loop through the regular
// loop-interrupt path.
type LineSource interface {
	Start() error
	ReadLine() (string, error)
	Interrupt()
	Stop() error
}

// OutputSink accepts whole lines of text to display. Styling is a decorator
// concern layered on by the sink implementation, not by the loop.
type OutputSink interface {
	Println(text string)
}

// ScriptSource is a LineSource backed by a fixed slice of lines. Once the
// lines are exhausted it reports ErrInterrupted, mirroring a closed input
// stream. Used for batch input and tests.
type ScriptSource struct {
	mu          sync.Mutex
	lines       []string
	pos         int
	started     bool
	interrupted bool
}

// NewScriptSource creates a source that yields the given lines in order.
func NewScriptSource(lines ...string) *ScriptSource {
	return &ScriptSource{lines: lines}
}

// Start enters the read scope.
func (s *ScriptSource) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = true
	return nil
}

// ReadLine returns the next line, ErrNotStarted outside the read scope, or
// ErrInterrupted once interrupted or exhausted.
func (s *ScriptSource) ReadLine() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return "", ErrNotStarted
	}
	if s.interrupted || s.pos >= len(s.lines) {
		return "", ErrInterrupted
	}
	line := s.lines[s.pos]
	s.pos++
	return line, nil
}

// Interrupt makes every subsequent ReadLine report ErrInterrupted.
func (s *ScriptSource) Interrupt() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interrupted = true
}

// Stop leaves the read scope.
func (s *ScriptSource) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = false
	return nil
}
