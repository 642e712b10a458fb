package shell

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/chzyer/readline"

	"lunarshell/pkg/command"
)

// ReadlineSource is the interactive LineSource backed by chzyer/readline.
// Ctrl-C and Ctrl-D both surface as ErrInterrupted: either way the user is
// done with the loop. History lives in memory only.
type ReadlineSource struct {
	mu          sync.Mutex
	prompt      string
	completer   readline.AutoCompleter
	rl          *readline.Instance
	interrupted bool
}

// NewReadlineSource creates an interactive source with the given prompt. The
// completer may be nil.
func NewReadlineSource(prompt string, completer readline.AutoCompleter) *ReadlineSource {
	return &ReadlineSource{prompt: prompt, completer: completer}
}

// Start opens the underlying terminal line editor.
func (s *ReadlineSource) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rl != nil {
		return nil
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          s.prompt,
		AutoComplete:    s.completer,
		InterruptPrompt: "^C",
	})
	if err != nil {
		return fmt.Errorf("open line editor: %w", err)
	}
	s.rl = rl
	s.interrupted = false
	return nil
}

// ReadLine blocks for the next line of input.
func (s *ReadlineSource) ReadLine() (string, error) {
	s.mu.Lock()
	rl := s.rl
	done := s.interrupted
	s.mu.Unlock()

	if rl == nil {
		return "", ErrNotStarted
	}
	if done {
		return "", ErrInterrupted
	}

	line, err := rl.Readline()
	switch {
	case err == nil:
		return line, nil
	case errors.Is(err, readline.ErrInterrupt), errors.Is(err, io.EOF):
		return "", ErrInterrupted
	default:
		// A closed instance (Interrupt from another goroutine or a
		// command handler) unblocks the pending read with an I/O error.
		s.mu.Lock()
		done = s.interrupted
		s.mu.Unlock()
		if done {
			return "", ErrInterrupted
		}
		return "", fmt.Errorf("read line: %w", err)
	}
}

// Interrupt closes the editor so a pending or subsequent ReadLine reports
// ErrInterrupted.
func (s *ReadlineSource) Interrupt() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interrupted = true
	if s.rl != nil {
		_ = s.rl.Close()
	}
}

// Stop closes the editor and leaves the read scope.
func (s *ReadlineSource) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rl == nil {
		return nil
	}
	err := s.rl.Close()
	s.rl = nil
	return err
}

// SetRegistry forwards a registry swap to the attached completer when it is a
// registry consumer, keeping live completion in sync with the shell.
func (s *ReadlineSource) SetRegistry(reg *command.Registry) {
	if rc, ok := s.completer.(RegistryConsumer); ok {
		rc.SetRegistry(reg)
	}
}
