package shell

import (
	"fmt"

	"lunarshell/pkg/command"
)

// Event identifies one kind in the closed set of dispatch failure and
// lifecycle conditions routed through the handler registry.
type Event int

const (
	// EventUnknownCommand fires when the first token resolves to no root command.
	EventUnknownCommand Event = iota
	// EventLoopInterrupt fires when the input source signals interruption;
	// the loop terminates afterwards.
	EventLoopInterrupt
	// EventCommandInterrupted fires when a handler is interrupted
	// mid-execution; the loop continues.
	EventCommandInterrupted
	// EventCommandError fires when a handler returns an ordinary error.
	EventCommandError
	// EventUnexpectedError fires for unclassified failures (defensive catch-all).
	EventUnexpectedError
	// EventTypeError fires when a token cannot be coerced to its declared type.
	EventTypeError
	// EventArityError fires for missing-arguments and extra-arguments failures.
	EventArityError
)

func (e Event) String() string {
	switch e {
	case EventUnknownCommand:
		return "unknown-command"
	case EventLoopInterrupt:
		return "loop-interrupt"
	case EventCommandInterrupted:
		return "command-interrupted"
	case EventCommandError:
		return "command-error"
	case EventUnexpectedError:
		return "unexpected-error"
	case EventTypeError:
		return "type-error"
	case EventArityError:
		return "arity-error"
	}
	return "unknown-event"
}

// Handler signatures, one fixed signature per event kind.
type (
	// UnknownCommandFunc receives the unresolved token and the currently
	// resolvable command names (for suggestions).
	UnknownCommandFunc func(name string, known []string)
	// InterruptFunc handles loop-level interruption.
	InterruptFunc func()
	// CommandInterruptedFunc receives the name of the interrupted command.
	CommandInterruptedFunc func(name string)
	// CommandErrorFunc receives the failed command's name and its error.
	CommandErrorFunc func(name string, err error)
	// UnexpectedErrorFunc receives an unclassified failure.
	UnexpectedErrorFunc func(err error)
	// TypeErrorFunc receives a classified coercion failure.
	TypeErrorFunc func(err *command.CoercionError)
	// ArityErrorFunc receives the command name and a classified
	// missing-arguments or extra-arguments failure.
	ArityErrorFunc func(name string, err error)
)

// Handlers maps every event kind to a callable. A new registry carries a
// default textual rendering for each kind so no failure is ever silently
// swallowed; overriding one kind leaves the others intact. The whole registry
// may be swapped on the shell at runtime.
type Handlers struct {
	out                OutputSink
	unknownCommand     UnknownCommandFunc
	loopInterrupt      InterruptFunc
	commandInterrupted CommandInterruptedFunc
	commandError       CommandErrorFunc
	unexpectedError    UnexpectedErrorFunc
	typeError          TypeErrorFunc
	arityError         ArityErrorFunc
}

// NewHandlers creates a handler registry with default renderings writing to
// the given sink.
func NewHandlers(out OutputSink) *Handlers {
	h := &Handlers{out: out}
	h.unknownCommand = h.defaultUnknownCommand
	h.loopInterrupt = h.defaultLoopInterrupt
	h.commandInterrupted = h.defaultCommandInterrupted
	h.commandError = h.defaultCommandError
	h.unexpectedError = h.defaultUnexpectedError
	h.typeError = h.defaultTypeError
	h.arityError = h.defaultArityError
	return h
}

// OnUnknownCommand overrides the unknown-command handler. Passing nil
// restores the default.
func (h *Handlers) OnUnknownCommand(f UnknownCommandFunc) {
	if f == nil {
		f = h.defaultUnknownCommand
	}
	h.unknownCommand = f
}

// OnLoopInterrupt overrides the loop-interrupt handler.
func (h *Handlers) OnLoopInterrupt(f InterruptFunc) {
	if f == nil {
		f = h.defaultLoopInterrupt
	}
	h.loopInterrupt = f
}

// OnCommandInterrupted overrides the command-interrupted handler.
func (h *Handlers) OnCommandInterrupted(f CommandInterruptedFunc) {
	if f == nil {
		f = h.defaultCommandInterrupted
	}
	h.commandInterrupted = f
}

// OnCommandError overrides the command-error handler.
func (h *Handlers) OnCommandError(f CommandErrorFunc) {
	if f == nil {
		f = h.defaultCommandError
	}
	h.commandError = f
}

// OnUnexpectedError overrides the unexpected-error handler.
func (h *Handlers) OnUnexpectedError(f UnexpectedErrorFunc) {
	if f == nil {
		f = h.defaultUnexpectedError
	}
	h.unexpectedError = f
}

// OnTypeError overrides the type-error handler.
func (h *Handlers) OnTypeError(f TypeErrorFunc) {
	if f == nil {
		f = h.defaultTypeError
	}
	h.typeError = f
}

// OnArityError overrides the arity-error handler.
func (h *Handlers) OnArityError(f ArityErrorFunc) {
	if f == nil {
		f = h.defaultArityError
	}
	h.arityError = f
}

func (h *Handlers) defaultUnknownCommand(name string, known []string) {
	msg := fmt.Sprintf("Unknown command: %s", name)
	if hint := closestName(name, known); hint != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", hint)
	}
	h.out.Println(msg)
}

func (h *Handlers) defaultLoopInterrupt() {
	h.out.Println("Interrupted.")
}

func (h *Handlers) defaultCommandInterrupted(name string) {
	h.out.Println(fmt.Sprintf("Command %q interrupted.", name))
}

func (h *Handlers) defaultCommandError(name string, err error) {
	h.out.Println(fmt.Sprintf("Error in %q: %v", name, err))
}

func (h *Handlers) defaultUnexpectedError(err error) {
	h.out.Println(fmt.Sprintf("Unexpected error: %v", err))
}

func (h *Handlers) defaultTypeError(err *command.CoercionError) {
	h.out.Println(fmt.Sprintf("Error: %v", err))
}

func (h *Handlers) defaultArityError(name string, err error) {
	h.out.Println(fmt.Sprintf("Error: %v", err))
}
