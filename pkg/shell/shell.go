// Package shell implements the lunarshell dispatch loop: it pulls raw lines
// from a pluggable input source, resolves them against the command registry,
// binds and coerces arguments, invokes the matching handler, and routes every
// failure kind through a swappable handler registry. Commands execute
// synchronously on the loop's goroutine; the only blocking point is reading
// the next line.
package shell

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"lunarshell/internal/logger"
	"lunarshell/internal/output"
	"lunarshell/pkg/command"
)

// State is the dispatch loop's current phase, exposed for observation and
// logged on every transition.
type State int

const (
	// StateIdle is the state before Run and between one-shot evaluations.
	StateIdle State = iota
	// StateReadingLine blocks on the input source.
	StateReadingLine
	// StateResolvingCommand walks the command tree.
	StateResolvingCommand
	// StateBindingArguments partitions and coerces tokens.
	StateBindingArguments
	// StateExecuting runs the resolved handler.
	StateExecuting
	// StateHandlingEvent routes a classified condition to its handler.
	StateHandlingEvent
	// StateTerminated is reached after a loop-level interrupt; no further
	// lines are read.
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateReadingLine:
		return "reading-line"
	case StateResolvingCommand:
		return "resolving-command"
	case StateBindingArguments:
		return "binding-arguments"
	case StateExecuting:
		return "executing"
	case StateHandlingEvent:
		return "handling-event"
	case StateTerminated:
		return "terminated"
	}
	return "unknown"
}

// ErrInterrupt aborts the currently executing command without stopping the
// loop. A handler returns it (or an error wrapping it) to signal it was
// interrupted mid-execution.
var ErrInterrupt = errors.New("command interrupted")

// RegistryConsumer is implemented by read-only registry clients (completers)
// that must be retargeted when the shell's registry is swapped.
type RegistryConsumer interface {
	SetRegistry(*command.Registry)
}

// Config assembles a shell. Zero fields fall back to the defaults described
// on each field.
type Config struct {
	// Registry holds the command tree; a fresh empty registry by default.
	Registry *command.Registry
	// Handlers is the event handler registry; defaults render to Output.
	Handlers *Handlers
	// Input produces raw lines; defaults to an interactive readline source
	// using Prompt.
	Input LineSource
	// Output receives rendered lines; defaults to a styled stdout printer.
	Output OutputSink
	// Prompt is shown by the default interactive source.
	Prompt string
	// StartText, when non-empty, is printed before the first read.
	StartText string
	// NoBuiltins suppresses registration of the exit and help commands.
	NoBuiltins bool
	// NoAltBuffer keeps the loop on the primary screen buffer even when
	// the output sink supports switching.
	NoAltBuffer bool
}

// Shell ties the registry, binder, coercer and handler registry together
// into the read-eval-print loop. Both the registry and the handlers are
// plain swappable references consumed afresh at the top of each line's
// processing, so a host may replace either without restarting the loop.
type Shell struct {
	registry  *command.Registry
	handlers  *Handlers
	input     LineSource
	out       OutputSink
	startText string
	altBuffer bool
	state     State
	sessionID string
	log       *log.Logger
}

// New creates a shell with default configuration: empty registry, default
// handlers, interactive input, styled stdout output, builtins registered.
func New() *Shell {
	return NewWithConfig(Config{})
}

// NewWithConfig creates a shell from an explicit configuration.
func NewWithConfig(cfg Config) *Shell {
	if cfg.Registry == nil {
		cfg.Registry = command.NewRegistry()
	}
	if cfg.Output == nil {
		cfg.Output = output.NewPrinter()
	}
	if cfg.Handlers == nil {
		cfg.Handlers = NewHandlers(cfg.Output)
	}
	if cfg.Prompt == "" {
		cfg.Prompt = "> "
	}
	if cfg.Input == nil {
		cfg.Input = NewReadlineSource(cfg.Prompt, nil)
	}

	s := &Shell{
		registry:  cfg.Registry,
		handlers:  cfg.Handlers,
		input:     cfg.Input,
		out:       cfg.Output,
		startText: cfg.StartText,
		altBuffer: !cfg.NoAltBuffer,
		state:     StateIdle,
		sessionID: uuid.NewString(),
		log:       logger.NewStyledLogger("Shell"),
	}
	if !cfg.NoBuiltins {
		s.registerBuiltins()
	}
	return s
}

// Registry returns the currently bound command registry.
func (s *Shell) Registry() *command.Registry { return s.registry }

// SetRegistry swaps the command registry. The change takes effect at the
// next line's processing, and any live registry-consuming completer attached
// to the input source is retargeted at the same time.
func (s *Shell) SetRegistry(reg *command.Registry) {
	s.registry = reg
	if rc, ok := s.input.(RegistryConsumer); ok {
		rc.SetRegistry(reg)
	}
}

// Handlers returns the currently bound handler registry.
func (s *Shell) Handlers() *Handlers { return s.handlers }

// SetHandlers swaps the handler registry wholesale; effective from the next
// line's processing.
func (s *Shell) SetHandlers(h *Handlers) { s.handlers = h }

// State returns the loop's current state.
func (s *Shell) State() State { return s.state }

// SessionID returns the unique ID of this shell instance, carried in its log
// fields.
func (s *Shell) SessionID() string { return s.sessionID }

// Stop asks the loop to terminate: the input source is interrupted so the
// next read reports ErrInterrupted and the loop winds down through the
// regular loop-interrupt path.
func (s *Shell) Stop() {
	s.input.Interrupt()
}

// Run drives the loop until the input source signals interruption. Each
// iteration reads one line, dispatches it, and routes any classified
// condition to the current handler registry; no failure escapes the loop.
func (s *Shell) Run() error {
	if err := s.input.Start(); err != nil {
		return fmt.Errorf("start input source: %w", err)
	}
	defer func() { _ = s.input.Stop() }()

	if s.altBuffer {
		if alt, ok := s.out.(interface {
			AltScreen()
			ExitAltScreen()
		}); ok {
			alt.AltScreen()
			defer alt.ExitAltScreen()
		}
	}

	if s.startText != "" {
		s.out.Println(s.startText)
	}
	s.log.Debug("session started", "session", s.sessionID)

	for {
		s.setState(StateReadingLine)
		line, err := s.input.ReadLine()
		if err != nil {
			handlers := s.handlers
			if errors.Is(err, ErrInterrupted) {
				s.setState(StateHandlingEvent)
				handlers.loopInterrupt()
				s.setState(StateTerminated)
				s.log.Debug("session terminated", "session", s.sessionID)
				return nil
			}
			s.setState(StateHandlingEvent)
			handlers.unexpectedError(err)
			s.setState(StateTerminated)
			return err
		}
		_ = s.dispatch(line)
	}
}

// Eval runs a single line through the identical dispatch path used by the
// interactive loop. All classified conditions are routed to the handler
// registry and return nil; only the unexpected-error kind is also returned,
// so a one-shot caller can exit non-zero.
func (s *Shell) Eval(line string) error {
	err := s.dispatch(line)
	s.setState(StateIdle)
	return err
}

// dispatch processes one raw input line. It reads the current registry and
// handler references exactly once, up front, so a mid-line swap never mixes
// old and new configuration.
func (s *Shell) dispatch(line string) error {
	reg := s.registry
	handlers := s.handlers

	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return nil
	}

	s.setState(StateResolvingCommand)
	entry, ok := reg.Lookup(tokens[0])
	if !ok {
		s.log.Debug("unknown command", "command", tokens[0])
		s.setState(StateHandlingEvent)
		handlers.unknownCommand(tokens[0], reg.Names())
		return nil
	}

	// Greedily consume tokens that name subcommands. The walk stops at the
	// first non-matching token; an inner entry invoked with no matching
	// subcommand token dispatches with its own handler.
	argStart := 1
	for argStart < len(tokens) {
		child, ok := entry.Child(tokens[argStart])
		if !ok {
			break
		}
		entry = child
		argStart++
	}

	s.setState(StateBindingArguments)
	args, err := Bind(entry, tokens[argStart:])
	if err != nil {
		s.setState(StateHandlingEvent)
		return s.routeBindFailure(handlers, entry, err)
	}

	s.setState(StateExecuting)
	s.log.Debug("executing", "command", entry.Name(), "args", len(args))
	result, err := invoke(entry, args)
	if err != nil {
		s.setState(StateHandlingEvent)
		var pe *panicError
		switch {
		case errors.Is(err, ErrInterrupt):
			handlers.commandInterrupted(entry.Name())
		case errors.As(err, &pe):
			handlers.unexpectedError(err)
			return err
		default:
			handlers.commandError(entry.Name(), err)
		}
		return nil
	}
	if result != "" {
		s.out.Println(result)
	}
	return nil
}

// routeBindFailure routes an already-classified binder or coercer failure to
// its handler. The kind is never re-interpreted here.
func (s *Shell) routeBindFailure(handlers *Handlers, entry *command.Entry, err error) error {
	var ce *command.CoercionError
	if errors.As(err, &ce) {
		handlers.typeError(ce)
		return nil
	}
	var me *MissingArgumentsError
	var xe *ExtraArgumentsError
	if errors.As(err, &me) || errors.As(err, &xe) {
		handlers.arityError(entry.Name(), err)
		return nil
	}
	handlers.unexpectedError(err)
	return err
}

func (s *Shell) setState(next State) {
	if s.state == next {
		return
	}
	s.log.Debug("state", "state", next.String())
	s.state = next
}

// panicError wraps a value recovered from a panicking handler so the
// defensive catch-all can report it with full detail.
type panicError struct {
	value any
}

func (e *panicError) Error() string { return fmt.Sprintf("command panic: %v", e.value) }

// invoke runs the handler, converting a panic into a classified error rather
// than letting it escape the loop.
func invoke(entry *command.Entry, args []any) (result string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &panicError{value: r}
		}
	}()
	return entry.Invoke(args)
}
