package shell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lunarshell/pkg/command"
)

func TestHandlers_DefaultsRenderEveryKind(t *testing.T) {
	sink := &testSink{}
	h := NewHandlers(sink)

	h.unknownCommand("frob", nil)
	h.loopInterrupt()
	h.commandInterrupted("slow")
	h.commandError("boom", errors.New("kaput"))
	h.unexpectedError(errors.New("weird"))
	_, cerr := command.Coerce("x", command.Int(), "steps")
	var ce *command.CoercionError
	require.ErrorAs(t, cerr, &ce)
	h.typeError(ce)
	h.arityError("move", &MissingArgumentsError{Command: "move", Missing: []string{"x"}})

	lines := sink.all()
	require.Len(t, lines, 7)
	assert.Contains(t, lines[0], "Unknown command: frob")
	assert.Contains(t, lines[1], "Interrupted")
	assert.Contains(t, lines[2], "slow")
	assert.Contains(t, lines[3], "kaput")
	assert.Contains(t, lines[4], "weird")
	assert.Contains(t, lines[5], "steps")
	assert.Contains(t, lines[6], "missing required arguments")
}

func TestHandlers_OverridingOneKindLeavesOthersIntact(t *testing.T) {
	sink := &testSink{}
	h := NewHandlers(sink)

	var seen string
	h.OnUnknownCommand(func(name string, _ []string) { seen = name })

	h.unknownCommand("frob", nil)
	assert.Equal(t, "frob", seen)
	assert.Empty(t, sink.all())

	// Other kinds still use their defaults.
	h.loopInterrupt()
	require.Len(t, sink.all(), 1)
	assert.Contains(t, sink.all()[0], "Interrupted")
}

func TestHandlers_NilRestoresDefault(t *testing.T) {
	sink := &testSink{}
	h := NewHandlers(sink)

	h.OnUnknownCommand(func(string, []string) {})
	h.unknownCommand("frob", nil)
	assert.Empty(t, sink.all())

	h.OnUnknownCommand(nil)
	h.unknownCommand("frob", nil)
	require.Len(t, sink.all(), 1)
	assert.Contains(t, sink.all()[0], "Unknown command: frob")
}

func TestHandlers_UnknownCommandSuggestsClosestName(t *testing.T) {
	sink := &testSink{}
	h := NewHandlers(sink)

	h.unknownCommand("stauts", []string{"status", "stash", "log"})
	require.Len(t, sink.all(), 1)
	assert.Contains(t, sink.all()[0], `did you mean "status"?`)
}

func TestClosestName(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		candidates []string
		want       string
	}{
		{"close typo", "stauts", []string{"status", "log"}, "status"},
		{"nothing close", "zzzzzz", []string{"status", "log"}, ""},
		{"empty input", "", []string{"status"}, ""},
		{"exact match skipped", "log", []string{"log"}, ""},
		{"short names stay strict", "xy", []string{"ab"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, closestName(tt.input, tt.candidates))
		})
	}
}

func TestEvent_String(t *testing.T) {
	assert.Equal(t, "unknown-command", EventUnknownCommand.String())
	assert.Equal(t, "loop-interrupt", EventLoopInterrupt.String())
	assert.Equal(t, "command-interrupted", EventCommandInterrupted.String())
	assert.Equal(t, "command-error", EventCommandError.String())
	assert.Equal(t, "unexpected-error", EventUnexpectedError.String())
	assert.Equal(t, "type-error", EventTypeError.String())
	assert.Equal(t, "arity-error", EventArityError.String())
}
