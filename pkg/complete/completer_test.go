package complete

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lunarshell/pkg/command"
)

func noop(_ []any) (string, error) { return "", nil }

func testRegistry(t *testing.T) *command.Registry {
	t.Helper()
	reg := command.NewRegistry()
	for _, spec := range []command.Spec{
		{Name: "git", Run: noop},
		{Name: "greet", Run: noop},
		{Name: "exit", Run: noop},
		{Name: "commit", Parent: "git", Run: noop},
		{Name: "checkout", Parent: "git", Run: noop},
	} {
		_, err := reg.Register(spec)
		require.NoError(t, err)
	}
	return reg
}

func complete(c *Completer, line string) []string {
	candidates, _ := c.Do([]rune(line), len([]rune(line)))
	out := make([]string, len(candidates))
	for i, cand := range candidates {
		out[i] = string(cand)
	}
	return out
}

func TestCompleter_RootCommands(t *testing.T) {
	c := New(testRegistry(t))

	assert.ElementsMatch(t, []string{"it ", "reet "}, complete(c, "g"))
	assert.Empty(t, complete(c, "zzz"))
}

func TestCompleter_Subcommands(t *testing.T) {
	c := New(testRegistry(t))

	assert.ElementsMatch(t, []string{"commit ", "checkout "}, complete(c, "git "))
	assert.ElementsMatch(t, []string{"ommit ", "heckout "}, complete(c, "git c"))
	assert.Empty(t, complete(c, "git commit "))
}

func TestCompleter_OpenArgumentsAreNotCompleted(t *testing.T) {
	c := New(testRegistry(t))
	assert.Empty(t, complete(c, "greet some arg"))
}

func TestCompleter_ClosedChoiceArguments(t *testing.T) {
	reg := command.NewRegistry()
	_, err := reg.Register(command.Spec{
		Name: "volume",
		Params: []command.Param{
			{Name: "level", Shape: command.Literal("low", "medium", "high")},
		},
		Run: noop,
	})
	require.NoError(t, err)
	_, err = reg.Register(command.Spec{
		Name: "toggle",
		Params: []command.Param{
			{Name: "flags", Shape: command.Bool(), Variadic: true},
		},
		Run: noop,
	})
	require.NoError(t, err)

	c := New(reg)
	assert.ElementsMatch(t, []string{"ow "}, complete(c, "volume l"))
	assert.ElementsMatch(t, []string{"low ", "medium ", "high "}, complete(c, "volume "))
	// A variadic parameter keeps offering choices at every later position.
	assert.ElementsMatch(t, []string{"rue "}, complete(c, "toggle false t"))
	// Positions past the last fixed parameter offer nothing.
	assert.Empty(t, complete(c, "volume low "))
}

func TestCompleter_SetRegistryRetargets(t *testing.T) {
	c := New(testRegistry(t))

	other := command.NewRegistry()
	_, err := other.Register(command.Spec{Name: "zebra", Run: noop})
	require.NoError(t, err)

	c.SetRegistry(other)
	assert.ElementsMatch(t, []string{"ebra "}, complete(c, "z"))
	assert.Empty(t, complete(c, "g"))
}

func TestCompleter_NilRegistry(t *testing.T) {
	c := New(nil)
	candidates, length := c.Do([]rune("g"), 1)
	assert.Nil(t, candidates)
	assert.Zero(t, length)
}
