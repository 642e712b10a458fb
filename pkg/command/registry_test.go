package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(_ []any) (string, error) { return "", nil }

func TestRegistry_Register_Basic(t *testing.T) {
	reg := NewRegistry()

	entry, err := reg.Register(Spec{Name: "greet", Description: "Say hello.", Run: noop})
	require.NoError(t, err)
	assert.Equal(t, "greet", entry.Name())
	assert.Equal(t, "Say hello.", entry.Description())
	assert.Nil(t, entry.Parent())

	got, ok := reg.Lookup("greet")
	require.True(t, ok)
	assert.Same(t, entry, got)
}

func TestRegistry_Register_ValidationFailures(t *testing.T) {
	reg := NewRegistry()

	tests := []struct {
		name string
		spec Spec
		want error
	}{
		{"empty name", Spec{Run: noop}, ErrEmptyName},
		{"nil handler", Spec{Name: "x"}, ErrNilHandler},
		{"unnamed parameter", Spec{Name: "x", Run: noop,
			Params: []Param{{Shape: Int()}}}, ErrBadParameter},
		{"untyped parameter", Spec{Name: "x", Run: noop,
			Params: []Param{{Name: "a"}}}, ErrBadParameter},
		{"duplicate parameter", Spec{Name: "x", Run: noop,
			Params: []Param{{Name: "a", Shape: Int()}, {Name: "a", Shape: Int()}}}, ErrBadParameter},
		{"non-trailing variadic", Spec{Name: "x", Run: noop,
			Params: []Param{{Name: "a", Shape: Int(), Variadic: true}, {Name: "b", Shape: Int()}}}, ErrBadParameter},
		{"defaulted variadic", Spec{Name: "x", Run: noop,
			Params: []Param{{Name: "a", Shape: Int(), Variadic: true, HasDefault: true}}}, ErrBadParameter},
		{"required after optional", Spec{Name: "x", Run: noop,
			Params: []Param{{Name: "a", Shape: Int(), HasDefault: true}, {Name: "b", Shape: Int()}}}, ErrBadParameter},
		{"missing parent", Spec{Name: "x", Parent: "ghost", Run: noop}, ErrParentNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reg.Register(tt.spec)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRegistry_Register_DuplicateRootFails(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Register(Spec{Name: "status", Run: noop})
	require.NoError(t, err)

	_, err = reg.Register(Spec{Name: "status", Run: noop})
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestRegistry_Register_Subcommands(t *testing.T) {
	reg := NewRegistry()
	git, err := reg.Register(Spec{Name: "git", Run: noop})
	require.NoError(t, err)

	commit, err := reg.Register(Spec{Name: "commit", Parent: "git", Run: noop})
	require.NoError(t, err)
	assert.Same(t, git, commit.Parent())

	child, ok := git.Child("commit")
	require.True(t, ok)
	assert.Same(t, commit, child)

	// Duplicate name under the same parent fails.
	_, err = reg.Register(Spec{Name: "commit", Parent: "git", Run: noop})
	assert.ErrorIs(t, err, ErrDuplicateName)

	// The same name under a different parent succeeds.
	_, err = reg.Register(Spec{Name: "svn", Run: noop})
	require.NoError(t, err)
	_, err = reg.Register(Spec{Name: "commit", Parent: "svn", Run: noop})
	assert.NoError(t, err)
}

func TestRegistry_FlatLookup_RootIsProtected(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Register(Spec{Name: "git", Run: noop})
	require.NoError(t, err)
	status, err := reg.Register(Spec{Name: "status", Run: noop})
	require.NoError(t, err)

	// A subcommand sharing a root command's name never displaces the root
	// entry from the flat lookup.
	sub, err := reg.Register(Spec{Name: "status", Parent: "git", Run: noop})
	require.NoError(t, err)

	got, ok := reg.Lookup("status")
	require.True(t, ok)
	assert.Same(t, status, got)
	assert.NotSame(t, sub, got)
}

func TestRegistry_FlatLookup_NonRootShadowsNonRoot(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Register(Spec{Name: "git", Run: noop})
	require.NoError(t, err)
	_, err = reg.Register(Spec{Name: "svn", Run: noop})
	require.NoError(t, err)

	_, err = reg.Register(Spec{Name: "log", Parent: "git", Run: noop})
	require.NoError(t, err)
	svnLog, err := reg.Register(Spec{Name: "log", Parent: "svn", Run: noop})
	require.NoError(t, err)

	// Both children exist under their parents; the flat key points at the
	// most recent non-root registration.
	got, ok := reg.Lookup("log")
	require.True(t, ok)
	assert.Same(t, svnLog, got)
}

func TestRegistry_Unregister_Recursive(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Register(Spec{Name: "git", Run: noop})
	require.NoError(t, err)
	_, err = reg.Register(Spec{Name: "commit", Parent: "git", Run: noop})
	require.NoError(t, err)
	_, err = reg.Register(Spec{Name: "amend", Parent: "commit", Run: noop})
	require.NoError(t, err)

	reg.Unregister("git")

	for _, name := range []string{"git", "commit", "amend"} {
		_, ok := reg.Lookup(name)
		assert.False(t, ok, "expected %q to be gone", name)
	}
	assert.Empty(t, reg.List())
}

func TestRegistry_Unregister_DetachesFromParent(t *testing.T) {
	reg := NewRegistry()
	git, err := reg.Register(Spec{Name: "git", Run: noop})
	require.NoError(t, err)
	_, err = reg.Register(Spec{Name: "commit", Parent: "git", Run: noop})
	require.NoError(t, err)

	reg.Unregister("commit")

	_, ok := git.Child("commit")
	assert.False(t, ok)
	assert.Empty(t, git.Children())
}

func TestRegistry_Unregister_AbsentIsNoop(t *testing.T) {
	reg := NewRegistry()
	reg.Unregister("ghost")
	assert.Empty(t, reg.List())
}

func TestRegistry_Unregister_KeepsShadowedSiblingSlot(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Register(Spec{Name: "git", Run: noop})
	require.NoError(t, err)
	status, err := reg.Register(Spec{Name: "status", Run: noop})
	require.NoError(t, err)
	_, err = reg.Register(Spec{Name: "status", Parent: "git", Run: noop})
	require.NoError(t, err)

	// Removing the subtree must not evict the root entry that owns the
	// flat key.
	reg.Unregister("git")

	got, ok := reg.Lookup("status")
	require.True(t, ok)
	assert.Same(t, status, got)
}

func TestRegistry_List_InsertionOrder(t *testing.T) {
	reg := NewRegistry()
	for _, name := range []string{"alpha", "beta", "gamma"} {
		_, err := reg.Register(Spec{Name: name, Run: noop})
		require.NoError(t, err)
	}
	_, err := reg.Register(Spec{Name: "delta", Parent: "beta", Run: noop})
	require.NoError(t, err)

	var names []string
	for _, e := range reg.List() {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"alpha", "beta", "gamma", "delta"}, names)

	var roots []string
	for _, e := range reg.Roots() {
		roots = append(roots, e.Name())
	}
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, roots)
}

func TestRegistry_ChildrenOrder(t *testing.T) {
	reg := NewRegistry()
	parent, err := reg.Register(Spec{Name: "tool", Run: noop})
	require.NoError(t, err)
	for _, name := range []string{"one", "two", "three"} {
		_, err := reg.Register(Spec{Name: name, Parent: "tool", Run: noop})
		require.NoError(t, err)
	}

	var names []string
	for _, c := range parent.Children() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"one", "two", "three"}, names)
}
