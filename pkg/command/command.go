// Package command implements the command registry and the type-driven
// argument coercion engine for lunarshell. Commands are named, possibly
// nested entries holding a handler plus per-parameter type shapes captured at
// registration time; coercion converts raw input tokens to typed values by
// switching on a closed shape union.
package command

// HandlerFunc is the executable body of a command. Arguments arrive fully
// coerced, in formal-parameter order. A non-empty result string is written to
// the shell's output sink.
type HandlerFunc func(args []any) (string, error)

// Param describes one formal parameter of a command handler.
type Param struct {
	// Name identifies the parameter in diagnostics and completion.
	Name string
	// Shape is the declared type; a zero Shape is a registration error.
	Shape Shape
	// Default is the value bound when no token covers the parameter.
	// Only meaningful when HasDefault is set.
	Default any
	// HasDefault marks the parameter as optional-positional.
	HasDefault bool
	// Variadic marks a trailing parameter that absorbs all remaining
	// tokens, each coerced against Shape.
	Variadic bool
}

// Spec declares a command for registration. Name and Description are explicit
// because Go cannot portably recover a function's declared name or doc
// comment at runtime.
type Spec struct {
	Name        string
	Description string
	// Parent, when non-empty, attaches the command as a subcommand of the
	// named root-resolvable entry.
	Parent string
	Params []Param
	Run    HandlerFunc
}

// Entry is one registered command in the tree. Parent and child links are
// plain pointers; the registry owns the entries and the garbage collector
// handles the resulting cycles.
type Entry struct {
	name        string
	description string
	run         HandlerFunc
	params      []Param
	parent      *Entry
	children    map[string]*Entry
	childOrder  []string
}

// Name returns the command's name, unique among its siblings.
func (e *Entry) Name() string { return e.name }

// Description returns the command's one-line description, if any.
func (e *Entry) Description() string { return e.description }

// Params returns a copy of the command's parameter descriptors.
func (e *Entry) Params() []Param {
	out := make([]Param, len(e.params))
	copy(out, e.params)
	return out
}

// Parent returns the parent entry, or nil for a root command.
func (e *Entry) Parent() *Entry { return e.parent }

// Child looks up a direct subcommand by name.
func (e *Entry) Child(name string) (*Entry, bool) {
	c, ok := e.children[name]
	return c, ok
}

// Children returns the direct subcommands in registration order.
func (e *Entry) Children() []*Entry {
	out := make([]*Entry, 0, len(e.childOrder))
	for _, name := range e.childOrder {
		out = append(out, e.children[name])
	}
	return out
}

// Invoke calls the command's handler with already-coerced arguments.
func (e *Entry) Invoke(args []any) (string, error) {
	return e.run(args)
}
