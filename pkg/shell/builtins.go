package shell

import (
	"fmt"
	"strings"

	"lunarshell/pkg/command"
)

// MarkdownSink is implemented by output sinks that can render markdown; the
// help builtin prefers it when available.
type MarkdownSink interface {
	PrintMarkdown(md string)
}

// registerBuiltins installs the exit and help commands into the shell's
// initial registry. Both close over the shell so they keep working after a
// registry swap (the host re-registers them, or replaces them deliberately).
func (s *Shell) registerBuiltins() {
	_, _ = s.registry.Register(command.Spec{
		Name:        "exit",
		Description: "Exit the shell.",
		Run: func(_ []any) (string, error) {
			s.Stop()
			return "", nil
		},
	})

	_, _ = s.registry.Register(command.Spec{
		Name:        "help",
		Description: "Show help for commands.",
		Params: []command.Param{
			{
				Name:       "command",
				Shape:      command.Optional(command.String()),
				HasDefault: true,
			},
		},
		Run: func(args []any) (string, error) {
			name, _ := args[0].(string)
			md := s.helpText(name)
			if sink, ok := s.out.(MarkdownSink); ok {
				sink.PrintMarkdown(md)
				return "", nil
			}
			return md, nil
		},
	})
}

// helpText renders command help as markdown: the full root listing when name
// is empty, otherwise the named command's description, usage and
// subcommands.
func (s *Shell) helpText(name string) string {
	reg := s.registry

	var b strings.Builder
	if name == "" {
		b.WriteString("## Available commands\n\n")
		for _, e := range reg.Roots() {
			if desc := e.Description(); desc != "" {
				fmt.Fprintf(&b, "- `%s` — %s\n", e.Name(), desc)
			} else {
				fmt.Fprintf(&b, "- `%s`\n", e.Name())
			}
		}
		return strings.TrimRight(b.String(), "\n")
	}

	entry, ok := reg.Lookup(name)
	if !ok {
		return fmt.Sprintf("Unknown command: %s", name)
	}

	fmt.Fprintf(&b, "## %s\n\n", entry.Name())
	if desc := entry.Description(); desc != "" {
		b.WriteString(desc + "\n\n")
	}
	fmt.Fprintf(&b, "Usage: `%s`\n", Usage(entry))
	if children := entry.Children(); len(children) > 0 {
		b.WriteString("\nSubcommands:\n\n")
		for _, c := range children {
			if desc := c.Description(); desc != "" {
				fmt.Fprintf(&b, "- `%s` — %s\n", c.Name(), desc)
			} else {
				fmt.Fprintf(&b, "- `%s`\n", c.Name())
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// Usage renders a one-line usage string for an entry from its reflected
// parameter metadata: required parameters in angle brackets, optional ones
// in square brackets, variadic ones with an ellipsis.
func Usage(entry *command.Entry) string {
	parts := []string{entry.Name()}
	for _, p := range entry.Params() {
		switch {
		case p.Variadic:
			parts = append(parts, fmt.Sprintf("[%s:%s ...]", p.Name, p.Shape.Name()))
		case p.HasDefault:
			parts = append(parts, fmt.Sprintf("[%s:%s]", p.Name, p.Shape.Name()))
		default:
			parts = append(parts, fmt.Sprintf("<%s:%s>", p.Name, p.Shape.Name()))
		}
	}
	return strings.Join(parts, " ")
}
