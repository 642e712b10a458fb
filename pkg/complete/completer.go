// Package complete provides a registry-backed line completer for the
// interactive front end. It is a read-only consumer of the command registry:
// it completes root command names, then subcommand names along the tree
// walk, then closed-choice argument values from the reflected parameter
// metadata, and never mutates what it reads. The Do method satisfies
// chzyer/readline's AutoCompleter contract.
package complete

import (
	"strings"
	"sync"

	"lunarshell/pkg/command"
)

// Completer suggests command and subcommand names for a partially typed
// line. It may be retargeted at a different registry at any time; the shell
// does this automatically when its registry is swapped.
type Completer struct {
	mu       sync.RWMutex
	registry *command.Registry
}

// New creates a completer reading from the given registry.
func New(reg *command.Registry) *Completer {
	return &Completer{registry: reg}
}

// SetRegistry atomically retargets the completer at a different registry.
func (c *Completer) SetRegistry(reg *command.Registry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.registry = reg
}

// Do returns completion candidates for the line up to pos. Candidates are
// the characters to append after the current word, per the readline
// AutoCompleter contract.
func (c *Completer) Do(line []rune, pos int) ([][]rune, int) {
	c.mu.RLock()
	reg := c.registry
	c.mu.RUnlock()
	if reg == nil {
		return nil, 0
	}

	text := string(line[:pos])
	words := strings.Fields(text)
	partial := ""
	if len(words) > 0 && !strings.HasSuffix(text, " ") {
		partial = words[len(words)-1]
		words = words[:len(words)-1]
	}

	var options []string
	if len(words) == 0 {
		options = reg.Names()
	} else {
		entry, ok := reg.Lookup(words[0])
		if !ok {
			return nil, len([]rune(partial))
		}
		rest := words[1:]
		for len(rest) > 0 {
			child, ok := entry.Child(rest[0])
			if !ok {
				break
			}
			entry = child
			rest = rest[1:]
		}
		if len(rest) == 0 {
			// The next word may still name a subcommand.
			for _, child := range entry.Children() {
				options = append(options, child.Name())
			}
		}
		// Past the subcommand path the remaining words are arguments; only
		// closed-choice shapes (enums, literals, booleans) offer candidates.
		if shape, ok := argShape(entry.Params(), len(rest)); ok {
			options = append(options, shape.Choices()...)
		}
	}

	var candidates [][]rune
	for _, opt := range options {
		if strings.HasPrefix(opt, partial) && opt != partial {
			candidates = append(candidates, []rune(opt[len(partial):]+" "))
		}
	}
	return candidates, len([]rune(partial))
}

// argShape resolves the type shape covering the argument at position idx. A
// trailing variadic parameter covers every position from its own onward.
func argShape(params []command.Param, idx int) (command.Shape, bool) {
	if len(params) == 0 {
		return command.Shape{}, false
	}
	if idx < len(params) {
		return params[idx].Shape, true
	}
	if last := params[len(params)-1]; last.Variadic {
		return last.Shape, true
	}
	return command.Shape{}, false
}
