package command

import (
	"errors"
	"fmt"
	"sync"
)

// Registration failure conditions. All are detected at Register time, never
// deferred to dispatch.
var (
	ErrEmptyName      = errors.New("command name cannot be empty")
	ErrNilHandler     = errors.New("command handler cannot be nil")
	ErrDuplicateName  = errors.New("command already registered")
	ErrParentNotFound = errors.New("parent command not found")
	ErrBadParameter   = errors.New("invalid parameter declaration")
)

// Registry stores commands in a shallow tree with an additional flat
// name->entry map for O(1) root-scope lookup. Mutation is guarded by a
// RWMutex so a host may register and unregister from outside the loop thread.
type Registry struct {
	mu   sync.RWMutex
	flat map[string]*Entry
	all  []*Entry
}

// NewRegistry creates an empty command registry.
func NewRegistry() *Registry {
	return &Registry{flat: make(map[string]*Entry)}
}

// Register adds a command described by spec. It validates the name, handler
// and every parameter descriptor, resolves the parent if one is named, links
// the entry into the tree, and inserts it into the flat lookup map subject to
// the root-protection rule: a non-root entry never displaces an existing
// root-level entry of the same name, while colliding non-root entries shadow
// each other (last registration wins).
func (r *Registry) Register(spec Spec) (*Entry, error) {
	if spec.Name == "" {
		return nil, ErrEmptyName
	}
	if spec.Run == nil {
		return nil, fmt.Errorf("command %q: %w", spec.Name, ErrNilHandler)
	}
	if err := validateParams(spec.Name, spec.Params); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var parent *Entry
	if spec.Parent != "" {
		p, ok := r.flat[spec.Parent]
		if !ok {
			return nil, fmt.Errorf("command %q: parent %q: %w", spec.Name, spec.Parent, ErrParentNotFound)
		}
		parent = p
		if _, exists := parent.children[spec.Name]; exists {
			return nil, fmt.Errorf("subcommand %q under %q: %w", spec.Name, spec.Parent, ErrDuplicateName)
		}
	} else {
		// Root names must be unique among root entries. A non-root entry
		// occupying the flat key does not block a root registration; the
		// root entry takes the key over.
		if existing, ok := r.flat[spec.Name]; ok && existing.parent == nil {
			return nil, fmt.Errorf("command %q: %w", spec.Name, ErrDuplicateName)
		}
	}

	entry := &Entry{
		name:        spec.Name,
		description: spec.Description,
		run:         spec.Run,
		params:      append([]Param(nil), spec.Params...),
		parent:      parent,
		children:    make(map[string]*Entry),
	}

	if parent != nil {
		parent.children[spec.Name] = entry
		parent.childOrder = append(parent.childOrder, spec.Name)
	}

	if existing, ok := r.flat[spec.Name]; !ok || entry.parent == nil || existing.parent != nil {
		r.flat[spec.Name] = entry
	}
	r.all = append(r.all, entry)

	return entry, nil
}

// Lookup resolves a name in root scope.
func (r *Registry) Lookup(name string) (*Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.flat[name]
	return e, ok
}

// Names returns the flat lookup keys in registration order. Read-only
// consumers (completion, suggestions) use this for candidate lists.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.flat))
	for _, e := range r.all {
		if r.flat[e.name] == e {
			names = append(names, e.name)
		}
	}
	return names
}

// Unregister removes the named entry and all of its descendants. Children
// are removed first, then the entry is detached from its parent, then the
// flat-lookup keys are cleared; keys are only cleared when they still point
// at the entry being removed, so a shadowed sibling never loses its slot.
// Unregistering an absent name is a no-op.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.flat[name]
	if !ok {
		return
	}
	r.remove(entry)
}

func (r *Registry) remove(entry *Entry) {
	for _, name := range append([]string(nil), entry.childOrder...) {
		r.remove(entry.children[name])
	}
	if entry.parent != nil {
		delete(entry.parent.children, entry.name)
		for i, n := range entry.parent.childOrder {
			if n == entry.name {
				entry.parent.childOrder = append(entry.parent.childOrder[:i], entry.parent.childOrder[i+1:]...)
				break
			}
		}
		entry.parent = nil
	}
	if r.flat[entry.name] == entry {
		delete(r.flat, entry.name)
	}
	for i, e := range r.all {
		if e == entry {
			r.all = append(r.all[:i], r.all[i+1:]...)
			break
		}
	}
}

// List returns every registered entry, root and nested, in registration
// order.
func (r *Registry) List() []*Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Entry, len(r.all))
	copy(out, r.all)
	return out
}

// Roots returns the root-level entries in registration order.
func (r *Registry) Roots() []*Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Entry
	for _, e := range r.all {
		if e.parent == nil {
			out = append(out, e)
		}
	}
	return out
}

func validateParams(cmd string, params []Param) error {
	seen := make(map[string]bool, len(params))
	defaulted := false
	for i, p := range params {
		if p.Name == "" {
			return fmt.Errorf("command %q: parameter %d has no name: %w", cmd, i, ErrBadParameter)
		}
		if seen[p.Name] {
			return fmt.Errorf("command %q: parameter %q declared twice: %w", cmd, p.Name, ErrBadParameter)
		}
		seen[p.Name] = true
		if !p.Shape.valid() {
			return fmt.Errorf("command %q: parameter %q has no type shape: %w", cmd, p.Name, ErrBadParameter)
		}
		if p.Variadic {
			if i != len(params)-1 {
				return fmt.Errorf("command %q: variadic parameter %q must be last: %w", cmd, p.Name, ErrBadParameter)
			}
			if p.HasDefault {
				return fmt.Errorf("command %q: variadic parameter %q cannot have a default: %w", cmd, p.Name, ErrBadParameter)
			}
			continue
		}
		if p.HasDefault {
			defaulted = true
		} else if defaulted {
			return fmt.Errorf("command %q: required parameter %q follows an optional one: %w", cmd, p.Name, ErrBadParameter)
		}
	}
	return nil
}
