package command

import (
	"fmt"
	"strings"
)

// ShapeKind identifies which variant of the type shape union a Shape carries.
type ShapeKind int

const (
	// KindInvalid is the zero value; a parameter declared with it fails at
	// registration time.
	KindInvalid ShapeKind = iota
	// KindString passes the raw token through unchanged.
	KindString
	// KindInt parses the token as a base-10 integer.
	KindInt
	// KindFloat parses the token as a decimal number.
	KindFloat
	// KindBool accepts only the tokens "true" and "false" (case-insensitive).
	KindBool
	// KindBytes UTF-8 encodes the raw token.
	KindBytes
	// KindEnum matches the token against named enum members (case-sensitive).
	KindEnum
	// KindLiteral matches the token against a closed set of literal values.
	KindLiteral
	// KindList splits the token on commas and coerces each element.
	KindList
	// KindUnion tries each member shape in declaration order, first match wins.
	KindUnion
)

// EnumMember is one named value of an enumeration shape.
type EnumMember struct {
	Name  string
	Value any
}

// Shape is a closed description of a parameter's declared type. It is built
// once by the constructor functions below and switched on by tag during
// coercion; there is no runtime reflection anywhere in the engine.
type Shape struct {
	kind        ShapeKind
	nilable     bool
	elem        *Shape
	members     []Shape
	enumName    string
	enumMembers []EnumMember
	literals    []any
}

// String declares a plain string parameter.
func String() Shape { return Shape{kind: KindString} }

// Int declares a base-10 integer parameter.
func Int() Shape { return Shape{kind: KindInt} }

// Float declares a decimal number parameter.
func Float() Shape { return Shape{kind: KindFloat} }

// Bool declares a boolean parameter accepting only "true"/"false".
func Bool() Shape { return Shape{kind: KindBool} }

// Bytes declares a parameter whose token is passed through as raw bytes.
func Bytes() Shape { return Shape{kind: KindBytes} }

// Enum declares an enumeration parameter. Tokens are matched against member
// names exactly (case-sensitive) and coerce to the member's value.
func Enum(name string, members ...EnumMember) Shape {
	return Shape{kind: KindEnum, enumName: name, enumMembers: members}
}

// Literal declares a closed-choice parameter. Tokens are compared against the
// string form of each value, with a case-insensitive fallback for string
// values. The coerced result is the matching literal value itself.
func Literal(values ...any) Shape {
	return Shape{kind: KindLiteral, literals: values}
}

// List declares a comma-separated list parameter with the given element shape.
func List(elem Shape) Shape {
	return Shape{kind: KindList, elem: &elem}
}

// Union declares a parameter accepting any of the given shapes, tried in
// declaration order with first-match-wins semantics.
func Union(members ...Shape) Shape {
	return Shape{kind: KindUnion, members: members}
}

// Optional marks a shape as permitting absence: the literal token "none"
// coerces to nil instead of failing.
func Optional(s Shape) Shape {
	s.nilable = true
	return s
}

// Kind returns the shape's tag.
func (s Shape) Kind() ShapeKind { return s.kind }

// Nilable reports whether the shape permits the absence marker.
func (s Shape) Nilable() bool { return s.nilable }

// Elem returns the element shape of a list, or the zero Shape otherwise.
func (s Shape) Elem() Shape {
	if s.elem == nil {
		return Shape{}
	}
	return *s.elem
}

// Members returns the alternatives of a union shape.
func (s Shape) Members() []Shape {
	out := make([]Shape, len(s.members))
	copy(out, s.members)
	return out
}

// Choices returns the valid tokens of a closed shape (enum, literal, bool),
// or nil for open shapes. Used for error diagnostics and completion.
func (s Shape) Choices() []string {
	switch s.kind {
	case KindEnum:
		names := make([]string, len(s.enumMembers))
		for i, m := range s.enumMembers {
			names[i] = m.Name
		}
		return names
	case KindLiteral:
		names := make([]string, len(s.literals))
		for i, v := range s.literals {
			names[i] = fmt.Sprint(v)
		}
		return names
	case KindBool:
		return []string{"true", "false"}
	}
	return nil
}

// Name returns a human-readable name for the shape, used in diagnostics and
// parameter placeholders.
func (s Shape) Name() string {
	base := s.baseName()
	if s.nilable {
		return base + "|none"
	}
	return base
}

func (s Shape) baseName() string {
	switch s.kind {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindBytes:
		return "bytes"
	case KindEnum:
		if s.enumName != "" {
			return s.enumName
		}
		return "enum"
	case KindLiteral:
		return "one of [" + strings.Join(s.Choices(), ", ") + "]"
	case KindList:
		return "list of " + s.Elem().baseName()
	case KindUnion:
		names := make([]string, len(s.members))
		for i, m := range s.members {
			names[i] = m.baseName()
		}
		return strings.Join(names, "|")
	}
	return "invalid"
}

// typeNames returns the attempted type name(s) for failure reporting: union
// shapes contribute one name per alternative, everything else a single name.
func (s Shape) typeNames() []string {
	if s.kind == KindUnion {
		names := make([]string, len(s.members))
		for i, m := range s.members {
			names[i] = m.baseName()
		}
		return names
	}
	return []string{s.baseName()}
}

// valid reports whether the shape (and any nested shapes) carries a usable tag.
func (s Shape) valid() bool {
	switch s.kind {
	case KindString, KindInt, KindFloat, KindBool, KindBytes:
		return true
	case KindEnum:
		return len(s.enumMembers) > 0
	case KindLiteral:
		return len(s.literals) > 0
	case KindList:
		return s.elem != nil && s.elem.valid()
	case KindUnion:
		if len(s.members) == 0 {
			return false
		}
		for _, m := range s.members {
			if !m.valid() {
				return false
			}
		}
		return true
	}
	return false
}
