package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// NoneToken is the literal input token that selects the absence marker for a
// parameter whose shape permits it.
const NoneToken = "none"

// CoercionError reports that a raw token could not be converted to its
// parameter's declared type. It carries everything the type-error handler
// needs to render a useful diagnostic.
type CoercionError struct {
	// Token is the offending raw input token.
	Token string
	// Param is the name of the parameter being filled.
	Param string
	// Types lists the attempted type name(s); more than one for unions.
	Types []string
	// Choices lists the valid tokens when the type is a closed set.
	Choices []string
	// Err is the underlying parse failure, if any.
	Err error
}

func (e *CoercionError) Error() string {
	msg := fmt.Sprintf("cannot convert %q for parameter %q: expected %s",
		e.Token, e.Param, strings.Join(e.Types, " or "))
	if len(e.Choices) > 0 {
		msg += fmt.Sprintf(" (valid choices: %s)", strings.Join(e.Choices, ", "))
	}
	return msg
}

func (e *CoercionError) Unwrap() error { return e.Err }

// Coerce converts a single raw token into a typed value according to the
// parameter's declared shape. It is a pure function: no shared state, and the
// only failure mode is a *CoercionError.
//
// Union alternatives are tried in declaration order and intermediate failures
// are suppressed; only a failure of every alternative surfaces, combined into
// one error naming all attempted types.
func Coerce(raw string, shape Shape, param string) (any, error) {
	// The absence token is checked before any shape-specific rule: shapes
	// that permit absence coerce it to nil, everything else is a missing
	// required value, even plain strings.
	if raw == NoneToken {
		if shape.Nilable() {
			return nil, nil
		}
		return nil, &CoercionError{
			Token: raw,
			Param: param,
			Types: shape.typeNames(),
			Err:   errors.New("value required"),
		}
	}

	switch shape.kind {
	case KindLiteral:
		for _, v := range shape.literals {
			if fmt.Sprint(v) == raw {
				return v, nil
			}
		}
		for _, v := range shape.literals {
			if s, ok := v.(string); ok && strings.EqualFold(s, raw) {
				return v, nil
			}
		}
		return nil, &CoercionError{
			Token:   raw,
			Param:   param,
			Types:   shape.typeNames(),
			Choices: shape.Choices(),
		}

	case KindEnum:
		for _, m := range shape.enumMembers {
			if m.Name == raw {
				return m.Value, nil
			}
		}
		return nil, &CoercionError{
			Token:   raw,
			Param:   param,
			Types:   shape.typeNames(),
			Choices: shape.Choices(),
		}

	case KindInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, &CoercionError{Token: raw, Param: param, Types: shape.typeNames(), Err: err}
		}
		return n, nil

	case KindFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, &CoercionError{Token: raw, Param: param, Types: shape.typeNames(), Err: err}
		}
		return f, nil

	case KindBytes:
		return []byte(raw), nil

	case KindBool:
		switch strings.ToLower(raw) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return nil, &CoercionError{
			Token:   raw,
			Param:   param,
			Types:   shape.typeNames(),
			Choices: shape.Choices(),
		}

	case KindList:
		if raw == "" {
			return []any{}, nil
		}
		parts := strings.Split(raw, ",")
		values := make([]any, 0, len(parts))
		for _, part := range parts {
			v, err := Coerce(strings.TrimSpace(part), shape.Elem(), param)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
		return values, nil

	case KindUnion:
		for _, member := range shape.members {
			if v, err := Coerce(raw, member, param); err == nil {
				return v, nil
			}
		}
		return nil, &CoercionError{
			Token: raw,
			Param: param,
			Types: shape.typeNames(),
			Err:   errors.New("no union alternative matched"),
		}

	case KindString:
		return raw, nil
	}

	return nil, &CoercionError{
		Token: raw,
		Param: param,
		Types: []string{"invalid"},
		Err:   errors.New("parameter has no usable type shape"),
	}
}
