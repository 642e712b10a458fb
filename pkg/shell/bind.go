package shell

import (
	"fmt"
	"strings"

	"lunarshell/pkg/command"
)

// MissingArgumentsError reports fewer tokens than required parameters. It
// names exactly the trailing required parameters left uncovered.
type MissingArgumentsError struct {
	Command string
	Missing []string
}

func (e *MissingArgumentsError) Error() string {
	return fmt.Sprintf("command %q: missing required arguments: %s",
		e.Command, strings.Join(e.Missing, ", "))
}

// ExtraArgumentsError reports more tokens than a command without a variadic
// parameter accepts.
type ExtraArgumentsError struct {
	Command string
	Surplus int
}

func (e *ExtraArgumentsError) Error() string {
	return fmt.Sprintf("command %q: %d unexpected extra argument(s)", e.Command, e.Surplus)
}

// Bind matches a flat token list against a command's parameter descriptors
// and produces a call-ready argument list in formal-parameter order.
//
// Fixed positional parameters each consume exactly one token. A trailing
// variadic parameter absorbs every remaining token, each coerced against its
// element shape. The literal token "none" skips a defaulted fixed parameter
// (binding its default unless the shape itself permits absence, in which case
// it binds nil); "none" skipping never applies to variadic elements.
//
// Failures are classified before any coercion runs: surplus tokens with no
// variadic parameter yield *ExtraArgumentsError, uncovered required
// parameters yield *MissingArgumentsError. The first irrecoverable coercion
// failure aborts the whole bind.
func Bind(entry *command.Entry, tokens []string) ([]any, error) {
	params := entry.Params()
	fixed := params
	var variadic *command.Param
	if n := len(params); n > 0 && params[n-1].Variadic {
		variadic = &params[n-1]
		fixed = params[:n-1]
	}

	if variadic == nil && len(tokens) > len(fixed) {
		return nil, &ExtraArgumentsError{
			Command: entry.Name(),
			Surplus: len(tokens) - len(fixed),
		}
	}

	var missing []string
	for i := len(tokens); i < len(fixed); i++ {
		if !fixed[i].HasDefault {
			missing = append(missing, fixed[i].Name)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingArgumentsError{Command: entry.Name(), Missing: missing}
	}

	args := make([]any, 0, len(params))
	for i, p := range fixed {
		if i >= len(tokens) {
			args = append(args, p.Default)
			continue
		}
		tok := tokens[i]
		if tok == command.NoneToken && p.HasDefault && !p.Shape.Nilable() {
			args = append(args, p.Default)
			continue
		}
		v, err := command.Coerce(tok, p.Shape, p.Name)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	if variadic != nil && len(tokens) > len(fixed) {
		for _, tok := range tokens[len(fixed):] {
			v, err := command.Coerce(tok, variadic.Shape, variadic.Name)
			if err != nil {
				return nil, err
			}
			args = append(args, v)
		}
	}

	return args, nil
}
