package main

import (
	"errors"
	"fmt"
	"strings"

	"lunarshell/pkg/command"
)

// registerDemoCommands installs the stock command set shipped with the lunar
// binary. It doubles as a worked example of the registration API: unions,
// enums, literals, lists, optional parameters and subcommand trees.
func registerDemoCommands(reg *command.Registry) {
	mustRegister(reg, command.Spec{
		Name:        "echo",
		Description: "Echo the input back.",
		Params: []command.Param{
			{Name: "words", Shape: command.String(), Variadic: true},
		},
		Run: func(args []any) (string, error) {
			words := make([]string, len(args))
			for i, a := range args {
				words[i] = a.(string)
			}
			return strings.Join(words, " "), nil
		},
	})

	mustRegister(reg, command.Spec{
		Name:        "add",
		Description: "Add numbers together.",
		Params: []command.Param{
			{Name: "nums", Shape: command.Union(command.Int(), command.Float()), Variadic: true},
		},
		Run: func(args []any) (string, error) {
			sum := 0.0
			wholly := true
			for _, a := range args {
				switch n := a.(type) {
				case int:
					sum += float64(n)
				case float64:
					sum += n
					wholly = false
				}
			}
			if wholly {
				return fmt.Sprintf("%d", int(sum)), nil
			}
			return fmt.Sprintf("%g", sum), nil
		},
	})

	mustRegister(reg, command.Spec{
		Name:        "calc",
		Description: "Calculator commands.",
		Run: func(_ []any) (string, error) {
			return "Usage: calc <add|sub> ...", nil
		},
	})
	mustRegister(reg, command.Spec{
		Name:        "add",
		Parent:      "calc",
		Description: "Add two numbers.",
		Params: []command.Param{
			{Name: "a", Shape: command.Float()},
			{Name: "b", Shape: command.Float()},
		},
		Run: func(args []any) (string, error) {
			return fmt.Sprintf("%g", args[0].(float64)+args[1].(float64)), nil
		},
	})
	mustRegister(reg, command.Spec{
		Name:        "sub",
		Parent:      "calc",
		Description: "Subtract two numbers.",
		Params: []command.Param{
			{Name: "a", Shape: command.Float()},
			{Name: "b", Shape: command.Float()},
		},
		Run: func(args []any) (string, error) {
			return fmt.Sprintf("%g", args[0].(float64)-args[1].(float64)), nil
		},
	})

	mustRegister(reg, command.Spec{
		Name:        "paint",
		Description: "Paint something in a color.",
		Params: []command.Param{
			{Name: "color", Shape: command.Enum("color",
				command.EnumMember{Name: "red", Value: "#ff0000"},
				command.EnumMember{Name: "green", Value: "#00ff00"},
				command.EnumMember{Name: "blue", Value: "#0000ff"},
			)},
			{Name: "target", Shape: command.Optional(command.String()), HasDefault: true, Default: "the wall"},
		},
		Run: func(args []any) (string, error) {
			target, _ := args[1].(string)
			if target == "" {
				target = "nothing"
			}
			return fmt.Sprintf("painting %s in %s", target, args[0].(string)), nil
		},
	})

	mustRegister(reg, command.Spec{
		Name:        "volume",
		Description: "Set the volume level.",
		Params: []command.Param{
			{Name: "level", Shape: command.Literal("low", "medium", "high")},
		},
		Run: func(args []any) (string, error) {
			return fmt.Sprintf("volume set to %v", args[0]), nil
		},
	})

	mustRegister(reg, command.Spec{
		Name:        "sum",
		Description: "Sum a comma-separated list of integers.",
		Params: []command.Param{
			{Name: "values", Shape: command.List(command.Int())},
		},
		Run: func(args []any) (string, error) {
			total := 0
			for _, v := range args[0].([]any) {
				total += v.(int)
			}
			return fmt.Sprintf("%d", total), nil
		},
	})

	mustRegister(reg, command.Spec{
		Name:        "fail",
		Description: "Always fails; demonstrates error handling.",
		Run: func(_ []any) (string, error) {
			return "", errors.New("this command always fails")
		},
	})
}

func mustRegister(reg *command.Registry, spec command.Spec) {
	if _, err := reg.Register(spec); err != nil {
		panic(err)
	}
}
