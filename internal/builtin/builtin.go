// Package builtin registers the commands and variables every conshell
// session ships with. Registration is explicit against a passed registry;
// there is no init()-time self-registration, so embedders and tests control
// exactly what a registry contains.
package builtin

import (
	"fmt"
	"strings"
	"time"

	"conshell/internal/registry"
	"conshell/pkg/contypes"
)

// Hooks supplies the session-level callbacks builtins need. Nil hooks
// disable the corresponding command.
type Hooks struct {
	// Quit requests console session teardown.
	Quit func()
	// History returns the submitted lines, oldest first.
	History func() []string
	// HelpText renders the command index page.
	HelpText func() (string, error)
	// Prompt reads the current prompt text; SetPrompt replaces it. Both
	// must be set to expose the writable prompt variable.
	Prompt    func() string
	SetPrompt func(string)
}

// Register installs the builtin commands and variables into a registry.
func Register(reg *registry.Registry, version string, hooks Hooks) error {
	start := time.Now()

	if err := reg.RegisterVariable("version", contypes.VariableSpec{
		Kind:        contypes.KindString,
		Getter:      func() contypes.Value { return contypes.StringValue(version) },
		Description: "conshell version",
	}); err != nil {
		return err
	}

	if err := reg.RegisterVariable("uptime", contypes.VariableSpec{
		Kind: contypes.KindString,
		Getter: func() contypes.Value {
			return contypes.StringValue(time.Since(start).Round(time.Second).String())
		},
		Description: "time since session start",
	}); err != nil {
		return err
	}

	if hooks.Prompt != nil && hooks.SetPrompt != nil {
		if err := reg.RegisterVariable("prompt", contypes.VariableSpec{
			Kind:   contypes.KindString,
			Getter: func() contypes.Value { return contypes.StringValue(hooks.Prompt()) },
			Setter: func(v contypes.Value) error {
				hooks.SetPrompt(v.Str)
				return nil
			},
			Description: "prompt text",
		}); err != nil {
			return err
		}
	}

	if err := reg.RegisterCommand("echo", contypes.Overload{
		Params:      []contypes.ParamKind{contypes.KindString},
		Description: "print the argument",
		Handler: func(inv contypes.Invocation) error {
			inv.Out.Emit(contypes.Line(inv.Args[0].Str))
			return nil
		},
	}); err != nil {
		return err
	}
	if err := reg.RegisterCommand("echo", contypes.Overload{
		Params:      []contypes.ParamKind{contypes.KindString, contypes.KindInt},
		Description: "print the argument n times",
		Handler: func(inv contypes.Invocation) error {
			for i := int64(0); i < inv.Args[1].Int; i++ {
				inv.Out.Emit(contypes.Line(inv.Args[0].Str))
			}
			return nil
		},
	}); err != nil {
		return err
	}

	if err := reg.RegisterCommand("sleep", contypes.Overload{
		Params:      []contypes.ParamKind{contypes.KindInt},
		Description: "wait the given number of milliseconds in the background",
		Handler: func(inv contypes.Invocation) error {
			ms := inv.Args[0].Int
			select {
			case <-time.After(time.Duration(ms) * time.Millisecond):
				inv.Out.Emit(contypes.Line(fmt.Sprintf("slept %dms", ms)))
				return nil
			case <-inv.Ctx.Done():
				return inv.Ctx.Err()
			}
		},
	}); err != nil {
		return err
	}

	if err := reg.RegisterCommand("clear", contypes.Overload{
		Description: "clear the screen",
		Handler: func(inv contypes.Invocation) error {
			inv.Out.Clear()
			return nil
		},
	}); err != nil {
		return err
	}

	if hooks.History != nil {
		if err := reg.RegisterCommand("history", contypes.Overload{
			Description: "list submitted commands",
			Handler: func(inv contypes.Invocation) error {
				for i, line := range hooks.History() {
					inv.Out.Emit(contypes.Line(fmt.Sprintf("%3d  %s", i+1, line)))
				}
				return nil
			},
		}); err != nil {
			return err
		}
	}

	if hooks.HelpText != nil {
		if err := reg.RegisterCommand("help", contypes.Overload{
			Description: "show all commands, variables and types",
			Handler: func(inv contypes.Invocation) error {
				text, err := hooks.HelpText()
				if err != nil {
					return err
				}
				for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
					inv.Out.Emit(contypes.Line(line))
				}
				return nil
			},
		}); err != nil {
			return err
		}
	}

	if hooks.Quit != nil {
		if err := reg.RegisterCommand("quit", contypes.Overload{
			Description: "end the session",
			Handler: func(inv contypes.Invocation) error {
				hooks.Quit()
				return nil
			},
		}); err != nil {
			return err
		}
	}

	return nil
}
