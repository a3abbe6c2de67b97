// Package parser turns raw console input into a resolved target plus
// remaining argument text. It implements the dotted instance-path grammar
// ("Type.Name Command arg1 arg2"), variable get/set via "=", the "*"
// variable-listing pseudo-command and the "help" prefix. Resolution is an
// exact case-insensitive match against the registry; tab-completion handles
// all fuzziness.
package parser

import (
	"fmt"
	"strings"

	"conshell/internal/registry"
	"conshell/pkg/contypes"
)

// Intent classifies what a successfully parsed line asks the dispatcher to
// do.
type Intent int

const (
	// IntentCommand invokes a command set with argument text.
	IntentCommand Intent = iota
	// IntentVarGet reads and displays a variable.
	IntentVarGet
	// IntentVarSet writes a variable from argument text.
	IntentVarSet
	// IntentListVars lists every variable and value in the active scope
	// (the "*" pseudo-command).
	IntentListVars
	// IntentScopeHelp displays the command/variable surface of a type
	// set or instance addressed without an operation.
	IntentScopeHelp
)

// Result is a resolved parse: the addressed scope, the target within it and
// the remaining argument text. TypeSet/Instance are nil for global targets.
type Result struct {
	Intent   Intent
	HelpOnly bool
	TypeSet  *registry.TypeSet
	Instance *registry.Instance
	Command  *registry.CommandSet
	Variable *registry.Variable
	ArgsText string
	Raw      string
}

// scope is the lookup surface a head token resolves against: the registry
// globals, or one instance's type.
type scope interface {
	FindCommand(name string) (*registry.CommandSet, bool)
	FindVariable(name string) (*registry.Variable, bool)
}

// Parse resolves one raw input line against the registry. Failures are
// classified with the contypes sentinels (unknown type, unknown instance,
// unknown command-or-variable, instance gone) so callers can present
// distinct messages; Parse itself never panics on user input.
func Parse(reg *registry.Registry, raw string) (*Result, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, fmt.Errorf("empty input: %w", contypes.ErrUnknownTarget)
	}

	helpOnly := false
	if len(text) > 5 && strings.EqualFold(text[:5], "help ") {
		// A bare "help" stays an ordinary command; only "help <rest>"
		// wraps the remainder as a usage request.
		if rest := strings.TrimSpace(text[5:]); rest != "" {
			helpOnly = true
			text = rest
		}
	}

	res, err := resolve(reg, reg, nil, nil, text)
	if err != nil {
		return nil, err
	}
	res.HelpOnly = helpOnly
	res.Raw = raw
	return res, nil
}

// resolve applies the head grammar within one scope. Type-set and dotted
// instance paths only exist at global scope; once an instance is entered
// the remainder is resolved against that instance's own surface.
func resolve(reg *registry.Registry, sc scope, ts *registry.TypeSet, inst *registry.Instance, text string) (*Result, error) {
	head, rest := splitHead(text)
	if head == "" {
		return nil, fmt.Errorf("empty input: %w", contypes.ErrUnknownTarget)
	}

	if head == "*" {
		return &Result{Intent: IntentListVars, TypeSet: ts, Instance: inst}, nil
	}

	// Variable assignment binds tighter than the space split: the value
	// begins right after the first "=" and runs to end of line.
	if idx := strings.IndexByte(head, '='); idx > 0 {
		name := head[:idx]
		value := head[idx+1:]
		if rest != "" {
			value = value + " " + rest
		}
		if v, ok := sc.FindVariable(name); ok {
			return &Result{Intent: IntentVarSet, TypeSet: ts, Instance: inst, Variable: v, ArgsText: value}, nil
		}
		return nil, fmt.Errorf("%s: %w", name, contypes.ErrUnknownTarget)
	}

	if set, ok := sc.FindCommand(head); ok {
		return &Result{Intent: IntentCommand, TypeSet: ts, Instance: inst, Command: set, ArgsText: rest}, nil
	}

	if v, ok := sc.FindVariable(head); ok && rest == "" {
		return &Result{Intent: IntentVarGet, TypeSet: ts, Instance: inst, Variable: v}, nil
	}

	// Type resolution happens only at global scope.
	if inst == nil {
		if strings.Contains(head, ".") {
			return resolveDotted(reg, head, rest)
		}
		if found, ok := reg.FindTypeSet(head); ok {
			return resolveTypeSet(reg, found, rest)
		}
	}

	return nil, fmt.Errorf("%s: %w", head, contypes.ErrUnknownTarget)
}

// resolveDotted handles a "Type.Instance" head.
func resolveDotted(reg *registry.Registry, head, rest string) (*Result, error) {
	parts := strings.SplitN(head, ".", 2)
	typeName, instName := parts[0], parts[1]

	ts, ok := reg.FindTypeSet(typeName)
	if !ok {
		return nil, fmt.Errorf("%s: %w", typeName, contypes.ErrUnknownType)
	}
	inst, ok := ts.FindNamedInstance(instName)
	if !ok {
		return nil, fmt.Errorf("%s.%s: %w", ts.Name, instName, contypes.ErrUnknownInstance)
	}
	return enterInstance(reg, ts, inst, rest)
}

// resolveTypeSet handles a bare type-set head: the default instance is the
// target when one exists, otherwise the scope's help listing.
func resolveTypeSet(reg *registry.Registry, ts *registry.TypeSet, rest string) (*Result, error) {
	inst, ok := ts.DefaultInstance()
	if !ok {
		return &Result{Intent: IntentScopeHelp, TypeSet: ts}, nil
	}
	return enterInstance(reg, ts, inst, rest)
}

func enterInstance(reg *registry.Registry, ts *registry.TypeSet, inst *registry.Instance, rest string) (*Result, error) {
	if _, live := inst.Target(); !live {
		return nil, fmt.Errorf("%s.%s: %w", ts.Name, inst.Name, contypes.ErrInstanceGone)
	}
	if rest == "" {
		return &Result{Intent: IntentScopeHelp, TypeSet: ts, Instance: inst}, nil
	}
	return resolve(reg, ts, ts, inst, rest)
}
