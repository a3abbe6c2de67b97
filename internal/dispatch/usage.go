package dispatch

import (
	"fmt"
	"strings"

	"conshell/internal/parser"
	"conshell/pkg/contypes"
)

// printUsage renders usage text for a help-wrapped parse result instead of
// invoking the target.
func (d *Dispatcher) printUsage(res *parser.Result) {
	switch {
	case res.Command != nil:
		for _, line := range CommandUsage(res.Command.Name, res.Command.Overloads) {
			d.out.Emit(contypes.Line(line))
		}
	case res.Variable != nil:
		d.out.Emit(contypes.Line(VariableUsage(res.Variable.Name, res.Variable.Spec)))
	default:
		d.printScopeHelp(res)
	}
}

// printScopeHelp lists the command/variable surface of the addressed scope:
// a type set, an instance, or the registry globals.
func (d *Dispatcher) printScopeHelp(res *parser.Result) {
	if res.TypeSet == nil {
		d.emitNameList("commands", d.reg.CommandNames())
		d.emitNameList("variables", d.reg.VariableNames())
		d.emitNameList("types", d.reg.TypeSetNames())
		return
	}

	ts := res.TypeSet
	scope := ts.Name
	if res.Instance != nil && res.Instance.Name != "" {
		scope = ts.Name + "." + res.Instance.Name
	}
	d.out.Emit(contypes.Line(fmt.Sprintf("%s:", scope)))
	d.emitNameList("commands", ts.CommandNames())
	d.emitNameList("variables", ts.VariableNames())
	if names := ts.InstanceNames(); len(names) > 0 {
		d.emitNameList("instances", names)
	}
}

func (d *Dispatcher) emitNameList(label string, names []string) {
	if len(names) == 0 {
		return
	}
	d.out.Emit(contypes.Line(fmt.Sprintf("  %s: %s", label, strings.Join(names, ", "))))
}

// CommandUsage formats one usage line per overload in registration order.
func CommandUsage(name string, overloads []contypes.Overload) []string {
	lines := make([]string, 0, len(overloads))
	for _, ov := range overloads {
		kinds := make([]string, len(ov.Params))
		for i, k := range ov.Params {
			kinds[i] = k.String()
		}
		sig := fmt.Sprintf("%s(%s)", name, strings.Join(kinds, ", "))
		if ov.Description != "" {
			sig += " - " + ov.Description
		}
		lines = append(lines, sig)
	}
	return lines
}

// VariableUsage formats a variable's usage line, marking read-only ones.
func VariableUsage(name string, spec contypes.VariableSpec) string {
	line := fmt.Sprintf("%s <%s>", name, spec.Kind)
	if spec.Setter == nil {
		line += " (read-only)"
	}
	if spec.Description != "" {
		line += " - " + spec.Description
	}
	return line
}
