// Package dispatch binds argument text against command overloads and
// executes resolved targets. All user-input failures are recovered here and
// surfaced as exactly one explanatory record through the output sink; no
// error or panic from a command body ever reaches the console loop.
package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"conshell/internal/logger"
	"conshell/internal/parser"
	"conshell/internal/registry"
	"conshell/pkg/contypes"
)

// Dispatcher executes parsed console input against a registry, routing
// results and errors to an output sink. The context carries the console
// session's cancellation signal into command bodies.
type Dispatcher struct {
	reg *registry.Registry
	out contypes.OutputSink
	ctx context.Context
	log *log.Logger
}

// New creates a dispatcher bound to a registry, sink and session context.
func New(reg *registry.Registry, out contypes.OutputSink, ctx context.Context) *Dispatcher {
	return &Dispatcher{
		reg: reg,
		out: out,
		ctx: ctx,
		log: logger.NewStyledLogger("Dispatch"),
	}
}

// Run parses and dispatches one raw input line, reporting whether it
// succeeded. Resolution failures produce a single classified output line.
func (d *Dispatcher) Run(raw string) bool {
	res, err := parser.Parse(d.reg, raw)
	if err != nil {
		d.out.Emit(contypes.ErrorLine(err.Error(), nil))
		return false
	}
	return d.Dispatch(res)
}

// Dispatch executes a resolved parse result.
func (d *Dispatcher) Dispatch(res *parser.Result) bool {
	if res.HelpOnly {
		d.printUsage(res)
		return true
	}

	switch res.Intent {
	case parser.IntentCommand:
		return d.invokeCommand(res)
	case parser.IntentVarGet:
		d.out.Emit(contypes.Line(fmt.Sprintf("%s=%s", res.Variable.Name, FormatValue(res.Variable.Spec.Getter()))))
		return true
	case parser.IntentVarSet:
		return d.setVariable(res)
	case parser.IntentListVars:
		d.listVariables(res)
		return true
	case parser.IntentScopeHelp:
		d.printScopeHelp(res)
		return true
	default:
		d.out.Emit(contypes.ErrorLine("unsupported input", nil))
		return false
	}
}

func (d *Dispatcher) invokeCommand(res *parser.Result) (ok bool) {
	ov, args, err := Bind(res.Command, res.ArgsText)
	if err != nil {
		d.out.Emit(contypes.ErrorLine(err.Error(), nil))
		return false
	}

	// A panic or error in the command body is an execution fault: logged
	// with detail, converted to a failed outcome, never propagated.
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("command panicked", "command", res.Command.Name, "error", r)
			d.out.Emit(contypes.ErrorLine(fmt.Sprintf("%s failed: %v", res.Command.Name, r), nil))
			ok = false
		}
	}()

	inv := contypes.Invocation{Ctx: d.ctx, Out: d.out, Args: args}
	if err := ov.Handler(inv); err != nil {
		d.log.Error("command failed", "command", res.Command.Name, "error", err)
		d.out.Emit(contypes.ErrorLine(fmt.Sprintf("%s failed: %s", res.Command.Name, err), err))
		return false
	}
	return true
}

func (d *Dispatcher) setVariable(res *parser.Result) bool {
	v := res.Variable
	if !v.Writable() {
		d.out.Emit(contypes.ErrorLine(fmt.Sprintf("%s: %s", v.Name, contypes.ErrNotWritable), nil))
		return false
	}

	val, err := Convert(res.ArgsText, v.Spec.Kind)
	if err != nil {
		d.out.Emit(contypes.ErrorLine(fmt.Sprintf("%s: %s: %s", v.Name, contypes.ErrWrongType, err), nil))
		return false
	}

	if err := v.Spec.Setter(val); err != nil {
		d.out.Emit(contypes.ErrorLine(fmt.Sprintf("%s: %s", v.Name, err), err))
		return false
	}
	return true
}

func (d *Dispatcher) listVariables(res *parser.Result) {
	var vars []*registry.Variable
	if res.TypeSet != nil {
		vars = res.TypeSet.Variables()
	} else {
		vars = d.reg.Variables()
	}
	if len(vars) == 0 {
		d.out.Emit(contypes.Line("no variables registered"))
		return
	}
	for _, v := range vars {
		d.out.Emit(contypes.Line(fmt.Sprintf("%s=%s", v.Name, FormatValue(v.Spec.Getter()))))
	}
}

// IsUserError reports whether an error belongs to the recoverable
// user-input taxonomy rather than programmer misuse.
func IsUserError(err error) bool {
	return errors.Is(err, contypes.ErrUnknownType) ||
		errors.Is(err, contypes.ErrUnknownInstance) ||
		errors.Is(err, contypes.ErrUnknownTarget) ||
		errors.Is(err, contypes.ErrInstanceGone) ||
		errors.Is(err, contypes.ErrNoOverload) ||
		errors.Is(err, contypes.ErrNotWritable) ||
		errors.Is(err, contypes.ErrWrongType)
}
