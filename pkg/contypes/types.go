// Package contypes defines the core contract types used throughout conshell.
//
// It contains the data structures that application code uses to register
// commands, variables and instances against a registry, and the interfaces
// the console loop uses to exchange output records and keystrokes with the
// rest of the system. Keeping these in a public package lets embedders
// register providers without importing internal machinery.
package contypes

import "context"

// ParamKind tags the declared type of one parsed command parameter.
// Dispatch converts argument tokens according to these tags instead of
// inspecting runtime types.
type ParamKind int

// Supported parameter kinds for command overloads and variables.
const (
	KindString ParamKind = iota
	KindInt
	KindFloat
	KindBool
)

// String returns the user-facing name of the kind, used in usage text.
func (k ParamKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Value is one converted command argument. Exactly the field matching Kind
// is meaningful; Str additionally always holds the original token text.
type Value struct {
	Kind  ParamKind
	Str   string
	Int   int64
	Float float64
	Bool  bool
}

// StringValue wraps a raw token as a KindString value.
func StringValue(s string) Value {
	return Value{Kind: KindString, Str: s}
}

// Invocation carries the dispatcher-injected state into a command handler:
// the session cancellation context, the output sink, and the converted
// argument list. Handlers must treat Args as read-only.
type Invocation struct {
	Ctx  context.Context
	Out  OutputSink
	Args []Value
}

// HandlerFunc is the callable behind one command overload. The error return
// is reported through the output sink by the dispatcher; it never escapes
// the console loop.
type HandlerFunc func(inv Invocation) error

// Overload describes one registered variant of a command: the parameter
// kinds parsed from user text (injected state is carried by Invocation and
// does not count toward arity) and the handler to call.
type Overload struct {
	Params      []ParamKind
	Handler     HandlerFunc
	Description string
}

// VariableSpec describes a registered variable. Getter is required; a nil
// Setter marks the variable read-only and set attempts fail explicitly.
type VariableSpec struct {
	Kind        ParamKind
	Getter      func() Value
	Setter      func(Value) error
	Description string
}
