package contypes

import "errors"

// Sentinel errors forming the user-visible failure taxonomy. Resolution,
// binding and variable failures are recovered at the dispatch boundary and
// surfaced as a single output line; they are distinguishable with errors.Is
// so callers and tests can assert the exact classification.
var (
	// ErrNotReady signals a registration arriving before provider
	// discovery has run. Callers treat it as a no-op, not a failure.
	ErrNotReady = errors.New("registry not ready")

	// ErrUnknownType reports a type-set prefix that resolved to nothing.
	ErrUnknownType = errors.New("not a known type")

	// ErrUnknownInstance reports a dotted instance name that resolved to
	// nothing under a known type set.
	ErrUnknownInstance = errors.New("not a known instance")

	// ErrUnknownTarget reports a head token that is neither a command nor
	// a variable in the active scope.
	ErrUnknownTarget = errors.New("not a command or variable")

	// ErrInstanceGone reports an instance whose target object is no
	// longer live.
	ErrInstanceGone = errors.New("instance is no longer alive")

	// ErrNoOverload reports that no overload of a command accepted the
	// given argument tokens.
	ErrNoOverload = errors.New("does not accept the given arguments")

	// ErrNotWritable reports a set attempt on a read-only variable.
	ErrNotWritable = errors.New("variable is not writeable")

	// ErrWrongType reports a variable set whose argument text does not
	// convert to the variable's declared kind.
	ErrWrongType = errors.New("wrong type for variable")

	// ErrDuplicateName rejects a second registration under a taken name.
	ErrDuplicateName = errors.New("name already registered")

	// ErrConsoleStarted is programmer misuse: starting an already running
	// console session. Unlike the taxonomy above it propagates.
	ErrConsoleStarted = errors.New("console session already started")
)
