package dispatch

import (
	"fmt"
	"strings"

	"conshell/internal/parser"
	"conshell/internal/registry"
	"conshell/pkg/contypes"
)

// Bind splits argument text into tokens and picks the first overload whose
// parameter count matches the token count and whose tokens all convert.
// The search is greedy and single-pass: ties go to registration order, and
// no backtracking happens once an overload accepts.
//
// When no overload accepts the split tokens, Bind retries with the entire
// unsplit argument text as a single token. This keeps single-string
// commands usable when the argument contains spaces the user did not quote,
// at the cost of occasionally accepting malformed input as one big string.
func Bind(set *registry.CommandSet, argsText string) (*contypes.Overload, []contypes.Value, error) {
	tokens := parser.SplitArgs(argsText)

	if ov, vals, ok := tryOverloads(set, tokens); ok {
		return ov, vals, nil
	}

	if whole := strings.TrimSpace(argsText); whole != "" {
		if ov, vals, ok := tryOverloads(set, []string{whole}); ok {
			return ov, vals, nil
		}
	}

	return nil, nil, fmt.Errorf("%s: %w", set.Name, contypes.ErrNoOverload)
}

func tryOverloads(set *registry.CommandSet, tokens []string) (*contypes.Overload, []contypes.Value, bool) {
	for i := range set.Overloads {
		ov := &set.Overloads[i]
		if len(ov.Params) != len(tokens) {
			continue
		}
		vals, ok := convertAll(tokens, ov.Params)
		if !ok {
			continue
		}
		return ov, vals, true
	}
	return nil, nil, false
}

func convertAll(tokens []string, kinds []contypes.ParamKind) ([]contypes.Value, bool) {
	vals := make([]contypes.Value, len(tokens))
	for i, tok := range tokens {
		v, err := Convert(tok, kinds[i])
		if err != nil {
			return nil, false
		}
		vals[i] = v
	}
	return vals, true
}
