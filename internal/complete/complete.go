// Package complete implements deterministic tab-completion for console
// input. Given the partial text and the previously offered suggestion it
// returns the next lexicographic match across commands, variables, type
// sets and instance paths, cycling back to the first match after the last.
package complete

import (
	"sort"
	"strings"

	"conshell/internal/registry"
)

// Next computes the replacement text for the current partial input. It
// returns "" when nothing in scope matches, in which case the caller leaves
// the input untouched. A leading "help " prefix is preserved verbatim on
// the suggestion.
func Next(reg *registry.Registry, partial, prev string) string {
	if len(partial) >= 5 && strings.EqualFold(partial[:5], "help ") {
		prefix := partial[:5]
		innerPrev := strings.TrimPrefix(prev, prefix)
		if inner := Next(reg, partial[5:], innerPrev); inner != "" {
			return prefix + inner
		}
		return ""
	}

	candidates := gather(reg, partial)
	return NextMatch(candidates, partial, prev)
}

// NextMatch picks the next suggestion from a candidate set: all candidates
// with the partial as case-insensitive prefix are sorted ordinally, and the
// first one strictly greater than the previous suggestion wins, wrapping to
// the overall first when none is greater.
func NextMatch(candidates []string, partial, prev string) string {
	var matches []string
	lower := strings.ToLower(partial)
	for _, c := range candidates {
		if strings.HasPrefix(strings.ToLower(c), lower) {
			matches = append(matches, c)
		}
	}
	if len(matches) == 0 {
		return ""
	}
	sort.Strings(matches)

	if prev != "" {
		for _, m := range matches {
			if m > prev {
				return m
			}
		}
	}
	return matches[0]
}

// gather collects full-line candidate replacements for the partial input,
// applying the same scoping rules as resolution: global names for a bare
// head, instance paths for a dotted head, and the scoped command/variable
// surface once a type or instance prefix is complete.
func gather(reg *registry.Registry, partial string) []string {
	if idx := strings.IndexByte(partial, ' '); idx >= 0 {
		head := partial[:idx]
		ts, _, ok := resolveHead(reg, head)
		if !ok {
			return nil
		}
		var names []string
		names = append(names, ts.CommandNames()...)
		names = append(names, ts.VariableNames()...)
		out := make([]string, 0, len(names))
		for _, n := range names {
			out = append(out, head+" "+n)
		}
		return out
	}

	if idx := strings.IndexByte(partial, '.'); idx >= 0 {
		typeName := partial[:idx]
		ts, ok := reg.FindTypeSet(typeName)
		if !ok {
			return nil
		}
		names := ts.InstanceNames()
		out := make([]string, 0, len(names))
		for _, n := range names {
			out = append(out, ts.Name+"."+n)
		}
		return out
	}

	var out []string
	out = append(out, reg.CommandNames()...)
	out = append(out, reg.VariableNames()...)
	out = append(out, reg.TypeSetNames()...)
	return out
}

// resolveHead resolves a completed "Type" or "Type.Instance" head for
// scoped completion of the word after it.
func resolveHead(reg *registry.Registry, head string) (*registry.TypeSet, *registry.Instance, bool) {
	if idx := strings.IndexByte(head, '.'); idx >= 0 {
		ts, ok := reg.FindTypeSet(head[:idx])
		if !ok {
			return nil, nil, false
		}
		inst, ok := ts.FindNamedInstance(head[idx+1:])
		if !ok {
			return nil, nil, false
		}
		return ts, inst, true
	}
	ts, ok := reg.FindTypeSet(head)
	if !ok {
		return nil, nil, false
	}
	inst, _ := ts.DefaultInstance()
	return ts, inst, true
}
