// Package render builds the markdown help pages and renders them for the
// terminal with Glamour.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"conshell/internal/dispatch"
	"conshell/internal/registry"
)

// Markdown renders markdown content to ANSI terminal output. When styled
// rendering is unavailable or disabled the raw markdown is returned, which
// stays readable in plain terminals and test captures.
type Markdown struct {
	renderer *glamour.TermRenderer
	plain    bool
}

// NewMarkdown creates a renderer with auto-detected terminal style. Pass
// plain to skip ANSI styling entirely (test mode, non-TTY output).
func NewMarkdown(plain bool) (*Markdown, error) {
	if plain {
		return &Markdown{plain: true}, nil
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return &Markdown{renderer: renderer}, nil
}

// Render renders markdown content for display.
func (m *Markdown) Render(markdown string) (string, error) {
	if m.plain || m.renderer == nil {
		return markdown, nil
	}
	rendered, err := m.renderer.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return rendered, nil
}

// HelpIndex builds the markdown help page listing every global command,
// variable and type set in a registry.
func HelpIndex(reg *registry.Registry) string {
	var b strings.Builder
	b.WriteString("# Commands\n\n")
	for _, name := range reg.CommandNames() {
		set, _ := reg.FindCommand(name)
		for _, line := range dispatch.CommandUsage(set.Name, set.Overloads) {
			fmt.Fprintf(&b, "- `%s`\n", line)
		}
	}

	if vars := reg.Variables(); len(vars) > 0 {
		b.WriteString("\n# Variables\n\n")
		for _, v := range vars {
			fmt.Fprintf(&b, "- `%s`\n", dispatch.VariableUsage(v.Name, v.Spec))
		}
	}

	if types := reg.TypeSetNames(); len(types) > 0 {
		b.WriteString("\n# Types\n\n")
		for _, name := range types {
			ts, _ := reg.FindTypeSet(name)
			instances := ts.InstanceNames()
			if len(instances) > 0 {
				fmt.Fprintf(&b, "- `%s` (instances: %s)\n", ts.Name, strings.Join(instances, ", "))
			} else {
				fmt.Fprintf(&b, "- `%s`\n", ts.Name)
			}
		}
	}

	b.WriteString("\nUse `help <command>` for usage, `Type.Instance Command args` to address instances, `*` to list variables.\n")
	return b.String()
}
