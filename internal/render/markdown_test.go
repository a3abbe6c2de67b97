package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conshell/internal/registry"
	"conshell/pkg/contypes"
)

func TestPlainRendererPassesThrough(t *testing.T) {
	md, err := NewMarkdown(true)
	require.NoError(t, err)

	out, err := md.Render("# Title\n\nbody")
	require.NoError(t, err)
	assert.Equal(t, "# Title\n\nbody", out)
}

func TestHelpIndexListsEverything(t *testing.T) {
	reg := registry.New()
	noop := func(_ contypes.Invocation) error { return nil }
	require.NoError(t, reg.RegisterCommand("greet", contypes.Overload{
		Params:      []contypes.ParamKind{contypes.KindString},
		Description: "say hello",
		Handler:     noop,
	}))
	require.NoError(t, reg.RegisterCommand("greet", contypes.Overload{
		Params:  []contypes.ParamKind{contypes.KindString, contypes.KindInt},
		Handler: noop,
	}))
	require.NoError(t, reg.RegisterVariable("volume", contypes.VariableSpec{
		Kind:        contypes.KindInt,
		Getter:      func() contypes.Value { return contypes.Value{Kind: contypes.KindInt, Int: 4} },
		Description: "output volume",
	}))
	_, err := reg.RegisterTypeSet("Widget")
	require.NoError(t, err)
	_, err = reg.RegisterTypeSet("Gadget")
	require.NoError(t, err)
	reg.MarkReady()
	_, err = reg.AddInstance("Widget", "Alpha", struct{}{}, false)
	require.NoError(t, err)

	page := HelpIndex(reg)

	assert.Contains(t, page, "# Commands")
	assert.Contains(t, page, "greet(string)")
	assert.Contains(t, page, "greet(string, int)")
	assert.Contains(t, page, "say hello")
	assert.Contains(t, page, "# Variables")
	assert.Contains(t, page, "volume")
	assert.Contains(t, page, "read-only")
	assert.Contains(t, page, "# Types")
	assert.Contains(t, page, "Widget` (instances: Alpha)")
	assert.Contains(t, page, "Gadget")
}

func TestHelpIndexOmitsEmptySections(t *testing.T) {
	reg := registry.New()
	reg.MarkReady()

	page := HelpIndex(reg)
	assert.Contains(t, page, "# Commands")
	assert.NotContains(t, page, "# Variables")
	assert.NotContains(t, page, "# Types")
}
