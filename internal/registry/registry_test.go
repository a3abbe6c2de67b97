package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conshell/pkg/contypes"
)

func noopHandler(_ contypes.Invocation) error { return nil }

func newReadyRegistry(t *testing.T) *Registry {
	t.Helper()
	reg := New()
	reg.MarkReady()
	return reg
}

func TestRegisterCommandLookupIsCaseInsensitive(t *testing.T) {
	reg := newReadyRegistry(t)

	err := reg.RegisterCommand("Echo", contypes.Overload{Handler: noopHandler})
	require.NoError(t, err)

	for _, name := range []string{"Echo", "echo", "ECHO", "eChO"} {
		set, ok := reg.FindCommand(name)
		require.True(t, ok, "lookup %q", name)
		assert.Equal(t, "Echo", set.Name)
	}

	_, ok := reg.FindCommand("Echoo")
	assert.False(t, ok, "lookup must be exact match, not prefix")
}

func TestRegisterCommandGroupsOverloadsInOrder(t *testing.T) {
	reg := newReadyRegistry(t)

	require.NoError(t, reg.RegisterCommand("Echo", contypes.Overload{
		Handler:     noopHandler,
		Description: "first",
	}))
	require.NoError(t, reg.RegisterCommand("echo", contypes.Overload{
		Handler:     noopHandler,
		Params:      []contypes.ParamKind{contypes.KindString},
		Description: "second",
	}))

	set, ok := reg.FindCommand("echo")
	require.True(t, ok)
	require.Len(t, set.Overloads, 2)
	assert.Equal(t, "first", set.Overloads[0].Description)
	assert.Equal(t, "second", set.Overloads[1].Description)
}

func TestRegisterVariableRejectsDuplicates(t *testing.T) {
	reg := newReadyRegistry(t)

	spec := contypes.VariableSpec{
		Kind:   contypes.KindInt,
		Getter: func() contypes.Value { return contypes.Value{Kind: contypes.KindInt, Int: 3} },
	}
	require.NoError(t, reg.RegisterVariable("Level", spec))

	err := reg.RegisterVariable("level", spec)
	require.Error(t, err)
	assert.ErrorIs(t, err, contypes.ErrDuplicateName)
}

func TestVariableWritable(t *testing.T) {
	reg := newReadyRegistry(t)

	require.NoError(t, reg.RegisterVariable("ro", contypes.VariableSpec{
		Kind:   contypes.KindString,
		Getter: func() contypes.Value { return contypes.StringValue("x") },
	}))
	require.NoError(t, reg.RegisterVariable("rw", contypes.VariableSpec{
		Kind:   contypes.KindString,
		Getter: func() contypes.Value { return contypes.StringValue("x") },
		Setter: func(contypes.Value) error { return nil },
	}))

	ro, _ := reg.FindVariable("ro")
	rw, _ := reg.FindVariable("rw")
	assert.False(t, ro.Writable())
	assert.True(t, rw.Writable())
}

func TestAddInstanceBeforeReadyReturnsNotReady(t *testing.T) {
	reg := New()
	_, err := reg.RegisterTypeSet("Widget")
	require.NoError(t, err)

	_, err = reg.AddInstance("Widget", "Foo", struct{}{}, false)
	assert.ErrorIs(t, err, contypes.ErrNotReady)
}

func TestAddInstanceNamedMustBeUnique(t *testing.T) {
	reg := newReadyRegistry(t)
	_, err := reg.RegisterTypeSet("Widget")
	require.NoError(t, err)

	_, err = reg.AddInstance("Widget", "Foo", struct{}{}, false)
	require.NoError(t, err)

	_, err = reg.AddInstance("Widget", "foo", struct{}{}, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, contypes.ErrDuplicateName)
}

func TestAddInstanceDefaultLastWins(t *testing.T) {
	reg := newReadyRegistry(t)
	ts, err := reg.RegisterTypeSet("Widget")
	require.NoError(t, err)

	first := "first"
	second := "second"
	_, err = reg.AddInstance("Widget", "", &first, true)
	require.NoError(t, err)
	_, err = reg.AddInstance("Widget", "", &second, true)
	require.NoError(t, err)

	def, ok := ts.DefaultInstance()
	require.True(t, ok)
	target, live := def.Target()
	require.True(t, live)
	assert.Equal(t, &second, target)
}

func TestRemoveInstanceInvalidatesHandle(t *testing.T) {
	reg := newReadyRegistry(t)
	ts, err := reg.RegisterTypeSet("Widget")
	require.NoError(t, err)

	inst, err := reg.AddInstance("Widget", "Foo", struct{}{}, false)
	require.NoError(t, err)

	require.NoError(t, reg.RemoveInstance("widget", "FOO"))

	_, ok := ts.FindNamedInstance("Foo")
	assert.False(t, ok)
	_, live := inst.Target()
	assert.False(t, live, "removed instance must fail its liveness check")
}

func TestInvalidateSimulatesDestroyedTarget(t *testing.T) {
	reg := newReadyRegistry(t)
	ts, err := reg.RegisterTypeSet("Widget")
	require.NoError(t, err)

	inst, err := reg.AddInstance("Widget", "Foo", struct{}{}, false)
	require.NoError(t, err)

	reg.Invalidate(inst.Handle())

	// The name stays registered but the target resolution fails.
	got, ok := ts.FindNamedInstance("Foo")
	require.True(t, ok)
	_, live := got.Target()
	assert.False(t, live)
}

func TestInstanceTableRecyclesSlotsWithFreshGenerations(t *testing.T) {
	table := newInstanceTable()

	h1 := table.Put("a")
	table.Invalidate(h1)

	h2 := table.Put("b")
	assert.Equal(t, h1.index, h2.index, "slot should be recycled")

	_, ok := table.Get(h1)
	assert.False(t, ok, "stale handle must not resolve the recycled slot")

	got, ok := table.Get(h2)
	require.True(t, ok)
	assert.Equal(t, "b", got)
}

func TestRegisterTypeSetReturnsExisting(t *testing.T) {
	reg := newReadyRegistry(t)
	a, err := reg.RegisterTypeSet("Widget")
	require.NoError(t, err)
	b, err := reg.RegisterTypeSet("widget")
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestTypeSetScopedCommandsAndVariables(t *testing.T) {
	reg := newReadyRegistry(t)
	ts, err := reg.RegisterTypeSet("Widget")
	require.NoError(t, err)

	require.NoError(t, ts.RegisterCommand("Spin", contypes.Overload{Handler: noopHandler}))
	require.NoError(t, ts.RegisterVariable("Speed", contypes.VariableSpec{
		Kind:   contypes.KindInt,
		Getter: func() contypes.Value { return contypes.Value{Kind: contypes.KindInt, Int: 1} },
	}))

	_, ok := ts.FindCommand("spin")
	assert.True(t, ok)
	_, ok = ts.FindVariable("SPEED")
	assert.True(t, ok)

	// Scoped names never leak into the global catalog.
	_, ok = reg.FindCommand("Spin")
	assert.False(t, ok)
}

func TestConcurrentRegistrationAndLookup(t *testing.T) {
	reg := newReadyRegistry(t)
	_, err := reg.RegisterTypeSet("Widget")
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			_ = reg.RegisterCommand("cmd", contypes.Overload{Handler: noopHandler})
		}
	}()
	for i := 0; i < 200; i++ {
		reg.FindCommand("cmd")
		reg.CommandNames()
		reg.FindTypeSet("widget")
	}
	<-done
}
