package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conshell/internal/registry"
	"conshell/pkg/contypes"
)

func noopHandler(_ contypes.Invocation) error { return nil }

func newSet(t *testing.T, name string, overloads ...contypes.Overload) *registry.CommandSet {
	t.Helper()
	reg := registry.New()
	for _, ov := range overloads {
		if ov.Handler == nil {
			ov.Handler = noopHandler
		}
		require.NoError(t, reg.RegisterCommand(name, ov))
	}
	set, ok := reg.FindCommand(name)
	require.True(t, ok)
	return set
}

func kinds(ks ...contypes.ParamKind) []contypes.ParamKind { return ks }

func TestBindConvertsPrimitiveKinds(t *testing.T) {
	set := newSet(t, "mix", contypes.Overload{
		Params: kinds(contypes.KindInt, contypes.KindBool, contypes.KindFloat, contypes.KindString),
	})

	_, vals, err := Bind(set, "5 true 3.14 hello")
	require.NoError(t, err)
	require.Len(t, vals, 4)
	assert.Equal(t, int64(5), vals[0].Int)
	assert.Equal(t, true, vals[1].Bool)
	assert.Equal(t, 3.14, vals[2].Float)
	assert.Equal(t, "hello", vals[3].Str)
}

func TestBindRoundTripMatchesDirectCall(t *testing.T) {
	direct := func(a, b int64) int64 { return a + b }

	var got int64
	set := newSet(t, "add", contypes.Overload{
		Params: kinds(contypes.KindInt, contypes.KindInt),
		Handler: func(inv contypes.Invocation) error {
			got = inv.Args[0].Int + inv.Args[1].Int
			return nil
		},
	})

	ov, vals, err := Bind(set, "5 37")
	require.NoError(t, err)
	require.NoError(t, ov.Handler(contypes.Invocation{Args: vals}))
	assert.Equal(t, direct(5, 37), got)
}

func TestBindPicksFirstConvertibleOverloadInRegistrationOrder(t *testing.T) {
	set := newSet(t, "foo",
		contypes.Overload{Params: kinds(contypes.KindString), Description: "string"},
		contypes.Overload{Params: kinds(contypes.KindInt), Description: "int"},
	)

	// "5" converts as a string too, so the earlier registration wins.
	ov, _, err := Bind(set, "5")
	require.NoError(t, err)
	assert.Equal(t, "string", ov.Description)
}

func TestBindSkipsOverloadOnConversionFailure(t *testing.T) {
	set := newSet(t, "foo",
		contypes.Overload{Params: kinds(contypes.KindInt), Description: "int"},
		contypes.Overload{Params: kinds(contypes.KindString), Description: "string"},
	)

	ov, _, err := Bind(set, "notanumber")
	require.NoError(t, err)
	assert.Equal(t, "string", ov.Description)
}

func TestBindQuotingAndEscapes(t *testing.T) {
	set := newSet(t, "foo", contypes.Overload{
		Params: kinds(contypes.KindString, contypes.KindString),
	})

	_, vals, err := Bind(set, `"a b" c`)
	require.NoError(t, err)
	assert.Equal(t, "a b", vals[0].Str)
	assert.Equal(t, "c", vals[1].Str)

	_, vals, err = Bind(set, `a\ b c`)
	require.NoError(t, err)
	assert.Equal(t, "a b", vals[0].Str)
	assert.Equal(t, "c", vals[1].Str)
}

func TestBindZeroArity(t *testing.T) {
	set := newSet(t, "ping", contypes.Overload{})

	_, vals, err := Bind(set, "")
	require.NoError(t, err)
	assert.Empty(t, vals)

	_, _, err = Bind(set, "extra")
	require.Error(t, err)
	assert.ErrorIs(t, err, contypes.ErrNoOverload)
}

func TestBindFallsBackToUnsplitText(t *testing.T) {
	set := newSet(t, "say", contypes.Overload{
		Params: kinds(contypes.KindString),
	})

	// Three unquoted tokens match no arity, so the whole text becomes
	// the single string argument.
	_, vals, err := Bind(set, "hello there world")
	require.NoError(t, err)
	require.Len(t, vals, 1)
	assert.Equal(t, "hello there world", vals[0].Str)
}

func TestBindFallbackAfterConversionFailure(t *testing.T) {
	set := newSet(t, "foo",
		contypes.Overload{Params: kinds(contypes.KindInt, contypes.KindInt), Description: "ints"},
		contypes.Overload{Params: kinds(contypes.KindString), Description: "string"},
	)

	// The int overload matches the split arity but "x" fails conversion;
	// the retry then hands the whole text to the one-string overload.
	ov, vals, err := Bind(set, "1 x")
	require.NoError(t, err)
	assert.Equal(t, "string", ov.Description)
	require.Len(t, vals, 1)
	assert.Equal(t, "1 x", vals[0].Str)
}

func TestBindFallbackDoesNotApplyToNonString(t *testing.T) {
	set := newSet(t, "add", contypes.Overload{
		Params: kinds(contypes.KindInt),
	})

	_, _, err := Bind(set, "1 2 3")
	require.Error(t, err)
	assert.ErrorIs(t, err, contypes.ErrNoOverload)
}

func TestConvertFailures(t *testing.T) {
	tests := []struct {
		token string
		kind  contypes.ParamKind
	}{
		{"abc", contypes.KindInt},
		{"1.5", contypes.KindInt},
		{"abc", contypes.KindFloat},
		{"yesplease", contypes.KindBool},
	}
	for _, tt := range tests {
		_, err := Convert(tt.token, tt.kind)
		assert.Error(t, err, "token %q as %s", tt.token, tt.kind)
	}
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "5", FormatValue(contypes.Value{Kind: contypes.KindInt, Int: 5}))
	assert.Equal(t, "3.14", FormatValue(contypes.Value{Kind: contypes.KindFloat, Float: 3.14}))
	assert.Equal(t, "true", FormatValue(contypes.Value{Kind: contypes.KindBool, Bool: true}))
	assert.Equal(t, "x", FormatValue(contypes.StringValue("x")))
}
