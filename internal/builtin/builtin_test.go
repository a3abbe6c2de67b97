package builtin

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conshell/internal/dispatch"
	"conshell/internal/registry"
	"conshell/pkg/contypes"
)

type captureSink struct {
	mu      sync.Mutex
	texts   []string
	cleared int
}

func (s *captureSink) Emit(rec contypes.ConsoleRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts = append(s.texts, rec.Text)
}

func (s *captureSink) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleared++
}

func newFixture(t *testing.T, hooks Hooks) (*dispatch.Dispatcher, *captureSink) {
	t.Helper()
	reg := registry.New()
	require.NoError(t, Register(reg, "1.2.3", hooks))
	reg.MarkReady()
	sink := &captureSink{}
	return dispatch.New(reg, sink, context.Background()), sink
}

func TestVersionVariableIsReadOnly(t *testing.T) {
	disp, sink := newFixture(t, Hooks{})

	require.True(t, disp.Run("version"))
	assert.Contains(t, sink.texts, "version=1.2.3")

	require.False(t, disp.Run("version=2.0.0"))
}

func TestEchoOverloads(t *testing.T) {
	disp, sink := newFixture(t, Hooks{})

	require.True(t, disp.Run(`echo "one two"`))
	assert.Equal(t, []string{"one two"}, sink.texts)

	sink.texts = nil
	require.True(t, disp.Run("echo hey 3"))
	assert.Equal(t, []string{"hey", "hey", "hey"}, sink.texts)
}

func TestClearSignalsSink(t *testing.T) {
	disp, sink := newFixture(t, Hooks{})

	require.True(t, disp.Run("clear"))
	assert.Equal(t, 1, sink.cleared)
}

func TestHistoryCommandNumbersEntries(t *testing.T) {
	disp, sink := newFixture(t, Hooks{
		History: func() []string { return []string{"first", "second"} },
	})

	require.True(t, disp.Run("history"))
	require.Len(t, sink.texts, 2)
	assert.Contains(t, sink.texts[0], "1  first")
	assert.Contains(t, sink.texts[1], "2  second")
}

func TestQuitAndHistoryAbsentWithoutHooks(t *testing.T) {
	disp, _ := newFixture(t, Hooks{})

	assert.False(t, disp.Run("quit"))
	assert.False(t, disp.Run("history"))
}

func TestQuitInvokesHook(t *testing.T) {
	quit := false
	disp, _ := newFixture(t, Hooks{Quit: func() { quit = true }})

	require.True(t, disp.Run("quit"))
	assert.True(t, quit)
}

func TestPromptVariableRoundTrip(t *testing.T) {
	prompt := "> "
	disp, sink := newFixture(t, Hooks{
		Prompt:    func() string { return prompt },
		SetPrompt: func(text string) { prompt = text },
	})

	require.True(t, disp.Run("prompt=db >"))
	assert.Equal(t, "db >", prompt)

	require.True(t, disp.Run("prompt"))
	assert.Contains(t, sink.texts, "prompt=db >")
}

func TestSleepHonorsCancelledContext(t *testing.T) {
	reg := registry.New()
	require.NoError(t, Register(reg, "1.2.3", Hooks{}))
	reg.MarkReady()
	sink := &captureSink{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	disp := dispatch.New(reg, sink, ctx)

	assert.False(t, disp.Run("sleep 60000"), "cancelled session aborts the wait")
}
