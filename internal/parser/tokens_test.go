package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"spaces only", "   ", nil},
		{"single token", "hello", []string{"hello"}},
		{"plain split", "a b c", []string{"a", "b", "c"}},
		{"collapsed delimiters", "a   b", []string{"a", "b"}},
		{"double quoted run", `"a b" c`, []string{"a b", "c"}},
		{"single quoted run", `'a b' c`, []string{"a b", "c"}},
		{"escaped space", `a\ b c`, []string{"a b", "c"}},
		{"escaped quote", `say \"hi\"`, []string{"say", `"hi"`}},
		{"mixed quotes keep other literal", `"it's" fine`, []string{"it's", "fine"}},
		{"quotes do not nest", `"a 'b' c"`, []string{"a 'b' c"}},
		{"unmatched trailing quote swallows rest", `foo "bar baz`, []string{"foo", "bar baz"}},
		{"quote mid token", `a"b c"d`, []string{"ab cd"}},
		{"empty quoted token", `"" x`, []string{"", "x"}},
		{"backslash before other rune stays", `a\b`, []string{`a\b`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitArgs(tt.input))
		})
	}
}

func TestSplitHead(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantHead string
		wantRest string
	}{
		{"no space", "echo", "echo", ""},
		{"simple", "echo hello world", "echo", "hello world"},
		{"escaped space joins head", `my\ cmd arg`, "my cmd", "arg"},
		{"rest keeps internal spacing", "echo  a  b", "echo", "a  b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			head, rest := splitHead(tt.input)
			assert.Equal(t, tt.wantHead, head)
			assert.Equal(t, tt.wantRest, rest)
		})
	}
}
