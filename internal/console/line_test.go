package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func typeString(l *Line, s string) {
	for _, r := range s {
		l.Insert(r)
	}
}

func TestLineInsertAndCursor(t *testing.T) {
	l := &Line{}
	typeString(l, "hello")
	assert.Equal(t, "hello", l.String())
	assert.Equal(t, 5, l.Cursor())

	l.Home()
	l.Insert('>')
	assert.Equal(t, ">hello", l.String())
	assert.Equal(t, 1, l.Cursor())

	l.Right()
	l.Insert('!')
	assert.Equal(t, ">h!ello", l.String())
}

func TestLineBackspaceAndDelete(t *testing.T) {
	l := &Line{}
	typeString(l, "abc")

	assert.True(t, l.Backspace())
	assert.Equal(t, "ab", l.String())

	l.Home()
	assert.False(t, l.Backspace(), "backspace at start is a no-op")
	assert.True(t, l.Delete())
	assert.Equal(t, "b", l.String())

	l.End()
	assert.False(t, l.Delete(), "delete at end is a no-op")
}

func TestLineWordMovement(t *testing.T) {
	l := &Line{}
	typeString(l, "foo bar  baz")

	l.WordLeft()
	assert.Equal(t, 9, l.Cursor(), "to start of baz")
	l.WordLeft()
	assert.Equal(t, 4, l.Cursor(), "to start of bar")
	l.WordLeft()
	assert.Equal(t, 0, l.Cursor(), "to start of line")
	l.WordLeft()
	assert.Equal(t, 0, l.Cursor(), "stays at start")

	l.WordRight()
	assert.Equal(t, 4, l.Cursor(), "past foo and its space")
	l.WordRight()
	assert.Equal(t, 9, l.Cursor(), "past bar and the space run")
	l.WordRight()
	assert.Equal(t, 12, l.Cursor(), "to end of line")
}

func TestLineSetMovesCursorToEnd(t *testing.T) {
	l := &Line{}
	typeString(l, "abc")
	l.Home()

	l.Set("replaced wholesale")
	assert.Equal(t, "replaced wholesale", l.String())
	assert.Equal(t, l.Len(), l.Cursor())
}

func TestLineClear(t *testing.T) {
	l := &Line{}
	typeString(l, "abc")
	l.Clear()
	assert.Equal(t, "", l.String())
	assert.Equal(t, 0, l.Cursor())
}
