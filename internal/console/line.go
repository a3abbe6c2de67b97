package console

// Line is the in-progress edit buffer: text plus cursor offset. It is
// mutated only by the console loop's own goroutine, so no locking applies.
type Line struct {
	buf    []rune
	cursor int
}

// String returns the buffered text.
func (l *Line) String() string {
	return string(l.buf)
}

// Len returns the rune length of the buffer.
func (l *Line) Len() int {
	return len(l.buf)
}

// Cursor returns the cursor offset in runes from the start of the buffer.
func (l *Line) Cursor() int {
	return l.cursor
}

// Set replaces the buffer wholesale and moves the cursor to the end, the
// behavior history recall and tab-completion share.
func (l *Line) Set(text string) {
	l.buf = []rune(text)
	l.cursor = len(l.buf)
}

// Clear empties the buffer.
func (l *Line) Clear() {
	l.buf = l.buf[:0]
	l.cursor = 0
}

// Insert places a rune at the cursor and advances it.
func (l *Line) Insert(r rune) {
	l.buf = append(l.buf, 0)
	copy(l.buf[l.cursor+1:], l.buf[l.cursor:])
	l.buf[l.cursor] = r
	l.cursor++
}

// Backspace removes the rune before the cursor, reporting whether anything
// changed.
func (l *Line) Backspace() bool {
	if l.cursor == 0 {
		return false
	}
	copy(l.buf[l.cursor-1:], l.buf[l.cursor:])
	l.buf = l.buf[:len(l.buf)-1]
	l.cursor--
	return true
}

// Delete removes the rune at the cursor, reporting whether anything
// changed.
func (l *Line) Delete() bool {
	if l.cursor >= len(l.buf) {
		return false
	}
	copy(l.buf[l.cursor:], l.buf[l.cursor+1:])
	l.buf = l.buf[:len(l.buf)-1]
	return true
}

// Left moves the cursor one rune left.
func (l *Line) Left() {
	if l.cursor > 0 {
		l.cursor--
	}
}

// Right moves the cursor one rune right.
func (l *Line) Right() {
	if l.cursor < len(l.buf) {
		l.cursor++
	}
}

// Home moves the cursor to the start of the line.
func (l *Line) Home() {
	l.cursor = 0
}

// End moves the cursor past the last rune.
func (l *Line) End() {
	l.cursor = len(l.buf)
}

// WordLeft scans backward past any spaces, then to just after the previous
// space, treating whitespace as the only word boundary.
func (l *Line) WordLeft() {
	for l.cursor > 0 && l.buf[l.cursor-1] == ' ' {
		l.cursor--
	}
	for l.cursor > 0 && l.buf[l.cursor-1] != ' ' {
		l.cursor--
	}
}

// WordRight scans forward to the next space, then past any run of spaces.
func (l *Line) WordRight() {
	for l.cursor < len(l.buf) && l.buf[l.cursor] != ' ' {
		l.cursor++
	}
	for l.cursor < len(l.buf) && l.buf[l.cursor] == ' ' {
		l.cursor++
	}
}
