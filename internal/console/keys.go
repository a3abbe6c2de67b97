package console

import (
	"io"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"conshell/pkg/contypes"
)

// escTimeout bounds how long a lone ESC waits for sequence bytes before
// being reported as the Escape key.
const escTimeout = 25 * time.Millisecond

// termKeySource decodes raw terminal bytes into keystrokes. A reader
// goroutine pumps bytes from the terminal and a decoder goroutine turns
// them into contypes.Key values, so Available never blocks the render loop.
type termKeySource struct {
	bytes chan byte
	keys  chan contypes.Key
	done  atomic.Bool
}

func newTermKeySource(r io.Reader) *termKeySource {
	s := &termKeySource{
		bytes: make(chan byte, 256),
		keys:  make(chan contypes.Key, 64),
	}
	go s.pump(r)
	go s.decode()
	return s
}

// Available reports whether a decoded key is pending. It stays true once
// the input is exhausted so the caller reaches ReadKey's end-of-input
// report instead of polling forever.
func (s *termKeySource) Available() bool {
	return len(s.keys) > 0 || s.done.Load()
}

// ReadKey blocks until the next keystroke. io.EOF is reported as KeyEOF.
func (s *termKeySource) ReadKey() (contypes.Key, error) {
	k, ok := <-s.keys
	if !ok {
		return contypes.Key{Code: contypes.KeyEOF}, io.EOF
	}
	return k, nil
}

func (s *termKeySource) pump(r io.Reader) {
	defer close(s.bytes)
	buf := make([]byte, 256)
	for {
		n, err := r.Read(buf)
		for i := 0; i < n; i++ {
			s.bytes <- buf[i]
		}
		if err != nil {
			return
		}
	}
}

func (s *termKeySource) decode() {
	defer func() {
		s.done.Store(true)
		close(s.keys)
	}()
	for {
		b, ok := <-s.bytes
		if !ok {
			return
		}
		key, ok := s.decodeByte(b)
		if !ok {
			return
		}
		s.keys <- key
	}
}

func (s *termKeySource) decodeByte(b byte) (contypes.Key, bool) {
	switch b {
	case '\r', '\n':
		return contypes.Key{Code: contypes.KeyEnter}, true
	case '\t':
		return contypes.Key{Code: contypes.KeyTab}, true
	case 0x7f, 0x08:
		return contypes.Key{Code: contypes.KeyBackspace}, true
	case 0x03:
		return contypes.Key{Code: contypes.KeyCtrlC}, true
	case 0x04:
		return contypes.Key{Code: contypes.KeyEOF}, true
	case 0x01: // Ctrl+A
		return contypes.Key{Code: contypes.KeyHome}, true
	case 0x05: // Ctrl+E
		return contypes.Key{Code: contypes.KeyEnd}, true
	case 0x1b:
		return s.decodeEscape()
	}

	if b < 0x20 {
		// Remaining control characters map to their letter with Ctrl.
		return contypes.Key{Code: contypes.KeyRune, Rune: rune('a' + b - 1), Mod: contypes.ModCtrl}, true
	}
	return s.decodeRune(b)
}

// decodeRune assembles a UTF-8 sequence starting at b.
func (s *termKeySource) decodeRune(b byte) (contypes.Key, bool) {
	if b < utf8.RuneSelf {
		return contypes.Key{Code: contypes.KeyRune, Rune: rune(b)}, true
	}
	buf := []byte{b}
	for !utf8.FullRune(buf) && len(buf) < utf8.UTFMax {
		nb, ok := <-s.bytes
		if !ok {
			return contypes.Key{}, false
		}
		buf = append(buf, nb)
	}
	r, _ := utf8.DecodeRune(buf)
	return contypes.Key{Code: contypes.KeyRune, Rune: r}, true
}

// decodeEscape handles ESC-prefixed sequences. A lone ESC that is not
// followed by sequence bytes within the timeout is the Escape key itself.
func (s *termKeySource) decodeEscape() (contypes.Key, bool) {
	b, ok := s.nextByte(escTimeout)
	if !ok {
		return contypes.Key{Code: contypes.KeyEscape}, true
	}

	switch b {
	case '[':
		return s.decodeCSI()
	case 'O':
		if fb, ok := s.nextByte(escTimeout); ok {
			switch fb {
			case 'H':
				return contypes.Key{Code: contypes.KeyHome}, true
			case 'F':
				return contypes.Key{Code: contypes.KeyEnd}, true
			}
		}
		return contypes.Key{Code: contypes.KeyEscape}, true
	case 'b':
		return contypes.Key{Code: contypes.KeyLeft, Mod: contypes.ModAlt}, true
	case 'f':
		return contypes.Key{Code: contypes.KeyRight, Mod: contypes.ModAlt}, true
	default:
		return contypes.Key{Code: contypes.KeyRune, Rune: rune(b), Mod: contypes.ModAlt}, true
	}
}

// decodeCSI parses "ESC [ params final" cursor sequences, including the
// ";5" modifier parameter xterm uses for Ctrl-arrows.
func (s *termKeySource) decodeCSI() (contypes.Key, bool) {
	var params []byte
	for {
		b, ok := s.nextByte(escTimeout)
		if !ok {
			return contypes.Key{Code: contypes.KeyEscape}, true
		}
		if b >= '0' && b <= '9' || b == ';' {
			params = append(params, b)
			continue
		}
		return csiKey(string(params), b), true
	}
}

func csiKey(params string, final byte) contypes.Key {
	mod := csiMod(params)
	switch final {
	case 'A':
		return contypes.Key{Code: contypes.KeyUp, Mod: mod}
	case 'B':
		return contypes.Key{Code: contypes.KeyDown, Mod: mod}
	case 'C':
		return contypes.Key{Code: contypes.KeyRight, Mod: mod}
	case 'D':
		return contypes.Key{Code: contypes.KeyLeft, Mod: mod}
	case 'H':
		return contypes.Key{Code: contypes.KeyHome}
	case 'F':
		return contypes.Key{Code: contypes.KeyEnd}
	case '~':
		switch params {
		case "1", "7":
			return contypes.Key{Code: contypes.KeyHome}
		case "3":
			return contypes.Key{Code: contypes.KeyDelete}
		case "4", "8":
			return contypes.Key{Code: contypes.KeyEnd}
		}
	}
	return contypes.Key{Code: contypes.KeyEscape}
}

// csiMod maps the xterm modifier parameter: 2=Shift, 3=Alt, 5=Ctrl and
// combinations thereof (value-1 is a bitmask).
func csiMod(params string) contypes.Mod {
	idx := -1
	for i := 0; i < len(params); i++ {
		if params[i] == ';' {
			idx = i
			break
		}
	}
	if idx < 0 || idx+1 >= len(params) {
		return 0
	}
	n := 0
	for _, c := range params[idx+1:] {
		if c < '0' || c > '9' {
			return 0
		}
		n = n*10 + int(c-'0')
	}
	if n < 2 {
		return 0
	}
	bits := n - 1
	var mod contypes.Mod
	if bits&1 != 0 {
		mod |= contypes.ModShift
	}
	if bits&2 != 0 {
		mod |= contypes.ModAlt
	}
	if bits&4 != 0 {
		mod |= contypes.ModCtrl
	}
	return mod
}

func (s *termKeySource) nextByte(timeout time.Duration) (byte, bool) {
	select {
	case b, ok := <-s.bytes:
		return b, ok
	case <-time.After(timeout):
		return 0, false
	}
}
