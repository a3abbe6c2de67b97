package contypes

// KeyCode identifies a decoded keystroke independent of the terminal's
// escape-sequence encoding.
type KeyCode int

// Key codes the console loop reacts to. KeyRune carries a printable rune.
const (
	KeyRune KeyCode = iota
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyEscape
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyCtrlC
	KeyEOF
)

// Mod is a bitmask of modifier flags on a keystroke.
type Mod uint8

// Modifier flags.
const (
	ModCtrl Mod = 1 << iota
	ModAlt
	ModShift
)

// Key is one decoded keystroke.
type Key struct {
	Code KeyCode
	Rune rune
	Mod  Mod
}

// KeySource abstracts the raw terminal input layer. Available reports
// without blocking whether a decoded key is pending; ReadKey blocks until
// one arrives. The console loop is the sole caller.
type KeySource interface {
	Available() bool
	ReadKey() (Key, error)
}
