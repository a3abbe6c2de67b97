package console

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"conshell/pkg/contypes"
)

// ANSI fragments used for the redraw math. The terminal is in raw mode, so
// every line break is written as CRLF explicitly.
const (
	eraseLine   = "\r\x1b[2K"
	clearScreen = "\x1b[2J\x1b[H"
	crlf        = "\r\n"
)

// painter owns all screen writes. Only the console loop goroutine calls it,
// which is what keeps output from tearing; the mutex exists solely for the
// best-effort exit restore that may fire from a signal handler.
type painter struct {
	mu           sync.Mutex
	w            io.Writer
	plain        bool
	inputVisible bool

	promptStyle    lipgloss.Style
	echoStyle      lipgloss.Style
	milestoneStyle lipgloss.Style
	debugStyle     lipgloss.Style
	warnStyle      lipgloss.Style
	errorStyle     lipgloss.Style
}

func newPainter(w io.Writer, plain bool) *painter {
	if !plain {
		// Honor NO_COLOR and dumb terminals the same way the logger does.
		plain = termenv.EnvColorProfile() == termenv.Ascii
	}
	return &painter{
		w:              w,
		plain:          plain,
		promptStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("45")).Bold(true),
		echoStyle:      lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
		milestoneStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
		debugStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		warnStyle:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		errorStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

// writeRecord renders one output record on its own line. The input area
// must be hidden before records are written.
func (p *painter) writeRecord(rec contypes.ConsoleRecord) {
	text := strings.Repeat("  ", rec.Indent) + rec.Text
	if rec.Err != nil && !strings.Contains(rec.Text, rec.Err.Error()) {
		text += " (" + rec.Err.Error() + ")"
	}

	if !p.plain {
		switch {
		case rec.Highlight == contypes.HighlightEcho:
			text = p.echoStyle.Render(text)
		case rec.Highlight == contypes.HighlightMilestone:
			text = p.milestoneStyle.Render(text)
		case rec.Severity == contypes.SeverityError:
			text = p.errorStyle.Render(text)
		case rec.Severity == contypes.SeverityWarn:
			text = p.warnStyle.Render(text)
		case rec.Severity == contypes.SeverityDebug:
			text = p.debugStyle.Render(text)
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprint(p.w, eraseLine+text+crlf)
}

// showInput redraws the prompt and edit buffer in place and positions the
// cursor by column arithmetic: paint the full line, then step the cursor
// left by the display width of everything after the logical cursor.
func (p *painter) showInput(prompt string, line *Line) {
	text := line.String()
	rendered := prompt + text
	if !p.plain {
		rendered = p.promptStyle.Render(prompt) + text
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprint(p.w, eraseLine+rendered)
	if back := ansi.StringWidth(string([]rune(text)[line.Cursor():])); back > 0 {
		fmt.Fprintf(p.w, "\x1b[%dD", back)
	}
	p.inputVisible = true
}

// hideInput erases the input area so records can be written above it.
func (p *painter) hideInput() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.inputVisible {
		return
	}
	fmt.Fprint(p.w, eraseLine)
	p.inputVisible = false
}

// clear wipes the whole screen region.
func (p *painter) clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprint(p.w, clearScreen)
	p.inputVisible = false
}

// restore erases any visible input and resets terminal color and cursor
// state. Safe to call more than once and from exit paths.
func (p *painter) restore() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.inputVisible {
		fmt.Fprint(p.w, eraseLine)
		p.inputVisible = false
	}
	fmt.Fprint(p.w, "\x1b[0m\x1b[?25h")
}
