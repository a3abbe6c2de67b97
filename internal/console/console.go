// Package console implements the interactive console loop: a dedicated
// goroutine that polls keystrokes, maintains an editable input line with
// history and tab-completion, and drains a bounded output queue, repainting
// the prompt region so concurrent command output never tears the display.
package console

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/term"

	"conshell/internal/complete"
	"conshell/internal/dispatch"
	"conshell/internal/logger"
	"conshell/internal/registry"
	"conshell/pkg/contypes"
)

// State identifies the console loop's rendering state.
type State int

// Console loop states.
const (
	StateIdle State = iota
	StateShowingPrompt
	StateDrainingOutput
	StateExecuting
)

// Options configures a console session. Zero values select the defaults.
type Options struct {
	Prompt        string
	QueueCapacity int
	HistorySize   int
	Input         io.Reader
	Output        io.Writer
	Keys          contypes.KeySource
	RawMode       bool
	Plain         bool
}

func (o *Options) withDefaults() {
	if o.Prompt == "" {
		o.Prompt = "> "
	}
	if o.QueueCapacity == 0 {
		o.QueueCapacity = 256
	}
	if o.HistorySize == 0 {
		o.HistorySize = 500
	}
	if o.Input == nil {
		o.Input = os.Stdin
	}
	if o.Output == nil {
		o.Output = os.Stdout
	}
}

// Console is one interactive session over a registry. The session owns the
// terminal for its lifetime: all screen writes and all input-line mutation
// happen on the goroutine running Run.
type Console struct {
	reg     *registry.Registry
	opts    Options
	queue   *Queue
	keys    contypes.KeySource
	painter *painter
	disp    *dispatch.Dispatcher
	hist    *History
	line    *Line
	state   State
	log     *log.Logger

	sessionID string
	ctx       context.Context
	cancel    context.CancelFunc

	started     atomic.Bool
	stopOnce    sync.Once
	stopCh      chan struct{}
	inflight    atomic.Int32
	prompt      atomic.Value // string; settable from command bodies
	restoreTerm func()

	// Tab-completion cursor: the partial text captured at the first Tab
	// and the last suggestion offered. Any non-Tab key disarms it.
	tabBase        string
	lastSuggestion string
	tabArmed       bool
}

// New creates a console session. The session's cancellation context is
// passed into every command invocation and triggered on teardown.
func New(reg *registry.Registry, opts Options) *Console {
	opts.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())
	queue := NewQueue(opts.QueueCapacity)
	c := &Console{
		reg:       reg,
		opts:      opts,
		queue:     queue,
		painter:   newPainter(opts.Output, opts.Plain),
		disp:      dispatch.New(reg, queue, ctx),
		hist:      NewHistory(opts.HistorySize),
		line:      &Line{},
		log:       logger.NewStyledLogger("Console"),
		sessionID: uuid.NewString(),
		ctx:       ctx,
		cancel:    cancel,
		stopCh:    make(chan struct{}),
	}
	c.prompt.Store(opts.Prompt)
	return c
}

// Prompt returns the current prompt text.
func (c *Console) Prompt() string {
	return c.prompt.Load().(string)
}

// SetPrompt changes the prompt text. The new prompt appears on the next
// repaint; callers may change it from any goroutine.
func (c *Console) SetPrompt(text string) {
	c.prompt.Store(text)
}

// Sink returns the output sink feeding this session's render queue.
func (c *Console) Sink() contypes.OutputSink {
	return c.queue
}

// Context returns the session's cancellation context.
func (c *Console) Context() context.Context {
	return c.ctx
}

// State returns the loop's current rendering state.
func (c *Console) State() State {
	return c.state
}

// History exposes the session's history, mainly for the history builtin.
func (c *Console) History() *History {
	return c.hist
}

// Stop requests session teardown. The cancellation signal reaches in-flight
// command bodies; uncooperative ones are not forcibly killed.
func (c *Console) Stop() {
	c.stopOnce.Do(func() {
		c.cancel()
		close(c.stopCh)
	})
}

// Restore performs best-effort terminal restoration: erase the input area,
// reset colors, show the cursor and leave raw mode. It is safe to call from
// process-exit paths even while the loop is running.
func (c *Console) Restore() {
	c.painter.restore()
	if c.restoreTerm != nil {
		c.restoreTerm()
	}
}

// Run executes the console loop on the calling goroutine until Stop or
// end-of-input. Starting a session twice is programmer misuse and returns
// ErrConsoleStarted.
func (c *Console) Run() error {
	if !c.started.CompareAndSwap(false, true) {
		return contypes.ErrConsoleStarted
	}

	if err := c.enterRawMode(); err != nil {
		return err
	}
	defer c.Restore()

	c.keys = c.opts.Keys
	if c.keys == nil {
		c.keys = newTermKeySource(c.opts.Input)
	}

	c.log.Debug("console session started", "session", c.sessionID)

	c.state = StateShowingPrompt
	c.painter.showInput(c.Prompt(), c.line)

	idle := 0
	for {
		select {
		case <-c.stopCh:
			c.state = StateIdle
			c.log.Debug("console session stopped", "session", c.sessionID, "inflight", c.inflight.Load())
			return nil
		default:
		}

		busy := c.drainOutput()

		for c.keys.Available() {
			key, err := c.keys.ReadKey()
			if err != nil {
				c.Stop()
				break
			}
			busy = true
			c.handleKey(key)
		}

		if busy {
			idle = 0
		} else {
			idle++
		}
		time.Sleep(drainInterval(idle))
	}
}

// drainInterval grows the poll sleep during quiet periods to avoid CPU spin
// and shrinks it while keys or records are flowing.
func drainInterval(idle int) time.Duration {
	d := 2*time.Millisecond + time.Duration(idle/8)*4*time.Millisecond
	if d > 40*time.Millisecond {
		d = 40 * time.Millisecond
	}
	return d
}

func (c *Console) enterRawMode() error {
	if !c.opts.RawMode {
		return nil
	}
	f, ok := c.opts.Input.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return nil
	}
	old, err := term.MakeRaw(int(f.Fd()))
	if err != nil {
		return err
	}
	c.restoreTerm = func() { _ = term.Restore(int(f.Fd()), old) }
	return nil
}

// drainOutput hides the input area, writes every queued record in arrival
// order and repaints the prompt. Reports whether anything was written.
func (c *Console) drainOutput() bool {
	if c.queue.clearRequested() {
		c.painter.clear()
		c.painter.showInput(c.Prompt(), c.line)
		return true
	}
	if c.queue.pending() == 0 {
		return false
	}

	c.state = StateDrainingOutput
	c.painter.hideInput()
	for {
		rec, ok := c.queue.poll()
		if !ok {
			break
		}
		c.painter.writeRecord(rec)
	}
	c.painter.showInput(c.Prompt(), c.line)
	c.state = StateShowingPrompt
	return true
}

func (c *Console) handleKey(key contypes.Key) {
	if key.Code != contypes.KeyTab {
		c.tabArmed = false
	}

	switch key.Code {
	case contypes.KeyEnter:
		c.submit()
		return
	case contypes.KeyTab:
		c.completeTab()
		return
	case contypes.KeyRune:
		if key.Mod&contypes.ModCtrl != 0 {
			return
		}
		c.line.Insert(key.Rune)
	case contypes.KeyBackspace:
		if !c.line.Backspace() {
			return
		}
	case contypes.KeyDelete:
		if !c.line.Delete() {
			return
		}
	case contypes.KeyLeft:
		if key.Mod&(contypes.ModCtrl|contypes.ModAlt) != 0 {
			c.line.WordLeft()
		} else {
			c.line.Left()
		}
	case contypes.KeyRight:
		if key.Mod&(contypes.ModCtrl|contypes.ModAlt) != 0 {
			c.line.WordRight()
		} else {
			c.line.Right()
		}
	case contypes.KeyHome:
		c.line.Home()
	case contypes.KeyEnd:
		c.line.End()
	case contypes.KeyUp:
		if text, ok := c.hist.Prev(); ok {
			c.line.Set(text)
		}
	case contypes.KeyDown:
		if text, ok := c.hist.Next(); ok {
			c.line.Set(text)
		}
	case contypes.KeyEscape:
		c.line.Clear()
	case contypes.KeyCtrlC:
		if c.line.Len() > 0 {
			c.line.Clear()
		} else {
			c.Stop()
			return
		}
	case contypes.KeyEOF:
		c.Stop()
		return
	default:
		return
	}

	c.painter.showInput(c.Prompt(), c.line)
}

// submit echoes the entered line, records it in history and hands it to the
// dispatcher on a background goroutine. The loop never awaits the command:
// its output arrives through the queue whenever it completes.
func (c *Console) submit() {
	text := strings.TrimSpace(c.line.String())
	c.line.Clear()
	c.tabArmed = false

	c.state = StateDrainingOutput
	c.painter.hideInput()
	if text == "" {
		c.painter.showInput(c.Prompt(), c.line)
		c.state = StateShowingPrompt
		return
	}

	c.hist.Add(text)
	c.painter.writeRecord(contypes.ConsoleRecord{
		Time:      time.Now(),
		Severity:  contypes.SeverityInfo,
		Text:      c.Prompt() + text,
		Highlight: contypes.HighlightEcho,
	})

	c.state = StateExecuting
	c.inflight.Add(1)
	go func() {
		defer c.inflight.Add(-1)
		c.disp.Run(text)
	}()

	c.painter.showInput(c.Prompt(), c.line)
	c.state = StateShowingPrompt
}

func (c *Console) completeTab() {
	if !c.tabArmed {
		c.tabBase = c.line.String()
		c.lastSuggestion = ""
		c.tabArmed = true
	}
	next := complete.Next(c.reg, c.tabBase, c.lastSuggestion)
	if next == "" {
		return
	}
	c.lastSuggestion = next
	c.line.Set(next)
	c.painter.showInput(c.Prompt(), c.line)
}
