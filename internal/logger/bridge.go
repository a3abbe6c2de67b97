package logger

import (
	"fmt"
	"sync/atomic"
	"time"

	"conshell/pkg/contypes"
)

// Bridge routes leveled messages into a console output sink as immutable
// records, carrying an indentation scope so nested operations read as a
// tree. Messages are also mirrored to the structured logger at debug level
// so a --log-file capture stays complete. A Bridge is safe for concurrent
// use by command bodies and application goroutines.
type Bridge struct {
	sink   contypes.OutputSink
	indent int32
}

// NewBridge wraps an output sink as a leveled message target.
func NewBridge(sink contypes.OutputSink) *Bridge {
	return &Bridge{sink: sink}
}

// Indent opens one nesting level for subsequent records.
func (b *Bridge) Indent() {
	atomic.AddInt32(&b.indent, 1)
}

// Outdent closes the innermost nesting level.
func (b *Bridge) Outdent() {
	for {
		cur := atomic.LoadInt32(&b.indent)
		if cur == 0 {
			return
		}
		if atomic.CompareAndSwapInt32(&b.indent, cur, cur-1) {
			return
		}
	}
}

func (b *Bridge) emit(sev contypes.Severity, text string, err error, hl contypes.Highlight) {
	b.sink.Emit(contypes.ConsoleRecord{
		Time:      time.Now(),
		Severity:  sev,
		Indent:    int(atomic.LoadInt32(&b.indent)),
		Text:      text,
		Err:       err,
		Highlight: hl,
	})
}

// Debugf emits a debug record.
func (b *Bridge) Debugf(format string, args ...interface{}) {
	b.emit(contypes.SeverityDebug, fmt.Sprintf(format, args...), nil, contypes.HighlightPlain)
	Debug(fmt.Sprintf(format, args...))
}

// Infof emits an informational record.
func (b *Bridge) Infof(format string, args ...interface{}) {
	b.emit(contypes.SeverityInfo, fmt.Sprintf(format, args...), nil, contypes.HighlightPlain)
}

// Warnf emits a warning record.
func (b *Bridge) Warnf(format string, args ...interface{}) {
	b.emit(contypes.SeverityWarn, fmt.Sprintf(format, args...), nil, contypes.HighlightPlain)
}

// Errorf emits an error record with optional detail.
func (b *Bridge) Errorf(err error, format string, args ...interface{}) {
	b.emit(contypes.SeverityError, fmt.Sprintf(format, args...), err, contypes.HighlightPlain)
}

// Milestone emits a highlighted progress record.
func (b *Bridge) Milestone(format string, args ...interface{}) {
	b.emit(contypes.SeverityInfo, fmt.Sprintf(format, args...), nil, contypes.HighlightMilestone)
}
