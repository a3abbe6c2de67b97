package script

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"conshell/pkg/contypes"
)

// WriterSink is a synchronous output sink for batch runs: records go
// straight to a writer in arrival order with no prompt region to protect.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink wraps a writer as an output sink.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Emit writes one record as a line, prefixing warnings and errors so batch
// logs stay scannable without color.
func (s *WriterSink) Emit(rec contypes.ConsoleRecord) {
	text := strings.Repeat("  ", rec.Indent) + rec.Text
	if rec.Err != nil && !strings.Contains(rec.Text, rec.Err.Error()) {
		text += " (" + rec.Err.Error() + ")"
	}
	switch rec.Severity {
	case contypes.SeverityWarn, contypes.SeverityError:
		text = rec.Severity.String() + " " + text
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.w, text)
}

// Clear is a no-op for sequential writers.
func (s *WriterSink) Clear() {}
