package contypes

import "time"

// Severity classifies a console record for styling and filtering.
type Severity int

// Severity levels in ascending order.
const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarn
	SeverityError
)

// String returns the short label rendered by the console loop.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "DBG"
	case SeverityInfo:
		return "INF"
	case SeverityWarn:
		return "WRN"
	case SeverityError:
		return "ERR"
	default:
		return "???"
	}
}

// Highlight classifies a record for presentation only; it never affects
// control flow.
type Highlight int

const (
	// HighlightPlain is ordinary output.
	HighlightPlain Highlight = iota
	// HighlightEcho marks an echoed user command line.
	HighlightEcho
	// HighlightMilestone marks a notable progress line.
	HighlightMilestone
)

// ConsoleRecord is one immutable log line ready for display. Records are
// consumed strictly in arrival order by the render loop and never mutated
// after creation.
type ConsoleRecord struct {
	Time      time.Time
	Severity  Severity
	Indent    int
	Text      string
	Err       error
	Highlight Highlight
}

// OutputSink receives console records from the dispatcher, command bodies
// and the logging bridge. Implementations must be safe for concurrent use
// by arbitrary producer goroutines.
type OutputSink interface {
	// Emit enqueues one record for display, blocking briefly when the
	// sink is saturated rather than dropping.
	Emit(rec ConsoleRecord)
	// Clear discards any displayable backlog and resets the screen region.
	Clear()
}

// Line is a convenience constructor for a plain informational record.
func Line(text string) ConsoleRecord {
	return ConsoleRecord{Time: time.Now(), Severity: SeverityInfo, Text: text}
}

// ErrorLine builds an error record carrying optional error detail.
func ErrorLine(text string, err error) ConsoleRecord {
	return ConsoleRecord{Time: time.Now(), Severity: SeverityError, Text: text, Err: err}
}
