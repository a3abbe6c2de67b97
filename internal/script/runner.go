// Package script executes command files: each line is fed through the
// parser and dispatcher exactly as if typed, with blank lines and '#'
// comments skipped. It is a convenience wrapper over the same pipeline the
// interactive console uses.
package script

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"conshell/internal/dispatch"
	"conshell/internal/logger"
	"conshell/pkg/contypes"
)

// Runner replays script files through a dispatcher.
type Runner struct {
	disp *dispatch.Dispatcher
	out  contypes.OutputSink
	log  *log.Logger
}

// NewRunner creates a runner over an existing dispatcher and sink.
func NewRunner(disp *dispatch.Dispatcher, out contypes.OutputSink) *Runner {
	return &Runner{
		disp: disp,
		out:  out,
		log:  logger.NewStyledLogger("Script"),
	}
}

// RunFile executes every command line in the file, echoing each before
// dispatch. Individual command failures are reported through the sink and
// counted; only an unreadable file aborts the run.
func (r *Runner) RunFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open script file: %w", err)
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	lineNum := 0
	failures := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		r.out.Emit(contypes.ConsoleRecord{
			Time:      time.Now(),
			Severity:  contypes.SeverityInfo,
			Text:      "> " + line,
			Highlight: contypes.HighlightEcho,
		})
		if !r.disp.Run(line) {
			failures++
			r.log.Debug("script line failed", "file", path, "line", lineNum, "input", line)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading script file: %w", err)
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d lines failed in %s", failures, lineNum, path)
	}
	return nil
}
