package rod

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/sitecrawl"
	"github.com/go-rod/rod/lib/proto"
)

// consoleSource is the sitecrawl.LogLine source of console API calls.
// Browser log entries keep the source Chrome reports, such as "network".
const consoleSource = "console-api"

// logBuffer collects log lines delivered on the browser event goroutine.
type logBuffer struct {
	mu    sync.Mutex
	lines []sitecrawl.LogLine
	now   func() time.Time
}

func newLogBuffer() *logBuffer {
	return &logBuffer{now: time.Now}
}

func (b *logBuffer) append(line sitecrawl.LogLine) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = append(b.lines, line)
}

// consoleCalled records a console.log style call.
func (b *logBuffer) consoleCalled(e *proto.RuntimeConsoleAPICalled) {
	b.append(sitecrawl.LogLine{
		Level:     string(e.Type),
		Source:    consoleSource,
		Message:   consoleMessage(e.Args),
		Timestamp: b.now(),
	})
}

// entryAdded records a browser log entry such as a failed resource load.
func (b *logBuffer) entryAdded(e *proto.LogEntryAdded) {
	if e.Entry == nil {
		return
	}
	msg := e.Entry.Text
	if e.Entry.URL != "" {
		msg += " (" + e.Entry.URL + ")"
	}
	b.append(sitecrawl.LogLine{
		Level:     string(e.Entry.Level),
		Source:    string(e.Entry.Source),
		Message:   msg,
		Timestamp: b.now(),
	})
}

// snapshot returns a copy of the collected lines.
func (b *logBuffer) snapshot() []sitecrawl.LogLine {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]sitecrawl.LogLine, len(b.lines))
	copy(out, b.lines)
	return out
}

func (b *logBuffer) reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = nil
}

// consoleMessage joins console arguments the way DevTools prints them:
// primitive values verbatim, objects by their description.
func consoleMessage(args []*proto.RuntimeRemoteObject) string {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		if arg == nil {
			continue
		}
		if v := arg.Value.Val(); v != nil {
			parts = append(parts, fmt.Sprint(v))
			continue
		}
		if arg.Description != "" {
			parts = append(parts, arg.Description)
			continue
		}
		parts = append(parts, string(arg.Type))
	}
	return strings.Join(parts, " ")
}
