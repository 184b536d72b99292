package logging

import (
	"fmt"
	"io"
	"log"
	"sort"
	"strings"

	"github.com/heroiclabs/nakama-common/runtime"
)

// Prefix is prepended to every line written by the daemon.
const Prefix = "[BLACKJACK] "

// StdLogger is a runtime.Logger backed by the standard log package,
// for running the game outside a Nakama server.
type StdLogger struct {
	out    *log.Logger
	fields map[string]interface{}
	debug  bool
}

var _ runtime.Logger = (*StdLogger)(nil)

// NewStdLogger writes to w. Debug lines are dropped unless debug is set.
func NewStdLogger(w io.Writer, debug bool) *StdLogger {
	return &StdLogger{
		out:    log.New(w, Prefix, log.LstdFlags|log.Lmsgprefix),
		fields: map[string]interface{}{},
		debug:  debug,
	}
}

func (l *StdLogger) Debug(format string, v ...interface{}) {
	if l.debug {
		l.print("DEBUG", format, v...)
	}
}

func (l *StdLogger) Info(format string, v ...interface{}) {
	l.print("INFO", format, v...)
}

func (l *StdLogger) Warn(format string, v ...interface{}) {
	l.print("WARN", format, v...)
}

func (l *StdLogger) Error(format string, v ...interface{}) {
	l.print("ERROR", format, v...)
}

func (l *StdLogger) WithField(key string, v interface{}) runtime.Logger {
	return l.WithFields(map[string]interface{}{key: v})
}

func (l *StdLogger) WithFields(fields map[string]interface{}) runtime.Logger {
	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &StdLogger{out: l.out, fields: merged, debug: l.debug}
}

func (l *StdLogger) Fields() map[string]interface{} {
	return l.fields
}

func (l *StdLogger) print(level, format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	if len(l.fields) == 0 {
		l.out.Printf("%s %s", level, msg)
		return
	}

	keys := make([]string, 0, len(l.fields))
	for k := range l.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = fmt.Sprintf("%s=%v", k, l.fields[k])
	}
	l.out.Printf("%s %s %s", level, msg, strings.Join(pairs, " "))
}
