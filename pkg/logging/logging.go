// Package logging provides the leveled, colored console logger used by the
// compiler and its command line driver.
//
// A nil *Logger is valid and discards everything, so library callers that do
// not care about diagnostics can pass nil.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Level is the severity of a log line.
type Level int

const (
	Debug Level = iota
	Info
	Ok
	Warn
	Error
)

var levelNames = [...]string{
	Debug: "DEBUG",
	Info:  "INFO",
	Ok:    "OK",
	Warn:  "WARN",
	Error: "ERROR",
}

func (l Level) String() string {
	if l >= 0 && int(l) < len(levelNames) {
		return levelNames[l]
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

var levelColors = [...]color.Attribute{
	Debug: color.FgMagenta,
	Info:  color.FgCyan,
	Ok:    color.FgGreen,
	Warn:  color.FgYellow,
	Error: color.FgRed,
}

// Options selects which levels are written.
type Options struct {
	// Silent suppresses every level.
	Silent bool
	// SoftSilent suppresses warnings only.
	SoftSilent bool
	// NoWarn suppresses warnings; kept apart from SoftSilent because the
	// command line exposes both.
	NoWarn bool
	// Verbose enables Info and Ok.
	Verbose bool
	// Debug enables Debug.
	Debug bool
	// NoColor forces plain output even on a terminal.
	NoColor bool
}

// Logger writes prefixed lines such as "[ INFO ]: Reading file".
type Logger struct {
	mu     sync.Mutex
	out    io.Writer
	opts   Options
	labels [len(levelNames)]string
}

// New returns a Logger writing to out. Colors are used only when out is a
// terminal and opts.NoColor is false.
func New(out io.Writer, opts Options) *Logger {
	l := &Logger{out: out, opts: opts}
	colored := !opts.NoColor && isTerminal(out)
	for lvl := range levelNames {
		c := color.New(levelColors[lvl], color.Bold)
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		l.labels[lvl] = c.Sprintf(" %s ", levelNames[lvl])
	}
	return l
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Enabled reports whether lines at lvl are written.
func (l *Logger) Enabled(lvl Level) bool {
	if l == nil || l.opts.Silent {
		return false
	}
	switch lvl {
	case Debug:
		return l.opts.Debug
	case Info, Ok:
		return l.opts.Verbose
	case Warn:
		return !l.opts.SoftSilent && !l.opts.NoWarn
	case Error:
		return true
	}
	return false
}

// Logf writes one line per line of the formatted message.
func (l *Logger) Logf(lvl Level, format string, args ...any) {
	if !l.Enabled(lvl) {
		return
	}
	msg := fmt.Sprintf(format, args...)

	var b strings.Builder
	for _, line := range strings.Split(msg, "\n") {
		line = strings.TrimPrefix(line, "\r")
		fmt.Fprintf(&b, "[%s]: %s\n", l.labels[lvl], line)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.out, b.String())
}

func (l *Logger) Debugf(format string, args ...any) { l.Logf(Debug, format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.Logf(Info, format, args...) }
func (l *Logger) Okf(format string, args ...any)    { l.Logf(Ok, format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.Logf(Warn, format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.Logf(Error, format, args...) }
