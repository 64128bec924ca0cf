// Package logging provides a leveled, optionally styled line logger with an
// optional append-only file sink.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var levelStyles = map[string]lipgloss.Style{
	"INFO":    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
	"SUCCESS": lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
	"WARN":    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
	"ERROR":   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
	"DEBUG":   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
}

// Logger writes timestamped lines to out and, if set, to a log file. A nil
// *Logger discards everything.
type Logger struct {
	mu      sync.Mutex
	out     io.Writer
	color   bool
	verbose bool
	file    *os.File
}

// Options configures New.
type Options struct {
	Out     io.Writer
	Color   bool
	Verbose bool
	File    string
}

// New opens opts.File (creating parent directories) when set. Call Close when
// done.
func New(opts Options) (*Logger, error) {
	l := &Logger{out: opts.Out, color: opts.Color, verbose: opts.Verbose}
	if l.out == nil {
		l.out = io.Discard
	}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		l.file = f
	}
	return l, nil
}

// IsTerminal reports whether f is a character device.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

func (l *Logger) line(level, text string) {
	if l == nil {
		return
	}
	ts := time.Now().Format("2006-01-02 15:04:05")
	plain := ts + " [" + level + "] " + text + "\n"

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.color {
		tag := levelStyles[level].Render("[" + level + "]")
		_, _ = io.WriteString(l.out, ts+" "+tag+" "+text+"\n")
	} else {
		_, _ = io.WriteString(l.out, plain)
	}
	if l.file != nil {
		_, _ = io.WriteString(l.file, plain)
	}
}

// Info logs at INFO level.
func (l *Logger) Info(format string, args ...any) {
	l.line("INFO", fmt.Sprintf(format, args...))
}

// Success logs at SUCCESS level.
func (l *Logger) Success(format string, args ...any) {
	l.line("SUCCESS", fmt.Sprintf(format, args...))
}

// Warn logs at WARN level.
func (l *Logger) Warn(format string, args ...any) {
	l.line("WARN", fmt.Sprintf(format, args...))
}

// Error logs at ERROR level.
func (l *Logger) Error(format string, args ...any) {
	l.line("ERROR", fmt.Sprintf(format, args...))
}

// Debug logs at DEBUG level when the logger is verbose.
func (l *Logger) Debug(format string, args ...any) {
	if l == nil || !l.verbose {
		return
	}
	l.line("DEBUG", fmt.Sprintf(format, args...))
}
