package converter

import (
	"fmt"
	"strings"
)

// LaunchError means the converter binary could not be started.
type LaunchError struct {
	Path string
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("cannot launch converter %s: %v", e.Path, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// ExitError means the converter ran and exited non-zero. Tail holds the last
// lines it printed.
type ExitError struct {
	Code int
	Tail []string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("converter exited with code %d", e.Code)
}

// Output returns the captured tail joined by newlines.
func (e *ExitError) Output() string {
	return strings.Join(e.Tail, "\n")
}

const tailLines = 20

// tail keeps the last tailLines lines seen.
type tail struct {
	lines []string
}

func (t *tail) add(line string) {
	if len(t.lines) == tailLines {
		copy(t.lines, t.lines[1:])
		t.lines[len(t.lines)-1] = line
		return
	}
	t.lines = append(t.lines, line)
}

func (t *tail) snapshot() []string {
	out := make([]string, len(t.lines))
	copy(out, t.lines)
	return out
}
