package converter

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"
)

// DefaultGrace is how long a terminated converter may take to exit before it
// is killed.
const DefaultGrace = 5 * time.Second

// Invoker runs the converter binary at Path.
type Invoker struct {
	Path  string
	Grace time.Duration
}

// Run starts the converter for req and calls onLine for every line of its
// combined output while it runs. When ctx is canceled the child is sent a
// terminate signal, no further lines are delivered, and ctx.Err() is
// returned.
func (inv Invoker) Run(ctx context.Context, req Request, onLine func(string)) error {
	bin, err := Resolve(inv.Path)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	pr, pw, err := os.Pipe()
	if err != nil {
		return &LaunchError{Path: inv.Path, Err: err}
	}
	defer pr.Close()

	cmd := exec.Command(bin, BuildArgs(req)...)
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		_ = pw.Close()
		return &LaunchError{Path: inv.Path, Err: err}
	}
	// Only the child holds the write end now, so EOF follows its exit.
	_ = pw.Close()

	waitCh := make(chan error, 1)
	go func() { waitCh <- cmd.Wait() }()

	stop := make(chan struct{})
	defer close(stop)
	lines := make(chan string)
	var readErr error
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(pr)
		sc.Buffer(make([]byte, 0, 64*1024), 2*maxLineLen)
		sc.Split(splitLines(maxLineLen))
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-stop:
				return
			}
		}
		if err := sc.Err(); err != nil {
			readErr = err
			// Keep the pipe drained so the child can run to exit.
			_, _ = io.Copy(io.Discard, pr)
		}
	}()

	var t tail
	for lines != nil {
		select {
		case <-ctx.Done():
			inv.stop(cmd.Process, waitCh)
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				lines = nil
				continue
			}
			t.add(line)
			if onLine != nil {
				onLine(line)
			}
		}
	}

	var waitErr error
	select {
	case <-ctx.Done():
		inv.stop(cmd.Process, waitCh)
		return ctx.Err()
	case waitErr = <-waitCh:
	}

	var ee *exec.ExitError
	switch {
	case errors.As(waitErr, &ee):
		return &ExitError{Code: ee.ExitCode(), Tail: t.snapshot()}
	case waitErr != nil:
		return fmt.Errorf("wait for converter: %w", waitErr)
	case readErr != nil:
		return fmt.Errorf("read converter output: %w", readErr)
	}
	return nil
}

// stop terminates p and waits for it, killing it if it outlives the grace
// period.
func (inv Invoker) stop(p *os.Process, waitCh <-chan error) {
	grace := inv.Grace
	if grace <= 0 {
		grace = DefaultGrace
	}

	if err := terminate(p); err != nil {
		_ = p.Kill()
	}

	timer := time.NewTimer(grace)
	defer timer.Stop()
	select {
	case <-waitCh:
	case <-timer.C:
		_ = p.Kill()
		<-waitCh
	}
}
