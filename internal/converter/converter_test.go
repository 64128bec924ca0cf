package converter

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bagextract/internal/testutil"
)

func TestBuildArgs(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want []string
	}{
		{"both", Request{Input: "a.bag", PlyPrefix: "p/ply", PngPrefix: "g/png"}, []string{"-i", "a.bag", "-l", "p/ply", "-p", "g/png"}},
		{"ply only", Request{Input: "a.bag", PlyPrefix: "p/ply"}, []string{"-i", "a.bag", "-l", "p/ply"}},
		{"png only", Request{Input: "a.bag", PngPrefix: "g/png"}, []string{"-i", "a.bag", "-p", "g/png"}},
		{"input only", Request{Input: "a.bag"}, []string{"-i", "a.bag"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildArgs(tt.req))
		})
	}
}

func TestRunStreamsLines(t *testing.T) {
	bin := testutil.FakeConverter(t, testutil.EmitLines)

	var lines []string
	err := Invoker{Path: bin}.Run(context.Background(), Request{Input: "x.bag"}, func(line string) {
		lines = append(lines, line)
	})
	require.NoError(t, err)
	require.Len(t, lines, 100)
	assert.Equal(t, "frame 0", lines[0])
	assert.Equal(t, "frame 99", lines[99])
}

func TestRunPassesFlags(t *testing.T) {
	bin := testutil.FakeConverter(t, `echo "$@"`)

	var got string
	err := Invoker{Path: bin}.Run(context.Background(),
		Request{Input: "in.bag", PngPrefix: "out/png"},
		func(line string) { got = line })
	require.NoError(t, err)
	assert.Equal(t, "-i in.bag -p out/png", got)
}

func TestRunMergesStderr(t *testing.T) {
	bin := testutil.FakeConverter(t, `echo "to stderr" 1>&2`)

	var lines []string
	err := Invoker{Path: bin}.Run(context.Background(), Request{Input: "x.bag"}, func(line string) {
		lines = append(lines, line)
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"to stderr"}, lines)
}

func TestRunExitError(t *testing.T) {
	bin := testutil.FakeConverter(t, `
echo "opening"
echo "bad file"
exit 3
`)

	err := Invoker{Path: bin}.Run(context.Background(), Request{Input: "x.bag"}, nil)
	require.Error(t, err)

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 3, exitErr.Code)
	assert.Equal(t, []string{"opening", "bad file"}, exitErr.Tail)
	assert.Contains(t, exitErr.Error(), "code 3")
}

func TestRunLaunchErrors(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "plain")
	require.NoError(t, os.WriteFile(plain, []byte("data"), 0o644))

	for name, path := range map[string]string{
		"missing":        filepath.Join(dir, "nope"),
		"directory":      dir,
		"not executable": plain,
		"empty":          "",
	} {
		t.Run(name, func(t *testing.T) {
			if name == "not executable" && runtime.GOOS == "windows" {
				t.Skip("no executable bit on windows")
			}
			err := Invoker{Path: path}.Run(context.Background(), Request{Input: "x.bag"}, nil)
			var launchErr *LaunchError
			assert.True(t, errors.As(err, &launchErr), "got %v", err)
		})
	}
}

func TestRunCancelTerminatesChild(t *testing.T) {
	bin := testutil.FakeConverter(t, `
echo "started"
exec sleep 30
`)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var once sync.Once
	start := time.Now()
	err := Invoker{Path: bin, Grace: time.Second}.Run(ctx, Request{Input: "x.bag"}, func(line string) {
		once.Do(cancel)
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestRunCancelWithoutOutput(t *testing.T) {
	bin := testutil.FakeConverter(t, `exec sleep 30`)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := Invoker{Path: bin, Grace: time.Second}.Run(ctx, Request{Input: "x.bag"}, nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestTailKeepsLastLines(t *testing.T) {
	var tl tail
	for i := 0; i < 50; i++ {
		tl.add(strings.Repeat("x", i))
	}
	got := tl.snapshot()
	require.Len(t, got, tailLines)
	assert.Equal(t, strings.Repeat("x", 49), got[len(got)-1])
	assert.Equal(t, strings.Repeat("x", 30), got[0])
}
