// Package testutil provides helpers shared by package tests.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// FakeConverter writes an executable POSIX shell script with the given body
// and returns its path. The script receives the converter flags as "$@".
// Tests using it are skipped on Windows.
func FakeConverter(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake converter scripts need a POSIX shell")
	}

	path := filepath.Join(t.TempDir(), "rs-convert")
	script := "#!/bin/sh\n" + strings.TrimSpace(body) + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write fake converter: %v", err)
	}
	return path
}

// WriteBag creates a small file with a bag header at dir/name.
func WriteBag(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#ROSBAG V2.0\n"+name), 0o644); err != nil {
		t.Fatalf("write bag: %v", err)
	}
	return path
}

// EmitLines is a script body that prints n lines and exits 0.
const EmitLines = `
n=${LINES_OUT:-100}
i=0
while [ "$i" -lt "$n" ]; do
  echo "frame $i"
  i=$((i+1))
done
`
