package converter

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Resolve checks that path names an executable regular file and returns the
// path to run. A bare name without separators is looked up on PATH.
func Resolve(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", &LaunchError{Path: path, Err: errors.New("converter path not set")}
	}

	resolved := path
	if !strings.ContainsAny(path, `/\`) {
		found, err := exec.LookPath(path)
		if err != nil {
			return "", &LaunchError{Path: path, Err: err}
		}
		resolved = found
	}

	fi, err := os.Stat(resolved)
	if err != nil {
		return "", &LaunchError{Path: path, Err: err}
	}
	if fi.IsDir() {
		return "", &LaunchError{Path: path, Err: errors.New("is a directory")}
	}
	if !isExecutable(fi) {
		return "", &LaunchError{Path: path, Err: errors.New("not executable")}
	}

	if abs, err := filepath.Abs(resolved); err == nil {
		resolved = abs
	}
	return resolved, nil
}
