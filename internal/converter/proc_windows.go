//go:build windows

package converter

import "os"

// Windows has no SIGTERM; TerminateProcess is the closest equivalent.
func terminate(p *os.Process) error {
	return p.Kill()
}

func isExecutable(fi os.FileInfo) bool {
	return fi.Mode().IsRegular()
}
