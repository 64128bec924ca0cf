package converter

import (
	"bufio"
	"bytes"
)

// maxLineLen caps a delivered line. Longer lines are cut at this length and
// the remainder up to the next line break is dropped.
const maxLineLen = 64 * 1024

// splitLines returns a bufio.SplitFunc that ends lines on "\n", "\r\n" or a
// bare "\r", the way progress-printing tools redraw a status line. Lines
// longer than limit are truncated instead of failing the scan.
func splitLines(limit int) bufio.SplitFunc {
	discarding := false
	return func(data []byte, atEOF bool) (int, []byte, error) {
		if atEOF && len(data) == 0 {
			return 0, nil, nil
		}

		if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
			advance := i + 1
			if data[i] == '\r' {
				switch {
				case i+1 < len(data):
					if data[i+1] == '\n' {
						advance++
					}
				case !atEOF && len(data) < limit:
					// A "\n" may follow in the next read.
					return 0, nil, nil
				}
			}
			if discarding {
				discarding = false
				return advance, nil, nil
			}
			if i > limit {
				i = limit
			}
			return advance, data[:i], nil
		}

		if discarding {
			return len(data), nil, nil
		}
		if len(data) >= limit {
			discarding = !atEOF
			return len(data), data[:limit], nil
		}
		if atEOF {
			return len(data), data, nil
		}
		return 0, nil, nil
	}
}
