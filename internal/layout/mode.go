package layout

import (
	"fmt"
	"strings"
)

// Mode selects which artifacts the converter extracts.
type Mode int

const (
	ModeBoth Mode = iota
	ModePlyOnly
	ModePngOnly
)

func (m Mode) String() string {
	switch m {
	case ModeBoth:
		return "both"
	case ModePlyOnly:
		return "ply"
	case ModePngOnly:
		return "png"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Label is the human-readable artifact list used in status messages.
func (m Mode) Label() string {
	switch m {
	case ModePlyOnly:
		return "PLY"
	case ModePngOnly:
		return "PNG"
	default:
		return "PLY and PNG"
	}
}

// WantsPly reports whether point clouds are extracted in this mode.
func (m Mode) WantsPly() bool { return m == ModeBoth || m == ModePlyOnly }

// WantsPng reports whether images are extracted in this mode.
func (m Mode) WantsPng() bool { return m == ModeBoth || m == ModePngOnly }

// ParseMode accepts "both", "ply" or "png" (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "both", "":
		return ModeBoth, nil
	case "ply":
		return ModePlyOnly, nil
	case "png":
		return ModePngOnly, nil
	default:
		return ModeBoth, fmt.Errorf("invalid extraction mode %q (want both, ply or png)", s)
	}
}
