package converter

// Request describes one conversion. Empty prefixes disable that output.
type Request struct {
	Input     string
	PlyPrefix string
	PngPrefix string
}

// BuildArgs returns the converter flags for req: -i always, then -l and -p
// when the corresponding prefix is set.
func BuildArgs(req Request) []string {
	args := make([]string, 0, 6)
	args = append(args, "-i", req.Input)
	if req.PlyPrefix != "" {
		args = append(args, "-l", req.PlyPrefix)
	}
	if req.PngPrefix != "" {
		args = append(args, "-p", req.PngPrefix)
	}
	return args
}
