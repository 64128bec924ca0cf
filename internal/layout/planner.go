// Package layout computes and creates the per-recording output folders.
package layout

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Layout is the destination tree for one recording. PlyFolder and PngFolder
// are empty when the mode excludes them.
type Layout struct {
	Name       string
	ItemFolder string
	PlyFolder  string
	PngFolder  string
}

// PlyPrefix is the output prefix handed to the converter for point clouds.
func (l Layout) PlyPrefix() string {
	if l.PlyFolder == "" {
		return ""
	}
	return filepath.Join(l.PlyFolder, "ply")
}

// PngPrefix is the output prefix handed to the converter for images.
func (l Layout) PngPrefix() string {
	if l.PngFolder == "" {
		return ""
	}
	return filepath.Join(l.PngFolder, "png")
}

// FilesystemError reports a folder that could not be created.
type FilesystemError struct {
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("create folder %s: %v", e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error { return e.Err }

// ItemName strips the directory and the extension from a source path.
func ItemName(src string) string {
	base := filepath.Base(src)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Describe computes the layout for src without touching the filesystem.
func Describe(src string, mode Mode) Layout {
	name := ItemName(src)
	item := filepath.Join(filepath.Dir(src), name)

	l := Layout{Name: name, ItemFolder: item}
	if mode.WantsPly() {
		l.PlyFolder = filepath.Join(item, name+"_ply")
	}
	if mode.WantsPng() {
		l.PngFolder = filepath.Join(item, name+"_png")
	}
	return l
}

// Plan computes the layout for src and creates its folders. Existing folders
// are left as they are.
func Plan(src string, mode Mode) (Layout, error) {
	l := Describe(src, mode)

	for _, dir := range []string{l.ItemFolder, l.PlyFolder, l.PngFolder} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return l, &FilesystemError{Path: dir, Err: err}
		}
	}
	return l, nil
}
