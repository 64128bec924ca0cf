package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"bagextract/internal/batch"
	"bagextract/internal/converter"
	"bagextract/internal/layout"
)

// RenderTasks writes one table row per file of a finished run.
func RenderTasks(w io.Writer, tasks []batch.FileTask) error {
	table := tablewriter.NewWriter(w)
	table.Header("File", "Status", "Output", "Detail")
	for _, t := range tasks {
		if err := table.Append([]string{t.Name, t.Status.String(), t.Layout.ItemFolder, taskDetail(t)}); err != nil {
			return err
		}
	}
	return table.Render()
}

func taskDetail(t batch.FileTask) string {
	if t.Err == nil {
		return ""
	}
	var exitErr *converter.ExitError
	if errors.As(t.Err, &exitErr) && len(exitErr.Tail) > 0 {
		return fmt.Sprintf("%v: %s", t.Err, exitErr.Tail[len(exitErr.Tail)-1])
	}
	return t.Err.Error()
}

// PlannedFile is one row of a dry-run listing.
type PlannedFile struct {
	Source string
	Header string
	Layout layout.Layout
	Args   []string
}

// RenderPlan writes the layout and converter arguments planned for files.
func RenderPlan(w io.Writer, files []PlannedFile) error {
	table := tablewriter.NewWriter(w)
	table.Header("File", "Header", "Folders", "Converter flags")
	for _, f := range files {
		folders := []string{f.Layout.ItemFolder}
		for _, dir := range []string{f.Layout.PlyFolder, f.Layout.PngFolder} {
			if dir != "" {
				folders = append(folders, dir)
			}
		}
		if err := table.Append([]string{f.Source, f.Header, strings.Join(folders, "\n"), strings.Join(f.Args, " ")}); err != nil {
			return err
		}
	}
	return table.Render()
}
