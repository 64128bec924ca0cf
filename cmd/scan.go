package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"bagextract/internal/converter"
	"bagextract/internal/layout"
	"bagextract/internal/tui"
	"bagextract/pkg/bagutil"
)

var scanCmd = &cobra.Command{
	Use:   "scan [flags] <dir|file.bag>...",
	Short: "List the recordings a conversion would process, without changing anything",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		mode, err := cfg.ExtractionMode()
		if err != nil {
			return err
		}

		files, err := selectFiles(cfg, args)
		if err != nil {
			return err
		}

		planned := make([]tui.PlannedFile, 0, len(files))
		suspicious := 0
		for _, f := range files {
			header := "unreadable"
			if h, err := bagutil.SniffFile(f); err == nil {
				header = h.Kind.String()
				if h.Version != "" {
					header += " " + h.Version
				}
				if h.Kind == bagutil.KindUnknown {
					suspicious++
				}
			} else {
				suspicious++
			}

			l := layout.Describe(f, mode)
			planned = append(planned, tui.PlannedFile{
				Source: f,
				Header: header,
				Layout: l,
				Args:   converter.BuildArgs(converter.Request{Input: f, PlyPrefix: l.PlyPrefix(), PngPrefix: l.PngPrefix()}),
			})
		}

		fmt.Fprintf(os.Stdout, "%s\n", scanTitleStyle.Render(fmt.Sprintf("%d recordings, extracting %s", len(files), mode.Label())))
		if err := tui.RenderPlan(os.Stdout, planned); err != nil {
			return err
		}
		if suspicious > 0 {
			fmt.Fprintln(os.Stdout, scanWarnStyle.Render(fmt.Sprintf("%d files do not start with a bag header; the converter will probably reject them.", suspicious)))
		}
		return nil
	},
}

var (
	scanTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorAccent)
	scanWarnStyle  = lipgloss.NewStyle().Foreground(tui.ColorWarn)
)

func init() {
	addSelectionFlags(scanCmd)
	rootCmd.AddCommand(scanCmd)
}
