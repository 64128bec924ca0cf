package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"bagextract/internal/batch"
	"bagextract/internal/config"
	"bagextract/internal/converter"
	"bagextract/internal/logging"
	"bagextract/internal/tui"
)

var convertCmd = &cobra.Command{
	Use:   "convert [flags] <dir|file.bag>...",
	Short: "Extract PLY and/or PNG files from .bag recordings",
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

		bin, err := converter.Resolve(cfg.Converter)
		if err != nil {
			return fmt.Errorf("%w (set --converter or BAGEXTRACT_CONVERTER)", err)
		}

		files, err := selectFiles(cfg, args)
		if err != nil {
			return err
		}

		useTUI := cfg.TUI && logging.IsTerminal(os.Stdout)
		var out io.Writer = os.Stdout
		if useTUI {
			out = io.Discard
		}
		logger, err := logging.New(logging.Options{
			Out:     out,
			Color:   logging.IsTerminal(os.Stdout),
			Verbose: cfg.Verbose,
			File:    cfg.LogFile,
		})
		if err != nil {
			return err
		}
		defer logger.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		runner := batch.NewRunner(&batch.Orchestrator{Logger: logger})
		updates, err := runner.Start(ctx, batch.NewJob(files, bin, mode))
		if err != nil {
			return err
		}

		if useTUI {
			if err := runTUI(mode.Label(), updates, runner); err != nil {
				return err
			}
		} else {
			for u := range updates {
				logger.Info("%3d%% %s", u.Percent, u.Message)
			}
		}

		res := runner.Wait()
		fmt.Fprintln(os.Stdout, tui.RenderSummary(tui.ResultRows(res)))
		if err := tui.RenderTasks(os.Stdout, res.Tasks); err != nil {
			return err
		}

		if s := res.Summary(); s.Failed > 0 {
			return fmt.Errorf("%d of %d files failed", s.Failed, s.Total)
		}
		return nil
	},
}

// runTUI shows the progress view until the run ends. If the view exits
// early the run is canceled and its updates are drained.
func runTUI(subtitle string, updates <-chan batch.Update, runner *batch.Runner) error {
	model := tui.NewModel("extracting "+subtitle, updates, runner.Cancel)
	_, err := tea.NewProgram(model).Run()
	if err != nil {
		runner.Cancel()
	}
	for range updates {
	}
	return err
}

// selectFiles expands args into the ordered list of recordings to process.
func selectFiles(cfg *config.Config, args []string) ([]string, error) {
	files, err := batch.Collect(args)
	if err != nil {
		return nil, err
	}
	files, err = batch.Select(files, cfg.Include, cfg.Exclude)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .bag files selected in %s", strings.Join(args, ", "))
	}
	return files, nil
}

func init() {
	convertCmd.Flags().StringP("converter", "c", config.DefaultConverter(), "path to the rs-convert executable")
	convertCmd.Flags().Bool("no-tui", false, "print progress lines instead of the interactive view")
	convertCmd.Flags().String("log-file", "", "append log lines to this file")
	convertCmd.Flags().BoolP("verbose", "v", false, "log converter arguments")
	addSelectionFlags(convertCmd)

	rootCmd.AddCommand(convertCmd)
}
