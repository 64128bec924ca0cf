package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bagextract/internal/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "bagextract",
	Short: "bagextract - batch-extract PLY point clouds and PNG frames from .bag recordings",
	Long: "bagextract runs the RealSense rs-convert tool over a folder of .bag recordings,\n" +
		"giving each recording its own folder with a copy of the source and the extracted files.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies any flags set on cmd.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("converter") {
		cfg.Converter, _ = flags.GetString("converter")
	}
	if flags.Changed("mode") {
		cfg.Mode, _ = flags.GetString("mode")
	}
	if flags.Changed("include") {
		cfg.Include, _ = flags.GetStringSlice("include")
	}
	if flags.Changed("exclude") {
		cfg.Exclude, _ = flags.GetStringSlice("exclude")
	}
	if flags.Changed("log-file") {
		cfg.LogFile, _ = flags.GetString("log-file")
	}
	if flags.Changed("no-tui") {
		noTUI, _ := flags.GetBool("no-tui")
		cfg.TUI = !noTUI
	}
	if flags.Changed("verbose") {
		cfg.Verbose, _ = flags.GetBool("verbose")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// addSelectionFlags registers the flags shared by commands that pick files.
func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("mode", "m", "both", "what to extract: both, ply or png")
	cmd.Flags().StringSlice("include", nil, "only process files whose name matches this glob (repeatable)")
	cmd.Flags().StringSlice("exclude", nil, "skip files whose name matches this glob (repeatable)")
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./bagextract.yml)")
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
}
