package cmd

import (
	"github.com/spf13/cobra"

	"github.com/chassing/qontract-development-cli/internal/config"
	"github.com/chassing/qontract-development-cli/internal/tui"
)

func newUICmd() *cobra.Command {
	var debug bool
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Browse environments and profiles interactively",
		Long: `Opens a full-screen terminal interface with the stored environments
and profiles next to a live log pane. Select a pair, start it as a
compose stack, and follow its output without leaving the terminal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if debug {
				cfg.Debug = true
			}
			return tui.Run(&cfg, rootCmd.Version)
		},
	}
	cmd.Flags().BoolVar(&debug, "debug", false, "show debug entries in the log pane")
	return cmd
}
