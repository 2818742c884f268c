package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/chassing/qontract-development-cli/internal/config"
	"github.com/chassing/qontract-development-cli/pkg/logging"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "qd",
	Short: "Manage qontract-reconcile development environments and profiles",
	Long: `qd keeps named environment and profile definitions as YAML files and
runs a selected pair as a docker compose stack for local
qontract-reconcile development, either from the command line or from
an interactive terminal UI.`,
	// SilenceUsage is set to true to prevent printing usage message on errors
	// handled by us (e.g. invalid arguments, missing files)
	SilenceUsage: true,
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "qd version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newEnvCmd())
	rootCmd.AddCommand(newProfileCmd())
	rootCmd.AddCommand(newUICmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
}

// initCLI loads the layered configuration and routes logs to stderr for
// plain command-line use.
func initCLI() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	level := logging.LevelInfo
	if cfg.Debug {
		level = logging.LevelDebug
	}
	logging.InitForCLI(level, os.Stderr)
	return cfg, nil
}
