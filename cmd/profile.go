package cmd

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/chassing/qontract-development-cli/internal/compose"
	"github.com/chassing/qontract-development-cli/internal/config"
	"github.com/chassing/qontract-development-cli/internal/store"
	"github.com/chassing/qontract-development-cli/pkg/logging"
)

const cliSubsystem = "cli"

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage and run integration profiles",
		Long: `Profiles describe how the qontract-reconcile container runs: image,
integration, arguments, and runtime switches. Each profile is one YAML
file below the configured profiles directory. A profile runs against
an environment as a docker compose stack.`,
	}
	cmd.AddCommand(newProfileEditCmd())
	cmd.AddCommand(newProfileLsCmd())
	cmd.AddCommand(newProfileShowCmd())
	cmd.AddCommand(newProfileRmCmd())
	cmd.AddCommand(newProfileRunCmd())
	cmd.AddCommand(newProfileDownCmd())
	return cmd
}

func newProfileEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit NAME",
		Short: "Create or edit a profile in your editor",
		Long: `Opens the named profile file in the configured editor. A missing file
is first seeded with a commented template.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeProfileNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := initCLI()
			if err != nil {
				return err
			}
			st := storeFromConfig(cfg)
			entry, err := st.Profile(args[0])
			if err != nil {
				return err
			}
			return editEntry(cmd.OutOrStdout(), cfg, st, entry, store.ProfileTemplate)
		},
	}
}

func newProfileLsCmd() *cobra.Command {
	var wide bool
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List profiles",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := initCLI()
			if err != nil {
				return err
			}
			st := storeFromConfig(cfg)
			entries, err := st.ListProfiles()
			if err != nil {
				return err
			}
			return printEntries(cmd.OutOrStdout(), st, st.ProfilesDir(), entries, wide)
		},
	}
	cmd.Flags().BoolVar(&wide, "wide", false, "show modification times and paths")
	return cmd
}

func newProfileShowCmd() *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:               "show NAME",
		Short:             "Print a profile file",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeProfileNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := initCLI()
			if err != nil {
				return err
			}
			st := storeFromConfig(cfg)
			entry, err := st.Profile(args[0])
			if err != nil {
				return err
			}
			return showEntry(cmd.OutOrStdout(), st, entry, plain)
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "disable syntax highlighting")
	return cmd
}

func newProfileRmCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:               "rm NAME",
		Aliases:           []string{"remove"},
		Short:             "Delete a profile",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeProfileNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := initCLI()
			if err != nil {
				return err
			}
			st := storeFromConfig(cfg)
			entry, err := st.Profile(args[0])
			if err != nil {
				return err
			}
			return removeEntry(cmd.InOrStdin(), cmd.OutOrStdout(), st, entry, force)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "skip the confirmation prompt")
	return cmd
}

func newProfileRunCmd() *cobra.Command {
	var noPull bool
	cmd := &cobra.Command{
		Use:   "run ENV PROFILE",
		Short: "Run a profile against an environment",
		Long: `Renders the docker-compose file for the environment/profile pair into
the state directory and brings it up in the foreground with the
configured container engine. Ctrl-C stops the containers and returns.`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeRunArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := initCLI()
			if err != nil {
				return err
			}
			st := storeFromConfig(cfg)
			envSpec, err := st.LoadEnvironment(args[0])
			if err != nil {
				return err
			}
			profileSpec, err := st.LoadProfile(args[1])
			if err != nil {
				return err
			}

			file, err := compose.Write(compose.Render(envSpec, profileSpec), cfg.StateDir, args[0], args[1])
			if err != nil {
				return err
			}
			logging.Info(cliSubsystem, "rendered %s", file)

			// Ctrl-C reaches the compose child through the shared process
			// group and compose stops the containers itself; stay alive
			// until it is done instead of dying first.
			signal.Ignore(os.Interrupt)
			defer signal.Reset(os.Interrupt)

			runner := compose.NewRunner(cfg.ContainerEngine, cfg.ComposeProjectName)
			return runner.Up(cmd.Context(), file, compose.UpOptions{Pull: !noPull})
		},
	}
	cmd.Flags().BoolVar(&noPull, "no-pull", false, "skip pulling the image before starting")
	return cmd
}

func newProfileDownCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "down ENV PROFILE",
		Short:             "Stop and remove a profile's compose services",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeRunArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := initCLI()
			if err != nil {
				return err
			}
			file := compose.File(cfg.StateDir, args[0], args[1])
			if _, err := os.Stat(file); err != nil {
				return fmt.Errorf("no rendered compose file for %s/%s, run `qd profile run` first", args[0], args[1])
			}
			runner := compose.NewRunner(cfg.ContainerEngine, cfg.ComposeProjectName)
			return runner.Down(cmd.Context(), file)
		},
	}
}

func completeProfileNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	entries, err := storeFromConfig(cfg).ListProfiles()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return completionMatches(entries, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeRunArgs completes ENV for the first argument and PROFILE for the
// second.
func completeRunArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	switch len(args) {
	case 0:
		return completeEnvironmentNames(cmd, args, toComplete)
	case 1:
		return completeProfileNames(cmd, args, toComplete)
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}
