package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/chassing/qontract-development-cli/internal/config"
	"github.com/chassing/qontract-development-cli/internal/editor"
	"github.com/chassing/qontract-development-cli/internal/store"
)

func newEnvCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "env",
		Short: "Manage environment definitions",
		Long: `Environments point qontract-reconcile at a data source: the local
app-interface checkout, the config file, and extra variables. Each
environment is one YAML file below the configured environments
directory.`,
	}
	cmd.AddCommand(newEnvEditCmd())
	cmd.AddCommand(newEnvLsCmd())
	cmd.AddCommand(newEnvShowCmd())
	cmd.AddCommand(newEnvRmCmd())
	return cmd
}

func newEnvEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit NAME",
		Short: "Create or edit an environment in your editor",
		Long: `Opens the named environment file in the configured editor. A missing
file is first seeded with a commented template.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeEnvironmentNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := initCLI()
			if err != nil {
				return err
			}
			st := storeFromConfig(cfg)
			entry, err := st.Environment(args[0])
			if err != nil {
				return err
			}
			return editEntry(cmd.OutOrStdout(), cfg, st, entry, store.EnvironmentTemplate)
		},
	}
}

func newEnvLsCmd() *cobra.Command {
	var wide bool
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List environments",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := initCLI()
			if err != nil {
				return err
			}
			st := storeFromConfig(cfg)
			entries, err := st.ListEnvironments()
			if err != nil {
				return err
			}
			return printEntries(cmd.OutOrStdout(), st, st.EnvironmentsDir(), entries, wide)
		},
	}
	cmd.Flags().BoolVar(&wide, "wide", false, "show modification times and paths")
	return cmd
}

func newEnvShowCmd() *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:               "show NAME",
		Short:             "Print an environment file",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeEnvironmentNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := initCLI()
			if err != nil {
				return err
			}
			st := storeFromConfig(cfg)
			entry, err := st.Environment(args[0])
			if err != nil {
				return err
			}
			return showEntry(cmd.OutOrStdout(), st, entry, plain)
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "disable syntax highlighting")
	return cmd
}

func newEnvRmCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:               "rm NAME",
		Aliases:           []string{"remove"},
		Short:             "Delete an environment",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeEnvironmentNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := initCLI()
			if err != nil {
				return err
			}
			st := storeFromConfig(cfg)
			entry, err := st.Environment(args[0])
			if err != nil {
				return err
			}
			return removeEntry(cmd.InOrStdin(), cmd.OutOrStdout(), st, entry, force)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "skip the confirmation prompt")
	return cmd
}

func completeEnvironmentNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	entries, err := storeFromConfig(cfg).ListEnvironments()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return completionMatches(entries, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// Helpers shared with the profile command group.

func storeFromConfig(cfg config.Config) *store.Store {
	return store.New(cfg.EnvironmentsDir, cfg.ProfilesDir)
}

// editEntry seeds the file from the template when missing and opens it in
// the editor as a foreground process.
func editEntry(out io.Writer, cfg config.Config, st *store.Store, entry store.Entry, template []byte) error {
	created, err := st.Scaffold(entry, template)
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintf(out, "Created %s\n", entry.Path)
	}
	return editor.Open(editor.Resolve(cfg.Editor), entry.Path)
}

// printEntries lists names below their directory; wide mode adds a table
// with humanized modification times and paths.
func printEntries(out io.Writer, st *store.Store, dir string, entries []store.Entry, wide bool) error {
	if len(entries) == 0 {
		fmt.Fprintf(out, "no entries in %s\n", dir)
		return nil
	}
	if !wide {
		fmt.Fprintf(out, "%s:\n", dir)
		for _, e := range entries {
			fmt.Fprintf(out, "  %s\n", e.Name)
		}
		return nil
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tMODIFIED\tPATH")
	for _, e := range entries {
		info, err := st.Stat(e)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Name, humanize.Time(info.ModTime()), e.Path)
	}
	return tw.Flush()
}

// showEntry prints the file, YAML-highlighted on a terminal unless plain
// output was requested or stdout is piped.
func showEntry(out io.Writer, st *store.Store, entry store.Entry, plain bool) error {
	data, err := st.Read(entry)
	if err != nil {
		return err
	}
	if plain || !stdoutIsTerminal() {
		_, err = out.Write(data)
		return err
	}
	return quick.Highlight(out, string(data), "yaml", "terminal256", "monokai")
}

func stdoutIsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// removeEntry deletes the file after an interactive confirmation unless
// force is set.
func removeEntry(in io.Reader, out io.Writer, st *store.Store, entry store.Entry, force bool) error {
	if !st.Exists(entry) {
		return fmt.Errorf("%s does not exist", entry.Path)
	}
	if !force {
		ok, err := confirm(in, out, fmt.Sprintf("Remove %s?", entry.Path))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "aborted")
			return nil
		}
	}
	if err := st.Remove(entry); err != nil {
		return err
	}
	fmt.Fprintf(out, "Removed %s\n", entry.Path)
	return nil
}

// confirm asks a y/N question on the given reader; everything but an
// explicit yes declines.
func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N] ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

func completionMatches(entries []store.Entry, toComplete string) []string {
	var names []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name, toComplete) {
			names = append(names, e.Name)
		}
	}
	return names
}
