package tui

import (
	"context"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chassing/qontract-development-cli/internal/compose"
	"github.com/chassing/qontract-development-cli/internal/config"
	"github.com/chassing/qontract-development-cli/internal/store"
	"github.com/chassing/qontract-development-cli/pkg/logging"
)

// loadLists reads the stored environment and profile names from disk.
func loadLists(st *store.Store) tea.Cmd {
	return func() tea.Msg {
		environments, err := st.ListEnvironments()
		if err != nil {
			return ListsLoadedMsg{Err: err}
		}
		profiles, err := st.ListProfiles()
		if err != nil {
			return ListsLoadedMsg{Err: err}
		}
		return ListsLoadedMsg{Environments: entryNames(environments), Profiles: entryNames(profiles)}
	}
}

func entryNames(entries []store.Entry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

// waitForLogEntry blocks until the next log entry arrives. The handler
// re-arms it after each message so the channel stays drained.
func waitForLogEntry(ch <-chan logging.Entry) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		entry, ok := <-ch
		if !ok {
			return LogClosedMsg{}
		}
		return LogEntryMsg{Entry: entry}
	}
}

// waitForNewEnvironment blocks until the watcher reports a newly created
// environment file.
func waitForNewEnvironment(w *store.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		name, ok := <-w.Environments()
		if !ok {
			return nil
		}
		return NewEnvironmentMsg{Name: name}
	}
}

// waitForNewProfile blocks until the watcher reports a newly created
// profile file.
func waitForNewProfile(w *store.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		name, ok := <-w.Profiles()
		if !ok {
			return nil
		}
		return NewProfileMsg{Name: name}
	}
}

// prepareCompose loads the selected environment and profile and renders
// their compose file into the state directory.
func prepareCompose(cfg *config.Config, st *store.Store, env, profile string) tea.Cmd {
	return func() tea.Msg {
		msg := ComposeReadyMsg{Env: env, Profile: profile}
		envSpec, err := st.LoadEnvironment(env)
		if err != nil {
			msg.Err = err
			return msg
		}
		profileSpec, err := st.LoadProfile(profile)
		if err != nil {
			msg.Err = err
			return msg
		}
		msg.File, msg.Err = compose.Write(compose.Render(envSpec, profileSpec), cfg.StateDir, env, profile)
		return msg
	}
}

// runCompose brings the rendered compose file up and blocks until the
// process exits. Output is forwarded through the logging channel so it
// lands in the log pane.
func runCompose(ctx context.Context, cfg *config.Config, env, profile, file string) tea.Cmd {
	return func() tea.Msg {
		runner := compose.NewRunner(cfg.ContainerEngine, cfg.ComposeProjectName)
		err := runner.UpStreaming(ctx, file, compose.UpOptions{Pull: true}, func(line string) {
			logging.Info("compose", "%s", line)
		})
		return ComposeExitedMsg{Env: env, Profile: profile, Err: err}
	}
}

// downCompose tears the compose services down after a run ended.
func downCompose(cfg *config.Config, file string) tea.Cmd {
	return func() tea.Msg {
		runner := compose.NewRunner(cfg.ContainerEngine, cfg.ComposeProjectName)
		err := runner.DownStreaming(context.Background(), file, func(line string) {
			logging.Info("compose", "%s", line)
		})
		return ComposeDownMsg{Err: err}
	}
}

// copyPath puts the given path on the system clipboard.
func copyPath(path string) tea.Cmd {
	return func() tea.Msg {
		return PathCopiedMsg{Path: path, Err: clipboard.WriteAll(path)}
	}
}
