package tui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chassing/qontract-development-cli/internal/editor"
	"github.com/chassing/qontract-development-cli/internal/tui/components"
	"github.com/chassing/qontract-development-cli/pkg/logging"
)

const tuiSubsystem = "tui"

// Init kicks off the initial listing and the channel listeners.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		loadLists(m.store),
		waitForLogEntry(m.logCh),
		waitForNewEnvironment(m.watcher),
		waitForNewProfile(m.watcher),
	)
}

// Update routes every message to its handler. All state mutation happens
// here; View only reads.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.logViewport, cmd = m.logViewport.Update(msg)
		return m, cmd

	case spinner.TickMsg:
		if !m.running && !m.stopping {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ListsLoadedMsg:
		return m.handleListsLoaded(msg)

	case EnvSelectedMsg:
		m.activeEnv = msg.Name
		m.syncSidebar()
		return m, nil

	case ProfileSelectedMsg:
		m.activeProfile = msg.Name
		m.syncSidebar()
		return m, nil

	case NewEnvironmentMsg:
		var cmd tea.Cmd
		if !m.envList.Contains(msg.Name) {
			logging.Info(tuiSubsystem, "new environment %q", msg.Name)
			cmd = m.envList.AddItems(msg.Name)
			m.syncSidebar()
		}
		return m, tea.Batch(cmd, waitForNewEnvironment(m.watcher))

	case NewProfileMsg:
		var cmd tea.Cmd
		if !m.profileList.Contains(msg.Name) {
			logging.Info(tuiSubsystem, "new profile %q", msg.Name)
			cmd = m.profileList.AddItems(msg.Name)
			m.syncSidebar()
		}
		return m, tea.Batch(cmd, waitForNewProfile(m.watcher))

	case LogEntryMsg:
		m.appendLog(renderLogEntry(msg.Entry))
		return m, waitForLogEntry(m.logCh)

	case LogClosedMsg:
		return m, nil

	case components.NotificationExpiredMsg:
		m.notification.Dismiss()
		return m, nil

	case editor.ClosedMsg:
		return m.handleEditorClosed(msg)

	case ComposeReadyMsg:
		return m.handleComposeReady(msg)

	case ComposeExitedMsg:
		return m.handleComposeExited(msg)

	case ComposeDownMsg:
		return m.handleComposeDown(msg)

	case PathCopiedMsg:
		if msg.Err != nil {
			return m, m.notification.Show("clipboard: "+msg.Err.Error(), components.NotificationError)
		}
		return m, m.notification.Show("copied "+msg.Path, components.NotificationSuccess)
	}

	return m, nil
}

// handleKey maps key presses to actions. A visible notification is
// dismissed by any key; the key still performs its action.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.notification.Visible() {
		m.notification.Dismiss()
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil

	case key.Matches(msg, m.keys.ToggleSidebar):
		m.sidebarOpen = !m.sidebarOpen
		m.layout()
		return m, nil

	case key.Matches(msg, m.keys.Tab), key.Matches(msg, m.keys.ShiftTab):
		if m.focus == focusEnvironments {
			m.focus = focusProfiles
		} else {
			m.focus = focusEnvironments
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		cmd := m.focusedList().MoveUp()
		m.syncSidebar()
		return m, cmd

	case key.Matches(msg, m.keys.Down):
		cmd := m.focusedList().MoveDown()
		m.syncSidebar()
		return m, cmd

	case key.Matches(msg, m.keys.Enter):
		return m, m.focusedList().Activate()

	case key.Matches(msg, m.keys.Edit):
		path, err := m.selectedPath()
		if err != nil {
			return m, m.notification.Show(err.Error(), components.NotificationError)
		}
		return m, editor.OpenInTUI(editor.Resolve(m.cfg.Editor), path)

	case key.Matches(msg, m.keys.CopyPath):
		path, err := m.selectedPath()
		if err != nil {
			return m, m.notification.Show(err.Error(), components.NotificationError)
		}
		return m, copyPath(path)

	case key.Matches(msg, m.keys.Start):
		return m.startCompose()

	case key.Matches(msg, m.keys.Stop):
		return m.stopCompose()
	}

	return m, nil
}

// quit cancels a running compose process and, if one was up, tears the
// services down before exiting.
func (m *Model) quit() (tea.Model, tea.Cmd) {
	if m.composeCancel != nil {
		m.composeCancel()
	}
	if m.running && m.composeFile != "" {
		m.stopping = true
		return m, tea.Sequence(downCompose(m.cfg, m.composeFile), tea.Quit)
	}
	return m, tea.Quit
}

// selectedPath resolves the file behind the focused panel's selection.
func (m *Model) selectedPath() (string, error) {
	name, ok := m.focusedList().SelectedItem()
	if !ok {
		return "", errors.New("nothing selected")
	}
	if m.focus == focusProfiles {
		entry, err := m.store.Profile(name)
		if err != nil {
			return "", err
		}
		return entry.Path, nil
	}
	entry, err := m.store.Environment(name)
	if err != nil {
		return "", err
	}
	return entry.Path, nil
}

func (m *Model) startCompose() (tea.Model, tea.Cmd) {
	if m.running || m.stopping {
		return m, m.notification.Show("a run is already in progress", components.NotificationInfo)
	}
	if m.activeEnv == "" || m.activeProfile == "" {
		return m, m.notification.Show("select an environment and a profile first", components.NotificationError)
	}
	logging.Info(tuiSubsystem, "rendering compose file for %s/%s", m.activeEnv, m.activeProfile)
	return m, prepareCompose(m.cfg, m.store, m.activeEnv, m.activeProfile)
}

func (m *Model) stopCompose() (tea.Model, tea.Cmd) {
	if !m.running || m.composeCancel == nil {
		return m, m.notification.Show("nothing is running", components.NotificationInfo)
	}
	if m.stopping {
		return m, nil
	}
	m.stopping = true
	m.composeCancel()
	return m, m.notification.Show("stopping "+m.activeEnv+"/"+m.activeProfile, components.NotificationInfo)
}

func (m *Model) handleListsLoaded(msg ListsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		logging.Error(tuiSubsystem, msg.Err, "listing environments and profiles")
		return m, m.notification.Show("loading lists: "+msg.Err.Error(), components.NotificationError)
	}
	cmds := []tea.Cmd{
		m.envList.AddItems(msg.Environments...),
		m.profileList.AddItems(msg.Profiles...),
	}
	m.syncSidebar()
	return m, tea.Batch(cmds...)
}

func (m *Model) handleEditorClosed(msg editor.ClosedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		logging.Error(tuiSubsystem, msg.Err, "editor exited")
		return m, m.notification.Show("editor: "+msg.Err.Error(), components.NotificationError)
	}
	return m, m.notification.Show("edited "+filepath.Base(msg.Path), components.NotificationSuccess)
}

func (m *Model) handleComposeReady(msg ComposeReadyMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		logging.Error(tuiSubsystem, msg.Err, "preparing compose file for %s/%s", msg.Env, msg.Profile)
		return m, m.notification.Show("prepare: "+msg.Err.Error(), components.NotificationError)
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.composeFile = msg.File
	m.composeCancel = cancel
	m.running = true
	m.stopping = false
	logging.Info(tuiSubsystem, "starting %s/%s", msg.Env, msg.Profile)
	return m, tea.Batch(
		runCompose(ctx, m.cfg, msg.Env, msg.Profile, msg.File),
		m.spinner.Tick,
		m.notification.Show("started "+msg.Env+"/"+msg.Profile, components.NotificationSuccess),
	)
}

func (m *Model) handleComposeExited(msg ComposeExitedMsg) (tea.Model, tea.Cmd) {
	m.running = false
	if m.composeCancel != nil {
		m.composeCancel()
		m.composeCancel = nil
	}
	if m.stopping {
		logging.Info(tuiSubsystem, "tearing down %s/%s", msg.Env, msg.Profile)
		return m, downCompose(m.cfg, m.composeFile)
	}
	if msg.Err != nil {
		logging.Error(tuiSubsystem, msg.Err, "compose run for %s/%s failed", msg.Env, msg.Profile)
		return m, m.notification.Show("run failed: "+msg.Err.Error(), components.NotificationError)
	}
	return m, m.notification.Show("finished "+msg.Env+"/"+msg.Profile, components.NotificationSuccess)
}

func (m *Model) handleComposeDown(msg ComposeDownMsg) (tea.Model, tea.Cmd) {
	m.stopping = false
	m.composeFile = ""
	if msg.Err != nil {
		logging.Error(tuiSubsystem, msg.Err, "compose down failed")
		return m, m.notification.Show("down: "+msg.Err.Error(), components.NotificationError)
	}
	return m, m.notification.Show("stopped", components.NotificationSuccess)
}

// layout distributes the terminal between the sidebar panels, the log
// pane, and the chrome lines, then resizes the viewports to the panel
// interiors.
func (m *Model) layout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	m.help.Width = m.width

	bodyHeight := m.bodyHeight()
	logWidth := m.width
	if m.sidebarOpen {
		logWidth = m.width - sidebarWidth
		envHeight := (bodyHeight + 1) / 2
		profileHeight := bodyHeight - envHeight

		envPanel := components.NewPanel(envPanelTitle).WithDimensions(sidebarWidth, envHeight)
		m.envViewport.Width = envPanel.InnerWidth()
		m.envViewport.Height = envPanel.InnerHeight()
		m.envList.SetWidth(envPanel.InnerWidth())

		profilePanel := components.NewPanel(profilePanelTitle).WithDimensions(sidebarWidth, profileHeight)
		m.profileViewport.Width = profilePanel.InnerWidth()
		m.profileViewport.Height = profilePanel.InnerHeight()
		m.profileList.SetWidth(profilePanel.InnerWidth())
	}

	logPanel := components.NewPanel(logPanelTitle).WithDimensions(logWidth, bodyHeight)
	m.logViewport.Width = logPanel.InnerWidth()
	m.logViewport.Height = logPanel.InnerHeight()

	m.syncSidebar()
	m.syncLog()
}

// syncSidebar pushes the current list renderings into their viewports.
func (m *Model) syncSidebar() {
	m.envViewport.SetContent(m.envList.View())
	m.profileViewport.SetContent(m.profileList.View())
}

// syncLog refreshes the log viewport, keeping it glued to the bottom
// unless the user scrolled away.
func (m *Model) syncLog() {
	follow := m.logViewport.AtBottom()
	m.logViewport.SetContent(strings.Join(m.logLines, "\n"))
	if follow {
		m.logViewport.GotoBottom()
	}
}

func (m *Model) appendLog(line string) {
	m.logLines = append(m.logLines, line)
	if len(m.logLines) > maxLogLines {
		m.logLines = m.logLines[len(m.logLines)-maxLogLines:]
	}
	m.syncLog()
}
