package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/chassing/qontract-development-cli/internal/tui/components"
	"github.com/chassing/qontract-development-cli/internal/tui/design"
	"github.com/chassing/qontract-development-cli/pkg/logging"
)

const (
	envPanelTitle     = "Environments"
	profilePanelTitle = "Profiles"
	logPanelTitle     = "Logs"
)

// View renders the full screen: header, sidebar plus log pane, the
// notification line, and the help footer.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "Initializing..."
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderBody(),
		m.renderStatusLine(),
		m.renderFooter(),
	)
}

func (m *Model) renderHeader() string {
	header := components.NewHeader(appTitle).
		WithWidth(m.width).
		WithRightContent(m.version)
	if m.activeEnv != "" || m.activeProfile != "" {
		header = header.WithSubtitle(m.activeEnv + " / " + m.activeProfile)
	}
	if m.running || m.stopping {
		header = header.WithSpinner(m.spinner.View())
	}
	return header.Render()
}

func (m *Model) renderBody() string {
	bodyHeight := m.bodyHeight()
	if !m.sidebarOpen {
		return components.NewPanel(logPanelTitle).
			WithDimensions(m.width, bodyHeight).
			WithContent(m.logViewport.View()).
			Render()
	}

	envHeight := (bodyHeight + 1) / 2
	profileHeight := bodyHeight - envHeight
	sidebar := lipgloss.JoinVertical(lipgloss.Left,
		components.NewPanel(envPanelTitle).
			WithDimensions(sidebarWidth, envHeight).
			WithContent(m.envViewport.View()).
			SetFocused(m.focus == focusEnvironments).
			Render(),
		components.NewPanel(profilePanelTitle).
			WithDimensions(sidebarWidth, profileHeight).
			WithContent(m.profileViewport.View()).
			SetFocused(m.focus == focusProfiles).
			Render(),
	)
	logPane := components.NewPanel(logPanelTitle).
		WithDimensions(m.width-sidebarWidth, bodyHeight).
		WithContent(m.logViewport.View()).
		Render()
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, logPane)
}

// renderStatusLine shows the active notification, or a quiet run status
// while compose is up.
func (m *Model) renderStatusLine() string {
	if m.notification.Visible() {
		return m.notification.View()
	}
	switch {
	case m.stopping:
		return design.TextSecondaryStyle.Render(" stopping " + m.activeEnv + "/" + m.activeProfile)
	case m.running:
		return design.TextSecondaryStyle.Render(" running " + m.activeEnv + "/" + m.activeProfile)
	}
	return ""
}

func (m *Model) renderFooter() string {
	return design.FooterStyle.Render(m.help.View(m.keys))
}

// bodyHeight is the terminal height minus the header, the notification
// line, and the help footer.
func (m *Model) bodyHeight() int {
	h := m.height - 2 - lipgloss.Height(m.renderFooter())
	if h < design.MinPanelHeight {
		h = design.MinPanelHeight
	}
	return h
}

// renderLogEntry formats one entry for the log pane.
func renderLogEntry(entry logging.Entry) string {
	style := design.LogInfoStyle
	switch entry.Level {
	case logging.LevelDebug:
		style = design.LogDebugStyle
	case logging.LevelWarn:
		style = design.LogWarnStyle
	case logging.LevelError:
		style = design.LogErrorStyle
	}
	message := entry.Message
	if entry.Err != nil {
		message = fmt.Sprintf("%s: %v", message, entry.Err)
	}
	return fmt.Sprintf("%s %s %s %s",
		design.TextSecondaryStyle.Render(entry.Timestamp.Format("15:04:05")),
		style.Render(entry.Level.String()),
		design.TextSecondaryStyle.Render("["+entry.Subsystem+"]"),
		style.Render(message),
	)
}
