package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chassing/qontract-development-cli/internal/config"
	"github.com/chassing/qontract-development-cli/internal/store"
	"github.com/chassing/qontract-development-cli/internal/tui/design"
	"github.com/chassing/qontract-development-cli/pkg/logging"
)

// Run starts the interactive UI and blocks until the user quits. Logging
// is switched into channel mode for the duration so nothing writes to
// stderr behind the alternate screen.
func Run(cfg *config.Config, version string) error {
	level := logging.LevelInfo
	if cfg.Debug {
		level = logging.LevelDebug
	}
	logCh := logging.InitForTUI(level)
	defer logging.CloseTUIChannel()

	// Query the terminal background before entering the alternate screen;
	// the answer is unreliable afterwards.
	design.Initialize(lipgloss.HasDarkBackground())

	st := store.New(cfg.EnvironmentsDir, cfg.ProfilesDir)
	watcher, err := st.Watch()
	if err != nil {
		return err
	}
	defer watcher.Close()

	m := NewModel(cfg, st, watcher, logCh, version)
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
