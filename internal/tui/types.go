package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chassing/qontract-development-cli/internal/config"
	"github.com/chassing/qontract-development-cli/internal/store"
	"github.com/chassing/qontract-development-cli/internal/tui/components"
	"github.com/chassing/qontract-development-cli/internal/tui/design"
	"github.com/chassing/qontract-development-cli/pkg/logging"
)

const appTitle = "Qontract Development CLI"

// focusArea identifies which sidebar panel receives navigation keys.
type focusArea int

const (
	focusEnvironments focusArea = iota
	focusProfiles
)

const (
	sidebarWidth = 30
	maxLogLines  = 2000
)

// Model is the bubbletea model behind `qd ui`. All state mutation happens in
// Update; commands deliver external events (log entries, watcher hits,
// compose exits) as messages.
type Model struct {
	cfg     *config.Config
	store   *store.Store
	watcher *store.Watcher
	version string

	keys    KeyMap
	help    help.Model
	spinner spinner.Model

	envViewport     viewport.Model
	profileViewport viewport.Model
	logViewport     viewport.Model
	envList         *components.ItemList
	profileList     *components.ItemList
	notification    *components.Notification

	focus       focusArea
	sidebarOpen bool
	width       int
	height      int

	activeEnv     string
	activeProfile string

	running       bool
	stopping      bool
	composeFile   string
	composeCancel context.CancelFunc

	logCh    <-chan logging.Entry
	logLines []string
}

// NewModel assembles the UI around a loaded config, a store, and the store's
// file watcher. logCh is the channel handed out by logging.InitForTUI.
func NewModel(cfg *config.Config, st *store.Store, watcher *store.Watcher, logCh <-chan logging.Entry, version string) *Model {
	m := &Model{
		cfg:          cfg,
		store:        st,
		watcher:      watcher,
		version:      version,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		notification: components.NewNotification(),
		sidebarOpen:  true,
		logCh:        logCh,
	}

	m.spinner = spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(design.TextInfoStyle),
	)

	m.envViewport = viewport.New(0, 0)
	m.profileViewport = viewport.New(0, 0)
	m.logViewport = viewport.New(0, 0)

	m.envList = components.NewItemList(
		&vpScroller{vp: &m.envViewport},
		func(item string) tea.Msg { return EnvSelectedMsg{Name: item} },
	)
	m.profileList = components.NewItemList(
		&vpScroller{vp: &m.profileViewport},
		func(item string) tea.Msg { return ProfileSelectedMsg{Name: item} },
	)

	return m
}

// focusedList returns the list the navigation keys act on.
func (m *Model) focusedList() *components.ItemList {
	if m.focus == focusProfiles {
		return m.profileList
	}
	return m.envList
}

// vpScroller adapts a bubbles viewport to components.Scroller.
type vpScroller struct {
	vp *viewport.Model
}

func (s *vpScroller) ContentHeight() int { return s.vp.Height }
func (s *vpScroller) ScrollOffset() int  { return s.vp.YOffset }
func (s *vpScroller) ScrollDown()        { s.vp.LineDown(1) }
func (s *vpScroller) ScrollUp()          { s.vp.LineUp(1) }
