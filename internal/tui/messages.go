package tui

import (
	"github.com/chassing/qontract-development-cli/pkg/logging"
)

// EnvSelectedMsg reports the environment under the cursor in the sidebar.
type EnvSelectedMsg struct {
	Name string
}

// ProfileSelectedMsg reports the profile under the cursor in the sidebar.
type ProfileSelectedMsg struct {
	Name string
}

// NewEnvironmentMsg reports an environment file created while the UI runs.
type NewEnvironmentMsg struct {
	Name string
}

// NewProfileMsg reports a profile file created while the UI runs.
type NewProfileMsg struct {
	Name string
}

// ListsLoadedMsg carries the initial directory listings.
type ListsLoadedMsg struct {
	Environments []string
	Profiles     []string
	Err          error
}

// LogEntryMsg delivers one entry from the logging channel to the log pane.
type LogEntryMsg struct {
	Entry logging.Entry
}

// LogClosedMsg signals that the logging channel was closed.
type LogClosedMsg struct{}

// ComposeReadyMsg reports that the compose file for a run was rendered,
// or that rendering it failed.
type ComposeReadyMsg struct {
	Env     string
	Profile string
	File    string
	Err     error
}

// ComposeExitedMsg reports that a running compose process terminated.
type ComposeExitedMsg struct {
	Env     string
	Profile string
	Err     error
}

// ComposeDownMsg reports the result of tearing the services down.
type ComposeDownMsg struct {
	Err error
}

// PathCopiedMsg reports the result of copying a file path to the clipboard.
type PathCopiedMsg struct {
	Path string
	Err  error
}
