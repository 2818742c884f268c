// Package tui provides the interactive terminal interface behind `qd ui`.
//
// The interface shows the stored environments and profiles in a sidebar
// next to a log pane and lets the user start and stop the rendered
// docker compose stack without leaving the terminal.
//
// # Architecture
//
// The package is a single Bubble Tea model:
//
//   - Model holds all state; Update is the only place that mutates it
//   - commands.go wraps every blocking operation in a tea.Cmd
//   - view.go renders the state with the shared design system
//
// # Message Flow
//
// The TUI uses a message-based architecture for updates:
//
//  1. Filesystem events, log entries, and compose process exits arrive
//     on channels owned by long-running goroutines.
//  2. Channel listener commands convert them into messages and re-arm
//     themselves after every delivery.
//  3. Update routes each message to its handler and refreshes the
//     affected viewports.
//
// # Keyboard Navigation
//
//   - j/k or arrow keys: move the selection
//   - Tab/Shift+Tab: switch between the sidebar panels
//   - Enter: activate the selection
//   - e: edit the selected file, y: copy its path
//   - s/x: start and stop the compose run
//   - ctrl+b: toggle the sidebar, ?: expand the help footer
//   - q/Ctrl+C: quit
//
// # Usage Example
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	return tui.Run(&cfg, version)
package tui
