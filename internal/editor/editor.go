// Package editor resolves and launches the user's text editor, both as a
// blocking foreground process for CLI commands and as a bubbletea command
// that suspends the TUI while the editor runs.
package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const fallbackEditor = "vi"

// Resolve picks the editor command line. The configured value wins, then
// $VISUAL, then $EDITOR, then vi.
func Resolve(configured string) string {
	if configured != "" {
		return configured
	}
	if v := os.Getenv("VISUAL"); v != "" {
		return v
	}
	if e := os.Getenv("EDITOR"); e != "" {
		return e
	}
	return fallbackEditor
}

// Command builds the exec.Cmd for an editor invocation. The editor value may
// carry arguments ("code --wait"), so it is split on whitespace.
func Command(editorCmd, path string) *exec.Cmd {
	parts := strings.Fields(editorCmd)
	args := append(parts[1:], path)
	return exec.Command(parts[0], args...)
}

// Open runs the editor in the foreground, attached to the current terminal.
func Open(editorCmd, path string) error {
	cmd := Command(editorCmd, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running editor %q: %w", editorCmd, err)
	}
	return nil
}

// ClosedMsg reports that an editor started from the TUI has exited.
type ClosedMsg struct {
	Path string
	Err  error
}

// OpenInTUI returns a command that releases the terminal to the editor and
// emits a ClosedMsg when it exits.
func OpenInTUI(editorCmd, path string) tea.Cmd {
	cmd := Command(editorCmd, path)
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return ClosedMsg{Path: path, Err: err}
	})
}
