package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chassing/qontract-development-cli/internal/tui/design"
)

// NotificationType selects the toast styling.
type NotificationType int

const (
	NotificationInfo NotificationType = iota
	NotificationSuccess
	NotificationError
)

// NotificationDuration is how long a toast stays on screen before it
// dismisses itself.
const NotificationDuration = 3 * time.Second

// NotificationExpiredMsg asks the update loop to hide the toast.
type NotificationExpiredMsg struct{}

// Notification is the transient toast shown on the status line. Showing a
// new message cancels the pending dismissal of the one it replaces, so an
// old timer can never hide a newer message early.
type Notification struct {
	Text    string
	Type    NotificationType
	visible bool
	cancel  chan struct{}
}

// NewNotification creates a hidden notification.
func NewNotification() *Notification {
	return &Notification{}
}

// Show replaces the current toast and schedules its dismissal.
func (n *Notification) Show(text string, notificationType NotificationType) tea.Cmd {
	n.Text = text
	n.Type = notificationType
	n.visible = true

	if n.cancel != nil {
		close(n.cancel)
	}
	n.cancel = make(chan struct{})
	captured := n.cancel

	return tea.Tick(NotificationDuration, func(time.Time) tea.Msg {
		select {
		case <-captured:
			return nil
		default:
			return NotificationExpiredMsg{}
		}
	})
}

// Dismiss hides the toast immediately.
func (n *Notification) Dismiss() {
	n.visible = false
	if n.cancel != nil {
		close(n.cancel)
		n.cancel = nil
	}
}

// Visible reports whether the toast is on screen.
func (n *Notification) Visible() bool {
	return n.visible
}

// View renders the toast in the style of its type.
func (n *Notification) View() string {
	if !n.visible {
		return ""
	}

	style := design.NotificationStyle
	switch n.Type {
	case NotificationSuccess:
		style = design.NotificationSuccessStyle
	case NotificationError:
		style = design.NotificationErrorStyle
	}
	return style.Render(n.Text)
}
