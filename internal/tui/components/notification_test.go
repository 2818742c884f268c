package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotification_ShowAndDismiss(t *testing.T) {
	n := NewNotification()
	assert.False(t, n.Visible())
	assert.Empty(t, n.View())

	cmd := n.Show("profile started", NotificationSuccess)
	require.NotNil(t, cmd)
	assert.True(t, n.Visible())
	assert.Contains(t, n.View(), "profile started")

	n.Dismiss()
	assert.False(t, n.Visible())
	assert.Empty(t, n.View())
}

func TestNotification_NewMessageCancelsPendingDismissal(t *testing.T) {
	n := NewNotification()

	cmd1 := n.Show("first", NotificationInfo)
	require.NotNil(t, cmd1)
	first := n.cancel

	cmd2 := n.Show("second", NotificationError)
	require.NotNil(t, cmd2)
	require.NotEqual(t, first, n.cancel)

	select {
	case <-first:
		// cancelled, the first timer will be ignored
	default:
		t.Fatal("expected the first cancellation channel to be closed")
	}

	assert.Equal(t, "second", n.Text)
	assert.Equal(t, NotificationError, n.Type)
}

func TestNotification_DismissWithoutShowIsSafe(t *testing.T) {
	n := NewNotification()
	assert.NotPanics(t, func() { n.Dismiss() })
}
