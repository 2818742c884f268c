package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/chassing/qontract-development-cli/internal/tui/design"
)

// Scroller is the scrollable container an ItemList lives in. The list reads
// the visible geometry from it and asks for single-row, non-animated scroll
// steps to keep the cursor in view.
type Scroller interface {
	// ContentHeight is the number of rows visible inside the container.
	ContentHeight() int
	// ScrollOffset is the index of the topmost visible row.
	ScrollOffset() int
	// ScrollDown scrolls the view down by one row.
	ScrollDown()
	// ScrollUp scrolls the view up by one row.
	ScrollUp()
}

const noSelection = -1

// ItemList is a selectable list of string items. Selection is clamped to the
// item range and never wraps; every selection change is reported through the
// notification constructor handed in at construction. The widget has no
// error states: out-of-range and empty-list operations degrade to no-ops.
type ItemList struct {
	items    []string
	selected int
	scroller Scroller
	notify   func(item string) tea.Msg
	width    int
}

// NewItemList creates an empty list. notify builds the message emitted when
// an item is selected or activated; nil disables notifications.
func NewItemList(scroller Scroller, notify func(item string) tea.Msg) *ItemList {
	return &ItemList{
		selected: noSelection,
		scroller: scroller,
		notify:   notify,
	}
}

// AddItems appends items to the end of the list, keeping their order. Adding
// to a list without a selection selects the first item and reports it.
func (l *ItemList) AddItems(items ...string) tea.Cmd {
	if len(items) == 0 {
		return nil
	}
	l.items = append(l.items, items...)
	if l.selected == noSelection {
		return l.SetSelected(0)
	}
	return nil
}

// SetSelected moves the selection to index i, clamped into the valid range.
// On an empty list the selection stays off. The returned command carries the
// item-selected notification when the selection actually changed.
func (l *ItemList) SetSelected(i int) tea.Cmd {
	if len(l.items) == 0 {
		return nil
	}
	i = clampIndex(i, 0, len(l.items)-1)
	if i == l.selected {
		return nil
	}
	l.selected = i
	return l.notifyCmd(l.items[i])
}

// MoveDown advances the selection by one row. When the new row lands just
// above the bottom edge of the scroller's view, one scroll-down step is
// requested so the cursor stays visible.
func (l *ItemList) MoveDown() tea.Cmd {
	prev := l.selected
	cmd := l.SetSelected(l.selected + 1)
	if l.selected == prev || l.scroller == nil {
		return cmd
	}
	if height := l.scroller.ContentHeight(); height > 0 &&
		(l.selected+1-l.scroller.ScrollOffset())%height == 0 {
		l.scroller.ScrollDown()
	}
	return cmd
}

// MoveUp moves the selection up by one row, requesting one scroll-up step
// when the new row lands on the top edge of the scroller's view.
func (l *ItemList) MoveUp() tea.Cmd {
	prev := l.selected
	cmd := l.SetSelected(l.selected - 1)
	if l.selected == prev || l.scroller == nil {
		return cmd
	}
	if height := l.scroller.ContentHeight(); height > 0 &&
		(l.selected-l.scroller.ScrollOffset())%height == 0 {
		l.scroller.ScrollUp()
	}
	return cmd
}

// Activate reports the item under the cursor even when the selection did not
// change. Without a selection it is a no-op.
func (l *ItemList) Activate() tea.Cmd {
	if l.selected == noSelection {
		return nil
	}
	return l.notifyCmd(l.items[l.selected])
}

// SetWidth sets the width labels are truncated to.
func (l *ItemList) SetWidth(width int) {
	l.width = width
}

// SelectedIndex returns the selected index, or -1 without a selection.
func (l *ItemList) SelectedIndex() int {
	return l.selected
}

// SelectedItem returns the item under the cursor.
func (l *ItemList) SelectedItem() (string, bool) {
	if l.selected == noSelection {
		return "", false
	}
	return l.items[l.selected], true
}

// Count returns the number of items.
func (l *ItemList) Count() int {
	return len(l.items)
}

// Contains reports whether the list already holds item.
func (l *ItemList) Contains(item string) bool {
	for _, existing := range l.items {
		if existing == item {
			return true
		}
	}
	return false
}

// ContentHeight is the height the rendered list occupies: one row per item,
// blank-filled up to the container height.
func (l *ItemList) ContentHeight() int {
	height := len(l.items)
	if l.scroller != nil && l.scroller.ContentHeight() > height {
		height = l.scroller.ContentHeight()
	}
	return height
}

// View renders the list, one row per item, the selected row highlighted.
func (l *ItemList) View() string {
	height := l.ContentHeight()
	rows := make([]string, 0, height)
	for i, item := range l.items {
		rows = append(rows, l.renderRow(item, i == l.selected))
	}
	for len(rows) < height {
		rows = append(rows, "")
	}
	return strings.Join(rows, "\n")
}

// renderRow truncates the label with an ellipsis and italicizes the dotted
// tail (leftmost dot to end), the way file extensions are de-emphasized.
func (l *ItemList) renderRow(item string, selected bool) string {
	label := item
	if l.width > 0 {
		label = runewidth.Truncate(label, l.width, "…")
	}

	style := design.ListItemStyle
	if selected {
		style = design.ListItemSelectedStyle
	}

	dot := strings.Index(label, ".")
	if dot < 0 {
		return style.Render(label)
	}
	return style.Render(label[:dot]) + style.Copy().Italic(true).Render(label[dot:])
}

func (l *ItemList) notifyCmd(item string) tea.Cmd {
	if l.notify == nil {
		return nil
	}
	msg := l.notify(item)
	return func() tea.Msg { return msg }
}

func clampIndex(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
