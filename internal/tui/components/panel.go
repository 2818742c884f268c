package components

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/chassing/qontract-development-cli/internal/tui/design"
)

// Panel is a titled, bordered box around pre-rendered content. The focused
// panel is drawn with the thick focus border.
type Panel struct {
	Title   string
	Content string
	Width   int
	Height  int
	Focused bool
}

// NewPanel creates a new panel with minimum dimensions.
func NewPanel(title string) *Panel {
	return &Panel{
		Title:  title,
		Width:  design.MinPanelWidth,
		Height: design.MinPanelHeight,
	}
}

// WithContent sets the panel content.
func (p *Panel) WithContent(content string) *Panel {
	p.Content = content
	return p
}

// WithDimensions sets the outer panel dimensions.
func (p *Panel) WithDimensions(width, height int) *Panel {
	p.Width = width
	p.Height = height
	return p
}

// SetFocused updates the focus state.
func (p *Panel) SetFocused(focused bool) *Panel {
	p.Focused = focused
	return p
}

// InnerWidth is the width available to content inside the frame.
func (p *Panel) InnerWidth() int {
	w := p.width() - design.PanelStyle.GetHorizontalFrameSize()
	if w < 1 {
		w = 1
	}
	return w
}

// InnerHeight is the height available to content inside the frame, below the
// title line.
func (p *Panel) InnerHeight() int {
	h := p.height() - design.PanelStyle.GetVerticalFrameSize()
	if p.Title != "" {
		h--
	}
	if h < 1 {
		h = 1
	}
	return h
}

// Render returns the styled panel, exactly Width wide and Height tall.
func (p *Panel) Render() string {
	width := p.width()
	height := p.height()

	style := design.PanelStyle
	titleStyle := design.TitleStyle
	if p.Focused {
		style = design.PanelFocusedStyle
		titleStyle = titleStyle.Copy().Foreground(design.ColorPrimary)
	}

	innerWidth := width - style.GetHorizontalFrameSize()
	innerHeight := height - style.GetVerticalFrameSize()
	if innerWidth < 1 {
		innerWidth = 1
	}
	if innerHeight < 1 {
		innerHeight = 1
	}

	lines := make([]string, 0, innerHeight)
	if p.Title != "" {
		lines = append(lines, titleStyle.Render(truncate(p.Title, innerWidth)))
	}
	if p.Content != "" {
		lines = append(lines, strings.Split(p.Content, "\n")...)
	}
	if len(lines) > innerHeight {
		lines = lines[:innerHeight]
	}
	for len(lines) < innerHeight {
		lines = append(lines, "")
	}

	return style.
		Width(width - style.GetHorizontalBorderSize()).
		Height(height - style.GetVerticalBorderSize()).
		Render(strings.Join(lines, "\n"))
}

func (p *Panel) width() int {
	if p.Width < design.MinPanelWidth {
		return design.MinPanelWidth
	}
	return p.Width
}

func (p *Panel) height() int {
	if p.Height < design.MinPanelHeight {
		return design.MinPanelHeight
	}
	return p.Height
}

// truncate shortens s to width cells, ellipsis included.
func truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}
