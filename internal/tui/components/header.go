package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/chassing/qontract-development-cli/internal/tui/design"
)

// Header is the single-line application header: title and context on the
// left, version or other metadata right-aligned.
type Header struct {
	Title        string
	Subtitle     string
	SpinnerView  string
	Width        int
	RightContent string
}

// NewHeader creates a new header.
func NewHeader(title string) *Header {
	return &Header{
		Title: title,
		Width: 80,
	}
}

// WithSubtitle adds a subtitle after the title.
func (h *Header) WithSubtitle(subtitle string) *Header {
	h.Subtitle = subtitle
	return h
}

// WithSpinner shows a spinner frame before the title.
func (h *Header) WithSpinner(spinnerView string) *Header {
	h.SpinnerView = spinnerView
	return h
}

// WithRightContent adds right-aligned content.
func (h *Header) WithRightContent(content string) *Header {
	h.RightContent = content
	return h
}

// WithWidth sets the header width.
func (h *Header) WithWidth(width int) *Header {
	h.Width = width
	return h
}

// Render returns the styled header line.
func (h *Header) Render() string {
	var leftParts []string
	if h.SpinnerView != "" {
		leftParts = append(leftParts, h.SpinnerView)
	}
	leftParts = append(leftParts, h.Title)
	if h.Subtitle != "" {
		leftParts = append(leftParts, design.TextSecondaryStyle.Render(h.Subtitle))
	}
	leftContent := strings.Join(leftParts, " ")

	availableWidth := h.Width - design.SpaceSM*2
	content := leftContent
	if h.RightContent != "" {
		leftWidth := lipgloss.Width(leftContent)
		rightWidth := lipgloss.Width(h.RightContent)
		if leftWidth+rightWidth+1 <= availableWidth {
			padding := availableWidth - leftWidth - rightWidth
			content = leftContent + strings.Repeat(" ", padding) + h.RightContent
		} else {
			content = truncate(leftContent, availableWidth)
		}
	}

	return design.HeaderStyle.Copy().
		Width(h.Width).
		MaxWidth(h.Width).
		Render(content)
}
