package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/chassing/qontract-development-cli/internal/tui/design"
)

func TestPanel_Render_EdgeCases(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		height  int
		title   string
		content string
	}{
		{
			name:    "zero dimensions",
			width:   0,
			height:  0,
			title:   "Environments",
			content: "prod\nstage",
		},
		{
			name:    "negative dimensions",
			width:   -10,
			height:  -5,
			title:   "Environments",
			content: "prod",
		},
		{
			name:    "empty content",
			width:   40,
			height:  10,
			title:   "Profiles",
			content: "",
		},
		{
			name:    "content exceeding height",
			width:   30,
			height:  6,
			title:   "Profiles",
			content: strings.Repeat("line\n", 20),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			panel := NewPanel(tt.title).
				WithContent(tt.content).
				WithDimensions(tt.width, tt.height)

			output := panel.Render()

			assert.NotEmpty(t, output)
			assert.GreaterOrEqual(t, panel.width(), design.MinPanelWidth)
			assert.GreaterOrEqual(t, panel.height(), design.MinPanelHeight)
		})
	}
}

func TestPanel_Render_ExactDimensions(t *testing.T) {
	panel := NewPanel("Environments").
		WithContent("prod\nstage").
		WithDimensions(30, 8)

	output := panel.Render()

	assert.Equal(t, 30, lipgloss.Width(output))
	assert.Equal(t, 8, lipgloss.Height(output))
}

func TestPanel_InnerDimensions(t *testing.T) {
	panel := NewPanel("Environments").WithDimensions(30, 8)

	frame := design.PanelStyle.GetHorizontalFrameSize()
	assert.Equal(t, 30-frame, panel.InnerWidth())
	// One line of the inner space goes to the title.
	assert.Equal(t, 8-design.PanelStyle.GetVerticalFrameSize()-1, panel.InnerHeight())

	untitled := NewPanel("").WithDimensions(30, 8)
	assert.Equal(t, 8-design.PanelStyle.GetVerticalFrameSize(), untitled.InnerHeight())
}

func TestPanel_FocusSwitchesBorder(t *testing.T) {
	focused := NewPanel("Environments").WithDimensions(30, 8).SetFocused(true).Render()
	blurred := NewPanel("Environments").WithDimensions(30, 8).SetFocused(false).Render()

	assert.NotEqual(t, focused, blurred)
}
