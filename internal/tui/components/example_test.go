package components_test

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chassing/qontract-development-cli/internal/tui/components"
)

// ExamplePanel demonstrates how to create and use a panel component
func ExamplePanel() {
	panel := components.NewPanel("Environments").
		WithContent("prod\nstage").
		WithDimensions(40, 10).
		SetFocused(true)

	output := panel.Render()
	fmt.Println(len(output) > 0)
	// Output: true
}

// ExampleHeader demonstrates header component usage
func ExampleHeader() {
	header := components.NewHeader("Qontract Development CLI").
		WithSubtitle("prod / sql-query").
		WithRightContent("v1.0.0").
		WithWidth(80)

	output := header.Render()
	fmt.Println(len(output) > 0)
	// Output: true
}

// ExampleItemList demonstrates the selectable list and its notifications
func ExampleItemList() {
	type picked struct{ item string }

	list := components.NewItemList(nil, func(item string) tea.Msg {
		return picked{item: item}
	})

	cmd := list.AddItems("app-interface-dev", "prod")
	fmt.Println(cmd().(picked).item)

	list.MoveDown()
	item, _ := list.SelectedItem()
	fmt.Println(item)
	// Output:
	// app-interface-dev
	// prod
}
