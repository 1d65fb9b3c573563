package main

import (
	tea "charm.land/bubbletea/v2"

	"go.jacobcolvin.com/viewlines"
	"go.jacobcolvin.com/viewlines/bubbles/lineviewport"
)

// model wraps the line viewport with quit handling.
type model struct {
	viewport lineviewport.Model
}

func newModel(c *viewlines.Collection, gutter int, lineNumbers bool) model {
	opts := []lineviewport.Option{
		lineviewport.WithGutterWidth(gutter),
	}

	if !lineNumbers {
		opts = append(opts, lineviewport.WithPrinter(viewlines.NewPrinter()))
	}

	return model{
		viewport: lineviewport.New(c, opts...),
	}
}

func (m model) Init() tea.Cmd {
	return m.viewport.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)

	return m, cmd
}

func (m model) View() tea.View {
	return tea.NewView(m.viewport.View())
}
