package main

import tea "github.com/charmbracelet/bubbletea"

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", " ", "n":
			m.step()
		case "left", "p":
			if m.pos > 0 {
				m.rebuild(m.pos - 1)
			}
		case "r":
			m.rebuild(0)
		case "e":
			for m.step() {
			}
		}
	}
	return m, nil
}
