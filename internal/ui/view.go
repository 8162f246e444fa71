package ui

import tea "github.com/charmbracelet/bubbletea"

// View is one screen or modal with its own Elm-style init, update and render.
type View interface {
	Init() tea.Cmd
	Update(tea.Msg) (View, tea.Cmd)
	View() string
}
