package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// SearchModal prompts for a product ID. Enter searches, Esc cancels.
// Validation happens on submit so an empty query still reaches the reducer.
type SearchModal struct {
	Input textinput.Model
}

// Ensure SearchModal implements View.
var _ View = (*SearchModal)(nil)

// NewSearchModal creates the prompt pre-filled with the last query.
func NewSearchModal(query string) *SearchModal {
	ti := textinput.New()
	ti.Placeholder = "Product ID"
	ti.CharLimit = 18
	ti.Width = 30
	ti.Validate = digitsOnly(false)
	ti.SetValue(query)
	ti.Focus()
	return &SearchModal{Input: ti}
}

// Init implements View.
func (m *SearchModal) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements View.
func (m *SearchModal) Update(msg tea.Msg) (View, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return DismissModalMsg{} }
		case "enter":
			query := m.Input.Value()
			return m, func() tea.Msg { return SearchProductMsg{Query: query} }
		}
	}
	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

// View implements View.
func (m *SearchModal) View() string {
	content := Styles.Title.Render("Search by ID") + "\n\n"
	content += m.Input.View() + "\n\n"
	content += Styles.Hint.Render("Enter: search  Esc: cancel")
	return Styles.Box.Render(content)
}
