package ui

import tea "github.com/charmbracelet/bubbletea"

// NoticeModal blocks input until the user acknowledges it with Enter or Esc.
type NoticeModal struct {
	Text string
}

// Ensure NoticeModal implements View.
var _ View = (*NoticeModal)(nil)

// NewNoticeModal creates a notice showing text.
func NewNoticeModal(text string) *NoticeModal {
	return &NoticeModal{Text: text}
}

// Init implements View.
func (m *NoticeModal) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (m *NoticeModal) Update(msg tea.Msg) (View, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter", "esc":
			return m, func() tea.Msg { return DismissNoticeMsg{} }
		}
	}
	return m, nil
}

// View implements View.
func (m *NoticeModal) View() string {
	content := Styles.Title.Render("Notice") + "\n\n"
	content += Styles.Label.Render(m.Text) + "\n\n"
	content += Styles.Hint.Render("Enter: OK")
	return Styles.Box.Render(content)
}
