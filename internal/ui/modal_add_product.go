package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"productdesk/internal/product"
)

// AddProductModal is the add-product form: one input per Draft field.
// Tab/shift+tab move between fields, Enter submits, Esc cancels.
type AddProductModal struct {
	inputs []textinput.Model
	focus  FocusManager
	Err    string // validation or server error shown under the form
}

// Ensure AddProductModal implements View.
var _ View = (*AddProductModal)(nil)

// NewAddProductModal creates the form pre-filled with draft.
func NewAddProductModal(draft product.Draft) *AddProductModal {
	m := &AddProductModal{
		inputs: make([]textinput.Model, len(product.DraftFields)),
		focus:  FocusManager{Size: len(product.DraftFields)},
	}
	for i, f := range product.DraftFields {
		ti := textinput.New()
		ti.Placeholder = f.Label()
		ti.Width = 40
		ti.Prompt = "  "
		switch f {
		case product.FieldID:
			ti.CharLimit = 18
			ti.Validate = digitsOnly(false)
		case product.FieldCost:
			ti.CharLimit = 24
			ti.Validate = digitsOnly(true)
		}
		ti.SetValue(draft.Get(f))
		m.inputs[i] = ti
	}
	m.focus.OnChange = func(from, to int) {
		m.inputs[from].Blur()
		m.inputs[from].Prompt = "  "
		m.inputs[to].Focus()
		m.inputs[to].Prompt = Styles.Focused.Render("> ")
	}
	m.inputs[0].Focus()
	m.inputs[0].Prompt = Styles.Focused.Render("> ")
	return m
}

// digitsOnly flags text that could never parse as a number. The input keeps
// the text; the flag is shown next to the field.
func digitsOnly(allowDecimal bool) textinput.ValidateFunc {
	return func(s string) error {
		for i, r := range s {
			switch {
			case r >= '0' && r <= '9':
			case r == '-' && i == 0:
			case (r == '.' || r == 'e' || r == 'E' || r == '+') && allowDecimal:
			default:
				return &product.ValidationError{Reason: "not a number"}
			}
		}
		return nil
	}
}

// Draft returns the form's current values.
func (m *AddProductModal) Draft() product.Draft {
	var d product.Draft
	for i, f := range product.DraftFields {
		d = d.With(f, m.inputs[i].Value())
	}
	return d
}

// Focused returns the field that has focus.
func (m *AddProductModal) Focused() product.DraftField {
	return product.DraftFields[m.focus.Current]
}

// Init implements View.
func (m *AddProductModal) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements View.
func (m *AddProductModal) Update(msg tea.Msg) (View, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return DismissModalMsg{} }
		case "enter":
			return m, func() tea.Msg { return SubmitProductMsg{} }
		case "tab", "down":
			m.focus.Next()
			return m, nil
		case "shift+tab", "up":
			m.focus.Prev()
			return m, nil
		}
	}
	var cmd tea.Cmd
	idx := m.focus.Current
	m.inputs[idx], cmd = m.inputs[idx].Update(msg)
	return m, cmd
}

// View implements View.
func (m *AddProductModal) View() string {
	var b strings.Builder
	b.WriteString(Styles.Title.Render("Add Product") + "\n\n")
	for i, f := range product.DraftFields {
		label := Styles.Muted.Render(f.Label())
		if i == m.focus.Current {
			label = Styles.Focused.Render(f.Label())
		}
		b.WriteString(label + "\n")
		b.WriteString(m.inputs[i].View())
		if err := m.inputs[i].Err; err != nil && m.inputs[i].Value() != "" {
			b.WriteString(" " + Styles.Error.Render(err.Error()))
		}
		b.WriteString("\n")
	}
	if m.Err != "" {
		b.WriteString("\n" + Styles.Error.Render(m.Err) + "\n")
	}
	b.WriteString("\n" + Styles.Hint.Render("Tab: next field  Enter: add product  Esc: cancel"))
	return Styles.Box.Render(b.String())
}
