package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"productdesk/internal/product"
	"productdesk/internal/productview"
	"productdesk/internal/ui/textutil"
)

// ProductDetailView shows the outcome of the latest search: the found
// product or the search error.
type ProductDetailView struct {
	Search productview.SearchState
	width  int
}

// Ensure ProductDetailView implements View.
var _ View = (*ProductDetailView)(nil)

// NewProductDetailView creates a detail view for s.
func NewProductDetailView(s productview.SearchState) *ProductDetailView {
	return &ProductDetailView{Search: s}
}

// Init implements View.
func (v *ProductDetailView) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (v *ProductDetailView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
	case tea.KeyMsg:
		if msg.String() == "esc" {
			return v, func() tea.Msg { return BackMsg{} }
		}
	}
	return v, nil
}

// View implements View.
func (v *ProductDetailView) View() string {
	width := v.width
	if width == 0 {
		width = 100
	}
	var b strings.Builder
	title := "Search"
	if v.Search.Query != "" {
		title = fmt.Sprintf("Search: %s", v.Search.Query)
	}
	b.WriteString(Styles.Section.Render(title) + "\n")

	if v.Search.Err != "" {
		b.WriteString(Styles.Error.Render(v.Search.Err))
		return Styles.BoxCompact.Render(b.String())
	}
	p := v.Search.Result
	if p == nil {
		b.WriteString(Styles.Empty.Render("No search yet"))
		return Styles.BoxCompact.Render(b.String())
	}
	b.WriteString(Styles.Normal.Render(textutil.Truncate(p.Line(), width)) + "\n\n")

	rows := [][2]string{
		{"ID", strconv.Itoa(p.ID)},
		{"Name", p.Name},
		{"Cost", "₹" + product.FormatCost(p.Cost)},
		{"Company", p.Company},
		{"Contact", p.Contact},
	}
	for _, r := range rows {
		label := Styles.Muted.Render(textutil.Fit(r[0], 9))
		b.WriteString(label + " " + Styles.Normal.Render(textutil.Truncate(r[1], max(width-10, 10))) + "\n")
	}
	return Styles.BoxCompact.Render(strings.TrimRight(b.String(), "\n"))
}
