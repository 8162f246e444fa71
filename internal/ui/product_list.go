package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"productdesk/internal/product"
)

// Until the first WindowSizeMsg arrives.
const (
	defaultListWidth  = 100
	defaultListHeight = 20
)

// productItem implements list.Item for product.Product.
type productItem struct {
	product.Product
}

func (p productItem) FilterValue() string { return p.Name }
func (p productItem) Title() string       { return p.Line() }
func (p productItem) Description() string { return "" }

// ProductListView renders the product list with j/k navigation.
type ProductListView struct {
	list     list.Model
	Products []product.Product
	spinner  spinner.Model
	loading  bool
}

// Ensure ProductListView implements View.
var _ View = (*ProductListView)(nil)

// NewProductListView creates an empty list. Products arrive via SetProducts.
func NewProductListView() *ProductListView {
	l := list.New(nil, NewCompactListDelegate(), defaultListWidth, defaultListHeight)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccent))

	return &ProductListView{
		list:     l,
		Products: []product.Product{},
		spinner:  s,
	}
}

// Selected returns the index of the highlighted product.
func (v *ProductListView) Selected() int {
	return v.list.Index()
}

// SelectedProduct returns the highlighted product, if any.
func (v *ProductListView) SelectedProduct() (product.Product, bool) {
	idx := v.list.Index()
	if idx < 0 || idx >= len(v.Products) {
		return product.Product{}, false
	}
	return v.Products[idx], true
}

// SetProducts replaces the rows, keeping the cursor on the same index when possible.
func (v *ProductListView) SetProducts(products []product.Product) {
	selected := v.list.Index()
	v.Products = products
	items := make([]list.Item, len(products))
	for i, p := range products {
		items[i] = productItem{Product: p}
	}
	v.list.SetItems(items)
	if selected >= len(products) {
		selected = len(products) - 1
	}
	if selected < 0 {
		selected = 0
	}
	v.list.Select(selected)
}

// SetLoading toggles the spinner and returns the command that drives it.
func (v *ProductListView) SetLoading(loading bool) tea.Cmd {
	wasLoading := v.loading
	v.loading = loading
	if loading && !wasLoading {
		return v.spinner.Tick
	}
	return nil
}

// Loading reports whether the spinner is shown.
func (v *ProductListView) Loading() bool {
	return v.loading
}

// Init implements View.
func (v *ProductListView) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (v *ProductListView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.list.SetWidth(msg.Width)
		v.list.SetHeight(max(msg.Height-8, 3)) // header, notification, hints
		return v, nil
	case spinner.TickMsg:
		if v.loading {
			var cmd tea.Cmd
			v.spinner, cmd = v.spinner.Update(msg)
			return v, cmd
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

// View implements View.
func (v *ProductListView) View() string {
	var b strings.Builder
	title := fmt.Sprintf("Product List (%d)", len(v.Products))
	if v.loading {
		title += " " + v.spinner.View()
	}
	b.WriteString(Styles.Section.Render(title) + "\n")
	if len(v.Products) == 0 {
		b.WriteString(Styles.Empty.Render("No products found"))
		return b.String()
	}
	b.WriteString(v.list.View())
	return b.String()
}
