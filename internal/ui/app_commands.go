package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"productdesk/internal/product"
)

// ProductAPI is the remote product service as the UI sees it.
// *api.Client implements it.
type ProductAPI interface {
	ListAll(ctx context.Context) ([]product.Product, error)
	Add(ctx context.Context, p product.Product) error
	Delete(ctx context.Context, id int) (string, error)
	Get(ctx context.Context, id int) (product.Product, error)
}

// Each command runs its request on a Bubble Tea goroutine and reports back
// as a message. Commands are not cancelled or serialized; whichever message
// arrives last is applied last.

// fetchAllCmd returns a command that loads the full product list.
func fetchAllCmd(ctx context.Context, c ProductAPI) tea.Cmd {
	return func() tea.Msg {
		products, err := c.ListAll(ctx)
		return ProductsFetchedMsg{Products: products, Err: err}
	}
}

// addProductCmd returns a command that creates p.
func addProductCmd(ctx context.Context, c ProductAPI, p product.Product) tea.Cmd {
	return func() tea.Msg {
		return ProductAddedMsg{Product: p, Err: c.Add(ctx, p)}
	}
}

// deleteProductCmd returns a command that deletes the product with id.
func deleteProductCmd(ctx context.Context, c ProductAPI, id int) tea.Cmd {
	return func() tea.Msg {
		msg, err := c.Delete(ctx, id)
		return ProductDeletedMsg{ID: id, Message: msg, Err: err}
	}
}

// searchProductCmd returns a command that fetches one product by id.
func searchProductCmd(ctx context.Context, c ProductAPI, id int) tea.Cmd {
	return func() tea.Msg {
		p, err := c.Get(ctx, id)
		return ProductSearchedMsg{ID: id, Product: p, Err: err}
	}
}
