package ui

import (
	"productdesk/internal/product"
)

// ProductsFetchedMsg carries the outcome of GET /viewall.
type ProductsFetchedMsg struct {
	Products []product.Product
	Err      error
}

// ProductAddedMsg carries the outcome of POST /add.
type ProductAddedMsg struct {
	Product product.Product
	Err     error
}

// ProductDeletedMsg carries the outcome of DELETE /delete/{id}.
// Message is the server's body text, present even when Err is a status error.
type ProductDeletedMsg struct {
	ID      int
	Message string
	Err     error
}

// ProductSearchedMsg carries the outcome of GET /product/{id}.
type ProductSearchedMsg struct {
	ID      int
	Product product.Product
	Err     error
}

// RefreshMsg triggers a manual list refresh (r or SPC r).
type RefreshMsg struct{}

// ShowAddProductMsg opens the add-product form (a or SPC p a).
type ShowAddProductMsg struct{}

// SubmitProductMsg is sent when the user submits the add-product form.
type SubmitProductMsg struct{}

// ShowDeleteProductMsg opens the delete confirmation for the current target (d or SPC p d).
type ShowDeleteProductMsg struct{}

// DeleteProductMsg is sent when the user confirms a delete.
type DeleteProductMsg struct {
	ID int
}

// ShowSearchMsg opens the search-by-id prompt (/ or SPC p s).
type ShowSearchMsg struct{}

// SearchProductMsg is sent when the user submits a search query.
type SearchProductMsg struct {
	Query string
}

// EditProductMsg requests editing the current target (e or SPC p e). Not implemented.
type EditProductMsg struct{}

// DismissModalMsg is sent when user cancels a modal (Esc).
type DismissModalMsg struct{}

// DismissNoticeMsg is sent when the user acknowledges the placeholder notice.
type DismissNoticeMsg struct{}

// BackMsg returns from the detail screen to the list.
type BackMsg struct{}
