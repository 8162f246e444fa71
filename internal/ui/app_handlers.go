package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"productdesk/internal/product"
	"productdesk/internal/productview"
)

// startFetch marks a fetch in flight and issues GET /viewall.
func (a *appModelAdapter) startFetch() tea.Cmd {
	if a.Client == nil {
		return nil
	}
	a.State = a.State.FetchStarted()
	return tea.Batch(
		a.List.SetLoading(true),
		fetchAllCmd(a.ctx, a.Client),
	)
}

// applyEffect performs the follow-up a reducer asked for.
func (a *appModelAdapter) applyEffect(eff productview.Effect) tea.Cmd {
	if eff == productview.EffectRefresh {
		return a.startFetch()
	}
	return nil
}

// currentTarget is the product that d and e act on: the search result on the
// detail screen, otherwise the highlighted list row.
func (a *appModelAdapter) currentTarget() (product.Product, bool) {
	if a.Mode == ModeDetail {
		if r := a.State.Search.Result; r != nil {
			return *r, true
		}
		return product.Product{}, false
	}
	return a.List.SelectedProduct()
}

// handleProductsFetched replaces the list with the fetched products, or reports the failure.
func (a *appModelAdapter) handleProductsFetched(msg ProductsFetchedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		a.Log.WarnContext(a.ctx, "fetch products failed", "error", msg.Err)
		a.State = a.State.ListFailed()
	} else {
		a.State = a.State.ListLoaded(msg.Products)
		a.List.SetProducts(a.State.Products)
	}
	return a, a.List.SetLoading(a.State.IsLoading())
}

// handleShowAddProduct opens the add form, pre-filled with the current draft.
func (a *appModelAdapter) handleShowAddProduct() (tea.Model, tea.Cmd) {
	if _, ok := a.topAddModal(); ok {
		return a, nil
	}
	modal := NewAddProductModal(a.State.Draft)
	a.Overlays.Push(Overlay{View: modal, Dismiss: "esc"})
	return a, modal.Init()
}

// handleSubmitProduct validates the draft and sends it when valid.
func (a *appModelAdapter) handleSubmitProduct() (tea.Model, tea.Cmd) {
	if modal, ok := a.topAddModal(); ok {
		a.State = a.State.DraftChanged(modal.Draft())
	}
	var (
		p  product.Product
		ok bool
	)
	a.State, p, ok = a.State.SubmitDraft()
	if !ok {
		if modal, open := a.topAddModal(); open {
			modal.Err = a.State.Err
		}
		return a, nil
	}
	if a.Client == nil {
		return a, nil
	}
	a.Log.DebugContext(a.ctx, "submitting product", "id", p.ID)
	return a, addProductCmd(a.ctx, a.Client, p)
}

// handleProductAdded closes the form and refreshes on success, or shows the error.
func (a *appModelAdapter) handleProductAdded(msg ProductAddedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		a.Log.WarnContext(a.ctx, "add product failed", "id", msg.Product.ID, "error", msg.Err)
		a.State = a.State.AddFailed(msg.Err)
		if modal, ok := a.topAddModal(); ok {
			modal.Err = a.State.Err
		}
		return a, nil
	}
	var eff productview.Effect
	a.State, eff = a.State.AddSucceeded()
	a.Overlays.PopIf(isAddModal)
	return a, a.applyEffect(eff)
}

// handleShowDeleteProduct asks for confirmation before deleting the current target.
func (a *appModelAdapter) handleShowDeleteProduct() (tea.Model, tea.Cmd) {
	p, ok := a.currentTarget()
	if !ok {
		return a, nil
	}
	a.Overlays.Push(Overlay{View: NewDeleteProductConfirmModal(p), Dismiss: "esc"})
	return a, nil
}

// handleDeleteProduct sends the confirmed delete.
func (a *appModelAdapter) handleDeleteProduct(msg DeleteProductMsg) (tea.Model, tea.Cmd) {
	a.Overlays.PopIf(func(v View) bool {
		_, ok := v.(*ConfirmModal)
		return ok
	})
	if a.Client == nil {
		return a, nil
	}
	return a, deleteProductCmd(a.ctx, a.Client, msg.ID)
}

// handleProductDeleted shows the server's message and refreshes whenever a response arrived.
func (a *appModelAdapter) handleProductDeleted(msg ProductDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		a.Log.WarnContext(a.ctx, "delete product failed", "id", msg.ID, "error", msg.Err)
	}
	var eff productview.Effect
	a.State, eff = a.State.DeleteResult(msg.Message, msg.Err)
	return a, a.applyEffect(eff)
}

// handleShowSearch opens the search prompt with the previous query.
func (a *appModelAdapter) handleShowSearch() (tea.Model, tea.Cmd) {
	modal := NewSearchModal(a.State.Search.Query)
	a.Overlays.Push(Overlay{View: modal, Dismiss: "esc"})
	return a, modal.Init()
}

// handleSearchProduct switches to the detail screen and looks the id up.
// An empty query only sets the validation error.
func (a *appModelAdapter) handleSearchProduct(msg SearchProductMsg) (tea.Model, tea.Cmd) {
	a.Overlays.PopIf(func(v View) bool {
		_, ok := v.(*SearchModal)
		return ok
	})
	var (
		id int
		ok bool
	)
	a.State, id, ok = a.State.SearchRequested(msg.Query)
	a.showDetail()
	if !ok || a.Client == nil {
		return a, nil
	}
	return a, searchProductCmd(a.ctx, a.Client, id)
}

// handleProductSearched stores the found product or the not-found error.
func (a *appModelAdapter) handleProductSearched(msg ProductSearchedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		a.Log.DebugContext(a.ctx, "search missed", "id", msg.ID, "error", msg.Err)
		a.State = a.State.SearchMissed()
	} else {
		a.State = a.State.SearchFound(msg.Product)
	}
	if a.Detail != nil {
		a.Detail.Search = a.State.Search
	}
	return a, nil
}

// handleEditProduct raises the blocking placeholder notice for the current target.
func (a *appModelAdapter) handleEditProduct() (tea.Model, tea.Cmd) {
	p, ok := a.currentTarget()
	if !ok {
		return a, nil
	}
	a.State = a.State.EditRequested(p.ID)
	a.Overlays.Push(Overlay{View: NewNoticeModal(a.State.Notice)})
	return a, nil
}

// handleDismissNotice clears the notice and closes its modal.
func (a *appModelAdapter) handleDismissNotice() (tea.Model, tea.Cmd) {
	a.State = a.State.NoticeDismissed()
	a.Overlays.PopIf(func(v View) bool {
		_, ok := v.(*NoticeModal)
		return ok
	})
	return a, nil
}

func (a *appModelAdapter) showDetail() {
	a.Mode = ModeDetail
	if a.Detail == nil {
		a.Detail = NewProductDetailView(a.State.Search)
		if a.width > 0 {
			a.Detail.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
		}
		return
	}
	a.Detail.Search = a.State.Search
}

func (a *appModelAdapter) topAddModal() (*AddProductModal, bool) {
	top, ok := a.Overlays.Peek()
	if !ok {
		return nil, false
	}
	modal, ok := top.View.(*AddProductModal)
	return modal, ok
}

func isAddModal(v View) bool {
	_, ok := v.(*AddProductModal)
	return ok
}
