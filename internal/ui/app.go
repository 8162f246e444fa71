package ui

import (
	"context"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"productdesk/internal/productview"
	"productdesk/internal/ui/textutil"
)

// AppModel is the product view controller. It owns productview.State, runs
// API calls as commands and folds their results back through the reducers.
type AppModel struct {
	Mode       AppMode
	State      productview.State
	List       *ProductListView
	Detail     *ProductDetailView
	Client     ProductAPI
	KeyHandler *KeyHandler
	Overlays   OverlayStack
	Log        *slog.Logger

	ctx    context.Context
	width  int
	height int
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// NewAppModel creates the root model. ctx bounds every API call it issues.
func NewAppModel(ctx context.Context, client ProductAPI, log *slog.Logger) *AppModel {
	if ctx == nil {
		ctx = context.Background()
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &AppModel{
		Mode:       ModeList,
		State:      productview.New(),
		List:       NewProductListView(),
		Client:     client,
		KeyHandler: NewKeyHandler(newProductKeybinds()),
		Log:        log,
		ctx:        ctx,
	}
}

// newProductKeybinds registers the single-key and SPC-leader bindings.
func newProductKeybinds() *KeybindRegistry {
	reg := NewKeybindRegistry()
	send := func(msg tea.Msg) tea.Cmd { return func() tea.Msg { return msg } }

	reg.BindWithDesc("q", tea.Quit, "Quit")
	reg.BindWithDesc("SPC q", tea.Quit, "Quit")
	reg.BindWithDesc("r", send(RefreshMsg{}), "Refresh")
	reg.BindWithDesc("SPC r", send(RefreshMsg{}), "Refresh")

	for _, b := range []struct {
		key, leader, desc string
		msg               tea.Msg
	}{
		{"a", "SPC p a", "Add", ShowAddProductMsg{}},
		{"d", "SPC p d", "Delete", ShowDeleteProductMsg{}},
		{"/", "SPC p s", "Search", ShowSearchMsg{}},
		{"e", "SPC p e", "Edit", EditProductMsg{}},
	} {
		reg.BindWithDesc(b.key, send(b.msg), b.desc)
		reg.BindWithDesc(b.leader, send(b.msg), b.desc)
	}
	return reg
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}

// Init implements tea.Model. The list is fetched once on mount.
func (a *appModelAdapter) Init() tea.Cmd {
	return a.startFetch()
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.List.Update(msg)
		if a.Detail != nil {
			a.Detail.Update(msg)
		}
		return a, nil

	case ProductsFetchedMsg:
		return a.handleProductsFetched(msg)
	case ProductAddedMsg:
		return a.handleProductAdded(msg)
	case ProductDeletedMsg:
		return a.handleProductDeleted(msg)
	case ProductSearchedMsg:
		return a.handleProductSearched(msg)

	case RefreshMsg:
		return a, a.startFetch()
	case ShowAddProductMsg:
		return a.handleShowAddProduct()
	case SubmitProductMsg:
		return a.handleSubmitProduct()
	case ShowDeleteProductMsg:
		return a.handleShowDeleteProduct()
	case DeleteProductMsg:
		return a.handleDeleteProduct(msg)
	case ShowSearchMsg:
		return a.handleShowSearch()
	case SearchProductMsg:
		return a.handleSearchProduct(msg)
	case EditProductMsg:
		return a.handleEditProduct()
	case DismissModalMsg:
		a.Overlays.Pop()
		return a, nil
	case DismissNoticeMsg:
		return a.handleDismissNotice()
	case BackMsg:
		a.Mode = ModeList
		return a, nil

	case spinner.TickMsg:
		_, cmd := a.List.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		// The topmost overlay takes all key input.
		if top, ok := a.Overlays.Peek(); ok {
			if top.IsDismissKey(msg.String()) {
				a.Overlays.Pop()
				return a, nil
			}
			cmd, _ := a.Overlays.UpdateTop(msg)
			a.syncDraft()
			return a, cmd
		}
		if a.KeyHandler != nil {
			if consumed, keyCmd := a.KeyHandler.Handle(msg, a.Mode); consumed {
				return a, keyCmd
			}
		}
	}

	// Everything else (cursor blink, list navigation) goes to the overlay if
	// one is open, otherwise to the current screen.
	if a.Overlays.Len() > 0 {
		cmd, _ := a.Overlays.UpdateTop(msg)
		return a, cmd
	}
	v, cmd := a.currentView().Update(msg)
	a.setCurrentView(v)
	return a, cmd
}

// syncDraft writes the add form's values back into controller state after a keystroke.
func (a *appModelAdapter) syncDraft() {
	top, ok := a.Overlays.Peek()
	if !ok {
		return
	}
	if modal, ok := top.View.(*AddProductModal); ok {
		a.State = a.State.DraftChanged(modal.Draft())
	}
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	var b strings.Builder
	b.WriteString(Styles.Title.Render("Product Manager") + "\n")
	b.WriteString(a.notificationLine() + "\n\n")
	b.WriteString(a.currentView().View() + "\n\n")
	b.WriteString(listKeyHints(a.Mode))
	if a.KeyHandler != nil && a.KeyHandler.LeaderWaiting {
		b.WriteString("\n" + RenderKeybindHelp(a.KeyHandler, a.Mode))
	}
	base := b.String()

	top, ok := a.Overlays.Peek()
	if !ok {
		return base
	}
	width, height := a.width, a.height
	if width == 0 || height == 0 {
		return base + "\n" + top.View.View()
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, top.View.View())
}

// notificationLine renders the error (red) or, failing that, the success message (green).
func (a *appModelAdapter) notificationLine() string {
	width := a.width
	if width == 0 {
		width = 100
	}
	switch {
	case a.State.Err != "":
		return Styles.Error.Render(textutil.Truncate(a.State.Err, width))
	case a.State.Success != "":
		return Styles.Success.Render(textutil.Truncate(a.State.Success, width))
	}
	return ""
}

func (a *appModelAdapter) currentView() View {
	if a.Mode == ModeDetail && a.Detail != nil {
		return a.Detail
	}
	return a.List
}

func (a *appModelAdapter) setCurrentView(v View) {
	switch a.Mode {
	case ModeList:
		if l, ok := v.(*ProductListView); ok {
			a.List = l
		}
	case ModeDetail:
		if d, ok := v.(*ProductDetailView); ok {
			a.Detail = d
		}
	}
}
