package ui

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"productdesk/internal/api"
	"productdesk/internal/product"
	"productdesk/internal/productview"
)

// fakeAPI is an in-memory ProductAPI that records how often each call ran.
type fakeAPI struct {
	mu       sync.Mutex
	products []product.Product
	calls    map[string]int

	listErr   error
	addErr    error
	deleteMsg string
	deleteErr error
	getErr    error
}

func newFakeAPI(products ...product.Product) *fakeAPI {
	return &fakeAPI{products: products, calls: map[string]int{}}
}

func (f *fakeAPI) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeAPI) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeAPI) ListAll(ctx context.Context) ([]product.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["list"]++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]product.Product(nil), f.products...), nil
}

func (f *fakeAPI) Add(ctx context.Context, p product.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["add"]++
	if f.addErr != nil {
		return f.addErr
	}
	f.products = append(f.products, p)
	return nil
}

func (f *fakeAPI) Delete(ctx context.Context, id int) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["delete"]++
	if f.deleteErr != nil {
		return f.deleteMsg, f.deleteErr
	}
	for i, p := range f.products {
		if p.ID == id {
			f.products = append(f.products[:i], f.products[i+1:]...)
			return "Product deleted successfully", nil
		}
	}
	return "Product not found", &api.StatusError{Op: "delete", StatusCode: http.StatusNotFound, Body: []byte("Product not found")}
}

func (f *fakeAPI) Get(ctx context.Context, id int) (product.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["get"]++
	if f.getErr != nil {
		return product.Product{}, f.getErr
	}
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return product.Product{}, &api.StatusError{Op: "get", StatusCode: http.StatusNotFound}
}

var (
	widget = product.Product{ID: 1, Name: "Widget", Cost: 9.99, Company: "Acme", Contact: "a@acme.io"}
	gadget = product.Product{ID: 2, Name: "Gadget", Cost: 20, Company: "Globex", Contact: "g@globex.io"}
)

func newTestApp(client ProductAPI) *appModelAdapter {
	m := NewAppModel(context.Background(), client, nil)
	return &appModelAdapter{AppModel: m}
}

// drain runs cmd and feeds every resulting message back into the model until
// no commands remain. Spinner ticks and cursor blinks are dropped so the loop ends.
func drain(a *appModelAdapter, cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg := c()
		switch msg := msg.(type) {
		case nil:
			continue
		case tea.BatchMsg:
			queue = append(queue, msg...)
			continue
		}
		if !isAppMsg(msg) {
			continue
		}
		_, next := a.Update(msg)
		queue = append(queue, next)
	}
}

func isAppMsg(msg tea.Msg) bool {
	switch msg.(type) {
	case ProductsFetchedMsg, ProductAddedMsg, ProductDeletedMsg, ProductSearchedMsg,
		RefreshMsg, ShowAddProductMsg, SubmitProductMsg, ShowDeleteProductMsg, DeleteProductMsg,
		ShowSearchMsg, SearchProductMsg, EditProductMsg, DismissModalMsg, DismissNoticeMsg, BackMsg:
		return true
	}
	return false
}

// press sends a key and drains whatever it triggers.
func press(a *appModelAdapter, keys ...string) {
	for _, k := range keys {
		_, cmd := a.Update(keyMsg(k))
		drain(a, cmd)
	}
}

func typeInto(a *appModelAdapter, s string) {
	typeText(func(msg tea.Msg) {
		_, cmd := a.Update(msg)
		drain(a, cmd)
	}, s)
}

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func containsPlain(s, sub string) bool {
	return strings.Contains(ansiRE.ReplaceAllString(s, ""), sub)
}

func TestApp_InitFetchesList(t *testing.T) {
	f := newFakeAPI(widget, gadget)
	a := newTestApp(f)

	drain(a, a.Init())

	if f.count("list") != 1 {
		t.Errorf("list calls = %d, want 1", f.count("list"))
	}
	if len(a.State.Products) != 2 {
		t.Fatalf("products = %v, want 2", a.State.Products)
	}
	if a.State.IsLoading() || a.List.Loading() {
		t.Error("loading should be off after fetch")
	}
	if !containsPlain(a.View(), widget.Line()) {
		t.Errorf("view missing product line:\n%s", a.View())
	}
}

func TestApp_EmptyListRendersPlaceholder(t *testing.T) {
	a := newTestApp(newFakeAPI())
	drain(a, a.Init())

	out := a.View()
	if !containsPlain(out, "Product Manager") {
		t.Errorf("view missing header:\n%s", out)
	}
	if !containsPlain(out, "No products found") {
		t.Errorf("view missing empty state:\n%s", out)
	}
}

func TestApp_FetchFailureShowsError(t *testing.T) {
	f := newFakeAPI()
	f.listErr = &api.TransportError{Op: "list", Err: errors.New("connection refused")}
	a := newTestApp(f)

	drain(a, a.Init())

	if a.State.Err != productview.MsgLoadFailed {
		t.Errorf("Err = %q, want %q", a.State.Err, productview.MsgLoadFailed)
	}
	if !containsPlain(a.View(), productview.MsgLoadFailed) {
		t.Errorf("view missing error:\n%s", a.View())
	}
}

func TestApp_AddProductFlow(t *testing.T) {
	f := newFakeAPI(widget)
	a := newTestApp(f)
	drain(a, a.Init())

	press(a, "a")
	if a.Overlays.Len() != 1 {
		t.Fatalf("expected add form overlay, got %d overlays", a.Overlays.Len())
	}
	top, _ := a.Overlays.Peek()
	if _, ok := top.View.(*AddProductModal); !ok {
		t.Fatalf("expected AddProductModal on overlay, got %T", top.View)
	}

	typeInto(a, "3")
	press(a, "tab")
	typeInto(a, "Doohickey")
	press(a, "tab")
	typeInto(a, "12.5")
	press(a, "tab")
	typeInto(a, "Initech")
	press(a, "tab")
	typeInto(a, "d@initech.io")

	// Each keystroke lands in controller state.
	if a.State.Draft.Name != "Doohickey" || a.State.Draft.Cost != "12.5" {
		t.Fatalf("draft not synced: %+v", a.State.Draft)
	}

	press(a, "enter")

	if f.count("add") != 1 {
		t.Fatalf("add calls = %d, want 1", f.count("add"))
	}
	if f.count("list") != 2 {
		t.Errorf("list calls = %d, want 2 (mount + refresh after add)", f.count("list"))
	}
	if a.Overlays.Len() != 0 {
		t.Errorf("form should close after a successful add, got %d overlays", a.Overlays.Len())
	}
	if !a.State.Draft.IsEmpty() {
		t.Errorf("draft should reset after add, got %+v", a.State.Draft)
	}
	if a.State.Success != productview.MsgAdded {
		t.Errorf("Success = %q, want %q", a.State.Success, productview.MsgAdded)
	}
	if len(a.State.Products) != 2 {
		t.Errorf("products after refresh = %v", a.State.Products)
	}
	want := product.Product{ID: 3, Name: "Doohickey", Cost: 12.5, Company: "Initech", Contact: "d@initech.io"}
	if got := f.products[1]; got != want {
		t.Errorf("sent product = %+v, want %+v", got, want)
	}
}

func TestApp_AddInvalidDraftSendsNothing(t *testing.T) {
	f := newFakeAPI()
	a := newTestApp(f)
	drain(a, a.Init())

	press(a, "a")
	typeInto(a, "7")
	press(a, "enter")

	if f.count("add") != 0 {
		t.Errorf("add calls = %d, want 0 for an incomplete draft", f.count("add"))
	}
	if a.State.Err == "" {
		t.Error("expected a validation error")
	}
	top, ok := a.Overlays.Peek()
	if !ok {
		t.Fatal("form should stay open")
	}
	if modal := top.View.(*AddProductModal); modal.Err != a.State.Err {
		t.Errorf("form error = %q, want %q", modal.Err, a.State.Err)
	}
}

func TestApp_AddFailureShowsServerMessage(t *testing.T) {
	f := newFakeAPI(widget)
	f.addErr = &api.StatusError{Op: "add", StatusCode: http.StatusConflict, Body: []byte(`{"error":"Product with ID 1 already exists"}`)}
	a := newTestApp(f)
	drain(a, a.Init())
	a.State = a.State.DraftChanged(product.Draft{ID: "1", Name: "Dup", Cost: "1", Company: "X", Contact: "Y"})

	_, cmd := a.Update(SubmitProductMsg{})
	drain(a, cmd)

	if a.State.Err != "Product with ID 1 already exists" {
		t.Errorf("Err = %q", a.State.Err)
	}
	if f.count("list") != 1 {
		t.Errorf("failed add must not refresh, list calls = %d", f.count("list"))
	}
	if a.State.Draft.IsEmpty() {
		t.Error("draft must survive a failed add")
	}
}

func TestApp_EscKeepsDraft(t *testing.T) {
	a := newTestApp(newFakeAPI())
	drain(a, a.Init())

	press(a, "a")
	typeInto(a, "42")
	press(a, "esc")

	if a.Overlays.Len() != 0 {
		t.Fatalf("esc should close the form")
	}
	if a.State.Draft.ID != "42" {
		t.Errorf("draft ID = %q, want 42", a.State.Draft.ID)
	}

	press(a, "a")
	top, _ := a.Overlays.Peek()
	if got := top.View.(*AddProductModal).Draft().ID; got != "42" {
		t.Errorf("reopened form ID = %q, want 42", got)
	}
}

func TestApp_DeleteConfirmFlow(t *testing.T) {
	f := newFakeAPI(widget, gadget)
	a := newTestApp(f)
	drain(a, a.Init())

	press(a, "d")
	top, ok := a.Overlays.Peek()
	if !ok {
		t.Fatal("expected confirmation modal")
	}
	confirm, ok := top.View.(*ConfirmModal)
	if !ok || confirm.ProductID != widget.ID {
		t.Fatalf("expected delete confirmation for %d, got %T %+v", widget.ID, top.View, top.View)
	}

	press(a, "y")

	if f.count("delete") != 1 {
		t.Fatalf("delete calls = %d, want 1", f.count("delete"))
	}
	if a.State.Success != "Product deleted successfully" {
		t.Errorf("Success = %q", a.State.Success)
	}
	if len(a.State.Products) != 1 || a.State.Products[0].ID != gadget.ID {
		t.Errorf("products after delete = %v", a.State.Products)
	}
}

func TestApp_DeleteCancelWithEsc(t *testing.T) {
	f := newFakeAPI(widget)
	a := newTestApp(f)
	drain(a, a.Init())

	press(a, "d", "esc")

	if a.Overlays.Len() != 0 {
		t.Errorf("expected 0 overlays after Esc, got %d", a.Overlays.Len())
	}
	if f.count("delete") != 0 {
		t.Errorf("cancelled delete sent %d requests", f.count("delete"))
	}
}

func TestApp_DeleteFailureStillRefreshes(t *testing.T) {
	f := newFakeAPI(widget)
	a := newTestApp(f)
	drain(a, a.Init())

	_, cmd := a.Update(DeleteProductMsg{ID: 99})
	drain(a, cmd)

	if a.State.Err != "Product not found" {
		t.Errorf("Err = %q, want server message", a.State.Err)
	}
	if f.count("list") != 2 {
		t.Errorf("list calls = %d, want a refresh after the failed delete", f.count("list"))
	}
}

func TestApp_DeleteTransportFailureNoRefresh(t *testing.T) {
	f := newFakeAPI(widget)
	f.deleteErr = &api.TransportError{Op: "delete", Err: errors.New("timeout")}
	a := newTestApp(f)
	drain(a, a.Init())

	_, cmd := a.Update(DeleteProductMsg{ID: 1})
	drain(a, cmd)

	if a.State.Err != productview.MsgDeleteFailed {
		t.Errorf("Err = %q", a.State.Err)
	}
	if f.count("list") != 1 {
		t.Errorf("list calls = %d, want no refresh", f.count("list"))
	}
}

func TestApp_SearchEmptySendsNoRequest(t *testing.T) {
	f := newFakeAPI(widget)
	a := newTestApp(f)
	drain(a, a.Init())
	before := f.total()

	press(a, "/", "enter")

	if f.total() != before {
		t.Errorf("empty search made %d requests", f.total()-before)
	}
	if a.State.Search.Err != productview.MsgEmptySearchID {
		t.Errorf("Search.Err = %q", a.State.Search.Err)
	}
	if a.Mode != ModeDetail {
		t.Errorf("Mode = %v, want Detail", a.Mode)
	}
}

func TestApp_SearchFoundThenMissed(t *testing.T) {
	f := newFakeAPI(widget, gadget)
	a := newTestApp(f)
	drain(a, a.Init())

	press(a, "/")
	typeInto(a, "2")
	press(a, "enter")

	if a.State.Search.Result == nil || *a.State.Search.Result != gadget {
		t.Fatalf("Search.Result = %v, want gadget", a.State.Search.Result)
	}
	if !containsPlain(a.View(), gadget.Line()) {
		t.Errorf("detail view missing product:\n%s", a.View())
	}

	_, cmd := a.Update(SearchProductMsg{Query: "42"})
	drain(a, cmd)

	if a.State.Search.Result != nil {
		t.Error("a miss must clear the previous result")
	}
	if a.State.Search.Err != productview.MsgNotFound {
		t.Errorf("Search.Err = %q", a.State.Search.Err)
	}
	if !containsPlain(a.View(), productview.MsgNotFound) {
		t.Errorf("detail view missing error:\n%s", a.View())
	}

	press(a, "esc")
	if a.Mode != ModeList {
		t.Errorf("esc should return to the list, Mode = %v", a.Mode)
	}
}

func TestApp_InvalidSearchLeavesNothingToActOn(t *testing.T) {
	for _, query := range []string{"", "4x"} {
		t.Run(query, func(t *testing.T) {
			f := newFakeAPI(widget, gadget)
			a := newTestApp(f)
			drain(a, a.Init())

			press(a, "/")
			typeInto(a, "2")
			press(a, "enter")
			if a.State.Search.Result == nil {
				t.Fatal("expected gadget to be found first")
			}
			gets := f.count("get")

			_, cmd := a.Update(SearchProductMsg{Query: query})
			drain(a, cmd)

			if f.count("get") != gets {
				t.Errorf("search for %q made a request", query)
			}
			if a.State.Search.Result != nil {
				t.Errorf("Search.Result = %v, want nil after %q", a.State.Search.Result, query)
			}
			if containsPlain(a.View(), gadget.Line()) {
				t.Errorf("detail view still shows gadget:\n%s", a.View())
			}

			press(a, "d")
			if _, ok := a.Overlays.Peek(); ok {
				t.Fatal("d opened a confirmation with no product on screen")
			}
			press(a, "y")
			if f.count("delete") != 0 {
				t.Errorf("delete calls = %d, want 0", f.count("delete"))
			}
			press(a, "e")
			if a.State.Notice != "" {
				t.Errorf("Notice = %q, want none", a.State.Notice)
			}
		})
	}
}

func TestApp_NonNumericSearchIsNotFound(t *testing.T) {
	f := newFakeAPI(widget)
	a := newTestApp(f)
	drain(a, a.Init())
	before := f.total()

	press(a, "/")
	typeInto(a, "abc")
	press(a, "enter")

	if f.total() != before {
		t.Errorf("non-numeric search made %d requests", f.total()-before)
	}
	if a.State.Search.Err != productview.MsgNotFound {
		t.Errorf("Search.Err = %q, want %q", a.State.Search.Err, productview.MsgNotFound)
	}
	if !containsPlain(a.View(), productview.MsgNotFound) {
		t.Errorf("detail view missing error:\n%s", a.View())
	}
}

func TestApp_EditShowsBlockingNotice(t *testing.T) {
	f := newFakeAPI(widget)
	a := newTestApp(f)
	drain(a, a.Init())

	press(a, "e")

	want := fmt.Sprintf("Edit functionality not implemented yet (product %d)", widget.ID)
	if a.State.Notice != want {
		t.Fatalf("Notice = %q, want %q", a.State.Notice, want)
	}

	// The notice swallows other keys until acknowledged.
	press(a, "r", "q")
	if f.count("list") != 1 {
		t.Errorf("keys leaked past the notice, list calls = %d", f.count("list"))
	}

	press(a, "enter")
	if a.State.Notice != "" || a.Overlays.Len() != 0 {
		t.Errorf("notice not dismissed: %q, %d overlays", a.State.Notice, a.Overlays.Len())
	}
}

func TestApp_RefreshKeys(t *testing.T) {
	f := newFakeAPI(widget)
	a := newTestApp(f)
	drain(a, a.Init())

	press(a, "r")
	press(a, " ", "r")

	if f.count("list") != 3 {
		t.Errorf("list calls = %d, want 3", f.count("list"))
	}
}

func TestApp_LeaderAddOpensForm(t *testing.T) {
	a := newTestApp(newFakeAPI())

	press(a, " ", "p")
	if !containsPlain(a.View(), "SPC p") {
		t.Errorf("leader help should show the pending sequence:\n%s", a.View())
	}
	press(a, "a")

	top, ok := a.Overlays.Peek()
	if !ok {
		t.Fatal("expected an overlay after SPC p a")
	}
	if _, ok := top.View.(*AddProductModal); !ok {
		t.Errorf("expected AddProductModal, got %T", top.View)
	}
}

func TestApp_QuitKeys(t *testing.T) {
	a := newTestApp(newFakeAPI())

	for _, k := range []string{"q", "ctrl+c"} {
		_, cmd := a.Update(keyMsg(k))
		if cmd == nil {
			t.Fatalf("%s: expected quit command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: expected tea.QuitMsg", k)
		}
	}
}

func TestApp_LastFetchResponseWins(t *testing.T) {
	a := newTestApp(newFakeAPI())
	a.State = a.State.FetchStarted().FetchStarted()

	a.Update(ProductsFetchedMsg{Products: []product.Product{widget, gadget}})
	a.Update(ProductsFetchedMsg{Products: []product.Product{gadget}})

	if len(a.State.Products) != 1 || a.State.Products[0] != gadget {
		t.Errorf("products = %v, want the last response", a.State.Products)
	}
	if a.State.IsLoading() {
		t.Error("both fetches have landed")
	}
}
