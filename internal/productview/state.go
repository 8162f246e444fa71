// Package productview holds the product view controller's state and the pure
// reducers that move it between actions. Reducers never perform I/O: callers
// run the HTTP request, then fold the outcome back in and honour the returned
// Effect. Outcomes are applied in arrival order, so the last response wins.
package productview

import (
	"errors"
	"fmt"

	"productdesk/internal/api"
	"productdesk/internal/product"
)

// Notification texts shown to the user.
const (
	MsgLoadFailed    = "Failed to load products"
	MsgAddFailed     = "Failed to add product. Check console."
	MsgAdded         = "Product added successfully"
	MsgDeleteFailed  = "Failed to delete product"
	MsgEmptySearchID = "Please enter a product ID"
	MsgNotFound      = "Product not found"
)

// Effect is the follow-up a reducer asks its caller to perform.
type Effect int

const (
	EffectNone Effect = iota
	// EffectRefresh asks the caller to issue a fresh fetchAll.
	EffectRefresh
)

func (e Effect) String() string {
	switch e {
	case EffectNone:
		return "None"
	case EffectRefresh:
		return "Refresh"
	default:
		return "Unknown"
	}
}

// SearchState is the outcome of the latest explicit search.
type SearchState struct {
	Query  string
	Result *product.Product
	Err    string
}

// State is everything the view renders. The zero value is the mounted-but-empty state.
type State struct {
	Products []product.Product
	Draft    product.Draft
	Search   SearchState

	Err     string
	Success string

	// Loading counts list fetches in flight, for the spinner only.
	Loading int

	// Notice is a blocking placeholder message; "" when none is shown.
	Notice string
}

// New returns the initial state.
func New() State {
	return State{Products: []product.Product{}}
}

// clearNotifications is applied by every reducer that reports a fresh outcome.
func (s State) clearNotifications() State {
	s.Err = ""
	s.Success = ""
	return s
}

// FetchStarted marks a list fetch as in flight.
func (s State) FetchStarted() State {
	s.Loading++
	return s
}

// ListLoaded replaces the product list wholesale with a fetch result.
func (s State) ListLoaded(products []product.Product) State {
	s = s.fetchDone()
	out := make([]product.Product, len(products))
	copy(out, products)
	s.Products = out
	return s
}

// ListFailed records a failed fetch. The current list is left as it was.
func (s State) ListFailed() State {
	s = s.fetchDone()
	s.Err = MsgLoadFailed
	s.Success = ""
	return s
}

func (s State) fetchDone() State {
	if s.Loading > 0 {
		s.Loading--
	}
	return s
}

// DraftChanged stores a keystroke's worth of form input.
func (s State) DraftChanged(d product.Draft) State {
	s.Draft = d
	return s
}

// SubmitDraft validates the draft. On success it returns the coerced Product
// to send; on failure it sets the error and the caller must not send anything.
func (s State) SubmitDraft() (State, product.Product, bool) {
	p, err := s.Draft.Parse()
	if err != nil {
		s = s.clearNotifications()
		s.Err = err.Error()
		return s, product.Product{}, false
	}
	return s, p, true
}

// AddSucceeded clears the draft, reports success and asks for a refresh.
func (s State) AddSucceeded() (State, Effect) {
	s.Draft = product.Draft{}
	s.Err = ""
	s.Success = MsgAdded
	return s, EffectRefresh
}

// AddFailed shows the server's error payload if one came back, else a generic message.
func (s State) AddFailed(err error) State {
	s = s.clearNotifications()
	s.Err = MsgAddFailed
	var se *api.StatusError
	if errors.As(err, &se) {
		if msg := se.Message(); msg != "" {
			s.Err = msg
		}
	}
	return s
}

// DeleteResponded handles any HTTP response to a delete: the server's message
// is shown verbatim and a refresh is requested even when the delete failed.
func (s State) DeleteResponded(message string, failed bool) (State, Effect) {
	s = s.clearNotifications()
	if failed {
		s.Err = message
	} else {
		s.Success = message
	}
	return s, EffectRefresh
}

// DeleteFailed handles a delete that got no response at all.
func (s State) DeleteFailed() State {
	s = s.clearNotifications()
	s.Err = MsgDeleteFailed
	return s
}

// DeleteResult folds a client Delete outcome into state.
func (s State) DeleteResult(message string, err error) (State, Effect) {
	if err == nil {
		return s.DeleteResponded(message, false)
	}
	var se *api.StatusError
	if errors.As(err, &se) {
		if message == "" {
			message = se.Error()
		}
		return s.DeleteResponded(message, true)
	}
	return s.DeleteFailed(), EffectNone
}

// SearchRequested validates the typed id. ok is false when no request may be
// sent, and then any previous result is cleared along with the error being set.
func (s State) SearchRequested(query string) (next State, id int, ok bool) {
	s.Search.Query = query
	id, err := product.ParseID(query)
	if err == nil {
		return s, id, true
	}
	var verr *product.ValidationError
	if errors.As(err, &verr) && verr.Field == "" {
		s.Search.Result = nil
		s.Search.Err = MsgEmptySearchID
		return s, 0, false
	}
	// No product has a non-integer id, so this is a miss without the round trip.
	return s.SearchMissed(), 0, false
}

// SearchFound stores the found record and clears the search error.
func (s State) SearchFound(p product.Product) State {
	found := p
	s.Search.Result = &found
	s.Search.Err = ""
	return s
}

// SearchMissed clears any previous result and reports the product as not found.
func (s State) SearchMissed() State {
	s.Search.Result = nil
	s.Search.Err = MsgNotFound
	return s
}

// EditRequested raises the placeholder notice for the unimplemented edit action.
func (s State) EditRequested(id int) State {
	s.Notice = fmt.Sprintf("Edit functionality not implemented yet (product %d)", id)
	return s
}

// NoticeDismissed clears the placeholder notice.
func (s State) NoticeDismissed() State {
	s.Notice = ""
	return s
}

// IsLoading reports whether any list fetch is in flight.
func (s State) IsLoading() bool {
	return s.Loading > 0
}
