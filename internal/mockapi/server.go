// Package mockapi is an in-memory stand-in for the remote product service.
// It serves the same four endpoints the client consumes and is used by tests
// and by cmd/productdesk-mockapi for local demos.
package mockapi

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"productdesk/internal/product"
)

// Server holds the product store and the router that exposes it.
type Server struct {
	mu       sync.Mutex
	products map[int]product.Product

	// BareSingle makes /viewall answer with a bare object when exactly one
	// product exists, the way some backends serialize single-element lists.
	BareSingle bool

	requests atomic.Int64
	validate *validator.Validate
	log      *slog.Logger
	router   chi.Router
}

// addRequest mirrors product.Product with validation tags for the POST body.
type addRequest struct {
	ID      *int     `json:"id" validate:"required"`
	Name    string   `json:"name" validate:"required"`
	Cost    *float64 `json:"cost" validate:"required"`
	Company string   `json:"company" validate:"required"`
	Contact string   `json:"contact" validate:"required"`
}

// New creates a server seeded with products.
func New(logger *slog.Logger, seed ...product.Product) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		products: make(map[int]product.Product, len(seed)),
		validate: validator.New(),
		log:      logger,
	}
	for _, p := range seed {
		s.products[p.ID] = p
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.countRequests)
	r.Get("/viewall", s.handleViewAll)
	r.Post("/add", s.handleAdd)
	r.Delete("/delete/{id}", s.handleDelete)
	r.Get("/product/{id}", s.handleGet)
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Requests returns how many requests have been served.
func (s *Server) Requests() int64 {
	return s.requests.Load()
}

// Products returns a snapshot of the store ordered by ID.
func (s *Server) Products() []product.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedLocked()
}

func (s *Server) sortedLocked() []product.Product {
	out := make([]product.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Server) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleViewAll(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	list := s.sortedLocked()
	bare := s.BareSingle && len(list) == 1
	s.mu.Unlock()

	if bare {
		respondJSON(w, http.StatusOK, list[0])
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	var req addRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	p := product.Product{
		ID:      *req.ID,
		Name:    req.Name,
		Cost:    *req.Cost,
		Company: req.Company,
		Contact: req.Contact,
	}
	s.mu.Lock()
	if _, exists := s.products[p.ID]; exists {
		s.mu.Unlock()
		respondError(w, http.StatusConflict, fmt.Sprintf("Product with ID %d already exists", p.ID))
		return
	}
	s.products[p.ID] = p
	s.mu.Unlock()

	s.log.Info("product added", "id", p.ID, "request_id", middleware.GetReqID(r.Context()))
	respondJSON(w, http.StatusCreated, p)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	_, exists := s.products[id]
	delete(s.products, id)
	s.mu.Unlock()

	if !exists {
		respondText(w, http.StatusNotFound, "Product not found")
		return
	}
	s.log.Info("product deleted", "id", id, "request_id", middleware.GetReqID(r.Context()))
	respondText(w, http.StatusOK, "Product deleted successfully")
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	p, exists := s.products[id]
	s.mu.Unlock()

	if !exists {
		respondError(w, http.StatusNotFound, fmt.Sprintf("Product with ID %d not found", id))
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid product ID %q", raw))
		return 0, false
	}
	return id, true
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func respondText(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(message))
}
