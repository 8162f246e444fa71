package mockapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productdesk/internal/product"
)

func seed() []product.Product {
	return []product.Product{
		{ID: 2, Name: "Mouse", Cost: 12.5, Company: "Logi", Contact: "m@l.io"},
		{ID: 1, Name: "Laptop", Cost: 999, Company: "Acme", Contact: "a@acme.io"},
	}
}

func TestServer_ViewAllSortedByID(t *testing.T) {
	s := New(nil, seed()...)
	w := httptest.NewRecorder()
	s.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/viewall", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var got []product.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 2, got[1].ID)
	assert.EqualValues(t, 1, s.Requests())
}

func TestServer_ViewAllBareSingle(t *testing.T) {
	s := New(nil, product.Product{ID: 7, Name: "Solo", Cost: 1, Company: "c", Contact: "k"})
	s.BareSingle = true
	w := httptest.NewRecorder()
	s.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/viewall", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":7,"name":"Solo","cost":1,"company":"c","contact":"k"}`, w.Body.String())
}

func TestServer_Add(t *testing.T) {
	s := New(nil, seed()...)

	t.Run("created", func(t *testing.T) {
		body := `{"id":3,"name":"Pen","cost":1.25,"company":"Bic","contact":"p@b.io"}`
		w := httptest.NewRecorder()
		s.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/add", bytes.NewBufferString(body)))
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Len(t, s.Products(), 3)
	})

	t.Run("duplicate", func(t *testing.T) {
		body := `{"id":1,"name":"Dup","cost":1,"company":"c","contact":"k"}`
		w := httptest.NewRecorder()
		s.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/add", bytes.NewBufferString(body)))
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.JSONEq(t, `{"error":"Product with ID 1 already exists"}`, w.Body.String())
	})

	t.Run("missing fields", func(t *testing.T) {
		w := httptest.NewRecorder()
		s.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/add", bytes.NewBufferString(`{"id":9}`)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid body", func(t *testing.T) {
		w := httptest.NewRecorder()
		s.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/add", bytes.NewBufferString(`nope`)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Invalid request body"}`, w.Body.String())
	})
}

func TestServer_Delete(t *testing.T) {
	s := New(nil, seed()...)

	w := httptest.NewRecorder()
	s.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/delete/1", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Product deleted successfully", w.Body.String())
	assert.Len(t, s.Products(), 1)

	w = httptest.NewRecorder()
	s.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/delete/1", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Product not found", w.Body.String())

	w = httptest.NewRecorder()
	s.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/delete/abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServer_Get(t *testing.T) {
	s := New(nil, seed()...)

	w := httptest.NewRecorder()
	s.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/product/2", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var p product.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, "Mouse", p.Name)

	w = httptest.NewRecorder()
	s.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/product/42", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
