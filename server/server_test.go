package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplus/catalog"
	"marketplus/domain"
	"marketplus/server"
	"marketplus/state"
)

// newTestServer builds a Server over a memory-backed store and a stubbed
// remote catalog.
func newTestServer(t *testing.T) (*server.Server, *state.Store) {
	t.Helper()

	phone := domain.Product{ID: 1, Title: "Phone", Category: "smartphones", Price: 100, DiscountPercentage: 10, Stock: 8}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(domain.ProductPage{Products: []domain.Product{phone}, Total: 1})
	})
	mux.HandleFunc("GET /products/search", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(domain.ProductPage{Products: []domain.Product{phone}, Total: 1})
	})
	mux.HandleFunc("GET /products/category-list", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]string{"smartphones"})
	})
	mux.HandleFunc("GET /products/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "1" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(phone)
	})
	mux.HandleFunc("POST /products/add", func(w http.ResponseWriter, r *http.Request) {
		var in domain.ProductInput
		json.NewDecoder(r.Body).Decode(&in)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(domain.Product{ID: 195, Title: in.Title})
	})
	remote := httptest.NewServer(mux)
	t.Cleanup(remote.Close)

	store := state.NewStore(state.NewMemorySlices())
	return server.New(store, catalog.NewClient(remote.URL, nil)), store
}

func do(t *testing.T, srv *server.Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reqBody *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(b)
	} else {
		reqBody = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestListProductsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	w := do(t, srv, http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	var body struct {
		Products []domain.Product `json:"products"`
		Total    int              `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Products, 1)
	assert.Equal(t, "Phone", body.Products[0].Title)
}

func TestGetProductEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	w := do(t, srv, http.MethodGet, "/api/products/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, srv, http.MethodGet, "/api/products/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, srv, http.MethodGet, "/api/products/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWishlistEndpoints(t *testing.T) {
	srv, store := newTestServer(t)

	w := do(t, srv, http.MethodPost, "/api/wishlist/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, store.IsInWishlist(1))

	// duplicate add stays a single entry
	w = do(t, srv, http.MethodPost, "/api/wishlist/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, store.Wishlist(), 1)

	w = do(t, srv, http.MethodDelete, "/api/wishlist/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, store.IsInWishlist(1))
}

func TestCartAndCheckoutFlow(t *testing.T) {
	srv, store := newTestServer(t)

	// empty checkout is refused
	w := do(t, srv, http.MethodPost, "/api/checkout", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	do(t, srv, http.MethodPost, "/api/cart/1", nil)
	do(t, srv, http.MethodPost, "/api/cart/1", nil)
	require.Len(t, store.Cart(), 1)
	assert.Equal(t, 2, store.Cart()[0].Quantity)

	w = do(t, srv, http.MethodPut, "/api/cart/1", map[string]int{"quantity": 5})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5, store.Cart()[0].Quantity)

	w = do(t, srv, http.MethodPost, "/api/checkout", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var rec domain.PurchaseRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))
	assert.NotEmpty(t, rec.ID)
	assert.InDelta(t, 450.0, rec.Total, 1e-9) // 100 * 0.9 * 5
	assert.Empty(t, store.Cart())

	w = do(t, srv, http.MethodGet, "/api/history", nil)
	var history []domain.PurchaseRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	require.Len(t, history, 1)
	assert.Equal(t, rec.ID, history[0].ID)
}

func TestSessionEndpoints(t *testing.T) {
	srv, store := newTestServer(t)

	w := do(t, srv, http.MethodPost, "/api/login", map[string]string{"email": "nope@example.com", "password": "x"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, store.IsAdmin())

	w = do(t, srv, http.MethodPost, "/api/login", map[string]string{"email": "yosinxon@gmail.com", "password": "holbi2007"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, store.IsAdmin())

	w = do(t, srv, http.MethodGet, "/api/session", nil)
	assert.JSONEq(t, `{"isAdmin": true}`, w.Body.String())

	w = do(t, srv, http.MethodPost, "/api/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, store.IsAdmin())
}

func TestAdminEndpointsRequireSession(t *testing.T) {
	srv, store := newTestServer(t)

	w := do(t, srv, http.MethodPost, "/api/admin/products", domain.ProductInput{Title: "X", Price: 1})
	assert.Equal(t, http.StatusForbidden, w.Code)

	ok, err := store.Login("yosinxon@gmail.com", "holbi2007")
	require.NoError(t, err)
	require.True(t, ok)

	w = do(t, srv, http.MethodPost, "/api/admin/products", domain.ProductInput{Title: "X", Price: 1})
	require.Equal(t, http.StatusCreated, w.Code)

	var created domain.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 195, created.ID)

	// invalid input is rejected before any catalog call
	w = do(t, srv, http.MethodPost, "/api/admin/products", domain.ProductInput{Price: 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
