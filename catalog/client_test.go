package catalog_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplus/catalog"
	"marketplus/domain"
)

// catalogStub is a minimal fake of the remote catalog API.
func catalogStub(t *testing.T, requests *[]string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	phone := domain.Product{ID: 1, Title: "Phone", Category: "smartphones", Price: 300, DiscountPercentage: 10, Stock: 12}
	laptop := domain.Product{ID: 2, Title: "Laptop", Category: "laptops", Price: 900, Stock: 4}

	mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(domain.ProductPage{
			Products: []domain.Product{phone, laptop},
			Total:    2,
			Skip:     0,
			Limit:    100,
		})
	})
	mux.HandleFunc("GET /products/search", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(domain.ProductPage{Products: []domain.Product{phone}, Total: 1})
	})
	mux.HandleFunc("GET /products/category-list", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]string{"smartphones", "laptops"})
	})
	mux.HandleFunc("GET /products/category/{category}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("category") != "laptops" {
			json.NewEncoder(w).Encode(domain.ProductPage{Products: []domain.Product{}})
			return
		}
		json.NewEncoder(w).Encode(domain.ProductPage{Products: []domain.Product{laptop}, Total: 1})
	})
	mux.HandleFunc("GET /products/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "1" {
			http.Error(w, `{"message":"not found"}`, http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(phone)
	})
	mux.HandleFunc("POST /products/add", func(w http.ResponseWriter, r *http.Request) {
		var in domain.ProductInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(domain.Product{ID: 195, Title: in.Title, Price: in.Price})
	})
	mux.HandleFunc("PUT /products/{id}", func(w http.ResponseWriter, r *http.Request) {
		var in domain.ProductInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		json.NewEncoder(w).Encode(domain.Product{ID: 1, Title: in.Title})
	})
	mux.HandleFunc("DELETE /products/{id}", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id": 1, "title": "Phone", "isDeleted": true, "deletedOn": "2024-06-01T12:00:00.000Z",
		})
	})

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests != nil {
			*requests = append(*requests, r.Method+" "+r.URL.Path)
		}
		mux.ServeHTTP(w, r)
	}))
}

func TestListProducts(t *testing.T) {
	var requests []string
	srv := catalogStub(t, &requests)
	defer srv.Close()
	c := catalog.NewClient(srv.URL, nil)

	page, err := c.ListProducts(context.Background(), 100, 0)
	require.NoError(t, err)
	assert.Len(t, page.Products, 2)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, "Phone", page.Products[0].Title)
}

func TestGetProduct(t *testing.T) {
	srv := catalogStub(t, nil)
	defer srv.Close()
	c := catalog.NewClient(srv.URL, nil)

	p, err := c.GetProduct(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, p.ID)
	assert.InDelta(t, 270.0, p.DiscountedPrice(), 1e-9)

	_, err = c.GetProduct(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, domain.IsProductNotFoundError(err))
}

func TestSearchProducts_EmptyQueryShortCircuits(t *testing.T) {
	var requests []string
	srv := catalogStub(t, &requests)
	defer srv.Close()
	c := catalog.NewClient(srv.URL, nil)

	page, err := c.SearchProducts(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, page.Products)
	assert.Empty(t, requests, "empty query must not hit the network")

	page, err = c.SearchProducts(context.Background(), "phone")
	require.NoError(t, err)
	assert.Len(t, page.Products, 1)
	require.Len(t, requests, 1)
	assert.Equal(t, "GET /products/search", requests[0])
}

func TestListCategories(t *testing.T) {
	srv := catalogStub(t, nil)
	defer srv.Close()
	c := catalog.NewClient(srv.URL, nil)

	categories, err := c.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"smartphones", "laptops"}, categories)
}

func TestListProductsByCategory(t *testing.T) {
	var requests []string
	srv := catalogStub(t, &requests)
	defer srv.Close()
	c := catalog.NewClient(srv.URL, nil)

	page, err := c.ListProductsByCategory(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, page.Products)
	assert.Empty(t, requests, "empty category must not hit the network")

	page, err = c.ListProductsByCategory(context.Background(), "laptops")
	require.NoError(t, err)
	require.Len(t, page.Products, 1)
	assert.Equal(t, "Laptop", page.Products[0].Title)
}

func TestAdminMutations(t *testing.T) {
	srv := catalogStub(t, nil)
	defer srv.Close()
	c := catalog.NewClient(srv.URL, nil)

	created, err := c.CreateProduct(context.Background(), domain.ProductInput{Title: "New Thing", Price: 42})
	require.NoError(t, err)
	assert.Equal(t, 195, created.ID)
	assert.Equal(t, "New Thing", created.Title)

	updated, err := c.UpdateProduct(context.Background(), 1, domain.ProductInput{Title: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)

	deleted, err := c.DeleteProduct(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, deleted.IsDeleted)
	assert.False(t, deleted.DeletedOn.IsZero())
}

func TestNonSuccessStatusFailsWithOp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()
	c := catalog.NewClient(srv.URL, nil)

	_, err := c.ListProducts(context.Background(), 10, 0)
	require.Error(t, err)
	require.True(t, domain.IsRequestFailedError(err))

	var rfe *domain.RequestFailedError
	require.ErrorAs(t, err, &rfe)
	assert.Equal(t, "listProducts", rfe.Op)
	assert.Equal(t, http.StatusInternalServerError, rfe.Status)

	_, err = c.SearchProducts(context.Background(), "phone")
	require.ErrorAs(t, err, &rfe)
	assert.Equal(t, "searchProducts", rfe.Op)
}

func TestListProductsPaginationParams(t *testing.T) {
	var gotLimit, gotSkip string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		gotSkip = r.URL.Query().Get("skip")
		json.NewEncoder(w).Encode(domain.ProductPage{})
	}))
	defer srv.Close()
	c := catalog.NewClient(srv.URL, nil)

	_, err := c.ListProducts(context.Background(), 25, 50)
	require.NoError(t, err)
	assert.Equal(t, "25", gotLimit)
	assert.Equal(t, "50", gotSkip)
}
