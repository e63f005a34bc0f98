// Package catalog implements the HTTP client for the remote product catalog.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"marketplus/domain"
)

// DefaultBaseURL is the public catalog endpoint used when none is configured.
const DefaultBaseURL = "https://dummyjson.com"

// Client issues typed requests against the remote catalog. It keeps no state
// beyond its configuration: no caching, no retries.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewClient constructs a Client for the given base URL. An empty baseURL
// selects DefaultBaseURL; a nil httpc selects a client with a request timeout.
func NewClient(baseURL string, httpc *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpc == nil {
		httpc = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL: stripTrailingSlash(baseURL),
		httpc:   httpc,
	}
}

func stripTrailingSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}

// do performs one catalog request. Any non-2xx status maps to a
// RequestFailedError carrying op; the body is decoded into out when non-nil.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return domain.NewRequestFailedError(op, resp.StatusCode)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

// ListProducts fetches one page of the full catalog listing.
func (c *Client) ListProducts(ctx context.Context, limit, skip int) (domain.ProductPage, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("skip", strconv.Itoa(skip))
	var page domain.ProductPage
	if err := c.do(ctx, "listProducts", http.MethodGet, "/products", q, nil, &page); err != nil {
		return domain.ProductPage{}, err
	}
	return page, nil
}

// GetProduct fetches a single product. A non-success status from the catalog
// is reported as a ProductNotFoundError.
func (c *Client) GetProduct(ctx context.Context, id int) (domain.Product, error) {
	var p domain.Product
	err := c.do(ctx, "getProduct", http.MethodGet, "/products/"+strconv.Itoa(id), nil, nil, &p)
	if err != nil {
		if domain.IsRequestFailedError(err) {
			return domain.Product{}, domain.NewProductNotFoundError(id)
		}
		return domain.Product{}, err
	}
	return p, nil
}

// SearchProducts queries the catalog's full-text search. An empty query
// short-circuits to an empty page without issuing a request.
func (c *Client) SearchProducts(ctx context.Context, query string) (domain.ProductPage, error) {
	if query == "" {
		return domain.ProductPage{Products: []domain.Product{}}, nil
	}
	q := url.Values{}
	q.Set("q", query)
	var page domain.ProductPage
	if err := c.do(ctx, "searchProducts", http.MethodGet, "/products/search", q, nil, &page); err != nil {
		return domain.ProductPage{}, err
	}
	return page, nil
}

// ListCategories fetches the ordered category labels.
func (c *Client) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.do(ctx, "listCategories", http.MethodGet, "/products/category-list", nil, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// ListProductsByCategory fetches the products in one category. An empty
// category short-circuits to an empty page without issuing a request.
func (c *Client) ListProductsByCategory(ctx context.Context, category string) (domain.ProductPage, error) {
	if category == "" {
		return domain.ProductPage{Products: []domain.Product{}}, nil
	}
	var page domain.ProductPage
	err := c.do(ctx, "listProductsByCategory", http.MethodGet, "/products/category/"+url.PathEscape(category), nil, nil, &page)
	if err != nil {
		return domain.ProductPage{}, err
	}
	return page, nil
}

// CreateProduct submits a new catalog entry. The remote accepts mutations as
// simulated; success means "accepted", not a durable change.
func (c *Client) CreateProduct(ctx context.Context, in domain.ProductInput) (domain.Product, error) {
	var p domain.Product
	if err := c.do(ctx, "createProduct", http.MethodPost, "/products/add", nil, in, &p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

// UpdateProduct submits a partial update for an existing catalog entry.
func (c *Client) UpdateProduct(ctx context.Context, id int, in domain.ProductInput) (domain.Product, error) {
	var p domain.Product
	if err := c.do(ctx, "updateProduct", http.MethodPut, "/products/"+strconv.Itoa(id), nil, in, &p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

// DeleteProduct asks the catalog to delete an entry. The response echoes the
// product with its deletion marker and timestamp.
func (c *Client) DeleteProduct(ctx context.Context, id int) (domain.DeletedProduct, error) {
	var dp domain.DeletedProduct
	if err := c.do(ctx, "deleteProduct", http.MethodDelete, "/products/"+strconv.Itoa(id), nil, nil, &dp); err != nil {
		return domain.DeletedProduct{}, err
	}
	return dp, nil
}
