package httphandler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/niksmo/catalog/internal/adapter/httphandler"
	"github.com/niksmo/catalog/internal/adapter/metrics"
	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/niksmo/catalog/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fetcherFunc func(context.Context) ([]domain.Product, error)

func (f fetcherFunc) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	return f(ctx)
}

func testProducts() []domain.Product {
	price := 12.5
	return []domain.Product{
		{ID: "1", Title: "Red Shirt", Category: "clothing", Price: &price, Image: "https://example.com/shirt.jpg"},
		{ID: "2", Title: "Blue Mug", Category: "kitchen", Description: "Holds <coffee>"},
	}
}

func newCatalog(t *testing.T, ps []domain.Product, err error) *service.Catalog {
	t.Helper()
	c := service.New(fetcherFunc(func(context.Context) ([]domain.Product, error) {
		return ps, err
	}))
	_ = c.Load(t.Context())
	return c
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestGetPage(t *testing.T) {
	h := httphandler.NewHandler(newCatalog(t, testProducts(), nil), metrics.New())

	t.Run("All", func(t *testing.T) {
		rec := serve(h, http.MethodGet, "/")
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Our Products")
		assert.Contains(t, body, "Red Shirt")
		assert.Contains(t, body, "Blue Mug")
		assert.Contains(t, body, "Showing 2 of 2 products")
		assert.Contains(t, body, "Kitchen</option>")
		assert.Contains(t, body, `<span class="disabled">Clear</span>`)
		assert.Contains(t, body, "$12.50")
	})

	t.Run("Search", func(t *testing.T) {
		rec := serve(h, http.MethodGet, "/?q=red")
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Red Shirt")
		assert.NotContains(t, body, "Blue Mug")
		assert.Contains(t, body, "Showing 1 of 2 products")
		assert.Contains(t, body, `<a href="/">Clear</a>`)
	})

	t.Run("Category", func(t *testing.T) {
		rec := serve(h, http.MethodGet, "/?category=kitchen")
		body := rec.Body.String()
		assert.Contains(t, body, "Blue Mug")
		assert.NotContains(t, body, "Red Shirt")
		assert.Contains(t, body, `<option value="kitchen" selected>`)
		assert.Equal(t, 1, strings.Count(body, `value="kitchen"`))
	})

	t.Run("UnknownCategory", func(t *testing.T) {
		rec := serve(h, http.MethodGet, "/?category=Kitchen")
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "No products found")
		assert.Contains(t, body, `<option value="Kitchen" selected>Kitchen</option>`)
		assert.Equal(t, 1, strings.Count(body, " selected>"))
	})

	t.Run("Empty", func(t *testing.T) {
		rec := serve(h, http.MethodGet, "/?q=zzz")
		body := rec.Body.String()
		assert.Contains(t, body, "No products found")
		assert.Contains(t, body, "Clear All Filters")
	})

	t.Run("Detail", func(t *testing.T) {
		rec := serve(h, http.MethodGet, "/?product=2")
		body := rec.Body.String()
		assert.Contains(t, body, "Product Details")
		assert.Contains(t, body, "KITCHEN")
		assert.Contains(t, body, "Holds &lt;coffee&gt;")
		assert.Contains(t, body, `<div class="placeholder">N/A</div>`)
	})

	t.Run("UnknownDetail", func(t *testing.T) {
		rec := serve(h, http.MethodGet, "/?product=404")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), "Product Details")
	})

	t.Run("MethodNotAllowed", func(t *testing.T) {
		rec := serve(h, http.MethodPost, "/")
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestGetPageStates(t *testing.T) {
	t.Run("Failed", func(t *testing.T) {
		c := newCatalog(t, nil, errors.New("unexpected response status: 500 Internal Server Error"))
		h := httphandler.NewHandler(c, metrics.New())

		rec := serve(h, http.MethodGet, "/")
		assert.Equal(t, http.StatusBadGateway, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Error Loading Products")
		assert.Contains(t, body, "500 Internal Server Error")
		assert.NotContains(t, body, "Our Products</h1>")
	})

	t.Run("Loading", func(t *testing.T) {
		c := service.New(fetcherFunc(func(context.Context) ([]domain.Product, error) {
			return nil, nil
		}))
		h := httphandler.NewHandler(c, metrics.New())

		rec := serve(h, http.MethodGet, "/")
		assert.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Loading products...")
		assert.Contains(t, body, `http-equiv="refresh"`)
	})
}

func TestGetProducts(t *testing.T) {
	h := httphandler.NewHandler(newCatalog(t, testProducts(), nil), metrics.New())

	rec := serve(h, http.MethodGet, "/v1/products?q=MUG")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var res httphandler.CatalogResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.Equal(t, "ready", res.State)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 1, res.Count)
	assert.Equal(t, "MUG", res.SearchTerm)
	assert.Equal(t, domain.AllCategories, res.Category)
	assert.Equal(t, []string{"clothing", "kitchen"}, res.Categories)
	require.Len(t, res.Products, 1)
	assert.Equal(t, "2", res.Products[0].ID)

	rec = serve(h, http.MethodGet, "/v1/products?category=none")
	require.Equal(t, http.StatusOK, rec.Code)
	res = httphandler.CatalogResponse{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	require.NotNil(t, res.Products)
	assert.Empty(t, res.Products)
}

func TestGetProductsStates(t *testing.T) {
	failed := newCatalog(t, nil, errors.New("network down"))
	rec := serve(httphandler.NewHandler(failed, metrics.New()), http.MethodGet, "/v1/products")
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var res httphandler.CatalogResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.Equal(t, "error", res.State)
	assert.Equal(t, "network down", res.Error)
	assert.Empty(t, res.Products)

	loading := service.New(fetcherFunc(func(context.Context) ([]domain.Product, error) { return nil, nil }))
	rec = serve(httphandler.NewHandler(loading, metrics.New()), http.MethodGet, "/v1/products")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGetProduct(t *testing.T) {
	h := httphandler.NewHandler(newCatalog(t, testProducts(), nil), metrics.New())

	rec := serve(h, http.MethodGet, "/v1/products/1")
	require.Equal(t, http.StatusOK, rec.Code)
	var p httphandler.Product
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&p))
	assert.Equal(t, "Red Shirt", p.Title)
	require.NotNil(t, p.Price)
	assert.InDelta(t, 12.5, *p.Price, 1e-9)

	rec = serve(h, http.MethodGet, "/v1/products/404")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	loading := service.New(fetcherFunc(func(context.Context) ([]domain.Product, error) { return nil, nil }))
	rec = serve(httphandler.NewHandler(loading, metrics.New()), http.MethodGet, "/v1/products/1")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	h := httphandler.NewHandler(newCatalog(t, testProducts(), nil), metrics.New())
	serve(h, http.MethodGet, "/")

	rec := serve(h, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `catalog_http_requests_total{code="200",route="GET /{$}"} 1`)
}
