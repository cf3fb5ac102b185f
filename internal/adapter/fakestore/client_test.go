package fakestore_test

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/niksmo/catalog/internal/adapter/fakestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const productsJSON = `[
	{
		"id": 1,
		"title": "Fjallraven Backpack",
		"price": 109.95,
		"description": "Your perfect pack",
		"category": "men's clothing",
		"image": "https://fakestoreapi.com/img/81fPKd-2AYL._AC_SL1500_.jpg",
		"rating": {"rate": 3.9, "count": 120}
	},
	{
		"id": "sku-2",
		"title": "Mystery Item",
		"price": "free",
		"category": null,
		"rating": {"rate": "high", "count": 3}
	},
	{
		"id": 3,
		"title": 42,
		"category": "electronics",
		"rating": {"rate": 4.1}
	}
]`

func newServer(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	s := httptest.NewServer(h)
	t.Cleanup(s.Close)
	return s
}

func TestClientFetchProducts(t *testing.T) {
	t.Run("Decode", func(t *testing.T) {
		s := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Accept"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(productsJSON))
		})

		c, err := fakestore.New(fakestore.EndpointOpt(s.URL))
		require.NoError(t, err)

		ps, err := c.FetchProducts(t.Context())
		require.NoError(t, err)
		require.Len(t, ps, 3)

		first := ps[0]
		assert.Equal(t, "1", first.ID)
		assert.Equal(t, "Fjallraven Backpack", first.Title)
		assert.Equal(t, "men's clothing", first.Category)
		require.NotNil(t, first.Price)
		assert.InDelta(t, 109.95, *first.Price, 1e-9)
		require.NotNil(t, first.Rating)
		assert.InDelta(t, 3.9, first.Rating.Rate, 1e-9)
		require.NotNil(t, first.Rating.Count)
		assert.Equal(t, 120, *first.Rating.Count)
		assert.True(t, first.HasImage())

		second := ps[1]
		assert.Equal(t, "sku-2", second.ID)
		assert.Nil(t, second.Price)
		assert.Empty(t, second.Category)
		assert.Nil(t, second.Rating)
		assert.False(t, second.HasImage())

		third := ps[2]
		assert.Empty(t, third.Title)
		require.NotNil(t, third.Rating)
		assert.Nil(t, third.Rating.Count)
	})

	t.Run("ServerError", func(t *testing.T) {
		var calls atomic.Int32
		s := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			http.Error(w, "boom", http.StatusInternalServerError)
		})

		c, err := fakestore.New(fakestore.EndpointOpt(s.URL))
		require.NoError(t, err)

		ps, err := c.FetchProducts(t.Context())
		require.Error(t, err)
		assert.ErrorIs(t, err, fakestore.ErrUnexpectedStatus)
		assert.Contains(t, err.Error(), "500 Internal Server Error")
		assert.Nil(t, ps)
		assert.Equal(t, int32(1), calls.Load(), "single attempt by default")
	})

	t.Run("RetriesServerErrorsWhenConfigured", func(t *testing.T) {
		var calls atomic.Int32
		s := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 2 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			_, _ = w.Write([]byte(`[{"id": 7, "title": "Late Mug"}]`))
		})

		c, err := fakestore.New(
			fakestore.EndpointOpt(s.URL),
			fakestore.MaxAttemptsOpt(3),
		)
		require.NoError(t, err)

		ps, err := c.FetchProducts(t.Context())
		require.NoError(t, err)
		require.Len(t, ps, 1)
		assert.Equal(t, "Late Mug", ps[0].Title)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("ClientErrorIsNotRetried", func(t *testing.T) {
		var calls atomic.Int32
		s := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusNotFound)
		})

		c, err := fakestore.New(
			fakestore.EndpointOpt(s.URL),
			fakestore.MaxAttemptsOpt(3),
		)
		require.NoError(t, err)

		_, err = c.FetchProducts(t.Context())
		require.ErrorIs(t, err, fakestore.ErrUnexpectedStatus)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("InvalidBody", func(t *testing.T) {
		s := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"products": []}`))
		})

		c, err := fakestore.New(fakestore.EndpointOpt(s.URL))
		require.NoError(t, err)

		_, err = c.FetchProducts(t.Context())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid JSON data")
	})

	t.Run("Unreachable", func(t *testing.T) {
		s := httptest.NewServer(http.NotFoundHandler())
		addr := s.URL
		s.Close()

		c, err := fakestore.New(
			fakestore.EndpointOpt(addr),
			fakestore.TimeoutOpt(time.Second),
		)
		require.NoError(t, err)

		_, err = c.FetchProducts(t.Context())
		require.Error(t, err)
		assert.NotErrorIs(t, err, fakestore.ErrUnexpectedStatus)
	})
}

func TestNewOptions(t *testing.T) {
	c, err := fakestore.New()
	require.NoError(t, err)
	assert.Equal(t, fakestore.DefaultEndpoint, c.Endpoint())

	_, err = fakestore.New(fakestore.EndpointOpt("ftp://example.com/products"))
	assert.Error(t, err)

	_, err = fakestore.New(fakestore.MaxAttemptsOpt(0))
	assert.Error(t, err)

	_, err = fakestore.New(fakestore.TimeoutOpt(0))
	assert.NoError(t, err, "zero timeout means unbounded")

	_, err = fakestore.New(fakestore.TimeoutOpt(-time.Second))
	assert.Error(t, err)
}

func TestClientTimeout(t *testing.T) {
	release := make(chan struct{})
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
			return
		}
		_, _ = w.Write([]byte(productsJSON))
	}))
	t.Cleanup(s.Close)
	t.Cleanup(func() { close(release) })

	c, err := fakestore.New(
		fakestore.EndpointOpt(s.URL),
		fakestore.TimeoutOpt(50*time.Millisecond),
	)
	require.NoError(t, err)

	_, err = c.FetchProducts(t.Context())
	assert.Error(t, err)
}
