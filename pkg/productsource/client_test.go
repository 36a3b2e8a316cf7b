package productsource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL, APIKey: "test-key"})
}

func TestListProducts_QueryMapping(t *testing.T) {
	var gotQuery url.Values
	var gotAPIKey string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotAPIKey = r.Header.Get("X-Api-Key")
		w.Write([]byte(`[]`))
	})

	_, err := client.ListProducts(context.Background(), Query{
		Category: "womens",
		Search:   "silk",
		Featured: true,
		InStock:  true,
	})
	require.NoError(t, err)

	assert.Equal(t, "womens", gotQuery.Get("category"))
	assert.Equal(t, "silk", gotQuery.Get("search"))
	assert.Equal(t, "true", gotQuery.Get("featured"))
	assert.Equal(t, "true", gotQuery.Get("inStock"))
	assert.Equal(t, "test-key", gotAPIKey)
}

func TestListProducts_OmitsUnsetParams(t *testing.T) {
	var gotQuery url.Values
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`[]`))
	})

	_, err := client.ListProducts(context.Background(), Query{Category: "womens"})
	require.NoError(t, err)

	assert.Equal(t, "womens", gotQuery.Get("category"))
	assert.False(t, gotQuery.Has("search"))
	assert.False(t, gotQuery.Has("featured"))
	assert.False(t, gotQuery.Has("inStock"))
}

func TestListProducts_DecodesArray(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id": "1", "name": "Wrap Dress", "category": "dresses", "price": 4500, "original_price": 9000, "stock_quantity": 3},
			{"id": "2", "name": "Linen Top", "category": "tops", "price": 2000}
		]`))
	})

	products, err := client.ListProducts(context.Background(), Query{})
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "1", products[0].ID)
	assert.Equal(t, 4500, products[0].Price)
	require.NotNil(t, products[0].OriginalPrice)
	assert.Equal(t, 9000, *products[0].OriginalPrice)
	require.NotNil(t, products[0].StockQuantity)
	assert.Equal(t, 3, *products[0].StockQuantity)

	assert.Nil(t, products[1].OriginalPrice)
	assert.Nil(t, products[1].StockQuantity)
}

func TestListProducts_NonArrayBodyIsEmptyList(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": "catalog rebuilding"}`))
	})

	products, err := client.ListProducts(context.Background(), Query{})
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestListProducts_EmptyBodyIsEmptyList(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	products, err := client.ListProducts(context.Background(), Query{})
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestListProducts_MalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>gateway error</html>`))
	})

	_, err := client.ListProducts(context.Background(), Query{})
	assert.Error(t, err)
}

func TestListProducts_ErrorStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := client.ListProducts(context.Background(), Query{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}
