package cartsink

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velora/storefront_api/internal/models"
)

func intPtr(v int) *int { return &v }

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL, APIKey: "test-key"})
}

func TestAddItem_SendsSingleUnitWithNullSelections(t *testing.T) {
	var gotPath, gotContentType, gotAPIKey string
	var gotBody map[string]json.RawMessage
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		gotAPIKey = r.Header.Get("X-Api-Key")
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))
		w.Write([]byte(`{"success": true, "cartId": "c-1", "itemCount": 3}`))
	})

	resp, err := client.AddItem(context.Background(), AddItemRequest{
		Product:  models.Product{ID: "p1", Name: "Wrap Dress", Price: 4500, StockQuantity: intPtr(2)},
		Quantity: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, "/cart/items", gotPath)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "test-key", gotAPIKey)

	assert.JSONEq(t, `1`, string(gotBody["quantity"]))
	// The nullable selections must be present and explicitly null.
	require.Contains(t, gotBody, "selectedSize")
	require.Contains(t, gotBody, "selectedColor")
	assert.Equal(t, "null", string(gotBody["selectedSize"]))
	assert.Equal(t, "null", string(gotBody["selectedColor"]))

	var product models.Product
	require.NoError(t, json.Unmarshal(gotBody["product"], &product))
	assert.Equal(t, "p1", product.ID)

	assert.True(t, resp.Success)
	assert.Equal(t, "c-1", resp.CartID)
	assert.Equal(t, 3, resp.ItemCount)
}

func TestAddItem_EmptyResponseBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	resp, err := client.AddItem(context.Background(), AddItemRequest{Quantity: 1})
	require.NoError(t, err)
	assert.False(t, resp.Success)
}

func TestAddItem_ErrorStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "cart unavailable", http.StatusBadGateway)
	})

	_, err := client.AddItem(context.Background(), AddItemRequest{Quantity: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
