package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ash2code/minishop/models"
)

func TestCartsClientGet(t *testing.T) {
	t.Run("Existing cart", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/customer1", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"user_id":"customer1","items":{"3":{"product_id":3,"quantity":2}},"total":19.98}`))
		}))
		defer srv.Close()

		client := NewCartsClient(srv.URL, time.Second)
		cart, err := client.Get(context.Background(), "customer1")

		require.NoError(t, err)
		assert.Equal(t, "customer1", cart.OwnerID)
		assert.Equal(t, 19.98, cart.Total)
		require.Contains(t, cart.Items, "3")
		assert.Equal(t, 2, cart.Items["3"].Quantity)
	})

	t.Run("Missing cart reports not found", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"detail":"Cart not found"}`, http.StatusNotFound)
		}))
		defer srv.Close()

		client := NewCartsClient(srv.URL, time.Second)
		cart, err := client.Get(context.Background(), "customer1")

		assert.Nil(t, cart)
		assert.True(t, IsNotFound(err))
	})
}

func TestCartsClientCreate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/customer1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user_id":"customer1","items":{},"total":0}`))
	}))
	defer srv.Close()

	client := NewCartsClient(srv.URL, time.Second)
	cart, err := client.Create(context.Background(), "customer1")

	require.NoError(t, err)
	assert.Equal(t, "customer1", cart.OwnerID)
	assert.True(t, cart.Empty())
}

func TestCartsClientAddItem(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/customer1/items", r.URL.Path)

		var body models.CartItem
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, models.CartItem{ProductID: 3, Quantity: 1}, body)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user_id":"customer1","items":{"3":{"product_id":3,"quantity":1}},"total":9.99}`))
	}))
	defer srv.Close()

	client := NewCartsClient(srv.URL, time.Second)
	cart, err := client.AddItem(context.Background(), "customer1", models.CartItem{ProductID: 3, Quantity: 1})

	require.NoError(t, err)
	assert.Equal(t, 9.99, cart.Total)
	assert.Len(t, cart.Items, 1)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(&APIError{StatusCode: http.StatusNotFound}))
	assert.False(t, IsNotFound(&APIError{StatusCode: http.StatusInternalServerError}))
	assert.False(t, IsNotFound(nil))
	assert.False(t, IsNotFound(context.Canceled))
}
