package clients

import (
	"context"
	"net/http"
	"time"

	"github.com/ash2code/minishop/models"
)

// CartsClient talks to the carts service. Carts are keyed by owner id and
// created lazily: Get reports a 404 until Create has been called.
type CartsClient struct {
	*Client
}

func NewCartsClient(baseURL string, timeout time.Duration) *CartsClient {
	return &CartsClient{Client: New(baseURL, timeout)}
}

// Get fetches the cart for owner. Returns an *APIError with status 404 when
// the cart does not exist yet; use IsNotFound to detect it.
func (cc *CartsClient) Get(ctx context.Context, owner string) (*models.Cart, error) {
	resp, err := cc.Do(ctx, http.MethodGet, owner, nil, nil)
	if err != nil {
		return nil, err
	}
	var cart models.Cart
	if err := DecodeJSON(resp, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// Create makes an empty cart for owner.
func (cc *CartsClient) Create(ctx context.Context, owner string) (*models.Cart, error) {
	resp, err := cc.Do(ctx, http.MethodPost, owner, nil, nil)
	if err != nil {
		return nil, err
	}
	var cart models.Cart
	if err := DecodeJSON(resp, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddItem adds quantity of a product to the owner's cart and returns the
// full updated cart. Quantities for the same product accumulate server-side.
func (cc *CartsClient) AddItem(ctx context.Context, owner string, item models.CartItem) (*models.Cart, error) {
	resp, err := cc.Do(ctx, http.MethodPost, owner+"/items", nil, item)
	if err != nil {
		return nil, err
	}
	var cart models.Cart
	if err := DecodeJSON(resp, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}
