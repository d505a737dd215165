package clients

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/ash2code/minishop/models"
)

// ProductsClient talks to the products service.
type ProductsClient struct {
	*Client
}

func NewProductsClient(baseURL string, timeout time.Duration) *ProductsClient {
	return &ProductsClient{Client: New(baseURL, timeout)}
}

// List returns the full catalog.
func (p *ProductsClient) List(ctx context.Context) ([]models.Product, error) {
	resp, err := p.Do(ctx, http.MethodGet, "", nil, nil)
	if err != nil {
		return nil, err
	}
	var products []models.Product
	if err := DecodeJSON(resp, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Create registers a new product and returns it with its server-assigned id.
func (p *ProductsClient) Create(ctx context.Context, product models.ProductCreate) (models.Product, error) {
	resp, err := p.Do(ctx, http.MethodPost, "", nil, product)
	if err != nil {
		return models.Product{}, err
	}
	var created models.Product
	if err := DecodeJSON(resp, &created); err != nil {
		return models.Product{}, err
	}
	return created, nil
}

// Get fetches a single product by id.
func (p *ProductsClient) Get(ctx context.Context, id int) (models.Product, error) {
	resp, err := p.Do(ctx, http.MethodGet, strconv.Itoa(id), nil, nil)
	if err != nil {
		return models.Product{}, err
	}
	var product models.Product
	if err := DecodeJSON(resp, &product); err != nil {
		return models.Product{}, err
	}
	return product, nil
}
