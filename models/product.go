package models

// Product is the catalog entry as served by the products service.
// IDs are server-assigned; products are never mutated on this side.
type Product struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

// ProductCreate is the POST body for creating a product.
type ProductCreate struct {
	Name  string  `json:"name" validate:"required"`
	Price float64 `json:"price" validate:"gte=0"`
	Stock int     `json:"stock" validate:"gte=0"`
}
