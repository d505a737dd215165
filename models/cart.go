package models

// CartItem is the add-item request body sent to the carts service.
type CartItem struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// Cart mirrors the carts service wire format. Items are keyed by product id;
// the keys arrive as strings because JSON object keys always are. Total is
// computed by the carts service and is authoritative — it is never
// recalculated here.
type Cart struct {
	OwnerID string              `json:"user_id"`
	Items   map[string]CartItem `json:"items"`
	Total   float64             `json:"total"`
}

// Empty reports whether the cart holds no items.
func (c *Cart) Empty() bool {
	return len(c.Items) == 0
}
