package views

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/ash2code/minishop/forms"
	"github.com/ash2code/minishop/models"
)

// CatalogCard is one product tile in the catalog grid.
type CatalogCard struct {
	ID         int
	Name       string
	PriceLabel string
	StockLabel string
	CanAdd     bool
}

// CatalogCards builds the catalog view. The add-to-cart control is only
// enabled while the product has stock.
func CatalogCards(products []models.Product) []CatalogCard {
	cards := make([]CatalogCard, 0, len(products))
	for _, p := range products {
		card := CatalogCard{
			ID:         p.ID,
			Name:       p.Name,
			PriceLabel: Money(p.Price),
			CanAdd:     p.Stock > 0,
		}
		if p.Stock > 0 {
			card.StockLabel = fmt.Sprintf("In Stock: %d", p.Stock)
		} else {
			card.StockLabel = "Out of Stock"
		}
		cards = append(cards, card)
	}
	return cards
}

// CartState is the render state of the cart panel.
type CartState int

const (
	// CartLoading means no cart has been obtained from the carts service
	// yet. It only leaves this state when the controller stores a cart.
	CartLoading CartState = iota
	CartEmpty
	CartPopulated
)

// CartLineView is one resolved line of the cart panel.
type CartLineView struct {
	Key       string
	Name      string
	UnitPrice string
	Quantity  int
	LineTotal string
}

// CartViewModel drives the cart panel template.
type CartViewModel struct {
	State      CartState
	Lines      []CartLineView
	TotalLabel string
}

func (vm CartViewModel) Loading() bool   { return vm.State == CartLoading }
func (vm CartViewModel) IsEmpty() bool   { return vm.State == CartEmpty }
func (vm CartViewModel) Populated() bool { return vm.State == CartPopulated }

// BuildCartView resolves cart lines against the catalog snapshot. Items
// whose product id is unknown render as "Product #<id>" at $0.00. Line
// totals are computed locally; the grand total comes from the carts service
// verbatim.
func BuildCartView(cart *models.Cart, products []models.Product) CartViewModel {
	if cart == nil {
		return CartViewModel{State: CartLoading}
	}
	if cart.Empty() {
		return CartViewModel{State: CartEmpty}
	}

	keys := make([]string, 0, len(cart.Items))
	for key := range cart.Items {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, aerr := strconv.Atoi(keys[i])
		b, berr := strconv.Atoi(keys[j])
		if aerr != nil || berr != nil {
			return keys[i] < keys[j]
		}
		return a < b
	})

	lines := make([]CartLineView, 0, len(keys))
	for _, key := range keys {
		item := cart.Items[key]
		name, price := resolveProduct(key, products)
		lines = append(lines, CartLineView{
			Key:       key,
			Name:      name,
			UnitPrice: Money(price),
			Quantity:  item.Quantity,
			LineTotal: Money(price * float64(item.Quantity)),
		})
	}

	return CartViewModel{
		State:      CartPopulated,
		Lines:      lines,
		TotalLabel: Money(cart.Total),
	}
}

// resolveProduct finds the catalog entry for a cart item key. The key is the
// product id serialized as a string.
func resolveProduct(key string, products []models.Product) (string, float64) {
	if id, err := strconv.Atoi(key); err == nil {
		for _, p := range products {
			if p.ID == id {
				return p.Name, p.Price
			}
		}
	}
	return "Product #" + key, 0
}

// FormView drives the product creation form. Draft keeps the previously
// entered values so a failed parse re-renders them.
type FormView struct {
	Visible bool
	Draft   forms.ProductDraft
}

// Money formats an amount for display.
func Money(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}
