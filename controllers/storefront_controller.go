package controllers

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/ash2code/minishop/clients"
	"github.com/ash2code/minishop/forms"
	"github.com/ash2code/minishop/identity"
	"github.com/ash2code/minishop/logger"
	"github.com/ash2code/minishop/models"
	"github.com/ash2code/minishop/session"
)

// ProductsAPI is the slice of the products service the controller needs.
type ProductsAPI interface {
	List(ctx context.Context) ([]models.Product, error)
	Create(ctx context.Context, product models.ProductCreate) (models.Product, error)
}

// CartsAPI is the slice of the carts service the controller needs.
type CartsAPI interface {
	Get(ctx context.Context, owner string) (*models.Cart, error)
	Create(ctx context.Context, owner string) (*models.Cart, error)
	AddItem(ctx context.Context, owner string, item models.CartItem) (*models.Cart, error)
}

// StorefrontController owns the canonical in-memory copies of the catalog
// and the cart. It is the only component that talks to the upstream
// services; views render from its snapshots.
//
// Responses are applied with per-kind generation counters: a response that
// resolves after a later request has already been applied is discarded, so
// overlapping calls can never roll state backwards.
type StorefrontController struct {
	products ProductsAPI
	carts    CartsAPI
	identity identity.Provider
	sessions session.Store
	parser   *forms.Validator

	mu              sync.Mutex
	catalog         []models.Product
	cart            *models.Cart
	productsIssued  uint64
	productsApplied uint64
	cartIssued      uint64
	cartApplied     uint64
}

func NewStorefrontController(products ProductsAPI, carts CartsAPI, id identity.Provider, sessions session.Store) *StorefrontController {
	return &StorefrontController{
		products: products,
		carts:    carts,
		identity: id,
		sessions: sessions,
		parser:   forms.NewValidator(),
	}
}

// Bootstrap runs the startup fetches: the catalog and the owner's cart.
// Failures are logged and swallowed; pages render from whatever state exists.
func (sc *StorefrontController) Bootstrap(ctx context.Context, owner string) {
	_ = sc.FetchProducts(ctx)
	_ = sc.InitializeCart(ctx, owner)
}

// FetchProducts reloads the full catalog and replaces the local copy
// wholesale. On failure the previous catalog is kept.
func (sc *StorefrontController) FetchProducts(ctx context.Context) error {
	gen := sc.nextProductsGen()

	list, err := sc.products.List(ctx)
	if err != nil {
		logger.Log.Error("fetching products failed", zap.Error(err))
		return err
	}

	if !sc.applyProducts(gen, list) {
		logger.Log.Debug("discarded stale product list", zap.Uint64("generation", gen))
	}
	return nil
}

// InitializeCart loads the owner's cart, creating it when the carts service
// reports it does not exist yet. Any other failure leaves the cart absent.
func (sc *StorefrontController) InitializeCart(ctx context.Context, owner string) error {
	gen := sc.nextCartGen()

	cart, err := sc.carts.Get(ctx, owner)
	if clients.IsNotFound(err) {
		cart, err = sc.carts.Create(ctx, owner)
	}
	if err != nil {
		logger.Log.Error("initializing cart failed", zap.String("owner", owner), zap.Error(err))
		return err
	}

	if !sc.applyCart(gen, cart) {
		logger.Log.Debug("discarded stale cart", zap.Uint64("generation", gen))
	}
	return nil
}

// AddToCart adds quantity of a product to the owner's cart and replaces the
// local cart with the service's updated copy. On failure the local cart is
// untouched and the error is returned for the handler to surface.
func (sc *StorefrontController) AddToCart(ctx context.Context, owner string, productID, quantity int) error {
	gen := sc.nextCartGen()

	cart, err := sc.carts.AddItem(ctx, owner, models.CartItem{ProductID: productID, Quantity: quantity})
	if err != nil {
		logger.Log.Error("adding item to cart failed",
			zap.String("owner", owner),
			zap.Int("product_id", productID),
			zap.Error(err))
		return err
	}

	if !sc.applyCart(gen, cart) {
		logger.Log.Debug("discarded stale cart", zap.Uint64("generation", gen))
	}
	return nil
}

// AddProduct parses the creation draft, posts the product, and on success
// reloads the catalog. A parse or validation failure returns before any
// upstream call is made.
func (sc *StorefrontController) AddProduct(ctx context.Context, draft forms.ProductDraft) error {
	product, err := sc.parser.ParseProduct(draft)
	if err != nil {
		return err
	}

	if _, err := sc.products.Create(ctx, product); err != nil {
		logger.Log.Error("creating product failed", zap.String("name", product.Name), zap.Error(err))
		return err
	}

	// Reload rather than insert locally; the refetch failing is already
	// logged and the stale catalog stays up until the next load.
	_ = sc.FetchProducts(ctx)
	return nil
}

// Snapshot returns the current catalog and cart for rendering. The cart
// pointer is treated as immutable once stored.
func (sc *StorefrontController) Snapshot() ([]models.Product, *models.Cart) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	catalog := make([]models.Product, len(sc.catalog))
	copy(catalog, sc.catalog)
	return catalog, sc.cart
}

// Cart returns the current cart, or nil while none has loaded.
func (sc *StorefrontController) Cart() *models.Cart {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.cart
}

func (sc *StorefrontController) nextProductsGen() uint64 {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.productsIssued++
	return sc.productsIssued
}

func (sc *StorefrontController) applyProducts(gen uint64, list []models.Product) bool {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if gen <= sc.productsApplied {
		return false
	}
	sc.productsApplied = gen
	sc.catalog = list
	return true
}

func (sc *StorefrontController) nextCartGen() uint64 {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.cartIssued++
	return sc.cartIssued
}

func (sc *StorefrontController) applyCart(gen uint64, cart *models.Cart) bool {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if gen <= sc.cartApplied {
		return false
	}
	sc.cartApplied = gen
	sc.cart = cart
	return true
}
