package controllers

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ash2code/minishop/clients"
	"github.com/ash2code/minishop/forms"
	"github.com/ash2code/minishop/identity"
	"github.com/ash2code/minishop/logger"
	"github.com/ash2code/minishop/models"
	"github.com/ash2code/minishop/session"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Initialize("production")
	m.Run()
}

// --- Mocks ---

type MockProductsAPI struct {
	mock.Mock
}

func (m *MockProductsAPI) List(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductsAPI) Create(ctx context.Context, product models.ProductCreate) (models.Product, error) {
	args := m.Called(ctx, product)
	return args.Get(0).(models.Product), args.Error(1)
}

type MockCartsAPI struct {
	mock.Mock
}

func (m *MockCartsAPI) Get(ctx context.Context, owner string) (*models.Cart, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *MockCartsAPI) Create(ctx context.Context, owner string) (*models.Cart, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *MockCartsAPI) AddItem(ctx context.Context, owner string, item models.CartItem) (*models.Cart, error) {
	args := m.Called(ctx, owner, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cart), args.Error(1)
}

func newController(products ProductsAPI, carts CartsAPI) *StorefrontController {
	return NewStorefrontController(products, carts, identity.StaticProvider{Owner: "customer1"}, session.NewMemoryStore())
}

func emptyCart(owner string) *models.Cart {
	return &models.Cart{OwnerID: owner, Items: map[string]models.CartItem{}}
}

// --- Tests ---

func TestInitializeCart(t *testing.T) {
	t.Run("Existing cart is stored without a create call", func(t *testing.T) {
		mockCarts := new(MockCartsAPI)
		ctrl := newController(new(MockProductsAPI), mockCarts)

		existing := emptyCart("customer1")
		mockCarts.On("Get", mock.Anything, "customer1").Return(existing, nil).Once()

		err := ctrl.InitializeCart(context.Background(), "customer1")

		require.NoError(t, err)
		assert.Same(t, existing, ctrl.Cart())
		mockCarts.AssertNotCalled(t, "Create")
		mockCarts.AssertExpectations(t)
	})

	t.Run("404 triggers exactly one create", func(t *testing.T) {
		mockCarts := new(MockCartsAPI)
		ctrl := newController(new(MockProductsAPI), mockCarts)

		created := emptyCart("customer1")
		notFound := &clients.APIError{StatusCode: http.StatusNotFound, Message: "Cart not found"}
		mockCarts.On("Get", mock.Anything, "customer1").Return(nil, notFound).Once()
		mockCarts.On("Create", mock.Anything, "customer1").Return(created, nil).Once()

		err := ctrl.InitializeCart(context.Background(), "customer1")

		require.NoError(t, err)
		assert.Same(t, created, ctrl.Cart())
		mockCarts.AssertExpectations(t)
	})

	t.Run("Other failures leave the cart absent", func(t *testing.T) {
		mockCarts := new(MockCartsAPI)
		ctrl := newController(new(MockProductsAPI), mockCarts)

		upstreamErr := &clients.APIError{StatusCode: http.StatusInternalServerError, Message: "boom"}
		mockCarts.On("Get", mock.Anything, "customer1").Return(nil, upstreamErr).Once()

		err := ctrl.InitializeCart(context.Background(), "customer1")

		assert.Error(t, err)
		assert.Nil(t, ctrl.Cart())
		mockCarts.AssertNotCalled(t, "Create")
	})
}

func TestAddToCart(t *testing.T) {
	t.Run("Success replaces the cart wholesale", func(t *testing.T) {
		mockCarts := new(MockCartsAPI)
		ctrl := newController(new(MockProductsAPI), mockCarts)

		updated := &models.Cart{
			OwnerID: "customer1",
			Items:   map[string]models.CartItem{"3": {ProductID: 3, Quantity: 1}},
			Total:   9.99,
		}
		mockCarts.On("AddItem", mock.Anything, "customer1", models.CartItem{ProductID: 3, Quantity: 1}).
			Return(updated, nil).Once()

		err := ctrl.AddToCart(context.Background(), "customer1", 3, 1)

		require.NoError(t, err)
		assert.Same(t, updated, ctrl.Cart())
		mockCarts.AssertExpectations(t)
	})

	t.Run("Failure leaves the cart unchanged", func(t *testing.T) {
		mockCarts := new(MockCartsAPI)
		ctrl := newController(new(MockProductsAPI), mockCarts)

		existing := emptyCart("customer1")
		mockCarts.On("Get", mock.Anything, "customer1").Return(existing, nil).Once()
		require.NoError(t, ctrl.InitializeCart(context.Background(), "customer1"))

		upstreamErr := &clients.APIError{StatusCode: http.StatusBadGateway, Message: "down"}
		mockCarts.On("AddItem", mock.Anything, "customer1", mock.Anything).Return(nil, upstreamErr).Once()

		err := ctrl.AddToCart(context.Background(), "customer1", 3, 1)

		assert.Error(t, err)
		assert.Same(t, existing, ctrl.Cart())
	})
}

func TestAddProduct(t *testing.T) {
	t.Run("Success posts the product and reloads the catalog", func(t *testing.T) {
		mockProducts := new(MockProductsAPI)
		ctrl := newController(mockProducts, new(MockCartsAPI))

		reloaded := []models.Product{{ID: 1, Name: "X", Price: 2.5, Stock: 5}}
		mockProducts.On("Create", mock.Anything, models.ProductCreate{Name: "X", Price: 2.5, Stock: 5}).
			Return(models.Product{ID: 1, Name: "X", Price: 2.5, Stock: 5}, nil).Once()
		mockProducts.On("List", mock.Anything).Return(reloaded, nil).Once()

		err := ctrl.AddProduct(context.Background(), forms.ProductDraft{Name: "X", Price: "2.50", Stock: "5"})

		require.NoError(t, err)
		catalog, _ := ctrl.Snapshot()
		assert.Equal(t, reloaded, catalog)
		mockProducts.AssertExpectations(t)
	})

	t.Run("Parse failure makes no upstream call", func(t *testing.T) {
		mockProducts := new(MockProductsAPI)
		ctrl := newController(mockProducts, new(MockCartsAPI))

		err := ctrl.AddProduct(context.Background(), forms.ProductDraft{Name: "X", Price: "free", Stock: "5"})

		var parseErr *forms.ParseError
		require.ErrorAs(t, err, &parseErr)
		mockProducts.AssertNotCalled(t, "Create")
		mockProducts.AssertNotCalled(t, "List")
	})

	t.Run("Create failure skips the catalog reload", func(t *testing.T) {
		mockProducts := new(MockProductsAPI)
		ctrl := newController(mockProducts, new(MockCartsAPI))

		upstreamErr := &clients.APIError{StatusCode: http.StatusBadRequest, Message: "rejected"}
		mockProducts.On("Create", mock.Anything, mock.Anything).Return(models.Product{}, upstreamErr).Once()

		err := ctrl.AddProduct(context.Background(), forms.ProductDraft{Name: "X", Price: "2.50", Stock: "5"})

		assert.Error(t, err)
		mockProducts.AssertNotCalled(t, "List")
	})
}

// fakeProductsAPI drives the overlap test; testify mocks cannot block one
// call while another proceeds.
type fakeProductsAPI struct {
	mu     sync.Mutex
	calls  int
	listFn func(call int, ctx context.Context) ([]models.Product, error)
}

func (f *fakeProductsAPI) List(ctx context.Context) ([]models.Product, error) {
	f.mu.Lock()
	f.calls++
	call := f.calls
	f.mu.Unlock()
	return f.listFn(call, ctx)
}

func (f *fakeProductsAPI) Create(ctx context.Context, product models.ProductCreate) (models.Product, error) {
	return models.Product{}, nil
}

func TestFetchProductsDiscardsStaleResponses(t *testing.T) {
	oldList := []models.Product{{ID: 1, Name: "Old", Price: 1, Stock: 1}}
	newList := []models.Product{{ID: 2, Name: "New", Price: 2, Stock: 2}}

	started := make(chan struct{})
	release := make(chan struct{})

	fake := &fakeProductsAPI{}
	fake.listFn = func(call int, ctx context.Context) ([]models.Product, error) {
		if call == 1 {
			close(started)
			<-release
			return oldList, nil
		}
		return newList, nil
	}

	ctrl := newController(fake, new(MockCartsAPI))

	done := make(chan error, 1)
	go func() {
		done <- ctrl.FetchProducts(context.Background())
	}()
	<-started

	// A second fetch is issued and resolves while the first is in flight.
	require.NoError(t, ctrl.FetchProducts(context.Background()))

	close(release)
	require.NoError(t, <-done)

	// The older response resolved last but must not win.
	catalog, _ := ctrl.Snapshot()
	assert.Equal(t, newList, catalog)
}
