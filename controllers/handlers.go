package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ash2code/minishop/forms"
	"github.com/ash2code/minishop/logger"
	"github.com/ash2code/minishop/session"
	"github.com/ash2code/minishop/views"
)

// Health reports liveness.
func (sc *StorefrontController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Index renders the storefront page from the controller's state. A page load
// while no cart has been obtained retries the cart initialization, so a
// transient carts-service outage clears on the next visit.
func (sc *StorefrontController) Index(c *gin.Context) {
	ctx := c.Request.Context()

	if sc.Cart() == nil {
		_ = sc.InitializeCart(ctx, sc.identity.CurrentOwner(c))
	}

	sid := session.ID(c)
	flashes, err := sc.sessions.ConsumeFlashes(ctx, sid)
	if err != nil {
		logger.Log.Warn("reading flashes failed", zap.Error(err))
	}
	open, err := sc.sessions.FormOpen(ctx, sid)
	if err != nil {
		logger.Log.Warn("reading form state failed", zap.Error(err))
	}

	sc.renderPage(c, http.StatusOK, flashes, views.FormView{Visible: open})
}

type addItemRequest struct {
	ProductID int `form:"product_id" binding:"required"`
	Quantity  int `form:"quantity"`
}

// AddCartItem handles the add-to-cart form post.
func (sc *StorefrontController) AddCartItem(c *gin.Context) {
	ctx := c.Request.Context()
	sid := session.ID(c)

	var req addItemRequest
	if err := c.ShouldBind(&req); err != nil {
		_ = sc.sessions.AddFlash(ctx, sid, session.Flash{Level: "error", Message: "Failed to add item to cart"})
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	owner := sc.identity.CurrentOwner(c)
	if err := sc.AddToCart(ctx, owner, req.ProductID, req.Quantity); err != nil {
		_ = sc.sessions.AddFlash(ctx, sid, session.Flash{Level: "error", Message: "Failed to add item to cart"})
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// CreateProduct handles the admin product-creation form post. On success the
// form closes and the browser is redirected to the refreshed page; on any
// failure the page re-renders with the form still open and the entered draft
// preserved.
func (sc *StorefrontController) CreateProduct(c *gin.Context) {
	ctx := c.Request.Context()
	sid := session.ID(c)

	var draft forms.ProductDraft
	if err := c.ShouldBind(&draft); err != nil {
		logger.Log.Warn("binding product draft failed", zap.Error(err))
	}

	err := sc.AddProduct(ctx, draft)
	if err == nil {
		if err := sc.sessions.SetFormOpen(ctx, sid, false); err != nil {
			logger.Log.Warn("closing creation form failed", zap.Error(err))
		}
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	var parseErr *forms.ParseError
	var validationErrs validator.ValidationErrors
	form := views.FormView{Visible: true, Draft: draft}

	switch {
	case errors.As(err, &parseErr):
		flash := session.Flash{Level: "error", Message: "Invalid " + parseErr.Field + ": enter a number"}
		sc.renderPage(c, http.StatusBadRequest, []session.Flash{flash}, form)
	case errors.As(err, &validationErrs):
		flash := session.Flash{Level: "error", Message: "Invalid product: check the form fields"}
		sc.renderPage(c, http.StatusBadRequest, []session.Flash{flash}, form)
	default:
		flash := session.Flash{Level: "error", Message: "Failed to add product"}
		sc.renderPage(c, http.StatusBadGateway, []session.Flash{flash}, form)
	}
}

// ToggleForm flips the creation-form visibility for this session. Purely
// local, no upstream call.
func (sc *StorefrontController) ToggleForm(c *gin.Context) {
	ctx := c.Request.Context()
	sid := session.ID(c)

	open, err := sc.sessions.FormOpen(ctx, sid)
	if err != nil {
		logger.Log.Warn("reading form state failed", zap.Error(err))
	}
	if err := sc.sessions.SetFormOpen(ctx, sid, !open); err != nil {
		logger.Log.Warn("toggling form failed", zap.Error(err))
	}

	c.Redirect(http.StatusSeeOther, "/")
}

func (sc *StorefrontController) renderPage(c *gin.Context, status int, flashes []session.Flash, form views.FormView) {
	catalog, cart := sc.Snapshot()
	c.HTML(status, "storefront.html", gin.H{
		"Catalog": views.CatalogCards(catalog),
		"Cart":    views.BuildCartView(cart, catalog),
		"Form":    form,
		"Flashes": flashes,
	})
}
