package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/ash2code/minishop/controllers"
	"github.com/ash2code/minishop/middleware"
	"github.com/ash2code/minishop/session"
)

// RegisterRoutes wires the storefront pages and form actions.
func RegisterRoutes(r *gin.Engine, ctrl *controllers.StorefrontController) {
	r.GET("/healthz", ctrl.Health)

	pages := r.Group("/")
	pages.Use(session.EnsureSession())
	{
		pages.GET("/", ctrl.Index)
		pages.POST("/form/toggle", ctrl.ToggleForm)
	}

	// Mutations hit the upstream services; keep a fast double-click from
	// turning into a request storm.
	limiter := middleware.NewRateLimiter(rate.Limit(5), 10, 5*time.Minute)
	mutations := r.Group("/")
	mutations.Use(session.EnsureSession(), limiter.Middleware())
	{
		mutations.POST("/products", ctrl.CreateProduct)
		mutations.POST("/cart/items", ctrl.AddCartItem)
	}
}
