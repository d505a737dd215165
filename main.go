package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ash2code/minishop/clients"
	"github.com/ash2code/minishop/config"
	"github.com/ash2code/minishop/controllers"
	"github.com/ash2code/minishop/identity"
	"github.com/ash2code/minishop/logger"
	"github.com/ash2code/minishop/middleware"
	"github.com/ash2code/minishop/routes"
	"github.com/ash2code/minishop/session"
	"github.com/ash2code/minishop/views"
)

func main() {
	cfg := config.Load()

	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()

	productsClient := clients.NewProductsClient(cfg.ProductsAPIURL, cfg.RequestTimeout)
	cartsClient := clients.NewCartsClient(cfg.CartsAPIURL, cfg.RequestTimeout)

	// Session state lives in Redis when configured, in memory otherwise.
	sessions := session.NewMemoryStore()
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		redisClient := redis.NewClient(opts)
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("failed to connect to Redis: %v", err)
		}
		sessions = session.NewRedisStore(redisClient)
		logger.Log.Info("connected to Redis for session state")
	}

	idProvider := identity.StaticProvider{Owner: cfg.DefaultOwner}
	controller := controllers.NewStorefrontController(productsClient, cartsClient, idProvider, sessions)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())
	r.Use(middleware.SecurityHeaders())
	r.SetHTMLTemplate(views.Templates())

	routes.RegisterRoutes(r, controller)

	// Mount-time effects: load the catalog and the owner's cart before the
	// first page render. Failures are logged; pages show what they can.
	bootCtx, cancelBoot := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	controller.Bootstrap(bootCtx, cfg.DefaultOwner)
	cancelBoot()

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Log.Info("storefront listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("shutdown error", zap.Error(err))
	}
}
