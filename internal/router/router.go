// internal/router/router.go
package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/soundwave/internal/config"
	"github.com/javajoker/soundwave/internal/handlers"
	"github.com/javajoker/soundwave/internal/i18n"
	"github.com/javajoker/soundwave/internal/middleware"
	"github.com/javajoker/soundwave/internal/utils"
)

const version = "1.0.0"

// Initialize builds the gin engine. Rate limiter janitors stop with ctx.
func Initialize(ctx context.Context, cfg *config.Config, svc *Services, log logrus.FieldLogger) *gin.Engine {
	// Initialize handlers
	productHandler := handlers.NewProductHandler(svc.Products)
	cartHandler := handlers.NewCartHandler(svc.Carts, svc.Products, svc.Policy)
	checkoutHandler := handlers.NewCheckoutHandler(svc.Checkout, log)
	orderHandler := handlers.NewOrderHandler(svc.Orders)
	paymentHandler := handlers.NewPaymentHandler(svc.Checkout, cfg.Frontend.BaseURL, log)
	contactHandler := handlers.NewContactHandler(svc.Notifier, log)

	generalLimiter := middleware.GeneralRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	checkoutLimiter := middleware.CheckoutRateLimiter(cfg.RateLimit.CheckoutPerMin)
	go generalLimiter.Run(ctx)
	go checkoutLimiter.Run(ctx)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(log))
	r.Use(middleware.CORS(cfg.Server.CORSOrigins))
	r.Use(middleware.I18nMiddleware(cfg.I18n.DefaultLocale))
	r.Use(middleware.Session(cfg.Server.SessionCookie, cfg.IsProduction()))
	r.Use(middleware.RequestLogger(log))
	r.Use(generalLimiter.Middleware())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": version,
			"carts":   svc.Carts.Len(),
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		v1.GET("/categories", productHandler.GetCategories)

		products := v1.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.GET("/featured", productHandler.GetFeaturedProducts)
			products.GET("/best-sellers", productHandler.GetBestSellers)
			products.GET("/:id", productHandler.GetProduct)
		}

		search := v1.Group("/search")
		{
			search.GET("/products", productHandler.SearchProducts)
		}

		cartRoutes := v1.Group("/cart")
		{
			cartRoutes.GET("", cartHandler.GetCart)
			cartRoutes.DELETE("", cartHandler.ClearCart)
			cartRoutes.POST("/items", cartHandler.AddItem)
			cartRoutes.PUT("/items/:id", cartHandler.UpdateItem)
			cartRoutes.DELETE("/items/:id", cartHandler.RemoveItem)
		}

		checkoutRoutes := v1.Group("/checkout")
		{
			checkoutRoutes.POST("/validate", checkoutHandler.Validate)
			checkoutRoutes.POST("", checkoutLimiter.Middleware(), checkoutHandler.Submit)
		}

		orders := v1.Group("/orders")
		{
			orders.POST("", checkoutLimiter.Middleware(), orderHandler.CreateOrder)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.GET("/:id/transactions", orderHandler.GetOrderTransactions)
		}

		payments := v1.Group("/payments/:provider")
		{
			payments.GET("/success", paymentHandler.Success)
			payments.GET("/failure", paymentHandler.Failure)
		}

		v1.POST("/contact", checkoutLimiter.Middleware(), contactHandler.Contact)
		v1.POST("/newsletter", checkoutLimiter.Middleware(), contactHandler.Subscribe)

		v1.GET("/languages", func(c *gin.Context) {
			utils.SuccessResponse(c, gin.H{
				"languages": i18n.GetSupportedLanguages(),
				"current":   utils.GetLangFromContext(c),
			})
		})
	}

	r.NoRoute(func(c *gin.Context) {
		utils.ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", "Route not found", nil)
	})

	return r
}
