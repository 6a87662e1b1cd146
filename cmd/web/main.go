package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"luxe-storefront/api/handlers"
	"luxe-storefront/internal/config"
	"luxe-storefront/internal/database"
	"luxe-storefront/internal/payments"
	"luxe-storefront/internal/services"
)

func main() {
	cfg := config.Load()

	// Stores: Postgres when configured, in-memory otherwise. Note the
	// in-memory intent store only deduplicates notifications within this
	// process.
	var (
		orderStore        database.OrderStore
		notificationStore database.NotificationStore
		intentStore       database.IntentStore
	)
	if cfg.DatabaseURL != "" {
		pg, err := database.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer pg.Close()

		if err := pg.InitSchema(); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}
		orderStore, notificationStore, intentStore = pg, pg, pg
	} else {
		log.Println("DATABASE_URL not set, using in-memory stores")
		mem := database.NewMemory()
		orderStore, notificationStore, intentStore = mem, mem, mem
	}

	// Initialize services
	provider := payments.NewStripeProvider(cfg.StripeSecretKey)

	productService := services.NewProductService()
	productService.InitSampleData()

	checkoutService := services.NewCheckoutService(provider, orderStore, cfg.CheckoutOrigin)
	paymentService := services.NewPaymentService(provider, orderStore, notificationStore, intentStore)
	orderService := services.NewOrderService(orderStore)
	notificationService := services.NewNotificationService(notificationStore)
	wishlistService := services.NewWishlistService(productService, notificationService)

	// Initialize handlers
	productHandler := handlers.NewProductHandler(productService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	orderHandler := handlers.NewOrderHandler(orderService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	wishlistHandler := handlers.NewWishlistHandler(wishlistService)

	// Setup router
	router := setupRouter(cfg, productHandler, checkoutHandler, paymentHandler, orderHandler, notificationHandler, wishlistHandler)

	// Start server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Run server in goroutine
	go func() {
		log.Printf("Server starting on http://localhost:%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server shutdown complete")
}

func setupRouter(
	cfg *config.Config,
	productHandler *handlers.ProductHandler,
	checkoutHandler *handlers.CheckoutHandler,
	paymentHandler *handlers.PaymentHandler,
	orderHandler *handlers.OrderHandler,
	notificationHandler *handlers.NotificationHandler,
	wishlistHandler *handlers.WishlistHandler,
) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// API Routes
	api := router.Group("/api")
	{
		// Product routes
		products := api.Group("/products")
		{
			products.GET("/", productHandler.GetAllProducts)
			products.GET("/search", productHandler.SearchProducts)
			products.GET("/:id", productHandler.GetProductByID)
		}

		// Checkout and payment reconciliation
		api.POST("/checkout", checkoutHandler.CreateSession)
		api.POST("/payments/verify", paymentHandler.VerifyPayment)

		// Order routes
		orders := api.Group("/orders")
		{
			orders.GET("/", orderHandler.ListOrders)
			orders.GET("/session/:session_id", orderHandler.GetOrderBySession)
		}

		// Notification routes
		notifications := api.Group("/notifications")
		{
			notifications.GET("/", notificationHandler.ListNotifications)
			notifications.POST("/read-all", notificationHandler.MarkAllRead)
			notifications.POST("/:id/read", notificationHandler.MarkRead)
			notifications.DELETE("/", notificationHandler.ClearNotifications)
		}
		api.POST("/support", notificationHandler.CreateSupportRequest)

		// Wishlist routes
		wishlist := api.Group("/wishlist")
		{
			wishlist.GET("/", wishlistHandler.GetWishlist)
			wishlist.POST("/:product_id", wishlistHandler.AddToWishlist)
			wishlist.DELETE("/:product_id", wishlistHandler.RemoveFromWishlist)
		}

		// Health check
		api.GET("/health", productHandler.HealthCheck)
	}

	// Debug endpoints in development
	if gin.Mode() != gin.ReleaseMode {
		router.GET("/debug/metrics", productHandler.Metrics)
	}

	return router
}
