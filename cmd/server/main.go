// cmd/server/main.go
package main

import (
	"context"
	"log"
	"os"

	"sistem-order-service/internal/config"
	"sistem-order-service/internal/event"
	"sistem-order-service/internal/middleware"
	"sistem-order-service/internal/order"
	orderhandler "sistem-order-service/internal/order/handler"
	orderrepo "sistem-order-service/internal/order/repository"
	orderservice "sistem-order-service/internal/order/service"
	"sistem-order-service/internal/payment"
	paymenthandler "sistem-order-service/internal/payment/handler"
	paymentrepo "sistem-order-service/internal/payment/repository"
	paymentservice "sistem-order-service/internal/payment/service"
	"sistem-order-service/internal/product"
	producthandler "sistem-order-service/internal/product/handler"
	productrepo "sistem-order-service/internal/product/repository"
	productservice "sistem-order-service/internal/product/service"
	"sistem-order-service/internal/user"
	userhandler "sistem-order-service/internal/user/handler"
	userrepo "sistem-order-service/internal/user/repository"
	userservice "sistem-order-service/internal/user/service"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var ctx = context.Background()

func main() {
	log.Println("Starting Order Management Service...")

	cfg := config.Load()

	// === 1. KONEKSI DATABASE ===
	if cfg.DatabaseURL == "" {
		log.Fatalf("DATABASE_URL environment variable is not set")
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Database connection established.")

	log.Println("Running AutoMigration...")
	err = db.AutoMigrate(
		&user.User{},
		&product.Product{},
		&order.Order{},
		&order.OrderItem{},
		&payment.PaymentMethod{},
		&payment.PaymentConfirmation{},
	)
	if err != nil {
		log.Fatalf("AutoMigration failed: %v", err)
	}

	// === 2. KONEKSI CACHE (REDIS) ===
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Println("Redis connection established.")

	// === 3. KONEKSI MESSAGE BROKER (RABBITMQ) ===
	conn, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("Failed to open RabbitMQ channel: %v", err)
	}
	defer ch.Close()
	log.Println("RabbitMQ connection established.")

	if err := event.DeclareExchange(ch); err != nil {
		log.Fatalf("Failed to declare '%s': %v", event.Exchange, err)
	}

	// Listener yang mencatat semua event order.*
	go event.StartEventLogger(ch)

	// Direktori upload bukti transfer
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatalf("Failed to create upload dir: %v", err)
	}

	// === 4. SETUP ARSITEKTUR (Repository -> Service -> Handler) ===
	publisher := event.NewAMQPPublisher(ch)

	uRepo := userrepo.NewUserRepository(db)
	pRepo := productrepo.NewProductRepository(db)
	oRepo := orderrepo.NewOrderRepository(db)
	payRepo := paymentrepo.NewPaymentRepository(db)

	uService := userservice.NewUserService(uRepo, cfg.JWTSecret)
	pService := productservice.NewProductService(pRepo, rdb)
	oService := orderservice.NewOrderService(oRepo, rdb, publisher, pRepo, uRepo)

	snap := paymentservice.NewSnapClient(cfg.MidtransBaseURL, cfg.MidtransServerKey)
	payService := paymentservice.NewPaymentService(payRepo, oRepo, snap)
	confService := paymentservice.NewConfirmationService(payRepo, oRepo, publisher)
	methodService := paymentservice.NewMethodService(payRepo)
	reconciler := paymentservice.NewReconciler(payRepo, oRepo, rdb, publisher, cfg.MidtransServerKey)

	uHandler := userhandler.NewUserHandler(uService)
	pHandler := producthandler.NewProductHandler(pService)
	oHandler := orderhandler.NewOrderHandler(oService)
	payHandler := paymenthandler.NewPaymentHandler(payService, reconciler)
	confHandler := paymenthandler.NewConfirmationHandler(confService, cfg.UploadDir)
	methodHandler := paymenthandler.NewMethodHandler(methodService)

	// === 5. SETUP GIN ROUTER ===
	router := gin.Default()
	router.SetTrustedProxies(nil)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		// Publik: auth + webhook (webhook dilindungi signature, bukan JWT)
		api.POST("/auth/register", uHandler.Register)
		api.POST("/auth/login", uHandler.Login)
		api.POST("/payments/webhook", payHandler.HandleWebhook)
	}

	auth := api.Group("", middleware.AuthRequired(cfg.JWTSecret))
	{
		// Katalog
		auth.GET("/products", pHandler.List)
		auth.GET("/products/:id", pHandler.Get)

		// Pesanan milik customer
		auth.POST("/orders", oHandler.Create)
		auth.GET("/orders/user/:userId", oHandler.ListByUser)
		auth.GET("/orders/:id", oHandler.Get)

		// Pembayaran gateway
		auth.POST("/payments/create", payHandler.CreatePayment)
		auth.GET("/payments/status/:orderId", payHandler.CheckStatus)

		// Konfirmasi manual oleh customer
		auth.POST("/payment-confirmations", confHandler.Create)
		auth.GET("/payment-confirmations/:id", confHandler.Get)

		// Metode pembayaran (read)
		auth.GET("/payment-methods", methodHandler.List)
		auth.GET("/payment-methods/:id", methodHandler.Get)
	}

	admin := api.Group("", middleware.AuthRequired(cfg.JWTSecret), middleware.RoleRequired("admin"))
	{
		// Akun
		admin.GET("/users", uHandler.List)
		admin.GET("/users/:id", uHandler.Get)
		admin.PUT("/users/:id", uHandler.Update)
		admin.DELETE("/users/:id", uHandler.Delete)

		// Katalog (write)
		admin.POST("/products", pHandler.Create)
		admin.PUT("/products/:id", pHandler.Update)
		admin.DELETE("/products/:id", pHandler.Delete)

		// Pesanan (manajemen)
		admin.GET("/orders", oHandler.List)
		admin.PATCH("/orders/:id/status", oHandler.UpdateStatus)
		admin.DELETE("/orders/:id", oHandler.Delete)

		// Review konfirmasi manual
		admin.GET("/payment-confirmations", confHandler.List)
		admin.PATCH("/payment-confirmations/:id/confirm", confHandler.Confirm)
		admin.PATCH("/payment-confirmations/:id/reject", confHandler.Reject)
		admin.DELETE("/payment-confirmations/:id", confHandler.Delete)

		// Metode pembayaran (write)
		admin.POST("/payment-methods", methodHandler.Create)
		admin.PUT("/payment-methods/:id", methodHandler.Update)
		admin.DELETE("/payment-methods/:id", methodHandler.Delete)
	}

	log.Printf("Order Management Service is running on :%s", cfg.Port)
	router.Run(":" + cfg.Port)
}
