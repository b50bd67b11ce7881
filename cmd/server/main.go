package main

import (
	"log"
	"time"

	"catalog-app/config"
	"catalog-app/internal/catalog"
	"catalog-app/internal/handler"
	"catalog-app/internal/middleware"
	"catalog-app/internal/models"
	"catalog-app/internal/utils"
	"catalog-app/pkg/database"
	"catalog-app/pkg/media"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	utils.ConfigureJWT(cfg.Server.JWTSecret, cfg.Server.JWTExpirationHours)

	// 2. Connect to Database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// 3. Auto-Migrate Models
	log.Println("Running migrations...")
	err = db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Variant{},
		&models.Order{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations completed successfully.")

	// 3a. Seed Data
	database.SeedAdminUser(db, cfg.Defaults)

	// 4. Media Store (uploads are skipped if not configured)
	var mediaStore media.Store
	if cfg.Media.CloudinaryURL != "" {
		store, err := media.NewCloudinaryStore(cfg.Media.CloudinaryURL)
		if err != nil {
			log.Fatalf("Failed to init media store: %v", err)
		}
		mediaStore = store
	} else {
		log.Println("Warning: CLOUDINARY_URL not set, media uploads disabled")
	}

	// 5. Initialize Router
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 6. Setup Routes
	catalogService := catalog.NewService(db)
	catalogService.SetPerPage(cfg.Defaults.PerPage)
	productHandler := &handler.ProductHandler{Catalog: catalogService, Media: mediaStore}

	r.POST("/add-product", productHandler.AddProduct)
	r.GET("/products", productHandler.ListProducts)
	r.GET("/product/:id", productHandler.GetProduct)
	r.PUT("/product/:id", productHandler.UpdateProduct)
	r.DELETE("/product/:id", productHandler.DeleteProduct)
	r.GET("/search", productHandler.SearchProducts)

	authHandler := &handler.AuthHandler{DB: db}
	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/logout", authHandler.Logout)
	}

	orderHandler := &handler.OrderHandler{DB: db}
	r.POST("/orders", middleware.AuthMiddleware(), orderHandler.CreateOrder)

	adminHandler := &handler.AdminHandler{Catalog: catalogService, Media: mediaStore}
	adminRoutes := r.Group("/admin")
	adminRoutes.Use(middleware.AuthMiddleware())
	{
		adminRoutes.POST("/products", adminHandler.CreateProduct)
		adminRoutes.PUT("/products/:id", adminHandler.UpdateProduct)
		adminRoutes.POST("/products/bulk-delete", adminHandler.BulkDelete)
		adminRoutes.GET("/orders", orderHandler.ListOrders)
		adminRoutes.PUT("/orders/:id/status", orderHandler.UpdateOrderStatus)
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// 7. Start Server
	port := cfg.Server.Port
	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
