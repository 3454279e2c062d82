package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/sanoy-si/FurnitureStore/internal/api"
	"github.com/sanoy-si/FurnitureStore/internal/config"
	"github.com/sanoy-si/FurnitureStore/internal/notification"
	"github.com/sanoy-si/FurnitureStore/internal/repository"
	"github.com/sanoy-si/FurnitureStore/internal/service"
	"github.com/sanoy-si/FurnitureStore/migrations"
)

func connectDBEnv(host, port, user, pass, dbname string) (*sql.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", user, pass, host, port, dbname)

	var db *sql.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = sql.Open("mysql", dsn)
		if err == nil {
			err = db.Ping()
			if err == nil {
				log.Printf("Connected to DB %s", dbname)
				return db, nil
			}
		}
		log.Printf("Retry %d: Failed to connect to DB %s (%s:%s): %v", i+1, dbname, host, port, err)
		time.Sleep(3 * time.Second)
	}
	return nil, fmt.Errorf("failed to connect to DB %s at %s:%s after retries: %v", dbname, host, port, err)
}

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "secret"
	}
	return []byte(secret)
}

func main() {
	db, err := connectDBEnv(os.Getenv("DB_HOST"), os.Getenv("DB_PORT"), os.Getenv("DB_USER"), os.Getenv("DB_PASS"), os.Getenv("DB_NAME"))
	if err != nil {
		panic(err)
	}

	if err := migrations.AutoMigrateAll(3, db); err != nil {
		log.Fatalf("Failed to migrate tables: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
	})

	dispatcher := notification.NewKafkaDispatcher(config.NewKafkaWriter("notification-topic"))

	productRepo := repository.NewProductRepository(db)
	collectionRepo := repository.NewCollectionRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	userRepo := repository.NewUserRepository(db)
	wishlistRepo := repository.NewWishListRepository(db)
	customOrderRepo := repository.NewCustomOrderRepository(db)

	catalogService := service.NewCatalogService(productRepo, collectionRepo, rdb)
	cartService := service.NewCartService(cartRepo, productRepo)
	orderService := service.NewOrderService(orderRepo, cartRepo, customerRepo, userRepo, dispatcher, rdb)
	customerService := service.NewCustomerService(userRepo, customerRepo, dispatcher, rdb)
	wishlistService := service.NewWishListService(wishlistRepo, productRepo)
	customOrderService := service.NewCustomOrderService(customOrderRepo, customerRepo, userRepo, dispatcher)

	productHandler := api.NewProductHandler(catalogService)
	collectionHandler := api.NewCollectionHandler(catalogService)
	cartHandler := api.NewCartHandler(cartService)
	orderHandler := api.NewOrderHandler(orderService)
	customerHandler := api.NewCustomerHandler(customerService)
	wishlistHandler := api.NewWishListHandler(wishlistService)
	customOrderHandler := api.NewCustomOrderHandler(customOrderService)

	e := echo.New()

	limiterConfig := middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(10),
				Burst:     30,
				ExpiresIn: 3 * time.Minute,
			}),
		IdentifierExtractor: func(context echo.Context) (string, error) {
			return context.Request().RemoteAddr, nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
	}

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RateLimiterWithConfig(limiterConfig))

	jwtConfig := echojwt.Config{
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(service.JwtCustomClaims)
		},
		SigningKey: jwtSecret(),
	}

	// catalog
	e.GET("/products", productHandler.GetProducts)
	e.GET("/products/:id", productHandler.GetProduct)
	e.GET("/products/:id/stock", productHandler.GetProductStock)
	e.POST("/products", productHandler.CreateProduct)
	e.PUT("/products/:id", productHandler.UpdateProduct)
	e.DELETE("/products/:id", productHandler.DeleteProduct)
	e.GET("/products/:id/images", productHandler.GetProductImages)
	e.POST("/products/:id/images", productHandler.AddProductImage)
	e.DELETE("/products/:id/images/:imageId", productHandler.DeleteProductImage)

	e.GET("/collections", collectionHandler.GetCollections)
	e.GET("/collections/:id", collectionHandler.GetCollection)
	e.POST("/collections", collectionHandler.CreateCollection)
	e.PUT("/collections/:id", collectionHandler.UpdateCollection)
	e.DELETE("/collections/:id", collectionHandler.DeleteCollection)

	// carts
	e.POST("/carts", cartHandler.CreateCart)
	e.GET("/carts/:id", cartHandler.GetCart)
	e.DELETE("/carts/:id", cartHandler.DeleteCart)
	e.GET("/carts/:id/refresh", cartHandler.RefreshCart)
	e.POST("/carts/:id/items", cartHandler.AddCartItem)
	e.PATCH("/carts/:id/items/:productId", cartHandler.UpdateCartItem)
	e.DELETE("/carts/:id/items/:productId", cartHandler.RemoveCartItem)

	// wishlists
	e.POST("/wishlists", wishlistHandler.CreateWishList)
	e.GET("/wishlists/:id", wishlistHandler.GetWishList)
	e.DELETE("/wishlists/:id", wishlistHandler.DeleteWishList)
	e.POST("/wishlists/:id/items", wishlistHandler.AddWishListItem)
	e.DELETE("/wishlists/:id/items/:itemId", wishlistHandler.RemoveWishListItem)

	// accounts
	e.POST("/users", customerHandler.Register)
	e.POST("/users/login", customerHandler.Login)
	e.GET("/customers", customerHandler.GetCustomers)
	e.GET("/customers/:id", customerHandler.GetCustomer)

	// authenticated routes
	me := e.Group("/customers/me", echojwt.WithConfig(jwtConfig))
	me.GET("", customerHandler.Me)
	me.PUT("", customerHandler.Me)

	orders := e.Group("/orders", echojwt.WithConfig(jwtConfig))
	orders.POST("", orderHandler.PlaceOrder)
	orders.GET("", orderHandler.GetOrders)
	orders.GET("/:id", orderHandler.GetOrder)
	orders.PATCH("/:id", orderHandler.UpdatePaymentStatus)

	customOrders := e.Group("/custom-orders", echojwt.WithConfig(jwtConfig))
	customOrders.POST("", customOrderHandler.CreateCustomOrder)
	customOrders.GET("", customOrderHandler.GetCustomOrders)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]interface{}{
			"status":  "ok",
			"service": "furniture-store",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	e.Logger.Fatal(e.Start(":8080"))
}
