package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/google/uuid"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	_ "catalog/docs"
	"catalog/internal/handlers"
	"catalog/internal/middleware"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"
	"catalog/pkg/rabbitmq"
)

// @title Product Catalog API
// @version 1.0
// @description REST API managing a product catalog: list, fetch, create, update, toggle availability and delete.
// @BasePath /
func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=catalog port=5432 sslmode=disable")
	viper.SetDefault("FRONTEND_ORIGIN", "http://localhost:3000")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv() // Load environment variables

	appPort := viper.GetString("APP_PORT")
	databaseDSN := viper.GetString("DATABASE_DSN")
	frontendOrigin := viper.GetString("FRONTEND_ORIGIN")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")

	// --- Database ---
	// An unreachable database is not fatal: the server starts anyway and
	// every persistence call answers 500 until the store comes back. The
	// health endpoint reports the degraded state.
	db := openDatabase(databaseDSN)

	// --- Message broker (optional) ---
	mqClient := openMessageBroker(rabbitMQURL)
	if mqClient != nil {
		defer mqClient.Close()
	}

	// --- Wiring ---
	productRepo := repositories.NewGORMProductRepository(db)
	productService := services.NewProductService(productRepo, mqClient)
	productHandler := handlers.NewProductHandler(productService)

	app := newApp(productHandler, frontendOrigin, db != nil)

	// --- Start HTTP server ---
	log.Printf("Starting server on port %s", appPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	closeDatabase(db)
	log.Println("Server gracefully stopped")
}

// newApp assembles the Fiber application: shell middleware, the product
// routes under /api/products, the documentation viewer and the health
// endpoint.
func newApp(productHandler *handlers.ProductHandler, allowedOrigin string, dbConnected bool) *fiber.App {
	app := fiber.New()

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: func() string { return uuid.NewString() },
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${locals:requestid} ${status} - ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: middleware.OriginAllowed(allowedOrigin),
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders:     "Origin, Content-Type, Accept",
	}))

	// --- API Routes ---
	api := app.Group("/api")
	productHandler.RegisterRoutes(api)

	// --- API Documentation ---
	// Served at a fixed path, independent of the data routes.
	app.Get("/docs", func(c *fiber.Ctx) error {
		return c.Redirect("/docs/index.html", fiber.StatusMovedPermanently)
	})
	app.Get("/docs/*", swagger.HandlerDefault)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		database := "connected"
		if !dbConnected {
			database = "unreachable"
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": database,
		})
	})

	return app
}

// openDatabase connects to PostgreSQL and migrates the product schema. A
// connection failure is logged, not fatal, and yields a nil handle.
func openDatabase(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Printf("Warning: could not connect to database: %v", err)
		log.Println("Continuing without a store; product requests will fail until it is reachable")
		return nil
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		log.Printf("Warning: failed to migrate database schema: %v", err)
	}
	return db
}

// openMessageBroker connects to RabbitMQ when a URL is configured. Product
// events are optional: any failure here only disables publishing.
func openMessageBroker(url string) *rabbitmq.Client {
	if url == "" {
		log.Println("RABBITMQ_URL not set; product events disabled")
		return nil
	}
	client, err := rabbitmq.NewClient(rabbitmq.Config{URL: url})
	if err != nil {
		log.Printf("Warning: could not connect to RabbitMQ: %v; product events disabled", err)
		return nil
	}
	return client
}

// closeDatabase releases the connection pool on shutdown.
func closeDatabase(db *gorm.DB) {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error retrieving database handle for shutdown: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	}
}
