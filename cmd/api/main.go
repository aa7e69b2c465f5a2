package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/ofwirawan/verbose-garbonzo-tariff-sub000/api/swagger" // swagger docs
	"github.com/ofwirawan/verbose-garbonzo-tariff-sub000/internal/database"
	"github.com/ofwirawan/verbose-garbonzo-tariff-sub000/internal/freight"
	"github.com/ofwirawan/verbose-garbonzo-tariff-sub000/internal/handler"
	"github.com/ofwirawan/verbose-garbonzo-tariff-sub000/internal/middleware"
	"github.com/ofwirawan/verbose-garbonzo-tariff-sub000/internal/repository"
	"github.com/ofwirawan/verbose-garbonzo-tariff-sub000/internal/service"
	"github.com/ofwirawan/verbose-garbonzo-tariff-sub000/internal/tariff"
	"github.com/ofwirawan/verbose-garbonzo-tariff-sub000/internal/websocket"
)

// @title           Tariff Engine API
// @version         1.0
// @description     Tariff rate resolution and landed-cost calculation engine.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbSslMode := os.Getenv("DB_SSLMODE")

	if dbHost == "" {
		dbHost = "localhost"
	}
	if dbPort == "" {
		dbPort = "5432"
	}
	if dbUser == "" {
		dbUser = "postgres"
	}
	if dbPassword == "" {
		dbPassword = "postgres"
	}
	if dbName == "" {
		dbName = "postgres"
	}
	if dbSslMode == "" {
		dbSslMode = "disable"
	}

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Insurance rate applied on CIF valuations, percent of (goods + freight)
	insuranceRateStr := os.Getenv("INSURANCE_RATE_PCT")
	if insuranceRateStr == "" {
		insuranceRateStr = "1.5"
	}
	insuranceRate, err := decimal.NewFromString(insuranceRateStr)
	if err != nil {
		log.Fatalf("Invalid INSURANCE_RATE_PCT %q: %v", insuranceRateStr, err)
	}

	// Freight provider: "static" (built-in tariff table) or "http" (remote quote API)
	freightGateway := freight.NewByName(
		os.Getenv("FREIGHT_PROVIDER"),
		os.Getenv("FREIGHT_API_URL"),
		&http.Client{Timeout: 10 * time.Second},
	)

	// Set up dependencies (Repository -> Service -> Handler)
	userRepo := repository.NewUserRepository(db)
	rateRepo := repository.NewTariffRateRepository(db)
	countryRepo := repository.NewCountryRepository(db)
	productRepo := repository.NewProductRepository(db)
	historyRepo := repository.NewHistoryRepository(db)
	txManager := repository.NewTransactionManager(db)

	engine := tariff.NewEngine(rateRepo, freightGateway, insuranceRate)

	userService := service.NewUserService(userRepo)
	calcService := service.NewCalculationService(engine, historyRepo)
	adminService := service.NewTariffAdminService(rateRepo, db, wsHub)
	countryService := service.NewCountryService(countryRepo)
	productService := service.NewProductService(productRepo)
	ingestService := service.NewIngestService(countryRepo, productRepo, txManager, db)
	auditService := service.NewAuditService(db)
	statisticsService := service.NewStatisticsService(db)

	// Initialize Handlers
	userHandler := handler.NewUserHandler(userService)
	calcHandler := handler.NewCalculationHandler(calcService)
	tariffHandler := handler.NewTariffRateHandler(adminService)
	countryHandler := handler.NewCountryHandler(countryService)
	productHandler := handler.NewProductHandler(productService)
	ingestHandler := handler.NewIngestHandler(ingestService)
	auditHandler := handler.NewAuditHandler(auditService)
	statisticsHandler := handler.NewStatisticsHandler(statisticsService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:5174"} // Frontend URL
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	userHandler.RegisterRoutes(router.Group(""))
	calcHandler.RegisterRoutes(router.Group(""))
	tariffHandler.RegisterRoutes(router.Group(""))
	countryHandler.RegisterRoutes(router.Group(""))
	productHandler.RegisterRoutes(router.Group(""))
	ingestHandler.RegisterRoutes(router.Group(""))
	auditHandler.RegisterRoutes(router.Group(""))
	statisticsHandler.RegisterRoutes(router.Group(""))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
