package main

import (
	"context"
	"log"
	"os"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"agora/internal/caching"
	"agora/internal/common"
	"agora/internal/handlers"
	"agora/internal/jobs/background"
	"agora/internal/middleware"
	"agora/internal/repositories"
	"agora/internal/services"
)

func main() {
	// Database connection
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := pgxpool.New(context.Background(), databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := repositories.EnsureSchema(context.Background(), pool); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if s := os.Getenv("REDIS_DB"); s != "" {
		if db, err := strconv.Atoi(s); err == nil {
			redisDB = db
		}
	}

	// MinIO configuration; backups are disabled when no endpoint is set.
	var storageSvc services.StorageService
	backupBucket := os.Getenv("BACKUP_BUCKET")
	if backupBucket == "" {
		backupBucket = "agora-backups"
	}
	if minioEndpoint := os.Getenv("MINIO_ENDPOINT"); minioEndpoint != "" {
		minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
		minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
		useSSL := os.Getenv("MINIO_USE_SSL") == "true"
		storageSvc, err = services.NewMinioStorageService(minioEndpoint, minioAccessKey, minioSecretKey, useSSL)
		if err != nil {
			log.Fatalf("Failed to initialize object storage: %v", err)
		}
	}

	// Create repositories
	adminRepo := repositories.NewAdminRepository(pool)
	tokenRepo := repositories.NewTokenRepository(pool)
	settingRepo := repositories.NewSettingRepository(pool)
	customerRepo := repositories.NewCustomerRepository(pool)
	serviceRepo := repositories.NewServiceRepository(pool)
	ledgerRepo := repositories.NewLedgerRepository(pool)
	reportRepo := repositories.NewReportRepository(pool)
	exportRepo := repositories.NewExportRepository(pool)

	// Create cache service
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// Create services
	authSvc := services.NewAuthService(adminRepo, tokenRepo)
	customerSvc := services.NewCustomerService(customerRepo)

	// Create handlers
	authHandlers := handlers.NewAuthHandlers(authSvc)
	settingsHandlers := handlers.NewSettingsHandlers(settingRepo)
	customerHandlers := handlers.NewCustomerHandlers(customerSvc, customerRepo, serviceRepo, cacheSvc)
	domainHandlers := handlers.NewServiceHandlers(repositories.TableDomains, serviceRepo, customerRepo, cacheSvc)
	hostingHandlers := handlers.NewServiceHandlers(repositories.TableHostings, serviceRepo, customerRepo, cacheSvc)
	sslHandlers := handlers.NewServiceHandlers(repositories.TableSsls, serviceRepo, customerRepo, cacheSvc)
	incomeHandlers := handlers.NewLedgerHandlers(repositories.TableIncomes, ledgerRepo)
	expenseHandlers := handlers.NewLedgerHandlers(repositories.TableExpenses, ledgerRepo)
	reportHandlers := handlers.NewReportHandlers(reportRepo, serviceRepo, exportRepo, cacheSvc)

	// Background jobs
	jobScheduler := background.NewJobScheduler(tokenRepo, exportRepo, storageSvc, backupBucket)
	if err := jobScheduler.Start(); err != nil {
		log.Printf("Failed to start background jobs: %v", err)
	}
	defer jobScheduler.Stop()

	// Create Echo instance
	e := echo.New()
	e.HTTPErrorHandler = common.HTTPErrorHandler

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Pre(echoMiddleware.RemoveTrailingSlash())

	// Public routes
	e.GET("/health", handlers.HealthCheck)
	e.POST("/setup/admin", authHandlers.SetupAdmin)
	e.POST("/auth/login", authHandlers.Login)

	// Protected routes (require a valid admin token)
	protected := e.Group("")
	protected.Use(middleware.RequireAdmin(authSvc))

	protected.POST("/auth/logout", authHandlers.Logout)

	protected.GET("/settings/smtp", settingsHandlers.GetSMTP)
	protected.PUT("/settings/smtp", settingsHandlers.PutSMTP)

	protected.GET("/dashboard", reportHandlers.Dashboard)
	protected.GET("/renewals", reportHandlers.Renewals)
	protected.GET("/export/:table", reportHandlers.Export)

	// Customer routes
	protected.GET("/customers", customerHandlers.List)
	protected.POST("/customers", customerHandlers.Create)
	protected.GET("/customers/:id", customerHandlers.Get)
	protected.PATCH("/customers/:id", customerHandlers.Update)
	protected.DELETE("/customers/:id", customerHandlers.Delete)

	// Service routes
	serviceGroups := map[string]*handlers.ServiceHandlers{
		"/domains":  domainHandlers,
		"/hostings": hostingHandlers,
		"/ssls":     sslHandlers,
	}
	for prefix, h := range serviceGroups {
		g := protected.Group(prefix)
		g.GET("", h.List)
		g.POST("", h.Create)
		g.GET("/:id", h.Get)
		g.PATCH("/:id", h.Update)
		g.DELETE("/:id", h.Delete)
	}

	// Ledger routes
	ledgerGroups := map[string]*handlers.LedgerHandlers{
		"/incomes":  incomeHandlers,
		"/expenses": expenseHandlers,
	}
	for prefix, h := range ledgerGroups {
		g := protected.Group(prefix)
		g.GET("", h.List)
		g.POST("", h.Create)
		g.GET("/:id", h.Get)
		g.PATCH("/:id", h.Update)
		g.DELETE("/:id", h.Delete)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Fatal(e.Start(":" + port))
}
