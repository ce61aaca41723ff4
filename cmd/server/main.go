package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	httpapi "brecho-backend/internal/api/http"
	"brecho-backend/internal/config"
	"brecho-backend/internal/gateway/mercadopago"
	"brecho-backend/internal/gateway/viacep"
	"brecho-backend/internal/jobs"
	"brecho-backend/internal/logger"
	"brecho-backend/internal/repository/postgres"
	"brecho-backend/internal/scheduler"
	"brecho-backend/internal/security"
	"brecho-backend/internal/service"
	"brecho-backend/internal/storage"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Brechó backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress(), "base_url", cfg.Server.BaseURL)
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)
	authMiddleware := httpapi.NewAuthMiddleware(tokenManager)

	// Initialize Storage Service
	localStorage, err := storage.NewLocalStorageService(cfg.Server.BaseURL, cfg.Storage.UploadDir)
	if err != nil {
		logger.Error("Failed to initialize local storage", "error", err)
		log.Fatalf("Failed to initialize local storage: %v", err)
	}

	// Initialize external gateways
	lookupClient := viacep.NewClient(cfg.Lookup.BaseURL, time.Duration(cfg.Lookup.TimeoutSeconds)*time.Second)
	paymentGateway := mercadopago.NewClient(cfg.Gateway.BaseURL, cfg.Gateway.AccessToken, cfg.Gateway.PayerEmail, time.Duration(cfg.Gateway.TimeoutSeconds)*time.Second)

	// Initialize Email Service
	emailSvc := service.NewEmailService(
		cfg.SMTP.Host,
		fmt.Sprintf("%d", cfg.SMTP.Port),
		cfg.SMTP.User,
		cfg.SMTP.Password,
		cfg.SMTP.From,
	)

	// Initialize Services
	authSvc := service.NewAuthService(store.CustomerRepository, tokenManager)
	catalogSvc := service.NewCatalogService(store.ProductRepository)
	customerSvc := service.NewCustomerService(store.CustomerRepository, localStorage)
	shippingSvc := service.NewShippingService(lookupClient)
	contractSvc := service.NewContractService(store.ContractRepository, store.CustomerRepository, store.CheckoutRepository)
	checkoutSvc := service.NewCheckoutService(
		store.CheckoutRepository,
		store.ProductRepository,
		store.CustomerRepository,
		store.ContractRepository,
		store.PaymentIntentRepository,
		shippingSvc,
	)
	paymentSvc := service.NewPaymentService(
		store.PaymentIntentRepository,
		store.CheckoutRepository,
		store.ProductRepository,
		store.CustomerRepository,
		paymentGateway,
		emailSvc,
		cfg.Server.BaseURL,
	)

	// Initialize HTTP handlers
	handlers := httpapi.Handlers{
		Auth:     httpapi.NewAuthHandler(authSvc),
		Catalog:  httpapi.NewCatalogHandler(catalogSvc),
		Customer: httpapi.NewCustomerHandler(customerSvc, localStorage, cfg.Storage.MaxFileSize, cfg.Storage.AllowedTypes),
		Shipping: httpapi.NewShippingHandler(shippingSvc),
		Checkout: httpapi.NewCheckoutHandler(checkoutSvc),
		Contract: httpapi.NewContractHandler(contractSvc),
		Payment:  httpapi.NewPaymentHandler(paymentSvc),
	}

	limiter := httpapi.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	defer limiter.Stop()
	router := httpapi.NewRouter(handlers, authMiddleware, limiter)

	// Start the in-process scheduler
	jobRunner := jobs.NewJobRunner(db, store, &jobs.Services{Email: emailSvc}, cfg)
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()
	defer sched.Stop()

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
