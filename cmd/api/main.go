package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/meridiancg/backoffice-api/docs"
	"github.com/meridiancg/backoffice-api/internal/auth"
	"github.com/meridiancg/backoffice-api/internal/config"
	"github.com/meridiancg/backoffice-api/internal/database"
	"github.com/meridiancg/backoffice-api/internal/http/handler"
	"github.com/meridiancg/backoffice-api/internal/http/middleware"
	"github.com/meridiancg/backoffice-api/internal/http/router"
	"github.com/meridiancg/backoffice-api/internal/jobs"
	"github.com/meridiancg/backoffice-api/internal/logger"
	"github.com/meridiancg/backoffice-api/internal/repository"
	"github.com/meridiancg/backoffice-api/internal/service"
	"github.com/meridiancg/backoffice-api/internal/storage"
	"github.com/meridiancg/backoffice-api/internal/warehouse"
)

// version is set at build time via -ldflags.
var version = "dev"

// @title Meridian Back Office API
// @version 1.0
// @description Back-office API for account, engagement, estimation, quoting and timesheet management

// @contact.name API Support
// @contact.email platform@meridiancg.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.String("version", version),
		zap.Int("port", basicCfg.App.Port),
	)

	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)

	// Load full configuration. In staging/production the sensitive values
	// come from Azure Key Vault; in development from the environment.
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.App.Environment == "development" {
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to run auto-migration: %w", err)
		}
	}

	fileStorage, err := storage.New(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	// Finance warehouse connection (optional, read-only). The app runs
	// without it; rate sync and the warehouse health check are skipped.
	var whClient *warehouse.Client
	if cfg.Warehouse.Enabled {
		whClient, err = warehouse.NewClient(&cfg.Warehouse, log)
		if err != nil {
			log.Warn("Warehouse connection failed, continuing without it", zap.Error(err))
			whClient = nil
		} else {
			log.Info("Warehouse connected")
		}
	} else {
		log.Info("Warehouse not configured, skipping")
	}

	// Repositories
	accountRepo := repository.NewAccountRepository(db)
	contactRepo := repository.NewContactRepository(db)
	billingTermRepo := repository.NewBillingTermRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	deliveryCenterRepo := repository.NewDeliveryCenterRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	calendarRepo := repository.NewCalendarRepository(db)
	currencyRateRepo := repository.NewCurrencyRateRepository(db)
	opportunityRepo := repository.NewOpportunityRepository(db)
	lockRepo := repository.NewOpportunityLockRepository(db)
	estimateRepo := repository.NewEstimateRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	timesheetRepo := repository.NewTimesheetRepository(db)

	// Services
	tokenIssuer := auth.NewTokenIssuer(&cfg.Auth)
	authService := service.NewAuthService(employeeRepo, tokenIssuer, log)
	accountService := service.NewAccountService(accountRepo, billingTermRepo, log)
	contactService := service.NewContactService(contactRepo, accountRepo, log)
	billingTermService := service.NewBillingTermService(billingTermRepo, accountRepo, log)
	roleService := service.NewRoleService(roleRepo, deliveryCenterRepo, log)
	deliveryCenterService := service.NewDeliveryCenterService(deliveryCenterRepo, employeeRepo, log)
	employeeService := service.NewEmployeeService(employeeRepo, deliveryCenterRepo, log)
	calendarService := service.NewCalendarService(calendarRepo, log)
	currencyRateService := service.NewCurrencyRateService(currencyRateRepo, log)
	opportunityService := service.NewOpportunityService(opportunityRepo, lockRepo, accountRepo, employeeRepo, roleRepo, log)
	estimateService := service.NewEstimateService(estimateRepo, quoteRepo, opportunityRepo, lockRepo, log)
	quoteService := service.NewQuoteService(quoteRepo, estimateRepo, opportunityRepo, lockRepo, cfg.Quote, log)
	documentService := service.NewDocumentService(documentRepo, quoteRepo, fileStorage, cfg.Storage.MaxUploadSizeMB, log)
	timesheetService := service.NewTimesheetService(timesheetRepo, employeeRepo, opportunityRepo, lockRepo, log)

	// Middleware
	authMiddleware := auth.NewMiddleware(cfg, employeeRepo, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Handlers
	healthHandler := handler.NewHealthHandler(db, whClient, version, log)
	authHandler := handler.NewAuthHandler(authService, log)
	accountHandler := handler.NewAccountHandler(accountService, log)
	contactHandler := handler.NewContactHandler(contactService, log)
	billingTermHandler := handler.NewBillingTermHandler(billingTermService, log)
	roleHandler := handler.NewRoleHandler(roleService, log)
	deliveryCenterHandler := handler.NewDeliveryCenterHandler(deliveryCenterService, log)
	employeeHandler := handler.NewEmployeeHandler(employeeService, log)
	calendarHandler := handler.NewCalendarHandler(calendarService, log)
	currencyRateHandler := handler.NewCurrencyRateHandler(currencyRateService, log)
	opportunityHandler := handler.NewOpportunityHandler(opportunityService, log)
	estimateHandler := handler.NewEstimateHandler(estimateService, log)
	quoteHandler := handler.NewQuoteHandler(quoteService, log)
	documentHandler := handler.NewDocumentHandler(documentService, log)
	timesheetHandler := handler.NewTimesheetHandler(timesheetService, log)

	rt := router.NewRouter(
		cfg,
		log,
		authMiddleware,
		rateLimiter,
		healthHandler,
		authHandler,
		accountHandler,
		contactHandler,
		billingTermHandler,
		roleHandler,
		deliveryCenterHandler,
		employeeHandler,
		calendarHandler,
		currencyRateHandler,
		opportunityHandler,
		estimateHandler,
		quoteHandler,
		documentHandler,
		timesheetHandler,
	)

	// Background jobs
	var scheduler *jobs.Scheduler
	if cfg.Jobs.Enabled && whClient != nil {
		scheduler = jobs.NewScheduler(log)
		if err := jobs.RegisterRateSyncJob(
			scheduler,
			whClient,
			currencyRateRepo,
			cfg.Jobs.BaseCurrency,
			cfg.Jobs.RateSyncCurrencies,
			log,
			cfg.Jobs.RateSyncSchedule,
		); err != nil {
			log.Error("Failed to register rate sync job", zap.Error(err))
		} else {
			scheduler.Start()
			log.Info("Scheduler started with rate sync job",
				zap.String("cron_expr", cfg.Jobs.RateSyncSchedule))
		}
	} else {
		log.Info("Rate sync disabled",
			zap.Bool("jobs_enabled", cfg.Jobs.Enabled),
			zap.Bool("warehouse_available", whClient != nil))
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		if scheduler != nil {
			ctx := scheduler.Stop()
			<-ctx.Done()
			log.Info("Scheduler stopped")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		if whClient != nil {
			if err := whClient.Close(); err != nil {
				log.Warn("Error closing warehouse connection", zap.Error(err))
			}
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
